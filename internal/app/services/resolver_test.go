package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unisity/unisity/internal/app/models"
	"github.com/unisity/unisity/internal/app/store"
	"github.com/unisity/unisity/internal/pkg/apperrors"
)

func TestLookupToleratesMissing(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemStore()

	assert.Nil(t, Lookup(ctx, st.Roles, ""))
	assert.Nil(t, Lookup(ctx, st.Roles, "dangling-id"))

	role := &models.Role{Name: "admin"}
	require.NoError(t, st.Roles.InsertOne(ctx, role))

	found := Lookup(ctx, st.Roles, role.ID)
	require.NotNil(t, found)
	assert.Equal(t, "admin", found.Name)
}

func TestLookupSetDeduplicatesAndSkipsBlank(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemStore()

	a := &models.Role{Name: "a"}
	b := &models.Role{Name: "b"}
	require.NoError(t, st.Roles.InsertOne(ctx, a))
	require.NoError(t, st.Roles.InsertOne(ctx, b))

	out := LookupSet(ctx, st.Roles, []string{a.ID, "", a.ID, b.ID, "missing"})
	require.Len(t, out, 2)
	assert.Equal(t, "a", out[a.ID].Name)
	assert.Equal(t, "b", out[b.ID].Name)

	assert.Nil(t, LookupSet(ctx, st.Roles, []string{"", ""}))
}

func TestRequireFailsFast(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemStore()

	_, err := Require(ctx, st.Roles, models.KindRole, "")
	require.ErrorIs(t, err, apperrors.ErrInvalidReference)

	_, err = Require(ctx, st.Roles, models.KindRole, "dangling-id")
	require.ErrorIs(t, err, apperrors.ErrInvalidReference)

	var refErr *apperrors.InvalidReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, models.KindRole, refErr.Kind)

	role := &models.Role{Name: "admin"}
	require.NoError(t, st.Roles.InsertOne(ctx, role))

	found, err := Require(ctx, st.Roles, models.KindRole, role.ID)
	require.NoError(t, err)
	assert.Equal(t, role.ID, found.ID)
}

func TestCheckRefOptionalBlank(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemStore()

	// A blank optional reference passes; a blank required one does not.
	assert.NoError(t, checkRef(ctx, st.Roles, models.KindRole, "", false))
	assert.ErrorIs(t, checkRef(ctx, st.Roles, models.KindRole, "", true), apperrors.ErrInvalidReference)
}

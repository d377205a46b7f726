package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/unisity/unisity/internal/app/models"
)

type MemCollectionSuite struct {
	suite.Suite
	roles   *MemCollection[models.Role, *models.Role]
	courses *MemCollection[models.Course, *models.Course]
	ctx     context.Context
}

func (s *MemCollectionSuite) SetupTest() {
	s.roles = NewMemCollection[models.Role]([]string{"name"})
	s.courses = NewMemCollection[models.Course]([]string{"name", "organizationId"})
	s.ctx = context.Background()
}

func TestMemCollectionSuite(t *testing.T) {
	suite.Run(t, new(MemCollectionSuite))
}

func (s *MemCollectionSuite) TestInsertAssignsIdentifier() {
	role := &models.Role{Name: "admin"}
	s.Require().NoError(s.roles.InsertOne(s.ctx, role))
	s.NotEmpty(role.ID)

	found, err := s.roles.FindByID(s.ctx, role.ID)
	s.Require().NoError(err)
	s.Equal("admin", found.Name)
	s.Equal(role.ID, found.ID)
}

func (s *MemCollectionSuite) TestFindByIDUnknown() {
	_, err := s.roles.FindByID(s.ctx, "b2c7e0b2-3d44-4f4e-8f6c-000000000000")
	s.Require().ErrorIs(err, ErrNoDocument)
}

func (s *MemCollectionSuite) TestFindOneByFilter() {
	s.Require().NoError(s.roles.InsertOne(s.ctx, &models.Role{Name: "admin"}))
	s.Require().NoError(s.roles.InsertOne(s.ctx, &models.Role{Name: "student"}))

	found, err := s.roles.FindOne(s.ctx, Filter{"name": "student"})
	s.Require().NoError(err)
	s.Equal("student", found.Name)

	_, err = s.roles.FindOne(s.ctx, Filter{"name": "teacher"})
	s.Require().ErrorIs(err, ErrNoDocument)
}

func (s *MemCollectionSuite) TestFindManyKeepsInsertionOrder() {
	for _, name := range []string{"first", "second", "third"} {
		s.Require().NoError(s.roles.InsertOne(s.ctx, &models.Role{Name: name}))
	}

	all, err := s.roles.FindMany(s.ctx, nil)
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	s.Equal("first", all[0].Name)
	s.Equal("third", all[2].Name)
}

func (s *MemCollectionSuite) TestFindByIDsSkipsUnknown() {
	a := &models.Role{Name: "a"}
	b := &models.Role{Name: "b"}
	s.Require().NoError(s.roles.InsertOne(s.ctx, a))
	s.Require().NoError(s.roles.InsertOne(s.ctx, b))

	docs, err := s.roles.FindByIDs(s.ctx, []string{a.ID, "missing", b.ID})
	s.Require().NoError(err)
	s.Len(docs, 2)
}

func (s *MemCollectionSuite) TestUniqueKeyRejectsDuplicate() {
	s.Require().NoError(s.roles.InsertOne(s.ctx, &models.Role{Name: "admin"}))

	err := s.roles.InsertOne(s.ctx, &models.Role{Name: "admin"})
	s.Require().ErrorIs(err, ErrDuplicateKey)
}

func (s *MemCollectionSuite) TestCompositeUniqueKeyScopedByOrganization() {
	s.Require().NoError(s.courses.InsertOne(s.ctx, &models.Course{Name: "Math", OrganizationID: "org-1"}))

	// Same name under another organization is fine.
	s.Require().NoError(s.courses.InsertOne(s.ctx, &models.Course{Name: "Math", OrganizationID: "org-2"}))

	err := s.courses.InsertOne(s.ctx, &models.Course{Name: "Math", OrganizationID: "org-1"})
	s.Require().ErrorIs(err, ErrDuplicateKey)
}

func (s *MemCollectionSuite) TestUpdateMergesPatch() {
	role := &models.Role{Name: "admin", Description: "original"}
	s.Require().NoError(s.roles.InsertOne(s.ctx, role))

	updated, err := s.roles.UpdateOne(s.ctx, role.ID, Patch{"description": "changed"})
	s.Require().NoError(err)
	s.Equal("admin", updated.Name)
	s.Equal("changed", updated.Description)
	s.Equal(role.ID, updated.ID)
}

func (s *MemCollectionSuite) TestUpdateUnknownID() {
	_, err := s.roles.UpdateOne(s.ctx, "missing", Patch{"description": "x"})
	s.Require().ErrorIs(err, ErrNoDocument)
}

func (s *MemCollectionSuite) TestUpdateIntoDuplicateKey() {
	s.Require().NoError(s.roles.InsertOne(s.ctx, &models.Role{Name: "admin"}))
	other := &models.Role{Name: "student"}
	s.Require().NoError(s.roles.InsertOne(s.ctx, other))

	_, err := s.roles.UpdateOne(s.ctx, other.ID, Patch{"name": "admin"})
	s.Require().ErrorIs(err, ErrDuplicateKey)
}

func (s *MemCollectionSuite) TestDeleteReportsCount() {
	role := &models.Role{Name: "admin"}
	s.Require().NoError(s.roles.InsertOne(s.ctx, role))

	count, err := s.roles.DeleteOne(s.ctx, role.ID)
	s.Require().NoError(err)
	s.EqualValues(1, count)

	count, err = s.roles.DeleteOne(s.ctx, role.ID)
	s.Require().NoError(err)
	s.EqualValues(0, count)

	_, err = s.roles.FindByID(s.ctx, role.ID)
	s.Require().ErrorIs(err, ErrNoDocument)
}

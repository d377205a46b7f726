// Package seed populates default data on startup: the four built-in roles
// and a bootstrap admin account.
package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/unisity/unisity/internal/app/models"
	"github.com/unisity/unisity/internal/app/services"
	"github.com/unisity/unisity/internal/app/store"
	"github.com/unisity/unisity/internal/pkg/apperrors"
)

// defaultRoles are the role names the login flows and the UI key off.
var defaultRoles = []models.Role{
	{Name: "admin", Description: "Platform administrator"},
	{Name: "organization", Description: "Institution account"},
	{Name: "faculty", Description: "Teaching staff"},
	{Name: "student", Description: "Learner account"},
}

// CreateDefaultData creates the built-in roles and the bootstrap admin if
// they don't exist. Safe to run on every startup.
func CreateDefaultData(ctx context.Context, svc *services.Services, st *store.Store, adminEmail, adminPassword string, lgr zerolog.Logger) error {
	var finalErr error

	lgr.Info().Msg("Checking/Creating default roles...")
	for i := range defaultRoles {
		role := defaultRoles[i]
		if err := svc.Roles.Create(ctx, &role); err != nil {
			if errors.Is(err, apperrors.ErrDuplicateEntity) {
				continue
			}
			lgr.Error().Err(err).Str("role", role.Name).Msg("Error creating default role")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if adminEmail == "" || adminPassword == "" {
		lgr.Warn().Msg("Bootstrap admin credentials not configured, skipping admin seed")
		return finalErr
	}

	if _, err := st.Admins.FindOne(ctx, store.Filter{"email": adminEmail}); err == nil {
		return finalErr
	} else if !errors.Is(err, store.ErrNoDocument) {
		lgr.Error().Err(err).Msg("Error checking if bootstrap admin exists")
		return errors.Join(finalErr, err)
	}

	adminRole, err := st.Roles.FindOne(ctx, store.Filter{"name": "admin"})
	if err != nil {
		lgr.Error().Err(err).Msg("Error resolving admin role for bootstrap admin")
		return errors.Join(finalErr, err)
	}

	lgr.Info().Str("email", adminEmail).Msg("Creating bootstrap admin...")
	admin := &models.Admin{
		FirstName:    "System",
		LastName:     "Admin",
		Email:        adminEmail,
		PasswordHash: adminPassword,
		RoleID:       adminRole.ID,
	}
	if err := svc.Admins.Create(ctx, admin); err != nil && !errors.Is(err, apperrors.ErrDuplicateEntity) {
		lgr.Error().Err(err).Msg("Error creating bootstrap admin")
		finalErr = errors.Join(finalErr, err)
	}

	return finalErr
}

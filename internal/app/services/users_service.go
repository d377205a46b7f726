package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/unisity/unisity/internal/app/models"
	"github.com/unisity/unisity/internal/app/store"
	"github.com/unisity/unisity/internal/pkg/apperrors"
)

// UserDirectory aggregates every principal kind in one listing.
type UserDirectory struct {
	Admins        []*models.Admin        `json:"admins"`
	Organizations []*models.Organization `json:"organizations"`
	Faculties     []*models.Faculty      `json:"faculties"`
	Students      []*models.Student      `json:"students"`
}

// OrganizationMembers are the faculties and students owned by one
// organization.
type OrganizationMembers struct {
	Faculties []*models.Faculty `json:"faculties"`
	Students  []*models.Student `json:"students"`
}

// UsersService reads across the four principal stores.
type UsersService struct {
	store *store.Store

	admins        *EntityService[models.Admin, *models.Admin]
	organizations *EntityService[models.Organization, *models.Organization]
	faculties     *EntityService[models.Faculty, *models.Faculty]
	students      *EntityService[models.Student, *models.Student]
}

// Directory lists every principal of every kind, with references resolved.
func (s *UsersService) Directory(ctx context.Context) (*UserDirectory, error) {
	admins, err := s.admins.List(ctx)
	if err != nil {
		return nil, err
	}
	organizations, err := s.organizations.List(ctx)
	if err != nil {
		return nil, err
	}
	faculties, err := s.faculties.List(ctx)
	if err != nil {
		return nil, err
	}
	students, err := s.students.List(ctx)
	if err != nil {
		return nil, err
	}

	return &UserDirectory{
		Admins:        admins,
		Organizations: organizations,
		Faculties:     faculties,
		Students:      students,
	}, nil
}

// OrganizationMembers lists the faculties and students belonging to the
// given organization.
func (s *UsersService) OrganizationMembers(ctx context.Context, orgID string) (*OrganizationMembers, error) {
	if _, err := s.store.Organizations.FindByID(ctx, orgID); err != nil {
		if errors.Is(err, store.ErrNoDocument) {
			return nil, apperrors.NewNotFoundError("This organization not found")
		}
		return nil, fmt.Errorf("error retrieving organization: %w", err)
	}

	faculties, err := s.faculties.ListWhere(ctx, store.Filter{"organizationId": orgID})
	if err != nil {
		return nil, err
	}
	students, err := s.students.ListWhere(ctx, store.Filter{"organizationId": orgID})
	if err != nil {
		return nil, err
	}

	return &OrganizationMembers{Faculties: faculties, Students: students}, nil
}

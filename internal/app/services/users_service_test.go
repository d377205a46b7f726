package services

import (
	"github.com/unisity/unisity/internal/app/models"
	"github.com/unisity/unisity/internal/pkg/apperrors"
)

func (s *EntityServiceSuite) TestUserDirectoryAggregatesAllKinds() {
	s.Require().NoError(s.svc.Admins.Create(s.ctx, s.newAdmin("ada@example.com")))
	faculty := s.seedFaculty("teacher@example.com")

	student := &models.Student{
		FirstName:      "Sam",
		Email:          "sam@example.com",
		PasswordHash:   "secret",
		OrganizationID: s.org.ID,
		RoleID:         s.adminRole.ID,
	}
	s.Require().NoError(s.svc.Students.Create(s.ctx, student))

	directory, err := s.svc.Users.Directory(s.ctx)
	s.Require().NoError(err)

	s.Len(directory.Admins, 1)
	s.Len(directory.Organizations, 1)
	s.Require().Len(directory.Faculties, 1)
	s.Len(directory.Students, 1)

	s.Equal(faculty.ID, directory.Faculties[0].ID)
	for _, o := range directory.Organizations {
		s.Empty(o.PasswordHash)
	}
}

func (s *EntityServiceSuite) TestOrganizationMembersFiltersByOwner() {
	other := &models.Organization{
		Name:         "Other University",
		Email:        "other@example.com",
		PasswordHash: "secret",
		RoleID:       s.adminRole.ID,
	}
	s.Require().NoError(s.svc.Organizations.Create(s.ctx, other))

	ours := s.seedFaculty("ours@example.com")
	theirs := &models.Faculty{
		FirstName:      "Theo",
		Email:          "theirs@example.com",
		PasswordHash:   "secret",
		OrganizationID: other.ID,
		RoleID:         s.adminRole.ID,
	}
	s.Require().NoError(s.svc.Faculties.Create(s.ctx, theirs))

	student := &models.Student{
		FirstName:      "Sam",
		Email:          "sam@example.com",
		PasswordHash:   "secret",
		OrganizationID: s.org.ID,
		RoleID:         s.adminRole.ID,
	}
	s.Require().NoError(s.svc.Students.Create(s.ctx, student))

	members, err := s.svc.Users.OrganizationMembers(s.ctx, s.org.ID)
	s.Require().NoError(err)

	s.Require().Len(members.Faculties, 1)
	s.Equal(ours.ID, members.Faculties[0].ID)
	s.Require().Len(members.Students, 1)
	s.Equal(student.ID, members.Students[0].ID)
}

func (s *EntityServiceSuite) TestOrganizationMembersUnknownOrganization() {
	_, err := s.svc.Users.OrganizationMembers(s.ctx, "missing")
	s.Require().ErrorIs(err, apperrors.ErrNotFound)
}

package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/unisity/unisity/internal/app/models"
	"github.com/unisity/unisity/internal/app/store"
	"github.com/unisity/unisity/internal/pkg/apperrors"
)

type EntityServiceSuite struct {
	suite.Suite
	store *store.Store
	svc   *Services
	ctx   context.Context

	adminRole *models.Role
	org       *models.Organization
}

func (s *EntityServiceSuite) SetupTest() {
	s.store = store.NewMemStore()
	s.svc = NewServices(s.store, testJWTService())
	s.ctx = context.Background()

	s.adminRole = &models.Role{Name: "admin"}
	s.Require().NoError(s.svc.Roles.Create(s.ctx, s.adminRole))

	s.org = &models.Organization{
		Name:         "Acme University",
		Email:        "acme@example.com",
		PasswordHash: "orgsecret",
		RoleID:       s.adminRole.ID,
	}
	s.Require().NoError(s.svc.Organizations.Create(s.ctx, s.org))
}

func TestEntityServiceSuite(t *testing.T) {
	suite.Run(t, new(EntityServiceSuite))
}

func (s *EntityServiceSuite) newAdmin(email string) *models.Admin {
	return &models.Admin{
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Email:        email,
		PasswordHash: "plaintext-secret",
		RoleID:       s.adminRole.ID,
	}
}

func (s *EntityServiceSuite) TestListEmptyCollection() {
	subjects, err := s.svc.Subjects.List(s.ctx)
	s.Require().NoError(err)
	s.NotNil(subjects)
	s.Empty(subjects)
}

func (s *EntityServiceSuite) TestGetByIDNotFound() {
	_, err := s.svc.Roles.GetByID(s.ctx, "missing")
	s.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func (s *EntityServiceSuite) TestCreateStampsServerFields() {
	admin := s.newAdmin("ada@example.com")
	s.Require().NoError(s.svc.Admins.Create(s.ctx, admin))

	s.NotEmpty(admin.ID)
	s.False(admin.CreatedAt.IsZero())
	s.True(admin.IsActive)
}

func (s *EntityServiceSuite) TestCreateHashesSecret() {
	admin := s.newAdmin("ada@example.com")
	s.Require().NoError(s.svc.Admins.Create(s.ctx, admin))

	stored, err := s.store.Admins.FindByID(s.ctx, admin.ID)
	s.Require().NoError(err)
	s.NotEqual("plaintext-secret", stored.PasswordHash)
	s.NoError(bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("plaintext-secret")))
}

func (s *EntityServiceSuite) TestCreateResolvesReferences() {
	admin := s.newAdmin("ada@example.com")
	s.Require().NoError(s.svc.Admins.Create(s.ctx, admin))

	s.Require().NotNil(admin.Role)
	s.Equal("admin", admin.Role.Name)

	// The stored document holds only the foreign key, not the embedded role.
	stored, err := s.store.Admins.FindOne(s.ctx, store.Filter{"email": "ada@example.com"})
	s.Require().NoError(err)
	s.Equal(s.adminRole.ID, stored.RoleID)
}

func (s *EntityServiceSuite) TestCreateRejectsDanglingReference() {
	admin := s.newAdmin("ada@example.com")
	admin.RoleID = "dangling-role"

	err := s.svc.Admins.Create(s.ctx, admin)
	s.Require().ErrorIs(err, apperrors.ErrInvalidReference)

	var refErr *apperrors.InvalidReferenceError
	s.Require().ErrorAs(err, &refErr)
	s.Equal(models.KindRole, refErr.Kind)
}

func (s *EntityServiceSuite) TestPrincipalEmailUniqueAcrossKinds() {
	// The organization seeded in SetupTest already holds this email.
	admin := s.newAdmin("acme@example.com")

	err := s.svc.Admins.Create(s.ctx, admin)
	s.Require().ErrorIs(err, apperrors.ErrDuplicateEntity)
}

func (s *EntityServiceSuite) TestUpdateWhitelistProtectsCredentials() {
	admin := s.newAdmin("ada@example.com")
	s.Require().NoError(s.svc.Admins.Create(s.ctx, admin))

	patch := s.newAdmin("changed@example.com")
	patch.FirstName = "Grace"
	patch.PasswordHash = "attacker-controlled"

	updated, err := s.svc.Admins.Update(s.ctx, admin.ID, patch)
	s.Require().NoError(err)

	s.Equal("Grace", updated.FirstName)
	// Login identifier and secret are not updatable through the entity contract.
	s.Equal("ada@example.com", updated.Email)

	stored, err := s.store.Admins.FindByID(s.ctx, admin.ID)
	s.Require().NoError(err)
	s.NoError(bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("plaintext-secret")))
}

func (s *EntityServiceSuite) TestOrganizationEmailUpdateCannotTakeOverAnotherKind() {
	admin := s.newAdmin("shared@example.com")
	s.Require().NoError(s.svc.Admins.Create(s.ctx, admin))

	patch := &models.Organization{Name: s.org.Name, Email: "shared@example.com", RoleID: s.adminRole.ID}
	_, err := s.svc.Organizations.Update(s.ctx, s.org.ID, patch)
	s.Require().ErrorIs(err, apperrors.ErrDuplicateEntity)

	// The admin still owns the identifier.
	stored, err := s.store.Organizations.FindByID(s.ctx, s.org.ID)
	s.Require().NoError(err)
	s.Equal("acme@example.com", stored.Email)
}

func (s *EntityServiceSuite) TestOrganizationEmailUpdateAllowsOwnAndFreshEmail() {
	same := &models.Organization{Name: "Acme Renamed", Email: "acme@example.com", RoleID: s.adminRole.ID}
	updated, err := s.svc.Organizations.Update(s.ctx, s.org.ID, same)
	s.Require().NoError(err)
	s.Equal("Acme Renamed", updated.Name)

	fresh := &models.Organization{Name: "Acme Renamed", Email: "fresh@example.com", RoleID: s.adminRole.ID}
	updated, err = s.svc.Organizations.Update(s.ctx, s.org.ID, fresh)
	s.Require().NoError(err)
	s.Equal("fresh@example.com", updated.Email)
}

func (s *EntityServiceSuite) TestResponsesOmitSecretHash() {
	admin := s.newAdmin("ada@example.com")
	s.Require().NoError(s.svc.Admins.Create(s.ctx, admin))
	s.Empty(admin.PasswordHash)

	found, err := s.svc.Admins.GetByID(s.ctx, admin.ID)
	s.Require().NoError(err)
	s.Empty(found.PasswordHash)

	admins, err := s.svc.Admins.List(s.ctx)
	s.Require().NoError(err)
	s.Require().NotEmpty(admins)
	for _, a := range admins {
		s.Empty(a.PasswordHash)
	}
}

func (s *EntityServiceSuite) TestEmbeddedPrincipalsOmitSecretHash() {
	faculty := s.seedFaculty("teacher@example.com")

	found, err := s.svc.Faculties.GetByID(s.ctx, faculty.ID)
	s.Require().NoError(err)
	s.Require().NotNil(found.Organization)
	s.Empty(found.Organization.PasswordHash)
}

func (s *EntityServiceSuite) TestUpdateNotFound() {
	_, err := s.svc.Roles.Update(s.ctx, "missing", &models.Role{Name: "x"})
	s.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func (s *EntityServiceSuite) TestCourseUniquenessScopedToOrganization() {
	other := &models.Organization{
		Name:         "Other University",
		Email:        "other@example.com",
		PasswordHash: "secret",
		RoleID:       s.adminRole.ID,
	}
	s.Require().NoError(s.svc.Organizations.Create(s.ctx, other))

	first := &models.Course{Name: "Mathematics", OrganizationID: s.org.ID}
	s.Require().NoError(s.svc.Courses.Create(s.ctx, first))

	elsewhere := &models.Course{Name: "Mathematics", OrganizationID: other.ID}
	s.Require().NoError(s.svc.Courses.Create(s.ctx, elsewhere))

	duplicate := &models.Course{Name: "Mathematics", OrganizationID: s.org.ID}
	err := s.svc.Courses.Create(s.ctx, duplicate)
	s.Require().ErrorIs(err, apperrors.ErrDuplicateEntity)
	s.Contains(err.Error(), "already has this course")
}

func (s *EntityServiceSuite) TestClassNameAndNumberEachUnique() {
	faculty := s.seedFaculty("teacher@example.com")
	course := &models.Course{Name: "Physics", OrganizationID: s.org.ID}
	s.Require().NoError(s.svc.Courses.Create(s.ctx, course))

	first := &models.Class{Name: "Alpha", No: 1, FacultyID: faculty.ID, CourseID: course.ID}
	s.Require().NoError(s.svc.Classes.Create(s.ctx, first))

	sameName := &models.Class{Name: "Alpha", No: 2, FacultyID: faculty.ID, CourseID: course.ID}
	s.Require().ErrorIs(s.svc.Classes.Create(s.ctx, sameName), apperrors.ErrDuplicateEntity)

	sameNo := &models.Class{Name: "Beta", No: 1, FacultyID: faculty.ID, CourseID: course.ID}
	s.Require().ErrorIs(s.svc.Classes.Create(s.ctx, sameNo), apperrors.ErrDuplicateEntity)
}

func (s *EntityServiceSuite) TestDeleteLeavesDanglingReferencesReadable() {
	admin := s.newAdmin("ada@example.com")
	s.Require().NoError(s.svc.Admins.Create(s.ctx, admin))

	s.Require().NoError(s.svc.Roles.Delete(s.ctx, s.adminRole.ID))

	// Reads tolerate the gap.
	found, err := s.svc.Admins.GetByID(s.ctx, admin.ID)
	s.Require().NoError(err)
	s.Nil(found.Role)

	// New writes against the dead reference do not.
	late := s.newAdmin("late@example.com")
	s.Require().ErrorIs(s.svc.Admins.Create(s.ctx, late), apperrors.ErrInvalidReference)
}

func (s *EntityServiceSuite) TestDeleteNotFound() {
	err := s.svc.Roles.Delete(s.ctx, "missing")
	s.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func (s *EntityServiceSuite) TestListResolvesReferencesInBatch() {
	for _, email := range []string{"one@example.com", "two@example.com"} {
		s.Require().NoError(s.svc.Admins.Create(s.ctx, s.newAdmin(email)))
	}

	admins, err := s.svc.Admins.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(admins, 2)
	for _, a := range admins {
		s.Require().NotNil(a.Role)
		s.Equal("admin", a.Role.Name)
	}
}

func (s *EntityServiceSuite) seedFaculty(email string) *models.Faculty {
	faculty := &models.Faculty{
		FirstName:      "Fran",
		Email:          email,
		PasswordHash:   "secret",
		OrganizationID: s.org.ID,
		RoleID:         s.adminRole.ID,
	}
	s.Require().NoError(s.svc.Faculties.Create(s.ctx, faculty))
	return faculty
}

package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/unisity/unisity/internal/app/models"
	"github.com/unisity/unisity/internal/app/models/dto"
	"github.com/unisity/unisity/internal/app/store"
	"github.com/unisity/unisity/internal/pkg/apperrors"
	"github.com/unisity/unisity/internal/pkg/auth"
)

func testJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "test-secret",
		TokenExpiry: time.Hour,
		TokenIssuer: "unisity.test",
	})
}

type AuthServiceSuite struct {
	suite.Suite
	store *store.Store
	svc   *Services
	jwt   *auth.JWTService
	ctx   context.Context

	role    *models.Role
	org     *models.Organization
	admin   *models.Admin
	student *models.Student
}

func (s *AuthServiceSuite) SetupTest() {
	s.store = store.NewMemStore()
	s.jwt = testJWTService()
	s.svc = NewServices(s.store, s.jwt)
	s.ctx = context.Background()

	s.role = &models.Role{Name: "admin"}
	s.Require().NoError(s.svc.Roles.Create(s.ctx, s.role))

	s.org = &models.Organization{
		Name:         "Acme University",
		Email:        "acme@example.com",
		PasswordHash: "org-password",
		RoleID:       s.role.ID,
	}
	s.Require().NoError(s.svc.Organizations.Create(s.ctx, s.org))

	s.admin = &models.Admin{
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Email:        "ada@example.com",
		PasswordHash: "admin-password",
		RoleID:       s.role.ID,
	}
	s.Require().NoError(s.svc.Admins.Create(s.ctx, s.admin))

	s.student = &models.Student{
		FirstName:      "Sam",
		LastName:       "Student",
		Email:          "sam@example.com",
		PasswordHash:   "student-password",
		OrganizationID: s.org.ID,
		RoleID:         s.role.ID,
	}
	s.Require().NoError(s.svc.Students.Create(s.ctx, s.student))
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceSuite))
}

func (s *AuthServiceSuite) login(email, password string) (*dto.Session, error) {
	return s.svc.Auth.Login(s.ctx, &dto.LoginRequest{Email: email, Password: password})
}

func (s *AuthServiceSuite) TestLoginUnknownIdentity() {
	_, err := s.login("nobody@example.com", "whatever")
	s.Require().ErrorIs(err, apperrors.ErrInvalidIdentity)
}

func (s *AuthServiceSuite) TestLoginWrongPassword() {
	_, err := s.login("ada@example.com", "wrong")
	s.Require().ErrorIs(err, apperrors.ErrInvalidCredentials)

	// A known email never falls through to the identity error.
	s.Require().NotErrorIs(err, apperrors.ErrInvalidIdentity)
}

func (s *AuthServiceSuite) TestLoginAdmin() {
	session, err := s.login("ada@example.com", "admin-password")
	s.Require().NoError(err)

	s.NotEmpty(session.Token.AccessToken)
	s.Equal("Bearer", session.Token.TokenType)
	s.Equal(models.KindAdmin, session.User.Kind)
	s.Equal("Ada Lovelace", session.User.Name)
	s.Equal("admin", session.User.Role)
	s.Nil(session.User.Organization)

	claims, err := s.jwt.ValidateAndExtractClaims(session.Token.AccessToken)
	s.Require().NoError(err)
	s.Equal(s.admin.ID, claims.Subject)
	s.Equal(models.KindAdmin, claims.Kind)
}

func (s *AuthServiceSuite) TestLoginOrganization() {
	session, err := s.login("acme@example.com", "org-password")
	s.Require().NoError(err)

	s.Equal(models.KindOrganization, session.User.Kind)
	s.Equal("Acme University", session.User.Name)
}

func (s *AuthServiceSuite) TestLoginStudentEmbedsOrganization() {
	session, err := s.login("sam@example.com", "student-password")
	s.Require().NoError(err)

	s.Equal(models.KindStudent, session.User.Kind)
	s.Require().NotNil(session.User.Organization)
	s.Equal(s.org.ID, session.User.Organization.ID)
	s.Equal("Acme University", session.User.Organization.Name)
}

func (s *AuthServiceSuite) TestMeRoundTrip() {
	user, err := s.svc.Auth.Me(s.ctx, models.KindStudent, s.student.ID)
	s.Require().NoError(err)

	s.Equal("sam@example.com", user.Email)
	s.Require().NotNil(user.Organization)
	s.Equal(s.org.ID, user.Organization.ID)
}

func (s *AuthServiceSuite) TestMeUnknownPrincipal() {
	_, err := s.svc.Auth.Me(s.ctx, models.KindAdmin, "missing")
	s.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func (s *AuthServiceSuite) TestChangePassword() {
	err := s.svc.Auth.ChangePassword(s.ctx, models.KindAdmin, s.admin.ID, &dto.ChangePasswordRequest{
		OldPassword: "wrong",
		NewPassword: "replacement-password",
	})
	s.Require().ErrorIs(err, apperrors.ErrInvalidCredentials)

	err = s.svc.Auth.ChangePassword(s.ctx, models.KindAdmin, s.admin.ID, &dto.ChangePasswordRequest{
		OldPassword: "admin-password",
		NewPassword: "replacement-password",
	})
	s.Require().NoError(err)

	_, err = s.login("ada@example.com", "admin-password")
	s.Require().ErrorIs(err, apperrors.ErrInvalidCredentials)

	_, err = s.login("ada@example.com", "replacement-password")
	s.Require().NoError(err)
}

func (s *AuthServiceSuite) TestResetPassword() {
	err := s.svc.Auth.ResetPassword(s.ctx, models.KindStudent, s.student.ID, &dto.ResetPasswordRequest{
		NewPassword: "fresh-password",
	})
	s.Require().NoError(err)

	_, err = s.login("sam@example.com", "fresh-password")
	s.Require().NoError(err)
}

func (s *AuthServiceSuite) TestResetPasswordUnknownKind() {
	err := s.svc.Auth.ResetPassword(s.ctx, "course", "some-id", &dto.ResetPasswordRequest{
		NewPassword: "fresh-password",
	})
	s.Require().ErrorIs(err, apperrors.ErrBadRequest)
}

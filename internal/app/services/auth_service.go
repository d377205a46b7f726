package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/unisity/unisity/internal/app/models"
	"github.com/unisity/unisity/internal/app/models/dto"
	"github.com/unisity/unisity/internal/app/store"
	"github.com/unisity/unisity/internal/pkg/apperrors"
	"github.com/unisity/unisity/internal/pkg/auth"
	"github.com/unisity/unisity/internal/pkg/logger"
)

// AuthService resolves login identities across the four principal stores
// and issues session tokens.
type AuthService struct {
	store      *store.Store
	jwtService *auth.JWTService
}

// NewAuthService creates a new authentication service
func NewAuthService(st *store.Store, jwtService *auth.JWTService) *AuthService {
	return &AuthService{
		store:      st,
		jwtService: jwtService,
	}
}

// Login resolves the email against the principal stores in a fixed order
// (admin, organization, faculty, student), verifies the password and issues
// a signed session. An unknown email maps to ErrInvalidIdentity; a known
// email with a wrong password maps to ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.Session, error) {
	if admin, err := s.store.Admins.FindOne(ctx, store.Filter{"email": req.Email}); err == nil {
		return s.loginAdmin(ctx, admin, req.Password)
	} else if !errors.Is(err, store.ErrNoDocument) {
		return nil, fmt.Errorf("error resolving identity: %w", err)
	}

	if org, err := s.store.Organizations.FindOne(ctx, store.Filter{"email": req.Email}); err == nil {
		return s.loginOrganization(ctx, org, req.Password)
	} else if !errors.Is(err, store.ErrNoDocument) {
		return nil, fmt.Errorf("error resolving identity: %w", err)
	}

	if faculty, err := s.store.Faculties.FindOne(ctx, store.Filter{"email": req.Email}); err == nil {
		return s.loginFaculty(ctx, faculty, req.Password)
	} else if !errors.Is(err, store.ErrNoDocument) {
		return nil, fmt.Errorf("error resolving identity: %w", err)
	}

	if student, err := s.store.Students.FindOne(ctx, store.Filter{"email": req.Email}); err == nil {
		return s.loginStudent(ctx, student, req.Password)
	} else if !errors.Is(err, store.ErrNoDocument) {
		return nil, fmt.Errorf("error resolving identity: %w", err)
	}

	logger.Warn().Str("email", req.Email).Msg("Login attempt with unknown identity")
	return nil, apperrors.ErrInvalidIdentity
}

func (s *AuthService) loginAdmin(ctx context.Context, admin *models.Admin, password string) (*dto.Session, error) {
	if !auth.CheckPassword(admin.PasswordHash, password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	user := dto.SessionUser{
		ID:    admin.ID,
		Kind:  models.KindAdmin,
		Email: admin.Email,
		Name:  fmt.Sprintf("%s %s", admin.FirstName, admin.LastName),
		Role:  s.roleName(ctx, admin.RoleID),
	}
	return s.issueSession(user)
}

func (s *AuthService) loginOrganization(ctx context.Context, org *models.Organization, password string) (*dto.Session, error) {
	if !auth.CheckPassword(org.PasswordHash, password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	user := dto.SessionUser{
		ID:    org.ID,
		Kind:  models.KindOrganization,
		Email: org.Email,
		Name:  org.Name,
		Role:  s.roleName(ctx, org.RoleID),
	}
	return s.issueSession(user)
}

func (s *AuthService) loginFaculty(ctx context.Context, faculty *models.Faculty, password string) (*dto.Session, error) {
	if !auth.CheckPassword(faculty.PasswordHash, password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	user := dto.SessionUser{
		ID:           faculty.ID,
		Kind:         models.KindFaculty,
		Email:        faculty.Email,
		Name:         fmt.Sprintf("%s %s", faculty.FirstName, faculty.LastName),
		Role:         s.roleName(ctx, faculty.RoleID),
		Organization: s.organizationSummary(ctx, faculty.OrganizationID),
	}
	return s.issueSession(user)
}

func (s *AuthService) loginStudent(ctx context.Context, student *models.Student, password string) (*dto.Session, error) {
	if !auth.CheckPassword(student.PasswordHash, password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	user := dto.SessionUser{
		ID:           student.ID,
		Kind:         models.KindStudent,
		Email:        student.Email,
		Name:         fmt.Sprintf("%s %s", student.FirstName, student.LastName),
		Role:         s.roleName(ctx, student.RoleID),
		Organization: s.organizationSummary(ctx, student.OrganizationID),
	}
	return s.issueSession(user)
}

func (s *AuthService) issueSession(user dto.SessionUser) (*dto.Session, error) {
	token, expiresIn, err := s.jwtService.GenerateToken(user.ID, user.Email, user.Kind, user.Role)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}
	return &dto.Session{
		Token: dto.TokenResponse{
			AccessToken: token,
			TokenType:   "Bearer",
			ExpiresIn:   expiresIn,
		},
		User: user,
	}, nil
}

// roleName resolves a role id to its name. Session enrichment is tolerant
// of dangling role references.
func (s *AuthService) roleName(ctx context.Context, roleID string) string {
	role := Lookup(ctx, s.store.Roles, roleID)
	if role == nil {
		return ""
	}
	return role.Name
}

func (s *AuthService) organizationSummary(ctx context.Context, orgID string) *dto.OrganizationSummary {
	org := Lookup(ctx, s.store.Organizations, orgID)
	if org == nil {
		return nil
	}
	return &dto.OrganizationSummary{
		ID:    org.ID,
		Name:  org.Name,
		Email: org.Email,
	}
}

// Me re-reads the principal behind validated token claims.
func (s *AuthService) Me(ctx context.Context, kind, principalID string) (*dto.SessionUser, error) {
	switch kind {
	case models.KindAdmin:
		admin, err := s.store.Admins.FindByID(ctx, principalID)
		if err != nil {
			return nil, s.mapMeError(err, kind)
		}
		return &dto.SessionUser{
			ID:    admin.ID,
			Kind:  kind,
			Email: admin.Email,
			Name:  fmt.Sprintf("%s %s", admin.FirstName, admin.LastName),
			Role:  s.roleName(ctx, admin.RoleID),
		}, nil
	case models.KindOrganization:
		org, err := s.store.Organizations.FindByID(ctx, principalID)
		if err != nil {
			return nil, s.mapMeError(err, kind)
		}
		return &dto.SessionUser{
			ID:    org.ID,
			Kind:  kind,
			Email: org.Email,
			Name:  org.Name,
			Role:  s.roleName(ctx, org.RoleID),
		}, nil
	case models.KindFaculty:
		faculty, err := s.store.Faculties.FindByID(ctx, principalID)
		if err != nil {
			return nil, s.mapMeError(err, kind)
		}
		return &dto.SessionUser{
			ID:           faculty.ID,
			Kind:         kind,
			Email:        faculty.Email,
			Name:         fmt.Sprintf("%s %s", faculty.FirstName, faculty.LastName),
			Role:         s.roleName(ctx, faculty.RoleID),
			Organization: s.organizationSummary(ctx, faculty.OrganizationID),
		}, nil
	case models.KindStudent:
		student, err := s.store.Students.FindByID(ctx, principalID)
		if err != nil {
			return nil, s.mapMeError(err, kind)
		}
		return &dto.SessionUser{
			ID:           student.ID,
			Kind:         kind,
			Email:        student.Email,
			Name:         fmt.Sprintf("%s %s", student.FirstName, student.LastName),
			Role:         s.roleName(ctx, student.RoleID),
			Organization: s.organizationSummary(ctx, student.OrganizationID),
		}, nil
	default:
		return nil, apperrors.ErrTokenInvalid
	}
}

func (s *AuthService) mapMeError(err error, kind string) error {
	if errors.Is(err, store.ErrNoDocument) {
		return apperrors.NewNotFoundError(fmt.Sprintf("This %s not found", kind))
	}
	return fmt.Errorf("error loading principal: %w", err)
}

// ChangePassword verifies the old secret and replaces the stored hash
// for the given principal in a single atomic update.
func (s *AuthService) ChangePassword(ctx context.Context, kind, id string, req *dto.ChangePasswordRequest) error {
	hash, err := s.principalPasswordHash(ctx, kind, id)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(hash, req.OldPassword) {
		return apperrors.ErrInvalidCredentials
	}
	return s.storePasswordHash(ctx, kind, id, req.NewPassword)
}

// ResetPassword replaces the stored hash without checking the old secret.
// Mirrors the forgot-password flow where identity was asserted out of band.
func (s *AuthService) ResetPassword(ctx context.Context, kind, id string, req *dto.ResetPasswordRequest) error {
	if _, err := s.principalPasswordHash(ctx, kind, id); err != nil {
		return err
	}
	return s.storePasswordHash(ctx, kind, id, req.NewPassword)
}

func (s *AuthService) principalPasswordHash(ctx context.Context, kind, id string) (string, error) {
	switch kind {
	case models.KindAdmin:
		admin, err := s.store.Admins.FindByID(ctx, id)
		if err != nil {
			return "", s.mapMeError(err, kind)
		}
		return admin.PasswordHash, nil
	case models.KindOrganization:
		org, err := s.store.Organizations.FindByID(ctx, id)
		if err != nil {
			return "", s.mapMeError(err, kind)
		}
		return org.PasswordHash, nil
	case models.KindFaculty:
		faculty, err := s.store.Faculties.FindByID(ctx, id)
		if err != nil {
			return "", s.mapMeError(err, kind)
		}
		return faculty.PasswordHash, nil
	case models.KindStudent:
		student, err := s.store.Students.FindByID(ctx, id)
		if err != nil {
			return "", s.mapMeError(err, kind)
		}
		return student.PasswordHash, nil
	default:
		return "", apperrors.NewBadRequestError(fmt.Sprintf("Unknown account kind: %s", kind))
	}
}

func (s *AuthService) storePasswordHash(ctx context.Context, kind, id, newPassword string) error {
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}
	patch := store.Patch{"passwordHash": hash}

	switch kind {
	case models.KindAdmin:
		_, err = s.store.Admins.UpdateOne(ctx, id, patch)
	case models.KindOrganization:
		_, err = s.store.Organizations.UpdateOne(ctx, id, patch)
	case models.KindFaculty:
		_, err = s.store.Faculties.UpdateOne(ctx, id, patch)
	case models.KindStudent:
		_, err = s.store.Students.UpdateOne(ctx, id, patch)
	default:
		return apperrors.NewBadRequestError(fmt.Sprintf("Unknown account kind: %s", kind))
	}
	if errors.Is(err, store.ErrNoDocument) {
		return apperrors.NewNotFoundError(fmt.Sprintf("This %s not found", kind))
	}
	if err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}
	return nil
}

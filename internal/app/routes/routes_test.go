package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"

	"github.com/unisity/unisity/internal/app/controllers"
	"github.com/unisity/unisity/internal/app/models"
	"github.com/unisity/unisity/internal/app/services"
	"github.com/unisity/unisity/internal/app/store"
	"github.com/unisity/unisity/internal/middleware"
	"github.com/unisity/unisity/internal/pkg/auth"
)

type APISuite struct {
	suite.Suite
	router *gin.Engine
	svc    *services.Services

	roleID string
}

func (s *APISuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	st := store.NewMemStore()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "test-secret",
		TokenExpiry: time.Hour,
		TokenIssuer: "unisity.test",
	})
	s.svc = services.NewServices(st, jwtService)

	s.router = gin.New()
	SetupRouter(s.router, controllers.NewControllers(s.svc), middleware.NewAuthMiddleware(jwtService))

	role := &models.Role{Name: "admin"}
	s.Require().NoError(s.svc.Roles.Create(context.Background(), role))
	s.roleID = role.ID
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (s *APISuite) request(method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func (s *APISuite) TestHealth() {
	rec, _ := s.request(http.MethodGet, "/health", nil)
	s.Equal(http.StatusOK, rec.Code)
}

func (s *APISuite) TestResourceLifecycle() {
	rec, env := s.request(http.MethodPost, "/api/v1/subscriptions", gin.H{
		"name":  "Premium",
		"price": 100,
	})
	s.Require().Equal(http.StatusCreated, rec.Code)
	s.True(env.Success)

	var created models.Subscription
	s.Require().NoError(json.Unmarshal(env.Data, &created))
	s.NotEmpty(created.ID)
	s.True(created.IsActive)

	rec, env = s.request(http.MethodGet, "/api/v1/subscriptions", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var list []models.Subscription
	s.Require().NoError(json.Unmarshal(env.Data, &list))
	s.Len(list, 1)

	rec, env = s.request(http.MethodPut, "/api/v1/subscriptions/"+created.ID, gin.H{
		"name":  "Premium",
		"price": 150,
	})
	s.Require().Equal(http.StatusOK, rec.Code)
	var updated models.Subscription
	s.Require().NoError(json.Unmarshal(env.Data, &updated))
	s.Equal(150, updated.Price)

	rec, _ = s.request(http.MethodDelete, "/api/v1/subscriptions/"+created.ID, nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	rec, _ = s.request(http.MethodGet, "/api/v1/subscriptions/"+created.ID, nil)
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *APISuite) TestValidationFailure() {
	// Missing required name.
	rec, env := s.request(http.MethodPost, "/api/v1/roles", gin.H{"description": "no name"})
	s.Equal(http.StatusBadRequest, rec.Code)
	s.False(env.Success)
}

func (s *APISuite) TestDuplicateConflict() {
	rec, _ := s.request(http.MethodPost, "/api/v1/roles", gin.H{"name": "student"})
	s.Require().Equal(http.StatusCreated, rec.Code)

	rec, env := s.request(http.MethodPost, "/api/v1/roles", gin.H{"name": "student"})
	s.Equal(http.StatusConflict, rec.Code)
	s.Require().NotNil(env.Error)
	s.Equal("Role already exists", env.Error.Message)
}

func (s *APISuite) TestDanglingReferenceIsNotFound() {
	rec, env := s.request(http.MethodPost, "/api/v1/admins", gin.H{
		"firstName":    "Ada",
		"email":        "ada@example.com",
		"passwordHash": "secret-password",
		"roleId":       "dangling-role",
	})
	s.Equal(http.StatusNotFound, rec.Code)
	s.Require().NotNil(env.Error)
	s.Equal("This role not found", env.Error.Message)
}

func (s *APISuite) createAdmin(email string) string {
	rec, env := s.request(http.MethodPost, "/api/v1/admins", gin.H{
		"firstName":    "Ada",
		"lastName":     "Lovelace",
		"email":        email,
		"passwordHash": "secret-password",
		"roleId":       s.roleID,
	})
	s.Require().Equal(http.StatusCreated, rec.Code)

	var created models.Admin
	s.Require().NoError(json.Unmarshal(env.Data, &created))
	return created.ID
}

func (s *APISuite) TestLoginFlow() {
	s.createAdmin("ada@example.com")

	// Unknown identity reads as not found.
	rec, _ := s.request(http.MethodPost, "/api/v1/auth/login", gin.H{
		"email":    "nobody@example.com",
		"password": "whatever",
	})
	s.Equal(http.StatusNotFound, rec.Code)

	rec, _ = s.request(http.MethodPost, "/api/v1/auth/login", gin.H{
		"email":    "ada@example.com",
		"password": "wrong",
	})
	s.Equal(http.StatusUnauthorized, rec.Code)

	rec, env := s.request(http.MethodPost, "/api/v1/auth/login", gin.H{
		"email":    "ada@example.com",
		"password": "secret-password",
	})
	s.Require().Equal(http.StatusOK, rec.Code)

	var session struct {
		Token struct {
			AccessToken string `json:"accessToken"`
		} `json:"token"`
		User struct {
			Kind string `json:"kind"`
			Role string `json:"role"`
		} `json:"user"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &session))
	s.NotEmpty(session.Token.AccessToken)
	s.Equal(models.KindAdmin, session.User.Kind)
	s.Equal("admin", session.User.Role)

	// The issued token opens /auth/me.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", session.Token.AccessToken))
	recMe := httptest.NewRecorder()
	s.router.ServeHTTP(recMe, req)
	s.Equal(http.StatusOK, recMe.Code)
}

func (s *APISuite) createOrganization(email string) string {
	rec, env := s.request(http.MethodPost, "/api/v1/organizations", gin.H{
		"name":         "Acme University",
		"email":        email,
		"passwordHash": "org-password",
		"roleId":       s.roleID,
	})
	s.Require().Equal(http.StatusCreated, rec.Code)

	var created models.Organization
	s.Require().NoError(json.Unmarshal(env.Data, &created))
	return created.ID
}

func (s *APISuite) TestUsersDirectory() {
	s.createAdmin("ada@example.com")
	orgID := s.createOrganization("acme@example.com")

	rec, _ := s.request(http.MethodPost, "/api/v1/faculties", gin.H{
		"firstName":      "Fran",
		"email":          "fran@example.com",
		"passwordHash":   "faculty-password",
		"organizationId": orgID,
		"roleId":         s.roleID,
	})
	s.Require().Equal(http.StatusCreated, rec.Code)

	rec, env := s.request(http.MethodGet, "/api/v1/users", nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	var directory struct {
		Admins        []models.Admin        `json:"admins"`
		Organizations []models.Organization `json:"organizations"`
		Faculties     []models.Faculty      `json:"faculties"`
		Students      []models.Student      `json:"students"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &directory))
	s.Len(directory.Admins, 1)
	s.Len(directory.Organizations, 1)
	s.Len(directory.Faculties, 1)
	s.Empty(directory.Students)
}

func (s *APISuite) TestUsersByOrganization() {
	orgID := s.createOrganization("acme@example.com")
	otherID := s.createOrganization("other@example.com")

	rec, _ := s.request(http.MethodPost, "/api/v1/faculties", gin.H{
		"firstName":      "Fran",
		"email":          "fran@example.com",
		"passwordHash":   "faculty-password",
		"organizationId": orgID,
		"roleId":         s.roleID,
	})
	s.Require().Equal(http.StatusCreated, rec.Code)

	rec, _ = s.request(http.MethodPost, "/api/v1/students", gin.H{
		"firstName":      "Sam",
		"email":          "sam@example.com",
		"passwordHash":   "student-password",
		"organizationId": otherID,
		"roleId":         s.roleID,
	})
	s.Require().Equal(http.StatusCreated, rec.Code)

	rec, env := s.request(http.MethodGet, "/api/v1/users/"+orgID, nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	var members struct {
		Faculties []models.Faculty `json:"faculties"`
		Students  []models.Student `json:"students"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &members))
	s.Len(members.Faculties, 1)
	s.Empty(members.Students)

	rec, _ = s.request(http.MethodGet, "/api/v1/users/missing", nil)
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *APISuite) TestResponsesNeverCarrySecretHash() {
	s.createAdmin("ada@example.com")

	for _, path := range []string{"/api/v1/admins", "/api/v1/users"} {
		rec, _ := s.request(http.MethodGet, path, nil)
		s.Require().Equal(http.StatusOK, rec.Code)
		s.NotContains(rec.Body.String(), "passwordHash")
	}
}

func (s *APISuite) TestMeRequiresToken() {
	rec, _ := s.request(http.MethodGet, "/api/v1/auth/me", nil)
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *APISuite) TestPasswordEndpoints() {
	adminID := s.createAdmin("ada@example.com")

	rec, _ := s.request(http.MethodPost, "/api/v1/auth/admin/"+adminID+"/change-password", gin.H{
		"oldPassword": "wrong",
		"newPassword": "replacement-pass",
	})
	s.Equal(http.StatusUnauthorized, rec.Code)

	rec, _ = s.request(http.MethodPost, "/api/v1/auth/admin/"+adminID+"/change-password", gin.H{
		"oldPassword": "secret-password",
		"newPassword": "replacement-pass",
	})
	s.Require().Equal(http.StatusOK, rec.Code)

	rec, _ = s.request(http.MethodPost, "/api/v1/auth/login", gin.H{
		"email":    "ada@example.com",
		"password": "replacement-pass",
	})
	s.Equal(http.StatusOK, rec.Code)

	rec, _ = s.request(http.MethodPost, "/api/v1/auth/admin/"+adminID+"/reset-password", gin.H{
		"newPassword": "reset-pass-123",
	})
	s.Require().Equal(http.StatusOK, rec.Code)

	rec, _ = s.request(http.MethodPost, "/api/v1/auth/login", gin.H{
		"email":    "ada@example.com",
		"password": "reset-pass-123",
	})
	s.Equal(http.StatusOK, rec.Code)
}

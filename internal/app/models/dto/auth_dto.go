package dto

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType" example:"Bearer"`
	ExpiresIn   int    `json:"expiresIn"`
}

// OrganizationSummary is the owning organization embedded in a session
// for faculty and student principals.
type OrganizationSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SessionUser represents the authenticated principal inside a session
type SessionUser struct {
	ID           string               `json:"id"`
	Kind         string               `json:"kind" example:"student"`
	Email        string               `json:"email"`
	Name         string               `json:"name"`
	Role         string               `json:"role,omitempty"`
	Organization *OrganizationSummary `json:"organization,omitempty"`
}

// Session represents a successful authentication response
type Session struct {
	Token TokenResponse `json:"token"`
	User  SessionUser   `json:"user"`
}

// ChangePasswordRequest carries an old/new secret pair for a signed-in
// password change.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// ResetPasswordRequest carries the replacement secret for a forgot-password
// reset.
type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

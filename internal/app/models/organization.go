package models

// Organization is an institution account owning courses, events and billing
type Organization struct {
	Base
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	OwnerName    string `json:"ownerName"`
	Contact      int64  `json:"contact"`
	AddressLine  string `json:"addressLine"`
	City         string `json:"city"`
	State        string `json:"state"`
	Country      string `json:"country"`
	PasswordHash string `json:"passwordHash,omitempty"`
	RoleID       string `json:"roleId" binding:"required"`
	Role         *Role  `json:"role,omitempty"`
}

package models

import "time"

// Admin is a platform administrator account
type Admin struct {
	Base
	FirstName    string    `json:"firstName" binding:"required"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email" binding:"required,email"`
	Contact      int64     `json:"contact"`
	Dob          time.Time `json:"dob,omitempty"`
	Gender       string    `json:"gender"`
	AddressLine  string    `json:"addressLine"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	Country      string    `json:"country"`
	PasswordHash string    `json:"passwordHash,omitempty"`
	RoleID       string    `json:"roleId" binding:"required"`
	Role         *Role     `json:"role,omitempty"`
}

package models

import "time"

// Student is a learner account belonging to an organization
type Student struct {
	Base
	FirstName      string        `json:"firstName" binding:"required"`
	LastName       string        `json:"lastName"`
	Email          string        `json:"email" binding:"required,email"`
	Contact        int64         `json:"contact"`
	Dob            time.Time     `json:"dob,omitempty"`
	Gender         string        `json:"gender"`
	AddressLine    string        `json:"addressLine"`
	City           string        `json:"city"`
	State          string        `json:"state"`
	Country        string        `json:"country"`
	PasswordHash   string        `json:"passwordHash,omitempty"`
	OrganizationID string        `json:"organizationId" binding:"required"`
	Organization   *Organization `json:"organization,omitempty"`
	RoleID         string        `json:"roleId" binding:"required"`
	Role           *Role         `json:"role,omitempty"`
}

package models

// Role is a named role assignable to principals
type Role struct {
	Base
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

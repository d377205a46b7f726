package models

// Subscription is a billing plan organizations can purchase
type Subscription struct {
	Base
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Price       int    `json:"price"`
}

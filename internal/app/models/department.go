package models

// Department is an organizational unit within an institution
type Department struct {
	Base
	Name           string        `json:"name" binding:"required"`
	Description    string        `json:"description"`
	OrganizationID string        `json:"organizationId" binding:"required"`
	Organization   *Organization `json:"organization,omitempty"`
}

package models

// Course is a programme of study offered by an organization
type Course struct {
	Base
	Name           string        `json:"name" binding:"required"`
	Description    string        `json:"description"`
	Credits        int           `json:"credits"`
	CourseType     string        `json:"courseType"`
	OrganizationID string        `json:"organizationId" binding:"required"`
	Organization   *Organization `json:"organization,omitempty"`
}

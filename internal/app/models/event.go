package models

import "time"

// Event is an activity scheduled by an organization
type Event struct {
	Base
	Title          string        `json:"title" binding:"required"`
	Description    string        `json:"description"`
	StartDate      time.Time     `json:"startDate,omitempty"`
	EndDate        time.Time     `json:"endDate,omitempty"`
	OrganizationID string        `json:"organizationId" binding:"required"`
	Organization   *Organization `json:"organization,omitempty"`
}

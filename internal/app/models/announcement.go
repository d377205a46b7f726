package models

// Announcement is a notice published by a faculty member
type Announcement struct {
	Base
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	FacultyID   string   `json:"facultyId" binding:"required"`
	Faculty     *Faculty `json:"faculty,omitempty"`
}

package models

// Subject is a unit of study within a course
type Subject struct {
	Base
	Name     string  `json:"name" binding:"required"`
	Credits  int     `json:"credits"`
	CourseID string  `json:"courseId" binding:"required"`
	Course   *Course `json:"course,omitempty"`
}

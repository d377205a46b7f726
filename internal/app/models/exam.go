package models

import "time"

// Exam is a scheduled examination for a course
type Exam struct {
	Base
	Name      string    `json:"name" binding:"required"`
	StartDate time.Time `json:"startDate,omitempty"`
	EndDate   time.Time `json:"endDate,omitempty"`
	CourseID  string    `json:"courseId" binding:"required"`
	Course    *Course   `json:"course,omitempty"`
}

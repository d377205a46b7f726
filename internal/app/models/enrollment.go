package models

// Enrollment links a student to a course for a semester
type Enrollment struct {
	Base
	Semester  string   `json:"semester"`
	Grade     string   `json:"grade"`
	CourseID  string   `json:"courseId" binding:"required"`
	Course    *Course  `json:"course,omitempty"`
	StudentID string   `json:"studentId" binding:"required"`
	Student   *Student `json:"student,omitempty"`
}

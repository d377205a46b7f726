package models

// Class is a taught section of a course led by a faculty member
type Class struct {
	Base
	Name      string   `json:"name" binding:"required"`
	Division  string   `json:"division"`
	No        int      `json:"no"`
	FacultyID string   `json:"facultyId" binding:"required"`
	Faculty   *Faculty `json:"faculty,omitempty"`
	CourseID  string   `json:"courseId" binding:"required"`
	Course    *Course  `json:"course,omitempty"`
}

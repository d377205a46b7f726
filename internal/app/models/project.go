package models

// Project is student work supervised by a faculty member
type Project struct {
	Base
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Status      string   `json:"status"`
	Remarks     string   `json:"remarks"`
	FacultyID   string   `json:"facultyId" binding:"required"`
	Faculty     *Faculty `json:"faculty,omitempty"`
	StudentID   string   `json:"studentId" binding:"required"`
	Student     *Student `json:"student,omitempty"`
}

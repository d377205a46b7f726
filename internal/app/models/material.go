package models

// Material is study material uploaded by a faculty member for a subject
type Material struct {
	Base
	File      string   `json:"file" binding:"required"`
	SubjectID string   `json:"subjectId" binding:"required"`
	Subject   *Subject `json:"subject,omitempty"`
	FacultyID string   `json:"facultyId" binding:"required"`
	Faculty   *Faculty `json:"faculty,omitempty"`
}

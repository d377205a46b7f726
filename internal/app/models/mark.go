package models

// Mark records a student's score on a subject in an exam
type Mark struct {
	Base
	TotalMarks    int      `json:"totalMarks"`
	ObtainedMarks int      `json:"obtainedMarks"`
	ExamID        string   `json:"examId" binding:"required"`
	Exam          *Exam    `json:"exam,omitempty"`
	SubjectID     string   `json:"subjectId" binding:"required"`
	Subject       *Subject `json:"subject,omitempty"`
	StudentID     string   `json:"studentId" binding:"required"`
	Student       *Student `json:"student,omitempty"`
}

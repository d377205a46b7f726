// Package models defines the stored entity kinds. Every entity embeds Base
// and keeps relationships as foreign-key identifier strings; the resolved
// parent fields are populated at read time and are never persisted.
package models

import "time"

// Entity kind names, used for collection routing and reference errors.
const (
	KindAdmin        = "admin"
	KindOrganization = "organization"
	KindFaculty      = "faculty"
	KindStudent      = "student"
	KindRole         = "role"
	KindDepartment   = "department"
	KindCourse       = "course"
	KindClass        = "class"
	KindSubject      = "subject"
	KindExam         = "exam"
	KindMark         = "mark"
	KindEnrollment   = "enrollment"
	KindMaterial     = "material"
	KindProject      = "project"
	KindAnnouncement = "announcement"
	KindEvent        = "event"
	KindSubscription = "subscription"
	KindTransaction  = "transaction"
)

// Base holds the fields shared by every stored entity. The identifier is
// assigned by the storage gateway on insert and is immutable afterwards,
// as is CreatedAt.
type Base struct {
	ID        string    `json:"id,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
	IsActive  bool      `json:"isActive"`
}

// DocumentID returns the storage identifier
func (b *Base) DocumentID() string { return b.ID }

// SetDocumentID sets the storage identifier
func (b *Base) SetDocumentID(id string) { b.ID = id }

// MarkCreated stamps the creation time and activates the entity
func (b *Base) MarkCreated(now time.Time) {
	b.CreatedAt = now
	b.IsActive = true
}

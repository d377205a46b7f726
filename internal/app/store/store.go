// Package store implements the document storage gateway. Each entity kind
// lives in its own collection; documents are stored as JSONB with a
// storage-generated UUID identifier.
package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/unisity/unisity/internal/app/models"
)

// Gateway errors
var (
	// ErrNoDocument is returned when no document matches a lookup.
	ErrNoDocument = errors.New("no matching document")
	// ErrDuplicateKey is returned when an insert or update violates a
	// collection's unique key.
	ErrDuplicateKey = errors.New("duplicate key")
)

// Filter selects documents whose fields equal the given values, keyed by
// JSON field name. A nil or empty filter matches every document.
type Filter map[string]any

// Patch is a partial field-level replacement, keyed by JSON field name.
type Patch map[string]any

// Document is the constraint satisfied by all stored entity pointer types.
type Document[T any] interface {
	*T
	DocumentID() string
	SetDocumentID(id string)
}

// Collection is the per-kind accessor contract consumed by the services.
type Collection[T any, P Document[T]] interface {
	FindOne(ctx context.Context, filter Filter) (P, error)
	FindByID(ctx context.Context, id string) (P, error)
	FindByIDs(ctx context.Context, ids []string) ([]P, error)
	FindMany(ctx context.Context, filter Filter) ([]P, error)
	InsertOne(ctx context.Context, doc P) error
	UpdateOne(ctx context.Context, id string, patch Patch) (P, error)
	DeleteOne(ctx context.Context, id string) (int64, error)
}

// Store bundles the typed collections for all entity kinds.
type Store struct {
	Admins        Collection[models.Admin, *models.Admin]
	Organizations Collection[models.Organization, *models.Organization]
	Faculties     Collection[models.Faculty, *models.Faculty]
	Students      Collection[models.Student, *models.Student]
	Roles         Collection[models.Role, *models.Role]
	Departments   Collection[models.Department, *models.Department]
	Courses       Collection[models.Course, *models.Course]
	Classes       Collection[models.Class, *models.Class]
	Subjects      Collection[models.Subject, *models.Subject]
	Exams         Collection[models.Exam, *models.Exam]
	Marks         Collection[models.Mark, *models.Mark]
	Enrollments   Collection[models.Enrollment, *models.Enrollment]
	Materials     Collection[models.Material, *models.Material]
	Projects      Collection[models.Project, *models.Project]
	Announcements Collection[models.Announcement, *models.Announcement]
	Events        Collection[models.Event, *models.Event]
	Subscriptions Collection[models.Subscription, *models.Subscription]
	Transactions  Collection[models.Transaction, *models.Transaction]
}

// NewPgStore creates a Store backed by PostgreSQL JSONB collections.
func NewPgStore(pool *pgxpool.Pool) *Store {
	return &Store{
		Admins:        NewPgCollection[models.Admin](pool, "admins"),
		Organizations: NewPgCollection[models.Organization](pool, "organizations"),
		Faculties:     NewPgCollection[models.Faculty](pool, "faculties"),
		Students:      NewPgCollection[models.Student](pool, "students"),
		Roles:         NewPgCollection[models.Role](pool, "roles"),
		Departments:   NewPgCollection[models.Department](pool, "departments"),
		Courses:       NewPgCollection[models.Course](pool, "courses"),
		Classes:       NewPgCollection[models.Class](pool, "classes"),
		Subjects:      NewPgCollection[models.Subject](pool, "subjects"),
		Exams:         NewPgCollection[models.Exam](pool, "exams"),
		Marks:         NewPgCollection[models.Mark](pool, "marks"),
		Enrollments:   NewPgCollection[models.Enrollment](pool, "enrollments"),
		Materials:     NewPgCollection[models.Material](pool, "materials"),
		Projects:      NewPgCollection[models.Project](pool, "projects"),
		Announcements: NewPgCollection[models.Announcement](pool, "announcements"),
		Events:        NewPgCollection[models.Event](pool, "events"),
		Subscriptions: NewPgCollection[models.Subscription](pool, "subscriptions"),
		Transactions:  NewPgCollection[models.Transaction](pool, "transactions"),
	}
}

// NewMemStore creates an in-memory Store with the same unique keys the
// SQL schema declares. Used by the memory database driver and the tests.
func NewMemStore() *Store {
	return &Store{
		Admins:        NewMemCollection[models.Admin]([]string{"email"}),
		Organizations: NewMemCollection[models.Organization]([]string{"email"}),
		Faculties:     NewMemCollection[models.Faculty]([]string{"email"}),
		Students:      NewMemCollection[models.Student]([]string{"email"}),
		Roles:         NewMemCollection[models.Role]([]string{"name"}),
		Departments:   NewMemCollection[models.Department]([]string{"name"}),
		Courses:       NewMemCollection[models.Course]([]string{"name", "organizationId"}),
		Classes:       NewMemCollection[models.Class]([]string{"name"}, []string{"no"}),
		Subjects:      NewMemCollection[models.Subject]([]string{"name"}),
		Exams:         NewMemCollection[models.Exam]([]string{"name"}),
		Marks:         NewMemCollection[models.Mark](),
		Enrollments:   NewMemCollection[models.Enrollment](),
		Materials:     NewMemCollection[models.Material](),
		Projects:      NewMemCollection[models.Project]([]string{"title"}),
		Announcements: NewMemCollection[models.Announcement]([]string{"title"}),
		Events:        NewMemCollection[models.Event]([]string{"title", "organizationId"}),
		Subscriptions: NewMemCollection[models.Subscription]([]string{"name"}),
		Transactions:  NewMemCollection[models.Transaction](),
	}
}

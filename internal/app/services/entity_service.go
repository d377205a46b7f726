package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/unisity/unisity/internal/app/store"
	"github.com/unisity/unisity/internal/pkg/apperrors"
)

// Entity is the constraint satisfied by all entity model pointer types.
type Entity[T any] interface {
	store.Document[T]
	MarkCreated(now time.Time)
}

// EntityService implements the uniform create/read/update/delete contract
// shared by every entity kind. Per-kind behavior (reference checks,
// read-time resolution, uniqueness rules, update whitelists, secret
// hashing) is supplied by the constructors in this package.
type EntityService[T any, P Entity[T]] struct {
	kind string
	col  store.Collection[T, P]

	// checkRefs verifies foreign keys resolve. required is true on create,
	// where every declared reference must be present.
	checkRefs func(ctx context.Context, doc P, required bool) error

	// resolveOne and resolveMany embed referenced entities at read time.
	// Missing parents are tolerated and left absent.
	resolveOne  func(ctx context.Context, doc P)
	resolveMany func(ctx context.Context, docs []P)

	// uniqueProbe returns the filters whose matches would violate the
	// kind's uniqueness constraints, paired with conflict messages.
	uniqueProbe func(doc P) []uniqueRule

	// patch builds the whitelisted field set applied by Update. The
	// identifier, creation timestamp and active flag are never included.
	patch func(doc P) store.Patch

	// beforeCreate runs after the checks and before persisting; principals
	// use it to hash the supplied secret.
	beforeCreate func(ctx context.Context, doc P) error

	// beforeUpdate runs before the patch is applied; principals use it to
	// keep the login identifier unique across account kinds.
	beforeUpdate func(ctx context.Context, id string, doc P) error

	// redact strips fields that never belong in a response, such as a
	// principal's secret hash. The stored document is not affected.
	redact func(doc P)
}

// uniqueRule pairs a uniqueness filter with its conflict message.
type uniqueRule struct {
	filter  store.Filter
	message string
}

// List returns all entities of the kind with references resolved. An empty
// collection is a valid empty result, not an error.
func (s *EntityService[T, P]) List(ctx context.Context) ([]P, error) {
	docs, err := s.col.FindMany(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("error listing %s: %w", s.kind, err)
	}

	if s.resolveMany != nil {
		s.resolveMany(ctx, docs)
	}
	s.redactAll(docs)

	if docs == nil {
		docs = []P{}
	}
	return docs, nil
}

// ListWhere returns the entities matching the filter, with references
// resolved. Like List, zero matches is a valid empty result.
func (s *EntityService[T, P]) ListWhere(ctx context.Context, filter store.Filter) ([]P, error) {
	docs, err := s.col.FindMany(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing %s: %w", s.kind, err)
	}

	if s.resolveMany != nil {
		s.resolveMany(ctx, docs)
	}
	s.redactAll(docs)

	if docs == nil {
		docs = []P{}
	}
	return docs, nil
}

// GetByID returns one entity with references resolved.
func (s *EntityService[T, P]) GetByID(ctx context.Context, id string) (P, error) {
	doc, err := s.col.FindByID(ctx, id)
	if errors.Is(err, store.ErrNoDocument) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("This %s not found", s.kind))
	}
	if err != nil {
		return nil, fmt.Errorf("error retrieving %s: %w", s.kind, err)
	}

	if s.resolveOne != nil {
		s.resolveOne(ctx, doc)
	}
	if s.redact != nil {
		s.redact(doc)
	}
	return doc, nil
}

// Create validates references and uniqueness, stamps the server-assigned
// fields and persists the entity. The stored document never contains the
// resolved references; they are attached to the returned value afterwards.
func (s *EntityService[T, P]) Create(ctx context.Context, doc P) error {
	if s.checkRefs != nil {
		if err := s.checkRefs(ctx, doc, true); err != nil {
			return err
		}
	}

	if s.uniqueProbe != nil {
		for _, rule := range s.uniqueProbe(doc) {
			_, err := s.col.FindOne(ctx, rule.filter)
			if err == nil {
				return apperrors.NewDuplicateEntityError(rule.message)
			}
			if !errors.Is(err, store.ErrNoDocument) {
				return fmt.Errorf("error checking %s uniqueness: %w", s.kind, err)
			}
		}
	}

	if s.beforeCreate != nil {
		if err := s.beforeCreate(ctx, doc); err != nil {
			return err
		}
	}

	doc.MarkCreated(time.Now().UTC())

	if err := s.col.InsertOne(ctx, doc); err != nil {
		// The storage unique index closes the check-then-insert race.
		if errors.Is(err, store.ErrDuplicateKey) {
			return apperrors.NewDuplicateEntityError(fmt.Sprintf("This %s already exists", s.kind))
		}
		return fmt.Errorf("error creating %s: %w", s.kind, err)
	}

	if s.resolveOne != nil {
		s.resolveOne(ctx, doc)
	}
	if s.redact != nil {
		s.redact(doc)
	}
	return nil
}

// Update applies the whitelisted fields to the matching entity atomically
// and returns the updated document. The identifier and creation timestamp
// are immutable.
func (s *EntityService[T, P]) Update(ctx context.Context, id string, doc P) (P, error) {
	if s.checkRefs != nil {
		if err := s.checkRefs(ctx, doc, false); err != nil {
			return nil, err
		}
	}

	if s.beforeUpdate != nil {
		if err := s.beforeUpdate(ctx, id, doc); err != nil {
			return nil, err
		}
	}

	updated, err := s.col.UpdateOne(ctx, id, s.patch(doc))
	if errors.Is(err, store.ErrNoDocument) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("This %s not found", s.kind))
	}
	if errors.Is(err, store.ErrDuplicateKey) {
		return nil, apperrors.NewDuplicateEntityError(fmt.Sprintf("This %s already exists", s.kind))
	}
	if err != nil {
		return nil, fmt.Errorf("error updating %s: %w", s.kind, err)
	}

	if s.redact != nil {
		s.redact(updated)
	}
	return updated, nil
}

func (s *EntityService[T, P]) redactAll(docs []P) {
	if s.redact == nil {
		return
	}
	for _, doc := range docs {
		s.redact(doc)
	}
}

// Delete removes the matching entity unconditionally. Dependents keep their
// foreign keys; the resolver tolerates the resulting gaps.
func (s *EntityService[T, P]) Delete(ctx context.Context, id string) error {
	count, err := s.col.DeleteOne(ctx, id)
	if err != nil {
		return fmt.Errorf("error deleting %s: %w", s.kind, err)
	}
	if count == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("This %s not found", s.kind))
	}
	return nil
}

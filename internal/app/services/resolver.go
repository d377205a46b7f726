package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/unisity/unisity/internal/app/store"
	"github.com/unisity/unisity/internal/pkg/apperrors"
)

// Lookup fetches a referenced entity for read-time embedding. A blank or
// dangling reference yields nil rather than an error, so a deleted parent
// becomes a gap in the output instead of failing the request.
func Lookup[T any, P store.Document[T]](ctx context.Context, col store.Collection[T, P], id string) P {
	if id == "" {
		return nil
	}
	doc, err := col.FindByID(ctx, id)
	if err != nil {
		return nil
	}
	return doc
}

// LookupSet batch-fetches referenced entities keyed by identifier, one
// storage round trip per kind. Missing identifiers are absent from the map.
func LookupSet[T any, P store.Document[T]](ctx context.Context, col store.Collection[T, P], ids []string) map[string]P {
	seen := make(map[string]struct{}, len(ids))
	uniq := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		uniq = append(uniq, id)
	}
	if len(uniq) == 0 {
		return nil
	}

	docs, err := col.FindByIDs(ctx, uniq)
	if err != nil {
		// Read-time enrichment never fails the request.
		return nil
	}

	out := make(map[string]P, len(docs))
	for _, doc := range docs {
		out[doc.DocumentID()] = doc
	}
	return out
}

// Require verifies a foreign key resolves to an existing entity, failing with
// an invalid-reference error naming the kind. Used by create and update paths.
func Require[T any, P store.Document[T]](ctx context.Context, col store.Collection[T, P], kind, id string) (P, error) {
	if id == "" {
		return nil, apperrors.NewInvalidReferenceError(kind)
	}
	doc, err := col.FindByID(ctx, id)
	if errors.Is(err, store.ErrNoDocument) {
		return nil, apperrors.NewInvalidReferenceError(kind)
	}
	if err != nil {
		return nil, fmt.Errorf("error checking %s reference: %w", kind, err)
	}
	return doc, nil
}

// checkRef runs Require for a foreign key. When the field is optional for
// the operation (partial updates), a blank value passes.
func checkRef[T any, P store.Document[T]](ctx context.Context, col store.Collection[T, P], kind, id string, required bool) error {
	if id == "" && !required {
		return nil
	}
	_, err := Require(ctx, col, kind, id)
	return err
}

// keysOf extracts a foreign-key column from a slice of entities.
func keysOf[T any](docs []T, key func(T) string) []string {
	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		ids = append(ids, key(doc))
	}
	return ids
}

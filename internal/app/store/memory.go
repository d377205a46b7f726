package store

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sync"

	"github.com/google/uuid"
)

// MemCollection is a Collection backed by process memory. It mirrors the
// PgCollection semantics, including unique-key enforcement, and backs the
// "memory" database driver and the test suites.
type MemCollection[T any, P Document[T]] struct {
	mu     sync.RWMutex
	docs   map[string]map[string]any
	order  []string
	unique [][]string
}

// NewMemCollection creates an in-memory collection. Each uniqueKeys
// argument is a field set that must be unique across the collection.
func NewMemCollection[T any, P Document[T]](uniqueKeys ...[]string) *MemCollection[T, P] {
	return &MemCollection[T, P]{
		docs:   make(map[string]map[string]any),
		unique: uniqueKeys,
	}
}

// FindOne returns the first document matching the filter.
func (c *MemCollection[T, P]) FindOne(ctx context.Context, filter Filter) (P, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	match, err := normalize(map[string]any(filter))
	if err != nil {
		return nil, err
	}

	for _, id := range c.order {
		if matches(c.docs[id], match) {
			return c.decode(id)
		}
	}
	return nil, ErrNoDocument
}

// FindByID returns the document with the given identifier.
func (c *MemCollection[T, P]) FindByID(ctx context.Context, id string) (P, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if _, ok := c.docs[id]; !ok {
		return nil, ErrNoDocument
	}
	return c.decode(id)
}

// FindByIDs returns the documents whose identifiers are in the given set.
func (c *MemCollection[T, P]) FindByIDs(ctx context.Context, ids []string) ([]P, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var docs []P
	for _, id := range ids {
		if _, ok := c.docs[id]; !ok {
			continue
		}
		doc, err := c.decode(id)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// FindMany returns all documents matching the filter, in insertion order.
func (c *MemCollection[T, P]) FindMany(ctx context.Context, filter Filter) ([]P, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	match, err := normalize(map[string]any(filter))
	if err != nil {
		return nil, err
	}

	var docs []P
	for _, id := range c.order {
		if !matches(c.docs[id], match) {
			continue
		}
		doc, err := c.decode(id)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// InsertOne persists a new document, generating its identifier.
func (c *MemCollection[T, P]) InsertOne(ctx context.Context, doc P) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	fields, err := encode(doc)
	if err != nil {
		return err
	}

	if err := c.checkUnique(fields, ""); err != nil {
		return err
	}

	id := uuid.New().String()
	c.docs[id] = fields
	c.order = append(c.order, id)
	doc.SetDocumentID(id)
	return nil
}

// UpdateOne merges the patch into the matching document and returns it.
func (c *MemCollection[T, P]) UpdateOne(ctx context.Context, id string, patch Patch) (P, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	existing, ok := c.docs[id]
	if !ok {
		return nil, ErrNoDocument
	}

	fields, err := normalize(map[string]any(patch))
	if err != nil {
		return nil, err
	}

	merged := make(map[string]any, len(existing)+len(fields))
	for k, v := range existing {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}

	if err := c.checkUnique(merged, id); err != nil {
		return nil, err
	}

	c.docs[id] = merged
	return c.decode(id)
}

// DeleteOne removes the matching document and reports how many were removed.
func (c *MemCollection[T, P]) DeleteOne(ctx context.Context, id string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.docs[id]; !ok {
		return 0, nil
	}

	delete(c.docs, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return 1, nil
}

// decode materializes the stored fields into the entity type. Callers must
// hold at least a read lock.
func (c *MemCollection[T, P]) decode(id string) (P, error) {
	body, err := json.Marshal(c.docs[id])
	if err != nil {
		return nil, fmt.Errorf("error encoding stored document %s: %w", id, err)
	}
	return decodeDocument[T, P](id, body)
}

// checkUnique verifies the candidate fields against every other document's
// unique key sets. Fields that are absent or empty are not constrained.
func (c *MemCollection[T, P]) checkUnique(candidate map[string]any, selfID string) error {
	for _, keys := range c.unique {
		if !hasValues(candidate, keys) {
			continue
		}
		for id, fields := range c.docs {
			if id == selfID {
				continue
			}
			if equalOn(candidate, fields, keys) {
				return fmt.Errorf("%w on %v", ErrDuplicateKey, keys)
			}
		}
	}
	return nil
}

func hasValues(fields map[string]any, keys []string) bool {
	for _, key := range keys {
		v, ok := fields[key]
		if !ok || v == nil || v == "" {
			return false
		}
	}
	return true
}

func equalOn(a, b map[string]any, keys []string) bool {
	for _, key := range keys {
		if !reflect.DeepEqual(a[key], b[key]) {
			return false
		}
	}
	return true
}

func matches(fields, filter map[string]any) bool {
	for key, want := range filter {
		if !reflect.DeepEqual(fields[key], want) {
			return false
		}
	}
	return true
}

// encode round-trips a document through JSON so stored values have the
// same shapes the JSONB store would produce.
func encode(doc any) (map[string]any, error) {
	body, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("error encoding document: %w", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("error decoding document: %w", err)
	}
	return fields, nil
}

func normalize(fields map[string]any) (map[string]any, error) {
	if fields == nil {
		return map[string]any{}, nil
	}
	return encode(fields)
}

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/unisity/unisity/internal/pkg/dberrors"
)

// PgCollection is a Collection backed by a PostgreSQL table holding one
// JSONB document per row. Uniqueness is enforced by expression indexes on
// the document fields, so a racing duplicate insert fails atomically.
type PgCollection[T any, P Document[T]] struct {
	pool  *pgxpool.Pool
	table string
}

// NewPgCollection creates a collection over the given table.
func NewPgCollection[T any, P Document[T]](pool *pgxpool.Pool, table string) *PgCollection[T, P] {
	return &PgCollection[T, P]{
		pool:  pool,
		table: table,
	}
}

// FindOne returns the first document matching the filter.
func (c *PgCollection[T, P]) FindOne(ctx context.Context, filter Filter) (P, error) {
	body, err := marshalFilter(filter)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT id, doc FROM %s WHERE doc @> $1 ORDER BY created_at LIMIT 1`, c.table)

	var id string
	var doc []byte
	err = c.pool.QueryRow(ctx, query, body).Scan(&id, &doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoDocument
	}
	if err != nil {
		return nil, fmt.Errorf("error querying %s: %w", c.table, err)
	}

	return decodeDocument[T, P](id, doc)
}

// FindByID returns the document with the given identifier.
func (c *PgCollection[T, P]) FindByID(ctx context.Context, id string) (P, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNoDocument
	}

	query := fmt.Sprintf(`SELECT doc FROM %s WHERE id = $1`, c.table)

	var doc []byte
	err := c.pool.QueryRow(ctx, query, id).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoDocument
	}
	if err != nil {
		return nil, fmt.Errorf("error querying %s: %w", c.table, err)
	}

	return decodeDocument[T, P](id, doc)
}

// FindByIDs returns the documents whose identifiers are in the given set,
// in one round trip. Unknown identifiers are simply absent from the result.
func (c *PgCollection[T, P]) FindByIDs(ctx context.Context, ids []string) ([]P, error) {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, err := uuid.Parse(id); err == nil {
			valid = append(valid, id)
		}
	}
	if len(valid) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT id, doc FROM %s WHERE id = ANY($1)`, c.table)

	rows, err := c.pool.Query(ctx, query, valid)
	if err != nil {
		return nil, fmt.Errorf("error querying %s: %w", c.table, err)
	}
	defer rows.Close()

	return scanDocuments[T, P](c.table, rows)
}

// FindMany returns all documents matching the filter, oldest first.
func (c *PgCollection[T, P]) FindMany(ctx context.Context, filter Filter) ([]P, error) {
	body, err := marshalFilter(filter)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT id, doc FROM %s WHERE doc @> $1 ORDER BY created_at`, c.table)

	rows, err := c.pool.Query(ctx, query, body)
	if err != nil {
		return nil, fmt.Errorf("error querying %s: %w", c.table, err)
	}
	defer rows.Close()

	return scanDocuments[T, P](c.table, rows)
}

// InsertOne persists a new document, generating its identifier and setting
// it on the document.
func (c *PgCollection[T, P]) InsertOne(ctx context.Context, doc P) error {
	id := uuid.New().String()

	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("error encoding %s document: %w", c.table, err)
	}

	query := fmt.Sprintf(`INSERT INTO %s (id, doc) VALUES ($1, $2)`, c.table)

	_, err = c.pool.Exec(ctx, query, id, body)
	if dberrors.IsUniqueViolation(err) {
		return fmt.Errorf("%w on %s", ErrDuplicateKey, c.table)
	}
	if err != nil {
		return fmt.Errorf("error inserting into %s: %w", c.table, err)
	}

	doc.SetDocumentID(id)
	return nil
}

// UpdateOne atomically merges the patch into the matching document and
// returns the updated document.
func (c *PgCollection[T, P]) UpdateOne(ctx context.Context, id string, patch Patch) (P, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNoDocument
	}

	body, err := json.Marshal(patch)
	if err != nil {
		return nil, fmt.Errorf("error encoding %s patch: %w", c.table, err)
	}

	query := fmt.Sprintf(`UPDATE %s SET doc = doc || $2 WHERE id = $1 RETURNING doc`, c.table)

	var doc []byte
	err = c.pool.QueryRow(ctx, query, id, body).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoDocument
	}
	if dberrors.IsUniqueViolation(err) {
		return nil, fmt.Errorf("%w on %s", ErrDuplicateKey, c.table)
	}
	if err != nil {
		return nil, fmt.Errorf("error updating %s: %w", c.table, err)
	}

	return decodeDocument[T, P](id, doc)
}

// DeleteOne removes the matching document and reports how many were removed.
func (c *PgCollection[T, P]) DeleteOne(ctx context.Context, id string) (int64, error) {
	if _, err := uuid.Parse(id); err != nil {
		return 0, nil
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, c.table)

	tag, err := c.pool.Exec(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("error deleting from %s: %w", c.table, err)
	}

	return tag.RowsAffected(), nil
}

func marshalFilter(filter Filter) ([]byte, error) {
	if filter == nil {
		filter = Filter{}
	}
	body, err := json.Marshal(filter)
	if err != nil {
		return nil, fmt.Errorf("error encoding filter: %w", err)
	}
	return body, nil
}

func decodeDocument[T any, P Document[T]](id string, body []byte) (P, error) {
	var out T
	doc := P(&out)
	if err := json.Unmarshal(body, doc); err != nil {
		return nil, fmt.Errorf("error decoding document %s: %w", id, err)
	}
	doc.SetDocumentID(id)
	return doc, nil
}

func scanDocuments[T any, P Document[T]](table string, rows pgx.Rows) ([]P, error) {
	var docs []P
	for rows.Next() {
		var id string
		var body []byte
		if err := rows.Scan(&id, &body); err != nil {
			return nil, fmt.Errorf("error scanning %s row: %w", table, err)
		}
		doc, err := decodeDocument[T, P](id, body)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s rows: %w", table, err)
	}

	return docs, nil
}

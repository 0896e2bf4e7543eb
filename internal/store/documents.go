package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Collection names for the document table. Each typed accessor layer maps a
// collection onto its model struct.
const (
	CollectionProducts = "products"
	CollectionBlogs    = "blogs"
)

// document is one raw row of the documents table.
type document struct {
	Collection string
	ID         string
	Data       string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (s *Store) insertDocument(ctx context.Context, doc document) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (collection, id, data, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`,
		doc.Collection,
		doc.ID,
		doc.Data,
		formatTime(doc.CreatedAt),
		formatTime(doc.UpdatedAt),
	)
	return err
}

func (s *Store) updateDocument(ctx context.Context, collection, id, data string, updatedAt time.Time) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE documents SET data = ?, updated_at = ?
		WHERE collection = ? AND id = ?
	`, data, formatTime(updatedAt), collection, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("document not found: %s/%s", collection, id)
	}
	return nil
}

func (s *Store) getDocument(ctx context.Context, collection, id string) (*document, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT collection, id, data, created_at, updated_at
		FROM documents WHERE collection = ? AND id = ?
	`, collection, id)
	return scanDocument(row)
}

func (s *Store) listDocuments(ctx context.Context, collection string) ([]document, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT collection, id, data, created_at, updated_at
		FROM documents WHERE collection = ?
		ORDER BY created_at ASC, id ASC
	`, collection)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}
	return docs, rows.Err()
}

func (s *Store) deleteDocument(ctx context.Context, collection, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE collection = ? AND id = ?", collection, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("document not found: %s/%s", collection, id)
	}
	return nil
}

func (s *Store) documentExists(ctx context.Context, collection, id string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM documents WHERE collection = ? AND id = ?", collection, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func scanDocument(scanner interface {
	Scan(dest ...any) error
}) (*document, error) {
	var doc document
	var createdAt, updatedAt string

	if err := scanner.Scan(&doc.Collection, &doc.ID, &doc.Data, &createdAt, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	parsedCreated, err := parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	parsedUpdated, err := parseTime(updatedAt)
	if err != nil {
		return nil, err
	}
	doc.CreatedAt = parsedCreated
	doc.UpdatedAt = parsedUpdated

	return &doc, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339Nano, value)
}

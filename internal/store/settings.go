package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"shopfront/internal/models"
)

// The category set lives in a single settings row. Writers pass the revision
// they read; a stale revision loses.
const (
	settingsNamespace = "settings"
	settingsKey       = "products"
)

// ErrRevisionMismatch is returned when a settings write carries a revision
// that no longer matches the stored row.
var ErrRevisionMismatch = errors.New("settings revision mismatch")

type categorySettingsData struct {
	Categories []string `json:"categories"`
}

// GetCategorySettings returns the category set and its current revision.
// A missing row is seeded with the default categories at revision 1.
func (s *Store) GetCategorySettings(ctx context.Context) (models.CategorySet, int64, error) {
	var data string
	var revision int64
	err := s.db.QueryRowContext(ctx, `
		SELECT data, revision FROM settings WHERE namespace = ? AND key = ?
	`, settingsNamespace, settingsKey).Scan(&data, &revision)
	if err == sql.ErrNoRows {
		return s.seedCategorySettings(ctx)
	}
	if err != nil {
		return nil, 0, err
	}

	var parsed categorySettingsData
	if err := json.Unmarshal([]byte(data), &parsed); err != nil {
		return nil, 0, fmt.Errorf("decode category settings: %w", err)
	}
	return models.NewCategorySet(parsed.Categories), revision, nil
}

// PutCategorySettings replaces the category set if expectedRevision still
// matches the stored row. It returns the new revision.
func (s *Store) PutCategorySettings(ctx context.Context, categories models.CategorySet, expectedRevision int64) (int64, error) {
	data, err := json.Marshal(categorySettingsData{Categories: categories})
	if err != nil {
		return 0, err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE settings SET data = ?, revision = revision + 1, updated_at = ?
		WHERE namespace = ? AND key = ? AND revision = ?
	`, string(data), formatTime(time.Now()), settingsNamespace, settingsKey, expectedRevision)
	if err != nil {
		return 0, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	if affected == 0 {
		return 0, ErrRevisionMismatch
	}
	return expectedRevision + 1, nil
}

func (s *Store) seedCategorySettings(ctx context.Context) (models.CategorySet, int64, error) {
	seeded := models.NewCategorySet(models.DefaultCategories)
	data, err := json.Marshal(categorySettingsData{Categories: seeded})
	if err != nil {
		return nil, 0, err
	}

	// INSERT OR IGNORE so a concurrent seeder does not fail; re-read after.
	_, err = s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO settings (namespace, key, data, revision, updated_at)
		VALUES (?, ?, ?, 1, ?)
	`, settingsNamespace, settingsKey, string(data), formatTime(time.Now()))
	if err != nil {
		return nil, 0, err
	}

	var stored string
	var revision int64
	err = s.db.QueryRowContext(ctx, `
		SELECT data, revision FROM settings WHERE namespace = ? AND key = ?
	`, settingsNamespace, settingsKey).Scan(&stored, &revision)
	if err != nil {
		return nil, 0, err
	}

	var parsed categorySettingsData
	if err := json.Unmarshal([]byte(stored), &parsed); err != nil {
		return nil, 0, fmt.Errorf("decode category settings: %w", err)
	}
	return models.NewCategorySet(parsed.Categories), revision, nil
}

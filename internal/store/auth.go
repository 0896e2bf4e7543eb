package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// AdminUser is one provisioned console operator. Password hashes are bcrypt;
// the store never sees plaintext.
type AdminUser struct {
	ID           string
	Username     string
	PasswordHash string
	Disabled     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CountEnabledAdmins returns the number of non-disabled admin users.
func (s *Store) CountEnabledAdmins(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM admin_users WHERE disabled = 0").Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// CreateAdminUser creates one local admin user.
func (s *Store) CreateAdminUser(ctx context.Context, username, passwordHash string, now time.Time) (*AdminUser, error) {
	username = normalizeAdminUsername(username)
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if strings.TrimSpace(passwordHash) == "" {
		return nil, fmt.Errorf("password hash is required")
	}

	userID, err := generateAdminID("au")
	if err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO admin_users (id, username, password_hash, disabled, created_at, updated_at)
		VALUES (?, ?, ?, 0, ?, ?)
	`, userID, username, passwordHash, formatTime(now), formatTime(now))
	if err != nil {
		return nil, err
	}

	return &AdminUser{
		ID:           userID,
		Username:     username,
		PasswordHash: passwordHash,
		Disabled:     false,
		CreatedAt:    now.UTC(),
		UpdatedAt:    now.UTC(),
	}, nil
}

// GetAdminByUsername returns a provisioned admin by normalized username.
func (s *Store) GetAdminByUsername(ctx context.Context, username string) (*AdminUser, error) {
	username = normalizeAdminUsername(username)
	if username == "" {
		return nil, nil
	}
	row := s.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, disabled, created_at, updated_at
		FROM admin_users
		WHERE username = ?
		LIMIT 1
	`, username)
	return scanAdminUser(row)
}

// ListAdmins returns all provisioned admins sorted by username.
func (s *Store) ListAdmins(ctx context.Context) ([]AdminUser, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, username, password_hash, disabled, created_at, updated_at
		FROM admin_users
		ORDER BY username ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]AdminUser, 0)
	for rows.Next() {
		user, err := scanAdminUser(rows)
		if err != nil {
			return nil, err
		}
		if user == nil {
			continue
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

// SetAdminDisabled updates one admin's disabled state by username.
func (s *Store) SetAdminDisabled(ctx context.Context, username string, disabled bool, now time.Time) (*AdminUser, error) {
	username = normalizeAdminUsername(username)
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}

	disabledInt := 0
	if disabled {
		disabledInt = 1
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE admin_users
		SET disabled = ?, updated_at = ?
		WHERE username = ?
	`, disabledInt, formatTime(now), username)
	if err != nil {
		return nil, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, nil
	}
	return s.GetAdminByUsername(ctx, username)
}

// DeleteAdmin deletes one admin by username.
func (s *Store) DeleteAdmin(ctx context.Context, username string) (bool, error) {
	username = normalizeAdminUsername(username)
	if username == "" {
		return false, fmt.Errorf("username is required")
	}

	result, err := s.db.ExecContext(ctx, `
		DELETE FROM admin_users
		WHERE username = ?
	`, username)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func scanAdminUser(scanner interface {
	Scan(dest ...any) error
}) (*AdminUser, error) {
	var user AdminUser
	var disabled int
	var createdAt string
	var updatedAt string
	if err := scanner.Scan(&user.ID, &user.Username, &user.PasswordHash, &disabled, &createdAt, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	user.Disabled = disabled != 0
	parsedCreated, err := parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	parsedUpdated, err := parseTime(updatedAt)
	if err != nil {
		return nil, err
	}
	user.CreatedAt = parsedCreated
	user.UpdatedAt = parsedUpdated
	return &user, nil
}

func normalizeAdminUsername(username string) string {
	return strings.TrimSpace(strings.ToLower(username))
}

func generateAdminID(prefix string) (string, error) {
	id, err := randomHex(10)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s", prefix, id), nil
}

func randomHex(numBytes int) (string, error) {
	if numBytes <= 0 {
		return "", fmt.Errorf("numBytes must be > 0")
	}
	buf := make([]byte, numBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

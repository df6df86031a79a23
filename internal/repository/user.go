package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"magicgatherer-api/internal/model"
)

const userColumns = `id, username, email, password_hash, salt, created_at`

// GetUserByUsername returns the user or nil if not found. Matching ignores
// case, like the cache scope of a user.
func (s *SQLStore) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE LOWER(username) = LOWER(?)`, username)
}

// GetUserByEmail returns the user or nil if not found.
func (s *SQLStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
}

func (s *SQLStore) getUser(ctx context.Context, query string, arg any) (*model.User, error) {
	var u model.User
	err := s.queryRow(ctx, s.db, query, arg).
		Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Salt, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

// CreateUser inserts u and sets its ID. A taken username or email yields ErrDuplicate.
func (s *SQLStore) CreateUser(ctx context.Context, u *model.User) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = nowUTC()
	}

	id, err := s.insert(ctx, s.db,
		`INSERT INTO users (username, email, password_hash, salt, created_at) VALUES (?, ?, ?, ?, ?)`,
		u.Username, u.Email, u.PasswordHash, u.Salt, u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	u.ID = id
	return nil
}

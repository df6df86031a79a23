package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"magicgatherer-api/internal/model"
)

func nowUTC() time.Time {
	return time.Now().UTC()
}

// CreateResetToken stores a password reset token and sets its ID.
func (s *SQLStore) CreateResetToken(ctx context.Context, t *model.PasswordResetToken) error {
	id, err := s.insert(ctx, s.db,
		`INSERT INTO password_reset_tokens (token, email, expires_at) VALUES (?, ?, ?)`,
		t.Token, t.Email, t.ExpiresAt.UTC().Truncate(time.Second))
	if err != nil {
		return fmt.Errorf("failed to create reset token: %w", err)
	}
	t.ID = id
	return nil
}

// GetResetToken returns the token row or nil if not found.
func (s *SQLStore) GetResetToken(ctx context.Context, token string) (*model.PasswordResetToken, error) {
	var t model.PasswordResetToken
	err := s.queryRow(ctx, s.db,
		`SELECT id, token, email, expires_at FROM password_reset_tokens WHERE token = ?`, token).
		Scan(&t.ID, &t.Token, &t.Email, &t.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reset token: %w", err)
	}
	return &t, nil
}

// ResetPassword replaces the password of the token's user and deletes the
// token in one transaction. It returns false when the token is gone or its
// email no longer belongs to a user.
func (s *SQLStore) ResetPassword(ctx context.Context, token, passwordHash, salt string) (bool, error) {
	var ok bool
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var email string
		err := s.queryRow(ctx, tx, `SELECT email FROM password_reset_tokens WHERE token = ?`, token).Scan(&email)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read reset token: %w", err)
		}

		res, err := s.exec(ctx, tx, `UPDATE users SET password_hash = ?, salt = ? WHERE email = ?`,
			passwordHash, salt, email)
		if err != nil {
			return fmt.Errorf("failed to update password: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return nil
		}

		if _, err := s.exec(ctx, tx, `DELETE FROM password_reset_tokens WHERE token = ?`, token); err != nil {
			return fmt.Errorf("failed to delete reset token: %w", err)
		}
		ok = true
		return nil
	})
	return ok, err
}

// DeleteExpiredResetTokens removes tokens that expired before now.
func (s *SQLStore) DeleteExpiredResetTokens(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.exec(ctx, s.db, `DELETE FROM password_reset_tokens WHERE expires_at < ?`, now.UTC().Truncate(time.Second))
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired reset tokens: %w", err)
	}
	return res.RowsAffected()
}

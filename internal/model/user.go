package model

import "time"

// User is a registered collector. Username and Email are unique.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Salt         string
	CreatedAt    time.Time
}

// CardOwned records how many copies of one card condition a user owns.
// A user has at most one row per card condition.
type CardOwned struct {
	ID              int64
	UserID          int64
	CardConditionID int64
	Quantity        int
}

// PasswordResetToken is a single-use token mailed to Email.
type PasswordResetToken struct {
	ID        int64
	Token     string
	Email     string
	ExpiresAt time.Time
}

// Expired reports whether the token is no longer usable at now.
func (t *PasswordResetToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

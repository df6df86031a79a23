package service

import (
	"context"
	"log"
)

// Mailer delivers account emails.
type Mailer interface {
	SendPasswordReset(ctx context.Context, email, link string) error
}

// LogMailer writes emails to the log instead of sending them.
type LogMailer struct{}

// SendPasswordReset logs the reset link.
func (LogMailer) SendPasswordReset(ctx context.Context, email, link string) error {
	log.Printf("[Mailer] Password reset for %s: %s", email, link)
	return nil
}

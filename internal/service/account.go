package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"golang.org/x/crypto/pbkdf2"

	"magicgatherer-api/internal/model"
	"magicgatherer-api/internal/repository"
)

// Password hashing parameters (PBKDF2-HMAC-SHA256).
const (
	hashIterations = 10000
	saltSize       = 16
	keySize        = 32

	resetTokenSize = 32

	// ResetTokenTTL is how long a password reset link stays valid.
	ResetTokenTTL = time.Hour

	minPasswordLength = 8
)

// RegisterRequest is the input of Register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Username  string    `json:"username"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AccountService registers users, logs them in and resets passwords.
type AccountService struct {
	users    repository.UserRepository
	resets   repository.ResetTokenRepository
	tokens   *TokenService
	mailer   Mailer
	resetURL string
	now      func() time.Time
}

// NewAccountService creates a new account service. resetURL is the page the
// mailed link points at; the token is appended as the "token" query parameter.
func NewAccountService(
	users repository.UserRepository,
	resets repository.ResetTokenRepository,
	tokens *TokenService,
	mailer Mailer,
	resetURL string,
) *AccountService {
	if mailer == nil {
		mailer = LogMailer{}
	}
	return &AccountService{
		users:    users,
		resets:   resets,
		tokens:   tokens,
		mailer:   mailer,
		resetURL: resetURL,
		now:      time.Now,
	}
}

// Register creates a user with a freshly salted password hash.
func (s *AccountService) Register(ctx context.Context, req RegisterRequest) (*model.User, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)

	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrValidation)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: invalid email address", ErrValidation)
	}
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}

	if u, err := s.users.GetUserByUsername(ctx, username); err != nil {
		return nil, err
	} else if u != nil {
		return nil, ErrUsernameTaken
	}
	if u, err := s.users.GetUserByEmail(ctx, email); err != nil {
		return nil, err
	} else if u != nil {
		return nil, ErrEmailTaken
	}

	hash, salt, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{Username: username, Email: email, PasswordHash: hash, Salt: salt, CreatedAt: s.now().UTC()}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: username or email is already taken", ErrValidation)
		}
		log.Printf("[AccountService] Failed to create user %s: %v", username, err)
		return nil, err
	}

	log.Printf("[AccountService] Registered user %s", username)
	return user, nil
}

// Login checks credentials and issues an access token.
func (s *AccountService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.users.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		log.Printf("[AccountService] Failed to get user %s: %v", username, err)
		return nil, err
	}
	if user == nil || !verifyPassword(password, user.PasswordHash, user.Salt) {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.GenerateToken(user.Username)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Username: user.Username, Token: token, ExpiresAt: expiresAt}, nil
}

// ForgotPassword mails a single-use reset link. An unknown email is
// reported as a validation failure.
func (s *AccountService) ForgotPassword(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		log.Printf("[AccountService] Failed to get user by email: %v", err)
		return err
	}
	if user == nil {
		return fmt.Errorf("%w: no account with that email", ErrValidation)
	}

	raw := make([]byte, resetTokenSize)
	if _, err := rand.Read(raw); err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	token := &model.PasswordResetToken{
		Token:     base64.RawURLEncoding.EncodeToString(raw),
		Email:     user.Email,
		ExpiresAt: s.now().Add(ResetTokenTTL),
	}
	if err := s.resets.CreateResetToken(ctx, token); err != nil {
		log.Printf("[AccountService] Failed to store reset token: %v", err)
		return err
	}

	return s.mailer.SendPasswordReset(ctx, user.Email, s.resetLink(token.Token))
}

// ResetPassword consumes a reset token and sets a new password.
func (s *AccountService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	t, err := s.resets.GetResetToken(ctx, token)
	if err != nil {
		log.Printf("[AccountService] Failed to get reset token: %v", err)
		return err
	}
	if t == nil || t.Expired(s.now()) {
		return ErrInvalidResetToken
	}

	hash, salt, err := hashPassword(newPassword)
	if err != nil {
		return err
	}

	ok, err := s.resets.ResetPassword(ctx, token, hash, salt)
	if err != nil {
		log.Printf("[AccountService] Failed to reset password: %v", err)
		return err
	}
	if !ok {
		return ErrInvalidResetToken
	}

	log.Printf("[AccountService] Password reset for %s", t.Email)
	return nil
}

func (s *AccountService) resetLink(token string) string {
	u, err := url.Parse(s.resetURL)
	if err != nil {
		return s.resetURL + "?token=" + url.QueryEscape(token)
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String()
}

func validatePassword(p string) error {
	if len(p) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLength)
	}
	return nil
}

// hashPassword returns base64 hash and salt for a new password.
func hashPassword(password string) (hash, salt string, err error) {
	saltBytes := make([]byte, saltSize)
	if _, err := rand.Read(saltBytes); err != nil {
		return "", "", fmt.Errorf("failed to generate salt: %w", err)
	}
	key := pbkdf2.Key([]byte(password), saltBytes, hashIterations, keySize, sha256.New)
	return base64.StdEncoding.EncodeToString(key), base64.StdEncoding.EncodeToString(saltBytes), nil
}

func verifyPassword(password, hash, salt string) bool {
	saltBytes, err := base64.StdEncoding.DecodeString(salt)
	if err != nil {
		return false
	}
	want, err := base64.StdEncoding.DecodeString(hash)
	if err != nil {
		return false
	}
	got := pbkdf2.Key([]byte(password), saltBytes, hashIterations, keySize, sha256.New)
	return subtle.ConstantTimeCompare(got, want) == 1
}

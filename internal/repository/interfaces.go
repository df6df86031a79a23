package repository

import (
	"context"
	"time"

	"magicgatherer-api/internal/model"
)

// CardRepository defines card catalog data access methods.
type CardRepository interface {
	// ListCards returns one page of cards matching q and the total match count.
	ListCards(ctx context.Context, q CardQuery) ([]model.Card, int, error)

	// GetCardByID returns a card with its conditions, or nil if not found.
	GetCardByID(ctx context.Context, id int64) (*model.Card, error)

	// SearchCardsByName returns up to limit cards whose name contains name.
	SearchCardsByName(ctx context.Context, name string, limit int) ([]model.Card, error)
}

// EditionRepository defines edition data access methods.
type EditionRepository interface {
	// ListEditions returns every edition without cards, ordered by name.
	ListEditions(ctx context.Context) ([]model.Edition, error)

	// GetEditionByID returns an edition with its cards, or nil if not found.
	GetEditionByID(ctx context.Context, id int64) (*model.Edition, error)

	// GetEditionByName returns an edition with its cards, or nil if not found.
	GetEditionByName(ctx context.Context, name string) (*model.Edition, error)

	// ImportEdition stores an edition with its cards unless the name exists.
	ImportEdition(ctx context.Context, e model.Edition) (int64, bool, error)
}

// UserRepository defines user account data access methods.
type UserRepository interface {
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)

	// CreateUser inserts a user. Returns ErrDuplicate for a taken username or email.
	CreateUser(ctx context.Context, u *model.User) error
}

// CollectionRepository defines CardOwned data access methods.
type CollectionRepository interface {
	CardExists(ctx context.Context, id int64) (bool, error)
	GetCardCondition(ctx context.Context, cardID int64, grade model.Condition) (*model.CardCondition, error)
	OwnsCardCondition(ctx context.Context, userID, cardConditionID int64) (bool, error)

	// CreateCardOwned inserts a row. Returns ErrDuplicate if the user already owns the condition.
	CreateCardOwned(ctx context.Context, co *model.CardOwned) error

	// UpdateCardOwnedQuantity and DeleteCardOwned return false when the row
	// does not exist or belongs to another user.
	UpdateCardOwnedQuantity(ctx context.Context, userID, id int64, quantity int) (bool, error)
	DeleteCardOwned(ctx context.Context, userID, id int64) (bool, error)

	ListOwnedConditions(ctx context.Context, userID, cardID int64) ([]model.CardOwnedDTO, error)
	CollectionTotals(ctx context.Context, userID int64) (int, float64, error)
}

// ResetTokenRepository defines password reset token data access methods.
type ResetTokenRepository interface {
	CreateResetToken(ctx context.Context, t *model.PasswordResetToken) error
	GetResetToken(ctx context.Context, token string) (*model.PasswordResetToken, error)

	// ResetPassword rewrites the user's credentials and consumes the token atomically.
	ResetPassword(ctx context.Context, token, passwordHash, salt string) (bool, error)

	DeleteExpiredResetTokens(ctx context.Context, now time.Time) (int64, error)
}

// Ensure SQLStore implements every repository interface.
var (
	_ CardRepository       = (*SQLStore)(nil)
	_ EditionRepository    = (*SQLStore)(nil)
	_ UserRepository       = (*SQLStore)(nil)
	_ CollectionRepository = (*SQLStore)(nil)
	_ ResetTokenRepository = (*SQLStore)(nil)
)

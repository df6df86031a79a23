package service

import (
	"context"
	"errors"
	"log"
	"math"

	"magicgatherer-api/internal/cache"
	"magicgatherer-api/internal/model"
	"magicgatherer-api/internal/repository"
)

// CollectionService serves and mutates a user's collection. Every read is
// cached under the user's scope and every successful write clears that scope.
type CollectionService struct {
	users repository.UserRepository
	cards repository.CardRepository
	owned repository.CollectionRepository
	cache *cache.Cache
}

// NewCollectionService creates a new collection service.
func NewCollectionService(
	users repository.UserRepository,
	cards repository.CardRepository,
	owned repository.CollectionRepository,
	c *cache.Cache,
) *CollectionService {
	return &CollectionService{users: users, cards: cards, owned: owned, cache: c}
}

// ListOwnedCards returns one page of the cards username owns, one row per
// card however many conditions are owned. Returns ErrNotFound for an unknown user.
func (s *CollectionService) ListOwnedCards(ctx context.Context, username string, p model.ListParams) (model.CardPage, error) {
	return cache.GetOrLoad(ctx, s.cache, cache.UserCardListKey(username, p), func(ctx context.Context) (model.CardPage, error) {
		user, err := s.lookupUser(ctx, username)
		if err != nil {
			return model.CardPage{}, err
		}
		q := repository.NewCardQuery(p)
		q.OwnerID = &user.ID
		return loadCardPage(ctx, s.cards, q, "CollectionService")
	})
}

// Details returns the total quantity and estimated value of username's collection.
func (s *CollectionService) Details(ctx context.Context, username string) (model.CollectionDetails, error) {
	return cache.GetOrLoad(ctx, s.cache, cache.UserDetailsKey(username), func(ctx context.Context) (model.CollectionDetails, error) {
		user, err := s.lookupUser(ctx, username)
		if err != nil {
			return model.CollectionDetails{}, err
		}
		total, value, err := s.owned.CollectionTotals(ctx, user.ID)
		if err != nil {
			log.Printf("[CollectionService] Failed to sum collection of %s: %v", username, err)
			return model.CollectionDetails{}, err
		}
		return model.CollectionDetails{TotalCardsOwned: total, EstimatedValue: roundCents(value)}, nil
	})
}

// CollectionPage returns a listing page together with the collection summary.
func (s *CollectionService) CollectionPage(ctx context.Context, username string, p model.ListParams) (model.CollectionPage, error) {
	details, err := s.Details(ctx, username)
	if err != nil {
		return model.CollectionPage{}, err
	}
	page, err := s.ListOwnedCards(ctx, username, p)
	if err != nil {
		return model.CollectionPage{}, err
	}
	return model.CollectionPage{
		TotalCardsOwned: details.TotalCardsOwned,
		EstimatedValue:  details.EstimatedValue,
		Page:            page,
	}, nil
}

// OwnedConditions returns username's rows for one card.
func (s *CollectionService) OwnedConditions(ctx context.Context, username string, cardID int64) ([]model.CardOwnedDTO, error) {
	return cache.GetOrLoad(ctx, s.cache, cache.UserConditionsKey(username, cardID), func(ctx context.Context) ([]model.CardOwnedDTO, error) {
		user, err := s.lookupUser(ctx, username)
		if err != nil {
			return nil, err
		}
		owned, err := s.owned.ListOwnedConditions(ctx, user.ID, cardID)
		if err != nil {
			log.Printf("[CollectionService] Failed to list owned conditions of %s: %v", username, err)
			return nil, err
		}
		return owned, nil
	})
}

// AddCard records that username owns req.Quantity copies of a card in a condition.
func (s *CollectionService) AddCard(ctx context.Context, username string, req model.AddCardRequest) (*model.CardOwned, error) {
	if req.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	grade, ok := model.ParseCondition(req.Condition)
	if !ok {
		return nil, ErrUnknownCondition
	}

	user, err := s.mutatingUser(ctx, username)
	if err != nil {
		return nil, err
	}

	exists, err := s.owned.CardExists(ctx, req.CardID)
	if err != nil {
		log.Printf("[CollectionService] Failed to check card %d: %v", req.CardID, err)
		return nil, err
	}
	if !exists {
		return nil, ErrUnknownCard
	}

	cc, err := s.owned.GetCardCondition(ctx, req.CardID, grade)
	if err != nil {
		log.Printf("[CollectionService] Failed to get condition %s of card %d: %v", grade, req.CardID, err)
		return nil, err
	}
	if cc == nil {
		return nil, ErrUnknownCondition
	}

	owns, err := s.owned.OwnsCardCondition(ctx, user.ID, cc.ID)
	if err != nil {
		log.Printf("[CollectionService] Failed to check ownership: %v", err)
		return nil, err
	}
	if owns {
		return nil, ErrDuplicateOwnership
	}

	row := &model.CardOwned{UserID: user.ID, CardConditionID: cc.ID, Quantity: req.Quantity}
	if err := s.owned.CreateCardOwned(ctx, row); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateOwnership
		}
		log.Printf("[CollectionService] Failed to add card %d for %s: %v", req.CardID, username, err)
		return nil, err
	}

	s.invalidate(ctx, username)
	return row, nil
}

// UpdateCard sets the quantity of an owned row.
func (s *CollectionService) UpdateCard(ctx context.Context, username string, id int64, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	user, err := s.mutatingUser(ctx, username)
	if err != nil {
		return err
	}

	ok, err := s.owned.UpdateCardOwnedQuantity(ctx, user.ID, id, quantity)
	if err != nil {
		log.Printf("[CollectionService] Failed to update owned card %d for %s: %v", id, username, err)
		return err
	}
	if !ok {
		return ErrNotOwned
	}

	s.invalidate(ctx, username)
	return nil
}

// DeleteCard removes an owned row.
func (s *CollectionService) DeleteCard(ctx context.Context, username string, id int64) error {
	user, err := s.mutatingUser(ctx, username)
	if err != nil {
		return err
	}

	ok, err := s.owned.DeleteCardOwned(ctx, user.ID, id)
	if err != nil {
		log.Printf("[CollectionService] Failed to delete owned card %d for %s: %v", id, username, err)
		return err
	}
	if !ok {
		return ErrNotOwned
	}

	s.invalidate(ctx, username)
	return nil
}

// invalidate clears every cached read of username. It runs only after a
// successful write; a failure leaves entries to expire by TTL.
func (s *CollectionService) invalidate(ctx context.Context, username string) {
	if err := s.cache.Clear(ctx, cache.UserScope(username)); err != nil {
		log.Printf("[CollectionService] Failed to invalidate cache for %s: %v", username, err)
	}
}

func (s *CollectionService) lookupUser(ctx context.Context, username string) (*model.User, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		log.Printf("[CollectionService] Failed to get user %s: %v", username, err)
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

func (s *CollectionService) mutatingUser(ctx context.Context, username string) (*model.User, error) {
	user, err := s.lookupUser(ctx, username)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrUnknownUser
	}
	return user, err
}

// roundCents rounds half away from zero to two decimals.
func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

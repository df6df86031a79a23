package service

import (
	"context"
	"log"
	"strings"

	"magicgatherer-api/internal/cache"
	"magicgatherer-api/internal/model"
	"magicgatherer-api/internal/repository"
)

// SearchLimit caps the results of a card name search.
const SearchLimit = model.PageSize

// CardService serves the global card catalog through the cache.
type CardService struct {
	cards repository.CardRepository
	cache *cache.Cache
}

// NewCardService creates a new card service. A nil cache disables caching.
func NewCardService(cards repository.CardRepository, c *cache.Cache) *CardService {
	return &CardService{cards: cards, cache: c}
}

// ListCards returns one page of the catalog. Hits are returned verbatim;
// global listings are never invalidated and expire by TTL.
func (s *CardService) ListCards(ctx context.Context, p model.ListParams) (model.CardPage, error) {
	return cache.GetOrLoad(ctx, s.cache, cache.CardListKey(p), func(ctx context.Context) (model.CardPage, error) {
		return loadCardPage(ctx, s.cards, repository.NewCardQuery(p), "CardService")
	})
}

// GetCard returns one card or ErrNotFound.
func (s *CardService) GetCard(ctx context.Context, id int64) (model.CardDTO, error) {
	return cache.GetOrLoad(ctx, s.cache, cache.CardKey(id), func(ctx context.Context) (model.CardDTO, error) {
		card, err := s.cards.GetCardByID(ctx, id)
		if err != nil {
			log.Printf("[CardService] Failed to get card %d: %v", id, err)
			return model.CardDTO{}, err
		}
		if card == nil {
			return model.CardDTO{}, ErrNotFound
		}
		return model.ToCardDTO(*card), nil
	})
}

// SearchByName returns cards whose name contains name, ignoring case.
// A blank name or no match is ErrNotFound.
func (s *CardService) SearchByName(ctx context.Context, name string) ([]model.CardDTO, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNotFound
	}

	return cache.GetOrLoad(ctx, s.cache, cache.CardNameKey(name), func(ctx context.Context) ([]model.CardDTO, error) {
		cards, err := s.cards.SearchCardsByName(ctx, name, SearchLimit)
		if err != nil {
			log.Printf("[CardService] Failed to search cards %q: %v", name, err)
			return nil, err
		}
		if len(cards) == 0 {
			return nil, ErrNotFound
		}
		return toCardDTOs(cards), nil
	})
}

// loadCardPage runs the filter query and projects the page.
func loadCardPage(ctx context.Context, cards repository.CardRepository, q repository.CardQuery, component string) (model.CardPage, error) {
	list, total, err := cards.ListCards(ctx, q)
	if err != nil {
		log.Printf("[%s] Failed to list cards: %v", component, err)
		return model.CardPage{}, err
	}
	return model.NewCardPage(q.Page, total, toCardDTOs(list)), nil
}

func toCardDTOs(cards []model.Card) []model.CardDTO {
	dtos := make([]model.CardDTO, 0, len(cards))
	for _, c := range cards {
		dtos = append(dtos, model.ToCardDTO(c))
	}
	return dtos
}

package service

import (
	"context"
	"log"
	"sort"
	"strings"

	"magicgatherer-api/internal/cache"
	"magicgatherer-api/internal/model"
	"magicgatherer-api/internal/repository"
)

// OtherHeader is the bucket for edition names not starting with A-Z.
const OtherHeader = "#"

// EditionService serves edition lists through the cache.
type EditionService struct {
	editions repository.EditionRepository
	cache    *cache.Cache
}

// NewEditionService creates a new edition service.
func NewEditionService(editions repository.EditionRepository, c *cache.Cache) *EditionService {
	return &EditionService{editions: editions, cache: c}
}

// ListNames returns every edition's name and code.
func (s *EditionService) ListNames(ctx context.Context) ([]model.EditionName, error) {
	return cache.GetOrLoad(ctx, s.cache, cache.EditionNamesKey, func(ctx context.Context) ([]model.EditionName, error) {
		editions, err := s.listEditions(ctx)
		if err != nil {
			return nil, err
		}
		names := make([]model.EditionName, 0, len(editions))
		for _, e := range editions {
			names = append(names, model.EditionName{Name: e.Name, Code: e.Code})
		}
		return names, nil
	})
}

// ListDropdown returns every edition's id, name and code.
func (s *EditionService) ListDropdown(ctx context.Context) ([]model.EditionDropdown, error) {
	return cache.GetOrLoad(ctx, s.cache, cache.EditionDropdownKey, func(ctx context.Context) ([]model.EditionDropdown, error) {
		editions, err := s.listEditions(ctx)
		if err != nil {
			return nil, err
		}
		items := make([]model.EditionDropdown, 0, len(editions))
		for _, e := range editions {
			items = append(items, model.EditionDropdown{ID: e.ID, Name: e.Name, Code: e.Code})
		}
		return items, nil
	})
}

// ListGrouped returns edition names bucketed by first letter.
func (s *EditionService) ListGrouped(ctx context.Context) ([]model.GroupedEditionNames, error) {
	return cache.GetOrLoad(ctx, s.cache, cache.EditionGroupedKey, func(ctx context.Context) ([]model.GroupedEditionNames, error) {
		editions, err := s.listEditions(ctx)
		if err != nil {
			return nil, err
		}
		names := make([]model.EditionName, 0, len(editions))
		for _, e := range editions {
			names = append(names, model.EditionName{Name: e.Name, Code: e.Code})
		}
		return GroupEditionNames(names), nil
	})
}

// GetEdition returns an edition with its cards or ErrNotFound.
func (s *EditionService) GetEdition(ctx context.Context, id int64) (model.EditionDTO, error) {
	return cache.GetOrLoad(ctx, s.cache, cache.EditionKey(id), func(ctx context.Context) (model.EditionDTO, error) {
		e, err := s.editions.GetEditionByID(ctx, id)
		if err != nil {
			log.Printf("[EditionService] Failed to get edition %d: %v", id, err)
			return model.EditionDTO{}, err
		}
		if e == nil {
			return model.EditionDTO{}, ErrNotFound
		}
		return toEditionDTO(e), nil
	})
}

// GetEditionByName returns an edition matched by name ignoring case, or ErrNotFound.
func (s *EditionService) GetEditionByName(ctx context.Context, name string) (model.EditionDTO, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.EditionDTO{}, ErrNotFound
	}
	return cache.GetOrLoad(ctx, s.cache, cache.EditionNameKey(name), func(ctx context.Context) (model.EditionDTO, error) {
		e, err := s.editions.GetEditionByName(ctx, name)
		if err != nil {
			log.Printf("[EditionService] Failed to get edition %q: %v", name, err)
			return model.EditionDTO{}, err
		}
		if e == nil {
			return model.EditionDTO{}, ErrNotFound
		}
		return toEditionDTO(e), nil
	})
}

func toEditionDTO(e *model.Edition) model.EditionDTO {
	return model.EditionDTO{ID: e.ID, Name: e.Name, Code: e.Code, Cards: toCardDTOs(e.Cards)}
}

func (s *EditionService) listEditions(ctx context.Context) ([]model.Edition, error) {
	editions, err := s.editions.ListEditions(ctx)
	if err != nil {
		log.Printf("[EditionService] Failed to list editions: %v", err)
		return nil, err
	}
	return editions, nil
}

// GroupEditionNames buckets names by their first character, ignoring case.
// The result always has 27 groups, A through Z then OtherHeader, and each
// group is sorted by name ignoring case.
func GroupEditionNames(names []model.EditionName) []model.GroupedEditionNames {
	groups := make([]model.GroupedEditionNames, 27)
	for i := 0; i < 26; i++ {
		groups[i] = model.GroupedEditionNames{Header: string(rune('A' + i)), Editions: []model.EditionName{}}
	}
	groups[26] = model.GroupedEditionNames{Header: OtherHeader, Editions: []model.EditionName{}}

	for _, n := range names {
		idx := 26
		if trimmed := strings.TrimSpace(n.Name); trimmed != "" {
			c := trimmed[0]
			if c >= 'a' && c <= 'z' {
				c -= 'a' - 'A'
			}
			if c >= 'A' && c <= 'Z' {
				idx = int(c - 'A')
			}
		}
		groups[idx].Editions = append(groups[idx].Editions, n)
	}

	for i := range groups {
		eds := groups[i].Editions
		sort.SliceStable(eds, func(a, b int) bool {
			return strings.ToLower(eds[a].Name) < strings.ToLower(eds[b].Name)
		})
	}
	return groups
}

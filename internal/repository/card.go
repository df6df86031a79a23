package repository

import (
	"context"
	"fmt"
	"strings"

	"magicgatherer-api/internal/model"
)

const cardColumns = `c.id, c.name, c.image_url, c.rarity, c.is_foil, c.nm_price, e.id, e.name, e.code`

const cardFrom = `FROM cards c JOIN editions e ON e.id = c.edition_id`

// ListCards returns one page of cards matching q and the total match count.
func (s *SQLStore) ListCards(ctx context.Context, q CardQuery) ([]model.Card, int, error) {
	where, args := buildCardWhere(q)

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) %s %s`, cardFrom, where)
	if err := s.queryRow(ctx, s.db, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count cards: %w", err)
	}
	if total == 0 || q.Offset() >= total {
		return []model.Card{}, total, nil
	}

	dataQuery := fmt.Sprintf(`SELECT %s %s %s %s LIMIT ? OFFSET ?`,
		cardColumns, cardFrom, where, buildCardOrderBy(q.SortBy))
	args = append(args, model.PageSize, q.Offset())

	cards, err := s.queryCards(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list cards: %w", err)
	}
	if err := s.loadConditions(ctx, cards); err != nil {
		return nil, 0, err
	}
	return cards, total, nil
}

// GetCardByID returns a card with its conditions, or nil if it does not exist.
func (s *SQLStore) GetCardByID(ctx context.Context, id int64) (*model.Card, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE c.id = ?`, cardColumns, cardFrom)

	cards, err := s.queryCards(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get card: %w", err)
	}
	if len(cards) == 0 {
		return nil, nil
	}
	if err := s.loadConditions(ctx, cards); err != nil {
		return nil, err
	}
	return &cards[0], nil
}

// SearchCardsByName returns up to limit cards whose name contains name,
// ignoring case, ordered by id.
func (s *SQLStore) SearchCardsByName(ctx context.Context, name string, limit int) ([]model.Card, error) {
	where, args := buildCardWhere(CardQuery{Search: name})
	query := fmt.Sprintf(`SELECT %s %s %s ORDER BY c.id ASC LIMIT ?`, cardColumns, cardFrom, where)
	args = append(args, limit)

	cards, err := s.queryCards(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search cards: %w", err)
	}
	if err := s.loadConditions(ctx, cards); err != nil {
		return nil, err
	}
	return cards, nil
}

// queryCards scans cardColumns rows. The rows are closed before returning so
// the single SQLite connection is free for follow-up queries.
func (s *SQLStore) queryCards(ctx context.Context, query string, args ...any) ([]model.Card, error) {
	rows, err := s.query(ctx, s.db, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cards := []model.Card{}
	for rows.Next() {
		var c model.Card
		var rarity string
		if err := rows.Scan(&c.ID, &c.Name, &c.ImageURL, &rarity, &c.IsFoil, &c.NMPrice,
			&c.EditionID, &c.EditionName, &c.EditionCode); err != nil {
			return nil, err
		}
		c.Rarity = model.Rarity(rarity)
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

// loadConditions attaches condition rows to cards, best grade first.
func (s *SQLStore) loadConditions(ctx context.Context, cards []model.Card) error {
	if len(cards) == 0 {
		return nil
	}

	index := make(map[int64]int, len(cards))
	ids := make([]any, len(cards))
	for i := range cards {
		index[cards[i].ID] = i
		ids[i] = cards[i].ID
		cards[i].Conditions = []model.CardCondition{}
	}

	query := fmt.Sprintf(`SELECT id, card_id, grade, price, quantity FROM card_conditions
		WHERE card_id IN (%s) ORDER BY card_id, %s`, placeholders(len(ids)), gradeRank)

	rows, err := s.query(ctx, s.db, query, ids...)
	if err != nil {
		return fmt.Errorf("failed to load card conditions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var cc model.CardCondition
		var grade string
		if err := rows.Scan(&cc.ID, &cc.CardID, &grade, &cc.Price, &cc.Quantity); err != nil {
			return fmt.Errorf("failed to scan card condition: %w", err)
		}
		cc.Condition = model.Condition(grade)
		if i, ok := index[cc.CardID]; ok {
			cards[i].Conditions = append(cards[i].Conditions, cc)
		}
	}
	return rows.Err()
}

// gradeRank orders conditions by model.ConditionOrder.
var gradeRank = gradeRankOf("grade")

func gradeRankOf(column string) string {
	parts := make([]string, 0, len(model.ConditionOrder)+2)
	parts = append(parts, "CASE "+column)
	for i, c := range model.ConditionOrder {
		parts = append(parts, fmt.Sprintf("WHEN '%s' THEN %d", c, i))
	}
	parts = append(parts, fmt.Sprintf("ELSE %d END", len(model.ConditionOrder)))
	return strings.Join(parts, " ")
}

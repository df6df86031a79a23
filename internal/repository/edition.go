package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"magicgatherer-api/internal/model"
)

// ListEditions returns every edition without cards, ordered by name.
func (s *SQLStore) ListEditions(ctx context.Context) ([]model.Edition, error) {
	rows, err := s.query(ctx, s.db, `SELECT id, name, code FROM editions ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list editions: %w", err)
	}
	defer rows.Close()

	editions := []model.Edition{}
	for rows.Next() {
		var e model.Edition
		if err := rows.Scan(&e.ID, &e.Name, &e.Code); err != nil {
			return nil, fmt.Errorf("failed to scan edition: %w", err)
		}
		editions = append(editions, e)
	}
	return editions, rows.Err()
}

// GetEditionByID returns an edition with its cards ordered by id, or nil.
func (s *SQLStore) GetEditionByID(ctx context.Context, id int64) (*model.Edition, error) {
	return s.getEdition(ctx, `id = ?`, id)
}

// GetEditionByName returns an edition with its cards, matching the name
// ignoring case, or nil.
func (s *SQLStore) GetEditionByName(ctx context.Context, name string) (*model.Edition, error) {
	return s.getEdition(ctx, `LOWER(name) = LOWER(?)`, name)
}

func (s *SQLStore) getEdition(ctx context.Context, where string, arg any) (*model.Edition, error) {
	var e model.Edition
	err := s.queryRow(ctx, s.db, `SELECT id, name, code FROM editions WHERE `+where, arg).
		Scan(&e.ID, &e.Name, &e.Code)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get edition: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s %s WHERE c.edition_id = ? ORDER BY c.id ASC`, cardColumns, cardFrom)
	cards, err := s.queryCards(ctx, query, e.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list edition cards: %w", err)
	}
	if err := s.loadConditions(ctx, cards); err != nil {
		return nil, err
	}
	e.Cards = cards
	return &e, nil
}

// ImportEdition stores an edition with its cards and condition rows in one
// transaction. An edition whose name already exists is left untouched and
// reported with created == false.
//
// A card's NMPrice is taken from its NM condition when that row carries a price.
func (s *SQLStore) ImportEdition(ctx context.Context, e model.Edition) (id int64, created bool, err error) {
	err = s.withTx(ctx, func(tx *sql.Tx) error {
		err := s.queryRow(ctx, tx, `SELECT id FROM editions WHERE name = ?`, e.Name).Scan(&id)
		if err == nil {
			return nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("failed to look up edition: %w", err)
		}

		id, err = s.insert(ctx, tx, `INSERT INTO editions (name, code) VALUES (?, ?)`, e.Name, e.Code)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("edition code %q: %w", e.Code, ErrDuplicate)
			}
			return fmt.Errorf("failed to insert edition: %w", err)
		}

		for _, c := range e.Cards {
			if err := s.insertCard(ctx, tx, id, c); err != nil {
				return err
			}
		}
		created = true
		return nil
	})
	return id, created, err
}

func (s *SQLStore) insertCard(ctx context.Context, tx *sql.Tx, editionID int64, c model.Card) error {
	nmPrice := c.NMPrice
	for _, cc := range c.Conditions {
		if cc.Condition == model.ConditionNM && cc.Price > 0 {
			nmPrice = cc.Price
		}
	}

	cardID, err := s.insert(ctx, tx,
		`INSERT INTO cards (edition_id, name, image_url, rarity, is_foil, nm_price) VALUES (?, ?, ?, ?, ?, ?)`,
		editionID, c.Name, c.ImageURL, string(c.Rarity), c.IsFoil, nmPrice)
	if err != nil {
		return fmt.Errorf("failed to insert card %q: %w", c.Name, err)
	}

	for _, cc := range c.Conditions {
		if _, err := s.insert(ctx, tx,
			`INSERT INTO card_conditions (card_id, grade, price, quantity) VALUES (?, ?, ?, ?)`,
			cardID, string(cc.Condition), cc.Price, cc.Quantity); err != nil {
			return fmt.Errorf("failed to insert condition %s of card %q: %w", cc.Condition, c.Name, err)
		}
	}
	return nil
}

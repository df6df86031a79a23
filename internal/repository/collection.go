package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"magicgatherer-api/internal/model"
)

// CardExists reports whether a card with id exists.
func (s *SQLStore) CardExists(ctx context.Context, id int64) (bool, error) {
	var n int
	if err := s.queryRow(ctx, s.db, `SELECT COUNT(*) FROM cards WHERE id = ?`, id).Scan(&n); err != nil {
		return false, fmt.Errorf("failed to check card: %w", err)
	}
	return n > 0, nil
}

// GetCardCondition returns the grade row of a card, or nil if the card has no such grade.
func (s *SQLStore) GetCardCondition(ctx context.Context, cardID int64, grade model.Condition) (*model.CardCondition, error) {
	var cc model.CardCondition
	var g string
	err := s.queryRow(ctx, s.db,
		`SELECT id, card_id, grade, price, quantity FROM card_conditions WHERE card_id = ? AND grade = ?`,
		cardID, string(grade)).Scan(&cc.ID, &cc.CardID, &g, &cc.Price, &cc.Quantity)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get card condition: %w", err)
	}
	cc.Condition = model.Condition(g)
	return &cc, nil
}

// OwnsCardCondition reports whether the user already has a row for the condition.
func (s *SQLStore) OwnsCardCondition(ctx context.Context, userID, cardConditionID int64) (bool, error) {
	var n int
	err := s.queryRow(ctx, s.db,
		`SELECT COUNT(*) FROM card_owned WHERE user_id = ? AND card_condition_id = ?`,
		userID, cardConditionID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check owned card: %w", err)
	}
	return n > 0, nil
}

// CreateCardOwned inserts co and sets its ID. A second row for the same
// user and condition yields ErrDuplicate.
func (s *SQLStore) CreateCardOwned(ctx context.Context, co *model.CardOwned) error {
	id, err := s.insert(ctx, s.db,
		`INSERT INTO card_owned (user_id, card_condition_id, quantity) VALUES (?, ?, ?)`,
		co.UserID, co.CardConditionID, co.Quantity)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create owned card: %w", err)
	}
	co.ID = id
	return nil
}

// UpdateCardOwnedQuantity sets the quantity of a row owned by userID.
// It returns false when no such row belongs to the user.
func (s *SQLStore) UpdateCardOwnedQuantity(ctx context.Context, userID, id int64, quantity int) (bool, error) {
	res, err := s.exec(ctx, s.db,
		`UPDATE card_owned SET quantity = ? WHERE id = ? AND user_id = ?`, quantity, id, userID)
	if err != nil {
		return false, fmt.Errorf("failed to update owned card: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to update owned card: %w", err)
	}
	return n > 0, nil
}

// DeleteCardOwned removes a row owned by userID.
// It returns false when no such row belongs to the user.
func (s *SQLStore) DeleteCardOwned(ctx context.Context, userID, id int64) (bool, error) {
	res, err := s.exec(ctx, s.db, `DELETE FROM card_owned WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete owned card: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete owned card: %w", err)
	}
	return n > 0, nil
}

// ListOwnedConditions returns the user's rows for one card, best grade first.
func (s *SQLStore) ListOwnedConditions(ctx context.Context, userID, cardID int64) ([]model.CardOwnedDTO, error) {
	query := fmt.Sprintf(`SELECT co.id, c.id, c.name, c.image_url, cc.price, e.name, e.code, cc.grade, co.quantity
		FROM card_owned co
		JOIN card_conditions cc ON cc.id = co.card_condition_id
		JOIN cards c ON c.id = cc.card_id
		JOIN editions e ON e.id = c.edition_id
		WHERE co.user_id = ? AND c.id = ?
		ORDER BY %s, co.id`, gradeRankOf("cc.grade"))

	rows, err := s.query(ctx, s.db, query, userID, cardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list owned conditions: %w", err)
	}
	defer rows.Close()

	owned := []model.CardOwnedDTO{}
	for rows.Next() {
		var o model.CardOwnedDTO
		var grade string
		if err := rows.Scan(&o.CardOwnedID, &o.CardID, &o.CardName, &o.CardImageURL, &o.CardPrice,
			&o.EditionName, &o.EditionCode, &grade, &o.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan owned condition: %w", err)
		}
		o.Condition = model.Condition(grade)
		owned = append(owned, o)
	}
	return owned, rows.Err()
}

// CollectionTotals returns the summed quantity and the summed
// quantity * condition price of everything the user owns.
func (s *SQLStore) CollectionTotals(ctx context.Context, userID int64) (cards int, value float64, err error) {
	err = s.queryRow(ctx, s.db, `SELECT COALESCE(SUM(co.quantity), 0), COALESCE(SUM(co.quantity * cc.price), 0)
		FROM card_owned co
		JOIN card_conditions cc ON cc.id = co.card_condition_id
		WHERE co.user_id = ?`, userID).Scan(&cards, &value)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to sum collection: %w", err)
	}
	return cards, value, nil
}

package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/promise4039/gagebu/internal/common"
	"github.com/promise4039/gagebu/internal/dates"
	"github.com/promise4039/gagebu/internal/model"
)

// SaveCards inserts or replaces card records.
func (s *SQLiteStorage) SaveCards(ctx context.Context, cards []model.Card) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateCards(cards); err != nil {
		return err
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT OR REPLACE INTO cards (
				id, name, type, purpose, balance, active, track_balance
			) VALUES (?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer func() { _ = stmt.Close() }()

		for _, c := range cards {
			if _, err := stmt.ExecContext(ctx,
				c.ID, c.Name, string(c.Type), c.Purpose,
				c.Balance, c.Active, c.TrackBalance,
			); err != nil {
				return fmt.Errorf("failed to save card %s: %w", c.ID, err)
			}
		}
		return nil
	})
}

// GetCards returns every card, ordered by name.
func (s *SQLiteStorage) GetCards(ctx context.Context) ([]model.Card, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	return s.getCardsTx(ctx, tx)
}

func (s *SQLiteStorage) getCardsTx(ctx context.Context, tx *sql.Tx) ([]model.Card, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT id, name, type, COALESCE(purpose, ''), balance, active, track_balance
		FROM cards ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query cards: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var cards []model.Card
	for rows.Next() {
		var c model.Card
		var cardType string
		if err := rows.Scan(&c.ID, &c.Name, &cardType, &c.Purpose,
			&c.Balance, &c.Active, &c.TrackBalance); err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		c.Type = model.CardType(cardType)
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

// GetCardByID returns one card or common.ErrNotFound.
func (s *SQLiteStorage) GetCardByID(ctx context.Context, id string) (*model.Card, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	var c model.Card
	var cardType string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, type, COALESCE(purpose, ''), balance, active, track_balance
		FROM cards WHERE id = ?
	`, id).Scan(&c.ID, &c.Name, &cardType, &c.Purpose, &c.Balance, &c.Active, &c.TrackBalance)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("card %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query card: %w", err)
	}
	c.Type = model.CardType(cardType)
	return &c, nil
}

// SaveCardVersions inserts or replaces rule version records.
func (s *SQLiteStorage) SaveCardVersions(ctx context.Context, versions []model.CardVersion) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateCardVersions(versions); err != nil {
		return err
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT OR REPLACE INTO card_versions (
				id, card_id, valid_from,
				payment_day, payment_day_eom, clamp, weekend_adjust,
				cycle_start_offset, cycle_start_day, cycle_start_eom,
				cycle_end_offset, cycle_end_day, cycle_end_eom
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer func() { _ = stmt.Close() }()

		for _, v := range versions {
			if _, err := stmt.ExecContext(ctx,
				v.ID, v.CardID, dates.Format(v.ValidFrom),
				v.PaymentDay.Day, v.PaymentDay.EndOfMonth, v.Clamp, string(v.WeekendAdjust),
				v.CycleStart.MonthOffset, v.CycleStart.Day.Day, v.CycleStart.Day.EndOfMonth,
				v.CycleEnd.MonthOffset, v.CycleEnd.Day.Day, v.CycleEnd.Day.EndOfMonth,
			); err != nil {
				return fmt.Errorf("failed to save card version %s: %w", v.ID, err)
			}
		}
		return nil
	})
}

// GetCardVersions returns every rule version, ordered by card and valid-from.
func (s *SQLiteStorage) GetCardVersions(ctx context.Context) ([]model.CardVersion, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	return s.getCardVersionsTx(ctx, tx)
}

func (s *SQLiteStorage) getCardVersionsTx(ctx context.Context, tx *sql.Tx) ([]model.CardVersion, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT id, card_id, valid_from,
			payment_day, payment_day_eom, clamp, weekend_adjust,
			cycle_start_offset, cycle_start_day, cycle_start_eom,
			cycle_end_offset, cycle_end_day, cycle_end_eom
		FROM card_versions ORDER BY card_id, valid_from
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query card versions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var versions []model.CardVersion
	for rows.Next() {
		var v model.CardVersion
		var validFrom, adjust string
		if err := rows.Scan(&v.ID, &v.CardID, &validFrom,
			&v.PaymentDay.Day, &v.PaymentDay.EndOfMonth, &v.Clamp, &adjust,
			&v.CycleStart.MonthOffset, &v.CycleStart.Day.Day, &v.CycleStart.Day.EndOfMonth,
			&v.CycleEnd.MonthOffset, &v.CycleEnd.Day.Day, &v.CycleEnd.Day.EndOfMonth,
		); err != nil {
			return nil, fmt.Errorf("failed to scan card version: %w", err)
		}
		d, ok := dates.Parse(validFrom)
		if !ok {
			return nil, fmt.Errorf("card version %s has invalid valid-from date %q", v.ID, validFrom)
		}
		v.ValidFrom = d
		v.WeekendAdjust = dates.WeekendAdjust(adjust)
		versions = append(versions, v)
	}
	return versions, rows.Err()
}

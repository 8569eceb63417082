package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/promise4039/gagebu/internal/dates"
	"github.com/promise4039/gagebu/internal/model"
)

// UpsertStatement stores a user-entered actual billed amount. The unique
// index on (card_id, payment_date) keeps at most one statement per payment;
// re-entering an amount for the same payment replaces the previous one.
func (s *SQLiteStorage) UpsertStatement(ctx context.Context, st model.Statement) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := st.Validate(); err != nil {
		return err
	}

	if st.UpdatedAt.IsZero() {
		st.UpdatedAt = time.Now().UTC()
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO statements (id, card_id, payment_date, actual, memo, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT (card_id, payment_date) DO UPDATE SET
				actual = excluded.actual,
				memo = excluded.memo,
				updated_at = excluded.updated_at
		`, st.ID, st.CardID, dates.Format(st.PaymentDate), st.Actual, st.Memo, st.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to upsert statement: %w", err)
		}
		return nil
	})
}

// DeleteStatement removes the actual entered for one (card, payment date).
// Deleting a statement that does not exist is not an error.
func (s *SQLiteStorage) DeleteStatement(ctx context.Context, cardID string, paymentDate string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(cardID, "cardID"); err != nil {
		return err
	}
	if err := validateString(paymentDate, "paymentDate"); err != nil {
		return err
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM statements WHERE card_id = ? AND payment_date = ?
		`, cardID, paymentDate); err != nil {
			return fmt.Errorf("failed to delete statement: %w", err)
		}
		return nil
	})
}

// GetStatements returns every statement, ordered by payment date then card.
func (s *SQLiteStorage) GetStatements(ctx context.Context) ([]model.Statement, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	return s.getStatementsTx(ctx, tx)
}

func (s *SQLiteStorage) getStatementsTx(ctx context.Context, tx *sql.Tx) ([]model.Statement, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT id, card_id, payment_date, actual, COALESCE(memo, ''), updated_at
		FROM statements ORDER BY payment_date, card_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query statements: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var statements []model.Statement
	for rows.Next() {
		var st model.Statement
		var pd string
		if err := rows.Scan(&st.ID, &st.CardID, &pd, &st.Actual, &st.Memo, &st.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan statement: %w", err)
		}
		d, ok := dates.Parse(pd)
		if !ok {
			return nil, fmt.Errorf("statement %s has invalid payment date %q", st.ID, pd)
		}
		st.PaymentDate = d
		statements = append(statements, st)
	}
	return statements, rows.Err()
}

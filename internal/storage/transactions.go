package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/promise4039/gagebu/internal/dates"
	"github.com/promise4039/gagebu/internal/model"
)

// SaveTransactions inserts or replaces transaction records. Edits replace the
// whole record; there is no partial mutation.
func (s *SQLiteStorage) SaveTransactions(ctx context.Context, txs []model.Tx) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransactions(txs); err != nil {
		return err
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT OR REPLACE INTO transactions (
				id, date, card_id, category, memo,
				amount, installments, fee_mode, fee_rate
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer func() { _ = stmt.Close() }()

		for _, t := range txs {
			feeMode := t.FeeMode
			if feeMode == "" {
				feeMode = model.FeeFree
			}
			if _, err := stmt.ExecContext(ctx,
				t.ID, dates.Format(t.Date), t.CardID, t.Category, t.Memo,
				t.Amount, t.InstallmentCount(), string(feeMode), t.FeeRate,
			); err != nil {
				return fmt.Errorf("failed to save transaction %s: %w", t.ID, err)
			}
		}
		return nil
	})
}

// GetTransactions returns every transaction, ordered by date then id.
func (s *SQLiteStorage) GetTransactions(ctx context.Context) ([]model.Tx, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	return s.getTransactionsTx(ctx, tx)
}

func (s *SQLiteStorage) getTransactionsTx(ctx context.Context, tx *sql.Tx) ([]model.Tx, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT id, date, card_id, COALESCE(category, ''), COALESCE(memo, ''),
			amount, installments, fee_mode, fee_rate
		FROM transactions ORDER BY date, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var txs []model.Tx
	for rows.Next() {
		var t model.Tx
		var day, feeMode string
		if err := rows.Scan(&t.ID, &day, &t.CardID, &t.Category, &t.Memo,
			&t.Amount, &t.Installments, &feeMode, &t.FeeRate); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		d, ok := dates.Parse(day)
		if !ok {
			return nil, fmt.Errorf("transaction %s has invalid date %q", t.ID, day)
		}
		t.Date = d
		t.FeeMode = model.FeeMode(feeMode)
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

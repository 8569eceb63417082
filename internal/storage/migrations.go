package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application
// expects. If the database cannot be migrated to this version, it's a fatal
// error.
const ExpectedSchemaVersion = 2

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS cards (
					id TEXT PRIMARY KEY,
					name TEXT NOT NULL,
					type TEXT NOT NULL,
					purpose TEXT,
					balance INTEGER NOT NULL DEFAULT 0,
					active INTEGER NOT NULL DEFAULT 1,
					track_balance INTEGER NOT NULL DEFAULT 0,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,

				`CREATE TABLE IF NOT EXISTS card_versions (
					id TEXT PRIMARY KEY,
					card_id TEXT NOT NULL,
					valid_from TEXT NOT NULL,
					payment_day INTEGER NOT NULL,
					payment_day_eom INTEGER NOT NULL DEFAULT 0,
					clamp INTEGER NOT NULL DEFAULT 1,
					weekend_adjust TEXT NOT NULL DEFAULT 'none',
					cycle_start_offset INTEGER NOT NULL,
					cycle_start_day INTEGER NOT NULL,
					cycle_start_eom INTEGER NOT NULL DEFAULT 0,
					cycle_end_offset INTEGER NOT NULL,
					cycle_end_day INTEGER NOT NULL,
					cycle_end_eom INTEGER NOT NULL DEFAULT 0,
					FOREIGN KEY (card_id) REFERENCES cards(id)
				)`,
				`CREATE INDEX idx_card_versions_card ON card_versions(card_id, valid_from)`,

				`CREATE TABLE IF NOT EXISTS transactions (
					id TEXT PRIMARY KEY,
					date TEXT NOT NULL,
					card_id TEXT NOT NULL,
					category TEXT,
					memo TEXT,
					amount INTEGER NOT NULL,
					installments INTEGER NOT NULL DEFAULT 1,
					fee_mode TEXT NOT NULL DEFAULT 'free',
					fee_rate REAL NOT NULL DEFAULT 0,
					FOREIGN KEY (card_id) REFERENCES cards(id)
				)`,
				`CREATE INDEX idx_transactions_date ON transactions(date)`,
				`CREATE INDEX idx_transactions_card ON transactions(card_id)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Statements for reconciliation actuals",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS statements (
					id TEXT PRIMARY KEY,
					card_id TEXT NOT NULL,
					payment_date TEXT NOT NULL,
					actual INTEGER NOT NULL,
					memo TEXT,
					updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					FOREIGN KEY (card_id) REFERENCES cards(id)
				)`,
				`CREATE UNIQUE INDEX idx_statements_card_date
					ON statements(card_id, payment_date)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
}

// Migrate applies all pending migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	current, err := s.schemaVersion(ctx)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}

		slog.Info("Applying migration",
			"version", m.Version,
			"description", m.Description)

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin migration transaction: %w", err)
		}

		if err := m.Up(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", m.Version, err)
		}

		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", m.Version)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to set schema version %d: %w", m.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", m.Version, err)
		}
	}

	final, err := s.schemaVersion(ctx)
	if err != nil {
		return err
	}
	if final != ExpectedSchemaVersion {
		return fmt.Errorf("database at schema version %d, expected %d", final, ExpectedSchemaVersion)
	}
	return nil
}

func (s *SQLiteStorage) schemaVersion(ctx context.Context) (int, error) {
	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return version, nil
}

// Package storage provides the data persistence layer for the input records
// the billing engine consumes. Computed results are never stored; every view
// is recomputed from a snapshot.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/promise4039/gagebu/internal/model"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStorage implements service.Storage using SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStorage creates a new SQLite storage instance.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStorage{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// Snapshot loads every input record in one read transaction so the engine
// always computes against a consistent view.
func (s *SQLiteStorage) Snapshot(ctx context.Context) (model.Snapshot, error) {
	if err := validateContext(ctx); err != nil {
		return model.Snapshot{}, err
	}

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var snap model.Snapshot
	if snap.Cards, err = s.getCardsTx(ctx, tx); err != nil {
		return model.Snapshot{}, err
	}
	if snap.Versions, err = s.getCardVersionsTx(ctx, tx); err != nil {
		return model.Snapshot{}, err
	}
	if snap.Txs, err = s.getTransactionsTx(ctx, tx); err != nil {
		return model.Snapshot{}, err
	}
	if snap.Statements, err = s.getStatementsTx(ctx, tx); err != nil {
		return model.Snapshot{}, err
	}
	return snap, tx.Commit()
}

// withTx runs fn inside a write transaction, committing on success.
func (s *SQLiteStorage) withTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/promise4039/gagebu/internal/model"
)

// Storage defines the contract for the input-record persistence layer. The
// billing engine itself never touches storage; commands load a snapshot and
// hand it to the engine.
type Storage interface {
	// Card operations
	SaveCards(ctx context.Context, cards []model.Card) error
	GetCards(ctx context.Context) ([]model.Card, error)
	GetCardByID(ctx context.Context, id string) (*model.Card, error)

	// Rule version operations
	SaveCardVersions(ctx context.Context, versions []model.CardVersion) error
	GetCardVersions(ctx context.Context) ([]model.CardVersion, error)

	// Transaction operations (records are replaced wholesale on edit)
	SaveTransactions(ctx context.Context, txs []model.Tx) error
	GetTransactions(ctx context.Context) ([]model.Tx, error)

	// Statement operations
	UpsertStatement(ctx context.Context, st model.Statement) error
	DeleteStatement(ctx context.Context, cardID string, paymentDate string) error
	GetStatements(ctx context.Context) ([]model.Statement, error)

	// Snapshot loads every input record in one consistent view.
	Snapshot(ctx context.Context) (model.Snapshot, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

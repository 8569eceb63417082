package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/promise4039/gagebu/internal/model"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrInvalidCard  = errors.New("invalid card")
	ErrInvalidTx    = errors.New("invalid transaction")
	ErrInvalidRules = errors.New("invalid card version")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validateCards(cards []model.Card) error {
	for i, c := range cards {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("%w at index %d: %w", ErrInvalidCard, i, err)
		}
	}
	return nil
}

func validateCardVersions(versions []model.CardVersion) error {
	for i, v := range versions {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("%w at index %d: %w", ErrInvalidRules, i, err)
		}
	}
	return nil
}

func validateTransactions(txs []model.Tx) error {
	for i, tx := range txs {
		if err := tx.Validate(); err != nil {
			return fmt.Errorf("%w at index %d: %w", ErrInvalidTx, i, err)
		}
	}
	return nil
}

package model

import (
	"fmt"
	"time"
)

// FeeMode selects how an installment fee is computed for a transaction.
type FeeMode string

// Fee modes.
const (
	FeeFree   FeeMode = "free"
	FeeManual FeeMode = "manual"
)

// Tx is one raw expense or income record. Amount is signed: positive for
// expenses, negative for income and refunds. FeeRate is a percentage and is
// consulted only when FeeMode is FeeManual.
type Tx struct {
	ID           string
	Date         time.Time
	CardID       string
	Category     string
	Memo         string
	Amount       int64
	Installments int
	FeeMode      FeeMode
	FeeRate      float64
}

// InstallmentCount returns the effective number of installments, never less
// than one.
func (t Tx) InstallmentCount() int {
	if t.Installments < 1 {
		return 1
	}
	return t.Installments
}

// Validate checks the transaction for storage.
func (t Tx) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("transaction id is required")
	}
	if t.Date.IsZero() {
		return fmt.Errorf("transaction date is required")
	}
	if t.CardID == "" {
		return fmt.Errorf("transaction card id is required")
	}
	if t.Installments < 0 {
		return fmt.Errorf("installment count cannot be negative, got %d", t.Installments)
	}
	switch t.FeeMode {
	case FeeFree, FeeManual, "":
		return nil
	default:
		return fmt.Errorf("unknown fee mode %q", t.FeeMode)
	}
}

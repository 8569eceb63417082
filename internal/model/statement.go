package model

import (
	"fmt"
	"time"
)

// Statement is a user-entered actual billed amount for one card on one
// payment date. At most one statement exists per (CardID, PaymentDate).
type Statement struct {
	ID          string
	CardID      string
	PaymentDate time.Time
	Actual      int64
	Memo        string
	UpdatedAt   time.Time
}

// Validate checks the statement for storage.
func (s Statement) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("statement id is required")
	}
	if s.CardID == "" {
		return fmt.Errorf("statement card id is required")
	}
	if s.PaymentDate.IsZero() {
		return fmt.Errorf("statement payment date is required")
	}
	return nil
}

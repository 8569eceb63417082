// Package model defines the plain value records the billing engine consumes
// and the derived records it produces. The engine never mutates these; edits
// replace records wholesale.
package model

import "fmt"

// CardType classifies a payment card or account.
type CardType string

// Card types.
const (
	CardTypeCredit          CardType = "credit"
	CardTypeDebit           CardType = "debit"
	CardTypeCash            CardType = "cash"
	CardTypeAccount         CardType = "account"
	CardTypeTransferSpend   CardType = "transfer-spend"
	CardTypeTransferNospend CardType = "transfer-nonspend"
)

// Card identifies and classifies one payment card. Billing rules live in
// CardVersion records, never here.
type Card struct {
	ID           string
	Name         string
	Type         CardType
	Purpose      string
	Balance      int64
	Active       bool
	TrackBalance bool
}

// Billable reports whether the card participates in billing-cycle
// computation. Only active credit cards produce payment events.
func (c Card) Billable() bool {
	return c.Active && c.Type == CardTypeCredit
}

// Validate checks the card for storage.
func (c Card) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("card id is required")
	}
	if c.Name == "" {
		return fmt.Errorf("card name is required")
	}
	switch c.Type {
	case CardTypeCredit, CardTypeDebit, CardTypeCash, CardTypeAccount,
		CardTypeTransferSpend, CardTypeTransferNospend:
		return nil
	default:
		return fmt.Errorf("unknown card type %q", c.Type)
	}
}

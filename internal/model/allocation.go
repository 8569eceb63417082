package model

import "time"

// Allocation assigns one installment's share of a transaction to a concrete
// payment date. Allocations are derived on every computation and never
// persisted. Summing Principal (and separately Fee) across all allocations of
// one transaction reproduces that transaction's amount and computed fee
// exactly.
type Allocation struct {
	TxID        string
	CardID      string
	PaymentDate time.Time
	Principal   int64
	Fee         int64
	Index       int // 0-based installment index
}

// Total is the amount charged on the payment date for this installment.
func (a Allocation) Total() int64 {
	return a.Principal + a.Fee
}

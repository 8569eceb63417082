package model

import "time"

// InstallmentStat summarizes one multi-installment transaction's progress as
// of a particular payment event. PaidThrough includes the amount due on the
// event date itself; Remaining is what is still owed after it.
type InstallmentStat struct {
	TxID        string
	Memo        string
	Category    string
	Total       int64
	PaidThrough int64
	Remaining   int64
	DueNow      int64
	Count       int
}

// PaymentEvent is the reconciliation row for one (card, payment date):
// the expected charge computed from allocations joined with any user-entered
// actual. Actual and Diff are nil when no statement has been entered.
// PaymentEvents are recomputed from scratch on every query.
type PaymentEvent struct {
	CardID       string
	CardName     string
	PaymentDate  time.Time
	CycleStart   time.Time
	CycleEnd     time.Time
	Expected     int64
	Actual       *int64
	Diff         *int64
	Memo         string
	Installments []InstallmentStat
}

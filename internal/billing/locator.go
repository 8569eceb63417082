package billing

import (
	"time"

	"github.com/promise4039/gagebu/internal/dates"
	"github.com/promise4039/gagebu/internal/model"
)

// Search bounds for the cycle locator. Cycle boundaries depend on the rule
// version in force, so a transaction's payment month is not a fixed offset
// from its own month; the locator scans candidate months instead, and the
// bounds make termination trivial.
const (
	forwardScanMonths  = 8
	backwardScanMonths = 6
)

// Cycle is one concrete billing cycle: the payment it feeds, the month that
// payment belongs to, the inclusive transaction date range it covers, and the
// rule version that produced it.
type Cycle struct {
	Version      model.CardVersion
	PaymentMonth dates.YearMonth
	PaymentDate  time.Time
	Start        time.Time
	End          time.Time
}

// Contains reports whether a transaction date falls inside the cycle's
// inclusive [Start, End] range.
func (c Cycle) Contains(d time.Time) bool {
	return !d.Before(c.Start) && !d.After(c.End)
}

// CycleForMonth computes the cycle whose payment lands in the given month,
// resolving the applicable rule version at that month's mid-month anchor.
// ok=false when the card has no versions.
func CycleForMonth(versions []model.CardVersion, ym dates.YearMonth) (Cycle, bool) {
	v, ok := ResolveVersion(versions, MonthAnchor(ym))
	if !ok {
		return Cycle{}, false
	}
	pd := PaymentDateForMonth(v, ym)
	start, end := CycleRangeForPayment(v, pd)
	return Cycle{
		Version:      v,
		PaymentMonth: ym,
		PaymentDate:  pd,
		Start:        start,
		End:          end,
	}, true
}

// LocateCycle finds the billing cycle containing txDate: first the payment
// months 0..7 forward of the transaction's month, then 1..6 backward. ok=false
// means the transaction is unbillable and contributes no allocations; it
// stays in the raw transaction set regardless.
func LocateCycle(versions []model.CardVersion, txDate time.Time) (Cycle, bool) {
	txMonth := dates.Of(txDate)

	for off := 0; off < forwardScanMonths; off++ {
		if c, ok := CycleForMonth(versions, txMonth.Add(off)); ok && c.Contains(txDate) {
			return c, true
		}
	}
	for off := 1; off <= backwardScanMonths; off++ {
		if c, ok := CycleForMonth(versions, txMonth.Add(-off)); ok && c.Contains(txDate) {
			return c, true
		}
	}
	return Cycle{}, false
}

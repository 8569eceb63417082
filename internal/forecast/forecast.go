// Package forecast aggregates allocations into payment events over a rolling
// past/future window, reconciles them against user-entered statements, and
// projects upcoming payment dates per card.
//
// Everything is recomputed from the snapshot on every call; nothing is cached
// or mutated, and missing data yields empty or nil results rather than
// errors.
package forecast

import (
	"sort"
	"time"

	"github.com/promise4039/gagebu/internal/billing"
	"github.com/promise4039/gagebu/internal/dates"
	"github.com/promise4039/gagebu/internal/model"
)

// forecastScanMonths bounds every forward month scan so a card whose rules
// stop producing dates still terminates.
const forecastScanMonths = 48

// NextPaymentDates returns up to horizon payment dates for one card, on or
// after from, scanning months forward under each month's own resolved rule.
func NextPaymentDates(versions []model.CardVersion, cardID string, horizon int, from time.Time) []time.Time {
	sorted := billing.VersionsByCard(versions)[cardID]
	if len(sorted) == 0 || horizon < 1 {
		return nil
	}

	var out []time.Time
	ym := dates.Of(from)
	for i := 0; i < forecastScanMonths && len(out) < horizon; i++ {
		c, ok := billing.CycleForMonth(sorted, ym.Add(i))
		if ok && !c.PaymentDate.Before(from) {
			out = append(out, c.PaymentDate)
		}
	}
	return out
}

// ForecastRow is one projected future charge for a card.
type ForecastRow struct {
	CardID      string
	CardName    string
	PaymentDate time.Time
	Expected    int64
}

// ForecastByCard projects expected charges for every active credit card over
// the next months payment dates, starting from now. Cards with no rule
// versions contribute no rows.
func ForecastByCard(cards []model.Card, versions []model.CardVersion, txs []model.Tx, now time.Time, months int) []ForecastRow {
	allocs := billing.BuildAllocations(cards, versions, txs)
	expected := sumByCardDate(allocs)

	var rows []ForecastRow
	for _, card := range cards {
		if !card.Billable() {
			continue
		}
		for _, pd := range NextPaymentDates(versions, card.ID, months, now) {
			rows = append(rows, ForecastRow{
				CardID:      card.ID,
				CardName:    card.Name,
				PaymentDate: pd,
				Expected:    expected[cardDate{card.ID, dates.Format(pd)}],
			})
		}
	}
	sortByDateThenName(rows)
	return rows
}

// SuggestedAdjustmentDate returns the cycle-end date behind a payment date
// the engine produced for this card: the recommended posting date for a
// manual reconciliation adjustment, chosen so the adjustment lands inside the
// same cycle on the next recomputation. ok=false for an unparseable date or a
// card with no versions.
func SuggestedAdjustmentDate(versions []model.CardVersion, cardID, paymentDate string) (string, bool) {
	pd, ok := dates.Parse(paymentDate)
	if !ok {
		return "", false
	}
	sorted := billing.VersionsByCard(versions)[cardID]
	c, ok := billing.CycleForMonth(sorted, dates.Of(pd))
	if !ok {
		return "", false
	}
	// The cycle range depends only on the payment month, so recompute it
	// against the supplied date rather than the month's canonical one;
	// both share the month for any date the engine itself produced.
	_, end := billing.CycleRangeForPayment(c.Version, pd)
	return dates.Format(end), true
}

type cardDate struct {
	cardID string
	date   string
}

func sumByCardDate(allocs []model.Allocation) map[cardDate]int64 {
	sums := make(map[cardDate]int64, len(allocs))
	for _, a := range allocs {
		sums[cardDate{a.CardID, dates.Format(a.PaymentDate)}] += a.Total()
	}
	return sums
}

func sortByDateThenName(rows []ForecastRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].PaymentDate.Equal(rows[j].PaymentDate) {
			return rows[i].PaymentDate.Before(rows[j].PaymentDate)
		}
		return rows[i].CardName < rows[j].CardName
	})
}

package forecast

import (
	"sort"
	"time"

	"github.com/promise4039/gagebu/internal/billing"
	"github.com/promise4039/gagebu/internal/dates"
	"github.com/promise4039/gagebu/internal/model"
)

// PaymentEvents computes the reconciliation view: one event per active credit
// card per distinct payment date within pastMonths before and futureMonths
// after now's month. Expected sums that date's allocations; Actual joins the
// matching statement when one exists, and Diff is actual minus expected.
// A rule change mid-window can make two month offsets produce the same
// payment date, so events are de-duplicated by (cardID, paymentDate).
// Results sort by payment date, then card name.
func PaymentEvents(snap model.Snapshot, now time.Time, pastMonths, futureMonths int) []model.PaymentEvent {
	allocs := billing.BuildAllocations(snap.Cards, snap.Versions, snap.Txs)
	byCard := billing.VersionsByCard(snap.Versions)
	statements := statementIndex(snap.Statements)
	txByID := txIndex(snap.Txs)

	var events []model.PaymentEvent
	nowMonth := dates.Of(now)
	for _, card := range snap.Cards {
		if !card.Billable() {
			continue
		}
		versions := byCard[card.ID]
		seen := make(map[string]bool)

		for off := -pastMonths; off <= futureMonths; off++ {
			c, ok := billing.CycleForMonth(versions, nowMonth.Add(off))
			if !ok {
				continue
			}
			key := dates.Format(c.PaymentDate)
			if seen[key] {
				continue
			}
			seen[key] = true

			ev := model.PaymentEvent{
				CardID:       card.ID,
				CardName:     card.Name,
				PaymentDate:  c.PaymentDate,
				CycleStart:   c.Start,
				CycleEnd:     c.End,
				Expected:     expectedFor(allocs, card.ID, c.PaymentDate),
				Installments: installmentStats(allocs, txByID, card.ID, c.PaymentDate),
			}
			if st, ok := statements[cardDate{card.ID, key}]; ok {
				actual := st.Actual
				diff := actual - ev.Expected
				ev.Actual = &actual
				ev.Diff = &diff
				ev.Memo = st.Memo
			}
			events = append(events, ev)
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		if !events[i].PaymentDate.Equal(events[j].PaymentDate) {
			return events[i].PaymentDate.Before(events[j].PaymentDate)
		}
		return events[i].CardName < events[j].CardName
	})
	return events
}

func expectedFor(allocs []model.Allocation, cardID string, pd time.Time) int64 {
	var sum int64
	for _, a := range allocs {
		if a.CardID == cardID && a.PaymentDate.Equal(pd) {
			sum += a.Total()
		}
	}
	return sum
}

// installmentStats summarizes every multi-installment transaction whose
// allocation date range [first, last] includes this payment date: the full
// principal, the principal paid through this date inclusive, the principal
// still owed after it, and the amount due on this date itself.
func installmentStats(allocs []model.Allocation, txByID map[string]model.Tx, cardID string, pd time.Time) []model.InstallmentStat {
	grouped := make(map[string][]model.Allocation)
	var order []string
	for _, a := range allocs {
		if a.CardID != cardID {
			continue
		}
		tx, ok := txByID[a.TxID]
		if !ok || tx.InstallmentCount() < 2 {
			continue
		}
		if _, seen := grouped[a.TxID]; !seen {
			order = append(order, a.TxID)
		}
		grouped[a.TxID] = append(grouped[a.TxID], a)
	}

	var stats []model.InstallmentStat
	for _, txID := range order {
		group := grouped[txID]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Index < group[j].Index
		})

		first := group[0].PaymentDate
		last := group[len(group)-1].PaymentDate
		if pd.Before(first) || pd.After(last) {
			continue
		}

		tx := txByID[txID]
		stat := model.InstallmentStat{
			TxID:     txID,
			Memo:     tx.Memo,
			Category: tx.Category,
			Count:    len(group),
		}
		for _, a := range group {
			stat.Total += a.Principal
			switch {
			case a.PaymentDate.Before(pd):
				stat.PaidThrough += a.Principal
			case a.PaymentDate.Equal(pd):
				stat.PaidThrough += a.Principal
				stat.DueNow += a.Principal
			default:
				stat.Remaining += a.Principal
			}
		}
		stats = append(stats, stat)
	}
	return stats
}

func statementIndex(statements []model.Statement) map[cardDate]model.Statement {
	idx := make(map[cardDate]model.Statement, len(statements))
	for _, s := range statements {
		idx[cardDate{s.CardID, dates.Format(s.PaymentDate)}] = s
	}
	return idx
}

func txIndex(txs []model.Tx) map[string]model.Tx {
	idx := make(map[string]model.Tx, len(txs))
	for _, t := range txs {
		idx[t.ID] = t
	}
	return idx
}

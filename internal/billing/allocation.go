package billing

import (
	"math"

	"github.com/promise4039/gagebu/internal/model"
)

// SplitAmount divides total into n integer parts that sum to total exactly:
// truncating division with the entire remainder on the first part. This is a
// policy choice rather than an accounting necessity; changing it (say, to
// proportional rounding) should happen only here.
func SplitAmount(total int64, n int) []int64 {
	if n < 1 {
		n = 1
	}
	base := total / int64(n)
	parts := make([]int64, n)
	for i := range parts {
		parts[i] = base
	}
	parts[0] += total - base*int64(n)
	return parts
}

// FeeTotal computes the installment fee for a transaction: zero unless the
// fee mode is manual, otherwise the amount times the percentage rate, rounded
// half away from zero.
func FeeTotal(amount int64, mode model.FeeMode, rate float64) int64 {
	if mode != model.FeeManual {
		return 0
	}
	return int64(math.Round(float64(amount) * rate / 100))
}

// BuildAllocations derives the full allocation set for a snapshot's
// transactions. Only transactions on credit cards allocate; a transaction
// whose cycle cannot be located within the search bounds is skipped, and an
// installment whose target month has no applicable version is dropped
// silently. Input order is preserved per transaction so installment k always
// follows installment k-1.
func BuildAllocations(cards []model.Card, versions []model.CardVersion, txs []model.Tx) []model.Allocation {
	creditIDs := make(map[string]bool, len(cards))
	for _, c := range cards {
		if c.Type == model.CardTypeCredit {
			creditIDs[c.ID] = true
		}
	}
	byCard := VersionsByCard(versions)

	var out []model.Allocation
	for _, tx := range txs {
		if !creditIDs[tx.CardID] {
			continue
		}
		out = append(out, allocateTx(byCard[tx.CardID], tx)...)
	}
	return out
}

func allocateTx(versions []model.CardVersion, tx model.Tx) []model.Allocation {
	located, ok := LocateCycle(versions, tx.Date)
	if !ok {
		return nil
	}

	n := tx.InstallmentCount()
	principals := SplitAmount(tx.Amount, n)
	fees := SplitAmount(FeeTotal(tx.Amount, tx.FeeMode, tx.FeeRate), n)

	allocs := make([]model.Allocation, 0, n)
	for k := 0; k < n; k++ {
		// Each installment bills under the rule in force for its own
		// target month: a version boundary between installments moves
		// the later ones to the new schedule.
		ym := located.PaymentMonth.Add(k)
		v, ok := ResolveVersion(versions, MonthAnchor(ym))
		if !ok {
			continue
		}
		allocs = append(allocs, model.Allocation{
			TxID:        tx.ID,
			CardID:      tx.CardID,
			PaymentDate: PaymentDateForMonth(v, ym),
			Principal:   principals[k],
			Fee:         fees[k],
			Index:       k,
		})
	}
	return allocs
}

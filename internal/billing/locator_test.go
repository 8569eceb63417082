package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promise4039/gagebu/internal/dates"
	"github.com/promise4039/gagebu/internal/model"
)

func TestLocateCycle(t *testing.T) {
	versions := []model.CardVersion{day13Version()}

	tests := []struct {
		name            string
		txDate          string
		wantPaymentDate string
		wantStart       string
		wantEnd         string
	}{
		{
			// A February purchase bills on the March payment.
			name:            "mid cycle",
			txDate:          "2024-02-10",
			wantPaymentDate: "2024-03-13",
			wantStart:       "2024-02-01",
			wantEnd:         "2024-02-29",
		},
		{
			name:            "first day of cycle",
			txDate:          "2024-02-01",
			wantPaymentDate: "2024-03-13",
			wantStart:       "2024-02-01",
			wantEnd:         "2024-02-29",
		},
		{
			name:            "last day of cycle",
			txDate:          "2024-02-29",
			wantPaymentDate: "2024-03-13",
			wantStart:       "2024-02-01",
			wantEnd:         "2024-02-29",
		},
		{
			// March 1 belongs to the next cycle, paid in April (the 13th
			// is a Saturday, shifted back to Friday the 12th).
			name:            "day after cycle end",
			txDate:          "2024-03-01",
			wantPaymentDate: "2024-04-12",
			wantStart:       "2024-03-01",
			wantEnd:         "2024-03-31",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := LocateCycle(versions, date(tt.txDate))
			require.True(t, ok, "transaction should be billable")
			assert.Equal(t, tt.wantPaymentDate, dates.Format(c.PaymentDate))
			assert.Equal(t, tt.wantStart, dates.Format(c.Start))
			assert.Equal(t, tt.wantEnd, dates.Format(c.End))
		})
	}
}

func TestLocateCycleNoVersions(t *testing.T) {
	_, ok := LocateCycle(nil, date("2024-02-10"))
	assert.False(t, ok)
}

func TestLocateCycleBackwardScan(t *testing.T) {
	// A cycle reaching forward past its own payment month: transactions up
	// to two months after the payment month still belong to it, so the
	// containing cycle is only found by scanning payment months backward.
	v := day13Version()
	v.WeekendAdjust = dates.AdjustNone
	v.CycleStart = model.CycleAnchor{MonthOffset: 1, Day: dates.DayOf(1)}
	v.CycleEnd = model.CycleAnchor{MonthOffset: 2, Day: dates.EndOfMonth()}
	versions := []model.CardVersion{v}

	c, ok := LocateCycle(versions, date("2024-05-20"))
	require.True(t, ok)
	// May 20 falls in [May 1, Jun 30], the cycle paid back in April.
	assert.Equal(t, "2024-04-13", dates.Format(c.PaymentDate))
}

func TestLocateCycleUnreachable(t *testing.T) {
	// A cycle window so far from any payment month that the bounded scan
	// never contains the transaction date.
	v := day13Version()
	v.CycleStart = model.CycleAnchor{MonthOffset: -12, Day: dates.DayOf(1)}
	v.CycleEnd = model.CycleAnchor{MonthOffset: -12, Day: dates.EndOfMonth()}
	versions := []model.CardVersion{v}

	_, ok := LocateCycle(versions, date("2024-02-10"))
	assert.False(t, ok, "transaction outside every scanned cycle is unbillable")
}

func TestLocateCycleVersionChange(t *testing.T) {
	// Rule change on 2024-04-01: the cycle moves from previous-month to
	// same-month boundaries. A late-March transaction must land in a cycle
	// computed under the version in force for its payment month.
	v1 := day13Version()
	v2 := day13Version()
	v2.ID = "v2"
	v2.ValidFrom = date("2024-04-01")
	v2.CycleStart = model.CycleAnchor{MonthOffset: 0, Day: dates.DayOf(1)}
	v2.CycleEnd = model.CycleAnchor{MonthOffset: 0, Day: dates.EndOfMonth()}
	versions := []model.CardVersion{v1, v2}

	// February spend bills under the old rule.
	c, ok := LocateCycle(versions, date("2024-02-15"))
	require.True(t, ok)
	assert.Equal(t, "v1", c.Version.ID)
	assert.Equal(t, "2024-03-13", dates.Format(c.PaymentDate))

	// April spend bills under the new rule (Apr 13 is a Saturday).
	c, ok = LocateCycle(versions, date("2024-04-20"))
	require.True(t, ok)
	assert.Equal(t, "v2", c.Version.ID)
	assert.Equal(t, "2024-04-12", dates.Format(c.PaymentDate))

	// March falls in the gap the rule change opened: the March payment
	// month still covers February, and the April one covers April itself.
	// No cycle claims March, so March spend is unbillable.
	_, ok = LocateCycle(versions, date("2024-03-20"))
	assert.False(t, ok)
}

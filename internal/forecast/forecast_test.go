package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promise4039/gagebu/internal/dates"
	"github.com/promise4039/gagebu/internal/model"
)

func date(s string) time.Time {
	d, ok := dates.Parse(s)
	if !ok {
		panic("bad fixture date " + s)
	}
	return d
}

// day13Version pays on the 13th (previous business day on weekends) for the
// whole previous calendar month.
func day13Version(id, cardID, validFrom string) model.CardVersion {
	return model.CardVersion{
		ID:            id,
		CardID:        cardID,
		ValidFrom:     date(validFrom),
		PaymentDay:    dates.DayOf(13),
		Clamp:         true,
		WeekendAdjust: dates.AdjustPrevious,
		CycleStart:    model.CycleAnchor{MonthOffset: -1, Day: dates.DayOf(1)},
		CycleEnd:      model.CycleAnchor{MonthOffset: -1, Day: dates.EndOfMonth()},
	}
}

func creditCard(id, name string) model.Card {
	return model.Card{ID: id, Name: name, Type: model.CardTypeCredit, Active: true}
}

func TestNextPaymentDates(t *testing.T) {
	versions := []model.CardVersion{day13Version("v1", "c1", "2020-01-01")}

	got := NextPaymentDates(versions, "c1", 3, date("2024-03-01"))
	require.Len(t, got, 3)
	assert.Equal(t, "2024-03-13", dates.Format(got[0]))
	assert.Equal(t, "2024-04-12", dates.Format(got[1]), "april 13 is a saturday")
	assert.Equal(t, "2024-05-13", dates.Format(got[2]))
}

func TestNextPaymentDatesSkipsPassedDate(t *testing.T) {
	versions := []model.CardVersion{day13Version("v1", "c1", "2020-01-01")}

	// March 13 already passed, so the scan starts collecting in April.
	got := NextPaymentDates(versions, "c1", 1, date("2024-03-14"))
	require.Len(t, got, 1)
	assert.Equal(t, "2024-04-12", dates.Format(got[0]))
}

func TestNextPaymentDatesNoVersions(t *testing.T) {
	assert.Nil(t, NextPaymentDates(nil, "c1", 6, date("2024-03-01")))
}

func TestForecastByCard(t *testing.T) {
	cards := []model.Card{
		creditCard("c1", "Blue Card"),
		{ID: "c2", Name: "No Rules Card", Type: model.CardTypeCredit, Active: true},
		{ID: "c3", Name: "Inactive", Type: model.CardTypeCredit, Active: false},
		{ID: "d1", Name: "Checking", Type: model.CardTypeDebit, Active: true},
	}
	versions := []model.CardVersion{day13Version("v1", "c1", "2020-01-01")}
	txs := []model.Tx{
		{ID: "t1", Date: date("2024-02-10"), CardID: "c1", Amount: 30000, Installments: 3, FeeMode: model.FeeFree},
		{ID: "t2", Date: date("2024-02-20"), CardID: "c1", Amount: 5000, Installments: 1, FeeMode: model.FeeFree},
	}

	rows := ForecastByCard(cards, versions, txs, date("2024-03-01"), 3)
	require.Len(t, rows, 3, "only the card with rules contributes rows")

	assert.Equal(t, "2024-03-13", dates.Format(rows[0].PaymentDate))
	assert.Equal(t, int64(15000), rows[0].Expected, "first installment plus the one-shot")
	assert.Equal(t, int64(10000), rows[1].Expected)
	assert.Equal(t, int64(10000), rows[2].Expected)
	for _, r := range rows {
		assert.Equal(t, "c1", r.CardID)
	}
}

func TestSuggestedAdjustmentDate(t *testing.T) {
	versions := []model.CardVersion{day13Version("v1", "c1", "2020-01-01")}

	got, ok := SuggestedAdjustmentDate(versions, "c1", "2024-03-13")
	require.True(t, ok)
	assert.Equal(t, "2024-02-29", got)
}

func TestSuggestedAdjustmentDateMatchesForecast(t *testing.T) {
	// For every payment date the engine itself forecasts, the suggested
	// adjustment date is exactly that payment's own cycle end.
	versions := []model.CardVersion{day13Version("v1", "c1", "2020-01-01")}

	for _, pd := range NextPaymentDates(versions, "c1", 12, date("2024-01-01")) {
		got, ok := SuggestedAdjustmentDate(versions, "c1", dates.Format(pd))
		require.True(t, ok, "date %s", dates.Format(pd))

		// The cycle ends on the last day of the month before payment.
		pm := dates.Of(pd)
		prev := pm.Add(-1)
		want := dates.Format(dates.Date(prev.Year, prev.Month, dates.MonthEndDay(prev.Year, prev.Month)))
		assert.Equal(t, want, got, "payment %s", dates.Format(pd))
	}
}

func TestSuggestedAdjustmentDateDegrades(t *testing.T) {
	versions := []model.CardVersion{day13Version("v1", "c1", "2020-01-01")}

	_, ok := SuggestedAdjustmentDate(versions, "c1", "not-a-date")
	assert.False(t, ok, "unparseable date")

	_, ok = SuggestedAdjustmentDate(versions, "unknown", "2024-03-13")
	assert.False(t, ok, "card with no versions")
}

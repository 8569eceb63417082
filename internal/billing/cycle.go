package billing

import (
	"time"

	"github.com/promise4039/gagebu/internal/dates"
	"github.com/promise4039/gagebu/internal/model"
)

// anchorDay is the day of month at which a candidate month's rule version is
// resolved. Mid-month sidesteps ambiguity when a version boundary sits near a
// month edge; a ValidFrom between the 1st and the 15th can still select a
// different version than the true billing date would, and that behavior is
// kept as-is.
const anchorDay = 15

// MonthAnchor returns the mid-month reference date used to resolve the rule
// version applicable to a candidate payment month.
func MonthAnchor(ym dates.YearMonth) time.Time {
	return dates.Date(ym.Year, ym.Month, anchorDay)
}

// PaymentDateForMonth computes the concrete payment date a version produces
// in the given month: the payment day resolved against that month (honoring
// the clamp flag), then shifted off weekends per the version's adjustment
// mode.
func PaymentDateForMonth(v model.CardVersion, ym dates.YearMonth) time.Time {
	day := dates.ResolveDay(ym.Year, ym.Month, v.PaymentDay, v.Clamp)
	if end := dates.MonthEndDay(ym.Year, ym.Month); day > end {
		// Unclamped overflow day: fall back to month end rather than
		// construct an invalid date.
		day = end
	}
	return dates.AdjustForWeekend(dates.Date(ym.Year, ym.Month, day), v.WeekendAdjust)
}

// CycleRangeForPayment computes the billing-cycle date range behind a payment
// date. Each endpoint's month offset is relative to the payment month, and
// each endpoint's day is resolved independently against its own offset month
// through the same clamp logic as the payment day.
func CycleRangeForPayment(v model.CardVersion, paymentDate time.Time) (start, end time.Time) {
	pm := dates.Of(paymentDate)
	start = resolveAnchor(v.CycleStart, pm, v.Clamp)
	end = resolveAnchor(v.CycleEnd, pm, v.Clamp)
	return start, end
}

func resolveAnchor(a model.CycleAnchor, paymentMonth dates.YearMonth, clamp bool) time.Time {
	ym := paymentMonth.Add(a.MonthOffset)
	day := dates.ResolveDay(ym.Year, ym.Month, a.Day, clamp)
	if end := dates.MonthEndDay(ym.Year, ym.Month); day > end {
		// Unclamped overflow day: fall back to month end rather than
		// construct an invalid date.
		day = end
	}
	return dates.Date(ym.Year, ym.Month, day)
}

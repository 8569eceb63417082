package model

import (
	"fmt"
	"time"

	"github.com/promise4039/gagebu/internal/dates"
)

// CycleAnchor places one endpoint of a billing cycle: a month offset relative
// to the payment month plus a day selector resolved against that month.
type CycleAnchor struct {
	MonthOffset int
	Day         dates.DaySpec
}

// CardVersion is one effective-dated billing rule set for one card. A card
// accumulates versions over time; for any reference date the version with the
// latest ValidFrom at or before that date applies, falling back to the
// earliest version when none qualify.
type CardVersion struct {
	ID            string
	CardID        string
	ValidFrom     time.Time
	PaymentDay    dates.DaySpec
	Clamp         bool
	WeekendAdjust dates.WeekendAdjust
	CycleStart    CycleAnchor
	CycleEnd      CycleAnchor
}

// Validate checks the version for storage.
func (v CardVersion) Validate() error {
	if v.ID == "" {
		return fmt.Errorf("card version id is required")
	}
	if v.CardID == "" {
		return fmt.Errorf("card version card id is required")
	}
	if v.ValidFrom.IsZero() {
		return fmt.Errorf("card version valid-from date is required")
	}
	if err := validateDaySpec(v.PaymentDay, "payment day"); err != nil {
		return err
	}
	if err := validateDaySpec(v.CycleStart.Day, "cycle start day"); err != nil {
		return err
	}
	if err := validateDaySpec(v.CycleEnd.Day, "cycle end day"); err != nil {
		return err
	}
	switch v.WeekendAdjust {
	case dates.AdjustNone, dates.AdjustNext, dates.AdjustPrevious:
		return nil
	default:
		return fmt.Errorf("unknown weekend adjustment %q", v.WeekendAdjust)
	}
}

func validateDaySpec(spec dates.DaySpec, what string) error {
	if spec.EndOfMonth {
		return nil
	}
	if spec.Day < 1 || spec.Day > 31 {
		return fmt.Errorf("%s must be 1-31 or end-of-month, got %d", what, spec.Day)
	}
	return nil
}

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/promise4039/gagebu/internal/billing"
	"github.com/promise4039/gagebu/internal/cli"
	"github.com/promise4039/gagebu/internal/dates"
)

func cardsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cards",
		Short: "List cards and their active billing rule",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			snap, err := store.Snapshot(ctx)
			if err != nil {
				return err
			}
			if len(snap.Cards) == 0 {
				fmt.Println("No cards. Load some with `gagebu seed`.")
				return nil
			}

			byCard := billing.VersionsByCard(snap.Versions)
			now := time.Now().UTC()

			rows := make([][]string, 0, len(snap.Cards))
			for _, c := range snap.Cards {
				rule := "-"
				if v, ok := billing.ResolveVersion(byCard[c.ID], now); ok {
					rule = describeRule(v.PaymentDay, string(v.WeekendAdjust))
				}
				active := "no"
				if c.Active {
					active = "yes"
				}
				rows = append(rows, []string{c.ID, c.Name, string(c.Type), active, rule})
			}
			fmt.Print(cli.RenderTable(
				[]string{"ID", "Name", "Type", "Active", "Pays"}, rows))
			return nil
		},
	}
}

func describeRule(day dates.DaySpec, adjust string) string {
	var when string
	if day.EndOfMonth {
		when = "month end"
	} else {
		when = fmt.Sprintf("day %d", day.Day)
	}
	if adjust != string(dates.AdjustNone) {
		when += " (" + adjust + " business day on weekends)"
	}
	return when
}

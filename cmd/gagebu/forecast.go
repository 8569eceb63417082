package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/promise4039/gagebu/internal/cli"
	"github.com/promise4039/gagebu/internal/dates"
	"github.com/promise4039/gagebu/internal/forecast"
)

func forecastCmd() *cobra.Command {
	var (
		months int
		asOf   string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Project upcoming charges per card",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			now, err := resolveAsOf(asOf)
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			snap, err := store.Snapshot(ctx)
			if err != nil {
				return err
			}

			rows := forecast.ForecastByCard(snap.Cards, snap.Versions, snap.Txs, now, months)

			if asJSON {
				type rowJSON struct {
					CardID      string `json:"cardId"`
					CardName    string `json:"cardName"`
					PaymentDate string `json:"paymentDate"`
					Expected    int64  `json:"expected"`
				}
				out := make([]rowJSON, 0, len(rows))
				for _, r := range rows {
					out = append(out, rowJSON{
						CardID:      r.CardID,
						CardName:    r.CardName,
						PaymentDate: dates.Format(r.PaymentDate),
						Expected:    r.Expected,
					})
				}
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}

			if len(rows) == 0 {
				fmt.Println("No upcoming payments.")
				return nil
			}

			fmt.Println(cli.TitleStyle.Render("Upcoming payments"))
			table := make([][]string, 0, len(rows))
			for _, r := range rows {
				table = append(table, []string{
					dates.Format(r.PaymentDate),
					r.CardName,
					strconv.FormatInt(r.Expected, 10),
				})
			}
			fmt.Print(cli.RenderTable([]string{"Payment", "Card", "Expected"}, table))
			return nil
		},
	}

	cmd.Flags().IntVar(&months, "months", 6, "payment dates to project per card")
	cmd.Flags().StringVar(&asOf, "as-of", "", "project from this date (YYYY-MM-DD, default today)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit JSON instead of a table")

	return cmd
}

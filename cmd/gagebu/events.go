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
	"github.com/promise4039/gagebu/internal/model"
)

func eventsCmd() *cobra.Command {
	var (
		pastMonths   int
		futureMonths int
		asOf         string
		asJSON       bool
	)

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Show payment events and reconcile against entered statements",
		Long: `Compute expected charges per card and payment date over a rolling
window, joined with any actual statement amounts you have entered.`,
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

			events := forecast.PaymentEvents(snap, now, pastMonths, futureMonths)
			if asJSON {
				return writeEventsJSON(events)
			}
			printEvents(events)
			return nil
		},
	}

	cmd.Flags().IntVar(&pastMonths, "past", 2, "months before the current month to include")
	cmd.Flags().IntVar(&futureMonths, "future", 2, "months after the current month to include")
	cmd.Flags().StringVar(&asOf, "as-of", "", "compute as of this date (YYYY-MM-DD, default today)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit JSON instead of a table")

	return cmd
}

// eventJSON is the wire shape of one payment event: dates as YYYY-MM-DD
// strings, amounts as integers, missing actuals as null.
type eventJSON struct {
	CardID      string            `json:"cardId"`
	CardName    string            `json:"cardName"`
	PaymentDate string            `json:"paymentDate"`
	CycleStart  string            `json:"cycleStart"`
	CycleEnd    string            `json:"cycleEnd"`
	Expected    int64             `json:"expected"`
	Actual      *int64            `json:"actual"`
	Diff        *int64            `json:"diff"`
	Memo        string            `json:"memo,omitempty"`
	Installment []installmentJSON `json:"installments,omitempty"`
}

type installmentJSON struct {
	TxID        string `json:"txId"`
	Memo        string `json:"memo,omitempty"`
	Category    string `json:"category,omitempty"`
	Count       int    `json:"count"`
	Total       int64  `json:"total"`
	PaidThrough int64  `json:"paidThrough"`
	Remaining   int64  `json:"remaining"`
	DueNow      int64  `json:"dueNow"`
}

func writeEventsJSON(events []model.PaymentEvent) error {
	out := make([]eventJSON, 0, len(events))
	for _, ev := range events {
		row := eventJSON{
			CardID:      ev.CardID,
			CardName:    ev.CardName,
			PaymentDate: dates.Format(ev.PaymentDate),
			CycleStart:  dates.Format(ev.CycleStart),
			CycleEnd:    dates.Format(ev.CycleEnd),
			Expected:    ev.Expected,
			Actual:      ev.Actual,
			Diff:        ev.Diff,
			Memo:        ev.Memo,
		}
		for _, st := range ev.Installments {
			row.Installment = append(row.Installment, installmentJSON{
				TxID:        st.TxID,
				Memo:        st.Memo,
				Category:    st.Category,
				Count:       st.Count,
				Total:       st.Total,
				PaidThrough: st.PaidThrough,
				Remaining:   st.Remaining,
				DueNow:      st.DueNow,
			})
		}
		out = append(out, row)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func printEvents(events []model.PaymentEvent) {
	if len(events) == 0 {
		fmt.Println("No payment events in the selected window.")
		return
	}

	fmt.Println(cli.TitleStyle.Render("Payment events"))

	rows := make([][]string, 0, len(events))
	for _, ev := range events {
		actual, diff := "-", "-"
		if ev.Actual != nil {
			actual = strconv.FormatInt(*ev.Actual, 10)
		}
		if ev.Diff != nil {
			if *ev.Diff == 0 {
				diff = cli.MatchStyle.Render("0")
			} else {
				diff = cli.DiffStyle.Render(strconv.FormatInt(*ev.Diff, 10))
			}
		}
		cycle := cli.SubtleStyle.Render(
			dates.Format(ev.CycleStart) + " ~ " + dates.Format(ev.CycleEnd))
		rows = append(rows, []string{
			dates.Format(ev.PaymentDate),
			ev.CardName,
			cycle,
			strconv.FormatInt(ev.Expected, 10),
			actual,
			diff,
		})
	}
	fmt.Print(cli.RenderTable(
		[]string{"Payment", "Card", "Cycle", "Expected", "Actual", "Diff"}, rows))

	for _, ev := range events {
		for _, st := range ev.Installments {
			fmt.Printf("  %s %s: %d/%d paid through %s, %d due, %d remaining\n",
				dates.Format(ev.PaymentDate), label(st),
				st.PaidThrough, st.Total, dates.Format(ev.PaymentDate),
				st.DueNow, st.Remaining)
		}
	}
}

func label(st model.InstallmentStat) string {
	if st.Memo != "" {
		return st.Memo
	}
	return st.TxID
}

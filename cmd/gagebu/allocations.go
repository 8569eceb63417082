package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/promise4039/gagebu/internal/billing"
	"github.com/promise4039/gagebu/internal/cli"
	"github.com/promise4039/gagebu/internal/dates"
	"github.com/promise4039/gagebu/internal/model"
)

func allocationsCmd() *cobra.Command {
	var (
		cardID string
		txID   string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "allocations",
		Short: "Show the raw principal/fee split per installment",
		Long: `Derive every allocation, one row per transaction and installment
assigned to its payment date, optionally filtered by card or transaction.`,
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

			allocs := billing.BuildAllocations(snap.Cards, snap.Versions, snap.Txs)
			allocs = filterAllocations(allocs, cardID, txID)

			if asJSON {
				type allocJSON struct {
					TxID        string `json:"txId"`
					CardID      string `json:"cardId"`
					PaymentDate string `json:"paymentDate"`
					Index       int    `json:"index"`
					Principal   int64  `json:"principal"`
					Fee         int64  `json:"fee"`
				}
				out := make([]allocJSON, 0, len(allocs))
				for _, a := range allocs {
					out = append(out, allocJSON{
						TxID:        a.TxID,
						CardID:      a.CardID,
						PaymentDate: dates.Format(a.PaymentDate),
						Index:       a.Index,
						Principal:   a.Principal,
						Fee:         a.Fee,
					})
				}
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}

			if len(allocs) == 0 {
				fmt.Println("No allocations.")
				return nil
			}

			rows := make([][]string, 0, len(allocs))
			for _, a := range allocs {
				rows = append(rows, []string{
					a.TxID,
					strconv.Itoa(a.Index + 1),
					a.CardID,
					dates.Format(a.PaymentDate),
					strconv.FormatInt(a.Principal, 10),
					strconv.FormatInt(a.Fee, 10),
				})
			}
			fmt.Print(cli.RenderTable(
				[]string{"Tx", "#", "Card", "Payment", "Principal", "Fee"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&cardID, "card", "", "only allocations for this card id")
	cmd.Flags().StringVar(&txID, "tx", "", "only allocations for this transaction id")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit JSON instead of a table")

	return cmd
}

func filterAllocations(allocs []model.Allocation, cardID, txID string) []model.Allocation {
	if cardID == "" && txID == "" {
		return allocs
	}
	var out []model.Allocation
	for _, a := range allocs {
		if cardID != "" && a.CardID != cardID {
			continue
		}
		if txID != "" && a.TxID != txID {
			continue
		}
		out = append(out, a)
	}
	return out
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/promise4039/gagebu/internal/common"
	"github.com/promise4039/gagebu/internal/forecast"
)

func adjustDateCmd() *cobra.Command {
	var (
		cardID      string
		paymentDate string
	)

	cmd := &cobra.Command{
		Use:   "adjust-date",
		Short: "Suggest a posting date for a manual reconciliation adjustment",
		Long: `Print the cycle-end date behind a payment date, the recommended
posting date for a manual correction (an annual fee, interest, a billing
error) so the adjustment lands inside the same cycle on recomputation.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			versions, err := store.GetCardVersions(ctx)
			if err != nil {
				return err
			}

			suggested, ok := forecast.SuggestedAdjustmentDate(versions, cardID, paymentDate)
			if !ok {
				return common.NewUserError(
					fmt.Sprintf("no billing cycle for card %s at %s", cardID, paymentDate), nil)
			}
			fmt.Println(suggested)
			return nil
		},
	}

	cmd.Flags().StringVar(&cardID, "card", "", "card id")
	cmd.Flags().StringVar(&paymentDate, "date", "", "payment date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("card")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

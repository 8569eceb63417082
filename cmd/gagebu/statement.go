package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/promise4039/gagebu/internal/common"
	"github.com/promise4039/gagebu/internal/dates"
	"github.com/promise4039/gagebu/internal/model"
)

func statementCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "statement",
		Short: "Enter or remove actual billed amounts",
	}

	cmd.AddCommand(statementSetCmd())
	cmd.AddCommand(statementRmCmd())

	return cmd
}

func statementSetCmd() *cobra.Command {
	var (
		cardID      string
		paymentDate string
		actual      int64
		memo        string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Record the actual amount billed for one payment",
		Long: `Record what the card issuer actually billed for one payment date.
The events view diffs this against the computed expected amount. Setting
an amount for the same card and date again replaces the previous entry.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			pd, ok := dates.Parse(paymentDate)
			if !ok {
				return common.NewUserError(
					fmt.Sprintf("invalid --date %q (expected YYYY-MM-DD)", paymentDate),
					common.ErrInvalidDate)
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			// Fail early on a typoed card id rather than storing an
			// orphan statement.
			if _, err := store.GetCardByID(ctx, cardID); err != nil {
				return common.NewUserError(fmt.Sprintf("card %s", cardID), common.ErrUnknownCard)
			}

			st := model.Statement{
				ID:          uuid.NewString(),
				CardID:      cardID,
				PaymentDate: pd,
				Actual:      actual,
				Memo:        memo,
			}
			if err := store.UpsertStatement(ctx, st); err != nil {
				return err
			}
			fmt.Printf("Recorded %d for %s on %s\n", actual, cardID, paymentDate)
			return nil
		},
	}

	cmd.Flags().StringVar(&cardID, "card", "", "card id")
	cmd.Flags().StringVar(&paymentDate, "date", "", "payment date (YYYY-MM-DD)")
	cmd.Flags().Int64Var(&actual, "actual", 0, "actual billed amount")
	cmd.Flags().StringVar(&memo, "memo", "", "optional note")
	_ = cmd.MarkFlagRequired("card")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("actual")

	return cmd
}

func statementRmCmd() *cobra.Command {
	var (
		cardID      string
		paymentDate string
	)

	cmd := &cobra.Command{
		Use:   "rm",
		Short: "Remove the recorded actual for one payment",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if _, ok := dates.Parse(paymentDate); !ok {
				return common.NewUserError(
					fmt.Sprintf("invalid --date %q (expected YYYY-MM-DD)", paymentDate),
					common.ErrInvalidDate)
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteStatement(ctx, cardID, paymentDate); err != nil {
				return err
			}
			fmt.Printf("Removed statement for %s on %s\n", cardID, paymentDate)
			return nil
		},
	}

	cmd.Flags().StringVar(&cardID, "card", "", "card id")
	cmd.Flags().StringVar(&paymentDate, "date", "", "payment date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("card")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

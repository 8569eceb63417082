package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/promise4039/gagebu/internal/common"
	"github.com/promise4039/gagebu/internal/dates"
	"github.com/promise4039/gagebu/internal/model"
)

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file.json>",
		Short: "Load cards, rules, transactions and statements from a JSON file",
		Long: `Load input records from a plain JSON snapshot file into the local
database. Records without an id get one generated. Existing records with
the same id are replaced wholesale.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			f, err := os.Open(args[0])
			if err != nil {
				return common.NewUserError(fmt.Sprintf("cannot open %s", args[0]), err)
			}
			defer func() { _ = f.Close() }()

			var file seedFile
			dec := json.NewDecoder(f)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&file); err != nil {
				return common.NewUserError("malformed seed file", err)
			}

			snap, err := file.toSnapshot()
			if err != nil {
				return common.NewUserError("invalid seed file", err)
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if len(snap.Cards) > 0 {
				if err := store.SaveCards(ctx, snap.Cards); err != nil {
					return err
				}
			}
			if len(snap.Versions) > 0 {
				if err := store.SaveCardVersions(ctx, snap.Versions); err != nil {
					return err
				}
			}

			// Transactions dominate seed files; show progress per batch.
			if len(snap.Txs) > 0 {
				bar := progressbar.Default(int64(len(snap.Txs)), "transactions")
				const batchSize = 200
				for i := 0; i < len(snap.Txs); i += batchSize {
					end := i + batchSize
					if end > len(snap.Txs) {
						end = len(snap.Txs)
					}
					if err := store.SaveTransactions(ctx, snap.Txs[i:end]); err != nil {
						return err
					}
					_ = bar.Add(end - i)
				}
				_ = bar.Finish()
			}

			for _, st := range snap.Statements {
				if err := store.UpsertStatement(ctx, st); err != nil {
					return err
				}
			}

			slog.Info("Seed complete",
				"cards", len(snap.Cards),
				"versions", len(snap.Versions),
				"transactions", len(snap.Txs),
				"statements", len(snap.Statements))
			return nil
		},
	}
}

// seedFile is the on-disk JSON shape: dates as YYYY-MM-DD strings, amounts as
// integers, day-of-month fields as a number or the string "eom".
type seedFile struct {
	Cards []struct {
		ID           string `json:"id"`
		Name         string `json:"name"`
		Type         string `json:"type"`
		Purpose      string `json:"purpose"`
		Balance      int64  `json:"balance"`
		Active       bool   `json:"active"`
		TrackBalance bool   `json:"trackBalance"`
	} `json:"cards"`
	Versions []struct {
		ID            string          `json:"id"`
		CardID        string          `json:"cardId"`
		ValidFrom     string          `json:"validFrom"`
		PaymentDay    daySpecJSON     `json:"paymentDay"`
		Clamp         bool            `json:"clamp"`
		WeekendAdjust string          `json:"weekendAdjust"`
		CycleStart    cycleAnchorJSON `json:"cycleStart"`
		CycleEnd      cycleAnchorJSON `json:"cycleEnd"`
	} `json:"versions"`
	Transactions []struct {
		ID           string  `json:"id"`
		Date         string  `json:"date"`
		CardID       string  `json:"cardId"`
		Category     string  `json:"category"`
		Memo         string  `json:"memo"`
		Amount       int64   `json:"amount"`
		Installments int     `json:"installments"`
		FeeMode      string  `json:"feeMode"`
		FeeRate      float64 `json:"feeRate"`
	} `json:"transactions"`
	Statements []struct {
		ID          string `json:"id"`
		CardID      string `json:"cardId"`
		PaymentDate string `json:"paymentDate"`
		Actual      int64  `json:"actual"`
		Memo        string `json:"memo"`
	} `json:"statements"`
}

// daySpecJSON accepts either a day number or the string "eom".
type daySpecJSON struct {
	spec dates.DaySpec
}

func (d *daySpecJSON) UnmarshalJSON(data []byte) error {
	var day int
	if err := json.Unmarshal(data, &day); err == nil {
		d.spec = dates.DayOf(day)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil || s != "eom" {
		return fmt.Errorf("day must be a number or \"eom\", got %s", data)
	}
	d.spec = dates.EndOfMonth()
	return nil
}

type cycleAnchorJSON struct {
	MonthOffset int         `json:"monthOffset"`
	Day         daySpecJSON `json:"day"`
}

func (f seedFile) toSnapshot() (model.Snapshot, error) {
	var snap model.Snapshot

	for _, c := range f.Cards {
		snap.Cards = append(snap.Cards, model.Card{
			ID:           orNewID(c.ID),
			Name:         c.Name,
			Type:         model.CardType(c.Type),
			Purpose:      c.Purpose,
			Balance:      c.Balance,
			Active:       c.Active,
			TrackBalance: c.TrackBalance,
		})
	}

	for _, v := range f.Versions {
		validFrom, ok := dates.Parse(v.ValidFrom)
		if !ok {
			return model.Snapshot{}, fmt.Errorf("version %s: bad validFrom %q", v.ID, v.ValidFrom)
		}
		snap.Versions = append(snap.Versions, model.CardVersion{
			ID:            orNewID(v.ID),
			CardID:        v.CardID,
			ValidFrom:     validFrom,
			PaymentDay:    v.PaymentDay.spec,
			Clamp:         v.Clamp,
			WeekendAdjust: dates.WeekendAdjust(v.WeekendAdjust),
			CycleStart:    model.CycleAnchor{MonthOffset: v.CycleStart.MonthOffset, Day: v.CycleStart.Day.spec},
			CycleEnd:      model.CycleAnchor{MonthOffset: v.CycleEnd.MonthOffset, Day: v.CycleEnd.Day.spec},
		})
	}

	for _, t := range f.Transactions {
		date, ok := dates.Parse(t.Date)
		if !ok {
			return model.Snapshot{}, fmt.Errorf("transaction %s: bad date %q", t.ID, t.Date)
		}
		feeMode := model.FeeMode(t.FeeMode)
		if feeMode == "" {
			feeMode = model.FeeFree
		}
		snap.Txs = append(snap.Txs, model.Tx{
			ID:           orNewID(t.ID),
			Date:         date,
			CardID:       t.CardID,
			Category:     t.Category,
			Memo:         t.Memo,
			Amount:       t.Amount,
			Installments: t.Installments,
			FeeMode:      feeMode,
			FeeRate:      t.FeeRate,
		})
	}

	for _, s := range f.Statements {
		pd, ok := dates.Parse(s.PaymentDate)
		if !ok {
			return model.Snapshot{}, fmt.Errorf("statement %s: bad paymentDate %q", s.ID, s.PaymentDate)
		}
		snap.Statements = append(snap.Statements, model.Statement{
			ID:          orNewID(s.ID),
			CardID:      s.CardID,
			PaymentDate: pd,
			Actual:      s.Actual,
			Memo:        s.Memo,
		})
	}

	return snap, nil
}

func orNewID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}

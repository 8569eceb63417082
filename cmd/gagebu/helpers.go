package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/promise4039/gagebu/internal/common"
	"github.com/promise4039/gagebu/internal/config"
	"github.com/promise4039/gagebu/internal/dates"
	"github.com/promise4039/gagebu/internal/service"
	"github.com/promise4039/gagebu/internal/storage"
)

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (service.Storage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDBPath
	}
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// resolveAsOf parses an --as-of flag value, defaulting to today (UTC).
func resolveAsOf(asOf string) (time.Time, error) {
	if asOf == "" {
		now := time.Now().UTC()
		return dates.Date(now.Year(), int(now.Month()), now.Day()), nil
	}
	d, ok := dates.Parse(asOf)
	if !ok {
		return time.Time{}, common.NewUserError(
			fmt.Sprintf("invalid --as-of date %q (expected YYYY-MM-DD)", asOf), common.ErrInvalidDate)
	}
	return d, nil
}

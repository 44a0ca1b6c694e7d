package main

import (
	"context"
	"fmt"

	"github.com/routewise/dispatch/internal/config"
	"github.com/routewise/dispatch/internal/service"
	"github.com/routewise/dispatch/internal/storage"
	"github.com/spf13/viper"
)

// initStorage opens the configured database and ensures the schema is
// current.
func initStorage(ctx context.Context) (service.Storage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath()
	}
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/routewise/dispatch/internal/cli"
	"github.com/routewise/dispatch/internal/model"
	"github.com/spf13/cobra"
)

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the demo roster",
		Long: `Populate the database with the demo drivers and customers that the
prompt console's sample phrases refer to. Safe to run repeatedly: entries
are matched by name and updated in place.`,
		RunE: runSeed,
	}
}

func runSeed(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	drivers := []model.Driver{
		{Name: "John Smith", Licenses: []string{"CDL-B"}, Active: true},
		{Name: "Maria", Licenses: []string{"CDL-B"}, Active: true},
		{Name: "Lee", Active: true},
	}
	for i := range drivers {
		drivers[i].ID = uuid.NewString()
		if err := store.SaveDriver(ctx, &drivers[i]); err != nil {
			return fmt.Errorf("failed to seed driver %s: %w", drivers[i].Name, err)
		}
	}

	customers := []model.Customer{
		{Name: "ACME Market", Location: "401 Main St"},
		{Name: "Fresh Foods", Location: "88 Harbor Rd"},
	}
	for i := range customers {
		customers[i].ID = uuid.NewString()
		if err := store.SaveCustomer(ctx, &customers[i]); err != nil {
			return fmt.Errorf("failed to seed customer %s: %w", customers[i].Name, err)
		}
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Seeded %d drivers and %d customers", len(drivers), len(customers))))
	return nil
}

package main

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/routewise/dispatch/internal/cli"
	"github.com/routewise/dispatch/internal/engine"
	"github.com/routewise/dispatch/internal/model"
	"github.com/spf13/cobra"
)

func driversCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drivers",
		Short: "Manage the driver roster",
	}

	cmd.AddCommand(driversListCmd())
	cmd.AddCommand(driversAddCmd())
	cmd.AddCommand(driversUnavailableCmd())

	return cmd
}

func driversListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the driver roster",
		RunE: func(cmd *cobra.Command, _ []string) error {
			activeOnly, _ := cmd.Flags().GetBool("active")
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			drivers, err := store.GetDrivers(ctx, activeOnly)
			if err != nil {
				return err
			}

			if len(drivers) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No drivers on the roster."))
				return nil
			}

			fmt.Println(cli.FormatTitle("Drivers"))
			for _, driver := range drivers {
				line := driver.Name
				if len(driver.Licenses) > 0 {
					line += cli.SubtleStyle.Render("  " + strings.Join(driver.Licenses, ", "))
				}
				if !driver.Active {
					line += cli.WarningStyle.Render("  inactive")
				}
				fmt.Println(line)
			}
			return nil
		},
	}

	cmd.Flags().Bool("active", false, "Only show active drivers")

	return cmd
}

func driversAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add or update a roster entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")
			phone, _ := cmd.Flags().GetString("phone")
			licenses, _ := cmd.Flags().GetStringSlice("license")
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			driver := &model.Driver{
				ID:       uuid.NewString(),
				Name:     args[0],
				Email:    email,
				Phone:    phone,
				Licenses: licenses,
				Active:   true,
			}
			if err := store.SaveDriver(ctx, driver); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess("Saved driver " + driver.Name))
			return nil
		},
	}

	cmd.Flags().String("email", "", "Driver email")
	cmd.Flags().String("phone", "", "Driver phone number")
	cmd.Flags().StringSlice("license", nil, "Licenses held, e.g. --license CDL-B")

	return cmd
}

func driversUnavailableCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unavailable <name>",
		Short: "Mark a driver unavailable and suggest coverage",
		Args:  cobra.ExactArgs(1),
		RunE:  runDriversUnavailable,
	}

	cmd.Flags().String("date", "", "Date the driver is out (YYYY-MM-DD)")
	cmd.Flags().String("slot", "", "Time slot, e.g. morning")
	cmd.Flags().String("route", "", "Affected route")
	cmd.Flags().String("reason", "", "Reason for the absence")

	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func runDriversUnavailable(cmd *cobra.Command, args []string) error {
	date, _ := cmd.Flags().GetString("date")
	slot, _ := cmd.Flags().GetString("slot")
	route, _ := cmd.Flags().GetString("route")
	reason, _ := cmd.Flags().GetString("reason")
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	record := &model.Unavailability{
		ID:            uuid.NewString(),
		Driver:        args[0],
		Date:          date,
		TimeSlot:      slot,
		AffectedRoute: route,
		Reason:        reason,
	}
	if err := store.SaveUnavailability(ctx, record); err != nil {
		return err
	}
	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Marked %s unavailable on %s", record.Driver, record.Date)))

	coverage, err := engine.New(store).SuggestCoverage(ctx, record.Date, record.Driver)
	if err != nil {
		return err
	}
	if len(coverage) == 0 {
		fmt.Println(cli.FormatWarning("No drivers available for coverage."))
		return nil
	}
	for _, name := range coverage {
		fmt.Println(cli.FormatInfo("Available for coverage: " + name))
	}
	return nil
}

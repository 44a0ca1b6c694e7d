package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/routewise/dispatch/internal/cli"
	"github.com/routewise/dispatch/internal/model"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import roster data from CSV files",
	}

	cmd.AddCommand(importDriversCmd())
	cmd.AddCommand(importCustomersCmd())

	return cmd
}

func importDriversCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "drivers <file.csv>",
		Short: "Import drivers from a CSV file",
		Long: `Import a driver roster from a CSV file with a header row:

  name,email,phone,licenses,active

Licenses are semicolon-separated. Existing drivers (matched by name) are
updated in place.`,
		Args: cobra.ExactArgs(1),
		RunE: runImportDrivers,
	}
}

func runImportDrivers(cmd *cobra.Command, args []string) error {
	records, err := readCSV(args[0])
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println(cli.FormatWarning("No rows to import."))
		return nil
	}

	ctx := cmd.Context()
	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	bar := progressbar.Default(int64(len(records)), "importing drivers")
	imported := 0
	for i, record := range records {
		if len(record) < 1 || strings.TrimSpace(record[0]) == "" {
			return fmt.Errorf("row %d: missing driver name", i+2)
		}

		driver := &model.Driver{
			ID:     uuid.NewString(),
			Name:   strings.TrimSpace(record[0]),
			Active: true,
		}
		if len(record) > 1 {
			driver.Email = strings.TrimSpace(record[1])
		}
		if len(record) > 2 {
			driver.Phone = strings.TrimSpace(record[2])
		}
		if len(record) > 3 && record[3] != "" {
			driver.Licenses = strings.Split(record[3], ";")
		}
		if len(record) > 4 {
			driver.Active = strings.EqualFold(strings.TrimSpace(record[4]), "true")
		}

		if err := store.SaveDriver(ctx, driver); err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
		imported++
		_ = bar.Add(1)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Imported %d drivers", imported)))
	return nil
}

func importCustomersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "customers <file.csv>",
		Short: "Import customers from a CSV file",
		Long: `Import customers from a CSV file with a header row:

  name,location

Existing customers (matched by name) are updated in place.`,
		Args: cobra.ExactArgs(1),
		RunE: runImportCustomers,
	}
}

func runImportCustomers(cmd *cobra.Command, args []string) error {
	records, err := readCSV(args[0])
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println(cli.FormatWarning("No rows to import."))
		return nil
	}

	ctx := cmd.Context()
	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	bar := progressbar.Default(int64(len(records)), "importing customers")
	for i, record := range records {
		if len(record) < 1 || strings.TrimSpace(record[0]) == "" {
			return fmt.Errorf("row %d: missing customer name", i+2)
		}

		customer := &model.Customer{
			ID:   uuid.NewString(),
			Name: strings.TrimSpace(record[0]),
		}
		if len(record) > 1 {
			customer.Location = strings.TrimSpace(record[1])
		}

		if err := store.SaveCustomer(ctx, customer); err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
		_ = bar.Add(1)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Imported %d customers", len(records))))
	return nil
}

// readCSV loads a CSV file and returns its data rows, skipping the header.
func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	// Header row.
	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	return records, nil
}

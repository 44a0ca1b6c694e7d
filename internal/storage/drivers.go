package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/routewise/dispatch/internal/model"
)

// SaveDriver inserts or updates a roster entry, keyed by name.
func (s *SQLiteStorage) SaveDriver(ctx context.Context, driver *model.Driver) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateDriver(driver); err != nil {
		return err
	}

	if driver.CreatedAt.IsZero() {
		driver.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO drivers (id, name, email, phone, licenses, active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			email = excluded.email,
			phone = excluded.phone,
			licenses = excluded.licenses,
			active = excluded.active`,
		driver.ID, driver.Name, driver.Email, driver.Phone,
		strings.Join(driver.Licenses, ","), driver.Active, driver.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save driver: %w", err)
	}
	return nil
}

// GetDriverByName returns the roster entry for a driver name, or nil when
// the driver is unknown.
func (s *SQLiteStorage) GetDriverByName(ctx context.Context, name string) (*model.Driver, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	var driver model.Driver
	var licenses string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, COALESCE(email, ''), COALESCE(phone, ''),
			COALESCE(licenses, ''), active, created_at
		FROM drivers WHERE name = ?`, name).Scan(
		&driver.ID, &driver.Name, &driver.Email, &driver.Phone,
		&licenses, &driver.Active, &driver.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query driver: %w", err)
	}
	driver.Licenses = splitLicenses(licenses)
	return &driver, nil
}

// GetDrivers returns the roster ordered by name.
func (s *SQLiteStorage) GetDrivers(ctx context.Context, activeOnly bool) ([]model.Driver, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, COALESCE(email, ''), COALESCE(phone, ''),
			COALESCE(licenses, ''), active, created_at
		FROM drivers`
	if activeOnly {
		query += ` WHERE active = 1`
	}
	query += ` ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query drivers: %w", err)
	}
	defer rows.Close()

	var drivers []model.Driver
	for rows.Next() {
		var driver model.Driver
		var licenses string
		if err := rows.Scan(
			&driver.ID, &driver.Name, &driver.Email, &driver.Phone,
			&licenses, &driver.Active, &driver.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan driver: %w", err)
		}
		driver.Licenses = splitLicenses(licenses)
		drivers = append(drivers, driver)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating drivers: %w", err)
	}
	return drivers, nil
}

// SaveCustomer inserts or updates a customer, keyed by name.
func (s *SQLiteStorage) SaveCustomer(ctx context.Context, customer *model.Customer) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if customer == nil {
		return fmt.Errorf("%w: customer", ErrNilParameter)
	}
	if err := validateString(customer.Name, "customer name"); err != nil {
		return err
	}

	if customer.CreatedAt.IsZero() {
		customer.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO customers (id, name, location, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET location = excluded.location`,
		customer.ID, customer.Name, customer.Location, customer.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save customer: %w", err)
	}
	return nil
}

// GetCustomers returns all customers ordered by name.
func (s *SQLiteStorage) GetCustomers(ctx context.Context) ([]model.Customer, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, COALESCE(location, ''), created_at
		FROM customers ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	var customers []model.Customer
	for rows.Next() {
		var customer model.Customer
		if err := rows.Scan(&customer.ID, &customer.Name, &customer.Location, &customer.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, customer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating customers: %w", err)
	}
	return customers, nil
}

// SaveUnavailability records that a driver cannot work a date.
func (s *SQLiteStorage) SaveUnavailability(ctx context.Context, record *model.Unavailability) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if record == nil {
		return fmt.Errorf("%w: record", ErrNilParameter)
	}
	if err := validateString(record.Driver, "driver"); err != nil {
		return err
	}
	if err := validateString(record.Date, "date"); err != nil {
		return err
	}

	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO unavailability (id, driver, date, time_slot, affected_route, reason, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		record.ID, record.Driver, record.Date, record.TimeSlot,
		record.AffectedRoute, record.Reason, record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save unavailability: %w", err)
	}
	return nil
}

// GetUnavailabilityOnDate returns unavailability records for a date.
func (s *SQLiteStorage) GetUnavailabilityOnDate(ctx context.Context, date string) ([]model.Unavailability, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(date, "date"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, driver, date, COALESCE(time_slot, ''),
			COALESCE(affected_route, ''), COALESCE(reason, ''), created_at
		FROM unavailability WHERE date = ? ORDER BY driver`, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query unavailability: %w", err)
	}
	defer rows.Close()

	var records []model.Unavailability
	for rows.Next() {
		var record model.Unavailability
		if err := rows.Scan(
			&record.ID, &record.Driver, &record.Date, &record.TimeSlot,
			&record.AffectedRoute, &record.Reason, &record.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan unavailability: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating unavailability: %w", err)
	}
	return records, nil
}

func splitLicenses(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

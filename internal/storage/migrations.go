package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application
// expects. If the database cannot be migrated to this version, it's a fatal
// error.
const ExpectedSchemaVersion = 3

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema: tickets, shifts, drivers, customers",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS tickets (
					id TEXT PRIMARY KEY,
					customer TEXT NOT NULL,
					category TEXT NOT NULL,
					priority TEXT NOT NULL DEFAULT 'Medium',
					status TEXT NOT NULL DEFAULT 'open',
					description TEXT,
					route TEXT,
					driver TEXT,
					vehicle TEXT,
					date_requested TEXT,
					expected_resolution_date TEXT,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_tickets_status ON tickets(status)`,
				`CREATE INDEX idx_tickets_customer ON tickets(customer)`,

				`CREATE TABLE IF NOT EXISTS shifts (
					id TEXT PRIMARY KEY,
					date TEXT NOT NULL,
					driver TEXT NOT NULL DEFAULT '',
					backup_driver TEXT,
					route TEXT NOT NULL,
					start_time TEXT,
					end_time TEXT,
					vehicle TEXT,
					license_required TEXT,
					recurrence_id TEXT,
					status TEXT NOT NULL DEFAULT 'scheduled',
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_shifts_date ON shifts(date)`,
				`CREATE INDEX idx_shifts_driver ON shifts(driver)`,

				`CREATE TABLE IF NOT EXISTS drivers (
					id TEXT PRIMARY KEY,
					name TEXT UNIQUE NOT NULL,
					email TEXT,
					phone TEXT,
					licenses TEXT,
					active INTEGER NOT NULL DEFAULT 1,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,

				`CREATE TABLE IF NOT EXISTS customers (
					id TEXT PRIMARY KEY,
					name TEXT UNIQUE NOT NULL,
					location TEXT,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Driver unavailability records",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS unavailability (
					id TEXT PRIMARY KEY,
					driver TEXT NOT NULL,
					date TEXT NOT NULL,
					time_slot TEXT,
					affected_route TEXT,
					reason TEXT,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_unavailability_date ON unavailability(date)`,
			}
			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     3,
		Description: "Payroll payouts and notifications",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS payout_requests (
					id TEXT PRIMARY KEY,
					driver TEXT NOT NULL,
					amount REAL NOT NULL,
					period_start TEXT,
					period_end TEXT,
					status TEXT NOT NULL DEFAULT 'pending',
					requested_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					approved_at DATETIME,
					approved_by TEXT
				)`,
				`CREATE INDEX idx_payout_requests_status ON payout_requests(status)`,

				`CREATE TABLE IF NOT EXISTS notifications (
					id TEXT PRIMARY KEY,
					recipient TEXT NOT NULL,
					kind TEXT NOT NULL,
					message TEXT NOT NULL,
					read INTEGER NOT NULL DEFAULT 0,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_notifications_recipient ON notifications(recipient)`,
			}
			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
}

// Migrate applies all pending migrations to bring the schema up to date.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_versions (
		version INTEGER PRIMARY KEY,
		description TEXT,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("failed to create schema_versions table: %w", err)
	}

	current, err := s.schemaVersion(ctx)
	if err != nil {
		return err
	}

	for _, migration := range migrations {
		if migration.Version <= current {
			continue
		}

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", migration.Version, err)
		}

		if err := migration.Up(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w", migration.Version, migration.Description, err)
		}

		if _, err := tx.Exec(
			`INSERT INTO schema_versions (version, description) VALUES (?, ?)`,
			migration.Version, migration.Description,
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}

		slog.Info("applied migration", "version", migration.Version, "description", migration.Description)
	}

	final, err := s.schemaVersion(ctx)
	if err != nil {
		return err
	}
	if final != ExpectedSchemaVersion {
		return fmt.Errorf("schema version %d does not match expected %d", final, ExpectedSchemaVersion)
	}

	return nil
}

func (s *SQLiteStorage) schemaVersion(ctx context.Context) (int, error) {
	var version sql.NullInt64
	err := s.db.QueryRowContext(ctx, `SELECT MAX(version) FROM schema_versions`).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	if !version.Valid {
		return 0, nil
	}
	return int(version.Int64), nil
}

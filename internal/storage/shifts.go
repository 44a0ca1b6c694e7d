package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/routewise/dispatch/internal/common"
	"github.com/routewise/dispatch/internal/model"
	"github.com/routewise/dispatch/internal/service"
)

// CreateShift persists a single shift.
func (s *SQLiteStorage) CreateShift(ctx context.Context, shift *model.Shift) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateShift(shift); err != nil {
		return err
	}

	now := time.Now()
	shift.CreatedAt = now
	shift.UpdatedAt = now
	if shift.Status == "" {
		shift.Status = defaultShiftStatus(shift)
	}

	_, err := s.db.ExecContext(ctx, shiftInsert, shiftInsertArgs(shift)...)
	if err != nil {
		return fmt.Errorf("failed to insert shift: %w", err)
	}

	slog.Debug("created shift", "id", shift.ID, "date", shift.Date, "route", shift.Route)
	return nil
}

// CreateShifts persists a batch of shifts atomically. Used when a recurrence
// rule expands to multiple dates: either every occurrence lands or none do.
func (s *SQLiteStorage) CreateShifts(ctx context.Context, shifts []*model.Shift) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if len(shifts) == 0 {
		return fmt.Errorf("%w: shifts", ErrEmptySlice)
	}
	for i, shift := range shifts {
		if err := validateShift(shift); err != nil {
			return fmt.Errorf("shift at index %d: %w", i, err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	now := time.Now()
	for _, shift := range shifts {
		shift.CreatedAt = now
		shift.UpdatedAt = now
		if shift.Status == "" {
			shift.Status = defaultShiftStatus(shift)
		}
		if _, err := tx.ExecContext(ctx, shiftInsert, shiftInsertArgs(shift)...); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to insert shift %s: %w", shift.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit shifts: %w", err)
	}

	slog.Debug("created shifts", "count", len(shifts))
	return nil
}

// GetShiftByID returns a single shift, or common.ErrNotFound.
func (s *SQLiteStorage) GetShiftByID(ctx context.Context, id string) (*model.Shift, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	var shift model.Shift
	err := s.db.QueryRowContext(ctx, shiftSelect+` WHERE id = ?`, id).Scan(shiftScanDest(&shift)...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("shift %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query shift: %w", err)
	}
	return &shift, nil
}

// GetShifts returns shifts matching the filter, ordered by date then start time.
func (s *SQLiteStorage) GetShifts(ctx context.Context, filter service.ShiftFilter) ([]model.Shift, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := shiftSelect + ` WHERE 1=1`
	var args []any
	if filter.StartDate != nil {
		query += ` AND date >= ?`
		args = append(args, filter.StartDate.Format("2006-01-02"))
	}
	if filter.EndDate != nil {
		query += ` AND date <= ?`
		args = append(args, filter.EndDate.Format("2006-01-02"))
	}
	if filter.Driver != "" {
		query += ` AND driver = ?`
		args = append(args, filter.Driver)
	}
	if filter.Route != "" {
		query += ` AND route = ?`
		args = append(args, filter.Route)
	}
	query += ` ORDER BY date, start_time`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	return s.queryShifts(ctx, query, args...)
}

// GetShiftsOnDate returns every shift scheduled for an ISO calendar date.
func (s *SQLiteStorage) GetShiftsOnDate(ctx context.Context, date string) ([]model.Shift, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(date, "date"); err != nil {
		return nil, err
	}
	return s.queryShifts(ctx, shiftSelect+` WHERE date = ? ORDER BY start_time`, date)
}

// UpdateShift replaces a shift's mutable fields.
func (s *SQLiteStorage) UpdateShift(ctx context.Context, shift *model.Shift) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateShift(shift); err != nil {
		return err
	}

	shift.UpdatedAt = time.Now()
	result, err := s.db.ExecContext(ctx, `
		UPDATE shifts
		SET date = ?, driver = ?, backup_driver = ?, route = ?, start_time = ?,
			end_time = ?, vehicle = ?, license_required = ?, status = ?, updated_at = ?
		WHERE id = ?`,
		shift.Date, shift.Driver, shift.BackupDriver, shift.Route, shift.StartTime,
		shift.EndTime, shift.Vehicle, shift.LicenseRequired, shift.Status,
		shift.UpdatedAt, shift.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update shift: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("shift %s: %w", shift.ID, common.ErrNotFound)
	}
	return nil
}

// DeleteShift removes a shift.
func (s *SQLiteStorage) DeleteShift(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM shifts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("shift %s: %w", id, common.ErrNotFound)
	}
	return nil
}

func (s *SQLiteStorage) queryShifts(ctx context.Context, query string, args ...any) ([]model.Shift, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts: %w", err)
	}
	defer rows.Close()

	var shifts []model.Shift
	for rows.Next() {
		var shift model.Shift
		if err := rows.Scan(shiftScanDest(&shift)...); err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, shift)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shifts: %w", err)
	}
	return shifts, nil
}

func defaultShiftStatus(shift *model.Shift) model.ShiftStatus {
	if shift.Driver == "" {
		return model.ShiftUnassigned
	}
	return model.ShiftScheduled
}

const shiftInsert = `
	INSERT INTO shifts (id, date, driver, backup_driver, route, start_time,
		end_time, vehicle, license_required, recurrence_id, status,
		created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

func shiftInsertArgs(s *model.Shift) []any {
	return []any{
		s.ID, s.Date, s.Driver, s.BackupDriver, s.Route, s.StartTime,
		s.EndTime, s.Vehicle, s.LicenseRequired, s.RecurrenceID, s.Status,
		s.CreatedAt, s.UpdatedAt,
	}
}

const shiftSelect = `
	SELECT id, date, driver, COALESCE(backup_driver, ''), route,
		COALESCE(start_time, ''), COALESCE(end_time, ''), COALESCE(vehicle, ''),
		COALESCE(license_required, ''), COALESCE(recurrence_id, ''), status,
		created_at, updated_at
	FROM shifts`

func shiftScanDest(s *model.Shift) []any {
	return []any{
		&s.ID, &s.Date, &s.Driver, &s.BackupDriver, &s.Route,
		&s.StartTime, &s.EndTime, &s.Vehicle,
		&s.LicenseRequired, &s.RecurrenceID, &s.Status,
		&s.CreatedAt, &s.UpdatedAt,
	}
}

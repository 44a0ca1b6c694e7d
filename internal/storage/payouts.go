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
)

// CreatePayoutRequest persists a new payroll payout request in pending state.
func (s *SQLiteStorage) CreatePayoutRequest(ctx context.Context, payout *model.PayoutRequest) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validatePayout(payout); err != nil {
		return err
	}

	if payout.RequestedAt.IsZero() {
		payout.RequestedAt = time.Now()
	}
	if payout.Status == "" {
		payout.Status = model.PayoutPending
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO payout_requests (id, driver, amount, period_start, period_end,
			status, requested_at, approved_at, approved_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		payout.ID, payout.Driver, payout.Amount, payout.PeriodStart, payout.PeriodEnd,
		payout.Status, payout.RequestedAt, payout.ApprovedAt, payout.ApprovedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payout request: %w", err)
	}

	slog.Debug("created payout request", "id", payout.ID, "driver", payout.Driver, "amount", payout.Amount)
	return nil
}

// GetPayoutRequests returns payout requests, optionally filtered by status,
// newest first.
func (s *SQLiteStorage) GetPayoutRequests(ctx context.Context, status model.PayoutStatus) ([]model.PayoutRequest, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, driver, amount, COALESCE(period_start, ''), COALESCE(period_end, ''),
			status, requested_at, approved_at, COALESCE(approved_by, '')
		FROM payout_requests`
	var args []any
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY requested_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query payout requests: %w", err)
	}
	defer rows.Close()

	var payouts []model.PayoutRequest
	for rows.Next() {
		var payout model.PayoutRequest
		var approvedAt sql.NullTime
		if err := rows.Scan(
			&payout.ID, &payout.Driver, &payout.Amount, &payout.PeriodStart,
			&payout.PeriodEnd, &payout.Status, &payout.RequestedAt,
			&approvedAt, &payout.ApprovedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payout request: %w", err)
		}
		if approvedAt.Valid {
			payout.ApprovedAt = &approvedAt.Time
		}
		payouts = append(payouts, payout)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payout requests: %w", err)
	}
	return payouts, nil
}

// ApprovePayoutRequest transitions a pending payout to approved and returns
// the updated record.
func (s *SQLiteStorage) ApprovePayoutRequest(ctx context.Context, id, approvedBy string) (*model.PayoutRequest, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	now := time.Now()
	result, err := s.db.ExecContext(ctx, `
		UPDATE payout_requests
		SET status = ?, approved_at = ?, approved_by = ?
		WHERE id = ? AND status = ?`,
		model.PayoutApproved, now, approvedBy, id, model.PayoutPending,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to approve payout request: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check approval result: %w", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("pending payout request %s: %w", id, common.ErrNotFound)
	}

	var payout model.PayoutRequest
	var approvedAt sql.NullTime
	err = s.db.QueryRowContext(ctx, `
		SELECT id, driver, amount, COALESCE(period_start, ''), COALESCE(period_end, ''),
			status, requested_at, approved_at, COALESCE(approved_by, '')
		FROM payout_requests WHERE id = ?`, id).Scan(
		&payout.ID, &payout.Driver, &payout.Amount, &payout.PeriodStart,
		&payout.PeriodEnd, &payout.Status, &payout.RequestedAt,
		&approvedAt, &payout.ApprovedBy,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("payout request %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to reload payout request: %w", err)
	}
	if approvedAt.Valid {
		payout.ApprovedAt = &approvedAt.Time
	}

	slog.Info("approved payout request", "id", id, "approved_by", approvedBy)
	return &payout, nil
}

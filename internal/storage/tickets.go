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

// CreateTicket persists a new customer service ticket.
func (s *SQLiteStorage) CreateTicket(ctx context.Context, ticket *model.Ticket) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTicket(ticket); err != nil {
		return err
	}

	now := time.Now()
	ticket.CreatedAt = now
	ticket.UpdatedAt = now
	if ticket.Status == "" {
		ticket.Status = model.TicketOpen
	}
	if ticket.Priority == "" {
		ticket.Priority = model.PriorityMedium
	}

	query := `
		INSERT INTO tickets (id, customer, category, priority, status, description,
			route, driver, vehicle, date_requested, expected_resolution_date,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		ticket.ID, ticket.Customer, ticket.Category, ticket.Priority, ticket.Status,
		ticket.Description, ticket.Route, ticket.Driver, ticket.Vehicle,
		ticket.DateRequested, ticket.ExpectedResolutionDate,
		ticket.CreatedAt, ticket.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert ticket: %w", err)
	}

	slog.Debug("created ticket", "id", ticket.ID, "customer", ticket.Customer)
	return nil
}

// GetTicketByID returns a single ticket, or common.ErrNotFound.
func (s *SQLiteStorage) GetTicketByID(ctx context.Context, id string) (*model.Ticket, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	query := ticketSelect + ` WHERE id = ?`

	var ticket model.Ticket
	err := s.db.QueryRowContext(ctx, query, id).Scan(ticketScanDest(&ticket)...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("ticket %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query ticket: %w", err)
	}
	return &ticket, nil
}

// GetTickets returns tickets matching the filter, newest first.
func (s *SQLiteStorage) GetTickets(ctx context.Context, filter service.TicketFilter) ([]model.Ticket, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := ticketSelect + ` WHERE 1=1`
	var args []any
	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, filter.Status)
	}
	if filter.Customer != "" {
		query += ` AND customer = ?`
		args = append(args, filter.Customer)
	}
	query += ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tickets: %w", err)
	}
	defer rows.Close()

	var tickets []model.Ticket
	for rows.Next() {
		var ticket model.Ticket
		if err := rows.Scan(ticketScanDest(&ticket)...); err != nil {
			return nil, fmt.Errorf("failed to scan ticket: %w", err)
		}
		tickets = append(tickets, ticket)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tickets: %w", err)
	}

	return tickets, nil
}

// UpdateTicketStatus transitions a ticket to a new status.
func (s *SQLiteStorage) UpdateTicketStatus(ctx context.Context, id string, status model.TicketStatus) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE tickets SET status = ?, updated_at = ? WHERE id = ?`,
		status, time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update ticket status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("ticket %s: %w", id, common.ErrNotFound)
	}

	slog.Debug("updated ticket status", "id", id, "status", status)
	return nil
}

const ticketSelect = `
	SELECT id, customer, category, priority, status,
		COALESCE(description, ''), COALESCE(route, ''), COALESCE(driver, ''),
		COALESCE(vehicle, ''), COALESCE(date_requested, ''),
		COALESCE(expected_resolution_date, ''), created_at, updated_at
	FROM tickets`

func ticketScanDest(t *model.Ticket) []any {
	return []any{
		&t.ID, &t.Customer, &t.Category, &t.Priority, &t.Status,
		&t.Description, &t.Route, &t.Driver, &t.Vehicle,
		&t.DateRequested, &t.ExpectedResolutionDate, &t.CreatedAt, &t.UpdatedAt,
	}
}

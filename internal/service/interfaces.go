// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/routewise/dispatch/internal/model"
)

// ShiftFilter defines filtering options for shift queries.
type ShiftFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Driver    string
	Route     string
	Limit     int
}

// TicketFilter defines filtering options for ticket queries.
type TicketFilter struct {
	Status   model.TicketStatus
	Customer string
	Limit    int
}

// Storage defines the contract for the persistence layer.
type Storage interface {
	// Ticket operations
	CreateTicket(ctx context.Context, ticket *model.Ticket) error
	GetTicketByID(ctx context.Context, id string) (*model.Ticket, error)
	GetTickets(ctx context.Context, filter TicketFilter) ([]model.Ticket, error)
	UpdateTicketStatus(ctx context.Context, id string, status model.TicketStatus) error

	// Shift operations
	CreateShift(ctx context.Context, shift *model.Shift) error
	CreateShifts(ctx context.Context, shifts []*model.Shift) error
	GetShiftByID(ctx context.Context, id string) (*model.Shift, error)
	GetShifts(ctx context.Context, filter ShiftFilter) ([]model.Shift, error)
	GetShiftsOnDate(ctx context.Context, date string) ([]model.Shift, error)
	UpdateShift(ctx context.Context, shift *model.Shift) error
	DeleteShift(ctx context.Context, id string) error

	// Driver roster operations
	SaveDriver(ctx context.Context, driver *model.Driver) error
	GetDriverByName(ctx context.Context, name string) (*model.Driver, error)
	GetDrivers(ctx context.Context, activeOnly bool) ([]model.Driver, error)

	// Customer operations
	SaveCustomer(ctx context.Context, customer *model.Customer) error
	GetCustomers(ctx context.Context) ([]model.Customer, error)

	// Unavailability operations
	SaveUnavailability(ctx context.Context, record *model.Unavailability) error
	GetUnavailabilityOnDate(ctx context.Context, date string) ([]model.Unavailability, error)

	// Payroll operations
	CreatePayoutRequest(ctx context.Context, payout *model.PayoutRequest) error
	GetPayoutRequests(ctx context.Context, status model.PayoutStatus) ([]model.PayoutRequest, error)
	ApprovePayoutRequest(ctx context.Context, id, approvedBy string) (*model.PayoutRequest, error)

	// Notification operations
	CreateNotification(ctx context.Context, notification *model.Notification) error
	GetNotifications(ctx context.Context, recipient string) ([]model.Notification, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

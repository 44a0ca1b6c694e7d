package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/routewise/dispatch/internal/model"
)

// Validation errors.
var (
	ErrNilContext    = errors.New("context cannot be nil")
	ErrEmptyString   = errors.New("string parameter cannot be empty")
	ErrNilParameter  = errors.New("parameter cannot be nil")
	ErrEmptySlice    = errors.New("slice cannot be empty")
	ErrInvalidTicket = errors.New("invalid ticket")
	ErrInvalidShift  = errors.New("invalid shift")
	ErrInvalidDriver = errors.New("invalid driver")
	ErrInvalidPayout = errors.New("invalid payout request")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateTicket validates a ticket before persisting.
func validateTicket(ticket *model.Ticket) error {
	if ticket == nil {
		return fmt.Errorf("%w: ticket", ErrNilParameter)
	}
	if ticket.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidTicket)
	}
	if ticket.Customer == "" && ticket.Description == "" {
		return fmt.Errorf("%w: needs a customer or a description", ErrInvalidTicket)
	}
	return nil
}

// validateShift validates a shift before persisting.
func validateShift(shift *model.Shift) error {
	if shift == nil {
		return fmt.Errorf("%w: shift", ErrNilParameter)
	}
	if shift.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidShift)
	}
	if shift.Date == "" {
		return fmt.Errorf("%w: missing date", ErrInvalidShift)
	}
	if shift.Route == "" {
		return fmt.Errorf("%w: missing route", ErrInvalidShift)
	}
	return nil
}

// validateDriver validates a driver before persisting.
func validateDriver(driver *model.Driver) error {
	if driver == nil {
		return fmt.Errorf("%w: driver", ErrNilParameter)
	}
	if driver.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidDriver)
	}
	if driver.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidDriver)
	}
	return nil
}

// validatePayout validates a payout request before persisting.
func validatePayout(payout *model.PayoutRequest) error {
	if payout == nil {
		return fmt.Errorf("%w: payout", ErrNilParameter)
	}
	if payout.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidPayout)
	}
	if payout.Driver == "" {
		return fmt.Errorf("%w: missing driver", ErrInvalidPayout)
	}
	if payout.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidPayout)
	}
	return nil
}

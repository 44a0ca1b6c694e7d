package model

import "time"

// TicketPriority is the urgency level of a customer service ticket.
type TicketPriority string

// Ticket priority constants.
const (
	PriorityLow      TicketPriority = "Low"
	PriorityMedium   TicketPriority = "Medium"
	PriorityHigh     TicketPriority = "High"
	PriorityCritical TicketPriority = "Critical"
)

// TicketStatus tracks a ticket through its lifecycle.
type TicketStatus string

// Ticket status constants.
const (
	TicketOpen       TicketStatus = "open"
	TicketInProgress TicketStatus = "in_progress"
	TicketResolved   TicketStatus = "resolved"
	TicketClosed     TicketStatus = "closed"
)

// Ticket represents a customer service request.
type Ticket struct {
	CreatedAt              time.Time      `json:"created_at"`
	UpdatedAt              time.Time      `json:"updated_at"`
	ID                     string         `json:"id"`
	Customer               string         `json:"customer"`
	Category               string         `json:"category"`
	Description            string         `json:"description,omitempty"`
	Route                  string         `json:"route,omitempty"`
	Driver                 string         `json:"driver,omitempty"`
	Vehicle                string         `json:"vehicle,omitempty"`
	DateRequested          string         `json:"date_requested,omitempty"`
	ExpectedResolutionDate string         `json:"expected_resolution_date,omitempty"`
	Priority               TicketPriority `json:"priority"`
	Status                 TicketStatus   `json:"status"`
}

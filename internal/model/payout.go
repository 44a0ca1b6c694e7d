package model

import "time"

// PayoutStatus tracks a payroll payout request.
type PayoutStatus string

// Payout status constants.
const (
	PayoutPending  PayoutStatus = "pending"
	PayoutApproved PayoutStatus = "approved"
	PayoutRejected PayoutStatus = "rejected"
)

// PayoutRequest represents a driver's request for a payroll payout.
type PayoutRequest struct {
	RequestedAt time.Time    `json:"requested_at"`
	ApprovedAt  *time.Time   `json:"approved_at,omitempty"`
	ID          string       `json:"id"`
	Driver      string       `json:"driver"`
	PeriodStart string       `json:"period_start"`
	PeriodEnd   string       `json:"period_end"`
	ApprovedBy  string       `json:"approved_by,omitempty"`
	Amount      float64      `json:"amount"`
	Status      PayoutStatus `json:"status"`
}

// Notification is a message delivered to a user about a dispatch event.
type Notification struct {
	CreatedAt time.Time `json:"created_at"`
	ID        string    `json:"id"`
	Recipient string    `json:"recipient"`
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
}

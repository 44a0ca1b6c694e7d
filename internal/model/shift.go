package model

import "time"

// ShiftStatus indicates whether a shift has an assigned driver.
type ShiftStatus string

// Shift status constants.
const (
	ShiftScheduled  ShiftStatus = "scheduled"
	ShiftUnassigned ShiftStatus = "unassigned"
	ShiftCompleted  ShiftStatus = "completed"
	ShiftCanceled   ShiftStatus = "canceled"
)

// Shift represents a single driver shift on a route. Date is an ISO-8601
// calendar date; StartTime and EndTime are display clock times ("6:00").
type Shift struct {
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
	ID              string      `json:"id"`
	Date            string      `json:"date"`
	Driver          string      `json:"driver"`
	BackupDriver    string      `json:"backup_driver,omitempty"`
	Route           string      `json:"route"`
	StartTime       string      `json:"start_time,omitempty"`
	EndTime         string      `json:"end_time,omitempty"`
	Vehicle         string      `json:"vehicle,omitempty"`
	LicenseRequired string      `json:"license_required,omitempty"`
	RecurrenceID    string      `json:"recurrence_id,omitempty"`
	Status          ShiftStatus `json:"status"`
}

// Unavailability records that a driver cannot work a date (or part of it).
type Unavailability struct {
	CreatedAt     time.Time `json:"created_at"`
	ID            string    `json:"id"`
	Driver        string    `json:"driver"`
	Date          string    `json:"date"`
	TimeSlot      string    `json:"time_slot,omitempty"`
	AffectedRoute string    `json:"affected_route,omitempty"`
	Reason        string    `json:"reason,omitempty"`
}

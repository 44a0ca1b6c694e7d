package model

import "time"

// Frequency is the base unit of a recurrence rule.
type Frequency string

// Frequency constants.
const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// EndType identifies how a recurrence terminates.
type EndType string

// End type constants.
const (
	EndNever            EndType = "never"
	EndAfterOccurrences EndType = "occurrences"
	EndOnDate           EndType = "date"
)

// RecurrenceEnd is a tagged union: exactly one variant applies at a time.
// Count is meaningful only when Type is EndAfterOccurrences; Date only when
// Type is EndOnDate.
type RecurrenceEnd struct {
	Date  time.Time `json:"date,omitempty"`
	Type  EndType   `json:"type"`
	Count int       `json:"count,omitempty"`
}

// RecurrenceRule describes a repeating shift schedule. WeeklyDays is
// meaningful only when Frequency is FrequencyWeekly.
type RecurrenceRule struct {
	Frequency  Frequency      `json:"frequency"`
	WeeklyDays []time.Weekday `json:"weekly_days,omitempty"`
	End        RecurrenceEnd  `json:"end"`
	Interval   int            `json:"interval"`
}

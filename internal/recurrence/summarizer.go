// Package recurrence renders and expands repeating-shift rules. Summarize
// produces the human-readable confirmation line shown under the shift form;
// Expand materializes the concrete dates a rule generates.
package recurrence

import (
	"fmt"
	"strings"
	"time"

	"github.com/routewise/dispatch/internal/model"
)

// endDateLayout matches the reference "MMM dd, yyyy" rendering.
const endDateLayout = "Jan 02, 2006"

// weekOrder is the fixed Mon..Sun calendar order used for rendering,
// regardless of the order days were toggled.
var weekOrder = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}

var dayAbbrev = map[time.Weekday]string{
	time.Monday:    "Mon",
	time.Tuesday:   "Tue",
	time.Wednesday: "Wed",
	time.Thursday:  "Thu",
	time.Friday:    "Fri",
	time.Saturday:  "Sat",
	time.Sunday:    "Sun",
}

// Summarize renders a recurrence rule as a single plain-text line, e.g.
// "Weekly on Mon, Wed for 5 occurrences". It is deterministic and total for
// well-formed rules; callers are responsible for constructing valid input.
func Summarize(rule model.RecurrenceRule) string {
	var b strings.Builder

	switch rule.Frequency {
	case model.FrequencyDaily:
		if rule.Interval == 1 {
			b.WriteString("Daily")
		} else {
			fmt.Fprintf(&b, "Every %d days", rule.Interval)
		}
	case model.FrequencyWeekly:
		if rule.Interval == 1 {
			b.WriteString("Weekly")
		} else {
			fmt.Fprintf(&b, "Every %d weeks", rule.Interval)
		}
		if days := dayList(rule.WeeklyDays); days != "" {
			b.WriteString(" on ")
			b.WriteString(days)
		}
	case model.FrequencyMonthly:
		if rule.Interval == 1 {
			b.WriteString("Monthly")
		} else {
			fmt.Fprintf(&b, "Every %d months", rule.Interval)
		}
	}

	switch rule.End.Type {
	case model.EndNever:
		b.WriteString(" (no end date)")
	case model.EndAfterOccurrences:
		fmt.Fprintf(&b, " for %d occurrences", rule.End.Count)
	case model.EndOnDate:
		b.WriteString(" until ")
		b.WriteString(rule.End.Date.Format(endDateLayout))
	}

	return b.String()
}

// dayList renders a weekday set as comma-joined abbreviations normalized to
// Mon..Sun order. Duplicates collapse; an empty set renders as "".
func dayList(days []time.Weekday) string {
	if len(days) == 0 {
		return ""
	}
	set := make(map[time.Weekday]bool, len(days))
	for _, d := range days {
		set[d] = true
	}
	parts := make([]string, 0, len(set))
	for _, d := range weekOrder {
		if set[d] {
			parts = append(parts, dayAbbrev[d])
		}
	}
	return strings.Join(parts, ", ")
}

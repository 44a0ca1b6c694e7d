package recurrence

import (
	"time"

	"github.com/routewise/dispatch/internal/model"
)

// DefaultMaxOccurrences bounds expansion of open-ended rules.
const DefaultMaxOccurrences = 52

// Expand materializes the occurrence dates of a rule, beginning at start.
// The first occurrence is start itself (or, for weekly rules with a day set,
// the first listed day on or after start). Expansion stops at the rule's end
// condition or after max occurrences, whichever comes first; max <= 0 applies
// DefaultMaxOccurrences.
func Expand(rule model.RecurrenceRule, start time.Time, max int) []time.Time {
	if max <= 0 || max > DefaultMaxOccurrences {
		max = DefaultMaxOccurrences
	}
	interval := rule.Interval
	if interval < 1 {
		interval = 1
	}
	if rule.End.Type == model.EndAfterOccurrences && rule.End.Count < max {
		max = rule.End.Count
	}

	start = truncateDay(start)
	var out []time.Time

	switch rule.Frequency {
	case model.FrequencyWeekly:
		out = expandWeekly(rule, start, interval, max)
	case model.FrequencyMonthly:
		for i := 0; len(out) < max; i++ {
			d := start.AddDate(0, i*interval, 0)
			if pastEnd(rule, d) {
				break
			}
			out = append(out, d)
		}
	default: // daily
		for i := 0; len(out) < max; i++ {
			d := start.AddDate(0, 0, i*interval)
			if pastEnd(rule, d) {
				break
			}
			out = append(out, d)
		}
	}

	return out
}

// expandWeekly walks whole weeks at the configured interval, emitting the
// listed weekdays within each active week. An empty day set falls back to
// the start date's weekday.
func expandWeekly(rule model.RecurrenceRule, start time.Time, interval, max int) []time.Time {
	days := normalizeDays(rule.WeeklyDays)
	if len(days) == 0 {
		days = []time.Weekday{start.Weekday()}
	}

	// Monday of the week containing start.
	weekStart := start.AddDate(0, 0, -mondayOffset(start.Weekday()))

	var out []time.Time
	for week := 0; len(out) < max; week++ {
		base := weekStart.AddDate(0, 0, week*7*interval)
		if rule.End.Type == model.EndOnDate && base.After(rule.End.Date) {
			break
		}
		for _, wd := range days {
			d := base.AddDate(0, 0, mondayOffset(wd))
			if d.Before(start) {
				continue
			}
			if pastEnd(rule, d) {
				return out
			}
			out = append(out, d)
			if len(out) == max {
				return out
			}
		}
	}
	return out
}

func pastEnd(rule model.RecurrenceRule, d time.Time) bool {
	return rule.End.Type == model.EndOnDate && d.After(rule.End.Date)
}

// normalizeDays dedupes a weekday set and orders it Mon..Sun.
func normalizeDays(days []time.Weekday) []time.Weekday {
	if len(days) == 0 {
		return nil
	}
	set := make(map[time.Weekday]bool, len(days))
	for _, d := range days {
		set[d] = true
	}
	out := make([]time.Weekday, 0, len(set))
	for _, d := range weekOrder {
		if set[d] {
			out = append(out, d)
		}
	}
	return out
}

// mondayOffset returns the day count from Monday to wd within a week.
func mondayOffset(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

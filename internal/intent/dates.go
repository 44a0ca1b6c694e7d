package intent

import "time"

// isoDateLayout is the ISO-8601 calendar date format used for all extracted
// date fields.
const isoDateLayout = "2006-01-02"

func isoDate(t time.Time) string {
	return t.Format(isoDateLayout)
}

// daysUntil returns how many days from now until the next occurrence of
// target, with a same-day match resolving to 0.
func daysUntil(now time.Time, target time.Weekday) int {
	return (int(target) - int(now.Weekday()) + 7) % 7
}

// nextWeekday returns the next occurrence of target on or after now: a
// same-day match resolves to today. The ticket-deadline path uses this
// variant.
func nextWeekday(now time.Time, target time.Weekday) time.Time {
	return now.AddDate(0, 0, daysUntil(now, target))
}

// nextWeekdayStrict returns the next occurrence of target strictly after
// now: a same-day match resolves to one week out. The shift-scheduling path
// uses this variant. The two paths intentionally disagree on same-day
// matches; callers depend on the asymmetry.
func nextWeekdayStrict(now time.Time, target time.Weekday) time.Time {
	days := daysUntil(now, target)
	if days == 0 {
		days = 7
	}
	return now.AddDate(0, 0, days)
}

package recurrence

import (
	"testing"
	"time"

	"github.com/routewise/dispatch/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestExpand_Daily(t *testing.T) {
	rule := model.RecurrenceRule{
		Frequency: model.FrequencyDaily,
		Interval:  1,
		End:       model.RecurrenceEnd{Type: model.EndAfterOccurrences, Count: 3},
	}
	got := Expand(rule, day(2025, time.March, 10), 0)
	assert.Equal(t, []time.Time{
		day(2025, time.March, 10),
		day(2025, time.March, 11),
		day(2025, time.March, 12),
	}, got)
}

func TestExpand_DailyInterval(t *testing.T) {
	rule := model.RecurrenceRule{
		Frequency: model.FrequencyDaily,
		Interval:  3,
		End: model.RecurrenceEnd{
			Type: model.EndOnDate,
			Date: day(2025, time.March, 17),
		},
	}
	got := Expand(rule, day(2025, time.March, 10), 0)
	assert.Equal(t, []time.Time{
		day(2025, time.March, 10),
		day(2025, time.March, 13),
		day(2025, time.March, 16),
	}, got)
}

func TestExpand_WeeklyWithDays(t *testing.T) {
	// Start on Tuesday March 11; Mon/Wed schedule begins Wednesday.
	rule := model.RecurrenceRule{
		Frequency:  model.FrequencyWeekly,
		Interval:   1,
		WeeklyDays: []time.Weekday{time.Wednesday, time.Monday},
		End:        model.RecurrenceEnd{Type: model.EndAfterOccurrences, Count: 4},
	}
	got := Expand(rule, day(2025, time.March, 11), 0)
	assert.Equal(t, []time.Time{
		day(2025, time.March, 12), // Wed
		day(2025, time.March, 17), // Mon
		day(2025, time.March, 19), // Wed
		day(2025, time.March, 24), // Mon
	}, got)
}

func TestExpand_BiweeklyEmptyDaySet(t *testing.T) {
	// With no day set, weekly expansion follows the start date's weekday.
	rule := model.RecurrenceRule{
		Frequency: model.FrequencyWeekly,
		Interval:  2,
		End:       model.RecurrenceEnd{Type: model.EndAfterOccurrences, Count: 3},
	}
	got := Expand(rule, day(2025, time.March, 11), 0)
	assert.Equal(t, []time.Time{
		day(2025, time.March, 11),
		day(2025, time.March, 25),
		day(2025, time.April, 8),
	}, got)
}

func TestExpand_Monthly(t *testing.T) {
	rule := model.RecurrenceRule{
		Frequency: model.FrequencyMonthly,
		Interval:  1,
		End: model.RecurrenceEnd{
			Type: model.EndOnDate,
			Date: day(2025, time.June, 1),
		},
	}
	got := Expand(rule, day(2025, time.March, 15), 0)
	assert.Equal(t, []time.Time{
		day(2025, time.March, 15),
		day(2025, time.April, 15),
		day(2025, time.May, 15),
	}, got)
}

func TestExpand_NeverEndsIsBounded(t *testing.T) {
	rule := model.RecurrenceRule{
		Frequency: model.FrequencyDaily,
		Interval:  1,
		End:       model.RecurrenceEnd{Type: model.EndNever},
	}
	got := Expand(rule, day(2025, time.March, 10), 0)
	require.Len(t, got, DefaultMaxOccurrences)

	got = Expand(rule, day(2025, time.March, 10), 5)
	assert.Len(t, got, 5)
}

package intent

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextWeekday(t *testing.T) {
	tests := []struct {
		name   string
		now    time.Time
		target time.Weekday
		want   string
	}{
		{
			name:   "later this week",
			now:    time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC), // Monday
			target: time.Friday,
			want:   "2025-03-14",
		},
		{
			name:   "wraps to next week",
			now:    time.Date(2025, time.March, 13, 0, 0, 0, 0, time.UTC), // Thursday
			target: time.Tuesday,
			want:   "2025-03-18",
		},
		{
			name:   "same day resolves to today",
			now:    time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC), // Friday
			target: time.Friday,
			want:   "2025-03-14",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isoDate(nextWeekday(tt.now, tt.target)))
		})
	}
}

func TestNextWeekdayStrict(t *testing.T) {
	friday := time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC)

	// Same day resolves to a week out, unlike nextWeekday.
	assert.Equal(t, "2025-03-21", isoDate(nextWeekdayStrict(friday, time.Friday)))

	// Otherwise identical to nextWeekday.
	assert.Equal(t, "2025-03-18", isoDate(nextWeekdayStrict(friday, time.Tuesday)))
}

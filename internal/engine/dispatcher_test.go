package engine

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/routewise/dispatch/internal/common"
	"github.com/routewise/dispatch/internal/model"
	"github.com/routewise/dispatch/internal/service"
	"github.com/routewise/dispatch/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Monday, March 10 2025. Matches the prompt-console walkthrough dates.
var testNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func setupDispatcher(t *testing.T) (*Dispatcher, *storage.SQLiteStorage) {
	t.Helper()

	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))
	t.Cleanup(func() {
		_ = store.Close()
	})

	return New(store).WithClock(func() time.Time { return testNow }), store
}

func TestExecute_CreateTicket(t *testing.T) {
	dispatcher, store := setupDispatcher(t)
	ctx := context.Background()

	detected := dispatcher.Analyze("Create a high priority ticket for ACME Market about a missed service today")
	require.NotNil(t, detected)
	require.Equal(t, model.ActionCreateTicket, detected.Action)

	result, err := dispatcher.Execute(ctx, detected)
	require.NoError(t, err)
	assert.False(t, result.NeedsReview)
	require.NotNil(t, result.Ticket)
	assert.Equal(t, "ACME Market", result.Ticket.Customer)
	assert.Equal(t, model.PriorityHigh, result.Ticket.Priority)
	assert.Equal(t, "2025-03-10", result.Ticket.DateRequested)

	persisted, err := store.GetTicketByID(ctx, result.Ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TicketOpen, persisted.Status)
}

func TestExecute_ScheduleShift(t *testing.T) {
	dispatcher, store := setupDispatcher(t)
	ctx := context.Background()

	detected := dispatcher.Analyze("Schedule John Smith for Route 7 next Tuesday 6–2pm with the box truck, CDL-B required")
	require.NotNil(t, detected)
	require.Equal(t, model.ActionScheduleShift, detected.Action)

	result, err := dispatcher.Execute(ctx, detected)
	require.NoError(t, err)
	require.Len(t, result.Shifts, 1)

	shift := result.Shifts[0]
	assert.Equal(t, "John Smith", shift.Driver)
	assert.Equal(t, "Route 7", shift.Route)
	assert.Equal(t, "2025-03-11", shift.Date)
	assert.Equal(t, "6:00", shift.StartTime)
	assert.Equal(t, "2:00", shift.EndTime)

	// The driver gets notified about the assignment.
	notifications, err := store.GetNotifications(ctx, "John Smith")
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, "shift_assigned", notifications[0].Kind)
}

func TestExecute_ScheduleShift_DefaultsDateToTomorrow(t *testing.T) {
	dispatcher, _ := setupDispatcher(t)

	detected := dispatcher.Analyze("Schedule John Smith for Route 7")
	require.NotNil(t, detected)

	result, err := dispatcher.Execute(context.Background(), detected)
	require.NoError(t, err)
	require.Len(t, result.Shifts, 1)
	assert.Equal(t, "2025-03-11", result.Shifts[0].Date)
}

func TestExecute_MarkUnavailable_SuggestsCoverage(t *testing.T) {
	dispatcher, store := setupDispatcher(t)
	ctx := context.Background()

	for _, driver := range []model.Driver{
		{ID: uuid.NewString(), Name: "John Smith", Active: true},
		{ID: uuid.NewString(), Name: "Lee", Active: true},
		{ID: uuid.NewString(), Name: "Maria", Active: true},
		{ID: uuid.NewString(), Name: "Retired Ray", Active: false},
	} {
		require.NoError(t, store.SaveDriver(ctx, &driver))
	}

	// John Smith already works tomorrow, so only Maria can cover.
	require.NoError(t, store.CreateShift(ctx, &model.Shift{
		ID: uuid.NewString(), Date: "2025-03-11", Driver: "John Smith", Route: "Route 7",
	}))

	detected := dispatcher.Analyze("Mark driver Lee unavailable tomorrow morning, affects Route 4")
	require.NotNil(t, detected)
	require.Equal(t, model.ActionMarkUnavailable, detected.Action)

	result, err := dispatcher.Execute(ctx, detected)
	require.NoError(t, err)
	require.NotNil(t, result.Unavailability)
	assert.Equal(t, "Lee", result.Unavailability.Driver)
	assert.Equal(t, "2025-03-11", result.Unavailability.Date)
	assert.Equal(t, []string{"Maria"}, result.Coverage)

	records, err := store.GetUnavailabilityOnDate(ctx, "2025-03-11")
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestExecute_FallbackFlagsReview(t *testing.T) {
	dispatcher, _ := setupDispatcher(t)

	detected := dispatcher.Analyze("do the usual thing please")
	require.NotNil(t, detected)
	require.Equal(t, model.ActionCreateTicket, detected.Action)

	result, err := dispatcher.Execute(context.Background(), detected)
	require.NoError(t, err)
	assert.True(t, result.NeedsReview)
	require.NotNil(t, result.Ticket)
	assert.Equal(t, "do the usual thing please", result.Ticket.Description)
}

func TestExecute_RefusesBelowFloor(t *testing.T) {
	dispatcher, _ := setupDispatcher(t)

	_, err := dispatcher.Execute(context.Background(), &model.DetectedIntent{
		Action:     model.ActionCreateTicket,
		Confidence: 0.2,
	})
	assert.ErrorIs(t, err, common.ErrLowConfidence)
}

func TestExecute_NilIntent(t *testing.T) {
	dispatcher, _ := setupDispatcher(t)

	_, err := dispatcher.Execute(context.Background(), nil)
	assert.ErrorIs(t, err, common.ErrNoIntent)
}

func TestScheduleRecurring(t *testing.T) {
	dispatcher, store := setupDispatcher(t)
	ctx := context.Background()

	base := &model.Shift{
		Date:   "2025-03-10",
		Driver: "John Smith",
		Route:  "Route 7",
	}
	rule := model.RecurrenceRule{
		Frequency:  model.FrequencyWeekly,
		WeeklyDays: []time.Weekday{time.Monday, time.Wednesday},
		End:        model.RecurrenceEnd{Type: model.EndAfterOccurrences, Count: 5},
	}

	shifts, err := dispatcher.ScheduleRecurring(ctx, base, rule)
	require.NoError(t, err)
	require.Len(t, shifts, 5)

	var dates []string
	for _, shift := range shifts {
		dates = append(dates, shift.Date)
		assert.Equal(t, shifts[0].RecurrenceID, shift.RecurrenceID)
	}
	assert.Equal(t, []string{"2025-03-10", "2025-03-12", "2025-03-17", "2025-03-19", "2025-03-24"}, dates)

	persisted, err := store.GetShifts(ctx, service.ShiftFilter{Driver: "John Smith"})
	require.NoError(t, err)
	assert.Len(t, persisted, 5)
}

func TestScheduleRecurring_InvalidDate(t *testing.T) {
	dispatcher, _ := setupDispatcher(t)

	_, err := dispatcher.ScheduleRecurring(context.Background(), &model.Shift{Date: "next tuesday"}, model.RecurrenceRule{
		Frequency: model.FrequencyDaily,
		End:       model.RecurrenceEnd{Type: model.EndAfterOccurrences, Count: 3},
	})
	assert.Error(t, err)
}

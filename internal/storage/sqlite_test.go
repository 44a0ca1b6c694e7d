package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/routewise/dispatch/internal/common"
	"github.com/routewise/dispatch/internal/model"
	"github.com/routewise/dispatch/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	store, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))

	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func TestMigrate_Idempotent(t *testing.T) {
	store := setupTestStorage(t)

	// A second run applies nothing and succeeds.
	require.NoError(t, store.Migrate(context.Background()))

	version, err := store.schemaVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)
}

func TestTicketLifecycle(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	ticket := &model.Ticket{
		ID:       uuid.NewString(),
		Customer: "ACME Market",
		Category: "Missed Service",
		Priority: model.PriorityHigh,
	}
	require.NoError(t, store.CreateTicket(ctx, ticket))
	assert.Equal(t, model.TicketOpen, ticket.Status)

	got, err := store.GetTicketByID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, "ACME Market", got.Customer)
	assert.Equal(t, model.PriorityHigh, got.Priority)

	require.NoError(t, store.UpdateTicketStatus(ctx, ticket.ID, model.TicketResolved))
	got, err = store.GetTicketByID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TicketResolved, got.Status)

	resolved, err := store.GetTickets(ctx, service.TicketFilter{Status: model.TicketResolved})
	require.NoError(t, err)
	require.Len(t, resolved, 1)

	open, err := store.GetTickets(ctx, service.TicketFilter{Status: model.TicketOpen})
	require.NoError(t, err)
	assert.Empty(t, open)
}

func TestGetTicketByID_NotFound(t *testing.T) {
	store := setupTestStorage(t)

	_, err := store.GetTicketByID(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestShiftBatchCreate(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	recurrenceID := uuid.NewString()
	shifts := []*model.Shift{
		{ID: uuid.NewString(), Date: "2025-03-12", Driver: "John Smith", Route: "Route 7", RecurrenceID: recurrenceID},
		{ID: uuid.NewString(), Date: "2025-03-19", Driver: "John Smith", Route: "Route 7", RecurrenceID: recurrenceID},
	}
	require.NoError(t, store.CreateShifts(ctx, shifts))

	onDate, err := store.GetShiftsOnDate(ctx, "2025-03-12")
	require.NoError(t, err)
	require.Len(t, onDate, 1)
	assert.Equal(t, model.ShiftScheduled, onDate[0].Status)

	byDriver, err := store.GetShifts(ctx, service.ShiftFilter{Driver: "John Smith"})
	require.NoError(t, err)
	assert.Len(t, byDriver, 2)
}

func TestShiftBatchCreate_RollsBackOnDuplicate(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	id := uuid.NewString()
	shifts := []*model.Shift{
		{ID: id, Date: "2025-03-12", Driver: "John Smith", Route: "Route 7"},
		{ID: id, Date: "2025-03-19", Driver: "John Smith", Route: "Route 7"},
	}
	require.Error(t, store.CreateShifts(ctx, shifts))

	// Nothing from the failed batch should have landed.
	all, err := store.GetShifts(ctx, service.ShiftFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestShiftUpdateAndDelete(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	shift := &model.Shift{ID: uuid.NewString(), Date: "2025-03-12", Route: "Route 4"}
	require.NoError(t, store.CreateShift(ctx, shift))
	assert.Equal(t, model.ShiftUnassigned, shift.Status)

	shift.Driver = "Lee"
	shift.Status = model.ShiftScheduled
	require.NoError(t, store.UpdateShift(ctx, shift))

	got, err := store.GetShiftByID(ctx, shift.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lee", got.Driver)

	require.NoError(t, store.DeleteShift(ctx, shift.ID))
	_, err = store.GetShiftByID(ctx, shift.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestDriverRoster(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveDriver(ctx, &model.Driver{
		ID:       uuid.NewString(),
		Name:     "John Smith",
		Licenses: []string{"CDL-B"},
		Active:   true,
	}))
	require.NoError(t, store.SaveDriver(ctx, &model.Driver{
		ID:     uuid.NewString(),
		Name:   "Lee",
		Active: false,
	}))

	// Upsert by name keeps a single row.
	require.NoError(t, store.SaveDriver(ctx, &model.Driver{
		ID:       uuid.NewString(),
		Name:     "John Smith",
		Licenses: []string{"CDL-B", "CDL-A"},
		Active:   true,
	}))

	all, err := store.GetDrivers(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := store.GetDrivers(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, []string{"CDL-B", "CDL-A"}, active[0].Licenses)

	missing, err := store.GetDriverByName(ctx, "Nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUnavailability(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveUnavailability(ctx, &model.Unavailability{
		ID:            uuid.NewString(),
		Driver:        "Lee",
		Date:          "2025-03-11",
		TimeSlot:      "morning",
		AffectedRoute: "Route 4",
	}))

	records, err := store.GetUnavailabilityOnDate(ctx, "2025-03-11")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Lee", records[0].Driver)
	assert.Equal(t, "Route 4", records[0].AffectedRoute)

	empty, err := store.GetUnavailabilityOnDate(ctx, "2025-03-12")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestPayoutApproval(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	payout := &model.PayoutRequest{
		ID:          uuid.NewString(),
		Driver:      "John Smith",
		Amount:      1250.50,
		PeriodStart: "2025-03-01",
		PeriodEnd:   "2025-03-15",
	}
	require.NoError(t, store.CreatePayoutRequest(ctx, payout))

	pending, err := store.GetPayoutRequests(ctx, model.PayoutPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	approved, err := store.ApprovePayoutRequest(ctx, payout.ID, "admin")
	require.NoError(t, err)
	assert.Equal(t, model.PayoutApproved, approved.Status)
	assert.Equal(t, "admin", approved.ApprovedBy)
	require.NotNil(t, approved.ApprovedAt)

	// Approving twice fails: the request is no longer pending.
	_, err = store.ApprovePayoutRequest(ctx, payout.ID, "admin")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestNotifications(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.CreateNotification(ctx, &model.Notification{
		ID:        uuid.NewString(),
		Recipient: "John Smith",
		Kind:      "shift_assigned",
		Message:   "You are scheduled for Route 7 on 2025-03-11",
	}))

	got, err := store.GetNotifications(ctx, "John Smith")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "shift_assigned", got[0].Kind)
	assert.False(t, got[0].Read)
}

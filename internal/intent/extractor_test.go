package intent

import (
	"testing"
	"time"

	"github.com/routewise/dispatch/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Monday, March 10 2025. Weekday offsets from here: Tue +1, Wed +2, Fri +4.
var monday = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

func TestExtract_BlankInput(t *testing.T) {
	for _, text := range []string{"", "   ", "\t\n  "} {
		assert.Nil(t, Extract(text, monday), "input %q should yield no intent", text)
	}
}

func TestExtract_CreateTicket(t *testing.T) {
	got := Extract("Create a ticket for Missed Service at ACME Market, priority High, due Friday.", monday)
	require.NotNil(t, got)

	assert.Equal(t, model.ActionCreateTicket, got.Action)
	assert.InDelta(t, ConfidenceCreateTicket, got.Confidence, 0.0001)
	assert.Empty(t, got.Warnings)

	wantFields := map[string]string{
		FieldCustomer:               "ACME Market",
		FieldCategory:               "Missed Service",
		FieldPriority:               "High",
		FieldExpectedResolutionDate: "2025-03-14",
	}
	for name, want := range wantFields {
		value, ok := got.Fields.Get(name)
		require.True(t, ok, "field %s not extracted", name)
		assert.Equal(t, want, value, "field %s", name)
	}
}

func TestExtract_CreateTicketWarnings(t *testing.T) {
	got := Extract("Open a ticket about the overflowing container", monday)
	require.NotNil(t, got)

	assert.Equal(t, model.ActionCreateTicket, got.Action)
	assert.Equal(t, []string{"Customer not specified", "Category unclear"}, got.Warnings)

	// Priority silently defaults to Medium.
	priority, ok := got.Fields.Get(FieldPriority)
	require.True(t, ok)
	assert.Equal(t, "Medium", priority)
}

func TestExtract_CreateTicketDates(t *testing.T) {
	got := Extract("Add a Bin Swap request for Fresh Foods next Wednesday, medium priority, starting today.", monday)
	require.NotNil(t, got)

	assert.Equal(t, model.ActionCreateTicket, got.Action)

	dateRequested, ok := got.Fields.Get(FieldDateRequested)
	require.True(t, ok)
	assert.Equal(t, "2025-03-10", dateRequested)

	resolution, ok := got.Fields.Get(FieldExpectedResolutionDate)
	require.True(t, ok)
	assert.Equal(t, "2025-03-12", resolution)

	customer, _ := got.Fields.Get(FieldCustomer)
	assert.Equal(t, "Fresh Foods", customer)
	category, _ := got.Fields.Get(FieldCategory)
	assert.Equal(t, "Bin Swap", category)
}

func TestExtract_CreateTicketRegexFields(t *testing.T) {
	got := Extract("Issue on route 12: driver Sam reported vehicle V42 trouble", monday)
	require.NotNil(t, got)
	assert.Equal(t, model.ActionCreateTicket, got.Action)

	route, _ := got.Fields.Get(FieldRoute)
	assert.Equal(t, "Route 12", route)
	driver, _ := got.Fields.Get(FieldDriver)
	assert.Equal(t, "Sam", driver)
	vehicle, _ := got.Fields.Get(FieldVehicle)
	assert.Equal(t, "V42", vehicle)
}

func TestExtract_ScheduleShift(t *testing.T) {
	got := Extract("Schedule John Smith for Route 7 on Tue 6–2pm, backup Maria, vehicle Box Truck, CDL-B license.", monday)
	require.NotNil(t, got)

	assert.Equal(t, model.ActionScheduleShift, got.Action)
	assert.InDelta(t, ConfidenceScheduleShift, got.Confidence, 0.0001)
	assert.Empty(t, got.Warnings)

	wantFields := map[string]string{
		FieldDriver:          "John Smith",
		FieldBackupDriver:    "Maria",
		FieldRoute:           "Route 7",
		FieldStartTime:       "6:00",
		FieldEndTime:         "2:00",
		FieldDate:            "2025-03-11",
		FieldVehicle:         "Box Truck",
		FieldLicenseRequired: "cdl-b",
	}
	for name, want := range wantFields {
		value, ok := got.Fields.Get(name)
		require.True(t, ok, "field %s not extracted", name)
		assert.Equal(t, want, value, "field %s", name)
	}
}

func TestExtract_ScheduleShiftWarnings(t *testing.T) {
	got := Extract("Schedule a shift for next week", monday)
	require.NotNil(t, got)

	assert.Equal(t, model.ActionScheduleShift, got.Action)
	assert.Equal(t, []string{"Driver not specified", "Route not specified"}, got.Warnings)
}

func TestExtract_MarkUnavailable(t *testing.T) {
	got := Extract("Mark Driver Lee unavailable tomorrow morning and suggest coverage for Route 4.", monday)
	require.NotNil(t, got)

	assert.Equal(t, model.ActionMarkUnavailable, got.Action)
	assert.InDelta(t, ConfidenceMarkUnavailable, got.Confidence, 0.0001)
	assert.Empty(t, got.Warnings)

	wantFields := map[string]string{
		FieldDriver:        "Lee",
		FieldDate:          "2025-03-11",
		FieldTimeSlot:      "morning",
		FieldAffectedRoute: "Route 4",
	}
	for name, want := range wantFields {
		value, ok := got.Fields.Get(name)
		require.True(t, ok, "field %s not extracted", name)
		assert.Equal(t, want, value, "field %s", name)
	}
}

func TestExtract_Fallback(t *testing.T) {
	got := Extract("xyz random text", monday)
	require.NotNil(t, got)

	assert.Equal(t, model.ActionCreateTicket, got.Action)
	assert.InDelta(t, ConfidenceFallback, got.Confidence, 0.0001)
	assert.Equal(t, []string{"Could not determine specific action"}, got.Warnings)

	description, ok := got.Fields.Get(FieldDescription)
	require.True(t, ok)
	assert.Equal(t, "xyz random text", description)
}

func TestExtract_ClassificationPriority(t *testing.T) {
	// Ticket phrasing outranks shift phrasing when both triggers appear.
	got := Extract("Create a ticket to schedule a shift review", monday)
	require.NotNil(t, got)
	assert.Equal(t, model.ActionCreateTicket, got.Action)

	// Shift phrasing outranks "mark" so that "mark ... scheduled" resolves
	// to scheduling.
	got = Extract("Schedule route 9 and mark it confirmed", monday)
	require.NotNil(t, got)
	assert.Equal(t, model.ActionScheduleShift, got.Action)
}

func TestExtract_SameDayWeekdayAsymmetry(t *testing.T) {
	friday := time.Date(2025, time.March, 14, 9, 0, 0, 0, time.UTC)
	tuesday := time.Date(2025, time.March, 11, 9, 0, 0, 0, time.UTC)

	// Ticket deadlines resolve a same-day weekday to today.
	ticket := Extract("Create a ticket due Friday", friday)
	require.NotNil(t, ticket)
	resolution, ok := ticket.Fields.Get(FieldExpectedResolutionDate)
	require.True(t, ok)
	assert.Equal(t, "2025-03-14", resolution)

	// Shift dates resolve a same-day weekday to next week.
	shift := Extract("Schedule John Smith for Route 7 on Tue", tuesday)
	require.NotNil(t, shift)
	date, ok := shift.Fields.Get(FieldDate)
	require.True(t, ok)
	assert.Equal(t, "2025-03-18", date)
}

func TestExtract_Deterministic(t *testing.T) {
	text := "Schedule John Smith for Route 7 on Tue 6–2pm"
	first := Extract(text, monday)
	second := Extract(text, monday)
	assert.Equal(t, first, second)
}

func TestExtract_FieldOrderPreserved(t *testing.T) {
	got := Extract("Create a ticket for Missed Service at ACME Market, priority High, due Friday.", monday)
	require.NotNil(t, got)
	assert.Equal(t,
		[]string{FieldCustomer, FieldCategory, FieldPriority, FieldExpectedResolutionDate},
		got.Fields.Names())
}

package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldList_SetAndGet(t *testing.T) {
	var fields FieldList
	fields.Set("customer", "ACME Market")
	fields.Set("priority", "High")
	fields.Set("customer", "Fresh Foods") // replaces in place

	value, ok := fields.Get("customer")
	require.True(t, ok)
	assert.Equal(t, "Fresh Foods", value)

	_, ok = fields.Get("missing")
	assert.False(t, ok)

	// Replacing a value must not change its position.
	assert.Equal(t, []string{"customer", "priority"}, fields.Names())
}

func TestFieldList_MarshalPreservesOrder(t *testing.T) {
	var fields FieldList
	fields.Set("customer", "ACME Market")
	fields.Set("category", "Missed Service")
	fields.Set("priority", "High")

	data, err := json.Marshal(fields)
	require.NoError(t, err)
	assert.Equal(t, `{"customer":"ACME Market","category":"Missed Service","priority":"High"}`, string(data))
}

func TestFieldList_UnmarshalRoundTrip(t *testing.T) {
	input := `{"driver":"John Smith","route":"Route 7","startTime":"6:00"}`

	var fields FieldList
	require.NoError(t, json.Unmarshal([]byte(input), &fields))
	assert.Equal(t, []string{"driver", "route", "startTime"}, fields.Names())

	data, err := json.Marshal(fields)
	require.NoError(t, err)
	assert.Equal(t, input, string(data))
}

func TestFieldList_UnmarshalRejectsNonObject(t *testing.T) {
	var fields FieldList
	assert.Error(t, json.Unmarshal([]byte(`["not","an","object"]`), &fields))
}

func TestActionKind_Label(t *testing.T) {
	assert.Equal(t, "Create Ticket", ActionCreateTicket.Label())
	assert.Equal(t, "Schedule Shift", ActionScheduleShift.Label())
	assert.Equal(t, "Mark Unavailable", ActionMarkUnavailable.Label())
	assert.Equal(t, "Unknown Action", ActionKind("bogus").Label())
}

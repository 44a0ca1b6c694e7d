package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/routewise/dispatch/internal/engine"
	"github.com/routewise/dispatch/internal/model"
	"github.com/routewise/dispatch/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func setupServer(t *testing.T) *Server {
	t.Helper()

	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))
	t.Cleanup(func() {
		_ = store.Close()
	})

	dispatcher := engine.New(store).WithClock(func() time.Time { return testNow })
	return New(store, dispatcher, DefaultConfig())
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func TestHealth(t *testing.T) {
	s := setupServer(t)

	rec := doJSON(t, s, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestAnalyzeIntent(t *testing.T) {
	s := setupServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/intent", map[string]string{
		"text": "Create a high priority ticket for ACME Market about a missed service",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Intent model.DetectedIntent `json:"intent"`
	}
	decode(t, rec, &resp)
	assert.Equal(t, model.ActionCreateTicket, resp.Intent.Action)
	assert.InDelta(t, 0.92, resp.Intent.Confidence, 0.001)

	customer, ok := resp.Intent.Fields.Get("customer")
	require.True(t, ok)
	assert.Equal(t, "ACME Market", customer)
}

func TestAnalyzeIntent_BlankPrompt(t *testing.T) {
	s := setupServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/intent", map[string]string{"text": "   "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExecuteIntent(t *testing.T) {
	s := setupServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/intent/execute", map[string]string{
		"text": "Schedule John Smith for Route 7 next Tuesday 6–2pm",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Result engine.Result `json:"result"`
	}
	decode(t, rec, &resp)
	require.Len(t, resp.Result.Shifts, 1)
	assert.Equal(t, "2025-03-11", resp.Result.Shifts[0].Date)

	list := doJSON(t, s, http.MethodGet, "/api/shifts?driver=John%20Smith", nil)
	require.Equal(t, http.StatusOK, list.Code)
	var shifts struct {
		Shifts []model.Shift `json:"shifts"`
	}
	decode(t, list, &shifts)
	assert.Len(t, shifts.Shifts, 1)
}

func TestRecurrenceSummary(t *testing.T) {
	s := setupServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/recurrence/summary", map[string]any{
		"frequency":   "weekly",
		"interval":    1,
		"weekly_days": []int{int(time.Wednesday), int(time.Monday)},
		"end":         map[string]any{"type": "occurrences", "count": 5},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Weekly on Mon, Wed for 5 occurrences")
}

func TestCreateShift_WithRecurrence(t *testing.T) {
	s := setupServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/shifts", map[string]any{
		"date":   "2025-03-10",
		"driver": "John Smith",
		"route":  "Route 7",
		"recurrence": map[string]any{
			"frequency":   "weekly",
			"interval":    1,
			"weekly_days": []int{int(time.Monday), int(time.Wednesday)},
			"end":         map[string]any{"type": "occurrences", "count": 5},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Shifts  []model.Shift `json:"shifts"`
		Summary string        `json:"summary"`
	}
	decode(t, rec, &resp)
	assert.Len(t, resp.Shifts, 5)
	assert.Equal(t, "Weekly on Mon, Wed for 5 occurrences", resp.Summary)
}

func TestShiftCRUD(t *testing.T) {
	s := setupServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/shifts", map[string]any{
		"date":  "2025-03-12",
		"route": "Route 4",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Shifts []model.Shift `json:"shifts"`
	}
	decode(t, rec, &created)
	require.Len(t, created.Shifts, 1)
	id := created.Shifts[0].ID
	assert.Equal(t, model.ShiftUnassigned, created.Shifts[0].Status)

	update := doJSON(t, s, http.MethodPut, "/api/shifts/"+id, map[string]any{
		"date":   "2025-03-12",
		"route":  "Route 4",
		"driver": "Maria",
		"status": "scheduled",
	})
	require.Equal(t, http.StatusOK, update.Code)

	del := doJSON(t, s, http.MethodDelete, "/api/shifts/"+id, nil)
	assert.Equal(t, http.StatusNoContent, del.Code)

	missing := doJSON(t, s, http.MethodDelete, "/api/shifts/"+id, nil)
	assert.Equal(t, http.StatusNotFound, missing.Code)
}

func TestPayrollFlow(t *testing.T) {
	s := setupServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/payroll/request", map[string]any{
		"driver":       "John Smith",
		"amount":       1250.50,
		"period_start": "2025-03-01",
		"period_end":   "2025-03-15",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Payout model.PayoutRequest `json:"payout"`
	}
	decode(t, rec, &created)
	assert.Equal(t, model.PayoutPending, created.Payout.Status)

	approve := doJSON(t, s, http.MethodPut, "/api/payroll/approve/"+created.Payout.ID, map[string]any{
		"approved_by": "admin",
	})
	require.Equal(t, http.StatusOK, approve.Code)

	again := doJSON(t, s, http.MethodPut, "/api/payroll/approve/"+created.Payout.ID, map[string]any{
		"approved_by": "admin",
	})
	assert.Equal(t, http.StatusNotFound, again.Code)
}

func TestNotifications(t *testing.T) {
	s := setupServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/notifications", map[string]any{
		"recipient": "Maria",
		"kind":      "coverage_request",
		"message":   "Can you cover Route 4 tomorrow morning?",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	list := doJSON(t, s, http.MethodGet, "/api/notifications/Maria", nil)
	require.Equal(t, http.StatusOK, list.Code)

	var resp struct {
		Notifications []model.Notification `json:"notifications"`
	}
	decode(t, list, &resp)
	require.Len(t, resp.Notifications, 1)
	assert.Equal(t, "coverage_request", resp.Notifications[0].Kind)
}

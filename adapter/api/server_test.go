package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/felixgeelhaar/tempo/internal/app"
	"github.com/felixgeelhaar/tempo/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	cfg := &config.Config{
		AppEnv:                 "test",
		Timezone:               "UTC",
		SQLitePath:             filepath.Join(t.TempDir(), "tempo.db"),
		RecommendationCacheTTL: time.Hour,
		CalendarFetchTimeout:   time.Second,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	container, err := app.NewContainer(context.Background(), cfg, logger)
	require.NoError(t, err)
	t.Cleanup(container.Close)

	serverCfg := DefaultServerConfig()
	return NewServer(serverCfg, container, logger).Handler()
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestHealth(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]any](t, rec)
	assert.Equal(t, "healthy", body["status"])
	assert.NotEmpty(t, rec.Header().Get("X-Correlation-ID"))
}

func TestTasks_CreateListGetDelete(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/api/tasks", map[string]any{
		"title":           "Thesis chapter",
		"type":            "assignment",
		"priority":        "high",
		"due_date":        "2026-11-02",
		"estimated_hours": 6,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[map[string]any](t, rec)
	assert.Equal(t, "Thesis chapter", created["title"])
	assert.Equal(t, "assignment", created["category"])
	assert.Len(t, created["subtasks"], 3)

	id := created["id"].(string)

	rec = do(t, h, http.MethodGet, "/api/tasks", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]any](t, rec), 1)

	rec = do(t, h, http.MethodPut, "/api/tasks/"+id, map[string]any{"status": "in_progress"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "in_progress", decode[map[string]any](t, rec)["status"])

	rec = do(t, h, http.MethodDelete, "/api/tasks/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/tasks/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTasks_ErrorMapping(t *testing.T) {
	h := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
	}{
		{"unknown priority", http.MethodPost, "/api/tasks", map[string]any{"title": "x", "priority": "someday"}, http.StatusBadRequest},
		{"malformed due date", http.MethodPost, "/api/tasks", map[string]any{"title": "x", "due_date": "02/11/2026"}, http.StatusBadRequest},
		{"malformed id", http.MethodGet, "/api/tasks/not-a-uuid", nil, http.StatusBadRequest},
		{"missing task", http.MethodGet, "/api/tasks/7f1e2d3c-0000-4000-8000-000000000001", nil, http.StatusNotFound},
		{"missing subtask", http.MethodPut, "/api/subtasks/7f1e2d3c-0000-4000-8000-000000000001", map[string]any{"status": "completed"}, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			assert.NotEmpty(t, decode[map[string]string](t, rec)["message"])
		})
	}
}

func TestEnergyAndSessions(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/api/energy-patterns", map[string]any{
		"day_of_week": 2, "hour": 14, "energy_level": "high",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/api/energy-patterns", map[string]any{
		"day_of_week": 9, "hour": 14, "energy_level": "high",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/study-sessions", map[string]any{
		"start_time":          "2026-10-20T09:00:00Z",
		"end_time":            "2026-10-20T10:30:00Z",
		"energy_level":        "medium",
		"productivity_rating": 4,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.EqualValues(t, 90, decode[map[string]any](t, rec)["duration_minutes"])

	rec = do(t, h, http.MethodGet, "/api/energy-patterns?day_of_week=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 2, decode[map[string]any](t, rec)["observations"])

	rec = do(t, h, http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1.5, decode[map[string]any](t, rec)["total_study_hours"])
}

func TestRecommendations(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/api/recommendations", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]any](t, rec)
	assert.NotEmpty(t, body["recommendations"])
}

func TestScheduleFlow(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/api/sleep-schedule", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodPut, "/api/sleep-schedule", map[string]any{
		"bedtime": "23:00", "wake_time": "07:00", "desired_hours": 8,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/api/recurring-events", map[string]any{
		"name": "Lecture", "category": "class", "start_time": "09:00", "end_time": "12:00",
		"recurrence_pattern": "daily",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/api/tasks", map[string]any{
		"title": "Problem set", "priority": "high", "due_date": "2030-01-10", "estimated_hours": 2,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	taskID := decode[map[string]any](t, rec)["id"].(string)

	rec = do(t, h, http.MethodGet, "/api/schedule/generate?date=2030-01-08", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	schedule := decode[map[string]any](t, rec)
	assert.Equal(t, "2030-01-08", schedule["date"])
	assert.Len(t, schedule["recurring_events"], 1)
	assert.EqualValues(t, 1, schedule["total_scheduled_tasks"])

	rec = do(t, h, http.MethodPost, "/api/schedule", map[string]any{
		"task_id": taskID, "scheduled_date": "2030-01-08", "start_time": "19:00", "end_time": "21:00",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	pinned := decode[map[string]any](t, rec)["assignment"].(map[string]any)

	rec = do(t, h, http.MethodGet, "/api/schedule?date=2030-01-08", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]any](t, rec), 1)

	rec = do(t, h, http.MethodGet, "/api/schedule/generate?date=2030-01-08", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	schedule = decode[map[string]any](t, rec)
	assert.EqualValues(t, 0, schedule["total_scheduled_tasks"])
	assert.Len(t, schedule["manual_tasks"], 1)

	rec = do(t, h, http.MethodGet, "/api/schedule/export?date=2030-01-08", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/calendar")
	assert.Contains(t, rec.Body.String(), "BEGIN:VEVENT")

	rec = do(t, h, http.MethodDelete, "/api/schedule/"+pinned["id"].(string), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, h, http.MethodDelete, "/api/schedule/"+pinned["id"].(string), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/schedule/generate?date=tomorrow", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCalendarImport(t *testing.T) {
	h := newTestServer(t)

	text := strings.Join([]string{
		"BEGIN:VEVENT",
		"SUMMARY:Chemistry Lab",
		"DTSTART:20261019T140000",
		"DTEND:20261019T160000",
		"RRULE:FREQ=WEEKLY;BYDAY=MO,WE",
		"END:VEVENT",
	}, "\n")

	rec := do(t, h, http.MethodPost, "/api/calendar/import", map[string]any{"text": text})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	result := decode[map[string]any](t, rec)
	assert.EqualValues(t, 1, result["blocks"])
	assert.Len(t, result["imported"], 1)

	rec = do(t, h, http.MethodGet, "/api/recurring-events", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	events := decode[[]map[string]any](t, rec)
	require.Len(t, events, 1)
	assert.Equal(t, "Chemistry Lab", events[0]["name"])

	rec = do(t, h, http.MethodPost, "/api/calendar/import", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schedcu/shiftsolver/internal/entity"
	"github.com/schedcu/shiftsolver/internal/repository/memory"
	"github.com/schedcu/shiftsolver/internal/scheduledto"
)

func newTestHandlers() (*Handlers, *memory.SolveHistoryRepository) {
	history := memory.NewSolveHistoryRepository()
	return NewHandlers(nil, history), history
}

func TestHandlers_Health(t *testing.T) {
	h, _ := newTestHandlers()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Health(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandlers_GetSolveRun_InvalidID(t *testing.T) {
	h, _ := newTestHandlers()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/solves/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	require.NoError(t, h.GetSolveRun(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlers_GetSolveRun_Found(t *testing.T) {
	h, history := newTestHandlers()
	run := entity.NewSolveRun([]byte(`{}`), "alice")
	require.NoError(t, history.Create(context.Background(), run))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/solves/"+run.ID.String(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(run.ID.String())

	require.NoError(t, h.GetSolveRun(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), run.ID.String())
}

func TestHandlers_GetSolveRunCoverage_NoSchedule(t *testing.T) {
	h, history := newTestHandlers()
	run := entity.NewSolveRun([]byte(`{}`), "bob")
	require.NoError(t, history.Create(context.Background(), run))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/solves/"+run.ID.String()+"/coverage", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(run.ID.String())

	require.NoError(t, h.GetSolveRunCoverage(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandlers_GetSolveRunSchedule(t *testing.T) {
	h, history := newTestHandlers()
	run := entity.NewSolveRun([]byte(`{}`), "erin")
	require.NoError(t, history.Create(context.Background(), run))

	worker, err := entity.NewWorker("w1", "Worker One", "STAFF", 1, true, nil, nil, nil)
	require.NoError(t, err)
	shiftType, err := entity.NewShiftType("DAY", "Day", "", "08:00", 8, 1, false, nil, nil)
	require.NoError(t, err)
	schedule := entity.NewSchedule([]entity.Worker{*worker}, []entity.ShiftType{*shiftType}, "week", 1)
	schedule.Status = entity.StatusOptimal

	scheduleJSON, err := json.Marshal(scheduledto.From(schedule))
	require.NoError(t, err)
	run.Complete(entity.StatusOptimal, scheduleJSON, nil, 0, 0)
	require.NoError(t, history.Update(context.Background(), run))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/solves/"+run.ID.String()+"/schedule", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(run.ID.String())

	require.NoError(t, h.GetSolveRunSchedule(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"schedule_id"`)
	assert.Contains(t, rec.Body.String(), schedule.ID.String())
}

func TestHandlers_GetSolveRunSchedule_NoSchedule(t *testing.T) {
	h, history := newTestHandlers()
	run := entity.NewSolveRun([]byte(`{}`), "frank")
	require.NoError(t, history.Create(context.Background(), run))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/solves/"+run.ID.String()+"/schedule", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(run.ID.String())

	require.NoError(t, h.GetSolveRunSchedule(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandlers_ValidateSchedule_ReportsCoverageViolation(t *testing.T) {
	h, history := newTestHandlers()

	requestJSON := []byte(`{
		"start_date": "2026-03-02",
		"end_date": "2026-03-08",
		"period_length_days": 7,
		"workers": [{"id": "w1", "name": "Worker One", "worker_type": "STAFF", "fte": 1, "is_active": true}],
		"shift_types": [{"id": "DAY", "name": "Day", "category": "", "start_time": "08:00", "duration_hours": 8, "workers_required": 1, "is_undesirable": false}]
	}`)
	run := entity.NewSolveRun(requestJSON, "grace")
	require.NoError(t, history.Create(context.Background(), run))

	worker, err := entity.NewWorker("w1", "Worker One", "STAFF", 1, true, nil, nil, nil)
	require.NoError(t, err)
	shiftType, err := entity.NewShiftType("DAY", "Day", "", "08:00", 8, 1, false, nil, nil)
	require.NoError(t, err)
	schedule := entity.NewSchedule([]entity.Worker{*worker}, []entity.ShiftType{*shiftType}, "week", 1)
	// Deliberately leave the period unstaffed to trigger a coverage violation.
	dto := scheduledto.From(schedule)
	dto.StartDate = "2026-03-02"
	dto.EndDate = "2026-03-08"
	dto.Periods[0].Start = "2026-03-02"
	dto.Periods[0].End = "2026-03-08"

	bodyJSON, err := json.Marshal(dto)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/schedules/"+run.ID.String()+"/validate", bytes.NewReader(bodyJSON))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(run.ID.String())

	require.NoError(t, h.ValidateSchedule(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "SCHEDULE_VIOLATION"))
}

func TestHandlers_ListSolveRuns(t *testing.T) {
	h, history := newTestHandlers()
	require.NoError(t, history.Create(context.Background(), entity.NewSolveRun([]byte(`{}`), "carol")))
	require.NoError(t, history.Create(context.Background(), entity.NewSolveRun([]byte(`{}`), "dave")))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/solves", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.ListSolveRuns(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

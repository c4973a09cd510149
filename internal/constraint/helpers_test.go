package constraint

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/schedcu/shiftsolver/internal/calendar"
	"github.com/schedcu/shiftsolver/internal/entity"
	"github.com/schedcu/shiftsolver/internal/modelvars"
	"github.com/schedcu/shiftsolver/internal/solver"
	"github.com/schedcu/shiftsolver/internal/solver/brute"
)

// dailyCalendar builds a calendar of numDays one-day periods starting on a
// fixed Monday, so day-of-week-sensitive fixtures are deterministic.
func dailyCalendar(t *testing.T, numDays int) *calendar.Calendar {
	t.Helper()
	start := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC) // a Monday
	end := start.AddDate(0, 0, numDays-1)
	cal, err := calendar.New(start, end, 1)
	require.NoError(t, err)
	return cal
}

func worker(id string, active bool) entity.Worker {
	return entity.Worker{ID: id, IsActive: active}
}

// solve runs the model with generous limits and requires a non-error result.
func solve(t *testing.T, model solver.Model) solver.Result {
	t.Helper()
	result, err := model.Solve(context.Background(), solver.Params{TimeLimitSeconds: 10})
	require.NoError(t, err)
	return result
}

// newVars builds a brute-backed model and Vars for the given fixture.
func newVars(workers []entity.Worker, shiftTypes []entity.ShiftType, numPeriods int) (solver.Model, *modelvars.Vars) {
	model := brute.New()
	return model, modelvars.Build(model, workers, shiftTypes, numPeriods)
}

package feasibility

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schedcu/shiftsolver/internal/calendar"
	"github.com/schedcu/shiftsolver/internal/entity"
)

func mustCalendar(t *testing.T, days int) *calendar.Calendar {
	t.Helper()
	start := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, days-1)
	cal, err := calendar.New(start, end, days)
	require.NoError(t, err)
	return cal
}

func activeWorker(id string, restricted ...string) entity.Worker {
	w, err := entity.NewWorker(id, id, "STAFF", 1, true, restricted, nil, nil)
	if err != nil {
		panic(err)
	}
	return *w
}

func TestCheck_NoIssuesForWellFormedInput(t *testing.T) {
	issues := Check(Input{
		Workers:    []entity.Worker{activeWorker("w1"), activeWorker("w2")},
		ShiftTypes: []entity.ShiftType{{ID: "DAY", WorkersRequired: 1}},
		Calendar:   mustCalendar(t, 7),
	})
	assert.Empty(t, issues)
}

func TestCheck_DuplicateWorkerID(t *testing.T) {
	issues := Check(Input{
		Workers:  []entity.Worker{activeWorker("w1"), activeWorker("w1")},
		Calendar: mustCalendar(t, 7),
	})
	assert.True(t, hasKind(issues, "DuplicateWorkerID"))
	assert.True(t, HasFatal(issues))
}

func TestCheck_DuplicateShiftTypeID(t *testing.T) {
	issues := Check(Input{
		ShiftTypes: []entity.ShiftType{{ID: "DAY"}, {ID: "DAY"}},
		Calendar:   mustCalendar(t, 7),
	})
	assert.True(t, hasKind(issues, "DuplicateShiftTypeID"))
}

func TestCheck_BadHorizon(t *testing.T) {
	issues := Check(Input{Calendar: nil})
	assert.True(t, hasKind(issues, "BadHorizon"))
	assert.True(t, HasFatal(issues))
}

func TestCheck_CoverageUnreachable(t *testing.T) {
	issues := Check(Input{
		Workers:    []entity.Worker{activeWorker("w1", "NIGHT")},
		ShiftTypes: []entity.ShiftType{{ID: "NIGHT", WorkersRequired: 1}},
		Calendar:   mustCalendar(t, 7),
	})
	assert.True(t, hasKind(issues, "CoverageUnreachable"))
}

func TestCheck_PerPeriodAvailabilityUnreachable(t *testing.T) {
	cal := mustCalendar(t, 7)
	worker := activeWorker("w1")

	issues := Check(Input{
		Workers:    []entity.Worker{worker},
		ShiftTypes: []entity.ShiftType{{ID: "DAY", WorkersRequired: 1}},
		Calendar:   cal,
		Availabilities: []entity.Availability{{
			WorkerID:  "w1",
			StartDate: cal.Period(0).StartDate,
			EndDate:   cal.Period(0).EndDate,
			Type:      entity.Unavailable,
		}},
	})
	assert.True(t, hasKind(issues, "PerPeriodAvailabilityUnreachable"))
}

func TestCheck_RequestRestrictionConflict(t *testing.T) {
	worker := activeWorker("w1", "NIGHT")
	req, err := entity.NewSchedulingRequest("w1", "NIGHT", 0, true, 1)
	require.NoError(t, err)

	issues := Check(Input{
		Workers:           []entity.Worker{worker},
		Requests:          []entity.SchedulingRequest{*req},
		Calendar:          mustCalendar(t, 7),
		ConstraintConfigs: map[string]entity.ConstraintConfig{"request": {IsHard: true}},
	})
	assert.True(t, hasKind(issues, "RequestRestrictionConflict"))
}

func TestCheck_RequestRestrictionConflict_OnlyWhenHard(t *testing.T) {
	worker := activeWorker("w1", "NIGHT")
	req, err := entity.NewSchedulingRequest("w1", "NIGHT", 0, true, 1)
	require.NoError(t, err)

	issues := Check(Input{
		Workers:           []entity.Worker{worker},
		Requests:          []entity.SchedulingRequest{*req},
		Calendar:          mustCalendar(t, 7),
		ConstraintConfigs: map[string]entity.ConstraintConfig{"request": {IsHard: false}},
	})
	assert.False(t, hasKind(issues, "RequestRestrictionConflict"))
}

func TestCheck_ShiftFrequencyUnknownWorker(t *testing.T) {
	freq, err := entity.NewShiftFrequencyRequirement("ghost", []string{"DAY"}, 2)
	require.NoError(t, err)

	issues := Check(Input{
		ShiftFrequencyRequirements: []entity.ShiftFrequencyRequirement{*freq},
		Calendar:                   mustCalendar(t, 7),
	})
	assert.True(t, hasKind(issues, "ShiftFrequencyUnknownWorker"))
}

func TestCheck_ShiftFrequencyUnknownShiftType(t *testing.T) {
	worker := activeWorker("w1")
	freq, err := entity.NewShiftFrequencyRequirement("w1", []string{"GHOST_SHIFT"}, 2)
	require.NoError(t, err)

	issues := Check(Input{
		Workers:                    []entity.Worker{worker},
		ShiftFrequencyRequirements: []entity.ShiftFrequencyRequirement{*freq},
		Calendar:                   mustCalendar(t, 7),
	})
	assert.True(t, hasKind(issues, "ShiftFrequencyUnknownShiftType"))
}

func TestCheck_ShiftFrequencyWindowExceedsHorizon(t *testing.T) {
	worker := activeWorker("w1")
	freq, err := entity.NewShiftFrequencyRequirement("w1", []string{"DAY"}, 100)
	require.NoError(t, err)

	issues := Check(Input{
		Workers:                    []entity.Worker{worker},
		ShiftTypes:                 []entity.ShiftType{{ID: "DAY"}},
		ShiftFrequencyRequirements: []entity.ShiftFrequencyRequirement{*freq},
		Calendar:                   mustCalendar(t, 7),
	})
	assert.True(t, hasKind(issues, "ShiftFrequencyWindowExceedsHorizon"))
	for _, i := range issues {
		if i.Kind == "ShiftFrequencyWindowExceedsHorizon" {
			assert.Equal(t, entity.SeverityWarn, i.Severity)
		}
	}
}

func TestCheck_ShiftFrequencyAllRestricted(t *testing.T) {
	worker := activeWorker("w1", "DAY")
	freq, err := entity.NewShiftFrequencyRequirement("w1", []string{"DAY"}, 2)
	require.NoError(t, err)

	issues := Check(Input{
		Workers:                    []entity.Worker{worker},
		ShiftTypes:                 []entity.ShiftType{{ID: "DAY"}},
		ShiftFrequencyRequirements: []entity.ShiftFrequencyRequirement{*freq},
		Calendar:                   mustCalendar(t, 7),
	})
	assert.True(t, hasKind(issues, "ShiftFrequencyAllRestricted"))
}

func TestHasFatal(t *testing.T) {
	assert.False(t, HasFatal(nil))
	assert.False(t, HasFatal([]entity.FeasibilityIssue{{Severity: entity.SeverityWarn}}))
	assert.True(t, HasFatal([]entity.FeasibilityIssue{{Severity: entity.SeverityFatal}}))
}

func hasKind(issues []entity.FeasibilityIssue, kind string) bool {
	for _, i := range issues {
		if i.Kind == kind {
			return true
		}
	}
	return false
}

package constraint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schedcu/shiftsolver/internal/entity"
	"github.com/schedcu/shiftsolver/internal/solver"
)

func TestShiftFrequency_SkipsRequirementWhoseWindowExceedsHorizon(t *testing.T) {
	workers := []entity.Worker{worker("w1", true)}
	shiftTypes := []entity.ShiftType{{ID: "NIGHT"}}
	freq, err := entity.NewShiftFrequencyRequirement("w1", []string{"NIGHT"}, 10)
	require.NoError(t, err)

	model, vars := newVars(workers, shiftTypes, 2)
	out, err := ShiftFrequency{}.Apply(model, vars, Context{
		Workers: workers, ShiftTypes: shiftTypes, Calendar: dailyCalendar(t, 2),
		ShiftFrequencyRequirements: []entity.ShiftFrequencyRequirement{*freq},
	}, entity.ConstraintConfig{Enabled: true, Weight: 5})
	require.NoError(t, err)
	assert.Empty(t, out.ViolationVars)
}

func TestShiftFrequency_HardModeRequiresOneOfTheSetPerWindow(t *testing.T) {
	workers := []entity.Worker{worker("w1", true)}
	shiftTypes := []entity.ShiftType{{ID: "NIGHT"}, {ID: "DAY"}}
	freq, err := entity.NewShiftFrequencyRequirement("w1", []string{"NIGHT"}, 1)
	require.NoError(t, err)

	model, vars := newVars(workers, shiftTypes, 2)
	_, err = ShiftFrequency{}.Apply(model, vars, Context{
		Workers: workers, ShiftTypes: shiftTypes, Calendar: dailyCalendar(t, 2),
		ShiftFrequencyRequirements: []entity.ShiftFrequencyRequirement{*freq},
	}, entity.ConstraintConfig{Enabled: true, IsHard: true})
	require.NoError(t, err)

	// Forbid NIGHT in both periods: w1 can never satisfy the requirement.
	for p := 0; p < 2; p++ {
		x, err := vars.Assign("w1", p, "NIGHT")
		require.NoError(t, err)
		model.AddLinearEq(solver.Sum(solver.Bool(x, 1)), 0)
	}

	result := solve(t, model)
	assert.Equal(t, solver.Infeasible, result.Status)
}

func TestShiftFrequency_SoftModeRegistersPerWindowViolation(t *testing.T) {
	workers := []entity.Worker{worker("w1", true)}
	shiftTypes := []entity.ShiftType{{ID: "NIGHT"}}
	freq, err := entity.NewShiftFrequencyRequirement("w1", []string{"NIGHT"}, 1)
	require.NoError(t, err)

	model, vars := newVars(workers, shiftTypes, 2)
	out, err := ShiftFrequency{}.Apply(model, vars, Context{
		Workers: workers, ShiftTypes: shiftTypes, Calendar: dailyCalendar(t, 2),
		ShiftFrequencyRequirements: []entity.ShiftFrequencyRequirement{*freq},
	}, entity.ConstraintConfig{Enabled: true, IsHard: false, Weight: 5})
	require.NoError(t, err)
	assert.Len(t, out.ViolationVars, 2) // one per window start (0 and 1)
}

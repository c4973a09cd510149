package constraint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schedcu/shiftsolver/internal/entity"
	"github.com/schedcu/shiftsolver/internal/solver"
)

func TestFairness_SkipsWhenFewerThanTwoActiveWorkers(t *testing.T) {
	workers := []entity.Worker{worker("w1", true)}
	shiftTypes := []entity.ShiftType{{ID: "NIGHT", IsUndesirable: true}}
	model, vars := newVars(workers, shiftTypes, 2)

	out, err := Fairness{}.Apply(model, vars, Context{
		Workers: workers, ShiftTypes: shiftTypes, Calendar: dailyCalendar(t, 2),
	}, entity.ConstraintConfig{Enabled: true, Weight: 10})
	require.NoError(t, err)
	assert.Empty(t, out.ViolationVars)
}

func TestFairness_SkipsWhenNoUndesirableCategorySelected(t *testing.T) {
	workers := []entity.Worker{worker("w1", true), worker("w2", true)}
	shiftTypes := []entity.ShiftType{{ID: "DAY"}}
	model, vars := newVars(workers, shiftTypes, 2)

	out, err := Fairness{}.Apply(model, vars, Context{
		Workers: workers, ShiftTypes: shiftTypes, Calendar: dailyCalendar(t, 2),
	}, entity.ConstraintConfig{Enabled: true, Weight: 10})
	require.NoError(t, err)
	assert.Empty(t, out.ViolationVars)
}

func TestFairness_RegistersSpreadObjectiveTarget(t *testing.T) {
	workers := []entity.Worker{worker("w1", true), worker("w2", true)}
	shiftTypes := []entity.ShiftType{{ID: "NIGHT", IsUndesirable: true}}
	model, vars := newVars(workers, shiftTypes, 2)

	out, err := Fairness{}.Apply(model, vars, Context{
		Workers: workers, ShiftTypes: shiftTypes, Calendar: dailyCalendar(t, 2),
	}, entity.ConstraintConfig{Enabled: true, Weight: 10})
	require.NoError(t, err)

	spread, ok := out.ViolationVars["fairness_spread"]
	require.True(t, ok)
	assert.Equal(t, TypeObjectiveTarget, out.VariableTypes["fairness_spread"])
	assert.False(t, spread.IsBool)
}

func TestFairness_HardModeForcesEqualSpread(t *testing.T) {
	workers := []entity.Worker{worker("w1", true), worker("w2", true)}
	shiftTypes := []entity.ShiftType{{ID: "NIGHT", IsUndesirable: true}}
	model, vars := newVars(workers, shiftTypes, 2)

	// Exactly one worker covers NIGHT in each period, so one night each
	// (a spread of zero) is reachable.
	for p := 0; p < 2; p++ {
		x1, err := vars.Assign("w1", p, "NIGHT")
		require.NoError(t, err)
		x2, err := vars.Assign("w2", p, "NIGHT")
		require.NoError(t, err)
		model.AddLinearEq(solver.Sum(solver.Bool(x1, 1), solver.Bool(x2, 1)), 1)
	}

	_, err := Fairness{}.Apply(model, vars, Context{
		Workers: workers, ShiftTypes: shiftTypes, Calendar: dailyCalendar(t, 2),
	}, entity.ConstraintConfig{Enabled: true, IsHard: true})
	require.NoError(t, err)

	result := solve(t, model)
	assert.Equal(t, solver.Optimal, result.Status)
}

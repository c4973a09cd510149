package constraint

import (
	"github.com/schedcu/shiftsolver/internal/entity"
	"github.com/schedcu/shiftsolver/internal/modelvars"
	"github.com/schedcu/shiftsolver/internal/solver"
)

// Coverage is hard and always enabled (spec §4.5.1): coverage[p,s] must equal
// workers_required for every period a shift type applies to. It never
// contributes a soft penalty — violation propagates as infeasibility.
type Coverage struct{}

func (Coverage) Name() string { return "coverage" }

func (Coverage) Apply(model solver.Model, vars *modelvars.Vars, ctx Context, config entity.ConstraintConfig) (*Output, error) {
	out := newOutput("coverage", 0, true)

	for p := 0; p < ctx.NumPeriods(); p++ {
		period := ctx.Calendar.Period(p)
		for _, s := range ctx.ShiftTypes {
			if s.ApplicableDays != nil && !periodContainsApplicableDay(ctx, period.Index, &s) {
				continue
			}
			cov, err := vars.Coverage(p, s.ID)
			if err != nil {
				return nil, &entity.CoreInvariantBroken{Description: "coverage: " + err.Error()}
			}
			model.AddLinearEq(solver.Sum(solver.Int(cov, 1)), int64(s.WorkersRequired))
		}
	}

	return out, nil
}

func periodContainsApplicableDay(ctx Context, periodIndex int, s *entity.ShiftType) bool {
	for _, d := range ctx.PeriodDates(periodIndex) {
		if s.AppliesOn(d.Weekday()) {
			return true
		}
	}
	return false
}

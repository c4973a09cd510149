package constraint

import (
	"github.com/schedcu/shiftsolver/internal/entity"
	"github.com/schedcu/shiftsolver/internal/modelvars"
	"github.com/schedcu/shiftsolver/internal/solver"
)

// Availability is hard (spec §4.5.3): for every Unavailable record, every
// period it overlaps is zeroed out — either one named shift type or every
// shift type when the record names none.
type Availability struct{}

func (Availability) Name() string { return "availability" }

func (Availability) Apply(model solver.Model, vars *modelvars.Vars, ctx Context, config entity.ConstraintConfig) (*Output, error) {
	out := newOutput("availability", 0, true)

	for _, a := range ctx.Availabilities {
		if a.Type != entity.Unavailable {
			continue
		}
		for p := 0; p < ctx.NumPeriods(); p++ {
			if !periodOverlaps(ctx, p, &a) {
				continue
			}

			if a.ShiftTypeID != nil {
				x, err := vars.Assign(a.WorkerID, p, *a.ShiftTypeID)
				if err != nil {
					return nil, &entity.CoreInvariantBroken{Description: "availability: " + err.Error()}
				}
				model.AddLinearEq(solver.Sum(solver.Bool(x, 1)), 0)
				continue
			}

			var terms []solver.Term
			for _, s := range ctx.ShiftTypes {
				x, err := vars.Assign(a.WorkerID, p, s.ID)
				if err != nil {
					return nil, &entity.CoreInvariantBroken{Description: "availability: " + err.Error()}
				}
				terms = append(terms, solver.Bool(x, 1))
			}
			model.AddLinearEq(solver.Sum(terms...), 0)
		}
	}

	return out, nil
}

func periodOverlaps(ctx Context, periodIndex int, a *entity.Availability) bool {
	for _, d := range ctx.PeriodDates(periodIndex) {
		if a.CoversDate(d) {
			return true
		}
	}
	return false
}

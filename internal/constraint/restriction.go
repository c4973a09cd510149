package constraint

import (
	"github.com/schedcu/shiftsolver/internal/entity"
	"github.com/schedcu/shiftsolver/internal/modelvars"
	"github.com/schedcu/shiftsolver/internal/solver"
)

// WorkerRestriction is hard (spec §4.5.2): a worker restricted from a shift
// type must never be assigned x[w,p,s] = 1 in any period.
type WorkerRestriction struct{}

func (WorkerRestriction) Name() string { return "worker_restriction" }

func (WorkerRestriction) Apply(model solver.Model, vars *modelvars.Vars, ctx Context, config entity.ConstraintConfig) (*Output, error) {
	out := newOutput("worker_restriction", 0, true)

	for _, w := range ctx.Workers {
		for _, s := range ctx.ShiftTypes {
			if !w.IsRestrictedFrom(s.ID) {
				continue
			}
			for p := 0; p < ctx.NumPeriods(); p++ {
				x, err := vars.Assign(w.ID, p, s.ID)
				if err != nil {
					return nil, &entity.CoreInvariantBroken{Description: "worker_restriction: " + err.Error()}
				}
				model.AddLinearEq(solver.Sum(solver.Bool(x, 1)), 0)
			}
		}
	}

	return out, nil
}

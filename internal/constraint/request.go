package constraint

import (
	"fmt"

	"github.com/schedcu/shiftsolver/internal/entity"
	"github.com/schedcu/shiftsolver/internal/modelvars"
	"github.com/schedcu/shiftsolver/internal/solver"
)

// Request encodes each worker's per-cell positive/negative preference (spec
// §4.5.6). Soft by default; hard when config.IsHard. Auto-enable policy
// (requests present and no explicit config) lives in the registry, not here.
type Request struct{}

func (Request) Name() string { return "request" }

func (Request) Apply(model solver.Model, vars *modelvars.Vars, ctx Context, config entity.ConstraintConfig) (*Output, error) {
	out := newOutput("request", config.Weight, config.IsHard)

	for i, r := range ctx.Requests {
		x, err := vars.Assign(r.WorkerID, r.PeriodIndex, r.ShiftTypeID)
		if err != nil {
			return nil, &entity.CoreInvariantBroken{Description: "request: " + err.Error()}
		}

		if config.IsHard {
			if r.IsPositive {
				model.AddLinearGE(solver.Sum(solver.Bool(x, 1)), 1)
			} else {
				model.AddLinearEq(solver.Sum(solver.Bool(x, 1)), 0)
			}
			continue
		}

		v := model.NewBool()
		name := fmt.Sprintf("req_viol_%s_%s_p%d_%d", r.WorkerID, r.ShiftTypeID, r.PeriodIndex, i)

		// v = 1 - x when positive (violated iff not assigned); v = x when
		// negative (violated iff assigned). Both are plain linear equalities,
		// not general reified implications, because x is already boolean.
		if r.IsPositive {
			model.AddLinearEq(solver.Sum(solver.Bool(x, 1), solver.Bool(v, 1)), 1)
		} else {
			model.AddLinearEq(solver.Sum(solver.Bool(x, 1), solver.Bool(v, -1)), 0)
		}

		out.registerBool(name, v, TypeViolation)
		out.Priorities[name] = r.Priority
	}

	return out, nil
}

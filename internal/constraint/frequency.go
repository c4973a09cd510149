package constraint

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/schedcu/shiftsolver/internal/entity"
	"github.com/schedcu/shiftsolver/internal/modelvars"
	"github.com/schedcu/shiftsolver/internal/solver"
)

// Frequency requires every worker to work at least one shift of any kind in
// every sliding window of N+1 periods (spec §4.5.5). Soft by default.
type Frequency struct{}

func (Frequency) Name() string { return "frequency" }

func (Frequency) Apply(model solver.Model, vars *modelvars.Vars, ctx Context, config entity.ConstraintConfig) (*Output, error) {
	out := newOutput("frequency", config.Weight, config.IsHard)

	n := config.IntParam("default_max_periods_between", 4)
	windowSize := n + 1

	windows := slidingWindows(ctx.NumPeriods(), windowSize)
	if len(windows) == 0 {
		zap.S().Warnw("frequency: window larger than horizon, skipping",
			"window_size", windowSize, "num_periods", ctx.NumPeriods())
		return out, nil
	}

	for _, w := range ctx.Workers {
		for _, p := range windows {
			var terms []solver.Term
			for i := p; i < p+windowSize; i++ {
				for _, s := range ctx.ShiftTypes {
					x, err := vars.Assign(w.ID, i, s.ID)
					if err != nil {
						return nil, &entity.CoreInvariantBroken{Description: "frequency: " + err.Error()}
					}
					terms = append(terms, solver.Bool(x, 1))
				}
			}

			if config.IsHard {
				model.AddLinearGE(solver.Sum(terms...), 1)
				continue
			}

			v := model.NewBool()
			name := fmt.Sprintf("freq_viol_%s_w%d", w.ID, p)
			terms = append(terms, solver.Bool(v, 1))
			model.AddLinearGE(solver.Sum(terms...), 1)
			out.registerBool(name, v, TypeViolation)
		}
	}

	return out, nil
}

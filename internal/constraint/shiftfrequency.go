package constraint

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/schedcu/shiftsolver/internal/entity"
	"github.com/schedcu/shiftsolver/internal/modelvars"
	"github.com/schedcu/shiftsolver/internal/solver"
)

// ShiftFrequency enforces each ShiftFrequencyRequirement's sliding-window
// coverage: worker w must draw at least one shift from S_R in every window
// of N_R periods (spec §4.5.9). Soft or hard per the constraint's config,
// which applies to every requirement alike.
type ShiftFrequency struct{}

func (ShiftFrequency) Name() string { return "shift_frequency" }

func (ShiftFrequency) Apply(model solver.Model, vars *modelvars.Vars, ctx Context, config entity.ConstraintConfig) (*Output, error) {
	out := newOutput("shift_frequency", config.Weight, config.IsHard)

	for _, req := range ctx.ShiftFrequencyRequirements {
		windowSize := req.MaxPeriodsBetween
		windows := slidingWindows(ctx.NumPeriods(), windowSize)
		if len(windows) == 0 {
			zap.S().Warnw("shift_frequency: window larger than horizon, skipping",
				"worker_id", req.WorkerID, "window_size", windowSize, "num_periods", ctx.NumPeriods())
			continue
		}

		for _, p := range windows {
			var terms []solver.Term
			for i := p; i < p+windowSize; i++ {
				for shiftTypeID := range req.ShiftTypes {
					x, err := vars.Assign(req.WorkerID, i, shiftTypeID)
					if err != nil {
						return nil, &entity.CoreInvariantBroken{Description: "shift_frequency: " + err.Error()}
					}
					terms = append(terms, solver.Bool(x, 1))
				}
			}

			if config.IsHard {
				model.AddLinearGE(solver.Sum(terms...), 1)
				continue
			}

			v := model.NewBool()
			name := fmt.Sprintf("sf_viol_%s_w%d", req.WorkerID, p)
			terms = append(terms, solver.Bool(v, 1))
			model.AddLinearGE(solver.Sum(terms...), 1)
			out.registerBool(name, v, TypeViolation)
		}
	}

	return out, nil
}

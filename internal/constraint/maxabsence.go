package constraint

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/schedcu/shiftsolver/internal/entity"
	"github.com/schedcu/shiftsolver/internal/modelvars"
	"github.com/schedcu/shiftsolver/internal/solver"
)

// MaxAbsence penalizes a worker going more than M consecutive periods
// without a given shift type, optionally filtered to a subset (spec
// §4.5.8). Same sliding-window/oversize handling as Frequency.
type MaxAbsence struct{}

func (MaxAbsence) Name() string { return "max_absence" }

func (MaxAbsence) Apply(model solver.Model, vars *modelvars.Vars, ctx Context, config entity.ConstraintConfig) (*Output, error) {
	out := newOutput("max_absence", config.Weight, config.IsHard)

	m := config.IntParam("max_periods_absent", 4)
	windowSize := m + 1

	windows := slidingWindows(ctx.NumPeriods(), windowSize)
	if len(windows) == 0 {
		zap.S().Warnw("max_absence: window larger than horizon, skipping",
			"window_size", windowSize, "num_periods", ctx.NumPeriods())
		return out, nil
	}

	shiftTypeIDs := config.StringSliceParam("shift_type_ids", nil)
	shiftFilter := func(id string) bool {
		if len(shiftTypeIDs) == 0 {
			return true
		}
		for _, s := range shiftTypeIDs {
			if s == id {
				return true
			}
		}
		return false
	}

	for _, w := range ctx.Workers {
		for _, s := range ctx.ShiftTypes {
			if !shiftFilter(s.ID) {
				continue
			}
			for _, p := range windows {
				var terms []solver.Term
				for i := p; i < p+windowSize; i++ {
					x, err := vars.Assign(w.ID, i, s.ID)
					if err != nil {
						return nil, &entity.CoreInvariantBroken{Description: "max_absence: " + err.Error()}
					}
					terms = append(terms, solver.Bool(x, 1))
				}

				if config.IsHard {
					model.AddLinearGE(solver.Sum(terms...), 1)
					continue
				}

				v := model.NewBool()
				name := fmt.Sprintf("absence_viol_%s_%s_w%d", w.ID, s.ID, p)
				terms = append(terms, solver.Bool(v, 1))
				model.AddLinearGE(solver.Sum(terms...), 1)
				out.registerBool(name, v, TypeViolation)
			}
		}
	}

	return out, nil
}

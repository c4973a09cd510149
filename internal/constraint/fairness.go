package constraint

import (
	"go.uber.org/zap"

	"github.com/schedcu/shiftsolver/internal/entity"
	"github.com/schedcu/shiftsolver/internal/modelvars"
	"github.com/schedcu/shiftsolver/internal/solver"
)

// Fairness balances workload of undesirable shifts across active workers
// (spec §4.5.4). Soft or hard depending on config.
type Fairness struct{}

func (Fairness) Name() string { return "fairness" }

func (Fairness) Apply(model solver.Model, vars *modelvars.Vars, ctx Context, config entity.ConstraintConfig) (*Output, error) {
	out := newOutput("fairness", config.Weight, config.IsHard)

	active := ctx.ActiveWorkers()
	if len(active) < 2 {
		zap.S().Debugw("fairness: fewer than 2 active workers, skipping", "active_workers", len(active))
		return out, nil
	}

	category := selectedCategories(ctx, config)
	if len(category) == 0 {
		return out, nil
	}

	domain := int64(ctx.NumPeriods() * len(category))

	uw := make(map[string]solver.IntVar, len(active))
	for _, w := range active {
		u := model.NewInt(0, domain)
		uw[w.ID] = u

		var terms []solver.Term
		for p := 0; p < ctx.NumPeriods(); p++ {
			for _, s := range ctx.ShiftTypes {
				if _, ok := category[s.ID]; !ok {
					continue
				}
				x, err := vars.Assign(w.ID, p, s.ID)
				if err != nil {
					return nil, &entity.CoreInvariantBroken{Description: "fairness: " + err.Error()}
				}
				terms = append(terms, solver.Bool(x, 1))
			}
		}
		terms = append(terms, solver.Int(u, -1))
		model.AddLinearEq(solver.Sum(terms...), 0)
	}

	maxU := model.NewInt(0, domain)
	minU := model.NewInt(0, domain)
	spread := model.NewInt(0, domain)

	for _, w := range active {
		u := uw[w.ID]
		model.AddLinearLE(solver.Sum(solver.Int(u, 1), solver.Int(maxU, -1)), 0)
		model.AddLinearGE(solver.Sum(solver.Int(u, 1), solver.Int(minU, -1)), 0)
	}
	model.AddLinearEq(solver.Sum(solver.Int(maxU, 1), solver.Int(minU, -1), solver.Int(spread, -1)), 0)

	out.registerInt("fairness_spread", spread, TypeObjectiveTarget)
	out.registerInt("fairness_max_u", maxU, TypeAuxiliary)
	out.registerInt("fairness_min_u", minU, TypeAuxiliary)

	if config.IsHard {
		model.AddLinearEq(solver.Sum(solver.Int(spread, 1)), 0)
	}

	return out, nil
}

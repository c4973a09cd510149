package constraint

import (
	"fmt"

	"github.com/schedcu/shiftsolver/internal/entity"
	"github.com/schedcu/shiftsolver/internal/modelvars"
	"github.com/schedcu/shiftsolver/internal/solver"
)

// Sequence penalizes a worker being assigned a shift in the selected
// categories on two consecutive periods (spec §4.5.7).
type Sequence struct{}

func (Sequence) Name() string { return "sequence" }

func (Sequence) Apply(model solver.Model, vars *modelvars.Vars, ctx Context, config entity.ConstraintConfig) (*Output, error) {
	out := newOutput("sequence", config.Weight, config.IsHard)

	categories := config.StringSliceParam("categories", nil)
	if len(categories) == 0 {
		return out, nil
	}
	wanted := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		wanted[c] = struct{}{}
	}

	periodTerm := func(w entity.Worker, p int) ([]solver.Term, error) {
		var terms []solver.Term
		for _, s := range ctx.ShiftTypes {
			if _, ok := wanted[s.Category]; !ok {
				continue
			}
			x, err := vars.Assign(w.ID, p, s.ID)
			if err != nil {
				return nil, err
			}
			terms = append(terms, solver.Bool(x, 1))
		}
		return terms, nil
	}

	for _, w := range ctx.Workers {
		for p := 0; p+1 < ctx.NumPeriods(); p++ {
			aTerms, err := periodTerm(w, p)
			if err != nil {
				return nil, &entity.CoreInvariantBroken{Description: "sequence: " + err.Error()}
			}
			bTerms, err := periodTerm(w, p+1)
			if err != nil {
				return nil, &entity.CoreInvariantBroken{Description: "sequence: " + err.Error()}
			}

			aSum := model.NewInt(0, int64(len(aTerms)))
			bSum := model.NewInt(0, int64(len(bTerms)))
			model.AddLinearEq(solver.Sum(append(append([]solver.Term{}, aTerms...), solver.Int(aSum, -1))...), 0)
			model.AddLinearEq(solver.Sum(append(append([]solver.Term{}, bTerms...), solver.Int(bSum, -1))...), 0)

			c := model.NewBool()
			// c >= a_p + a_{p+1} - 1  <=>  a_p + a_{p+1} - c <= 1
			model.AddLinearLE(solver.Sum(solver.Int(aSum, 1), solver.Int(bSum, 1), solver.Bool(c, -1)), 1)
			// c <= a_p, c <= a_{p+1}
			model.AddLinearLE(solver.Sum(solver.Bool(c, 1), solver.Int(aSum, -1)), 0)
			model.AddLinearLE(solver.Sum(solver.Bool(c, 1), solver.Int(bSum, -1)), 0)

			name := fmt.Sprintf("seq_viol_%s_p%d", w.ID, p)
			out.registerBool(name, c, TypeViolation)
		}
	}

	return out, nil
}

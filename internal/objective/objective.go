// Package objective assembles the solver's single minimize(...) call from
// every enabled soft constraint's violation variables (spec §4.6).
package objective

import (
	"github.com/schedcu/shiftsolver/internal/constraint"
	"github.com/schedcu/shiftsolver/internal/solver"
)

// Build collects terms from each constraint's Output and issues exactly one
// Minimize call, weighted per spec §4.6:
//   - violation:        coef(v) = priority(v) if declared, else 1
//   - objective_target: coef(v) = 1 (the variable IS the penalty)
//   - auxiliary:        excluded (coef 0)
// If outputs is empty or contributes nothing, minimizes the constant 0.
func Build(model solver.Model, outputs []*constraint.Output) {
	var terms []solver.Term

	for _, out := range outputs {
		if out.Weight == 0 {
			continue
		}
		for name, v := range out.ViolationVars {
			switch out.VariableTypes[name] {
			case constraint.TypeViolation:
				coef := int64(out.Weight)
				if priority, ok := out.Priorities[name]; ok {
					coef *= int64(priority)
				}
				terms = append(terms, objTerm(v, coef))
			case constraint.TypeObjectiveTarget:
				terms = append(terms, objTerm(v, int64(out.Weight)))
			case constraint.TypeAuxiliary:
				// excluded from the objective; kept only for introspection.
			}
		}
	}

	model.Minimize(solver.Sum(terms...))
}

func objTerm(v constraint.ObjectiveVar, coefficient int64) solver.Term {
	if v.IsBool {
		return solver.Bool(v.Bool, coefficient)
	}
	return solver.Int(v.Int, coefficient)
}

package orchestrator

import (
	"github.com/schedcu/shiftsolver/internal/constraint"
	"github.com/schedcu/shiftsolver/internal/entity"
	"github.com/schedcu/shiftsolver/internal/modelvars"
	"github.com/schedcu/shiftsolver/internal/solver"
)

// extractSchedule reads every x[w,p,s] out of a solved model and assembles
// the Schedule the caller sees (spec §4.9).
func extractSchedule(model solver.Model, vars *modelvars.Vars, in Input, status entity.SolveStatus, res solver.Result) *entity.Schedule {
	schedule := entity.NewSchedule(in.Workers, in.ShiftTypes, string(in.Calendar.PeriodType()), in.Calendar.NumPeriods())
	schedule.Status = status
	schedule.ObjectiveValue = res.ObjectiveValue
	schedule.SolveTimeSeconds = res.WallTime

	for p := 0; p < in.Calendar.NumPeriods(); p++ {
		period := in.Calendar.Period(p)
		schedule.Periods[p].StartDate = period.StartDate
		schedule.Periods[p].EndDate = period.EndDate

		dates := in.Calendar.DatesInPeriod(p)
		date := period.StartDate
		if len(dates) > 0 {
			date = dates[0]
		}

		for _, w := range in.Workers {
			for _, s := range in.ShiftTypes {
				x, err := vars.Assign(w.ID, p, s.ID)
				if err != nil {
					continue
				}
				if model.ValueOf(x) == 1 {
					schedule.AddAssignment(p, entity.Assignment{WorkerID: w.ID, ShiftTypeID: s.ID, Date: date})
				}
			}
		}
	}

	return schedule
}

// extractStats summarizes, per constraint, how many violation variables came
// out true and the weighted penalty they contributed (spec §4.9).
func extractStats(model solver.Model, outputs []*constraint.Output) map[string]entity.ConstraintStats {
	stats := make(map[string]entity.ConstraintStats, len(outputs))

	for _, out := range outputs {
		activeViolations := 0
		weightedPenalty := 0.0
		var worstOffenders []string

		for name, v := range out.ViolationVars {
			varType := out.VariableTypes[name]
			if varType == constraint.TypeAuxiliary {
				continue
			}

			var value int64
			if v.IsBool {
				value = model.ValueOf(v.Bool)
			} else {
				value = model.ValueOf(v.Int)
			}
			if value == 0 {
				continue
			}

			if varType == constraint.TypeViolation {
				activeViolations++
				if len(worstOffenders) < 10 {
					worstOffenders = append(worstOffenders, name)
				}
			}

			coef := int64(out.Weight)
			if priority, ok := out.Priorities[name]; ok {
				coef *= int64(priority)
			}
			weightedPenalty += float64(coef) * float64(value)
		}

		stats[out.Name] = entity.ConstraintStats{
			ConstraintName:   out.Name,
			ActiveViolations: activeViolations,
			WeightedPenalty:  weightedPenalty,
			WorstOffenders:   worstOffenders,
		}
	}

	return stats
}

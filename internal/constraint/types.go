// Package constraint holds the shift-scheduling constraint library (spec
// §4.5) and the static registry of their defaults (spec §4.7). Every
// constraint is written against the abstract solver.Model and
// modelvars.Vars so the same code runs against the CP-SAT backend in
// production and the brute-force backend in tests.
package constraint

import (
	"time"

	"github.com/schedcu/shiftsolver/internal/calendar"
	"github.com/schedcu/shiftsolver/internal/entity"
	"github.com/schedcu/shiftsolver/internal/modelvars"
	"github.com/schedcu/shiftsolver/internal/solver"
)

// VarType classifies a violation variable for the objective builder (spec §4.6).
type VarType string

const (
	TypeViolation       VarType = "violation"
	TypeObjectiveTarget VarType = "objective_target"
	TypeAuxiliary       VarType = "auxiliary"
)

// Context carries the full immutable input set a constraint needs (spec §4.5).
type Context struct {
	Workers                    []entity.Worker
	ShiftTypes                 []entity.ShiftType
	Calendar                   *calendar.Calendar
	Availabilities             []entity.Availability
	Requests                   []entity.SchedulingRequest
	ShiftFrequencyRequirements []entity.ShiftFrequencyRequirement
}

// NumPeriods is a convenience accessor for P (spec §4.5).
func (c Context) NumPeriods() int { return c.Calendar.NumPeriods() }

// PeriodDates returns the dates in period p.
func (c Context) PeriodDates(p int) []time.Time { return c.Calendar.DatesInPeriod(p) }

// ActiveWorkers returns only workers with IsActive set.
func (c Context) ActiveWorkers() []entity.Worker {
	var out []entity.Worker
	for _, w := range c.Workers {
		if w.IsActive {
			out = append(out, w)
		}
	}
	return out
}

// ObjectiveVar is a handle to either a boolean violation literal or a
// bounded-integer objective target — fairness's spread is the latter, every
// other constraint's penalty variable is the former (spec §4.6).
type ObjectiveVar struct {
	IsBool bool
	Bool   solver.BoolVar
	Int    solver.IntVar
}

func boolObjVar(v solver.BoolVar) ObjectiveVar { return ObjectiveVar{IsBool: true, Bool: v} }
func intObjVar(v solver.IntVar) ObjectiveVar   { return ObjectiveVar{IsBool: false, Int: v} }

// Output is what one constraint's Apply call contributes to the objective
// builder: its violation variables, their type metadata, and (for Request)
// per-variable priorities (spec §4.5, §4.6).
type Output struct {
	Name          string
	Weight        int
	IsHard        bool
	ViolationVars map[string]ObjectiveVar
	VariableTypes map[string]VarType
	Priorities    map[string]int
}

func newOutput(name string, weight int, isHard bool) *Output {
	return &Output{
		Name:          name,
		Weight:        weight,
		IsHard:        isHard,
		ViolationVars: make(map[string]ObjectiveVar),
		VariableTypes: make(map[string]VarType),
		Priorities:    make(map[string]int),
	}
}

func (o *Output) registerBool(name string, v solver.BoolVar, t VarType) {
	o.ViolationVars[name] = boolObjVar(v)
	o.VariableTypes[name] = t
}

func (o *Output) registerInt(name string, v solver.IntVar, t VarType) {
	o.ViolationVars[name] = intObjVar(v)
	o.VariableTypes[name] = t
}

// Constraint is one entry in the registry (spec §4.5).
type Constraint interface {
	Name() string
	Apply(model solver.Model, vars *modelvars.Vars, ctx Context, config entity.ConstraintConfig) (*Output, error)
}

// Package solver defines the abstract constraint-programming interface the
// core depends on (spec §4.2). Any backend supporting boolean variables,
// bounded integers, linear equalities/inequalities, reified implications,
// and a linear minimization objective qualifies; see internal/solver/ortoolscp
// for the production backend and internal/solver/brute for the test backend.
package solver

import "context"

// BoolVar is an opaque handle to a boolean decision variable.
type BoolVar struct{ id int }

// IntVar is an opaque handle to a bounded integer variable.
type IntVar struct{ id int }

// Term is one coefficient*variable addend of a linear expression. VarID is
// either a BoolVar.id or an IntVar.id; IsBoolVar disambiguates.
type Term struct {
	VarID       int
	IsBoolVar   bool
	Coefficient int64
}

// LinearExpr is a sum of Terms plus a constant.
type LinearExpr struct {
	Terms    []Term
	Constant int64
}

// Status is the outcome of a solve call (spec §4.2, §6).
type Status string

const (
	Optimal            Status = "OPTIMAL"
	Feasible           Status = "FEASIBLE"
	Infeasible         Status = "INFEASIBLE"
	Unknown            Status = "UNKNOWN"
	PreSolveInfeasible Status = "PRE_SOLVE_INFEASIBLE"
)

// Params configures one solve call (spec §6).
type Params struct {
	TimeLimitSeconds    int
	QuickSolveSeconds   int
	NumSearchWorkers    int
	LogSearchProgress   bool
	OptimalityTolerance float64
}

// Result is what a backend returns from Solve.
type Result struct {
	Status         Status
	ObjectiveValue float64
	WallTime       float64
}

// Model is the abstract solver interface the core's constraint library and
// orchestrator are written against (spec §4.2).
type Model interface {
	NewBool() BoolVar
	NewInt(lo, hi int64) IntVar

	AddLinearEq(expr LinearExpr, rhs int64)
	AddLinearLE(expr LinearExpr, rhs int64)
	AddLinearGE(expr LinearExpr, rhs int64)

	// AddImplication adds a reified/conditional statement equivalent to
	// "expr OP rhs holds if literal is true". op is one of "=", "<=", ">=".
	AddImplication(literal BoolVar, op string, expr LinearExpr, rhs int64)

	Minimize(expr LinearExpr)

	Solve(ctx context.Context, params Params) (Result, error)

	// ValueOf reads back a variable's value after a solve with status
	// Optimal or Feasible.
	ValueOf(v interface{}) int64
}

// Bool returns a Term for a BoolVar with the given coefficient.
func Bool(v BoolVar, coefficient int64) Term {
	return Term{VarID: v.id, IsBoolVar: true, Coefficient: coefficient}
}

// Int returns a Term for an IntVar with the given coefficient.
func Int(v IntVar, coefficient int64) Term {
	return Term{VarID: v.id, IsBoolVar: false, Coefficient: coefficient}
}

// Sum builds a LinearExpr from terms with no constant.
func Sum(terms ...Term) LinearExpr {
	return LinearExpr{Terms: terms}
}

// NewBoolVar is a constructor for tests and backends that need to mint
// handles outside of a Model (e.g. when replaying a cached allocation).
func NewBoolVar(id int) BoolVar { return BoolVar{id: id} }

// NewIntVar is the IntVar equivalent of NewBoolVar.
func NewIntVar(id int) IntVar { return IntVar{id: id} }

// ID exposes the opaque handle's identity for backends keyed on it.
func (v BoolVar) ID() int { return v.id }

// ID exposes the opaque handle's identity for backends keyed on it.
func (v IntVar) ID() int { return v.id }

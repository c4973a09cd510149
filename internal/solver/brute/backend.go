// Package brute is a deterministic, pure, stdlib-only solver.Model backend
// used only by tests. It exhaustively searches small models via backtracking
// — not a substitute for a real CP-SAT backend. Every constraint and
// orchestrator test in this repository runs against it, the frequency/
// shift-frequency/max-absence window tests included; only
// internal/solver/ortoolscp's own tests exercise CP-SAT. Grounded on the no-side-effects,
// single-purpose style of internal/service/coverage/algorithm.go in this
// lineage's teacher tree.
package brute

import (
	"context"
	"time"

	"github.com/schedcu/shiftsolver/internal/entity"
	"github.com/schedcu/shiftsolver/internal/solver"
)

type varDesc struct {
	lo, hi int64
}

type constraint struct {
	expr      solver.LinearExpr
	op        string // "=", "<=", ">="
	rhs       int64
	enforceIf *solver.BoolVar
}

// Backend is an in-memory brute-force solver.Model implementation.
type Backend struct {
	boolVars []varDesc
	intVars  []varDesc

	constraints []constraint
	objective   solver.LinearExpr

	assignBool []int64
	assignInt  []int64
	bestBool   []int64
	bestInt    []int64
	bestObj    int64
	haveBest   bool

	deadline time.Time
	nodes    int
}

// New creates an empty brute-force model.
func New() *Backend {
	return &Backend{}
}

func (b *Backend) NewBool() solver.BoolVar {
	b.boolVars = append(b.boolVars, varDesc{0, 1})
	return solver.NewBoolVar(len(b.boolVars) - 1)
}

func (b *Backend) NewInt(lo, hi int64) solver.IntVar {
	b.intVars = append(b.intVars, varDesc{lo, hi})
	return solver.NewIntVar(len(b.intVars) - 1)
}

func (b *Backend) AddLinearEq(expr solver.LinearExpr, rhs int64) {
	b.constraints = append(b.constraints, constraint{expr: expr, op: "=", rhs: rhs})
}

func (b *Backend) AddLinearLE(expr solver.LinearExpr, rhs int64) {
	b.constraints = append(b.constraints, constraint{expr: expr, op: "<=", rhs: rhs})
}

func (b *Backend) AddLinearGE(expr solver.LinearExpr, rhs int64) {
	b.constraints = append(b.constraints, constraint{expr: expr, op: ">=", rhs: rhs})
}

func (b *Backend) AddImplication(literal solver.BoolVar, op string, expr solver.LinearExpr, rhs int64) {
	lit := literal
	b.constraints = append(b.constraints, constraint{expr: expr, op: op, rhs: rhs, enforceIf: &lit})
}

func (b *Backend) Minimize(expr solver.LinearExpr) {
	b.objective = expr
}

func (b *Backend) eval(expr solver.LinearExpr) int64 {
	total := expr.Constant
	for _, t := range expr.Terms {
		if t.IsBoolVar {
			total += t.Coefficient * b.assignBool[t.VarID]
		} else {
			total += t.Coefficient * b.assignInt[t.VarID]
		}
	}
	return total
}

func (b *Backend) satisfied(c constraint) bool {
	if c.enforceIf != nil && b.assignBool[c.enforceIf.ID()] == 0 {
		return true
	}
	val := b.eval(c.expr)
	switch c.op {
	case "=":
		return val == c.rhs
	case "<=":
		return val <= c.rhs
	case ">=":
		return val >= c.rhs
	default:
		return false
	}
}

func (b *Backend) allSatisfied() bool {
	for _, c := range b.constraints {
		if !b.satisfied(c) {
			return false
		}
	}
	return true
}

// Solve performs an exhaustive depth-first search over every bool, then
// every int variable, tracking the best (lowest-objective) fully satisfying
// assignment found before the deadline.
func (b *Backend) Solve(ctx context.Context, params solver.Params) (solver.Result, error) {
	start := time.Now()
	limit := params.TimeLimitSeconds
	if params.QuickSolveSeconds > 0 {
		limit = params.QuickSolveSeconds
	}
	if limit <= 0 {
		limit = 30
	}
	b.deadline = start.Add(time.Duration(limit) * time.Second)

	b.assignBool = make([]int64, len(b.boolVars))
	b.assignInt = make([]int64, len(b.intVars))
	b.haveBest = false

	timedOut := b.search(ctx, 0, 0)

	wall := time.Since(start).Seconds()
	if !b.haveBest {
		if timedOut {
			return solver.Result{Status: solver.Unknown, WallTime: wall}, nil
		}
		return solver.Result{Status: solver.Infeasible, WallTime: wall}, nil
	}
	b.assignBool = b.bestBool
	b.assignInt = b.bestInt

	status := solver.Optimal
	if timedOut {
		status = solver.Feasible
	}
	return solver.Result{Status: status, ObjectiveValue: float64(b.bestObj), WallTime: wall}, nil
}

// search explores bool vars (stage 0) then int vars (stage 1), returning
// true if the deadline or context was hit before exhausting the tree.
func (b *Backend) search(ctx context.Context, stage, index int) bool {
	b.nodes++
	if b.nodes%2048 == 0 {
		if time.Now().After(b.deadline) {
			return true
		}
		select {
		case <-ctx.Done():
			return true
		default:
		}
	}

	if stage == 0 && index == len(b.boolVars) {
		stage, index = 1, 0
	}

	if stage == 1 && index == len(b.intVars) {
		if !b.allSatisfied() {
			return false
		}
		obj := b.eval(b.objective)
		if !b.haveBest || obj < b.bestObj {
			b.haveBest = true
			b.bestObj = obj
			b.bestBool = append([]int64(nil), b.assignBool...)
			b.bestInt = append([]int64(nil), b.assignInt...)
		}
		return false
	}

	if stage == 0 {
		for v := b.boolVars[index].lo; v <= b.boolVars[index].hi; v++ {
			b.assignBool[index] = v
			if timedOut := b.search(ctx, 0, index+1); timedOut {
				return true
			}
		}
		return false
	}

	for v := b.intVars[index].lo; v <= b.intVars[index].hi; v++ {
		b.assignInt[index] = v
		if timedOut := b.search(ctx, 1, index+1); timedOut {
			return true
		}
	}
	return false
}

func (b *Backend) ValueOf(v interface{}) int64 {
	switch tv := v.(type) {
	case solver.BoolVar:
		return b.assignBool[tv.ID()]
	case solver.IntVar:
		return b.assignInt[tv.ID()]
	default:
		panic(&entity.CoreInvariantBroken{Description: "brute backend: ValueOf called with an unrecognized variable handle"})
	}
}

// Package ortoolscp is the production solver.Model backend: it wraps Google
// OR-Tools' CP-SAT Go bindings (github.com/google/or-tools/ortools/sat/go/cpmodel),
// the only constraint-programming library found anywhere in this project's
// retrieval corpus and the one directly in-domain (the corpus's
// nurses_sat.go sample solves a structurally identical shift-assignment
// problem). Variable allocation and constraint emission mirror that
// sample's style: NewBoolVar/NewIntVar, NewLinearExpr + AddTerm, and
// AddEquality/AddLessOrEqual/AddGreaterOrEqual with OnlyEnforceIf for
// reified implications.
package ortoolscp

import (
	"context"
	"fmt"
	"time"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	sppb "github.com/google/or-tools/ortools/sat/proto/sat"

	"github.com/schedcu/shiftsolver/internal/entity"
	"github.com/schedcu/shiftsolver/internal/solver"
)

// Backend implements solver.Model against a CP-SAT model builder.
type Backend struct {
	builder *cpmodel.CpModelBuilder

	boolVars []cpmodel.BoolVar
	intVars  []cpmodel.IntVar

	response interface {
		GetStatus() cmpbStatus
	}
	rawResponse *cpResponse
}

// cmpbStatus and cpResponse are narrow local aliases kept so this file reads
// against the CP-SAT proto surface without importing it under a dozen names;
// the concrete types come from the cpmodel package's Solve return value.
type cmpbStatus = cpmodel.CpSolverStatus
type cpResponse = cpmodel.CpSolverResponse

// New creates a fresh Backend with an empty CP-SAT model.
func New() *Backend {
	return &Backend{builder: cpmodel.NewCpModelBuilder()}
}

func (b *Backend) NewBool() solver.BoolVar {
	bv := b.builder.NewBoolVar().WithName(fmt.Sprintf("b%d", len(b.boolVars)))
	b.boolVars = append(b.boolVars, bv)
	return solver.NewBoolVar(len(b.boolVars) - 1)
}

func (b *Backend) NewInt(lo, hi int64) solver.IntVar {
	iv := b.builder.NewIntVar(lo, hi).WithName(fmt.Sprintf("i%d", len(b.intVars)))
	b.intVars = append(b.intVars, iv)
	return solver.NewIntVar(len(b.intVars) - 1)
}

func (b *Backend) linearArgument(expr solver.LinearExpr) cpmodel.LinearArgument {
	sum := cpmodel.NewLinearExpr()
	for _, t := range expr.Terms {
		if t.IsBoolVar {
			sum = sum.AddTerm(b.boolVars[t.VarID], t.Coefficient)
		} else {
			sum = sum.AddTerm(b.intVars[t.VarID], t.Coefficient)
		}
	}
	if expr.Constant != 0 {
		sum = sum.AddConstant(expr.Constant)
	}
	return sum
}

func (b *Backend) AddLinearEq(expr solver.LinearExpr, rhs int64) {
	b.builder.AddEquality(b.linearArgument(expr), cpmodel.NewConstant(rhs))
}

func (b *Backend) AddLinearLE(expr solver.LinearExpr, rhs int64) {
	b.builder.AddLessOrEqual(b.linearArgument(expr), cpmodel.NewConstant(rhs))
}

func (b *Backend) AddLinearGE(expr solver.LinearExpr, rhs int64) {
	b.builder.AddGreaterOrEqual(b.linearArgument(expr), cpmodel.NewConstant(rhs))
}

func (b *Backend) AddImplication(literal solver.BoolVar, op string, expr solver.LinearExpr, rhs int64) {
	arg := b.linearArgument(expr)
	lit := b.boolVars[literal.ID()]

	var constraint cpmodel.Constraint
	switch op {
	case "=":
		constraint = b.builder.AddEquality(arg, cpmodel.NewConstant(rhs))
	case "<=":
		constraint = b.builder.AddLessOrEqual(arg, cpmodel.NewConstant(rhs))
	case ">=":
		constraint = b.builder.AddGreaterOrEqual(arg, cpmodel.NewConstant(rhs))
	default:
		panic(fmt.Sprintf("ortoolscp: unsupported implication operator %q", op))
	}
	constraint.OnlyEnforceIf(lit)
}

func (b *Backend) Minimize(expr solver.LinearExpr) {
	b.builder.Minimize(b.linearArgument(expr))
}

func (b *Backend) Solve(ctx context.Context, params solver.Params) (solver.Result, error) {
	model, err := b.builder.Model()
	if err != nil {
		return solver.Result{}, &entity.BackendError{Message: "failed to instantiate CP model", Cause: err}
	}

	limit := params.TimeLimitSeconds
	if params.QuickSolveSeconds > 0 {
		limit = params.QuickSolveSeconds
	}

	satParams := &sppb.SatParameters{
		MaxTimeInSeconds: floatPtr(float64(limit)),
		NumSearchWorkers: int32Ptr(int32(params.NumSearchWorkers)),
		LogSearchProgress: boolPtr(params.LogSearchProgress),
	}

	start := time.Now()
	response, err := cpmodel.SolveCpModelWithParameters(model, satParams)
	if err != nil {
		return solver.Result{}, &entity.BackendError{Message: "CP-SAT solve failed", Cause: err}
	}
	b.rawResponse = response

	status := mapStatus(response.GetStatus())

	// Quick-solve found nothing useful; fall through to a full-limit pass
	// (spec §5: "quick-solve ... otherwise falls through to full-limit solving").
	if params.QuickSolveSeconds > 0 && status != solver.Optimal && status != solver.Feasible && params.TimeLimitSeconds > params.QuickSolveSeconds {
		satParams.MaxTimeInSeconds = floatPtr(float64(params.TimeLimitSeconds))
		response, err = cpmodel.SolveCpModelWithParameters(model, satParams)
		if err != nil {
			return solver.Result{}, &entity.BackendError{Message: "CP-SAT solve failed on full-limit pass", Cause: err}
		}
		b.rawResponse = response
		status = mapStatus(response.GetStatus())
	}

	select {
	case <-ctx.Done():
		return solver.Result{Status: solver.Unknown}, ctx.Err()
	default:
	}

	return solver.Result{
		Status:         status,
		ObjectiveValue: response.GetObjectiveValue(),
		WallTime:       time.Since(start).Seconds(),
	}, nil
}

func (b *Backend) ValueOf(v interface{}) int64 {
	switch tv := v.(type) {
	case solver.BoolVar:
		if cpmodel.SolutionBooleanValue(b.rawResponse, b.boolVars[tv.ID()]) {
			return 1
		}
		return 0
	case solver.IntVar:
		return cpmodel.SolutionIntegerValue(b.rawResponse, b.intVars[tv.ID()])
	default:
		panic("ortoolscp: ValueOf called with an unrecognized variable handle")
	}
}

func mapStatus(s cmpbStatus) solver.Status {
	switch s {
	case cpmodel.CpSolverStatus_OPTIMAL:
		return solver.Optimal
	case cpmodel.CpSolverStatus_FEASIBLE:
		return solver.Feasible
	case cpmodel.CpSolverStatus_INFEASIBLE:
		return solver.Infeasible
	default:
		return solver.Unknown
	}
}

func floatPtr(f float64) *float64 { return &f }
func int32Ptr(i int32) *int32     { return &i }
func boolPtr(b bool) *bool        { return &b }

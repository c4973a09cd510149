// Package modelvars allocates and indexes every decision variable the
// constraint library and objective builder read from (spec §4.3). It is the
// one place that knows how (worker, period, shift type) triples map onto
// solver.BoolVar/solver.IntVar handles; every other package goes through its
// accessors instead of touching solver handles directly.
package modelvars

import (
	"fmt"

	"github.com/schedcu/shiftsolver/internal/entity"
	"github.com/schedcu/shiftsolver/internal/solver"
)

// Vars is the fully-allocated variable set for one solve.
type Vars struct {
	model solver.Model

	workerIndex map[string]int
	shiftIndex  map[string]int
	numPeriods  int

	// assign[w][p][s] = x[w,p,s]
	assign [][][]solver.BoolVar
	// total[w][s] = total[w,s], with total[w,s] = Σ_p x[w,p,s]
	total [][]solver.IntVar

	// coverage[p][s], allocated lazily the first time Coverage is called.
	coverage [][]*solver.IntVar
}

// Build allocates x[w,p,s] and total[w,s] for every worker/shift/period
// combination and links total[w,s] = Σ_p x[w,p,s] (spec §4.3).
func Build(model solver.Model, workers []entity.Worker, shiftTypes []entity.ShiftType, numPeriods int) *Vars {
	v := &Vars{
		model:       model,
		workerIndex: make(map[string]int, len(workers)),
		shiftIndex:  make(map[string]int, len(shiftTypes)),
		numPeriods:  numPeriods,
	}
	for i, w := range workers {
		v.workerIndex[w.ID] = i
	}
	for i, s := range shiftTypes {
		v.shiftIndex[s.ID] = i
	}

	v.assign = make([][][]solver.BoolVar, len(workers))
	v.total = make([][]solver.IntVar, len(workers))
	v.coverage = make([][]*solver.IntVar, numPeriods)
	for p := range v.coverage {
		v.coverage[p] = make([]*solver.IntVar, len(shiftTypes))
	}

	for w := range workers {
		v.assign[w] = make([][]solver.BoolVar, numPeriods)
		v.total[w] = make([]solver.IntVar, len(shiftTypes))
		for p := 0; p < numPeriods; p++ {
			v.assign[w][p] = make([]solver.BoolVar, len(shiftTypes))
			for s := range shiftTypes {
				v.assign[w][p][s] = model.NewBool()
			}
		}
		for s := range shiftTypes {
			total := model.NewInt(0, int64(numPeriods))
			v.total[w][s] = total

			var terms []solver.Term
			for p := 0; p < numPeriods; p++ {
				terms = append(terms, solver.Bool(v.assign[w][p][s], 1))
			}
			terms = append(terms, solver.Int(total, -1))
			model.AddLinearEq(solver.Sum(terms...), 0)
		}
	}

	return v
}

func (v *Vars) worker(workerID string) (int, error) {
	i, ok := v.workerIndex[workerID]
	if !ok {
		return 0, &entity.KeyError{Kind: entity.UnknownWorker, Key: workerID}
	}
	return i, nil
}

func (v *Vars) shift(shiftTypeID string) (int, error) {
	i, ok := v.shiftIndex[shiftTypeID]
	if !ok {
		return 0, &entity.KeyError{Kind: entity.UnknownShift, Key: shiftTypeID}
	}
	return i, nil
}

func (v *Vars) period(p int) error {
	if p < 0 || p >= v.numPeriods {
		return &entity.KeyError{Kind: entity.BadPeriod, Key: fmt.Sprintf("%d", p)}
	}
	return nil
}

// Assign returns x[w,p,s].
func (v *Vars) Assign(workerID string, p int, shiftTypeID string) (solver.BoolVar, error) {
	wi, err := v.worker(workerID)
	if err != nil {
		return solver.BoolVar{}, err
	}
	si, err := v.shift(shiftTypeID)
	if err != nil {
		return solver.BoolVar{}, err
	}
	if err := v.period(p); err != nil {
		return solver.BoolVar{}, err
	}
	return v.assign[wi][p][si], nil
}

// Total returns total[w,s].
func (v *Vars) Total(workerID, shiftTypeID string) (solver.IntVar, error) {
	wi, err := v.worker(workerID)
	if err != nil {
		return solver.IntVar{}, err
	}
	si, err := v.shift(shiftTypeID)
	if err != nil {
		return solver.IntVar{}, err
	}
	return v.total[wi][si], nil
}

// Coverage returns coverage[p,s] = Σ_w x[w,p,s], allocating and linking it
// with an equality constraint the first time it's requested for (p,s) (spec
// §4.3: "materialised on demand").
func (v *Vars) Coverage(p int, shiftTypeID string) (solver.IntVar, error) {
	si, err := v.shift(shiftTypeID)
	if err != nil {
		return solver.IntVar{}, err
	}
	if err := v.period(p); err != nil {
		return solver.IntVar{}, err
	}

	if v.coverage[p][si] != nil {
		return *v.coverage[p][si], nil
	}

	cov := v.model.NewInt(0, int64(len(v.workerIndex)))
	var terms []solver.Term
	for w := 0; w < len(v.assign); w++ {
		terms = append(terms, solver.Bool(v.assign[w][p][si], 1))
	}
	terms = append(terms, solver.Int(cov, -1))
	v.model.AddLinearEq(solver.Sum(terms...), 0)

	v.coverage[p][si] = &cov
	return cov, nil
}

// NumPeriods reports P, the horizon length this Vars was built against.
func (v *Vars) NumPeriods() int { return v.numPeriods }

// WorkerIDs returns every worker ID this Vars knows about, in allocation order.
func (v *Vars) WorkerIDs() []string {
	ids := make([]string, len(v.workerIndex))
	for id, i := range v.workerIndex {
		ids[i] = id
	}
	return ids
}

// ShiftTypeIDs returns every shift-type ID this Vars knows about, in allocation order.
func (v *Vars) ShiftTypeIDs() []string {
	ids := make([]string, len(v.shiftIndex))
	for id, i := range v.shiftIndex {
		ids[i] = id
	}
	return ids
}

// Model exposes the underlying solver.Model for constraints that need to
// allocate their own auxiliary variables (e.g. violation booleans).
func (v *Vars) Model() solver.Model { return v.model }

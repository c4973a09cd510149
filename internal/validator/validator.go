// Package validator re-checks a solved Schedule's hard constraints without
// any solver involvement (spec §4.10) — a cheap correctness net for
// schedules that arrive from outside the orchestrator (e.g. read back from
// storage) or as a final sanity check after extraction.
package validator

import (
	"fmt"

	"github.com/schedcu/shiftsolver/internal/calendar"
	"github.com/schedcu/shiftsolver/internal/entity"
)

// Input mirrors orchestrator.Input; kept separate so this package has no
// dependency on the solver or constraint packages.
type Input struct {
	Workers                    []entity.Worker
	ShiftTypes                 []entity.ShiftType
	Calendar                   *calendar.Calendar
	Availabilities             []entity.Availability
	ShiftFrequencyRequirements []entity.ShiftFrequencyRequirement
	Requests                   []entity.SchedulingRequest

	// ConstraintConfigs is the resolved per-constraint config (as produced by
	// constraint.Resolve) the Schedule was actually solved under. Soft
	// violations (spec §4.10 bullet 5) are only recomputed for a constraint
	// present here and Enabled; a caller validating a hand-edited Schedule
	// with no known config simply skips that recomputation.
	ConstraintConfigs map[string]entity.ConstraintConfig
}

// Report is the validator's output (spec §4.10).
type Report struct {
	Violations []string
	Warnings   []string
	Statistics map[string]int
}

// Validate re-derives every hard invariant directly from the Schedule's
// assignments and reports any breach.
func Validate(in Input, schedule *entity.Schedule) *Report {
	report := &Report{Statistics: make(map[string]int)}

	workerByID := make(map[string]entity.Worker, len(in.Workers))
	for _, w := range in.Workers {
		workerByID[w.ID] = w
	}

	checkCoverage(in, schedule, report)
	checkRestrictions(in, schedule, workerByID, report)
	checkAvailability(in, schedule, report)
	checkShiftFrequency(in, schedule, report)

	// Soft violations (spec §4.10 bullet 5): recomputed with the same
	// semantics §4.5 assigns, using whichever configs the Schedule was
	// actually solved under.
	checkFrequencySoft(in, schedule, report)
	checkMaxAbsenceSoft(in, schedule, report)
	checkRequestSoft(in, schedule, report)
	checkSequenceSoft(in, schedule, report)
	checkFairnessSpread(in, schedule, report)

	return report
}

// enabledConfig returns the resolved config for name and whether the
// constraint was actually part of the solve.
func enabledConfig(in Input, name string) (entity.ConstraintConfig, bool) {
	cfg, ok := in.ConstraintConfigs[name]
	if !ok || !cfg.Enabled {
		return entity.ConstraintConfig{}, false
	}
	return cfg, true
}

func checkCoverage(in Input, schedule *entity.Schedule, report *Report) {
	for p := 0; p < in.Calendar.NumPeriods(); p++ {
		period := in.Calendar.Period(p)
		for _, s := range in.ShiftTypes {
			if s.ApplicableDays != nil && !periodContainsApplicableDay(in, period.Index, &s) {
				continue
			}
			count := len(schedule.AssignmentsFor(p, s.ID))
			if count != s.WorkersRequired {
				report.Violations = append(report.Violations, fmt.Sprintf(
					"period %d shift type %q: coverage is %d, required %d", p, s.ID, count, s.WorkersRequired))
				report.Statistics["coverage_violations"]++
			}
		}
	}
}

func periodContainsApplicableDay(in Input, periodIndex int, s *entity.ShiftType) bool {
	for _, d := range in.Calendar.DatesInPeriod(periodIndex) {
		if s.AppliesOn(d.Weekday()) {
			return true
		}
	}
	return false
}

func checkRestrictions(in Input, schedule *entity.Schedule, workerByID map[string]entity.Worker, report *Report) {
	for _, period := range schedule.Periods {
		for workerID, assignments := range period.ByWorker {
			w, ok := workerByID[workerID]
			if !ok {
				continue
			}
			for _, a := range assignments {
				if w.IsRestrictedFrom(a.ShiftTypeID) {
					report.Violations = append(report.Violations, fmt.Sprintf(
						"worker %q assigned to restricted shift type %q in period %d", workerID, a.ShiftTypeID, period.PeriodIndex))
					report.Statistics["restriction_violations"]++
				}
			}
		}
	}
}

func checkAvailability(in Input, schedule *entity.Schedule, report *Report) {
	for _, a := range in.Availabilities {
		if a.Type != entity.Unavailable {
			continue
		}
		for p := 0; p < in.Calendar.NumPeriods(); p++ {
			if !periodOverlaps(in, p, &a) {
				continue
			}
			for _, assignment := range schedule.Periods[p].ByWorker[a.WorkerID] {
				if a.AppliesToShift(assignment.ShiftTypeID) {
					report.Violations = append(report.Violations, fmt.Sprintf(
						"worker %q assigned shift type %q in period %d during an unavailable window", a.WorkerID, assignment.ShiftTypeID, p))
					report.Statistics["availability_violations"]++
				}
			}
		}
	}
}

func periodOverlaps(in Input, periodIndex int, a *entity.Availability) bool {
	for _, d := range in.Calendar.DatesInPeriod(periodIndex) {
		if a.CoversDate(d) {
			return true
		}
	}
	return false
}

func checkShiftFrequency(in Input, schedule *entity.Schedule, report *Report) {
	for _, req := range in.ShiftFrequencyRequirements {
		windowSize := req.MaxPeriodsBetween
		numPeriods := in.Calendar.NumPeriods()
		if windowSize > numPeriods {
			report.Warnings = append(report.Warnings, fmt.Sprintf(
				"shift-frequency requirement for worker %q has a window larger than the horizon; skipped", req.WorkerID))
			continue
		}
		for p := 0; p+windowSize <= numPeriods; p++ {
			count := 0
			for i := p; i < p+windowSize; i++ {
				for _, a := range schedule.Periods[i].ByWorker[req.WorkerID] {
					if _, ok := req.ShiftTypes[a.ShiftTypeID]; ok {
						count++
					}
				}
			}
			if count < 1 {
				report.Violations = append(report.Violations, fmt.Sprintf(
					"worker %q has no required shift in window starting at period %d", req.WorkerID, p))
				report.Statistics["shift_frequency_violations"]++
			}
		}
	}
}

// slidingWindows mirrors constraint.slidingWindows: every window start p
// such that [p, p+size-1] fits entirely within [0, numPeriods).
func slidingWindows(numPeriods, size int) []int {
	if size > numPeriods {
		return nil
	}
	windows := make([]int, 0, numPeriods-size+1)
	for p := 0; p+size <= numPeriods; p++ {
		windows = append(windows, p)
	}
	return windows
}

// checkFrequencySoft re-derives constraint.Frequency's windows (spec
// §4.5.5): every worker must draw at least one shift of any kind in every
// window of default_max_periods_between+1 periods.
func checkFrequencySoft(in Input, schedule *entity.Schedule, report *Report) {
	cfg, ok := enabledConfig(in, "frequency")
	if !ok {
		return
	}
	windowSize := cfg.IntParam("default_max_periods_between", 4) + 1
	windows := slidingWindows(in.Calendar.NumPeriods(), windowSize)

	for _, w := range in.Workers {
		for _, p := range windows {
			count := 0
			for i := p; i < p+windowSize; i++ {
				count += len(schedule.Periods[i].ByWorker[w.ID])
			}
			if count == 0 {
				report.Violations = append(report.Violations, fmt.Sprintf(
					"worker %q has no assignment in frequency window starting at period %d", w.ID, p))
				report.Statistics["frequency_violations"]++
			}
		}
	}
}

// checkMaxAbsenceSoft re-derives constraint.MaxAbsence's windows (spec
// §4.5.8): every worker must draw at least one shift from the configured
// subset (all shift types when unset) in every window of
// max_periods_absent+1 periods.
func checkMaxAbsenceSoft(in Input, schedule *entity.Schedule, report *Report) {
	cfg, ok := enabledConfig(in, "max_absence")
	if !ok {
		return
	}
	windowSize := cfg.IntParam("max_periods_absent", 4) + 1
	windows := slidingWindows(in.Calendar.NumPeriods(), windowSize)

	shiftTypeIDs := cfg.StringSliceParam("shift_type_ids", nil)
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

	for _, w := range in.Workers {
		for _, p := range windows {
			count := 0
			for i := p; i < p+windowSize; i++ {
				for _, a := range schedule.Periods[i].ByWorker[w.ID] {
					if shiftFilter(a.ShiftTypeID) {
						count++
					}
				}
			}
			if count == 0 {
				report.Violations = append(report.Violations, fmt.Sprintf(
					"worker %q has no qualifying assignment in max-absence window starting at period %d", w.ID, p))
				report.Statistics["max_absence_violations"]++
			}
		}
	}
}

// checkRequestSoft re-derives constraint.Request's per-cell semantics (spec
// §4.5.6): a positive request is violated when its cell was left unassigned,
// a negative request when it was assigned anyway.
func checkRequestSoft(in Input, schedule *entity.Schedule, report *Report) {
	if _, ok := enabledConfig(in, "request"); !ok {
		return
	}
	for _, r := range in.Requests {
		assigned := false
		for _, a := range schedule.Periods[r.PeriodIndex].ByWorker[r.WorkerID] {
			if a.ShiftTypeID == r.ShiftTypeID {
				assigned = true
				break
			}
		}
		violated := (r.IsPositive && !assigned) || (!r.IsPositive && assigned)
		if violated {
			report.Violations = append(report.Violations, fmt.Sprintf(
				"worker %q's request for shift type %q in period %d was not honored",
				r.WorkerID, r.ShiftTypeID, r.PeriodIndex))
			report.Statistics["request_violations"]++
		}
	}
}

// checkSequenceSoft re-derives constraint.Sequence's semantics (spec
// §4.5.7): a worker assigned to a selected category in two consecutive
// periods is flagged once per adjacent pair.
func checkSequenceSoft(in Input, schedule *entity.Schedule, report *Report) {
	cfg, ok := enabledConfig(in, "sequence")
	if !ok {
		return
	}
	categories := cfg.StringSliceParam("categories", nil)
	if len(categories) == 0 {
		return
	}
	wanted := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		wanted[c] = struct{}{}
	}

	shiftTypeByID := make(map[string]entity.ShiftType, len(in.ShiftTypes))
	for _, s := range in.ShiftTypes {
		shiftTypeByID[s.ID] = s
	}

	inCategory := func(periodIndex int, workerID string) bool {
		for _, a := range schedule.Periods[periodIndex].ByWorker[workerID] {
			if s, ok := shiftTypeByID[a.ShiftTypeID]; ok {
				if _, want := wanted[s.Category]; want {
					return true
				}
			}
		}
		return false
	}

	for _, w := range in.Workers {
		for p := 0; p+1 < in.Calendar.NumPeriods(); p++ {
			if inCategory(p, w.ID) && inCategory(p+1, w.ID) {
				report.Violations = append(report.Violations, fmt.Sprintf(
					"worker %q has consecutive selected-category assignments at periods %d and %d", w.ID, p, p+1))
				report.Statistics["sequence_violations"]++
			}
		}
	}
}

// checkFairnessSpread re-derives constraint.Fairness's spread statistic
// (spec §4.5.4): the gap between the most- and least-loaded active worker's
// count of assignments to the selected (or default undesirable) categories.
// Hard mode requires spread == 0; soft mode only reports it.
func checkFairnessSpread(in Input, schedule *entity.Schedule, report *Report) {
	cfg, ok := enabledConfig(in, "fairness")
	if !ok {
		return
	}

	var active []entity.Worker
	for _, w := range in.Workers {
		if w.IsActive {
			active = append(active, w)
		}
	}
	if len(active) < 2 {
		return
	}

	categories := cfg.StringSliceParam("categories", nil)
	selected := make(map[string]struct{})
	if len(categories) == 0 {
		for _, s := range in.ShiftTypes {
			if s.IsUndesirable {
				selected[s.ID] = struct{}{}
			}
		}
	} else {
		wanted := make(map[string]struct{}, len(categories))
		for _, c := range categories {
			wanted[c] = struct{}{}
		}
		for _, s := range in.ShiftTypes {
			if _, want := wanted[s.Category]; want {
				selected[s.ID] = struct{}{}
			}
		}
	}
	if len(selected) == 0 {
		return
	}

	minCount, maxCount := -1, -1
	for _, w := range active {
		count := 0
		for _, period := range schedule.Periods {
			for _, a := range period.ByWorker[w.ID] {
				if _, ok := selected[a.ShiftTypeID]; ok {
					count++
				}
			}
		}
		if minCount == -1 || count < minCount {
			minCount = count
		}
		if count > maxCount {
			maxCount = count
		}
	}

	spread := maxCount - minCount
	report.Statistics["fairness_spread"] = spread
	if cfg.IsHard && spread != 0 {
		report.Violations = append(report.Violations, fmt.Sprintf(
			"fairness spread is %d across active workers, hard mode requires 0", spread))
	}
}

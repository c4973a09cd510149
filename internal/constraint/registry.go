package constraint

import "github.com/schedcu/shiftsolver/internal/entity"

// Default is one registry row: the constraint's implementation plus its
// out-of-the-box config (spec §4.7). Constraints themselves never hardcode
// these values — the registry is the single source of defaults.
type Default struct {
	Constraint Constraint
	Config     entity.ConstraintConfig
}

// Registry lists every constraint in declared application order. Hard
// constraints come first for readability (spec §4.8 notes ordering doesn't
// affect correctness).
func Registry() []Default {
	return []Default{
		{Constraint: Coverage{}, Config: entity.ConstraintConfig{Enabled: true, IsHard: true}},
		{Constraint: WorkerRestriction{}, Config: entity.ConstraintConfig{Enabled: true, IsHard: true}},
		{Constraint: Availability{}, Config: entity.ConstraintConfig{Enabled: true, IsHard: true}},
		{Constraint: Fairness{}, Config: entity.ConstraintConfig{Enabled: true, IsHard: false, Weight: 10}},
		{Constraint: Frequency{}, Config: entity.ConstraintConfig{Enabled: true, IsHard: false, Weight: 5,
			Parameters: map[string]interface{}{"default_max_periods_between": 4}}},
		{Constraint: Request{}, Config: entity.ConstraintConfig{Enabled: false, IsHard: false, Weight: 3}},
		{Constraint: Sequence{}, Config: entity.ConstraintConfig{Enabled: false, IsHard: false, Weight: 2}},
		{Constraint: MaxAbsence{}, Config: entity.ConstraintConfig{Enabled: false, IsHard: false, Weight: 4,
			Parameters: map[string]interface{}{"max_periods_absent": 4}}},
		{Constraint: ShiftFrequency{}, Config: entity.ConstraintConfig{Enabled: true, IsHard: false, Weight: 5}},
	}
}

// Resolve merges the registry defaults with caller overrides, keyed by
// constraint name, and applies Request's auto-enable policy (spec §4.5.6:
// "if the caller did not supply an explicit config for Request AND at least
// one request exists, enable Request with default config").
func Resolve(overrides map[string]entity.ConstraintConfig, hasRequests bool) []Default {
	defaults := Registry()
	resolved := make([]Default, len(defaults))

	for i, d := range defaults {
		cfg := d.Config
		name := d.Constraint.Name()

		override, explicit := overrides[name]
		if explicit {
			cfg = override
		} else if name == "request" && hasRequests {
			cfg.Enabled = true
		}

		resolved[i] = Default{Constraint: d.Constraint, Config: cfg}
	}

	return resolved
}

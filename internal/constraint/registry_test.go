package constraint

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/schedcu/shiftsolver/internal/entity"
)

func TestRegistry_NamesInDeclaredOrder(t *testing.T) {
	reg := Registry()
	var names []string
	for _, d := range reg {
		names = append(names, d.Constraint.Name())
	}
	assert.Equal(t, []string{
		"coverage", "worker_restriction", "availability", "fairness",
		"frequency", "request", "sequence", "max_absence", "shift_frequency",
	}, names)
}

func TestRegistry_HardConstraintsAlwaysEnabled(t *testing.T) {
	for _, d := range Registry() {
		switch d.Constraint.Name() {
		case "coverage", "worker_restriction", "availability":
			assert.True(t, d.Config.Enabled, d.Constraint.Name())
			assert.True(t, d.Config.IsHard, d.Constraint.Name())
		}
	}
}

func TestRegistry_SoftDefaultsDisabledByDefault(t *testing.T) {
	for _, d := range Registry() {
		switch d.Constraint.Name() {
		case "request", "sequence", "max_absence":
			assert.False(t, d.Config.Enabled, d.Constraint.Name())
		}
	}
}

func TestRegistry_FrequencyAndMaxAbsenceHaveDefaultParams(t *testing.T) {
	reg := Registry()
	for _, d := range reg {
		switch d.Constraint.Name() {
		case "frequency":
			assert.Equal(t, 4, d.Config.IntParam("default_max_periods_between", -1))
		case "max_absence":
			assert.Equal(t, 4, d.Config.IntParam("max_periods_absent", -1))
		}
	}
}

func configByName(defaults []Default, name string) (entity.ConstraintConfig, bool) {
	for _, d := range defaults {
		if d.Constraint.Name() == name {
			return d.Config, true
		}
	}
	return entity.ConstraintConfig{}, false
}

func TestResolve_NoOverridesReturnsRegistryDefaults(t *testing.T) {
	resolved := Resolve(nil, false)
	cfg, ok := configByName(resolved, "request")
	assert.True(t, ok)
	assert.False(t, cfg.Enabled)
}

func TestResolve_AutoEnablesRequestWhenRequestsPresentAndNoOverride(t *testing.T) {
	resolved := Resolve(nil, true)
	cfg, ok := configByName(resolved, "request")
	assert.True(t, ok)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 3, cfg.Weight) // default weight carried through, only Enabled flips
}

func TestResolve_ExplicitOverrideWinsOverAutoEnable(t *testing.T) {
	overrides := map[string]entity.ConstraintConfig{
		"request": {Enabled: false, IsHard: false, Weight: 7},
	}
	resolved := Resolve(overrides, true)
	cfg, ok := configByName(resolved, "request")
	assert.True(t, ok)
	assert.False(t, cfg.Enabled)
	assert.Equal(t, 7, cfg.Weight)
}

func TestResolve_NoAutoEnableWithoutRequests(t *testing.T) {
	resolved := Resolve(nil, false)
	cfg, ok := configByName(resolved, "request")
	assert.True(t, ok)
	assert.False(t, cfg.Enabled)
}

func TestResolve_OverridesOtherConstraintsByName(t *testing.T) {
	overrides := map[string]entity.ConstraintConfig{
		"fairness": {Enabled: false, IsHard: false, Weight: 99},
	}
	resolved := Resolve(overrides, false)
	cfg, ok := configByName(resolved, "fairness")
	assert.True(t, ok)
	assert.False(t, cfg.Enabled)
	assert.Equal(t, 99, cfg.Weight)

	// Unrelated entries are untouched.
	cov, ok := configByName(resolved, "coverage")
	assert.True(t, ok)
	assert.True(t, cov.IsHard)
}

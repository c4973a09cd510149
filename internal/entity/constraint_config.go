package entity

// ConstraintConfig overrides a constraint's registry defaults (spec §3, §4.7).
// Weight is ignored when IsHard.
type ConstraintConfig struct {
	Enabled    bool
	IsHard     bool
	Weight     int
	Parameters map[string]interface{}
}

// IntParam reads an integer parameter, falling back to def when absent or
// of the wrong type.
func (c ConstraintConfig) IntParam(name string, def int) int {
	if c.Parameters == nil {
		return def
	}
	switch v := c.Parameters[name].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return def
	}
}

// StringSliceParam reads a []string parameter, falling back to def when absent.
func (c ConstraintConfig) StringSliceParam(name string, def []string) []string {
	if c.Parameters == nil {
		return def
	}
	switch v := c.Parameters[name].(type) {
	case []string:
		return v
	default:
		return def
	}
}

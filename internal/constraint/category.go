package constraint

import "github.com/schedcu/shiftsolver/internal/entity"

// selectedCategories resolves Fairness's "U" shift-type set: an explicit
// categories parameter overrides the default of every is_undesirable shift
// (spec §4.5.4). Returns the set of matching shift-type IDs.
func selectedCategories(ctx Context, config entity.ConstraintConfig) map[string]struct{} {
	names := config.StringSliceParam("categories", nil)

	out := make(map[string]struct{})
	if len(names) == 0 {
		for _, s := range ctx.ShiftTypes {
			if s.IsUndesirable {
				out[s.ID] = struct{}{}
			}
		}
		return out
	}

	wanted := make(map[string]struct{}, len(names))
	for _, n := range names {
		wanted[n] = struct{}{}
	}
	for _, s := range ctx.ShiftTypes {
		if _, ok := wanted[s.Category]; ok {
			out[s.ID] = struct{}{}
		}
	}
	return out
}

package entity

// Worker is a member of the staff pool eligible for shift assignment.
// Identity is by stable string ID, not a generated handle — callers own
// the ID space (spec §3).
type Worker struct {
	ID         string
	Name       string
	WorkerType string
	FTE        float64 // rational in (0,1]
	IsActive   bool

	// RestrictedShifts are shift-type IDs this worker must never be assigned to.
	RestrictedShifts map[string]struct{}
	// PreferredShifts are informational only; they never constrain the model.
	PreferredShifts map[string]struct{}

	Attributes map[string]interface{}
}

// NewWorker constructs a Worker, enforcing RestrictedShifts ∩ PreferredShifts = ∅.
func NewWorker(id, name, workerType string, fte float64, isActive bool, restricted, preferred []string, attributes map[string]interface{}) (*Worker, error) {
	if id == "" {
		return nil, NewValidationError(InvalidWorker, "worker id must not be empty")
	}
	if fte <= 0 || fte > 1 {
		return nil, NewValidationError(InvalidWorker, "worker fte must be in (0,1]")
	}

	restrictedSet := toSet(restricted)
	preferredSet := toSet(preferred)
	for s := range restrictedSet {
		if _, clash := preferredSet[s]; clash {
			return nil, NewValidationError(InvalidWorker, "restricted_shifts and preferred_shifts overlap on "+s)
		}
	}

	return &Worker{
		ID:               id,
		Name:             name,
		WorkerType:       workerType,
		FTE:              fte,
		IsActive:         isActive,
		RestrictedShifts: restrictedSet,
		PreferredShifts:  preferredSet,
		Attributes:       attributes,
	}, nil
}

// IsRestrictedFrom reports whether the worker must never work the given shift type.
func (w *Worker) IsRestrictedFrom(shiftTypeID string) bool {
	_, restricted := w.RestrictedShifts[shiftTypeID]
	return restricted
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

package entity

// ShiftFrequencyRequirement requires a worker to work at least one shift
// drawn from ShiftTypes within every contiguous window of MaxPeriodsBetween
// periods (spec §3).
type ShiftFrequencyRequirement struct {
	WorkerID          string
	ShiftTypes        map[string]struct{}
	MaxPeriodsBetween int
}

// NewShiftFrequencyRequirement constructs a requirement from a non-empty shift-type list.
func NewShiftFrequencyRequirement(workerID string, shiftTypes []string, maxPeriodsBetween int) (*ShiftFrequencyRequirement, error) {
	if len(shiftTypes) == 0 {
		return nil, NewValidationError(InvalidFrequencyReq, "shift_types must be non-empty")
	}
	if maxPeriodsBetween < 1 {
		return nil, NewValidationError(InvalidFrequencyReq, "max_periods_between must be >= 1")
	}
	return &ShiftFrequencyRequirement{
		WorkerID:          workerID,
		ShiftTypes:        toSet(shiftTypes),
		MaxPeriodsBetween: maxPeriodsBetween,
	}, nil
}

package entity

// SchedulingRequest is a worker's positive or negative preference for a
// specific (shift type, period) cell (spec §3).
type SchedulingRequest struct {
	WorkerID    string
	ShiftTypeID string
	PeriodIndex int
	IsPositive  bool
	Priority    int // >= 1; 0 is rejected at construction
}

// NewSchedulingRequest validates Priority >= 1 (spec §9 resolves the open question this way).
func NewSchedulingRequest(workerID, shiftTypeID string, periodIndex int, isPositive bool, priority int) (*SchedulingRequest, error) {
	if priority < 1 {
		return nil, NewValidationError(InvalidRequest, "priority must be >= 1")
	}
	return &SchedulingRequest{
		WorkerID:    workerID,
		ShiftTypeID: shiftTypeID,
		PeriodIndex: periodIndex,
		IsPositive:  isPositive,
		Priority:    priority,
	}, nil
}

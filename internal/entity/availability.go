package entity

import "time"

// AvailabilityType classifies one Availability record (spec §3).
type AvailabilityType string

const (
	Unavailable AvailabilityType = "UNAVAILABLE"
	Preferred   AvailabilityType = "PREFERRED"
	Required    AvailabilityType = "REQUIRED"
)

// Availability records a worker's stated availability over an inclusive date range.
// Unavailable is hard (enforced by the Availability constraint); Preferred/Required
// are informational signals consumed only by the Request constraint when promoted
// to an explicit SchedulingRequest — they never self-enforce (spec §9 open question).
type Availability struct {
	WorkerID    string
	StartDate   time.Time
	EndDate     time.Time
	Type        AvailabilityType
	ShiftTypeID *string // nil applies to all shift types
}

// CoversDate reports whether the given date falls within the inclusive range.
func (a *Availability) CoversDate(date time.Time) bool {
	return !date.Before(a.StartDate) && !date.After(a.EndDate)
}

// AppliesToShift reports whether this record constrains the given shift type.
func (a *Availability) AppliesToShift(shiftTypeID string) bool {
	return a.ShiftTypeID == nil || *a.ShiftTypeID == shiftTypeID
}

// Package calendar maps a scheduling horizon to an ordered sequence of
// equal-length periods (spec §4.1).
package calendar

import (
	"fmt"
	"time"

	"github.com/schedcu/shiftsolver/internal/entity"
)

// PeriodType labels the derived length of a period (spec §3).
type PeriodType string

const (
	Day     PeriodType = "day"
	Week    PeriodType = "week"
	Biweek  PeriodType = "biweek"
	Month   PeriodType = "month"
	Custom  PeriodType = "custom"
)

// Period is one equal-length slice of the horizon.
type Period struct {
	Index     int
	StartDate time.Time
	EndDate   time.Time
}

// Calendar is the ordered sequence of periods covering a horizon.
type Calendar struct {
	periods          []Period
	periodLengthDays int
}

// New builds a Calendar from (startDate, endDate, periodLengthDays). The
// total span must be a positive multiple of periodLengthDays.
func New(startDate, endDate time.Time, periodLengthDays int) (*Calendar, error) {
	if periodLengthDays < 1 {
		return nil, entity.NewConfigError(entity.BadHorizon, "period_length_days must be >= 1")
	}
	if endDate.Before(startDate) {
		return nil, entity.NewConfigError(entity.BadHorizon, "end_date must not be before start_date")
	}

	totalDays := int(endDate.Sub(startDate).Hours()/24) + 1
	if totalDays%periodLengthDays != 0 {
		return nil, entity.NewConfigError(entity.BadHorizon, fmt.Sprintf(
			"horizon of %d day(s) is not a positive multiple of period_length_days=%d", totalDays, periodLengthDays))
	}

	numPeriods := totalDays / periodLengthDays
	periods := make([]Period, numPeriods)
	cursor := startDate
	for i := 0; i < numPeriods; i++ {
		periodEnd := cursor.AddDate(0, 0, periodLengthDays-1)
		periods[i] = Period{Index: i, StartDate: cursor, EndDate: periodEnd}
		cursor = cursor.AddDate(0, 0, periodLengthDays)
	}

	return &Calendar{periods: periods, periodLengthDays: periodLengthDays}, nil
}

// NumPeriods returns the number of periods in the horizon (P in the spec).
func (c *Calendar) NumPeriods() int {
	return len(c.periods)
}

// PeriodForDate returns the index of the period containing d, or -1 if d falls
// outside the horizon.
func (c *Calendar) PeriodForDate(d time.Time) int {
	for _, p := range c.periods {
		if !d.Before(p.StartDate) && !d.After(p.EndDate) {
			return p.Index
		}
	}
	return -1
}

// DatesInPeriod returns every date (inclusive) in the given period.
func (c *Calendar) DatesInPeriod(periodIndex int) []time.Time {
	p := c.periods[periodIndex]
	var dates []time.Time
	for d := p.StartDate; !d.After(p.EndDate); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

// Period returns the period at the given index.
func (c *Calendar) Period(periodIndex int) Period {
	return c.periods[periodIndex]
}

// PeriodType derives the period-type label from the per-period duration (spec §3).
func (c *Calendar) PeriodType() PeriodType {
	switch c.periodLengthDays {
	case 1:
		return Day
	case 7:
		return Week
	case 14:
		return Biweek
	default:
		if c.periodLengthDays >= 28 && c.periodLengthDays <= 31 {
			return Month
		}
		return Custom
	}
}

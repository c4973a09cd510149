package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAvailability_CoversDate(t *testing.T) {
	a := Availability{
		StartDate: date(2026, time.March, 1),
		EndDate:   date(2026, time.March, 7),
	}

	assert.True(t, a.CoversDate(date(2026, time.March, 1)))
	assert.True(t, a.CoversDate(date(2026, time.March, 4)))
	assert.True(t, a.CoversDate(date(2026, time.March, 7)))
	assert.False(t, a.CoversDate(date(2026, time.February, 28)))
	assert.False(t, a.CoversDate(date(2026, time.March, 8)))
}

func TestAvailability_AppliesToShift(t *testing.T) {
	a := Availability{}
	assert.True(t, a.AppliesToShift("ANY"), "nil ShiftTypeID applies to every shift type")

	night := "NIGHT"
	a.ShiftTypeID = &night
	assert.True(t, a.AppliesToShift("NIGHT"))
	assert.False(t, a.AppliesToShift("DAY"))
}

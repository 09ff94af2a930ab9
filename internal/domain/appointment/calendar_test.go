package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/hangar-scheduler/internal/models"
)

// 2026-03-10 is a Tuesday, 2026-03-15 a Sunday.
var (
	tuesday = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	sunday  = time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
)

func weekRules() []models.OperatingRule {
	return DefaultOperatingRules(1)
}

func TestCalendarWeeklyRules(t *testing.T) {
	cal := NewCalendar(weekRules(), nil)

	w, ok := cal.WindowFor(tuesday)
	require.True(t, ok)
	assert.Equal(t, "08:00", w.OpenTime())
	assert.Equal(t, "18:00", w.CloseTime())

	assert.False(t, cal.IsOpen(sunday))
}

func TestCalendarFailsClosed(t *testing.T) {
	tests := []struct {
		name  string
		rules []models.OperatingRule
	}{
		{name: "no rule for weekday", rules: nil},
		{name: "rule marked closed", rules: []models.OperatingRule{
			{Weekday: 2, IsOpen: false, OpenTime: "08:00", CloseTime: "18:00"},
		}},
		{name: "open after close", rules: []models.OperatingRule{
			{Weekday: 2, IsOpen: true, OpenTime: "18:00", CloseTime: "08:00"},
		}},
		{name: "malformed time", rules: []models.OperatingRule{
			{Weekday: 2, IsOpen: true, OpenTime: "8h", CloseTime: "18:00"},
		}},
		{name: "duplicated weekday", rules: []models.OperatingRule{
			{Weekday: 2, IsOpen: true, OpenTime: "08:00", CloseTime: "12:00"},
			{Weekday: 2, IsOpen: true, OpenTime: "13:00", CloseTime: "18:00"},
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cal := NewCalendar(tc.rules, nil)
			_, ok := cal.WindowFor(tuesday)
			assert.False(t, ok)
		})
	}
}

func TestCalendarBlockedDateOverridesRule(t *testing.T) {
	cal := NewCalendar(weekRules(), []models.BlockedDate{
		{Date: "2026-03-10", Reason: "Dedetização"},
	})

	assert.False(t, cal.IsOpen(tuesday))
	assert.True(t, cal.IsOpen(tuesday.AddDate(0, 0, 1)))

	reason, blocked := cal.IsBlocked("2026-03-10")
	assert.True(t, blocked)
	assert.Equal(t, "Dedetização", reason)
}

func TestCalendarOpenDates(t *testing.T) {
	cal := NewCalendar(weekRules(), []models.BlockedDate{{Date: "2026-03-11"}})

	// Tuesday through next Monday: Sunday closed, Wednesday blocked.
	got := cal.OpenDates(tuesday, 7)
	assert.Equal(t, []string{
		"2026-03-10",
		"2026-03-12",
		"2026-03-13",
		"2026-03-14",
		"2026-03-16",
	}, got)
}

func TestValidateOperatingRules(t *testing.T) {
	require.NoError(t, ValidateOperatingRules(weekRules()))

	err := ValidateOperatingRules([]models.OperatingRule{
		{Weekday: 1, IsOpen: true, OpenTime: "08:00", CloseTime: "12:00"},
		{Weekday: 1, IsOpen: false},
	})
	assert.ErrorContains(t, err, CodeInvalidOperatingRules)

	err = ValidateOperatingRules([]models.OperatingRule{
		{Weekday: 7, IsOpen: false},
	})
	assert.ErrorContains(t, err, CodeInvalidOperatingRules)

	err = ValidateOperatingRules([]models.OperatingRule{
		{Weekday: 3, IsOpen: true, OpenTime: "10:00", CloseTime: "10:00"},
	})
	assert.ErrorContains(t, err, CodeInvalidOperatingRules)
}

package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/hangar-scheduler/internal/models"
)

func window(t *testing.T, open, close string) Window {
	t.Helper()
	o, err := ParseClock(open)
	require.NoError(t, err)
	c, err := ParseClock(close)
	require.NoError(t, err)
	return Window{Open: o, Close: c}
}

func TestGenerateSlotsHourly(t *testing.T) {
	longAgo := tuesday.AddDate(0, 0, -7)

	got := GenerateSlots(tuesday, window(t, "08:00", "12:00"), 60, longAgo)
	assert.Equal(t, []string{"08:00", "09:00", "10:00", "11:00"}, got)

	again := GenerateSlots(tuesday, window(t, "08:00", "12:00"), 60, longAgo)
	assert.Equal(t, got, again)
}

func TestGenerateSlotsNoPartialLastSlot(t *testing.T) {
	got := GenerateSlots(tuesday, window(t, "08:00", "18:00"), 45, tuesday.AddDate(0, 0, -1))

	require.Len(t, got, (18*60-8*60)/45)
	assert.Equal(t, "08:00", got[0])
	assert.Equal(t, "08:45", got[1])
	assert.Equal(t, "17:00", got[len(got)-1])
}

func TestGenerateSlotsExcludesPastTimes(t *testing.T) {
	w := window(t, "08:00", "12:00")

	halfPastTen := time.Date(2026, 3, 10, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, []string{"11:00"}, GenerateSlots(tuesday, w, 60, halfPastTen))

	// a slot exactly at now is already gone
	tenSharp := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, []string{"11:00"}, GenerateSlots(tuesday, w, 60, tenSharp))

	evening := time.Date(2026, 3, 10, 20, 0, 0, 0, time.UTC)
	assert.Empty(t, GenerateSlots(tuesday, w, 60, evening))
}

func TestGenerateSlotsRespectsDateLocation(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	date := time.Date(2026, 3, 10, 0, 0, 0, 0, loc)
	// 12:30 UTC is 09:30 in São Paulo
	now := time.Date(2026, 3, 10, 12, 30, 0, 0, time.UTC)

	got := GenerateSlots(date, window(t, "08:00", "12:00"), 60, now)
	assert.Equal(t, []string{"10:00", "11:00"}, got)
}

func TestGenerateSlotsInvalidInterval(t *testing.T) {
	w := window(t, "08:00", "12:00")
	assert.Empty(t, GenerateSlots(tuesday, w, 0, tuesday))
	assert.Empty(t, GenerateSlots(tuesday, w, -15, tuesday))
}

func TestSlotsForClosedDays(t *testing.T) {
	past := tuesday.AddDate(0, 0, -30)
	cal := NewCalendar(weekRules(), []models.BlockedDate{{Date: "2026-03-10"}})

	assert.Empty(t, SlotsFor(cal, tuesday, 30, past))
	assert.Empty(t, SlotsFor(cal, sunday, 30, past))
	assert.Len(t, SlotsFor(cal, tuesday.AddDate(0, 0, 1), 30, past), 20)
}

func TestNormalizeClock(t *testing.T) {
	got, ok := NormalizeClock("8:05")
	require.True(t, ok)
	assert.Equal(t, "08:05", got)

	_, ok = NormalizeClock("25:00")
	assert.False(t, ok)
}

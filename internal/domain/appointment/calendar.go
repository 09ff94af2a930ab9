package appointment

import (
	"time"

	"github.com/BruksfildServices01/hangar-scheduler/internal/models"
	"github.com/BruksfildServices01/hangar-scheduler/internal/timezone"
)

// Window é o expediente de um dia, em minutos desde a meia-noite.
type Window struct {
	Open  int
	Close int
}

func (w Window) OpenTime() string  { return FormatClock(w.Open) }
func (w Window) CloseTime() string { return FormatClock(w.Close) }

// Calendar decide dia aberto/fechado a partir das regras semanais e das
// datas bloqueadas. Qualquer configuração ausente ou ambígua fecha o dia.
type Calendar struct {
	windows map[time.Weekday]Window
	blocked map[string]string
}

func NewCalendar(rules []models.OperatingRule, blocked []models.BlockedDate) Calendar {
	cal := Calendar{
		windows: make(map[time.Weekday]Window, len(rules)),
		blocked: make(map[string]string, len(blocked)),
	}

	seen := make(map[int]int, len(rules))
	for _, r := range rules {
		seen[r.Weekday]++
	}

	for _, r := range rules {
		if seen[r.Weekday] != 1 || !r.IsOpen {
			continue
		}
		w, ok := windowOf(r)
		if !ok {
			continue
		}
		cal.windows[time.Weekday(r.Weekday)] = w
	}

	for _, b := range blocked {
		cal.blocked[b.Date] = b.Reason
	}

	return cal
}

func CalendarFor(h *models.Hangar) Calendar {
	return NewCalendar(h.OperatingRules, h.BlockedDates)
}

func windowOf(r models.OperatingRule) (Window, bool) {
	if r.Weekday < 0 || r.Weekday > 6 {
		return Window{}, false
	}
	open, err := ParseClock(r.OpenTime)
	if err != nil {
		return Window{}, false
	}
	closing, err := ParseClock(r.CloseTime)
	if err != nil || open >= closing {
		return Window{}, false
	}
	return Window{Open: open, Close: closing}, true
}

// IsBlocked consulta apenas a lista de exceções.
func (c Calendar) IsBlocked(date string) (string, bool) {
	reason, ok := c.blocked[date]
	return reason, ok
}

func (c Calendar) IsOpen(date time.Time) bool {
	_, ok := c.WindowFor(date)
	return ok
}

func (c Calendar) WindowFor(date time.Time) (Window, bool) {
	w, ok := c.windows[date.Weekday()]
	if !ok {
		return Window{}, false
	}
	if _, blocked := c.blocked[date.Format(timezone.DateLayout)]; blocked {
		return Window{}, false
	}
	return w, true
}

// OpenDates lista, a partir de from (inclusive), os próximos days dias abertos.
func (c Calendar) OpenDates(from time.Time, days int) []string {
	out := make([]string, 0, days)
	day := time.Date(from.Year(), from.Month(), from.Day(), 12, 0, 0, 0, from.Location())
	for i := 0; i < days; i++ {
		d := day.AddDate(0, 0, i)
		if c.IsOpen(d) {
			out = append(out, d.Format(timezone.DateLayout))
		}
	}
	return out
}

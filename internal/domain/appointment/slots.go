package appointment

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/hangar-scheduler/internal/timezone"
)

func ParseClock(hm string) (int, error) {
	t, err := time.Parse(timezone.ClockLayout, hm)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// NormalizeClock reescreve "8:05" como "08:05" para bater com as chaves de ocupação.
func NormalizeClock(hm string) (string, bool) {
	m, err := ParseClock(hm)
	if err != nil {
		return "", false
	}
	return FormatClock(m), true
}

// GenerateSlots enumera os horários de início dentro da janela, em passos de
// interval minutos. Um horário só entra se o slot inteiro couber antes do
// fechamento e se o instante (date + horário) for estritamente posterior a now.
func GenerateSlots(date time.Time, w Window, interval int, now time.Time) []string {
	if interval <= 0 || w.Open >= w.Close {
		return []string{}
	}

	loc := date.Location()
	slots := make([]string, 0, (w.Close-w.Open)/interval)

	for m := w.Open; m+interval <= w.Close; m += interval {
		start := time.Date(date.Year(), date.Month(), date.Day(), m/60, m%60, 0, 0, loc)
		if !start.After(now) {
			continue
		}
		slots = append(slots, FormatClock(m))
	}

	return slots
}

// SlotsFor junta calendário e gerador: dia fechado ou bloqueado não tem slots.
func SlotsFor(cal Calendar, date time.Time, interval int, now time.Time) []string {
	w, ok := cal.WindowFor(date)
	if !ok {
		return []string{}
	}
	return GenerateSlots(date, w, interval, now)
}

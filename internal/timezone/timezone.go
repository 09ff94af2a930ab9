package timezone

import (
	"time"
	_ "time/tzdata"
)

const (
	DefaultTimezone = "America/Sao_Paulo"

	DateLayout     = "2006-01-02"
	ClockLayout    = "15:04"
	DateTimeLayout = DateLayout + " " + ClockLayout
)

// Clock permite fixar o "agora" nos testes.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// NowIn converte o instante do relógio para o fuso do hangar.
func NowIn(clock Clock, tz string) time.Time {
	return clock.Now().In(Location(tz))
}

func Today(clock Clock, tz string) string {
	return NowIn(clock, tz).Format(DateLayout)
}

func ParseDate(tz, date string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, date, Location(tz))
}

func ParseDateTime(tz, date, clock string) (time.Time, error) {
	return time.ParseInLocation(DateTimeLayout, date+" "+clock, Location(tz))
}

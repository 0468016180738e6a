package timezone

import (
	"time"

	"github.com/BruksfildServices01/troia-reservas/internal/caldate"
)

const DefaultTimezone = "America/Sao_Paulo"

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
		// imagem sem tzdata: Brasil não tem horário de verão desde 2019
		return time.FixedZone("BRT", -3*60*60)
	}
	return loc
}

func Now() time.Time {
	return time.Now().In(Location(DefaultTimezone))
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// Today returns the restaurant's current calendar date.
func Today(tz string) caldate.Date {
	return caldate.Of(NowIn(tz))
}

// Clock yields the restaurant's "today"; tests swap it for a fixed date.
type Clock func() caldate.Date

func SystemClock(tz string) Clock {
	return func() caldate.Date { return Today(tz) }
}

func FixedClock(d caldate.Date) Clock {
	return func() caldate.Date { return d }
}

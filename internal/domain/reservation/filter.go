package reservation

import (
	"strings"

	"github.com/BruksfildServices01/troia-reservas/internal/caldate"
	"github.com/BruksfildServices01/troia-reservas/internal/httperr"
	"github.com/BruksfildServices01/troia-reservas/internal/models"
)

// ===============================
// Date modes
// ===============================

type DateMode string

const (
	DateModeAny       DateMode = ""
	DateModeExact     DateMode = "exact"
	DateModeToday     DateMode = "today"
	DateModeTomorrow  DateMode = "tomorrow"
	DateModeThisWeek  DateMode = "this_week"
	DateModeNext7Days DateMode = "next_7_days"
)

func ParseDateMode(raw string) (DateMode, error) {
	switch m := DateMode(strings.ToLower(strings.TrimSpace(raw))); m {
	case DateModeAny, DateModeExact, DateModeToday, DateModeTomorrow,
		DateModeThisWeek, DateModeNext7Days:
		return m, nil
	default:
		return "", httperr.ErrBusiness("invalid_date_mode")
	}
}

// ===============================
// Filter
// ===============================

// Filter é o estado dos filtros do painel. Campos vazios não filtram.
type Filter struct {
	Search   string
	DateMode DateMode
	Date     caldate.Date
	Period   string
	Guests   int
}

// Range returns the inclusive day window selected by the date mode.
// ok is false when the filter does not restrict dates.
func (f Filter) Range(today caldate.Date) (from, to caldate.Date, ok bool) {
	switch f.DateMode {
	case DateModeToday:
		return today, today, true
	case DateModeTomorrow:
		t := today.AddDays(1)
		return t, t, true
	case DateModeThisWeek:
		start := today.StartOfWeek()
		return start, start.AddDays(6), true
	case DateModeNext7Days:
		return today, today.AddDays(7), true
	case DateModeExact, DateModeAny:
		if f.Date.IsZero() {
			return caldate.Date{}, caldate.Date{}, false
		}
		return f.Date, f.Date, true
	}
	return caldate.Date{}, caldate.Date{}, false
}

func (f Filter) Match(r *models.Reservation, today caldate.Date) bool {
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(r.Name), q) &&
			!strings.Contains(strings.ToLower(r.Email), q) &&
			!strings.Contains(r.Phone, f.Search) {
			return false
		}
	}

	if from, to, ok := f.Range(today); ok && !r.Date.Between(from, to) {
		return false
	}

	if f.Period != "" && r.Period != f.Period {
		return false
	}

	if f.Guests > 0 {
		// só "6" significa 6 ou mais; os demais valores são exatos
		if f.Guests == LargePartyThreshold {
			if r.Guests < LargePartyThreshold {
				return false
			}
		} else if r.Guests != f.Guests {
			return false
		}
	}

	return true
}

// Apply keeps the order of the input.
func Apply(list []models.Reservation, f Filter, today caldate.Date) []models.Reservation {
	out := make([]models.Reservation, 0, len(list))
	for i := range list {
		if f.Match(&list[i], today) {
			out = append(out, list[i])
		}
	}
	return out
}

// ===============================
// Stats
// ===============================

type Stats struct {
	TotalReservations int `json:"total_reservations"`
	TotalGuests       int `json:"total_guests"`
	TodayReservations int `json:"today_reservations"`
}

func ComputeStats(list []models.Reservation, today caldate.Date) Stats {
	s := Stats{TotalReservations: len(list)}
	for _, r := range list {
		s.TotalGuests += r.Guests
		if r.Date.Equal(today) {
			s.TodayReservations++
		}
	}
	return s
}

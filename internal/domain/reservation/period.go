package reservation

import (
	"strings"

	"github.com/BruksfildServices01/troia-reservas/internal/httperr"
)

// ===============================
// Period
// ===============================

type Period string

const (
	PeriodAfternoon Period = "tarde"
	PeriodEvening   Period = "noite"
)

// ParsePeriod aceita os valores gravados no banco e os aliases em inglês.
func ParsePeriod(raw string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "tarde", "afternoon":
		return PeriodAfternoon, nil
	case "noite", "evening":
		return PeriodEvening, nil
	case "":
		return "", httperr.ErrBusiness(CodePeriodRequired)
	default:
		return "", httperr.ErrBusiness(CodeInvalidPeriod)
	}
}

func (p Period) Valid() bool {
	return p == PeriodAfternoon || p == PeriodEvening
}

// Label is the text shown to guests, e.g. "Tarde (12:00 - 18:00)".
func (p Period) Label() string {
	switch p {
	case PeriodAfternoon:
		return "Tarde (12:00 - 18:00)"
	case PeriodEvening:
		return "Noite (18:00 - 23:00)"
	default:
		return string(p)
	}
}

// ArrivalCutoff é o horário limite de chegada para manter a mesa.
func (p Period) ArrivalCutoff() string {
	switch p {
	case PeriodAfternoon:
		return "14:00"
	case PeriodEvening:
		return "19:00"
	default:
		return ""
	}
}

package reservation

import (
	"github.com/BruksfildServices01/troia-reservas/internal/caldate"
	"github.com/BruksfildServices01/troia-reservas/internal/httperr"
)

const (
	// DailyCapacity soma todos os períodos do dia.
	DailyCapacity = 110

	// Grupos acima disso são atendidos por mensagem direta.
	LargePartyThreshold = 6
)

type CapacityStatus struct {
	Date              caldate.Date `json:"reservation_date"`
	Capacity          int          `json:"capacity"`
	ReservationsCount int          `json:"reservations_count"`
	SeatsBooked       int          `json:"seats_booked"`
	SeatsRemaining    int          `json:"seats_remaining"`
}

// DefaultStatus is an empty day: used when the lookup fails or returns nothing.
func DefaultStatus(date caldate.Date) CapacityStatus {
	return CapacityStatus{
		Date:           date,
		Capacity:       DailyCapacity,
		SeatsRemaining: DailyCapacity,
	}
}

func (s CapacityStatus) Full() bool {
	return s.SeatsRemaining <= 0
}

// ===============================
// Admission
// ===============================

type Admission int

const (
	Admitted Admission = iota
	LargeParty
)

func IsLargeParty(guests int) bool {
	return guests > LargePartyThreshold
}

// Admit decide se o pedido segue para gravação.
// Grupos grandes não consomem lugares: saem antes da checagem de capacidade.
func Admit(guests int, status CapacityStatus) (Admission, error) {
	if IsLargeParty(guests) {
		return LargeParty, nil
	}

	if status.Full() {
		return Admitted, httperr.ErrBusiness(CodeCapacityFull)
	}

	if guests > status.SeatsRemaining {
		return Admitted, httperr.ErrBusinessWith(CodeInsufficientSeats, map[string]any{
			"seats_remaining": status.SeatsRemaining,
		})
	}

	return Admitted, nil
}

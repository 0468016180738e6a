package dto

import (
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/troia-reservas/internal/domain/reservation"
	"github.com/BruksfildServices01/troia-reservas/internal/models"
)

type ReservationDTO struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Guests       int       `json:"guests"`
	Date         string    `json:"date"`
	DateDisplay  string    `json:"date_display"`
	Periodo      string    `json:"periodo"`
	PeriodoLabel string    `json:"periodo_label"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewReservationDTO(r *models.Reservation) ReservationDTO {
	return ReservationDTO{
		ID:           r.ID,
		Name:         r.Name,
		Email:        r.Email,
		Phone:        r.Phone,
		Guests:       r.Guests,
		Date:         r.Date.String(),
		DateDisplay:  r.Date.Display(),
		Periodo:      r.Period,
		PeriodoLabel: domain.Period(r.Period).Label(),
		CreatedAt:    r.CreatedAt,
	}
}

func NewReservationList(list []models.Reservation) []ReservationDTO {
	out := make([]ReservationDTO, 0, len(list))
	for i := range list {
		out = append(out, NewReservationDTO(&list[i]))
	}
	return out
}

// ReservationListResponse é o payload do painel: linhas filtradas,
// contagens e estatísticas do conjunto completo.
type ReservationListResponse struct {
	Data  []ReservationDTO `json:"data"`
	Shown int              `json:"shown"`
	Total int              `json:"total"`
	Stats domain.Stats     `json:"stats"`
}

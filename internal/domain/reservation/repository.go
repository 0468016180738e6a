package reservation

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/troia-reservas/internal/caldate"
	"github.com/BruksfildServices01/troia-reservas/internal/models"
)

type Repository interface {
	// -------- Capacity --------
	GetCapacityStatus(
		ctx context.Context,
		date caldate.Date,
	) (*CapacityStatus, error)

	// -------- Reservation (write) --------
	CreateReservation(
		ctx context.Context,
		r *models.Reservation,
	) error

	UpdateReservation(
		ctx context.Context,
		r *models.Reservation,
	) error

	DeleteReservation(
		ctx context.Context,
		id uuid.UUID,
	) error

	// -------- Reservation (read) --------
	GetReservation(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Reservation, error)

	// ListReservations returns every reservation, newest day first.
	ListReservations(
		ctx context.Context,
	) ([]models.Reservation, error)

	ListReservationsByDate(
		ctx context.Context,
		date caldate.Date,
	) ([]models.Reservation, error)
}

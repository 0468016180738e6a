package reservation

import (
	"context"

	domain "github.com/BruksfildServices01/troia-reservas/internal/domain/reservation"
	"github.com/BruksfildServices01/troia-reservas/internal/models"
	"github.com/BruksfildServices01/troia-reservas/internal/timezone"
)

type ListReservationsResult struct {
	Reservations []models.Reservation
	Shown        int
	Total        int
	Stats        domain.Stats
}

// ListReservations loads every reservation and filters in memory, the way
// the dashboard always did; statistics cover the unfiltered set.
type ListReservations struct {
	repo  domain.Repository
	today timezone.Clock
}

func NewListReservations(repo domain.Repository, today timezone.Clock) *ListReservations {
	return &ListReservations{repo: repo, today: today}
}

func (uc *ListReservations) Execute(
	ctx context.Context,
	filter domain.Filter,
) (*ListReservationsResult, error) {

	all, err := uc.repo.ListReservations(ctx)
	if err != nil {
		return nil, err
	}

	today := uc.today()
	shown := domain.Apply(all, filter, today)

	return &ListReservationsResult{
		Reservations: shown,
		Shown:        len(shown),
		Total:        len(all),
		Stats:        domain.ComputeStats(all, today),
	}, nil
}

package reservation

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/troia-reservas/internal/audit"
	domain "github.com/BruksfildServices01/troia-reservas/internal/domain/reservation"
)

type DeleteReservationInput struct {
	ActorID *uuid.UUID
	ID      uuid.UUID
}

type DeleteReservation struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteReservation(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteReservation {
	return &DeleteReservation{repo: repo, audit: audit}
}

func (uc *DeleteReservation) Execute(ctx context.Context, in DeleteReservationInput) error {
	if err := uc.repo.DeleteReservation(ctx, in.ID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   in.ActorID,
		Action:   audit.ActionReservationDeleted,
		Entity:   audit.EntityReservation,
		EntityID: &in.ID,
	})
	return nil
}

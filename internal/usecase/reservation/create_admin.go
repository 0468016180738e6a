package reservation

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/troia-reservas/internal/audit"
	domain "github.com/BruksfildServices01/troia-reservas/internal/domain/reservation"
	"github.com/BruksfildServices01/troia-reservas/internal/httperr"
	"github.com/BruksfildServices01/troia-reservas/internal/models"
)

type CreateAdminReservationInput struct {
	ActorID *uuid.UUID
	domain.Input
}

// CreateAdminReservation is the dashboard's "nova reserva": no large-party
// redirect and no past-date rule, capacity left to the database.
type CreateAdminReservation struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateAdminReservation(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateAdminReservation {
	return &CreateAdminReservation{repo: repo, audit: audit}
}

func (uc *CreateAdminReservation) Execute(
	ctx context.Context,
	in CreateAdminReservationInput,
) (*models.Reservation, error) {

	draft, err := domain.Validate(in.Input)
	if err != nil {
		return nil, err
	}

	res := draft.Model()
	if err := uc.repo.CreateReservation(ctx, res); err != nil {
		return nil, mapAdminWriteError(err)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   in.ActorID,
		Action:   audit.ActionReservationCreated,
		Entity:   audit.EntityReservation,
		EntityID: &res.ID,
		Metadata: map[string]any{"date": res.Date.String(), "guests": res.Guests, "source": "admin"},
	})

	return res, nil
}

func mapAdminWriteError(err error) error {
	if errors.Is(err, domain.ErrCapacityViolation) {
		return httperr.ErrBusiness(domain.CodeCapacityFull)
	}
	return err
}

package reservation

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/troia-reservas/internal/audit"
	domain "github.com/BruksfildServices01/troia-reservas/internal/domain/reservation"
	"github.com/BruksfildServices01/troia-reservas/internal/models"
)

// UpdateReservationInput: nil fields keep their current value.
type UpdateReservationInput struct {
	ActorID *uuid.UUID
	ID      uuid.UUID

	Name   *string
	Email  *string
	Phone  *string
	Guests *int
	Date   *string
	Period *string
}

type UpdateReservation struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateReservation(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateReservation {
	return &UpdateReservation{repo: repo, audit: audit}
}

func (uc *UpdateReservation) Execute(
	ctx context.Context,
	in UpdateReservationInput,
) (*models.Reservation, error) {

	current, err := uc.repo.GetReservation(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	merged := domain.InputFrom(current)
	if in.Name != nil {
		merged.Name = *in.Name
	}
	if in.Email != nil {
		merged.Email = *in.Email
	}
	if in.Phone != nil {
		merged.Phone = *in.Phone
	}
	if in.Guests != nil {
		merged.Guests = *in.Guests
	}
	if in.Date != nil {
		merged.Date = *in.Date
	}
	if in.Period != nil {
		merged.Period = *in.Period
	}

	draft, err := domain.Validate(merged)
	if err != nil {
		return nil, err
	}

	res := draft.Model()
	res.ID = current.ID
	res.CreatedAt = current.CreatedAt

	if err := uc.repo.UpdateReservation(ctx, res); err != nil {
		return nil, mapAdminWriteError(err)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   in.ActorID,
		Action:   audit.ActionReservationUpdated,
		Entity:   audit.EntityReservation,
		EntityID: &res.ID,
		Metadata: map[string]any{
			"before": map[string]any{"date": current.Date.String(), "guests": current.Guests, "periodo": current.Period},
			"after":  map[string]any{"date": res.Date.String(), "guests": res.Guests, "periodo": res.Period},
		},
	})

	return res, nil
}

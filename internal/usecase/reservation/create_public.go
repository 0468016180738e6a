package reservation

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/BruksfildServices01/troia-reservas/internal/audit"
	domain "github.com/BruksfildServices01/troia-reservas/internal/domain/reservation"
	"github.com/BruksfildServices01/troia-reservas/internal/httperr"
	"github.com/BruksfildServices01/troia-reservas/internal/logger"
	"github.com/BruksfildServices01/troia-reservas/internal/models"
	"github.com/BruksfildServices01/troia-reservas/internal/timezone"
)

const ConfirmationPath = "/obrigado"

// ======================================================
// OUTPUT
// ======================================================

// CreatePublicResult holds either a created reservation or, for large
// parties, the external link the guest is sent to instead.
type CreatePublicResult struct {
	Reservation     *models.Reservation
	ConfirmationURL string
	RedirectURL     string
}

func (r CreatePublicResult) Redirected() bool {
	return r.RedirectURL != ""
}

// ======================================================
// USE CASE
// ======================================================

type CreatePublicReservation struct {
	repo          domain.Repository
	capacity      *CheckCapacity
	audit         *audit.Dispatcher
	today         timezone.Clock
	largePartyURL string
	log           *logger.Logger
}

func NewCreatePublicReservation(
	repo domain.Repository,
	capacity *CheckCapacity,
	audit *audit.Dispatcher,
	today timezone.Clock,
	largePartyURL string,
	log *logger.Logger,
) *CreatePublicReservation {
	return &CreatePublicReservation{
		repo:          repo,
		capacity:      capacity,
		audit:         audit,
		today:         today,
		largePartyURL: largePartyURL,
		log:           log,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreatePublicReservation) Execute(
	ctx context.Context,
	in domain.Input,
) (*CreatePublicResult, error) {

	// --------------------------------------------------
	// 1️⃣ Campos
	// --------------------------------------------------
	draft, err := domain.Validate(in)
	if err != nil {
		return nil, err
	}

	if err := draft.NotInPast(uc.today()); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2️⃣ Grupo grande: atendimento direto, nada é gravado
	// --------------------------------------------------
	if domain.IsLargeParty(draft.Guests) {
		uc.audit.Dispatch(audit.Event{
			Action:   audit.ActionLargePartyRedirect,
			Entity:   audit.EntityReservation,
			Metadata: map[string]any{"date": draft.Date.String(), "guests": draft.Guests},
		})
		return &CreatePublicResult{RedirectURL: uc.largePartyURL}, nil
	}

	// --------------------------------------------------
	// 3️⃣ Lugares disponíveis
	// --------------------------------------------------
	status := uc.capacity.Execute(ctx, draft.Date)
	if _, err := domain.Admit(draft.Guests, status); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4️⃣ Gravação (o trigger decide corridas)
	// --------------------------------------------------
	res := draft.Model()
	if err := uc.repo.CreateReservation(ctx, res); err != nil {
		if errors.Is(err, domain.ErrCapacityViolation) {
			uc.log.Warn("RESERVATION", fmt.Sprintf("capacity race on %s: %v", draft.Date, err))
			return nil, httperr.ErrBusiness(domain.CodeCapacityRace)
		}
		uc.log.Error("RESERVATION", fmt.Sprintf("insert failed: %v", err))
		return nil, httperr.ErrBusiness(domain.CodeReservationFailed)
	}

	uc.log.LogReservation("CREATE", res.ID.String(), fmt.Sprintf("%d pessoas em %s (%s)", res.Guests, res.Date, res.Period))

	// --------------------------------------------------
	// 5️⃣ Auditoria
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		Action:   audit.ActionReservationCreated,
		Entity:   audit.EntityReservation,
		EntityID: &res.ID,
		Metadata: map[string]any{"date": res.Date.String(), "guests": res.Guests, "source": "public"},
	})

	return &CreatePublicResult{
		Reservation:     res,
		ConfirmationURL: ConfirmationURL(res),
	}, nil
}

// ConfirmationURL carries the summary shown on the thank-you page.
func ConfirmationURL(r *models.Reservation) string {
	q := url.Values{}
	q.Set("name", r.Name)
	q.Set("date", r.Date.String())
	q.Set("periodo", r.Period)
	q.Set("guests", strconv.Itoa(r.Guests))
	return ConfirmationPath + "?" + q.Encode()
}

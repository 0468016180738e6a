package reservation

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/troia-reservas/internal/audit"
	"github.com/BruksfildServices01/troia-reservas/internal/caldate"
	domain "github.com/BruksfildServices01/troia-reservas/internal/domain/reservation"
	"github.com/BruksfildServices01/troia-reservas/internal/export"
	"github.com/BruksfildServices01/troia-reservas/internal/httperr"
	"github.com/BruksfildServices01/troia-reservas/internal/logger"
	"github.com/BruksfildServices01/troia-reservas/internal/models"
)

type Exporter interface {
	Export(ctx context.Context, date caldate.Date, list []models.Reservation) (*export.Result, error)
}

type ExportDayInput struct {
	ActorID *uuid.UUID
	Date    string
}

type ExportDay struct {
	repo     domain.Repository
	exporter Exporter
	audit    *audit.Dispatcher
	log      *logger.Logger
}

// NewExportDay accepts a nil exporter: the operation then reports
// export_unavailable.
func NewExportDay(
	repo domain.Repository,
	exporter Exporter,
	audit *audit.Dispatcher,
	log *logger.Logger,
) *ExportDay {
	return &ExportDay{repo: repo, exporter: exporter, audit: audit, log: log}
}

func (uc *ExportDay) Execute(ctx context.Context, in ExportDayInput) (*export.Result, error) {
	if uc.exporter == nil {
		return nil, httperr.ErrBusiness("export_unavailable")
	}

	date, err := caldate.Parse(in.Date)
	if err != nil {
		return nil, httperr.ErrBusiness(domain.CodeInvalidDate)
	}

	list, err := uc.repo.ListReservationsByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	res, err := uc.exporter.Export(ctx, date, list)
	if err != nil {
		uc.log.Error("EXPORT", fmt.Sprintf("export %s failed: %v", date, err))
		return nil, httperr.ErrBusiness("export_failed")
	}

	uc.log.Info("EXPORT", fmt.Sprintf("%d reservas de %s enviadas para s3://%s/%s", res.Rows, date, res.Bucket, res.Key))

	uc.audit.Dispatch(audit.Event{
		UserID:   in.ActorID,
		Action:   audit.ActionReservationsExport,
		Entity:   audit.EntityReservation,
		Metadata: map[string]any{"date": date.String(), "rows": res.Rows, "key": res.Key},
	})

	return res, nil
}

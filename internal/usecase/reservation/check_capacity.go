package reservation

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/troia-reservas/internal/caldate"
	domain "github.com/BruksfildServices01/troia-reservas/internal/domain/reservation"
	"github.com/BruksfildServices01/troia-reservas/internal/logger"
)

// ======================================================
// USE CASE
// ======================================================

type CheckCapacity struct {
	repo domain.Repository
	log  *logger.Logger
}

func NewCheckCapacity(repo domain.Repository, log *logger.Logger) *CheckCapacity {
	return &CheckCapacity{repo: repo, log: log}
}

// Execute never fails: if the lookup errors the day is treated as empty
// and the database trigger remains the final word on capacity.
func (uc *CheckCapacity) Execute(ctx context.Context, date caldate.Date) domain.CapacityStatus {
	status, err := uc.repo.GetCapacityStatus(ctx, date)
	if err != nil {
		uc.log.Warn("CAPACITY", fmt.Sprintf("status lookup for %s failed, assuming empty day: %v", date, err))
		return domain.DefaultStatus(date)
	}
	if status == nil {
		return domain.DefaultStatus(date)
	}

	out := *status
	out.Date = date
	return out
}

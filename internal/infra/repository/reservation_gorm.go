package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/troia-reservas/internal/caldate"
	domain "github.com/BruksfildServices01/troia-reservas/internal/domain/reservation"
	"github.com/BruksfildServices01/troia-reservas/internal/models"
)

// SQLSTATE check_violation, raised by the daily capacity trigger.
const pgCheckViolation = "23514"

type ReservationGormRepository struct {
	db *gorm.DB
}

func NewReservationGormRepository(db *gorm.DB) *ReservationGormRepository {
	return &ReservationGormRepository{db: db}
}

// --------------------------------------------------
// Capacity
// --------------------------------------------------

type capacityRow struct {
	ReservationDate   caldate.Date
	Capacity          int
	ReservationsCount int
	SeatsBooked       int
	SeatsRemaining    int
}

func (r *ReservationGormRepository) GetCapacityStatus(
	ctx context.Context,
	date caldate.Date,
) (*domain.CapacityStatus, error) {

	var rows []capacityRow
	if err := r.db.WithContext(ctx).
		Raw("SELECT * FROM get_reservations_status(?)", date).
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("get_reservations_status: %w", err)
	}

	if len(rows) == 0 {
		status := domain.DefaultStatus(date)
		return &status, nil
	}

	row := rows[0]
	return &domain.CapacityStatus{
		Date:              date,
		Capacity:          row.Capacity,
		ReservationsCount: row.ReservationsCount,
		SeatsBooked:       row.SeatsBooked,
		SeatsRemaining:    row.SeatsRemaining,
	}, nil
}

// --------------------------------------------------
// Reservation (write)
// --------------------------------------------------

func (r *ReservationGormRepository) CreateReservation(
	ctx context.Context,
	res *models.Reservation,
) error {
	return mapWriteError(r.db.WithContext(ctx).Create(res).Error)
}

func (r *ReservationGormRepository) UpdateReservation(
	ctx context.Context,
	res *models.Reservation,
) error {

	tx := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("id = ?", res.ID).
		Updates(map[string]any{
			"name":    res.Name,
			"email":   res.Email,
			"phone":   res.Phone,
			"guests":  res.Guests,
			"date":    res.Date,
			"periodo": res.Period,
		})
	if err := mapWriteError(tx.Error); err != nil {
		return err
	}
	if tx.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ReservationGormRepository) DeleteReservation(
	ctx context.Context,
	id uuid.UUID,
) error {

	tx := r.db.WithContext(ctx).Delete(&models.Reservation{}, "id = ?", id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// --------------------------------------------------
// Reservation (read)
// --------------------------------------------------

func (r *ReservationGormRepository) GetReservation(
	ctx context.Context,
	id uuid.UUID,
) (*models.Reservation, error) {

	var res models.Reservation
	if err := r.db.WithContext(ctx).First(&res, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &res, nil
}

func (r *ReservationGormRepository) ListReservations(
	ctx context.Context,
) ([]models.Reservation, error) {

	var list []models.Reservation
	if err := r.db.WithContext(ctx).
		Order("date DESC").
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *ReservationGormRepository) ListReservationsByDate(
	ctx context.Context,
	date caldate.Date,
) ([]models.Reservation, error) {

	var list []models.Reservation
	if err := r.db.WithContext(ctx).
		Where("date = ?", date).
		Order("periodo ASC").
		Order("created_at ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// --------------------------------------------------
// Errors
// --------------------------------------------------

// IsCapacityViolation reconhece a recusa do trigger de lotação,
// pelo código SQLSTATE ou pela mensagem.
func IsCapacityViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgCheckViolation {
		return true
	}
	return strings.Contains(err.Error(), "capacidade diária")
}

func mapWriteError(err error) error {
	if err == nil {
		return nil
	}
	if IsCapacityViolation(err) {
		return fmt.Errorf("%w: %v", domain.ErrCapacityViolation, err)
	}
	return err
}

var _ domain.Repository = (*ReservationGormRepository)(nil)

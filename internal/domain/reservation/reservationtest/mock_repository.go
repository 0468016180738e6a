// Package reservationtest holds test doubles for the reservation domain.
package reservationtest

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/BruksfildServices01/troia-reservas/internal/caldate"
	domain "github.com/BruksfildServices01/troia-reservas/internal/domain/reservation"
	"github.com/BruksfildServices01/troia-reservas/internal/models"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetCapacityStatus(ctx context.Context, date caldate.Date) (*domain.CapacityStatus, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CapacityStatus), args.Error(1)
}

func (m *MockRepository) CreateReservation(ctx context.Context, r *models.Reservation) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRepository) UpdateReservation(ctx context.Context, r *models.Reservation) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRepository) DeleteReservation(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) GetReservation(ctx context.Context, id uuid.UUID) (*models.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reservation), args.Error(1)
}

func (m *MockRepository) ListReservations(ctx context.Context) ([]models.Reservation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Reservation), args.Error(1)
}

func (m *MockRepository) ListReservationsByDate(ctx context.Context, date caldate.Date) ([]models.Reservation, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Reservation), args.Error(1)
}

// Status builds the row get_reservations_status would return for booked seats.
func Status(date caldate.Date, count, booked int) *domain.CapacityStatus {
	remaining := domain.DailyCapacity - booked
	if remaining < 0 {
		remaining = 0
	}
	return &domain.CapacityStatus{
		Date:              date,
		Capacity:          domain.DailyCapacity,
		ReservationsCount: count,
		SeatsBooked:       booked,
		SeatsRemaining:    remaining,
	}
}

var _ domain.Repository = (*MockRepository)(nil)

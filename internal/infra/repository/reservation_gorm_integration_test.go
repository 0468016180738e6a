//go:build integration

package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/troia-reservas/internal/caldate"
	dbpkg "github.com/BruksfildServices01/troia-reservas/internal/db"
	domain "github.com/BruksfildServices01/troia-reservas/internal/domain/reservation"
	"github.com/BruksfildServices01/troia-reservas/internal/models"
)

func startPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping Postgres integration test in short mode")
	}

	ctx := context.Background()
	pg, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "troia",
				"POSTGRES_PASSWORD": "troia",
				"POSTGRES_DB":       "troia",
			},
			// o entrypoint reinicia o servidor uma vez depois do init
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(ctx) })

	host, err := pg.Host(ctx)
	require.NoError(t, err)
	port, err := pg.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://troia:troia@%s:%s/troia?sslmode=disable", host, port.Port())
	db, err := dbpkg.Open(dsn)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	_, err = dbpkg.Migrate(sqlDB)
	require.NoError(t, err)

	return db
}

func newReservation(date caldate.Date, guests int, name string) *models.Reservation {
	return &models.Reservation{
		Name:   name,
		Email:  "teste@troia.com.br",
		Phone:  "(22) 99999-0000",
		Guests: guests,
		Date:   date,
		Period: string(domain.PeriodEvening),
	}
}

func TestReservationRepositoryIntegration(t *testing.T) {
	db := startPostgres(t)
	repo := NewReservationGormRepository(db)
	ctx := context.Background()

	t.Run("capacity status sums the day", func(t *testing.T) {
		date := caldate.MustParse("2031-03-10")

		status, err := repo.GetCapacityStatus(ctx, date)
		require.NoError(t, err)
		assert.Equal(t, domain.DailyCapacity, status.SeatsRemaining)

		require.NoError(t, repo.CreateReservation(ctx, newReservation(date, 4, "João Silva")))
		require.NoError(t, repo.CreateReservation(ctx, newReservation(date, 6, "Pedro Oliveira")))

		status, err = repo.GetCapacityStatus(ctx, date)
		require.NoError(t, err)
		assert.Equal(t, 2, status.ReservationsCount)
		assert.Equal(t, 10, status.SeatsBooked)
		assert.Equal(t, status.Capacity, status.SeatsBooked+status.SeatsRemaining)
	})

	t.Run("trigger rejects overbooking", func(t *testing.T) {
		date := caldate.MustParse("2031-03-11")

		require.NoError(t, repo.CreateReservation(ctx, newReservation(date, 108, "Evento")))

		err := repo.CreateReservation(ctx, newReservation(date, 3, "Maria Santos"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrCapacityViolation))

		require.NoError(t, repo.CreateReservation(ctx, newReservation(date, 2, "Maria Santos")))
	})

	t.Run("concurrent inserts admit exactly one", func(t *testing.T) {
		date := caldate.MustParse("2031-03-12")

		var (
			wg       sync.WaitGroup
			mu       sync.Mutex
			ok, full int
		)
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				err := repo.CreateReservation(ctx, newReservation(date, 60, fmt.Sprintf("Grupo %d", i)))

				mu.Lock()
				defer mu.Unlock()
				switch {
				case err == nil:
					ok++
				case errors.Is(err, domain.ErrCapacityViolation):
					full++
				default:
					t.Errorf("unexpected error: %v", err)
				}
			}(i)
		}
		wg.Wait()

		assert.Equal(t, 1, ok)
		assert.Equal(t, 1, full)

		status, err := repo.GetCapacityStatus(ctx, date)
		require.NoError(t, err)
		assert.Equal(t, 60, status.SeatsBooked)
	})

	t.Run("update excludes its own row", func(t *testing.T) {
		date := caldate.MustParse("2031-03-13")
		res := newReservation(date, 100, "Casamento")
		require.NoError(t, repo.CreateReservation(ctx, res))

		res.Guests = 110
		require.NoError(t, repo.UpdateReservation(ctx, res))

		res.Guests = 111
		assert.True(t, errors.Is(repo.UpdateReservation(ctx, res), domain.ErrCapacityViolation))
	})

	t.Run("delete frees seats", func(t *testing.T) {
		date := caldate.MustParse("2031-03-14")
		res := newReservation(date, 5, "Ana")
		require.NoError(t, repo.CreateReservation(ctx, res))

		require.NoError(t, repo.DeleteReservation(ctx, res.ID))

		status, err := repo.GetCapacityStatus(ctx, date)
		require.NoError(t, err)
		assert.Equal(t, 0, status.SeatsBooked)

		list, err := repo.ListReservationsByDate(ctx, date)
		require.NoError(t, err)
		assert.Empty(t, list)

		assert.ErrorIs(t, repo.DeleteReservation(ctx, res.ID), domain.ErrNotFound)
		_, err = repo.GetReservation(ctx, res.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

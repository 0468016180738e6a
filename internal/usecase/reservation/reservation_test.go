package reservation

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/troia-reservas/internal/audit"
	"github.com/BruksfildServices01/troia-reservas/internal/caldate"
	domain "github.com/BruksfildServices01/troia-reservas/internal/domain/reservation"
	"github.com/BruksfildServices01/troia-reservas/internal/domain/reservation/reservationtest"
	"github.com/BruksfildServices01/troia-reservas/internal/export"
	"github.com/BruksfildServices01/troia-reservas/internal/httperr"
	"github.com/BruksfildServices01/troia-reservas/internal/logger"
	"github.com/BruksfildServices01/troia-reservas/internal/models"
	"github.com/BruksfildServices01/troia-reservas/internal/timezone"
)

const largePartyURL = "https://ig.me/m/troiacabofrio?ref=w43934699"

var (
	today     = caldate.MustParse("2025-12-01")
	christmas = caldate.MustParse("2025-12-25")
)

type recordingSink struct {
	events chan audit.Event
}

func (s *recordingSink) Record(_ context.Context, ev audit.Event) error {
	s.events <- ev
	return nil
}

func newDispatcher(t *testing.T) (*audit.Dispatcher, *recordingSink) {
	sink := &recordingSink{events: make(chan audit.Event, 10)}
	d := audit.NewDispatcher(logger.Discard(), sink)
	t.Cleanup(d.Close)
	return d, sink
}

func newCreatePublic(t *testing.T, repo domain.Repository) (*CreatePublicReservation, *recordingSink) {
	d, sink := newDispatcher(t)
	uc := NewCreatePublicReservation(
		repo,
		NewCheckCapacity(repo, logger.Discard()),
		d,
		timezone.FixedClock(today),
		largePartyURL,
		logger.Discard(),
	)
	return uc, sink
}

func input(guests int) domain.Input {
	return domain.Input{
		Name:   "Maria Santos",
		Email:  "maria@example.com",
		Phone:  "(22) 98888-0002",
		Guests: guests,
		Date:   "2025-12-25",
		Period: "noite",
	}
}

// ======================================================
// CHECK CAPACITY
// ======================================================

func TestCheckCapacityFailsOpen(t *testing.T) {
	repo := &reservationtest.MockRepository{}
	repo.On("GetCapacityStatus", mock.Anything, christmas).Return(nil, errors.New("connection refused"))

	s := NewCheckCapacity(repo, logger.Discard()).Execute(context.Background(), christmas)

	assert.Equal(t, domain.DefaultStatus(christmas), s)
}

func TestCheckCapacityKeepsInvariant(t *testing.T) {
	for _, booked := range []int{0, 1, 55, 109, 110} {
		repo := &reservationtest.MockRepository{}
		repo.On("GetCapacityStatus", mock.Anything, christmas).
			Return(reservationtest.Status(christmas, 1, booked), nil)

		s := NewCheckCapacity(repo, logger.Discard()).Execute(context.Background(), christmas)
		assert.Equal(t, s.Capacity, s.SeatsBooked+s.SeatsRemaining, "booked=%d", booked)
	}
}

// ======================================================
// CREATE PUBLIC
// ======================================================

func TestCreatePublicLargePartyNeverInserts(t *testing.T) {
	repo := &reservationtest.MockRepository{}
	uc, sink := newCreatePublic(t, repo)

	for _, guests := range []int{7, 12, 40} {
		res, err := uc.Execute(context.Background(), input(guests))
		require.NoError(t, err)
		assert.True(t, res.Redirected())
		assert.Equal(t, largePartyURL, res.RedirectURL)
		assert.Nil(t, res.Reservation)
	}

	repo.AssertNotCalled(t, "CreateReservation", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "GetCapacityStatus", mock.Anything, mock.Anything)
	assert.Equal(t, audit.ActionLargePartyRedirect, (<-sink.events).Action)
}

func TestCreatePublicSuccess(t *testing.T) {
	repo := &reservationtest.MockRepository{}
	repo.On("GetCapacityStatus", mock.Anything, christmas).
		Return(reservationtest.Status(christmas, 10, 100), nil)
	repo.On("CreateReservation", mock.Anything, mock.MatchedBy(func(r *models.Reservation) bool {
		return r.Guests == 6 && r.Date == christmas && r.Period == "noite"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Reservation).ID = uuid.New()
	}).Return(nil).Once()

	uc, sink := newCreatePublic(t, repo)
	res, err := uc.Execute(context.Background(), input(6))
	require.NoError(t, err)
	require.NotNil(t, res.Reservation)
	assert.False(t, res.Redirected())

	u, err := url.Parse(res.ConfirmationURL)
	require.NoError(t, err)
	assert.Equal(t, "/obrigado", u.Path)
	assert.Equal(t, "Maria Santos", u.Query().Get("name"))
	assert.Equal(t, "2025-12-25", u.Query().Get("date"))
	assert.Equal(t, "noite", u.Query().Get("periodo"))
	assert.Equal(t, "6", u.Query().Get("guests"))

	ev := <-sink.events
	assert.Equal(t, audit.ActionReservationCreated, ev.Action)
	assert.Equal(t, res.Reservation.ID, *ev.EntityID)
	repo.AssertExpectations(t)
}

func TestCreatePublicCapacityFull(t *testing.T) {
	repo := &reservationtest.MockRepository{}
	repo.On("GetCapacityStatus", mock.Anything, christmas).
		Return(reservationtest.Status(christmas, 30, 110), nil)

	uc, _ := newCreatePublic(t, repo)
	_, err := uc.Execute(context.Background(), input(2))

	assert.True(t, httperr.IsBusiness(err, domain.CodeCapacityFull))
	repo.AssertNotCalled(t, "CreateReservation", mock.Anything, mock.Anything)
}

func TestCreatePublicInsufficientSeats(t *testing.T) {
	repo := &reservationtest.MockRepository{}
	repo.On("GetCapacityStatus", mock.Anything, christmas).
		Return(reservationtest.Status(christmas, 30, 107), nil)

	uc, _ := newCreatePublic(t, repo)
	_, err := uc.Execute(context.Background(), input(4))

	be, ok := httperr.AsBusiness(err)
	require.True(t, ok)
	assert.Equal(t, domain.CodeInsufficientSeats, be.Code)
	assert.Equal(t, 3, be.Details["seats_remaining"])
}

func TestCreatePublicProceedsWhenLookupFails(t *testing.T) {
	repo := &reservationtest.MockRepository{}
	repo.On("GetCapacityStatus", mock.Anything, christmas).Return(nil, errors.New("timeout"))
	repo.On("CreateReservation", mock.Anything, mock.Anything).Return(nil).Once()

	uc, _ := newCreatePublic(t, repo)
	res, err := uc.Execute(context.Background(), input(2))

	require.NoError(t, err)
	assert.NotNil(t, res.Reservation)
	repo.AssertExpectations(t)
}

func TestCreatePublicMapsTriggerRejectionToRace(t *testing.T) {
	repo := &reservationtest.MockRepository{}
	repo.On("GetCapacityStatus", mock.Anything, christmas).
		Return(reservationtest.Status(christmas, 30, 100), nil)
	repo.On("CreateReservation", mock.Anything, mock.Anything).
		Return(fmt.Errorf("%w: ERROR: capacidade diária de 110 lugares excedida", domain.ErrCapacityViolation))

	uc, _ := newCreatePublic(t, repo)
	_, err := uc.Execute(context.Background(), input(4))

	assert.True(t, httperr.IsBusiness(err, domain.CodeCapacityRace))
}

func TestCreatePublicUnknownFailure(t *testing.T) {
	repo := &reservationtest.MockRepository{}
	repo.On("GetCapacityStatus", mock.Anything, christmas).
		Return(reservationtest.Status(christmas, 0, 0), nil)
	repo.On("CreateReservation", mock.Anything, mock.Anything).Return(errors.New("connection reset"))

	uc, _ := newCreatePublic(t, repo)
	_, err := uc.Execute(context.Background(), input(2))

	assert.True(t, httperr.IsBusiness(err, domain.CodeReservationFailed))
}

func TestCreatePublicValidatesBeforeTouchingStorage(t *testing.T) {
	repo := &reservationtest.MockRepository{}
	uc, _ := newCreatePublic(t, repo)

	in := input(2)
	in.Phone = ""
	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, domain.CodePhoneRequired))

	in = input(2)
	in.Date = "2025-11-30"
	_, err = uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, domain.CodeDateInPast))

	repo.AssertNotCalled(t, "GetCapacityStatus", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "CreateReservation", mock.Anything, mock.Anything)
}

// ======================================================
// ADMIN
// ======================================================

func TestCreateAdminSkipsRedirectAndMapsCapacity(t *testing.T) {
	repo := &reservationtest.MockRepository{}
	repo.On("CreateReservation", mock.Anything, mock.MatchedBy(func(r *models.Reservation) bool {
		return r.Guests == 10
	})).Return(nil).Once()
	repo.On("CreateReservation", mock.Anything, mock.Anything).
		Return(domain.ErrCapacityViolation).Once()

	d, _ := newDispatcher(t)
	uc := NewCreateAdminReservation(repo, d)

	in := input(10)
	in.Date = "2020-01-01"
	res, err := uc.Execute(context.Background(), CreateAdminReservationInput{Input: in})
	require.NoError(t, err)
	assert.Equal(t, 10, res.Guests)

	_, err = uc.Execute(context.Background(), CreateAdminReservationInput{Input: input(2)})
	assert.True(t, httperr.IsBusiness(err, domain.CodeCapacityFull))
}

func TestUpdateMergesAndRevalidates(t *testing.T) {
	id := uuid.New()
	current := &models.Reservation{
		ID: id, Name: "Pedro Oliveira", Email: "pedro@example.com", Phone: "(22) 97777-0003",
		Guests: 2, Date: christmas, Period: "tarde",
	}

	repo := &reservationtest.MockRepository{}
	repo.On("GetReservation", mock.Anything, id).Return(current, nil)
	repo.On("UpdateReservation", mock.Anything, mock.MatchedBy(func(r *models.Reservation) bool {
		return r.ID == id && r.Guests == 5 && r.Period == "noite" && r.Name == "Pedro Oliveira"
	})).Return(nil).Once()

	d, sink := newDispatcher(t)
	uc := NewUpdateReservation(repo, d)

	guests, period := 5, "evening"
	res, err := uc.Execute(context.Background(), UpdateReservationInput{ID: id, Guests: &guests, Period: &period})
	require.NoError(t, err)
	assert.Equal(t, "noite", res.Period)
	assert.Equal(t, audit.ActionReservationUpdated, (<-sink.events).Action)

	empty := ""
	_, err = uc.Execute(context.Background(), UpdateReservationInput{ID: id, Email: &empty})
	assert.True(t, httperr.IsBusiness(err, domain.CodeEmailRequired))

	repo.AssertExpectations(t)
}

func TestUpdateNotFound(t *testing.T) {
	id := uuid.New()
	repo := &reservationtest.MockRepository{}
	repo.On("GetReservation", mock.Anything, id).Return(nil, domain.ErrNotFound)

	d, _ := newDispatcher(t)
	_, err := NewUpdateReservation(repo, d).Execute(context.Background(), UpdateReservationInput{ID: id})
	assert.True(t, httperr.IsBusiness(err, domain.CodeNotFound))
}

func TestDelete(t *testing.T) {
	id := uuid.New()
	repo := &reservationtest.MockRepository{}
	repo.On("DeleteReservation", mock.Anything, id).Return(nil).Once()
	repo.On("DeleteReservation", mock.Anything, mock.Anything).Return(domain.ErrNotFound)

	d, sink := newDispatcher(t)
	uc := NewDeleteReservation(repo, d)

	require.NoError(t, uc.Execute(context.Background(), DeleteReservationInput{ID: id}))
	assert.Equal(t, audit.ActionReservationDeleted, (<-sink.events).Action)

	err := uc.Execute(context.Background(), DeleteReservationInput{ID: uuid.New()})
	assert.True(t, httperr.IsBusiness(err, domain.CodeNotFound))
}

func TestListFiltersAndCountsAll(t *testing.T) {
	all := []models.Reservation{
		{Name: "A", Guests: 2, Date: today.AddDays(8), Period: "noite"},
		{Name: "B", Guests: 4, Date: today.AddDays(7), Period: "noite"},
		{Name: "C", Guests: 3, Date: today, Period: "tarde"},
	}
	repo := &reservationtest.MockRepository{}
	repo.On("ListReservations", mock.Anything).Return(all, nil)

	res, err := NewListReservations(repo, timezone.FixedClock(today)).
		Execute(context.Background(), domain.Filter{DateMode: domain.DateModeNext7Days})
	require.NoError(t, err)

	assert.Equal(t, 2, res.Shown)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, domain.Stats{TotalReservations: 3, TotalGuests: 9, TodayReservations: 1}, res.Stats)
	assert.Equal(t, "B", res.Reservations[0].Name)
}

// ======================================================
// EXPORT
// ======================================================

type fakeExporter struct {
	rows int
	err  error
}

func (f *fakeExporter) Export(_ context.Context, date caldate.Date, list []models.Reservation) (*export.Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.rows = len(list)
	return &export.Result{Bucket: "b", Key: "reservas-" + date.String() + ".csv", Rows: len(list)}, nil
}

func TestExportDay(t *testing.T) {
	repo := &reservationtest.MockRepository{}
	repo.On("ListReservationsByDate", mock.Anything, christmas).
		Return([]models.Reservation{{Name: "A"}, {Name: "B"}}, nil)

	d, _ := newDispatcher(t)
	exp := &fakeExporter{}

	res, err := NewExportDay(repo, exp, d, logger.Discard()).
		Execute(context.Background(), ExportDayInput{Date: "2025-12-25"})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Rows)

	_, err = NewExportDay(repo, exp, d, logger.Discard()).
		Execute(context.Background(), ExportDayInput{Date: "25/12/2025"})
	assert.True(t, httperr.IsBusiness(err, domain.CodeInvalidDate))

	_, err = NewExportDay(repo, nil, d, logger.Discard()).
		Execute(context.Background(), ExportDayInput{Date: "2025-12-25"})
	assert.True(t, httperr.IsBusiness(err, "export_unavailable"))

	_, err = NewExportDay(repo, &fakeExporter{err: errors.New("denied")}, d, logger.Discard()).
		Execute(context.Background(), ExportDayInput{Date: "2025-12-25"})
	assert.True(t, httperr.IsBusiness(err, "export_failed"))
}

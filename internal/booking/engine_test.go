package booking_test

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hotel-reservation/internal/booking"
	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/queue"
	"github.com/iliyamo/hotel-reservation/internal/storage/memory"
)

// fakeEnqueuer records enqueued jobs and can be told to fail.
type fakeEnqueuer struct {
	mu   sync.Mutex
	jobs []queue.NotificationJob
	fail bool
}

func (f *fakeEnqueuer) Enqueue(_ context.Context, job queue.NotificationJob) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("broker unreachable")
	}
	f.jobs = append(f.jobs, job)
	return nil
}

func (f *fakeEnqueuer) all() []queue.NotificationJob {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]queue.NotificationJob(nil), f.jobs...)
}

type fixture struct {
	store    *memory.Store
	engine   *booking.Engine
	enqueuer *fakeEnqueuer
	hotel    model.Hotel
	room     model.Room
	customer model.Customer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.New()
	hotel := store.AddHotel(model.Hotel{Name: "Seaside Grand", Email: "booking@seaside.example"})
	room := store.AddRoom(model.Room{HotelID: hotel.ID, Number: 101, Complement: "sea view", IsAvailable: true})
	customer := store.AddCustomer(model.Customer{UserID: 1, Name: "Alice", Email: "alice@example.com"})
	enq := &fakeEnqueuer{}
	return &fixture{
		store:    store,
		engine:   booking.NewEngine(store, enq),
		enqueuer: enq,
		hotel:    hotel,
		room:     room,
		customer: customer,
	}
}

func date(s string) model.Date {
	d, err := model.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (f *fixture) create(t *testing.T, checkIn, checkOut, status string) (*model.Reservation, error) {
	t.Helper()
	return f.engine.CreateReservation(context.Background(), booking.CreateRequest{
		RoomID:     f.room.ID,
		CustomerID: f.customer.ID,
		CheckIn:    date(checkIn),
		CheckOut:   date(checkOut),
		Status:     status,
	})
}

func (f *fixture) change(t *testing.T, res *model.Reservation, to string) error {
	t.Helper()
	return f.engine.ChangeStatus(context.Background(), booking.StatusChange{
		ReservationID: res.ID,
		RoomID:        res.RoomID,
		CheckIn:       res.CheckIn,
		CheckOut:      res.CheckOut,
		NewStatus:     to,
	})
}

func (f *fixture) status(t *testing.T, id uint64) string {
	t.Helper()
	for _, r := range f.store.Reservations() {
		if r.ID == id {
			return r.Status
		}
	}
	t.Fatalf("reservation %d not found", id)
	return ""
}

func TestCreateReservationRejectsInvalidDateRange(t *testing.T) {
	f := newFixture(t)

	cases := []struct{ in, out string }{
		{"2026-10-12", "2026-10-10"}, // reversed
		{"2026-10-10", "2026-10-10"}, // zero nights
	}
	for _, tc := range cases {
		_, err := f.create(t, tc.in, tc.out, model.StatusConfirmed)
		assert.ErrorIs(t, err, booking.ErrInvalidDateRange)
	}
	assert.Empty(t, f.store.Reservations(), "nothing may persist on validation failure")
	assert.Empty(t, f.enqueuer.all(), "nothing may be enqueued on validation failure")
}

func TestCreateReservationRejectsUnknownStatus(t *testing.T) {
	f := newFixture(t)

	_, err := f.create(t, "2026-10-10", "2026-10-12", "CheckedIn")
	assert.ErrorIs(t, err, booking.ErrInvalidStatus)
	assert.Empty(t, f.store.Reservations())
}

func TestCreateReservationUnknownRoomAndCustomer(t *testing.T) {
	f := newFixture(t)

	_, err := f.engine.CreateReservation(context.Background(), booking.CreateRequest{
		RoomID:     9999,
		CustomerID: f.customer.ID,
		CheckIn:    date("2026-10-10"),
		CheckOut:   date("2026-10-12"),
	})
	assert.ErrorIs(t, err, booking.ErrRoomNotFound)

	_, err = f.engine.CreateReservation(context.Background(), booking.CreateRequest{
		RoomID:     f.room.ID,
		CustomerID: 9999,
		CheckIn:    date("2026-10-10"),
		CheckOut:   date("2026-10-12"),
	})
	assert.ErrorIs(t, err, booking.ErrCustomerNotFound)
	assert.Empty(t, f.store.Reservations())
}

func TestCreateReservationDefaultsToPending(t *testing.T) {
	f := newFixture(t)

	res, err := f.create(t, "2026-10-10", "2026-10-12", "")
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, res.Status)
	assert.Equal(t, 2, res.Nights())

	// Pending stays do not flip the advisory flag.
	room, err := f.store.RoomByID(context.Background(), f.room.ID)
	require.NoError(t, err)
	assert.True(t, room.IsAvailable)
}

func TestConfirmedCreateFlipsAdvisoryFlag(t *testing.T) {
	f := newFixture(t)

	_, err := f.create(t, "2026-10-10", "2026-10-12", model.StatusConfirmed)
	require.NoError(t, err)

	room, err := f.store.RoomByID(context.Background(), f.room.ID)
	require.NoError(t, err)
	assert.False(t, room.IsAvailable)
}

func TestReservationCodeShape(t *testing.T) {
	f := newFixture(t)
	hexCode := regexp.MustCompile(`^[0-9a-f]{20}$`)

	seen := make(map[string]bool)
	day := date("2026-01-01")
	for i := 0; i < 40; i++ {
		res, err := f.engine.CreateReservation(context.Background(), booking.CreateRequest{
			RoomID:     f.room.ID,
			CustomerID: f.customer.ID,
			CheckIn:    day,
			CheckOut:   day.AddDays(1),
			Status:     model.StatusConfirmed,
		})
		require.NoError(t, err)
		assert.Regexp(t, hexCode, res.Code)
		assert.False(t, seen[res.Code], "codes must be unique")
		seen[res.Code] = true
		day = day.AddDays(1)
	}
}

// collideStore wraps a Store and forces the first failures inserts to
// report a code collision, recording every attempted code.
type collideStore struct {
	booking.Store
	mu       sync.Mutex
	failures int
	codes    []string
}

func (s *collideStore) WithRoomLock(ctx context.Context, roomID uint64, fn func(tx booking.Tx) error) error {
	return s.Store.WithRoomLock(ctx, roomID, func(tx booking.Tx) error {
		return fn(&collideTx{Tx: tx, parent: s})
	})
}

type collideTx struct {
	booking.Tx
	parent *collideStore
}

func (t *collideTx) InsertReservation(ctx context.Context, res *model.Reservation) error {
	t.parent.mu.Lock()
	t.parent.codes = append(t.parent.codes, res.Code)
	forced := t.parent.failures > 0
	if forced {
		t.parent.failures--
	}
	t.parent.mu.Unlock()
	if forced {
		return booking.ErrCodeExists
	}
	return t.Tx.InsertReservation(ctx, res)
}

func TestCodeCollisionRegeneratesAndRetries(t *testing.T) {
	f := newFixture(t)
	cs := &collideStore{Store: f.store, failures: 1}
	engine := booking.NewEngine(cs, f.enqueuer)

	res, err := engine.CreateReservation(context.Background(), booking.CreateRequest{
		RoomID:     f.room.ID,
		CustomerID: f.customer.ID,
		CheckIn:    date("2026-10-10"),
		CheckOut:   date("2026-10-12"),
		Status:     model.StatusConfirmed,
	})
	require.NoError(t, err, "a single collision must not fail the request")
	require.Len(t, cs.codes, 2)
	assert.NotEqual(t, cs.codes[0], cs.codes[1], "each attempt carries a fresh code")
	assert.Equal(t, cs.codes[1], res.Code)
	assert.Len(t, f.store.Reservations(), 1)
}

func TestCodeCollisionBudgetExhausted(t *testing.T) {
	f := newFixture(t)
	cs := &collideStore{Store: f.store, failures: 1 << 10}
	engine := booking.NewEngine(cs, f.enqueuer)

	_, err := engine.CreateReservation(context.Background(), booking.CreateRequest{
		RoomID:     f.room.ID,
		CustomerID: f.customer.ID,
		CheckIn:    date("2026-10-10"),
		CheckOut:   date("2026-10-12"),
		Status:     model.StatusConfirmed,
	})
	assert.ErrorIs(t, err, booking.ErrCodeExists)
	assert.Len(t, cs.codes, 5, "five attempts, then the error surfaces")
	assert.Empty(t, f.store.Reservations(), "an exhausted unit rolls back entirely")
	assert.Empty(t, f.enqueuer.all())
}

// Room 101 holds a Confirmed stay over Oct 10-12.  Touching stays are
// admitted, intersecting ones are not, regardless of requested status.
func TestAdmissionAgainstExistingStay(t *testing.T) {
	f := newFixture(t)

	_, err := f.create(t, "2026-10-10", "2026-10-12", model.StatusConfirmed)
	require.NoError(t, err)

	t.Run("intersecting is rejected", func(t *testing.T) {
		for _, tc := range []struct{ in, out string }{
			{"2026-10-11", "2026-10-13"},
			{"2026-10-09", "2026-10-11"},
			{"2026-10-10", "2026-10-12"},
			{"2026-10-09", "2026-10-13"}, // fully covering
			{"2026-10-10", "2026-10-11"}, // fully inside
		} {
			_, err := f.create(t, tc.in, tc.out, model.StatusConfirmed)
			assert.ErrorIs(t, err, booking.ErrRoomUnavailable, "%s..%s", tc.in, tc.out)

			_, err = f.create(t, tc.in, tc.out, model.StatusPending)
			assert.ErrorIs(t, err, booking.ErrRoomUnavailable, "pending %s..%s", tc.in, tc.out)
		}
	})

	t.Run("touching is admitted", func(t *testing.T) {
		_, err := f.create(t, "2026-10-12", "2026-10-14", model.StatusConfirmed)
		assert.NoError(t, err, "back-to-back after checkout")
		_, err = f.create(t, "2026-10-08", "2026-10-10", model.StatusConfirmed)
		assert.NoError(t, err, "ending on the check-in day")
	})
}

func TestPendingStaysDoNotBlockAdmission(t *testing.T) {
	f := newFixture(t)

	_, err := f.create(t, "2026-10-10", "2026-10-12", model.StatusPending)
	require.NoError(t, err)

	// Only Confirmed reservations participate in the constraint.
	_, err = f.create(t, "2026-10-10", "2026-10-12", model.StatusConfirmed)
	assert.NoError(t, err)
}

func TestIsOverlapping(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.create(t, "2026-10-10", "2026-10-12", model.StatusConfirmed)
	require.NoError(t, err)

	overlapping, err := f.engine.IsOverlapping(ctx, f.room.ID, date("2026-10-11"), date("2026-10-13"))
	require.NoError(t, err)
	assert.True(t, overlapping)

	overlapping, err = f.engine.IsOverlapping(ctx, f.room.ID, date("2026-10-12"), date("2026-10-14"))
	require.NoError(t, err)
	assert.False(t, overlapping, "touching intervals do not overlap")
}

func TestConcurrentOverlappingRequests(t *testing.T) {
	f := newFixture(t)

	const attempts = 2
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.create(t, "2026-10-10", "2026-10-12", model.StatusConfirmed)
		}(i)
	}
	wg.Wait()

	var won, lost int
	for _, err := range errs {
		switch {
		case err == nil:
			won++
		case errors.Is(err, booking.ErrRoomUnavailable):
			lost++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, won, "exactly one request may win")
	assert.Equal(t, attempts-1, lost)
	assert.Len(t, f.store.Reservations(), 1)
}

func TestConfirmPendingReservation(t *testing.T) {
	f := newFixture(t)

	res, err := f.create(t, "2026-10-10", "2026-10-12", model.StatusPending)
	require.NoError(t, err)

	require.NoError(t, f.change(t, res, model.StatusConfirmed))
	assert.Equal(t, model.StatusConfirmed, f.status(t, res.ID))

	room, err := f.store.RoomByID(context.Background(), f.room.ID)
	require.NoError(t, err)
	assert.False(t, room.IsAvailable, "confirmation flips the advisory flag")
}

// A Pending stay does not block admission, so a Confirmed stay may
// land on the same dates afterwards.  Confirming the Pending one then
// has to fail: the transition re-checks the overlap under the room
// lock instead of trusting the state it was created in.
func TestConfirmationRechecksOverlap(t *testing.T) {
	f := newFixture(t)

	pending, err := f.create(t, "2026-10-10", "2026-10-12", model.StatusPending)
	require.NoError(t, err)
	_, err = f.create(t, "2026-10-10", "2026-10-12", model.StatusConfirmed)
	require.NoError(t, err)

	err = f.change(t, pending, model.StatusConfirmed)
	assert.ErrorIs(t, err, booking.ErrRoomUnavailable)
	assert.Equal(t, model.StatusPending, f.status(t, pending.ID), "a rejected transition leaves the status untouched")
}

func TestCancellationRestoresAdvisoryFlag(t *testing.T) {
	f := newFixture(t)

	res, err := f.create(t, "2026-10-10", "2026-10-12", model.StatusConfirmed)
	require.NoError(t, err)

	require.NoError(t, f.change(t, res, model.StatusCancelled))
	assert.Equal(t, model.StatusCancelled, f.status(t, res.ID))

	room, err := f.store.RoomByID(context.Background(), f.room.ID)
	require.NoError(t, err)
	assert.True(t, room.IsAvailable)

	// The dates are bookable again.
	_, err = f.create(t, "2026-10-10", "2026-10-12", model.StatusConfirmed)
	assert.NoError(t, err)
}

func TestIllegalStatusTransitions(t *testing.T) {
	f := newFixture(t)

	res, err := f.create(t, "2026-10-10", "2026-10-12", model.StatusConfirmed)
	require.NoError(t, err)

	assert.ErrorIs(t, f.change(t, res, model.StatusPending), booking.ErrIllegalTransition)
	assert.ErrorIs(t, f.change(t, res, "Archived"), booking.ErrInvalidStatus)

	require.NoError(t, f.change(t, res, model.StatusCancelled))
	assert.ErrorIs(t, f.change(t, res, model.StatusConfirmed), booking.ErrIllegalTransition, "cancelled is terminal")
}

func TestChangeStatusUnknownReservation(t *testing.T) {
	f := newFixture(t)

	err := f.engine.ChangeStatus(context.Background(), booking.StatusChange{
		ReservationID: 9999,
		RoomID:        f.room.ID,
		CheckIn:       date("2026-10-10"),
		CheckOut:      date("2026-10-12"),
		NewStatus:     model.StatusConfirmed,
	})
	assert.ErrorIs(t, err, booking.ErrReservationNotFound)
}

func TestDifferentRoomsAreIndependent(t *testing.T) {
	f := newFixture(t)
	other := f.store.AddRoom(model.Room{HotelID: f.hotel.ID, Number: 102, IsAvailable: true})

	_, err := f.create(t, "2026-10-10", "2026-10-12", model.StatusConfirmed)
	require.NoError(t, err)

	_, err = f.engine.CreateReservation(context.Background(), booking.CreateRequest{
		RoomID:     other.ID,
		CustomerID: f.customer.ID,
		CheckIn:    date("2026-10-10"),
		CheckOut:   date("2026-10-12"),
		Status:     model.StatusConfirmed,
	})
	assert.NoError(t, err, "same dates in another room must be admitted")
}

func TestNotificationContent(t *testing.T) {
	f := newFixture(t)

	res, err := f.create(t, "2026-10-10", "2026-10-12", model.StatusConfirmed)
	require.NoError(t, err)

	jobs := f.enqueuer.all()
	require.Len(t, jobs, 1)
	job := jobs[0]
	assert.Equal(t, res.ID, job.ReservationID)
	assert.Equal(t, res.Code, job.ReservationCode)
	assert.Equal(t, "Your reservation has been confirmed", job.Subject)
	assert.Equal(t, []string{"alice@example.com"}, job.Recipients)
	assert.Equal(t, "booking@seaside.example", job.From)
	assert.Contains(t, job.Body, "Alice")
	assert.Contains(t, job.Body, res.Code)
	assert.Contains(t, job.Body, "Room 101 sea view")
	assert.Contains(t, job.Body, "10/10/2026")
	assert.Contains(t, job.Body, "12/10/2026")
	assert.Contains(t, job.Body, "Seaside Grand team")
}

func TestNotificationWordingForPending(t *testing.T) {
	f := newFixture(t)

	_, err := f.create(t, "2026-10-10", "2026-10-12", model.StatusPending)
	require.NoError(t, err)

	jobs := f.enqueuer.all()
	require.Len(t, jobs, 1)
	assert.Equal(t, "Your reservation has been received", jobs[0].Subject)
	assert.Contains(t, jobs[0].Body, "has been received successfully")
}

func TestEnqueueFailureDoesNotUnwindReservation(t *testing.T) {
	f := newFixture(t)
	f.enqueuer.fail = true

	res, err := f.create(t, "2026-10-10", "2026-10-12", model.StatusConfirmed)
	require.NoError(t, err, "a committed reservation is never reported as failed")
	require.NotNil(t, res)
	assert.Len(t, f.store.Reservations(), 1)
}

func TestNilEnqueuerIsAllowed(t *testing.T) {
	store := memory.New()
	hotel := store.AddHotel(model.Hotel{Name: "Annex"})
	room := store.AddRoom(model.Room{HotelID: hotel.ID, Number: 7, IsAvailable: true})
	customer := store.AddCustomer(model.Customer{UserID: 2, Name: "Bob", Email: "bob@example.com"})

	engine := booking.NewEngine(store, nil)
	_, err := engine.CreateReservation(context.Background(), booking.CreateRequest{
		RoomID:     room.ID,
		CustomerID: customer.ID,
		CheckIn:    model.DateOf(time.Now().AddDate(0, 0, 7)),
		CheckOut:   model.DateOf(time.Now().AddDate(0, 0, 9)),
		Status:     model.StatusConfirmed,
	})
	assert.NoError(t, err)
}

package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/college-event-ticketing/internal/model"
	"github.com/iliyamo/college-event-ticketing/internal/queue"
	"github.com/iliyamo/college-event-ticketing/internal/repository"
	"github.com/iliyamo/college-event-ticketing/internal/seatmap"
)

// fakeCatalog serves a fixed set of events.
type fakeCatalog struct {
	events map[uint64]*model.Event
}

func (f *fakeCatalog) GetByID(_ context.Context, id uint64) (*model.Event, error) {
	e, ok := f.events[id]
	if !ok {
		return nil, repository.ErrEventNotFound
	}
	return e, nil
}

// fakeLedger is an in-memory booking ledger with the same atomicity
// contract as the MySQL implementation: Create either commits every
// requested seat or none, under a single lock.
type fakeLedger struct {
	mu     sync.Mutex
	nextID uint64
	taken  map[uint64]map[string]uint64 // eventID -> seat -> bookingID
	owner  map[uint64]uint64            // bookingID -> userID
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		taken: make(map[uint64]map[string]uint64),
		owner: make(map[uint64]uint64),
	}
}

func (f *fakeLedger) Create(_ context.Context, b *model.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	seats := f.taken[b.EventID]
	if seats == nil {
		seats = make(map[string]uint64)
		f.taken[b.EventID] = seats
	}

	var booked []string
	for s := range seats {
		booked = append(booked, s)
	}
	if clash := seatmap.Intersect(b.Seats, booked); len(clash) > 0 {
		return &repository.SeatConflictError{Seats: clash}
	}

	f.nextID++
	b.ID = f.nextID
	b.CreatedAt = time.Now().UTC()
	f.owner[b.ID] = b.UserID
	for _, s := range b.Seats {
		seats[s] = b.ID
	}
	return nil
}

func (f *fakeLedger) BookedSeats(_ context.Context, eventID uint64) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for s := range f.taken[eventID] {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeLedger) ListByUser(context.Context, uint64) ([]repository.BookingDetail, error) {
	return nil, nil
}

func (f *fakeLedger) GetByID(_ context.Context, id uint64) (*model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for eventID, seats := range f.taken {
		var owned []string
		for s, bid := range seats {
			if bid == id {
				owned = append(owned, s)
			}
		}
		if len(owned) > 0 {
			return &model.Booking{ID: id, EventID: eventID, UserID: f.owner[id], Seats: owned}, nil
		}
	}
	return nil, repository.ErrBookingNotFound
}

// bySeat returns seat -> bookingID for an event, for disjointness checks.
func (f *fakeLedger) bySeat(eventID uint64) map[string]uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]uint64, len(f.taken[eventID]))
	for s, id := range f.taken[eventID] {
		out[s] = id
	}
	return out
}

// fakePublisher records published events on a channel so tests can wait
// for the async publish.
type fakePublisher struct {
	ch chan queue.BookingCreatedEvent
}

func (f *fakePublisher) PublishBookingCreated(_ context.Context, ev queue.BookingCreatedEvent) error {
	f.ch <- ev
	return nil
}

func newService(ledger Ledger, pub Publisher) *BookingService {
	catalog := &fakeCatalog{events: map[uint64]*model.Event{
		1: {ID: 1, Name: "Sankalan", Venue: "Main Auditorium", SeatRows: 10, SeatCols: 12},
		2: {ID: 2, Name: "Talent Show", Venue: "Mini Auditorium", SeatRows: 2, SeatCols: 2},
	}}
	return NewBookingService(catalog, ledger, pub)
}

func TestCreateBookingUnknownEvent(t *testing.T) {
	svc := newService(newFakeLedger(), nil)
	_, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		EventID: 99, UserID: 1, Seats: []string{"A1"},
	})
	assert.ErrorIs(t, err, repository.ErrEventNotFound)
}

func TestCreateBookingMissingEventID(t *testing.T) {
	ledger := newFakeLedger()
	svc := newService(ledger, nil)

	// An omitted eventId binds to zero and is a client error, not a
	// lookup miss.
	_, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		UserID: 1, Seats: []string{"A1"},
	})
	assert.ErrorIs(t, err, ErrInvalidRequest)
	assert.NotErrorIs(t, err, repository.ErrEventNotFound)

	booked, berr := ledger.BookedSeats(context.Background(), 0)
	require.NoError(t, berr)
	assert.Empty(t, booked)
}

func TestCreateBookingEmptySeats(t *testing.T) {
	svc := newService(newFakeLedger(), nil)
	for _, seats := range [][]string{nil, {}, {"", "  "}} {
		_, err := svc.CreateBooking(context.Background(), CreateBookingInput{
			EventID: 1, UserID: 1, Seats: seats,
		})
		assert.ErrorIs(t, err, ErrInvalidRequest)
	}
}

func TestCreateBookingOutOfBounds(t *testing.T) {
	svc := newService(newFakeLedger(), nil)
	// Event 2 is a 2x2 grid; C1 and A3 are outside it.
	for _, seat := range []string{"C1", "A3", "A0", "bogus"} {
		_, err := svc.CreateBooking(context.Background(), CreateBookingInput{
			EventID: 2, UserID: 1, Seats: []string{seat},
		})
		assert.ErrorIs(t, err, ErrInvalidRequest, "seat %q", seat)
	}
}

func TestCreateBookingPaymentMethod(t *testing.T) {
	ledger := newFakeLedger()
	svc := newService(ledger, nil)

	// Empty method defaults to card.
	b, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		EventID: 1, UserID: 1, Seats: []string{"A1"},
	})
	require.NoError(t, err)
	assert.Equal(t, model.PaymentCard, b.PaymentMethod)

	b, err = svc.CreateBooking(context.Background(), CreateBookingInput{
		EventID: 1, UserID: 1, Seats: []string{"A2"}, PaymentMethod: model.PaymentUPI,
	})
	require.NoError(t, err)
	assert.Equal(t, model.PaymentUPI, b.PaymentMethod)

	_, err = svc.CreateBooking(context.Background(), CreateBookingInput{
		EventID: 1, UserID: 1, Seats: []string{"A3"}, PaymentMethod: "cash",
	})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestCreateBookingNormalizesSeats(t *testing.T) {
	ledger := newFakeLedger()
	svc := newService(ledger, nil)

	b, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		EventID: 1, UserID: 1, Seats: []string{" a1 ", "A1", "b2"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"A1", "B2"}, b.Seats)
	assert.NotEmpty(t, b.Reference)
	assert.NotZero(t, b.ID)
}

func TestCreateBookingConflictLeavesLedgerUntouched(t *testing.T) {
	ledger := newFakeLedger()
	svc := newService(ledger, nil)
	ctx := context.Background()

	// First user takes A1 on the 2x2 event.
	_, err := svc.CreateBooking(ctx, CreateBookingInput{
		EventID: 2, UserID: 1, Seats: []string{"A1"},
	})
	require.NoError(t, err)

	// Second user requests A1+B2: rejected, with A1 as the only clash,
	// and B2 must not be committed as a side effect.
	_, err = svc.CreateBooking(ctx, CreateBookingInput{
		EventID: 2, UserID: 2, Seats: []string{"A1", "B2"},
	})
	var conflict *repository.SeatConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, []string{"A1"}, conflict.Seats)

	booked, err := ledger.BookedSeats(ctx, 2)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"A1"}, booked)

	// Second user retries with free seats and succeeds.
	_, err = svc.CreateBooking(ctx, CreateBookingInput{
		EventID: 2, UserID: 2, Seats: []string{"B1", "B2"},
	})
	require.NoError(t, err)

	booked, err = ledger.BookedSeats(ctx, 2)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"A1", "B1", "B2"}, booked)
}

func TestCreateBookingConcurrentOverlap(t *testing.T) {
	ledger := newFakeLedger()
	svc := newService(ledger, nil)

	// Many clients race for overlapping seat pairs.  Every seat must end
	// up committed to at most one booking; requests that lose the race
	// fail with a seat conflict.
	requests := [][]string{
		{"A1", "A2"}, {"A2", "A3"}, {"A3", "A4"}, {"A1", "A4"},
		{"B1", "B2"}, {"B2", "B3"}, {"B1", "B3"},
		{"A1", "B1"}, {"A4", "B3"},
	}

	var wg sync.WaitGroup
	errs := make([]error, len(requests))
	for i, seats := range requests {
		wg.Add(1)
		go func(i int, seats []string) {
			defer wg.Done()
			_, errs[i] = svc.CreateBooking(context.Background(), CreateBookingInput{
				EventID: 1, UserID: uint64(i + 1), Seats: seats,
			})
		}(i, seats)
	}
	wg.Wait()

	owners := ledger.bySeat(1)
	for i, seats := range requests {
		if errs[i] == nil {
			// A winning request owns every seat it asked for.
			for _, s := range seats {
				assert.Contains(t, owners, s, "request %d", i)
			}
			continue
		}
		var conflict *repository.SeatConflictError
		require.ErrorAs(t, errs[i], &conflict, "request %d: %v", i, errs[i])
	}

	// Each committed seat belongs to exactly one booking, and every
	// booking that owns a seat owns all of its requested seats.
	byBooking := make(map[uint64][]string)
	for s, id := range owners {
		byBooking[id] = append(byBooking[id], s)
	}
	for id, seats := range byBooking {
		assert.Len(t, seats, 2, "booking %d", id)
	}
}

func TestCreateBookingPublishes(t *testing.T) {
	pub := &fakePublisher{ch: make(chan queue.BookingCreatedEvent, 1)}
	svc := newService(newFakeLedger(), pub)

	b, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		EventID: 1, UserID: 7, Seats: []string{"C3"},
	})
	require.NoError(t, err)

	select {
	case ev := <-pub.ch:
		assert.Equal(t, b.ID, ev.BookingID)
		assert.Equal(t, b.Reference, ev.Reference)
		assert.Equal(t, uint64(1), ev.EventID)
		assert.Equal(t, "Sankalan", ev.EventName)
		assert.Equal(t, uint64(7), ev.UserID)
		assert.Equal(t, []string{"C3"}, ev.Seats)
	case <-time.After(2 * time.Second):
		t.Fatal("booking.created event was not published")
	}
}

func TestCreateBookingPublishErrorIsIgnored(t *testing.T) {
	svc := newService(newFakeLedger(), failingPublisher{})
	b, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		EventID: 1, UserID: 1, Seats: []string{"D4"},
	})
	require.NoError(t, err)
	assert.NotZero(t, b.ID)
}

func TestGetBookingOwnership(t *testing.T) {
	ledger := newFakeLedger()
	svc := newService(ledger, nil)
	ctx := context.Background()

	b, err := svc.CreateBooking(ctx, CreateBookingInput{
		EventID: 1, UserID: 7, Seats: []string{"E5"},
	})
	require.NoError(t, err)

	got, err := svc.GetBooking(ctx, b.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, []string{"E5"}, got.Seats)

	// Someone else's booking reads as not found.
	_, err = svc.GetBooking(ctx, b.ID, 8)
	assert.ErrorIs(t, err, repository.ErrBookingNotFound)

	_, err = svc.GetBooking(ctx, 999, 7)
	assert.ErrorIs(t, err, repository.ErrBookingNotFound)
}

type failingPublisher struct{}

func (failingPublisher) PublishBookingCreated(context.Context, queue.BookingCreatedEvent) error {
	return errors.New("broker down")
}

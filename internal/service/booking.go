package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/college-event-ticketing/internal/model"
	"github.com/iliyamo/college-event-ticketing/internal/queue"
	"github.com/iliyamo/college-event-ticketing/internal/repository"
	"github.com/iliyamo/college-event-ticketing/internal/seatmap"
)

// EventCatalog is the slice of the event repository the booking service
// needs: resolving an event and its seat grid bounds.
type EventCatalog interface {
	GetByID(ctx context.Context, id uint64) (*model.Event, error)
}

// Ledger is the booking ledger as seen by the service.  Create must be
// atomic and serialized per event: it either commits every seat of the
// booking or nothing, and returns *repository.SeatConflictError when
// any requested seat is already committed.
type Ledger interface {
	Create(ctx context.Context, b *model.Booking) error
	BookedSeats(ctx context.Context, eventID uint64) ([]string, error)
	ListByUser(ctx context.Context, userID uint64) ([]repository.BookingDetail, error)
	GetByID(ctx context.Context, id uint64) (*model.Booking, error)
}

// Publisher emits booking lifecycle messages.  Failures are logged and
// ignored; messaging never blocks or fails a booking.
type Publisher interface {
	PublishBookingCreated(ctx context.Context, ev queue.BookingCreatedEvent) error
}

// BookingService is the booking transaction manager.  It validates a
// request against the catalog and the seat grid, delegates the atomic
// commit to the ledger and publishes a booking.created message on
// success.
type BookingService struct {
	catalog   EventCatalog
	ledger    Ledger
	publisher Publisher
}

// NewBookingService wires a BookingService.  publisher may be nil when
// messaging is disabled.
func NewBookingService(catalog EventCatalog, ledger Ledger, publisher Publisher) *BookingService {
	return &BookingService{catalog: catalog, ledger: ledger, publisher: publisher}
}

// CreateBookingInput carries one booking request into the service.
type CreateBookingInput struct {
	EventID       uint64
	UserID        uint64
	Seats         []string
	PaymentMethod string
}

// CreateBooking commits a booking for the requested seats or fails
// without side effects.
//
// Failure modes, in check order:
//   - ErrInvalidRequest: missing eventId, empty seat set after
//     normalization, a label outside the event's grid, or an unknown
//     payment method.
//   - repository.ErrEventNotFound: the event id names no event.
//   - *repository.SeatConflictError: at least one seat is already
//     committed; the error lists the clashing labels.
//   - anything else: store failure, nothing was written.
func (s *BookingService) CreateBooking(ctx context.Context, in CreateBookingInput) (*model.Booking, error) {
	// A zero eventId is an omitted field, not a lookup miss.
	if in.EventID == 0 {
		return nil, fmt.Errorf("%w: eventId is required", ErrInvalidRequest)
	}

	event, err := s.catalog.GetByID(ctx, in.EventID)
	if err != nil {
		return nil, err
	}

	seats := seatmap.Normalize(in.Seats)
	if len(seats) == 0 {
		return nil, fmt.Errorf("%w: seatsBooked must not be empty", ErrInvalidRequest)
	}
	for _, label := range seats {
		if !seatmap.InBounds(label, event.SeatRows, event.SeatCols) {
			return nil, fmt.Errorf("%w: seat %q is outside the %dx%d grid",
				ErrInvalidRequest, label, event.SeatRows, event.SeatCols)
		}
	}

	method := in.PaymentMethod
	if method == "" {
		method = model.PaymentCard
	}
	if !model.ValidPaymentMethod(method) {
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrInvalidRequest, in.PaymentMethod)
	}

	booking := &model.Booking{
		Reference:     uuid.NewString(),
		EventID:       event.ID,
		UserID:        in.UserID,
		Seats:         seats,
		PaymentMethod: method,
	}
	if err := s.ledger.Create(ctx, booking); err != nil {
		return nil, err
	}

	log.Printf("booking committed | booking_id=%d event_id=%d user_id=%d seats=%v",
		booking.ID, booking.EventID, booking.UserID, booking.Seats)

	if s.publisher != nil {
		ev := queue.BookingCreatedEvent{
			BookingID:     booking.ID,
			Reference:     booking.Reference,
			EventID:       event.ID,
			EventName:     event.Name,
			Venue:         event.Venue,
			UserID:        booking.UserID,
			Seats:         booking.Seats,
			PaymentMethod: booking.PaymentMethod,
			CreatedAt:     booking.CreatedAt.UTC().Format(time.RFC3339),
		}
		go func() {
			if err := s.publisher.PublishBookingCreated(context.WithoutCancel(ctx), ev); err != nil {
				log.Printf("booking.created publish failed: %v", err)
			}
		}()
	}

	return booking, nil
}

// ListByUser returns the user's bookings with event details.
func (s *BookingService) ListByUser(ctx context.Context, userID uint64) ([]repository.BookingDetail, error) {
	return s.ledger.ListByUser(ctx, userID)
}

// GetBooking loads one booking owned by userID.  Other users' bookings
// are reported as not found rather than forbidden, so booking IDs
// cannot be probed.
func (s *BookingService) GetBooking(ctx context.Context, id, userID uint64) (*model.Booking, error) {
	b, err := s.ledger.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID {
		return nil, repository.ErrBookingNotFound
	}
	return b, nil
}

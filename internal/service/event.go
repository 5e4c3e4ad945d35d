package service

import (
	"context"

	"github.com/iliyamo/college-event-ticketing/internal/model"
	"github.com/iliyamo/college-event-ticketing/internal/seatmap"
)

// CatalogLister extends EventCatalog with the filtered listing used by
// the browse endpoints.
type CatalogLister interface {
	EventCatalog
	List(ctx context.Context, category, search string) ([]model.Event, error)
}

// LedgerReader is the read-only slice of the ledger the catalog
// service needs: the seat availability resolver.
type LedgerReader interface {
	BookedSeats(ctx context.Context, eventID uint64) ([]string, error)
}

// EventService serves the event catalog and seat availability.
type EventService struct {
	catalog CatalogLister
	ledger  LedgerReader
}

func NewEventService(catalog CatalogLister, ledger LedgerReader) *EventService {
	return &EventService{catalog: catalog, ledger: ledger}
}

// List returns catalog events with the optional category and search
// filters applied.
func (s *EventService) List(ctx context.Context, category, search string) ([]model.Event, error) {
	return s.catalog.List(ctx, category, search)
}

// EventAvailability pairs an event with the union of seats committed
// across all its bookings.
type EventAvailability struct {
	Event       *model.Event `json:"event"`
	BookedSeats []string     `json:"bookedSeats"`
}

// Availability resolves an event and its committed seats.  Returns
// repository.ErrEventNotFound when the event does not exist.
func (s *EventService) Availability(ctx context.Context, eventID uint64) (*EventAvailability, error) {
	event, err := s.catalog.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	booked, err := s.ledger.BookedSeats(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return &EventAvailability{Event: event, BookedSeats: booked}, nil
}

// SeatStatus is one cell of the seat map view.
type SeatStatus struct {
	Label  string `json:"label"`
	Booked bool   `json:"booked"`
}

// SeatMapView is the full grid of an event with per-seat status, in
// row-major order, ready for the seat-selection page.
type SeatMapView struct {
	EventID  uint64       `json:"eventId"`
	SeatRows uint32       `json:"seatRows"`
	SeatCols uint32       `json:"seatCols"`
	Seats    []SeatStatus `json:"seats"`
}

// SeatMap renders the availability of every seat in the event's grid.
func (s *EventService) SeatMap(ctx context.Context, eventID uint64) (*SeatMapView, error) {
	avail, err := s.Availability(ctx, eventID)
	if err != nil {
		return nil, err
	}
	taken := make(map[string]struct{}, len(avail.BookedSeats))
	for _, l := range avail.BookedSeats {
		taken[l] = struct{}{}
	}
	labels := seatmap.Grid(avail.Event.SeatRows, avail.Event.SeatCols)
	seats := make([]SeatStatus, 0, len(labels))
	for _, l := range labels {
		_, booked := taken[l]
		seats = append(seats, SeatStatus{Label: l, Booked: booked})
	}
	return &SeatMapView{
		EventID:  avail.Event.ID,
		SeatRows: avail.Event.SeatRows,
		SeatCols: avail.Event.SeatCols,
		Seats:    seats,
	}, nil
}

package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/college-event-ticketing/internal/model"
	"github.com/iliyamo/college-event-ticketing/internal/repository"
	"github.com/iliyamo/college-event-ticketing/internal/service"
)

// EventSvc is the slice of the event service the catalog endpoints use.
type EventSvc interface {
	List(ctx context.Context, category, search string) ([]model.Event, error)
	Availability(ctx context.Context, eventID uint64) (*service.EventAvailability, error)
	SeatMap(ctx context.Context, eventID uint64) (*service.SeatMapView, error)
}

// EventHandler serves the public event catalog.
type EventHandler struct {
	Events EventSvc
}

func NewEventHandler(events EventSvc) *EventHandler {
	return &EventHandler{Events: events}
}

// ListEvents handles GET /v1/events.  Optional query parameters:
// category (equality) and search (case-insensitive substring over name
// and description).
func (h *EventHandler) ListEvents(c echo.Context) error {
	events, err := h.Events.List(c.Request().Context(),
		c.QueryParam("category"), c.QueryParam("search"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load events"})
	}
	return c.JSON(http.StatusOK, echo.Map{"events": events})
}

// GetEvent handles GET /v1/events/:id.  Returns the event together
// with the union of all booked seats so the client can render the seat
// picker; 404 when the event does not exist.
func (h *EventHandler) GetEvent(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	avail, err := h.Events.Availability(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load event"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"event":       avail.Event,
		"bookedSeats": avail.BookedSeats,
	})
}

// GetEventSeats handles GET /v1/events/:id/seats.  Returns the full
// seat grid with a booked flag per label, row-major.
func (h *EventHandler) GetEventSeats(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	view, err := h.Events.SeatMap(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load seat map"})
	}
	return c.JSON(http.StatusOK, view)
}

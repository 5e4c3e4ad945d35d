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

// BookingSvc is the slice of the booking service the HTTP layer uses.
type BookingSvc interface {
	CreateBooking(ctx context.Context, in service.CreateBookingInput) (*model.Booking, error)
	ListByUser(ctx context.Context, userID uint64) ([]repository.BookingDetail, error)
	GetBooking(ctx context.Context, id, userID uint64) (*model.Booking, error)
}

// BookingHandler serves booking creation and the caller's booking history.
type BookingHandler struct {
	Bookings BookingSvc
}

func NewBookingHandler(bookings BookingSvc) *BookingHandler {
	return &BookingHandler{Bookings: bookings}
}

type createBookingRequest struct {
	EventID       uint64   `json:"eventId"`
	Seats         []string `json:"seatsBooked"`
	PaymentMethod string   `json:"paymentMethod"`
}

// CreateBooking handles POST /v1/bookings.  Either every requested
// seat is booked or none is; a conflict returns 409 with the exact
// seats that were already taken.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthenticated"})
	}

	var req createBookingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	booking, err := h.Bookings.CreateBooking(c.Request().Context(), service.CreateBookingInput{
		EventID:       req.EventID,
		UserID:        userID,
		Seats:         req.Seats,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		var conflict *repository.SeatConflictError
		switch {
		case errors.As(err, &conflict):
			return c.JSON(http.StatusConflict, echo.Map{
				"message":          "some seats are already booked",
				"conflictingSeats": conflict.Seats,
			})
		case errors.Is(err, repository.ErrEventNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		case errors.Is(err, service.ErrInvalidRequest):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create booking"})
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{"booking": booking})
}

// GetBooking handles GET /v1/bookings/:id.  Only the booking's owner
// can see it; everyone else gets 404.
func (h *BookingHandler) GetBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthenticated"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	booking, err := h.Bookings.GetBooking(c.Request().Context(), id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load booking"})
	}
	return c.JSON(http.StatusOK, echo.Map{"booking": booking})
}

// MyBookings handles GET /v1/my-bookings and returns the caller's
// bookings, newest first, each joined with its event details.
func (h *BookingHandler) MyBookings(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthenticated"})
	}
	bookings, err := h.Bookings.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": bookings})
}

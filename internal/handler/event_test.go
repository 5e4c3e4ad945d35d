package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/college-event-ticketing/internal/model"
	"github.com/iliyamo/college-event-ticketing/internal/repository"
	"github.com/iliyamo/college-event-ticketing/internal/service"
)

type stubEventSvc struct {
	events []model.Event
	avail  *service.EventAvailability
	view   *service.SeatMapView
	err    error
}

func (s *stubEventSvc) List(context.Context, string, string) ([]model.Event, error) {
	return s.events, s.err
}

func (s *stubEventSvc) Availability(context.Context, uint64) (*service.EventAvailability, error) {
	return s.avail, s.err
}

func (s *stubEventSvc) SeatMap(context.Context, uint64) (*service.SeatMapView, error) {
	return s.view, s.err
}

func getRequest(t *testing.T, svc EventSvc, path, paramID string, h func(*EventHandler) echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if paramID != "" {
		c.SetParamNames("id")
		c.SetParamValues(paramID)
	}
	require.NoError(t, h(NewEventHandler(svc))(c))
	return rec
}

func TestListEvents(t *testing.T) {
	svc := &stubEventSvc{events: []model.Event{{ID: 1, Name: "Sankalan"}}}
	rec := getRequest(t, svc, "/v1/events", "", func(h *EventHandler) echo.HandlerFunc { return h.ListEvents })

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sankalan")
}

func TestGetEvent(t *testing.T) {
	svc := &stubEventSvc{avail: &service.EventAvailability{
		Event:       &model.Event{ID: 2, Name: "Talent Show", SeatRows: 2, SeatCols: 2},
		BookedSeats: []string{"A1"},
	}}
	rec := getRequest(t, svc, "/v1/events/2", "2", func(h *EventHandler) echo.HandlerFunc { return h.GetEvent })

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Event       model.Event `json:"event"`
		BookedSeats []string    `json:"bookedSeats"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint64(2), resp.Event.ID)
	assert.Equal(t, []string{"A1"}, resp.BookedSeats)
}

func TestGetEventNotFound(t *testing.T) {
	svc := &stubEventSvc{err: repository.ErrEventNotFound}
	rec := getRequest(t, svc, "/v1/events/99", "99", func(h *EventHandler) echo.HandlerFunc { return h.GetEvent })
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetEventBadID(t *testing.T) {
	for _, id := range []string{"abc", "0", "-3"} {
		rec := getRequest(t, &stubEventSvc{}, "/v1/events/"+id, id, func(h *EventHandler) echo.HandlerFunc { return h.GetEvent })
		assert.Equal(t, http.StatusBadRequest, rec.Code, id)
	}
}

func TestGetEventSeats(t *testing.T) {
	svc := &stubEventSvc{view: &service.SeatMapView{
		EventID: 2, SeatRows: 1, SeatCols: 2,
		Seats: []service.SeatStatus{{Label: "A1", Booked: true}, {Label: "A2"}},
	}}
	rec := getRequest(t, svc, "/v1/events/2/seats", "2", func(h *EventHandler) echo.HandlerFunc { return h.GetEventSeats })

	assert.Equal(t, http.StatusOK, rec.Code)
	var view service.SeatMapView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Len(t, view.Seats, 2)
	assert.True(t, view.Seats[0].Booked)
}

package model

import "time"

// Event represents a college event that can be booked: a tech fest,
// a farewell, a sports final and so on.  Events carry their own seat
// grid dimensions; individual seats are never stored as rows, they are
// derived as "<RowLetter><ColumnNumber>" from SeatRows and SeatCols.
// Events are immutable once created (the seed command is the only
// writer), so there is no updated_at column.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – display name of the event.
//  Description – longer text shown on the detail page.
//  Date        – calendar date of the event.
//  Time        – human-readable time of day (e.g. "6:00 PM").
//  Venue       – where the event takes place.
//  PosterURL   – poster image path served by the frontend.
//  Category    – grouping used by the catalog filter.
//  SeatRows    – number of seat rows R (row letters A..).
//  SeatCols    – number of seats per row C (columns 1..C).
//  CreatedAt   – creation timestamp.
type Event struct {
	ID          uint64    `json:"id"`          // events.id
	Name        string    `json:"name"`        // events.name
	Description string    `json:"description"` // events.description
	Date        time.Time `json:"date"`        // events.event_date
	Time        string    `json:"time"`        // events.event_time
	Venue       string    `json:"venue"`       // events.venue
	PosterURL   string    `json:"posterUrl"`   // events.poster_url
	Category    string    `json:"category"`    // events.category
	SeatRows    uint32    `json:"seatRows"`    // events.seat_rows
	SeatCols    uint32    `json:"seatCols"`    // events.seat_cols
	CreatedAt   time.Time `json:"createdAt"`   // events.created_at
}

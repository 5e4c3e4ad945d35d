package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/iliyamo/college-event-ticketing/internal/model"
	"github.com/iliyamo/college-event-ticketing/internal/seatmap"
)

// BookingRepo is the booking ledger: committed bookings and the seats
// they claim.  All mutation goes through Create, which is atomic and
// serialized per event; there is no path that inserts booking_seats
// rows outside that transaction.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// BookedSeats returns the union of seat labels across all committed
// bookings for the event.  Pure read; callers wanting the result to
// stay true while they act on it must use Create, which re-reads under
// the event lock.
func (r *BookingRepo) BookedSeats(ctx context.Context, eventID uint64) ([]string, error) {
	return bookedSeats(ctx, r.db, eventID)
}

// queryer lets bookedSeats run on either *sql.DB or *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func bookedSeats(ctx context.Context, q queryer, eventID uint64) ([]string, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT seat_label FROM booking_seats WHERE event_id = ? ORDER BY seat_label`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, err
		}
		out = append(out, label)
	}
	return out, rows.Err()
}

// Create commits a booking for the given seats, or commits nothing.
//
// The whole operation runs in one transaction:
//
//  1. Lock the event row (SELECT ... FOR UPDATE).  Concurrent Create
//     calls for the same event queue here, so for a fixed event the
//     ledger only ever changes under one writer at a time.  Bookings
//     for different events proceed in parallel.
//  2. Re-read the committed seats under the lock and intersect with the
//     request; on overlap, roll back and return *SeatConflictError with
//     the clashing labels.
//  3. Insert the booking row and one booking_seats row per seat, then
//     commit.
//
// The UNIQUE KEY on (event_id, seat_label) backstops step 2: if a
// write ever reached step 3 with a seat already taken, MySQL rejects
// the insert and the caller still sees a SeatConflictError, never a
// double booking.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var eventID uint64
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM events WHERE id = ? FOR UPDATE`, b.EventID).Scan(&eventID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrEventNotFound
		}
		return err
	}

	taken, err := bookedSeats(ctx, tx, b.EventID)
	if err != nil {
		return err
	}
	if clash := seatmap.Intersect(b.Seats, taken); len(clash) > 0 {
		return &SeatConflictError{Seats: clash}
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO bookings (reference, event_id, user_id, payment_method) VALUES (?, ?, ?, ?)`,
		b.Reference, b.EventID, b.UserID, b.PaymentMethod)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)

	query := `INSERT INTO booking_seats (booking_id, event_id, seat_label) VALUES `
	args := make([]any, 0, len(b.Seats)*3)
	for i, label := range b.Seats {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?)"
		args = append(args, b.ID, b.EventID, label)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		if isDuplicateKey(err) {
			// Raced past the row lock somehow; the unique key held the
			// line.  Re-read outside the tx (the tx snapshot may predate
			// the competing commit) so the error names only the seats
			// that are actually taken.
			taken, readErr := bookedSeats(ctx, r.db, b.EventID)
			if readErr != nil {
				taken = nil
			}
			return backstopConflict(b.Seats, taken)
		}
		return err
	}

	if err := tx.QueryRowContext(ctx,
		`SELECT created_at FROM bookings WHERE id = ?`, b.ID).Scan(&b.CreatedAt); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// backstopConflict builds the SeatConflictError reported when an
// insert trips the unique key.  Only the genuinely clashing labels are
// named; the full request is reported solely when no fresh read of the
// ledger is available.
func backstopConflict(requested, taken []string) *SeatConflictError {
	if hit := seatmap.Intersect(requested, taken); len(hit) > 0 {
		return &SeatConflictError{Seats: hit}
	}
	return &SeatConflictError{Seats: requested}
}

// BookingDetail is a booking joined with its event for display on the
// profile page.
type BookingDetail struct {
	ID            uint64    `json:"id"`
	Reference     string    `json:"reference"`
	EventID       uint64    `json:"eventId"`
	EventName     string    `json:"eventName"`
	Venue         string    `json:"venue"`
	Date          time.Time `json:"date"`
	Time          string    `json:"time"`
	Seats         []string  `json:"seatsBooked"`
	PaymentMethod string    `json:"paymentMethod"`
	CreatedAt     time.Time `json:"bookingTime"`
}

// ListByUser returns the user's bookings, newest first, each with its
// event details and seat labels.  Seats for all bookings are fetched in
// a single IN query and stitched in afterwards.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]BookingDetail, error) {
	const q = `SELECT b.id, b.reference, b.event_id, e.name, e.venue, e.event_date, e.event_time, b.payment_method, b.created_at
	           FROM bookings b
	           JOIN events e ON e.id = b.event_id
	           WHERE b.user_id = ?
	           ORDER BY b.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := make([]BookingDetail, 0)
	index := make(map[uint64]int)
	for rows.Next() {
		var d BookingDetail
		if err := rows.Scan(&d.ID, &d.Reference, &d.EventID, &d.EventName, &d.Venue,
			&d.Date, &d.Time, &d.PaymentMethod, &d.CreatedAt); err != nil {
			return nil, err
		}
		d.Seats = []string{}
		index[d.ID] = len(details)
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return details, nil
	}

	ids := make([]any, 0, len(details))
	placeholders := make([]string, 0, len(details))
	for _, d := range details {
		ids = append(ids, d.ID)
		placeholders = append(placeholders, "?")
	}
	seatQ := `SELECT booking_id, seat_label FROM booking_seats
	          WHERE booking_id IN (` + strings.Join(placeholders, ",") + `)
	          ORDER BY booking_id, seat_label`
	srows, err := r.db.QueryContext(ctx, seatQ, ids...)
	if err != nil {
		return nil, err
	}
	defer srows.Close()
	for srows.Next() {
		var bid uint64
		var label string
		if err := srows.Scan(&bid, &label); err != nil {
			return nil, err
		}
		if idx, ok := index[bid]; ok {
			details[idx].Seats = append(details[idx].Seats, label)
		}
	}
	if err := srows.Err(); err != nil {
		return nil, err
	}
	return details, nil
}

// GetByID loads one booking with its seats, or ErrBookingNotFound.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
	var b model.Booking
	err := r.db.QueryRowContext(ctx,
		`SELECT id, reference, event_id, user_id, payment_method, created_at FROM bookings WHERE id = ?`, id).
		Scan(&b.ID, &b.Reference, &b.EventID, &b.UserID, &b.PaymentMethod, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT seat_label FROM booking_seats WHERE booking_id = ? ORDER BY seat_label`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	b.Seats = []string{}
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, err
		}
		b.Seats = append(b.Seats, label)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &b, nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/college-event-ticketing/internal/model"
)

// EventRepo provides read access to the event catalog.  Events are
// created only by the seed command; the HTTP surface never mutates
// them, so there are no update or delete methods.
type EventRepo struct {
	db *sql.DB
}

// NewEventRepo returns a new EventRepo bound to the given database.
func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

// DB exposes the underlying handle so callers can open transactions
// that span repositories.
func (r *EventRepo) DB() *sql.DB { return r.db }

const eventColumns = `id, name, description, event_date, event_time, venue, poster_url, category, seat_rows, seat_cols, created_at`

func scanEvent(row interface {
	Scan(dest ...interface{}) error
}, e *model.Event) error {
	return row.Scan(
		&e.ID, &e.Name, &e.Description, &e.Date, &e.Time,
		&e.Venue, &e.PosterURL, &e.Category, &e.SeatRows, &e.SeatCols,
		&e.CreatedAt,
	)
}

// List returns events ordered by date ascending.  Both filters are
// optional: category is an equality match, search is a case-insensitive
// substring match over name and description.
func (r *EventRepo) List(ctx context.Context, category, search string) ([]model.Event, error) {
	where := []string{}
	args := []any{}
	if category != "" {
		where = append(where, "category = ?")
		args = append(args, category)
	}
	if search != "" {
		needle := "%" + strings.ToLower(search) + "%"
		where = append(where, "(LOWER(name) LIKE ? OR LOWER(description) LIKE ?)")
		args = append(args, needle, needle)
	}
	query := `SELECT ` + eventColumns + ` FROM events`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY event_date ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Event, 0)
	for rows.Next() {
		var e model.Event
		if err := scanEvent(rows, &e); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// GetByID returns a single event or ErrEventNotFound.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (*model.Event, error) {
	var e model.Event
	err := scanEvent(r.db.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = ?`, id), &e)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &e, nil
}

// Create inserts a new event and populates its generated ID.  Only the
// seed command calls this.
func (r *EventRepo) Create(ctx context.Context, e *model.Event) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO events (name, description, event_date, event_time, venue, poster_url, category, seat_rows, seat_cols)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Name, e.Description, e.Date, e.Time, e.Venue, e.PosterURL, e.Category, e.SeatRows, e.SeatCols)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)
	return nil
}

// ExistsByName reports whether an event with the given name is already
// in the catalog.  Keeps the seed command idempotent.
func (r *EventRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM events WHERE name = ?`, name).Scan(&n)
	return n > 0, err
}

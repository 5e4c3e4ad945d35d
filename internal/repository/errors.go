// Package repository implements MySQL persistence for the catalog and
// the booking ledger.  This file defines the error values shared across
// repositories so handlers can translate failures into distinct HTTP
// responses: missing events become 404, seat conflicts become 409 with
// the offending labels, anything else is a 500 the caller may retry.
package repository

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// ErrEventNotFound is returned when a referenced event does not exist.
var ErrEventNotFound = errors.New("event not found")

// ErrBookingNotFound is returned when a booking lookup matches no row.
var ErrBookingNotFound = errors.New("booking not found")

// ErrEmailExists is returned when registering with an email that is
// already taken.
var ErrEmailExists = errors.New("email already exists")

// SeatConflictError reports that one or more requested seats are
// already committed for the event.  Seats holds the conflicting labels
// so the client can re-render the seat map and let the user pick again.
type SeatConflictError struct {
	Seats []string
}

func (e *SeatConflictError) Error() string {
	return "seats already booked: " + strings.Join(e.Seats, ", ")
}

// isDuplicateKey reports whether err is a MySQL duplicate-entry error
// (1062), raised when an insert trips a unique key.
func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}

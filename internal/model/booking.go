package model

import "time"

// Payment method tags accepted on a booking.  The set mirrors the
// payment options the client renders; no processor is ever contacted.
const (
	PaymentCard = "card"
	PaymentUPI  = "upi"
	PaymentQR   = "qr"
)

// ValidPaymentMethod reports whether m is one of the accepted tags.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCard, PaymentUPI, PaymentQR:
		return true
	}
	return false
}

// Booking is a committed, permanent claim on a set of seats for one
// event.  Bookings are never updated or deleted; the pairwise
// disjointness of seat sets per event is the one invariant the whole
// service exists to protect.
//
// Fields:
//  ID            – primary key identifier.
//  Reference     – client-facing UUID printed on the ticket.
//  EventID       – event the seats belong to.
//  UserID        – user who made the booking.
//  Seats         – seat labels claimed, e.g. ["C7","C8"].
//  PaymentMethod – one of card/upi/qr.
//  CreatedAt     – when the booking was committed.
type Booking struct {
	ID            uint64    `json:"id"`            // bookings.id
	Reference     string    `json:"reference"`     // bookings.reference
	EventID       uint64    `json:"eventId"`       // bookings.event_id
	UserID        uint64    `json:"userId"`        // bookings.user_id
	Seats         []string  `json:"seatsBooked"`   // booking_seats.seat_label rows
	PaymentMethod string    `json:"paymentMethod"` // bookings.payment_method
	CreatedAt     time.Time `json:"bookingTime"`   // bookings.created_at
}

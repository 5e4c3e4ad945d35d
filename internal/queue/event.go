// Package queue defines message payloads exchanged over the broker and
// the publisher/consumer for booking lifecycle messages.
package queue

// BookingCreatedEvent is published when a booking is committed.  It
// carries enough information for downstream consumers to log or notify
// without querying the primary database.
type BookingCreatedEvent struct {
	BookingID     uint64   `json:"booking_id"`
	Reference     string   `json:"reference"`
	EventID       uint64   `json:"event_id"`
	EventName     string   `json:"event_name"`
	Venue         string   `json:"venue"`
	UserID        uint64   `json:"user_id"`
	Seats         []string `json:"seats"`
	PaymentMethod string   `json:"payment_method"`
	CreatedAt     string   `json:"created_at"`
}

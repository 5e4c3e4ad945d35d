// Package service contains the booking transaction manager and the
// catalog/availability services.  Services validate requests and
// orchestrate the repositories; the ledger repository owns the atomic
// commit itself.
package service

import "errors"

// ErrInvalidRequest marks client errors that are not worth retrying as
// sent: an empty seat selection, a label outside the event's grid, an
// unknown payment method.  Wrapped with fmt.Errorf("%w: ...") to carry
// the specific reason.
var ErrInvalidRequest = errors.New("invalid request")

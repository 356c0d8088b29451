package command

import (
	"fmt"
	"strings"

	"safar/internal/collection"
	"safar/internal/domain/bookings"
)

// BookingCommand moves a booking along its lifecycle.
type BookingCommand interface {
	Command
	patch(b bookings.Booking) (collection.Patch, error)
}

type (
	ConfirmBooking  struct{}
	CompleteBooking struct{}
	CancelBooking   struct{ Reason string }
)

// COMPLETED and CANCELLED are terminal.
var bookingLifecycle = machine{
	"confirm":  {from: []string{bookings.StatusPending}, to: bookings.StatusConfirmed},
	"complete": {from: []string{bookings.StatusConfirmed}, to: bookings.StatusCompleted},
	"cancel":   {from: []string{bookings.StatusPending, bookings.StatusConfirmed}, to: bookings.StatusCancelled},
}

func (ConfirmBooking) Resource() string  { return Booking }
func (CompleteBooking) Resource() string { return Booking }
func (CancelBooking) Resource() string   { return Booking }

func (ConfirmBooking) Action() string  { return "confirm" }
func (CompleteBooking) Action() string { return "complete" }
func (CancelBooking) Action() string   { return "cancel" }

func (ConfirmBooking) Validate() error  { return nil }
func (CompleteBooking) Validate() error { return nil }

func (c CancelBooking) Validate() error {
	if strings.TrimSpace(c.Reason) == "" {
		return invalidf("a cancellation reason is required")
	}
	if len(c.Reason) > 1000 {
		return invalidf("cancellation reason is too long")
	}
	return nil
}

func (ConfirmBooking) describe(id int64) string  { return fmt.Sprintf("Confirmed booking #%d", id) }
func (CompleteBooking) describe(id int64) string { return fmt.Sprintf("Completed booking #%d", id) }

func (c CancelBooking) describe(id int64) string {
	return fmt.Sprintf("Cancelled booking #%d: %s", id, strings.TrimSpace(c.Reason))
}

func (c ConfirmBooking) patch(b bookings.Booking) (collection.Patch, error) {
	return statusPatch(c.Action(), b.Status)
}

func (c CompleteBooking) patch(b bookings.Booking) (collection.Patch, error) {
	return statusPatch(c.Action(), b.Status)
}

func (c CancelBooking) patch(b bookings.Booking) (collection.Patch, error) {
	p, err := statusPatch(c.Action(), b.Status)
	if err != nil {
		return nil, err
	}
	p["cancel_reason"] = strings.TrimSpace(c.Reason)
	return p, nil
}

func statusPatch(action, current string) (collection.Patch, error) {
	to, err := bookingLifecycle.next(action, current)
	if err != nil {
		return nil, err
	}
	return collection.Patch{"status": to}, nil
}

package notifications

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"safar/internal/domain/bookings"
)

var ErrNoTokens = errors.New("no push tokens")

// BookingNotifier tells customers when an admin changes their booking.
type BookingNotifier struct {
	push   PushSender
	tokens TokenSource
}

func NewBookingNotifier(push PushSender, tokens TokenSource) *BookingNotifier {
	return &BookingNotifier{push: push, tokens: tokens}
}

// BookingStatusChanged pushes the booking's current status to its customer.
func (n *BookingNotifier) BookingStatusChanged(ctx context.Context, b bookings.Booking) error {
	tokensMap, err := n.tokens.GetTokensByUserIDs(ctx, []int64{b.UserID})
	if err != nil {
		return err
	}
	tokens := tokensMap[b.UserID]
	if len(tokens) == 0 {
		return ErrNoTokens
	}

	title, body := bookingContent(b)
	data := map[string]string{
		"type":      "booking",
		"event":     b.Status,
		"bookingId": strconv.FormatInt(b.ID, 10),
		"screen":    "user-bookings-screen",
	}

	if _, err := n.push.Publish(ctx, messages(tokens, title, body, data)); err != nil {
		return fmt.Errorf("publish booking %d: %w", b.ID, err)
	}
	return nil
}

func bookingContent(b bookings.Booking) (title, body string) {
	what := "Your booking"
	if b.Listing != nil && b.Listing.Title != "" {
		what = fmt.Sprintf("Your booking at %s", b.Listing.Title)
	}
	switch b.Status {
	case bookings.StatusConfirmed:
		return "Booking Confirmed", fmt.Sprintf("%s (ID: %d) has been confirmed!", what, b.ID)
	case bookings.StatusCompleted:
		return "Booking Completed", fmt.Sprintf("%s (ID: %d) is complete. Tell us how it went!", what, b.ID)
	case bookings.StatusCancelled:
		body = fmt.Sprintf("%s (ID: %d) has been cancelled", what, b.ID)
		if b.CancelReason != nil && *b.CancelReason != "" {
			body += ": " + *b.CancelReason
		}
		return "Booking Cancelled", body
	}
	return "Booking Update", fmt.Sprintf("%s (ID: %d) has an update.", what, b.ID)
}

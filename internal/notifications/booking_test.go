package notifications

import (
	"context"
	"errors"
	"strings"
	"testing"

	"safar/internal/domain/bookings"
	"safar/internal/domain/listings"

	"github.com/9ssi7/exponent"
)

type fakePush struct {
	sent []*exponent.Message
	err  error
}

func (f *fakePush) Publish(_ context.Context, msgs []*exponent.Message) ([]*exponent.MessageResponse, error) {
	f.sent = append(f.sent, msgs...)
	return nil, f.err
}

type fakeTokens map[int64][]string

func (f fakeTokens) GetTokensByUserIDs(_ context.Context, ids []int64) (map[int64][]string, error) {
	out := make(map[int64][]string)
	for _, id := range ids {
		out[id] = f[id]
	}
	return out, nil
}

func TestBookingStatusChanged(t *testing.T) {
	push := &fakePush{}
	n := NewBookingNotifier(push, fakeTokens{7: {"ExponentPushToken[a]", "ExponentPushToken[b]"}})

	reason := "overbooked"
	b := bookings.Booking{
		ID:           42,
		UserID:       7,
		Status:       bookings.StatusCancelled,
		CancelReason: &reason,
		Listing:      &listings.Ref{Title: "Lakeside Inn"},
	}
	if err := n.BookingStatusChanged(context.Background(), b); err != nil {
		t.Fatal(err)
	}
	if len(push.sent) != 2 {
		t.Fatalf("expected one message per token, got %d", len(push.sent))
	}
	msg := push.sent[0]
	if msg.Title != "Booking Cancelled" {
		t.Errorf("title = %q", msg.Title)
	}
	if !strings.Contains(msg.Body, "Lakeside Inn") || !strings.Contains(msg.Body, "overbooked") {
		t.Errorf("body = %q", msg.Body)
	}
	if msg.Data["bookingId"] != "42" || msg.Data["event"] != bookings.StatusCancelled {
		t.Errorf("data = %v", msg.Data)
	}
}

func TestBookingStatusChangedErrors(t *testing.T) {
	n := NewBookingNotifier(&fakePush{}, fakeTokens{})
	err := n.BookingStatusChanged(context.Background(), bookings.Booking{ID: 1, UserID: 9})
	if !errors.Is(err, ErrNoTokens) {
		t.Fatalf("expected ErrNoTokens, got %v", err)
	}

	boom := errors.New("expo down")
	n = NewBookingNotifier(&fakePush{err: boom}, fakeTokens{9: {"tok"}})
	err = n.BookingStatusChanged(context.Background(), bookings.Booking{ID: 1, UserID: 9, Status: bookings.StatusConfirmed})
	if !errors.Is(err, boom) {
		t.Fatalf("expected publish error, got %v", err)
	}
}

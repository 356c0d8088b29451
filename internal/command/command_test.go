package command

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"safar/internal/audit"
	"safar/internal/domain/bookings"
	"safar/internal/domain/listings"
	"safar/internal/domain/reviews"
	"safar/internal/domain/tickets"
	"safar/internal/domain/users"
	"safar/internal/store"
)

var t0 = time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)

func seed() *store.Memory {
	admin := int64(1)
	return store.NewMemory(store.Seed{
		Users: []users.User{
			{ID: 1, Name: "Asha Admin", Email: "asha@safar.test", Role: users.RoleAdmin, IsActive: true},
			{ID: 2, Name: "Bikash", Email: "bikash@example.com", Role: users.RoleCustomer, IsActive: true},
			{ID: 3, Name: "Old Admin", Email: "old@safar.test", Role: users.RoleAdmin, IsActive: false},
		},
		Listings: []listings.Listing{
			{ID: 10, Kind: listings.KindProperty, OwnerID: 2, Title: "Lakeside Inn", ApprovalStatus: listings.StatusPending, CreatedAt: t0},
			{ID: 11, Kind: listings.KindVehicle, OwnerID: 2, Title: "Jeep", ApprovalStatus: listings.StatusApproved, IsAvailable: true, CreatedAt: t0},
		},
		Bookings: []bookings.Booking{
			{ID: 20, ListingID: 10, UserID: 2, Status: bookings.StatusPending, TotalPrice: 4500, CreatedAt: t0},
			{ID: 21, ListingID: 10, UserID: 2, Status: bookings.StatusCancelled, TotalPrice: 1200, CreatedAt: t0},
		},
		Reviews: []reviews.Review{
			{ID: 30, ListingID: 10, UserID: 2, Rating: 2, Comment: "noisy"},
			{ID: 31, ListingID: 10, UserID: 2, Rating: 5, Comment: "lovely", IsHidden: true},
		},
		Tickets: []tickets.Ticket{
			{ID: 40, Reference: "TKT-AAAA-0001", UserID: 2, Subject: "refund", Status: tickets.StatusNew, Priority: tickets.PriorityLow},
			{ID: 41, Reference: "TKT-AAAA-0002", UserID: 2, Subject: "login", Status: tickets.StatusResolved, Priority: tickets.PriorityHigh, AssigneeID: &admin},
		},
	})
}

type recordingNotifier struct {
	got    []bookings.Booking
	ctxErr error
	err    error
}

func (n *recordingNotifier) BookingStatusChanged(ctx context.Context, b bookings.Booking) error {
	n.got = append(n.got, b)
	n.ctxErr = ctx.Err()
	return n.err
}

var actor = Actor{ID: 1, Request: audit.RequestContext{IP: "10.0.0.7", UserAgent: "test", RequestID: "req-1"}}

func TestConfirmBookingWritesAuditAndNotifies(t *testing.T) {
	mem := seed()
	n := &recordingNotifier{}
	h := NewHandler(mem, n, nil)

	res, err := h.Execute(context.Background(), actor, 20, ConfirmBooking{})
	if err != nil {
		t.Fatal(err)
	}
	b := res.Entity.(bookings.Booking)
	if b.Status != bookings.StatusConfirmed {
		t.Fatalf("status = %s", b.Status)
	}

	entries := mem.AuditLog.All()
	if len(entries) != 1 {
		t.Fatalf("expected one audit entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Action != "booking.confirm" || e.ResourceType != Booking || e.ResourceID != 20 || e.ActorID != 1 {
		t.Errorf("unexpected audit entry %+v", e)
	}
	if e.IPAddress != "10.0.0.7" || e.RequestID != "req-1" || e.Before == "" || e.After == "" {
		t.Errorf("audit entry missing request context or snapshots: %+v", e)
	}
	h.Wait()
	if len(n.got) != 1 || n.got[0].ID != 20 {
		t.Errorf("expected one notification for booking 20, got %v", n.got)
	}
}

func TestExecuteErrors(t *testing.T) {
	tests := []struct {
		name string
		id   int64
		cmd  Command
		want error
	}{
		{"cancelled is terminal", 21, ConfirmBooking{}, ErrInvalidTransition},
		{"complete needs confirmed", 20, CompleteBooking{}, ErrInvalidTransition},
		{"missing booking", 999, ConfirmBooking{}, ErrNotFound},
		{"cancel needs reason", 20, CancelBooking{Reason: "  "}, ErrValidation},
		{"bad id", 0, ConfirmBooking{}, ErrValidation},
		{"reject needs reason", 10, RejectListing{}, ErrValidation},
		{"activate pending listing", 10, ActivateListing{}, ErrInvalidTransition},
		{"feature hidden review", 31, FeatureReview{}, ErrInvalidTransition},
		{"unhide visible review", 30, UnhideReview{}, ErrInvalidTransition},
		{"start unassigned ticket", 40, StartTicket{}, ErrInvalidTransition},
		{"escalate high ticket", 41, EscalateTicket{}, ErrInvalidTransition},
		{"assign inactive admin", 40, AssignTicket{AssigneeID: 3}, ErrValidation},
		{"assign customer", 40, AssignTicket{AssigneeID: 2}, ErrValidation},
		{"assign missing user", 40, AssignTicket{AssigneeID: 77}, ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := seed()
			n := &recordingNotifier{}
			h := NewHandler(mem, n, nil)

			_, err := h.Execute(context.Background(), actor, tt.id, tt.cmd)
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
			if got := len(mem.AuditLog.All()); got != 0 {
				t.Errorf("failed command wrote %d audit entries", got)
			}
			h.Wait()
			if len(n.got) != 0 {
				t.Errorf("failed command sent notifications")
			}
		})
	}
}

type failingAudit struct{}

func (failingAudit) Create(context.Context, audit.Entry) (audit.Entry, error) {
	return audit.Entry{}, errors.New("audit store unavailable")
}

func TestAuditFailureRollsBack(t *testing.T) {
	mem := seed()
	mem.UseAuditStore(failingAudit{})
	n := &recordingNotifier{}
	h := NewHandler(mem, n, nil)

	if _, err := h.Execute(context.Background(), actor, 20, ConfirmBooking{}); err == nil {
		t.Fatal("expected audit failure")
	}
	b, err := mem.Bookings.Get(context.Background(), 20)
	if err != nil {
		t.Fatal(err)
	}
	if b.Status != bookings.StatusPending {
		t.Fatalf("booking update was not rolled back: %s", b.Status)
	}
	h.Wait()
	if len(n.got) != 0 {
		t.Error("notified about a rolled back change")
	}
}

func TestNotificationOutlivesRequest(t *testing.T) {
	mem := seed()
	n := &recordingNotifier{}
	h := NewHandler(mem, n, nil)

	ctx, cancel := context.WithCancel(context.Background())
	if _, err := h.Execute(ctx, actor, 20, ConfirmBooking{}); err != nil {
		t.Fatal(err)
	}
	cancel()
	h.Wait()

	if len(n.got) != 1 {
		t.Fatalf("expected one notification, got %d", len(n.got))
	}
	if n.ctxErr != nil {
		t.Fatalf("notification saw a cancelled context: %v", n.ctxErr)
	}
}

func TestNotifierFailureDoesNotFailCommand(t *testing.T) {
	mem := seed()
	h := NewHandler(mem, &recordingNotifier{err: errors.New("expo down")}, nil)

	res, err := h.Execute(context.Background(), actor, 20, CancelBooking{Reason: "guest request"})
	if err != nil {
		t.Fatal(err)
	}
	b := res.Entity.(bookings.Booking)
	if b.Status != bookings.StatusCancelled || b.CancelReason == nil || *b.CancelReason != "guest request" {
		t.Fatalf("unexpected booking %+v", b)
	}
	h.Wait()
}

func TestListingApprovalFlow(t *testing.T) {
	mem := seed()
	h := NewHandler(mem, nil, nil)
	ctx := context.Background()

	res, err := h.Execute(ctx, actor, 10, RejectListing{Reason: "photos missing"})
	if err != nil {
		t.Fatal(err)
	}
	l := res.Entity.(listings.Listing)
	if l.ApprovalStatus != listings.StatusRejected || l.IsAvailable || l.RejectionReason == nil {
		t.Fatalf("after reject: %+v", l)
	}

	res, err = h.Execute(ctx, actor, 10, ApproveListing{})
	if err != nil {
		t.Fatal(err)
	}
	l = res.Entity.(listings.Listing)
	if l.ApprovalStatus != listings.StatusApproved || !l.IsAvailable || l.RejectionReason != nil {
		t.Fatalf("after approve: %+v", l)
	}

	if _, err := h.Execute(ctx, actor, 10, DeactivateListing{}); err != nil {
		t.Fatal(err)
	}
	if _, err := h.Execute(ctx, actor, 10, DeactivateListing{}); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("second deactivate: %v", err)
	}
	if got := len(mem.AuditLog.All()); got != 3 {
		t.Fatalf("expected 3 audit entries, got %d", got)
	}
}

func TestTicketFlow(t *testing.T) {
	mem := seed()
	h := NewHandler(mem, nil, nil)
	ctx := context.Background()

	steps := []struct {
		cmd      Command
		status   string
		priority string
	}{
		{AssignTicket{AssigneeID: 1}, tickets.StatusAssigned, tickets.PriorityLow},
		{EscalateTicket{}, tickets.StatusAssigned, tickets.PriorityMedium},
		{StartTicket{}, tickets.StatusInProgress, tickets.PriorityMedium},
		{WaitTicket{}, tickets.StatusWaiting, tickets.PriorityMedium},
		{ResolveTicket{}, tickets.StatusResolved, tickets.PriorityMedium},
		{CloseTicket{}, tickets.StatusClosed, tickets.PriorityMedium},
		{ReopenTicket{}, tickets.StatusAssigned, tickets.PriorityMedium},
	}
	for _, s := range steps {
		if _, err := h.Execute(ctx, actor, 40, s.cmd); err != nil {
			t.Fatalf("%s: %v", s.cmd.Action(), err)
		}
		tk, _ := mem.Tickets.Get(ctx, 40)
		if tk.Status != s.status || tk.Priority != s.priority {
			t.Fatalf("after %s: status %s priority %s", s.cmd.Action(), tk.Status, tk.Priority)
		}
	}

	res, err := h.Execute(ctx, actor, 40, ReplyTicket{Body: "We are on it", Internal: false})
	if err != nil {
		t.Fatal(err)
	}
	msg := res.Entity.(tickets.Message)
	if msg.TicketID != 40 || msg.AuthorID != 1 || msg.Body != "We are on it" {
		t.Fatalf("unexpected message %+v", msg)
	}
	if got := len(mem.Messages.All()); got != 1 {
		t.Fatalf("expected one message, got %d", got)
	}
}

func TestDecode(t *testing.T) {
	c, err := Decode(Review, " Hide ", Fields{Note: "spam"})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(c, HideReview{Note: "spam"}) {
		t.Fatalf("got %#v", c)
	}

	for resource, actions := range Actions {
		for _, a := range actions {
			c, err := Decode(resource, a, Fields{})
			if err != nil {
				t.Fatalf("%s/%s: %v", resource, a, err)
			}
			if c.Resource() != resource || c.Action() != a {
				t.Errorf("%s/%s decoded to %s/%s", resource, a, c.Resource(), c.Action())
			}
		}
	}

	if _, err := Decode(Booking, "teleport", Fields{}); !errors.Is(err, ErrValidation) {
		t.Errorf("unknown action: %v", err)
	}
	if _, err := Decode("payment", "refund", Fields{}); !errors.Is(err, ErrValidation) {
		t.Errorf("unknown resource: %v", err)
	}
}

func TestAvailableActions(t *testing.T) {
	tests := []struct {
		name string
		got  []string
		want []string
	}{
		{"pending booking", BookingActions(bookings.Booking{Status: bookings.StatusPending}), []string{"confirm", "cancel"}},
		{"confirmed booking", BookingActions(bookings.Booking{Status: bookings.StatusConfirmed}), []string{"complete", "cancel"}},
		{"cancelled booking", BookingActions(bookings.Booking{Status: bookings.StatusCancelled}), []string{}},
		{"pending listing", ListingActions(listings.Listing{ApprovalStatus: listings.StatusPending}), []string{"approve", "reject"}},
		{"active listing", ListingActions(listings.Listing{ApprovalStatus: listings.StatusApproved, IsAvailable: true}), []string{"reject", "deactivate"}},
		{"removed review", ReviewActions(reviews.Review{IsRemoved: true}), []string{}},
		{"new ticket", TicketActions(tickets.Ticket{Status: tickets.StatusNew, Priority: tickets.PriorityHigh}), []string{"assign", "close", "reply"}},
	}
	for _, tt := range tests {
		if !reflect.DeepEqual(tt.got, tt.want) {
			t.Errorf("%s: got %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

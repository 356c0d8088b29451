package metrics

import (
	"context"
	"math"
	"reflect"
	"testing"
	"time"

	"safar/internal/collection"
)

var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func TestUtilizationRateBounds(t *testing.T) {
	tests := []struct {
		name     string
		bookings int64
		created  time.Time
		want     float64
	}{
		{"created just now", 3, now, 100},
		{"created in future", 1, now.Add(time.Hour), 100},
		{"zero created at", 0, time.Time{}, 0},
		{"half", 5, now.AddDate(0, 0, -10), 50},
		{"clamped", 40, now.AddDate(0, 0, -10), 100},
		{"negative bookings", -2, now.AddDate(0, 0, -10), 0},
		{"partial day floors", 1, now.Add(-36 * time.Hour), 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UtilizationRate(tt.bookings, tt.created, now)
			if math.IsNaN(got) || got < 0 || got > 100 {
				t.Fatalf("rate %v out of bounds", got)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDisplayStatus(t *testing.T) {
	tests := []struct {
		approval  string
		available bool
		want      string
	}{
		{"PENDING", true, StatusPending},
		{"PENDING", false, StatusPending},
		{"REJECTED", true, StatusRejected},
		{"REJECTED", false, StatusRejected},
		{"APPROVED", true, StatusActive},
		{"APPROVED", false, StatusInactive},
		{"", true, StatusUnknown},
		{"archived", false, StatusUnknown},
	}
	for _, tt := range tests {
		if got := DisplayStatus(tt.approval, tt.available); got != tt.want {
			t.Errorf("DisplayStatus(%q, %v) = %s, want %s", tt.approval, tt.available, got, tt.want)
		}
	}
}

type booking struct {
	ID        int64
	ListingID int64
	UserID    int64
	Status    string
	Total     float64
	CreatedAt time.Time
}

func (b booking) EntityID() int64                { return b.ID }
func (b booking) WithID(id int64) booking        { b.ID = id; return b }
func (b booking) Apply(collection.Patch) booking { return b }
func (b booking) Field(name string) (any, bool) {
	switch name {
	case "id":
		return b.ID, true
	case FieldListingID:
		return b.ListingID, true
	case FieldUserID:
		return b.UserID, true
	case FieldStatus:
		return b.Status, true
	case FieldTotalPrice:
		return b.Total, true
	case FieldCreatedEpoch:
		return float64(b.CreatedAt.Unix()), true
	}
	return nil, false
}

func TestEnrich(t *testing.T) {
	mem := collection.NewMemory(
		booking{ListingID: 1, UserID: 7, Status: "COMPLETED", Total: 1200, CreatedAt: now.AddDate(0, 0, -3)},
		booking{ListingID: 1, UserID: 7, Status: "COMPLETED", Total: 800.5, CreatedAt: now.AddDate(0, 0, -2)},
		booking{ListingID: 1, UserID: 8, Status: "CANCELLED", Total: 999, CreatedAt: now.AddDate(0, 0, -1)},
		booking{ListingID: 2, UserID: 8, Status: "PENDING", Total: 300, CreatedAt: now.AddDate(0, 0, -5)},
		booking{ListingID: 9, UserID: 8, Status: "COMPLETED", Total: 5000, CreatedAt: now},
	)
	e := &Enricher{Bookings: mem, Now: func() time.Time { return now }}

	subjects := []Subject{
		{ID: 1, Approval: "APPROVED", Available: true, CreatedAt: now.AddDate(0, 0, -20)},
		{ID: 2, Approval: "PENDING", Available: true, CreatedAt: now},
		{ID: 3, Approval: "APPROVED", Available: false, CreatedAt: now.AddDate(0, 0, -1)},
	}
	input := append([]Subject(nil), subjects...)

	got, err := e.Enrich(context.Background(), subjects)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(got))
	}

	if got[0].TotalBookings != 2 || got[0].TotalRevenue != 2000.5 || got[0].UtilizationRate != 10 || got[0].DisplayStatus != StatusActive {
		t.Errorf("listing 1: %+v", got[0])
	}
	if got[0].LastBookingAt == nil || !got[0].LastBookingAt.Equal(now.AddDate(0, 0, -1)) {
		t.Errorf("listing 1 last booking: %v", got[0].LastBookingAt)
	}
	if got[1].TotalBookings != 1 || got[1].TotalRevenue != 0 || got[1].UtilizationRate != 100 || got[1].DisplayStatus != StatusPending {
		t.Errorf("listing 2: %+v", got[1])
	}
	if got[2].TotalBookings != 0 || got[2].LastBookingAt != nil || got[2].DisplayStatus != StatusInactive {
		t.Errorf("listing 3: %+v", got[2])
	}

	again, err := e.Enrich(context.Background(), subjects)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, again) {
		t.Errorf("re-enrichment changed output:\n%+v\n%+v", got, again)
	}
	if !reflect.DeepEqual(subjects, input) {
		t.Error("enrich mutated its input")
	}
}

func TestBookingsPerUser(t *testing.T) {
	mem := collection.NewMemory(
		booking{UserID: 7}, booking{UserID: 7}, booking{UserID: 8},
	)
	got, err := BookingsPerUser(context.Background(), mem, []int64{7, 8, 9})
	if err != nil {
		t.Fatal(err)
	}
	want := map[int64]int64{7: 2, 8: 1, 9: 0}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

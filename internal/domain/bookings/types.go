package bookings

import (
	"time"

	"safar/internal/collection"
	"safar/internal/domain/listings"
	"safar/internal/domain/users"
	"safar/internal/query"
)

// Booking lifecycle: PENDING -> CONFIRMED -> COMPLETED, or -> CANCELLED.
const (
	StatusPending   = "PENDING"
	StatusConfirmed = "CONFIRMED"
	StatusCompleted = "COMPLETED"
	StatusCancelled = "CANCELLED"
)

var Statuses = []string{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled}

// Booking represents a reservation of one listing by one customer.
type Booking struct {
	ID           int64          `json:"id"`
	ListingID    int64          `json:"listing_id"`
	ListingKind  string         `json:"listing_kind"`
	UserID       int64          `json:"user_id"`
	Status       string         `json:"status"`
	TotalPrice   float64        `json:"total_price"`
	StartDate    time.Time      `json:"start_date"`
	EndDate      time.Time      `json:"end_date"`
	Guests       int            `json:"guests"`
	CancelReason *string        `json:"cancel_reason,omitempty" swaggertype:"string"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	Customer     *users.Summary `json:"customer,omitempty"`
	Listing      *listings.Ref  `json:"listing,omitempty"`
}

func (b Booking) EntityID() int64         { return b.ID }
func (b Booking) WithID(id int64) Booking { b.ID = id; return b }

func (b Booking) Field(name string) (any, bool) {
	switch name {
	case "id":
		return b.ID, true
	case "listing_id":
		return b.ListingID, true
	case "listing_kind":
		return b.ListingKind, true
	case "user_id":
		return b.UserID, true
	case "status":
		return b.Status, true
	case "total_price":
		return b.TotalPrice, true
	case "start_date":
		return b.StartDate, true
	case "end_date":
		return b.EndDate, true
	case "guests":
		return b.Guests, true
	case "created_at":
		return b.CreatedAt, true
	case "created_epoch":
		return float64(b.CreatedAt.Unix()), true
	case "updated_at":
		return b.UpdatedAt, true
	}
	return nil, false
}

func (b Booking) Related(name string) (query.Record, bool) {
	switch name {
	case "customer":
		if b.Customer != nil {
			return b.Customer, true
		}
	case "listing":
		if b.Listing != nil {
			return b.Listing, true
		}
	}
	return nil, false
}

func (b Booking) Apply(p collection.Patch) Booking {
	for k, v := range p {
		switch k {
		case "status":
			b.Status, _ = v.(string)
		case "cancel_reason":
			switch r := v.(type) {
			case string:
				b.CancelReason = &r
			case *string:
				b.CancelReason = r
			default:
				b.CancelReason = nil
			}
		case "updated_at":
			b.UpdatedAt, _ = v.(time.Time)
		}
	}
	return b
}

// Nights returns the number of nights (or rental days) covered.
func (b Booking) Nights() int {
	d := int(b.EndDate.Sub(b.StartDate).Hours() / 24)
	return max(d, 0)
}

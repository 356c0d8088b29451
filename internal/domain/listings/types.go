package listings

import (
	"time"

	"safar/internal/collection"
	"safar/internal/domain/users"
	"safar/internal/query"
)

// Kinds of listing.
const (
	KindProperty = "property"
	KindVehicle  = "vehicle"
	KindTour     = "tour"
)

// Approval statuses.
const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

var Kinds = []string{KindProperty, KindVehicle, KindTour}

func ValidKind(k string) bool {
	for _, v := range Kinds {
		if v == k {
			return true
		}
	}
	return false
}

// Ref is the part of a listing shown next to bookings and reviews.
type Ref struct {
	ID    int64  `json:"id"`
	Kind  string `json:"kind"`
	Title string `json:"title"`
	City  string `json:"city"`
}

func (l *Ref) Field(name string) (any, bool) {
	if l == nil {
		return nil, false
	}
	switch name {
	case "id":
		return l.ID, true
	case "kind":
		return l.Kind, true
	case "title":
		return l.Title, true
	case "city":
		return l.City, true
	}
	return nil, false
}

// Listing is a property, vehicle or tour offered by a provider. Listings are
// never deleted; admins move them through approval and availability.
type Listing struct {
	ID              int64          `json:"id"`
	Kind            string         `json:"kind"`
	OwnerID         int64          `json:"owner_id"`
	Title           string         `json:"title"`
	Description     string         `json:"description,omitempty"`
	Category        string         `json:"category"`
	City            string         `json:"city"`
	Country         string         `json:"country"`
	Price           float64        `json:"price"`
	ApprovalStatus  string         `json:"approval_status"`
	IsAvailable     bool           `json:"is_available"`
	RejectionReason *string        `json:"rejection_reason,omitempty" swaggertype:"string"`
	RatingAvg       float64        `json:"rating_avg"`
	RatingCount     int64          `json:"rating_count"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	Owner           *users.Summary `json:"owner,omitempty"`
}

func (l Listing) EntityID() int64         { return l.ID }
func (l Listing) WithID(id int64) Listing { l.ID = id; return l }

func (l Listing) Field(name string) (any, bool) {
	switch name {
	case "id":
		return l.ID, true
	case "kind":
		return l.Kind, true
	case "owner_id":
		return l.OwnerID, true
	case "title":
		return l.Title, true
	case "description":
		return l.Description, true
	case "category":
		return l.Category, true
	case "city":
		return l.City, true
	case "country":
		return l.Country, true
	case "price":
		return l.Price, true
	case "approval_status":
		return l.ApprovalStatus, true
	case "is_available":
		return l.IsAvailable, true
	case "rating_avg":
		return l.RatingAvg, true
	case "rating_count":
		return l.RatingCount, true
	case "created_at":
		return l.CreatedAt, true
	case "updated_at":
		return l.UpdatedAt, true
	}
	return nil, false
}

func (l Listing) Related(name string) (query.Record, bool) {
	if name == "owner" && l.Owner != nil {
		return l.Owner, true
	}
	return nil, false
}

func (l Listing) Apply(p collection.Patch) Listing {
	for k, v := range p {
		switch k {
		case "approval_status":
			l.ApprovalStatus, _ = v.(string)
		case "is_available":
			l.IsAvailable, _ = v.(bool)
		case "rejection_reason":
			switch r := v.(type) {
			case string:
				l.RejectionReason = &r
			case *string:
				l.RejectionReason = r
			default:
				l.RejectionReason = nil
			}
		case "updated_at":
			l.UpdatedAt, _ = v.(time.Time)
		}
	}
	return l
}

func (l Listing) Ref() *Ref {
	return &Ref{ID: l.ID, Kind: l.Kind, Title: l.Title, City: l.City}
}

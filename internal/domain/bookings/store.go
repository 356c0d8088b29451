package bookings

import (
	"safar/internal/collection"
	"safar/internal/domain/listings"
	"safar/internal/domain/users"
	"safar/internal/query"

	"github.com/jackc/pgx/v5"
)

var Table = &collection.Table[Booking]{
	Name:  "bookings",
	Alias: "b",
	From: `bookings b
		JOIN users c ON c.id = b.user_id
		JOIN listings bl ON bl.id = b.listing_id`,
	Select: `b.id, b.listing_id, b.listing_kind, b.user_id, b.status, b.total_price::float8,
		b.start_date, b.end_date, b.guests, b.cancel_reason, b.created_at, b.updated_at,
		c.id, c.name, c.email, bl.id, bl.kind, bl.title, bl.city`,
	Mapping: query.Mapping{
		Columns: map[string]string{
			"id":            "b.id",
			"listing_id":    "b.listing_id",
			"listing_kind":  "b.listing_kind",
			"user_id":       "b.user_id",
			"status":        "b.status",
			"total_price":   "b.total_price",
			"start_date":    "b.start_date",
			"end_date":      "b.end_date",
			"guests":        "b.guests",
			"created_at":    "b.created_at",
			"created_epoch": "EXTRACT(EPOCH FROM b.created_at)",
			"updated_at":    "b.updated_at",
		},
		Relations: map[string]query.Relation{
			"customer": users.Relation("b.user_id"),
			"listing": {
				From: "listings rl",
				On:   "rl.id = b.listing_id",
				Columns: map[string]string{
					"title": "rl.title",
					"city":  "rl.city",
					"kind":  "rl.kind",
				},
			},
		},
	},
	Writable: map[string]bool{"status": true, "cancel_reason": true},
	Touch:    true,
	Scan: func(row pgx.Row) (Booking, error) {
		var (
			b  Booking
			c  users.Summary
			lr listings.Ref
		)
		err := row.Scan(
			&b.ID, &b.ListingID, &b.ListingKind, &b.UserID, &b.Status, &b.TotalPrice,
			&b.StartDate, &b.EndDate, &b.Guests, &b.CancelReason, &b.CreatedAt, &b.UpdatedAt,
			&c.ID, &c.Name, &c.Email, &lr.ID, &lr.Kind, &lr.Title, &lr.City,
		)
		b.Customer = &c
		b.Listing = &lr
		return b, err
	},
	Insert: func(b Booking) ([]string, []any) {
		return []string{"listing_id", "listing_kind", "user_id", "status", "total_price", "start_date", "end_date", "guests"},
			[]any{b.ListingID, b.ListingKind, b.UserID, b.Status, b.TotalPrice, b.StartDate, b.EndDate, b.Guests}
	},
}

var Schema = query.Schema{
	SearchRelated: map[string][]string{
		"customer": {"name", "email"},
		"listing":  {"title", "city"},
	},
	Enums: []query.EnumFilter{
		{Key: "status", Field: "status", Values: Statuses},
		{Key: "kind", Field: "listing_kind", Values: listings.Kinds},
	},
	Ranges: []query.RangeFilter{
		{Key: "priceRange", Field: "total_price"},
	},
	Numbers: []query.NumberFilter{
		{Key: "listing", Field: "listing_id"},
		{Key: "user", Field: "user_id"},
	},
	Dates: []query.DateFilter{
		{FromKey: "from", ToKey: "to", Field: "start_date"},
	},
}

var Sorts = query.Sorts{
	Default: "newest",
	Keys: map[string][]query.Order{
		"newest":     {{Field: "created_at", Desc: true}},
		"oldest":     {{Field: "created_at"}},
		"price_high": {{Field: "total_price", Desc: true}},
		"price_low":  {{Field: "total_price"}},
		"checkin":    {{Field: "start_date"}},
	},
}

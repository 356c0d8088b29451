package listings

import (
	"safar/internal/collection"
	"safar/internal/domain/users"
	"safar/internal/query"

	"github.com/jackc/pgx/v5"
)

var Table = &collection.Table[Listing]{
	Name:  "listings",
	Alias: "l",
	From:  "listings l JOIN users o ON o.id = l.owner_id",
	Select: `l.id, l.kind, l.owner_id, l.title, COALESCE(l.description, ''), l.category, l.city, l.country,
		l.price::float8, l.approval_status, l.is_available, l.rejection_reason,
		l.rating_avg::float8, l.rating_count, l.created_at, l.updated_at,
		o.id, o.name, o.email`,
	Mapping: query.Mapping{
		Columns: map[string]string{
			"id":              "l.id",
			"kind":            "l.kind",
			"owner_id":        "l.owner_id",
			"title":           "l.title",
			"description":     "l.description",
			"category":        "l.category",
			"city":            "l.city",
			"country":         "l.country",
			"price":           "l.price",
			"approval_status": "l.approval_status",
			"is_available":    "l.is_available",
			"rating_avg":      "l.rating_avg",
			"rating_count":    "l.rating_count",
			"created_at":      "l.created_at",
			"updated_at":      "l.updated_at",
		},
		Relations: map[string]query.Relation{
			"owner": users.Relation("l.owner_id"),
		},
	},
	Writable: map[string]bool{
		"approval_status":  true,
		"is_available":     true,
		"rejection_reason": true,
	},
	Touch: true,
	Scan: func(row pgx.Row) (Listing, error) {
		var (
			l     Listing
			owner users.Summary
		)
		err := row.Scan(
			&l.ID, &l.Kind, &l.OwnerID, &l.Title, &l.Description, &l.Category, &l.City, &l.Country,
			&l.Price, &l.ApprovalStatus, &l.IsAvailable, &l.RejectionReason,
			&l.RatingAvg, &l.RatingCount, &l.CreatedAt, &l.UpdatedAt,
			&owner.ID, &owner.Name, &owner.Email,
		)
		l.Owner = &owner
		return l, err
	},
	Insert: func(l Listing) ([]string, []any) {
		return []string{"kind", "owner_id", "title", "description", "category", "city", "country", "price", "approval_status", "is_available"},
			[]any{l.Kind, l.OwnerID, l.Title, l.Description, l.Category, l.City, l.Country, l.Price, l.ApprovalStatus, l.IsAvailable}
	},
}

// Schema is the filter set shared by the property, vehicle and tour lists.
var Schema = query.Schema{
	Search:        []string{"title", "city", "country", "category"},
	SearchRelated: map[string][]string{"owner": {"name", "email"}},
	Enums: []query.EnumFilter{
		{Key: "status", Field: "approval_status", Values: []string{StatusPending, StatusApproved, StatusRejected}},
	},
	Ranges: []query.RangeFilter{
		{Key: "priceRange", Field: "price"},
	},
	Numbers: []query.NumberFilter{
		{Key: "rating", Field: "rating_avg", Op: query.OpGte},
		{Key: "owner", Field: "owner_id"},
	},
	Bools: []query.BoolFilter{
		{Key: "available", Field: "is_available"},
	},
	Dates: []query.DateFilter{
		{FromKey: "from", ToKey: "to", Field: "created_at"},
	},
}

// Categories holds the category values allowed per kind. Category filters
// outside the kind's list are ignored.
var Categories = map[string][]string{
	KindProperty: {"hotel", "apartment", "villa", "guesthouse", "hostel", "resort"},
	KindVehicle:  {"car", "suv", "van", "motorbike", "bus"},
	KindTour:     {"trekking", "cultural", "adventure", "wildlife", "city"},
}

// SchemaFor returns Schema extended with the category filter of kind.
func SchemaFor(kind string) query.Schema {
	s := Schema
	s.Enums = append([]query.EnumFilter{
		{Key: "category", Field: "category", Values: Categories[kind]},
	}, Schema.Enums...)
	return s
}

var Sorts = query.Sorts{
	Default: "newest",
	Keys: map[string][]query.Order{
		"newest":     {{Field: "created_at", Desc: true}},
		"oldest":     {{Field: "created_at"}},
		"price_low":  {{Field: "price"}},
		"price_high": {{Field: "price", Desc: true}},
		"rating":     {{Field: "rating_avg", Desc: true}, {Field: "rating_count", Desc: true}},
		"title":      {{Field: "title"}},
	},
}

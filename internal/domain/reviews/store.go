package reviews

import (
	"safar/internal/collection"
	"safar/internal/domain/listings"
	"safar/internal/domain/users"
	"safar/internal/query"

	"github.com/jackc/pgx/v5"
)

var Table = &collection.Table[Review]{
	Name:  "reviews",
	Alias: "r",
	From: `reviews r
		JOIN users a ON a.id = r.user_id
		JOIN listings rl ON rl.id = r.listing_id`,
	Select: `r.id, r.listing_id, r.user_id, r.rating, r.comment, r.is_hidden, r.is_flagged,
		r.is_featured, r.is_removed, r.owner_response, r.moderation_note, r.created_at, r.updated_at,
		a.id, a.name, a.email, rl.id, rl.kind, rl.title, rl.city`,
	Mapping: query.Mapping{
		Columns: map[string]string{
			"id":           "r.id",
			"listing_id":   "r.listing_id",
			"user_id":      "r.user_id",
			"rating":       "r.rating",
			"comment":      "r.comment",
			"is_hidden":    "r.is_hidden",
			"is_flagged":   "r.is_flagged",
			"is_featured":  "r.is_featured",
			"is_removed":   "r.is_removed",
			"created_at":   "r.created_at",
			"updated_at":   "r.updated_at",
			"listing_kind": "rl.kind",
		},
		Relations: map[string]query.Relation{
			"author": users.Relation("r.user_id"),
			"listing": {
				From:    "listings sl",
				On:      "sl.id = r.listing_id",
				Columns: map[string]string{"title": "sl.title", "city": "sl.city"},
			},
		},
	},
	Writable: map[string]bool{
		"comment":         true,
		"is_hidden":       true,
		"is_flagged":      true,
		"is_featured":     true,
		"is_removed":      true,
		"owner_response":  true,
		"moderation_note": true,
	},
	Touch: true,
	Scan: func(row pgx.Row) (Review, error) {
		var (
			r  Review
			a  users.Summary
			lr listings.Ref
		)
		err := row.Scan(
			&r.ID, &r.ListingID, &r.UserID, &r.Rating, &r.Comment, &r.IsHidden, &r.IsFlagged,
			&r.IsFeatured, &r.IsRemoved, &r.OwnerResponse, &r.ModerationNote, &r.CreatedAt, &r.UpdatedAt,
			&a.ID, &a.Name, &a.Email, &lr.ID, &lr.Kind, &lr.Title, &lr.City,
		)
		r.Author = &a
		r.Listing = &lr
		return r, err
	},
	Insert: func(r Review) ([]string, []any) {
		return []string{"listing_id", "user_id", "rating", "comment"},
			[]any{r.ListingID, r.UserID, r.Rating, r.Comment}
	},
}

var Schema = query.Schema{
	Search: []string{"comment"},
	SearchRelated: map[string][]string{
		"author":  {"name", "email"},
		"listing": {"title"},
	},
	Enums: []query.EnumFilter{
		{Key: "kind", Field: "listing_kind", Values: listings.Kinds},
	},
	Numbers: []query.NumberFilter{
		{Key: "rating", Field: "rating"},
		{Key: "minRating", Field: "rating", Op: query.OpGte},
		{Key: "listing", Field: "listing_id"},
	},
	Bools: []query.BoolFilter{
		{Key: "hidden", Field: "is_hidden"},
		{Key: "flagged", Field: "is_flagged"},
		{Key: "featured", Field: "is_featured"},
		{Key: "removed", Field: "is_removed"},
	},
	Dates: []query.DateFilter{
		{FromKey: "from", ToKey: "to", Field: "created_at"},
	},
	Presets: []query.PresetFilter{
		{Key: "status", Options: StatusFilter},
	},
}

// StatusFilter maps the "status" query key onto flag predicates.
var StatusFilter = map[string]query.Predicate{
	"visible":  query.Conj(query.Eq("is_hidden", false), query.Eq("is_removed", false)),
	"hidden":   query.Eq("is_hidden", true),
	"flagged":  query.Eq("is_flagged", true),
	"featured": query.Eq("is_featured", true),
	"removed":  query.Eq("is_removed", true),
}

var Sorts = query.Sorts{
	Default: "newest",
	Keys: map[string][]query.Order{
		"newest":      {{Field: "created_at", Desc: true}},
		"oldest":      {{Field: "created_at"}},
		"rating_high": {{Field: "rating", Desc: true}},
		"rating_low":  {{Field: "rating"}},
	},
}

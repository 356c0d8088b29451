package reviews

import (
	"time"

	"safar/internal/collection"
	"safar/internal/domain/listings"
	"safar/internal/domain/users"
	"safar/internal/query"
)

// Review is customer feedback on a listing. Moderation only flips flags and
// edits text; removed reviews stay in the table with IsRemoved set.
type Review struct {
	ID             int64          `json:"id"`
	ListingID      int64          `json:"listing_id"`
	UserID         int64          `json:"user_id"`
	Rating         int            `json:"rating"`
	Comment        string         `json:"comment"`
	IsHidden       bool           `json:"is_hidden"`
	IsFlagged      bool           `json:"is_flagged"`
	IsFeatured     bool           `json:"is_featured"`
	IsRemoved      bool           `json:"is_removed"`
	OwnerResponse  *string        `json:"owner_response,omitempty" swaggertype:"string"`
	ModerationNote *string        `json:"moderation_note,omitempty" swaggertype:"string"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	Author         *users.Summary `json:"author,omitempty"`
	Listing        *listings.Ref  `json:"listing,omitempty"`
}

// Visibility is the single label shown for a review's moderation state.
func (r Review) Visibility() string {
	switch {
	case r.IsRemoved:
		return "removed"
	case r.IsHidden:
		return "hidden"
	case r.IsFlagged:
		return "flagged"
	case r.IsFeatured:
		return "featured"
	}
	return "visible"
}

func (r Review) EntityID() int64        { return r.ID }
func (r Review) WithID(id int64) Review { r.ID = id; return r }

func (r Review) Field(name string) (any, bool) {
	switch name {
	case "id":
		return r.ID, true
	case "listing_id":
		return r.ListingID, true
	case "user_id":
		return r.UserID, true
	case "rating":
		return r.Rating, true
	case "comment":
		return r.Comment, true
	case "is_hidden":
		return r.IsHidden, true
	case "is_flagged":
		return r.IsFlagged, true
	case "is_featured":
		return r.IsFeatured, true
	case "is_removed":
		return r.IsRemoved, true
	case "listing_kind":
		if r.Listing != nil {
			return r.Listing.Kind, true
		}
	case "created_at":
		return r.CreatedAt, true
	case "updated_at":
		return r.UpdatedAt, true
	}
	return nil, false
}

func (r Review) Related(name string) (query.Record, bool) {
	switch name {
	case "author":
		if r.Author != nil {
			return r.Author, true
		}
	case "listing":
		if r.Listing != nil {
			return r.Listing, true
		}
	}
	return nil, false
}

func (r Review) Apply(p collection.Patch) Review {
	for k, v := range p {
		switch k {
		case "comment":
			r.Comment, _ = v.(string)
		case "is_hidden":
			r.IsHidden, _ = v.(bool)
		case "is_flagged":
			r.IsFlagged, _ = v.(bool)
		case "is_featured":
			r.IsFeatured, _ = v.(bool)
		case "is_removed":
			r.IsRemoved, _ = v.(bool)
		case "owner_response":
			r.OwnerResponse = optString(v)
		case "moderation_note":
			r.ModerationNote = optString(v)
		case "updated_at":
			r.UpdatedAt, _ = v.(time.Time)
		}
	}
	return r
}

func optString(v any) *string {
	switch s := v.(type) {
	case string:
		return &s
	case *string:
		return s
	}
	return nil
}

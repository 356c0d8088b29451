package command

import (
	"fmt"
	"strings"

	"safar/internal/collection"
	"safar/internal/domain/reviews"
)

const maxReviewText = 2000

// ReviewCommand moderates one review.
type ReviewCommand interface {
	Command
	patch(r reviews.Review) (collection.Patch, error)
}

type (
	HideReview      struct{ Note string }
	UnhideReview    struct{}
	FlagReview      struct{ Note string }
	UnflagReview    struct{}
	FeatureReview   struct{}
	UnfeatureReview struct{}
	EditReview      struct{ Comment string }
	RespondReview   struct{ Response string }
	RemoveReview    struct{ Reason string }
)

func (HideReview) Resource() string      { return Review }
func (UnhideReview) Resource() string    { return Review }
func (FlagReview) Resource() string      { return Review }
func (UnflagReview) Resource() string    { return Review }
func (FeatureReview) Resource() string   { return Review }
func (UnfeatureReview) Resource() string { return Review }
func (EditReview) Resource() string      { return Review }
func (RespondReview) Resource() string   { return Review }
func (RemoveReview) Resource() string    { return Review }

func (HideReview) Action() string      { return "hide" }
func (UnhideReview) Action() string    { return "unhide" }
func (FlagReview) Action() string      { return "flag" }
func (UnflagReview) Action() string    { return "unflag" }
func (FeatureReview) Action() string   { return "feature" }
func (UnfeatureReview) Action() string { return "unfeature" }
func (EditReview) Action() string      { return "edit" }
func (RespondReview) Action() string   { return "respond" }
func (RemoveReview) Action() string    { return "remove" }

func (c HideReview) Validate() error    { return maxLen("note", c.Note, 1000) }
func (UnhideReview) Validate() error    { return nil }
func (c FlagReview) Validate() error    { return maxLen("note", c.Note, 1000) }
func (UnflagReview) Validate() error    { return nil }
func (FeatureReview) Validate() error   { return nil }
func (UnfeatureReview) Validate() error { return nil }

func (c EditReview) Validate() error {
	return required("comment", c.Comment, maxReviewText)
}

func (c RespondReview) Validate() error {
	return required("response", c.Response, maxReviewText)
}

func (c RemoveReview) Validate() error {
	return required("reason", c.Reason, 1000)
}

func required(field, v string, limit int) error {
	if strings.TrimSpace(v) == "" {
		return invalidf("%s is required", field)
	}
	return maxLen(field, v, limit)
}

func maxLen(field, v string, limit int) error {
	if len(v) > limit {
		return invalidf("%s must be at most %d characters", field, limit)
	}
	return nil
}

func (HideReview) describe(id int64) string      { return fmt.Sprintf("Hid review #%d", id) }
func (UnhideReview) describe(id int64) string    { return fmt.Sprintf("Unhid review #%d", id) }
func (FlagReview) describe(id int64) string      { return fmt.Sprintf("Flagged review #%d", id) }
func (UnflagReview) describe(id int64) string    { return fmt.Sprintf("Cleared flag on review #%d", id) }
func (FeatureReview) describe(id int64) string   { return fmt.Sprintf("Featured review #%d", id) }
func (UnfeatureReview) describe(id int64) string { return fmt.Sprintf("Unfeatured review #%d", id) }
func (EditReview) describe(id int64) string      { return fmt.Sprintf("Edited review #%d", id) }
func (RespondReview) describe(id int64) string   { return fmt.Sprintf("Responded to review #%d", id) }

func (c RemoveReview) describe(id int64) string {
	return fmt.Sprintf("Removed review #%d: %s", id, strings.TrimSpace(c.Reason))
}

// Removed reviews accept no further moderation.
func notRemoved(r reviews.Review) error {
	if r.IsRemoved {
		return transitionf("review #%d has been removed", r.ID)
	}
	return nil
}

func note(p collection.Patch, s string) collection.Patch {
	if s = strings.TrimSpace(s); s != "" {
		p["moderation_note"] = s
	}
	return p
}

// Hiding a featured review also unfeatures it.
func (c HideReview) patch(r reviews.Review) (collection.Patch, error) {
	if err := notRemoved(r); err != nil {
		return nil, err
	}
	if r.IsHidden {
		return nil, transitionf("review is already hidden")
	}
	return note(collection.Patch{"is_hidden": true, "is_featured": false}, c.Note), nil
}

func (UnhideReview) patch(r reviews.Review) (collection.Patch, error) {
	if err := notRemoved(r); err != nil {
		return nil, err
	}
	if !r.IsHidden {
		return nil, transitionf("review is not hidden")
	}
	return collection.Patch{"is_hidden": false}, nil
}

func (c FlagReview) patch(r reviews.Review) (collection.Patch, error) {
	if err := notRemoved(r); err != nil {
		return nil, err
	}
	if r.IsFlagged {
		return nil, transitionf("review is already flagged")
	}
	return note(collection.Patch{"is_flagged": true}, c.Note), nil
}

func (UnflagReview) patch(r reviews.Review) (collection.Patch, error) {
	if err := notRemoved(r); err != nil {
		return nil, err
	}
	if !r.IsFlagged {
		return nil, transitionf("review is not flagged")
	}
	return collection.Patch{"is_flagged": false}, nil
}

func (FeatureReview) patch(r reviews.Review) (collection.Patch, error) {
	if err := notRemoved(r); err != nil {
		return nil, err
	}
	switch {
	case r.IsFeatured:
		return nil, transitionf("review is already featured")
	case r.IsHidden:
		return nil, transitionf("hidden reviews cannot be featured")
	case r.IsFlagged:
		return nil, transitionf("flagged reviews cannot be featured")
	}
	return collection.Patch{"is_featured": true}, nil
}

func (UnfeatureReview) patch(r reviews.Review) (collection.Patch, error) {
	if err := notRemoved(r); err != nil {
		return nil, err
	}
	if !r.IsFeatured {
		return nil, transitionf("review is not featured")
	}
	return collection.Patch{"is_featured": false}, nil
}

func (c EditReview) patch(r reviews.Review) (collection.Patch, error) {
	if err := notRemoved(r); err != nil {
		return nil, err
	}
	return collection.Patch{"comment": strings.TrimSpace(c.Comment)}, nil
}

func (c RespondReview) patch(r reviews.Review) (collection.Patch, error) {
	if err := notRemoved(r); err != nil {
		return nil, err
	}
	return collection.Patch{"owner_response": strings.TrimSpace(c.Response)}, nil
}

func (c RemoveReview) patch(r reviews.Review) (collection.Patch, error) {
	if err := notRemoved(r); err != nil {
		return nil, err
	}
	return collection.Patch{
		"is_removed":      true,
		"is_featured":     false,
		"moderation_note": strings.TrimSpace(c.Reason),
	}, nil
}

package command

import (
	"fmt"
	"strings"

	"safar/internal/collection"
	"safar/internal/domain/listings"
)

// ListingCommand changes a listing's approval or availability.
type ListingCommand interface {
	Command
	patch(l listings.Listing) (collection.Patch, error)
}

type (
	ApproveListing    struct{}
	RejectListing     struct{ Reason string }
	ActivateListing   struct{}
	DeactivateListing struct{}
)

var listingApproval = machine{
	"approve": {from: []string{listings.StatusPending, listings.StatusRejected}, to: listings.StatusApproved},
	"reject":  {from: []string{listings.StatusPending, listings.StatusApproved}, to: listings.StatusRejected},
}

func (ApproveListing) Resource() string    { return Listing }
func (RejectListing) Resource() string     { return Listing }
func (ActivateListing) Resource() string   { return Listing }
func (DeactivateListing) Resource() string { return Listing }

func (ApproveListing) Action() string    { return "approve" }
func (RejectListing) Action() string     { return "reject" }
func (ActivateListing) Action() string   { return "activate" }
func (DeactivateListing) Action() string { return "deactivate" }

func (ApproveListing) Validate() error    { return nil }
func (ActivateListing) Validate() error   { return nil }
func (DeactivateListing) Validate() error { return nil }

func (c RejectListing) Validate() error {
	if strings.TrimSpace(c.Reason) == "" {
		return invalidf("a rejection reason is required")
	}
	if len(c.Reason) > 1000 {
		return invalidf("rejection reason is too long")
	}
	return nil
}

func (ApproveListing) describe(id int64) string { return fmt.Sprintf("Approved listing #%d", id) }

func (c RejectListing) describe(id int64) string {
	return fmt.Sprintf("Rejected listing #%d: %s", id, strings.TrimSpace(c.Reason))
}

func (ActivateListing) describe(id int64) string   { return fmt.Sprintf("Activated listing #%d", id) }
func (DeactivateListing) describe(id int64) string { return fmt.Sprintf("Deactivated listing #%d", id) }

// Approving makes the listing bookable and clears any earlier rejection.
func (c ApproveListing) patch(l listings.Listing) (collection.Patch, error) {
	to, err := listingApproval.next(c.Action(), l.ApprovalStatus)
	if err != nil {
		return nil, err
	}
	return collection.Patch{"approval_status": to, "is_available": true, "rejection_reason": nil}, nil
}

func (c RejectListing) patch(l listings.Listing) (collection.Patch, error) {
	to, err := listingApproval.next(c.Action(), l.ApprovalStatus)
	if err != nil {
		return nil, err
	}
	return collection.Patch{
		"approval_status":  to,
		"is_available":     false,
		"rejection_reason": strings.TrimSpace(c.Reason),
	}, nil
}

func (ActivateListing) patch(l listings.Listing) (collection.Patch, error) {
	if l.ApprovalStatus != listings.StatusApproved {
		return nil, transitionf("only approved listings can be activated (listing is %s)", l.ApprovalStatus)
	}
	if l.IsAvailable {
		return nil, transitionf("listing is already active")
	}
	return collection.Patch{"is_available": true}, nil
}

func (DeactivateListing) patch(l listings.Listing) (collection.Patch, error) {
	if l.ApprovalStatus != listings.StatusApproved {
		return nil, transitionf("only approved listings can be deactivated (listing is %s)", l.ApprovalStatus)
	}
	if !l.IsAvailable {
		return nil, transitionf("listing is already inactive")
	}
	return collection.Patch{"is_available": false}, nil
}

package command

import (
	"strings"

	"safar/internal/domain/bookings"
	"safar/internal/domain/listings"
	"safar/internal/domain/reviews"
	"safar/internal/domain/tickets"
)

// Fields carries the optional arguments an action may need.
type Fields struct {
	Reason     string
	Note       string
	Comment    string
	Response   string
	Body       string
	Internal   bool
	AssigneeID int64
}

// Actions lists the wire action names per resource.
var Actions = map[string][]string{
	Listing: {"approve", "reject", "activate", "deactivate"},
	Booking: {"confirm", "complete", "cancel"},
	Review:  {"hide", "unhide", "flag", "unflag", "feature", "unfeature", "edit", "respond", "remove"},
	Ticket:  {"assign", "start", "wait", "resolve", "close", "reopen", "escalate", "reply"},
}

// Decode turns a wire action into a typed command. Unknown resources and
// actions are validation errors.
func Decode(resource, action string, f Fields) (Command, error) {
	action = strings.ToLower(strings.TrimSpace(action))
	switch resource {
	case Listing:
		return decodeListing(action, f)
	case Booking:
		return decodeBooking(action, f)
	case Review:
		return decodeReview(action, f)
	case Ticket:
		return decodeTicket(action, f)
	}
	return nil, invalidf("unknown resource %q", resource)
}

func decodeListing(action string, f Fields) (ListingCommand, error) {
	switch action {
	case "approve":
		return ApproveListing{}, nil
	case "reject":
		return RejectListing{Reason: f.Reason}, nil
	case "activate":
		return ActivateListing{}, nil
	case "deactivate":
		return DeactivateListing{}, nil
	}
	return nil, invalidf("unknown listing action %q", action)
}

func decodeBooking(action string, f Fields) (BookingCommand, error) {
	switch action {
	case "confirm":
		return ConfirmBooking{}, nil
	case "complete":
		return CompleteBooking{}, nil
	case "cancel":
		return CancelBooking{Reason: f.Reason}, nil
	}
	return nil, invalidf("unknown booking action %q", action)
}

func decodeReview(action string, f Fields) (ReviewCommand, error) {
	switch action {
	case "hide":
		return HideReview{Note: f.Note}, nil
	case "unhide":
		return UnhideReview{}, nil
	case "flag":
		return FlagReview{Note: f.Note}, nil
	case "unflag":
		return UnflagReview{}, nil
	case "feature":
		return FeatureReview{}, nil
	case "unfeature":
		return UnfeatureReview{}, nil
	case "edit":
		return EditReview{Comment: f.Comment}, nil
	case "respond":
		return RespondReview{Response: f.Response}, nil
	case "remove":
		reason := f.Reason
		if reason == "" {
			reason = f.Note
		}
		return RemoveReview{Reason: reason}, nil
	}
	return nil, invalidf("unknown review action %q", action)
}

func decodeTicket(action string, f Fields) (TicketCommand, error) {
	switch action {
	case "assign":
		return AssignTicket{AssigneeID: f.AssigneeID}, nil
	case "start":
		return StartTicket{}, nil
	case "wait":
		return WaitTicket{}, nil
	case "resolve":
		return ResolveTicket{}, nil
	case "close":
		return CloseTicket{}, nil
	case "reopen":
		return ReopenTicket{}, nil
	case "escalate":
		return EscalateTicket{}, nil
	case "reply":
		return ReplyTicket{Body: f.Body, Internal: f.Internal}, nil
	}
	return nil, invalidf("unknown ticket action %q", action)
}

// placeholder satisfies every command's field validation so Available can
// probe state transitions alone.
var placeholder = Fields{Reason: "-", Comment: "-", Response: "-", Body: "-", AssigneeID: -1}

// ListingActions returns the actions currently valid for l.
func ListingActions(l listings.Listing) []string {
	return available(Listing, func(c Command) bool {
		_, err := c.(ListingCommand).patch(l)
		return err == nil
	})
}

func BookingActions(b bookings.Booking) []string {
	return available(Booking, func(c Command) bool {
		_, err := c.(BookingCommand).patch(b)
		return err == nil
	})
}

func ReviewActions(r reviews.Review) []string {
	return available(Review, func(c Command) bool {
		_, err := c.(ReviewCommand).patch(r)
		return err == nil
	})
}

func TicketActions(t tickets.Ticket) []string {
	return available(Ticket, func(c Command) bool {
		_, err := c.(TicketCommand).patch(t)
		return err == nil
	})
}

func available(resource string, ok func(Command) bool) []string {
	out := []string{}
	for _, action := range Actions[resource] {
		c, err := Decode(resource, action, placeholder)
		if err != nil {
			continue
		}
		if ok(c) {
			out = append(out, action)
		}
	}
	return out
}

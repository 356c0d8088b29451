package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"safar/internal/collection"
	"safar/internal/domain/tickets"
	"safar/internal/domain/users"
	"safar/internal/store"
)

// TicketCommand triages a support ticket.
type TicketCommand interface {
	Command
	patch(t tickets.Ticket) (collection.Patch, error)
}

type (
	AssignTicket   struct{ AssigneeID int64 }
	StartTicket    struct{}
	WaitTicket     struct{}
	ResolveTicket  struct{}
	CloseTicket    struct{}
	ReopenTicket   struct{}
	EscalateTicket struct{}
)

// ReplyTicket appends a message. Internal replies are staff notes.
type ReplyTicket struct {
	Body     string
	Internal bool
}

var openStatuses = []string{tickets.StatusNew, tickets.StatusAssigned, tickets.StatusInProgress, tickets.StatusWaiting}

// Reopen lands on NEW instead of ASSIGNED when nobody is assigned.
var ticketLifecycle = machine{
	"start":   {from: []string{tickets.StatusAssigned, tickets.StatusWaiting}, to: tickets.StatusInProgress},
	"wait":    {from: []string{tickets.StatusInProgress}, to: tickets.StatusWaiting},
	"resolve": {from: []string{tickets.StatusAssigned, tickets.StatusInProgress, tickets.StatusWaiting}, to: tickets.StatusResolved},
	"close":   {from: []string{tickets.StatusNew, tickets.StatusResolved}, to: tickets.StatusClosed},
	"reopen":  {from: []string{tickets.StatusResolved, tickets.StatusClosed}, to: tickets.StatusAssigned},
}

func (AssignTicket) Resource() string   { return Ticket }
func (StartTicket) Resource() string    { return Ticket }
func (WaitTicket) Resource() string     { return Ticket }
func (ResolveTicket) Resource() string  { return Ticket }
func (CloseTicket) Resource() string    { return Ticket }
func (ReopenTicket) Resource() string   { return Ticket }
func (EscalateTicket) Resource() string { return Ticket }
func (ReplyTicket) Resource() string    { return Ticket }

func (AssignTicket) Action() string   { return "assign" }
func (StartTicket) Action() string    { return "start" }
func (WaitTicket) Action() string     { return "wait" }
func (ResolveTicket) Action() string  { return "resolve" }
func (CloseTicket) Action() string    { return "close" }
func (ReopenTicket) Action() string   { return "reopen" }
func (EscalateTicket) Action() string { return "escalate" }
func (ReplyTicket) Action() string    { return "reply" }

func (StartTicket) Validate() error    { return nil }
func (WaitTicket) Validate() error     { return nil }
func (ResolveTicket) Validate() error  { return nil }
func (CloseTicket) Validate() error    { return nil }
func (ReopenTicket) Validate() error   { return nil }
func (EscalateTicket) Validate() error { return nil }

func (c AssignTicket) Validate() error {
	if c.AssigneeID <= 0 {
		return invalidf("assignee is required")
	}
	return nil
}

func (c ReplyTicket) Validate() error {
	return required("body", c.Body, 5000)
}

func (c AssignTicket) describe(id int64) string {
	return fmt.Sprintf("Assigned ticket #%d to user #%d", id, c.AssigneeID)
}

func (StartTicket) describe(id int64) string    { return fmt.Sprintf("Started work on ticket #%d", id) }
func (WaitTicket) describe(id int64) string     { return fmt.Sprintf("Ticket #%d waiting on customer", id) }
func (ResolveTicket) describe(id int64) string  { return fmt.Sprintf("Resolved ticket #%d", id) }
func (CloseTicket) describe(id int64) string    { return fmt.Sprintf("Closed ticket #%d", id) }
func (ReopenTicket) describe(id int64) string   { return fmt.Sprintf("Reopened ticket #%d", id) }
func (EscalateTicket) describe(id int64) string { return fmt.Sprintf("Escalated ticket #%d", id) }

func (c ReplyTicket) describe(id int64) string {
	if c.Internal {
		return fmt.Sprintf("Added internal note to ticket #%d", id)
	}
	return fmt.Sprintf("Replied to ticket #%d", id)
}

func isOpen(t tickets.Ticket) error {
	for _, s := range openStatuses {
		if t.Status == s {
			return nil
		}
	}
	return transitionf("ticket is %s", t.Status)
}

// Assigning a NEW ticket moves it to ASSIGNED; reassigning keeps the status.
func (c AssignTicket) patch(t tickets.Ticket) (collection.Patch, error) {
	if err := isOpen(t); err != nil {
		return nil, err
	}
	if t.AssigneeID != nil && *t.AssigneeID == c.AssigneeID {
		return nil, transitionf("ticket is already assigned to user #%d", c.AssigneeID)
	}
	p := collection.Patch{"assignee_id": c.AssigneeID}
	if t.Status == tickets.StatusNew {
		p["status"] = tickets.StatusAssigned
	}
	return p, nil
}

func (c StartTicket) patch(t tickets.Ticket) (collection.Patch, error) {
	return ticketStatus(c.Action(), t)
}

func (c WaitTicket) patch(t tickets.Ticket) (collection.Patch, error) {
	return ticketStatus(c.Action(), t)
}

func (c ResolveTicket) patch(t tickets.Ticket) (collection.Patch, error) {
	return ticketStatus(c.Action(), t)
}

func (c CloseTicket) patch(t tickets.Ticket) (collection.Patch, error) {
	return ticketStatus(c.Action(), t)
}

func (c ReopenTicket) patch(t tickets.Ticket) (collection.Patch, error) {
	p, err := ticketStatus(c.Action(), t)
	if err != nil {
		return nil, err
	}
	if t.AssigneeID == nil {
		p["status"] = tickets.StatusNew
	}
	return p, nil
}

// Escalating raises priority one level.
func (EscalateTicket) patch(t tickets.Ticket) (collection.Patch, error) {
	if err := isOpen(t); err != nil {
		return nil, err
	}
	switch t.Priority {
	case tickets.PriorityLow:
		return collection.Patch{"priority": tickets.PriorityMedium}, nil
	case tickets.PriorityMedium:
		return collection.Patch{"priority": tickets.PriorityHigh}, nil
	}
	return nil, transitionf("ticket is already %s priority", t.Priority)
}

// Replies only append a message; the ticket row is left as is.
func (ReplyTicket) patch(t tickets.Ticket) (collection.Patch, error) {
	if t.Status == tickets.StatusClosed {
		return nil, transitionf("ticket is closed")
	}
	return collection.Patch{}, nil
}

func ticketStatus(action string, t tickets.Ticket) (collection.Patch, error) {
	to, err := ticketLifecycle.next(action, t.Status)
	if err != nil {
		return nil, err
	}
	if to == tickets.StatusInProgress && t.AssigneeID == nil {
		return nil, transitionf("assign the ticket before starting work")
	}
	return collection.Patch{"status": to}, nil
}

func runTicket(ctx context.Context, tx *store.Repos, actor Actor, id int64, c TicketCommand) (any, any, error) {
	if a, ok := c.(AssignTicket); ok {
		if err := checkAssignee(ctx, tx, a.AssigneeID); err != nil {
			return nil, nil, err
		}
	}

	before, after, err := transition(ctx, tx.Tickets, id, c.patch)
	if err != nil {
		return nil, nil, err
	}

	if r, ok := c.(ReplyTicket); ok {
		msg, err := tx.Messages.Create(ctx, tickets.Message{
			TicketID: id,
			AuthorID: actor.ID,
			Body:     strings.TrimSpace(r.Body),
			Internal: r.Internal,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("append ticket message: %w", err)
		}
		return before, msg, nil
	}
	return before, after, nil
}

func checkAssignee(ctx context.Context, tx *store.Repos, id int64) error {
	u, err := tx.Users.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return invalidf("assignee #%d does not exist", id)
	}
	if err != nil {
		return err
	}
	if u.Role != users.RoleAdmin || !u.IsActive {
		return invalidf("user #%d cannot be assigned tickets", id)
	}
	return nil
}

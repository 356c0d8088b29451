package backoffice

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"safar/internal/aggregate"
	"safar/internal/audit"
	"safar/internal/collection"
	"safar/internal/command"
	"safar/internal/domain/tickets"
	"safar/internal/query"
	"safar/internal/store"
)

type TicketRow struct {
	tickets.Ticket
	Actions []string `json:"actions"`
}

type TicketSummary struct {
	Counts     StatusCounts `json:"counts"`
	Priorities StatusCounts `json:"priorities"`
	Unassigned int64        `json:"unassigned"`
}

type TicketsView struct {
	ListMeta
	Summary TicketSummary `json:"summary"`
	Rows    []TicketRow   `json:"rows"`
}

var openTickets = query.In("status", tickets.StatusNew, tickets.StatusAssigned, tickets.StatusInProgress, tickets.StatusWaiting)

func (s *Service) Tickets(ctx context.Context, q url.Values) (TicketsView, error) {
	src := s.store.Repos().Tickets
	lq := listQuery[tickets.Ticket]{
		source:         src,
		schema:         tickets.Schema,
		sorts:          tickets.Sorts,
		summaryIgnores: []string{"status", "priority"},
	}
	page, sum, meta, err := lq.run(ctx, q, func(c *aggregate.Collector) {
		countStatuses(c, src, "status", tickets.Statuses)
		for _, p := range tickets.Priorities {
			c.Count("priority_"+label(p), src, query.Conj(openTickets, query.Eq("priority", p)))
		}
		c.Count("unassigned", src, query.Eq("status", tickets.StatusNew))
	})
	if err != nil {
		return TicketsView{}, err
	}

	priorities := make(StatusCounts, len(tickets.Priorities))
	for _, p := range tickets.Priorities {
		priorities[label(p)] = sum.Int("priority_" + label(p))
	}

	rows := make([]TicketRow, len(page.Rows))
	for i, t := range page.Rows {
		rows[i] = TicketRow{Ticket: t, Actions: command.TicketActions(t)}
	}

	return TicketsView{
		ListMeta: meta,
		Summary: TicketSummary{
			Counts:     statusCounts(sum, tickets.Statuses),
			Priorities: priorities,
			Unassigned: sum.Int("unassigned"),
		},
		Rows: rows,
	}, nil
}

type TicketDetail struct {
	tickets.Ticket
	Messages []tickets.Message `json:"messages"`
	Actions  []string          `json:"actions"`
}

func (s *Service) Ticket(ctx context.Context, id int64) (TicketDetail, error) {
	repos := s.store.Repos()
	t, err := repos.Tickets.Get(ctx, id)
	if err != nil {
		return TicketDetail{}, err
	}
	msgs, err := repos.Messages.Find(ctx, collection.FindOptions{
		Where: query.Eq("ticket_id", id),
		Order: []query.Order{{Field: "created_at"}, {Field: "id"}},
	})
	if err != nil {
		return TicketDetail{}, fmt.Errorf("ticket messages: %w", err)
	}
	if msgs == nil {
		msgs = []tickets.Message{}
	}
	return TicketDetail{Ticket: t, Messages: msgs, Actions: command.TicketActions(t)}, nil
}

// NewTicket is an admin-opened ticket on behalf of a user.
type NewTicket struct {
	UserID   int64
	Subject  string
	Category string
	Priority string
	Body     string
}

// CreateTicket opens a ticket with its first message and audits it, all in
// one transaction.
func (s *Service) CreateTicket(ctx context.Context, refs *tickets.ReferenceGenerator, actor command.Actor, in NewTicket) (TicketDetail, error) {
	in.Subject = strings.TrimSpace(in.Subject)
	in.Body = strings.TrimSpace(in.Body)
	in.Priority = strings.ToUpper(strings.TrimSpace(in.Priority))
	in.Category = strings.ToLower(strings.TrimSpace(in.Category))
	if in.Priority == "" {
		in.Priority = tickets.PriorityMedium
	}
	switch {
	case in.UserID <= 0:
		return TicketDetail{}, fmt.Errorf("%w: user is required", command.ErrValidation)
	case in.Subject == "":
		return TicketDetail{}, fmt.Errorf("%w: subject is required", command.ErrValidation)
	case !slices.Contains(tickets.Priorities, in.Priority):
		return TicketDetail{}, fmt.Errorf("%w: unknown priority %q", command.ErrValidation, in.Priority)
	case !slices.Contains(tickets.Categories, in.Category):
		return TicketDetail{}, fmt.Errorf("%w: unknown category %q", command.ErrValidation, in.Category)
	}

	var out TicketDetail
	err := s.store.WithTx(ctx, func(tx *store.Repos) error {
		u, err := tx.Users.Get(ctx, in.UserID)
		if err != nil {
			return err
		}
		now := s.now().UTC()
		t, err := tx.Tickets.Create(ctx, tickets.Ticket{
			Reference: refs.Generate(u.ID),
			UserID:    u.ID,
			Subject:   in.Subject,
			Category:  in.Category,
			Status:    tickets.StatusNew,
			Priority:  in.Priority,
			CreatedAt: now,
			UpdatedAt: now,
			Requester: u.Summary(),
		})
		if err != nil {
			return err
		}
		out = TicketDetail{Ticket: t, Messages: []tickets.Message{}}
		if in.Body != "" {
			m, err := tx.Messages.Create(ctx, tickets.Message{TicketID: t.ID, AuthorID: actor.ID, Body: in.Body, CreatedAt: now})
			if err != nil {
				return err
			}
			out.Messages = append(out.Messages, m)
		}
		_, err = tx.Audit.LogAction(ctx, actor.ID, "ticket.create",
			fmt.Sprintf("Opened ticket %s for user #%d", t.Reference, u.ID),
			actor.Request,
			audit.OnResource(command.Ticket, t.ID),
			audit.WithChange(nil, t))
		return err
	})
	if err != nil {
		return TicketDetail{}, err
	}
	out.Actions = command.TicketActions(out.Ticket)
	s.logger.Infow("ticket opened", "reference", out.Reference, "actor", actor.ID)
	return out, nil
}

package tickets

import (
	"safar/internal/collection"
	"safar/internal/domain/users"
	"safar/internal/query"

	"github.com/jackc/pgx/v5"
)

var Table = &collection.Table[Ticket]{
	Name:  "support_tickets",
	Alias: "t",
	From:  "support_tickets t JOIN users q ON q.id = t.user_id",
	Select: `t.id, t.reference, t.user_id, t.subject, t.category, t.status, t.priority,
		t.assignee_id, t.created_at, t.updated_at, q.id, q.name, q.email`,
	Mapping: query.Mapping{
		Columns: map[string]string{
			"id":            "t.id",
			"reference":     "t.reference",
			"user_id":       "t.user_id",
			"subject":       "t.subject",
			"category":      "t.category",
			"status":        "t.status",
			"priority":      "t.priority",
			"assignee_id":   "t.assignee_id",
			"created_at":    "t.created_at",
			"updated_at":    "t.updated_at",
			// HIGH > MEDIUM > LOW
			"priority_rank": "CASE t.priority WHEN 'HIGH' THEN 3 WHEN 'MEDIUM' THEN 2 ELSE 1 END",
		},
		Relations: map[string]query.Relation{
			"requester": users.Relation("t.user_id"),
		},
	},
	Writable: map[string]bool{"status": true, "priority": true, "assignee_id": true},
	Touch:    true,
	Scan: func(row pgx.Row) (Ticket, error) {
		var (
			t Ticket
			q users.Summary
		)
		err := row.Scan(
			&t.ID, &t.Reference, &t.UserID, &t.Subject, &t.Category, &t.Status, &t.Priority,
			&t.AssigneeID, &t.CreatedAt, &t.UpdatedAt, &q.ID, &q.Name, &q.Email,
		)
		t.Requester = &q
		return t, err
	},
	Insert: func(t Ticket) ([]string, []any) {
		return []string{"reference", "user_id", "subject", "category", "status", "priority", "assignee_id"},
			[]any{t.Reference, t.UserID, t.Subject, t.Category, t.Status, t.Priority, t.AssigneeID}
	},
}

var MessageTable = &collection.Table[Message]{
	Name:   "ticket_messages",
	Alias:  "m",
	From:   "ticket_messages m",
	Select: "m.id, m.ticket_id, m.author_id, m.body, m.internal, m.created_at",
	Mapping: query.Mapping{
		Columns: map[string]string{
			"id":         "m.id",
			"ticket_id":  "m.ticket_id",
			"author_id":  "m.author_id",
			"internal":   "m.internal",
			"created_at": "m.created_at",
		},
	},
	Scan: func(row pgx.Row) (Message, error) {
		var m Message
		err := row.Scan(&m.ID, &m.TicketID, &m.AuthorID, &m.Body, &m.Internal, &m.CreatedAt)
		return m, err
	},
	Insert: func(m Message) ([]string, []any) {
		return []string{"ticket_id", "author_id", "body", "internal"},
			[]any{m.TicketID, m.AuthorID, m.Body, m.Internal}
	},
}

var Schema = query.Schema{
	Search:        []string{"reference", "subject"},
	SearchRelated: map[string][]string{"requester": {"name", "email"}},
	Enums: []query.EnumFilter{
		{Key: "status", Field: "status", Values: Statuses},
		{Key: "priority", Field: "priority", Values: Priorities},
		{Key: "category", Field: "category", Values: Categories},
	},
	Numbers: []query.NumberFilter{
		{Key: "assignee", Field: "assignee_id"},
	},
	Dates: []query.DateFilter{
		{FromKey: "from", ToKey: "to", Field: "created_at"},
	},
}

var Sorts = query.Sorts{
	Default: "newest",
	Keys: map[string][]query.Order{
		"newest":   {{Field: "created_at", Desc: true}},
		"oldest":   {{Field: "created_at"}},
		"priority": {{Field: "priority_rank", Desc: true}, {Field: "created_at"}},
		"updated":  {{Field: "updated_at", Desc: true}},
	},
}

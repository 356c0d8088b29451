package tickets

import (
	"time"

	"safar/internal/collection"
	"safar/internal/domain/users"
	"safar/internal/query"
)

// Ticket statuses, in lifecycle order.
const (
	StatusNew        = "NEW"
	StatusAssigned   = "ASSIGNED"
	StatusInProgress = "IN_PROGRESS"
	StatusWaiting    = "WAITING"
	StatusResolved   = "RESOLVED"
	StatusClosed     = "CLOSED"
)

const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
)

var (
	Statuses   = []string{StatusNew, StatusAssigned, StatusInProgress, StatusWaiting, StatusResolved, StatusClosed}
	Priorities = []string{PriorityLow, PriorityMedium, PriorityHigh}
	Categories = []string{"booking", "payment", "listing", "account", "other"}
)

// PriorityRank orders priorities for sorting, HIGH first when descending.
func PriorityRank(p string) int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	}
	return 1
}

// Ticket is a support case raised by a user.
type Ticket struct {
	ID         int64          `json:"id"`
	Reference  string         `json:"reference"`
	UserID     int64          `json:"user_id"`
	Subject    string         `json:"subject"`
	Category   string         `json:"category"`
	Status     string         `json:"status"`
	Priority   string         `json:"priority"`
	AssigneeID *int64         `json:"assignee_id,omitempty" swaggertype:"integer"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	Requester  *users.Summary `json:"requester,omitempty"`
}

func (t Ticket) EntityID() int64        { return t.ID }
func (t Ticket) WithID(id int64) Ticket { t.ID = id; return t }

func (t Ticket) Field(name string) (any, bool) {
	switch name {
	case "id":
		return t.ID, true
	case "reference":
		return t.Reference, true
	case "user_id":
		return t.UserID, true
	case "subject":
		return t.Subject, true
	case "category":
		return t.Category, true
	case "status":
		return t.Status, true
	case "priority":
		return t.Priority, true
	case "priority_rank":
		return PriorityRank(t.Priority), true
	case "assignee_id":
		if t.AssigneeID == nil {
			return nil, true
		}
		return *t.AssigneeID, true
	case "created_at":
		return t.CreatedAt, true
	case "updated_at":
		return t.UpdatedAt, true
	}
	return nil, false
}

func (t Ticket) Related(name string) (query.Record, bool) {
	if name == "requester" && t.Requester != nil {
		return t.Requester, true
	}
	return nil, false
}

func (t Ticket) Apply(p collection.Patch) Ticket {
	for k, v := range p {
		switch k {
		case "status":
			t.Status, _ = v.(string)
		case "priority":
			t.Priority, _ = v.(string)
		case "assignee_id":
			switch id := v.(type) {
			case int64:
				t.AssigneeID = &id
			case *int64:
				t.AssigneeID = id
			default:
				t.AssigneeID = nil
			}
		case "updated_at":
			t.UpdatedAt, _ = v.(time.Time)
		}
	}
	return t
}

// Message is one entry of a ticket's append-only conversation. Internal
// messages are staff notes never shown to the requester.
type Message struct {
	ID        int64     `json:"id"`
	TicketID  int64     `json:"ticket_id"`
	AuthorID  int64     `json:"author_id"`
	Body      string    `json:"body"`
	Internal  bool      `json:"internal"`
	CreatedAt time.Time `json:"created_at"`
}

func (m Message) EntityID() int64                { return m.ID }
func (m Message) WithID(id int64) Message        { m.ID = id; return m }
func (m Message) Apply(collection.Patch) Message { return m }

func (m Message) Field(name string) (any, bool) {
	switch name {
	case "id":
		return m.ID, true
	case "ticket_id":
		return m.TicketID, true
	case "author_id":
		return m.AuthorID, true
	case "internal":
		return m.Internal, true
	case "created_at":
		return m.CreatedAt, true
	}
	return nil, false
}

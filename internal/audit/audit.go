// Package audit records admin actions in the append-only audit_logs table.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"safar/internal/collection"
	"safar/internal/query"

	"github.com/google/uuid"
)

// RequestContext identifies where an action came from.
type RequestContext struct {
	IP        string `json:"ip_address"`
	UserAgent string `json:"user_agent"`
	RequestID string `json:"request_id"`
}

type ctxKey struct{}

// WithRequest stores rc on ctx for LogAction callers further down the stack.
func WithRequest(ctx context.Context, rc RequestContext) context.Context {
	return context.WithValue(ctx, ctxKey{}, rc)
}

// FromContext returns the request context stored by WithRequest. A request
// id is generated when none was set.
func FromContext(ctx context.Context) RequestContext {
	rc, _ := ctx.Value(ctxKey{}).(RequestContext)
	if rc.RequestID == "" {
		rc.RequestID = uuid.NewString()
	}
	return rc
}

// Entry is one audit log row.
type Entry struct {
	ID           int64     `json:"id"`
	ActorID      int64     `json:"actor_id"`
	Action       string    `json:"action"`
	ResourceType string    `json:"resource_type"`
	ResourceID   int64     `json:"resource_id"`
	Description  string    `json:"description"`
	Before       string    `json:"before,omitempty"`
	After        string    `json:"after,omitempty"`
	IPAddress    string    `json:"ip_address"`
	UserAgent    string    `json:"user_agent"`
	RequestID    string    `json:"request_id"`
	CreatedAt    time.Time `json:"created_at"`
}

func (e Entry) EntityID() int64              { return e.ID }
func (e Entry) WithID(id int64) Entry        { e.ID = id; return e }
func (e Entry) Apply(collection.Patch) Entry { return e }

func (e Entry) Field(name string) (any, bool) {
	switch name {
	case "id":
		return e.ID, true
	case "actor_id":
		return e.ActorID, true
	case "action":
		return e.Action, true
	case "resource_type":
		return e.ResourceType, true
	case "resource_id":
		return e.ResourceID, true
	case "description":
		return e.Description, true
	case "created_at":
		return e.CreatedAt, true
	}
	return nil, false
}

// Creator is the write side of the audit collection.
type Creator interface {
	Create(ctx context.Context, e Entry) (Entry, error)
}

type Option func(*Entry)

// OnResource names the entity the action targeted.
func OnResource(kind string, id int64) Option {
	return func(e *Entry) {
		e.ResourceType = kind
		e.ResourceID = id
	}
}

// WithChange snapshots the entity before and after the action as JSON.
func WithChange(before, after any) Option {
	return func(e *Entry) {
		e.Before = marshal(before)
		e.After = marshal(after)
	}
}

func marshal(v any) string {
	if v == nil {
		return ""
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// Logger appends audit entries. Inside a transaction it must be built on
// the transaction's collection so the entry commits or rolls back with the
// change it describes.
type Logger struct {
	store Creator
	now   func() time.Time
}

func NewLogger(store Creator) *Logger {
	return &Logger{store: store, now: time.Now}
}

func (l *Logger) LogAction(ctx context.Context, actorID int64, action, description string, rc RequestContext, opts ...Option) (Entry, error) {
	if strings.TrimSpace(action) == "" {
		return Entry{}, fmt.Errorf("audit: empty action")
	}
	e := Entry{
		ActorID:     actorID,
		Action:      action,
		Description: description,
		IPAddress:   rc.IP,
		UserAgent:   rc.UserAgent,
		RequestID:   rc.RequestID,
		CreatedAt:   l.now().UTC(),
	}
	for _, opt := range opts {
		opt(&e)
	}
	saved, err := l.store.Create(ctx, e)
	if err != nil {
		return Entry{}, fmt.Errorf("audit %s: %w", action, err)
	}
	return saved, nil
}

var Schema = query.Schema{
	Search: []string{"action", "description"},
	Numbers: []query.NumberFilter{
		{Key: "actor", Field: "actor_id"},
		{Key: "resource_id", Field: "resource_id"},
	},
	Enums: []query.EnumFilter{
		{Key: "resource", Field: "resource_type", Values: []string{"listing", "booking", "review", "ticket"}},
	},
	Dates: []query.DateFilter{
		{FromKey: "from", ToKey: "to", Field: "created_at"},
	},
}

var Sorts = query.Sorts{
	Default: "newest",
	Keys: map[string][]query.Order{
		"newest": {{Field: "created_at", Desc: true}},
		"oldest": {{Field: "created_at"}},
	},
}

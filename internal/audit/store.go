package audit

import (
	"safar/internal/collection"
	"safar/internal/query"

	"github.com/jackc/pgx/v5"
)

var Table = &collection.Table[Entry]{
	Name:  "audit_logs",
	Alias: "al",
	From:  "audit_logs al",
	Select: `al.id, al.actor_id, al.action, al.resource_type, al.resource_id, al.description,
		COALESCE(al.before_json::text, ''), COALESCE(al.after_json::text, ''),
		COALESCE(al.ip_address, ''), COALESCE(al.user_agent, ''), COALESCE(al.request_id, ''), al.created_at`,
	Mapping: query.Mapping{
		Columns: map[string]string{
			"id":            "al.id",
			"actor_id":      "al.actor_id",
			"action":        "al.action",
			"resource_type": "al.resource_type",
			"resource_id":   "al.resource_id",
			"description":   "al.description",
			"created_at":    "al.created_at",
		},
	},
	Scan: func(row pgx.Row) (Entry, error) {
		var e Entry
		err := row.Scan(&e.ID, &e.ActorID, &e.Action, &e.ResourceType, &e.ResourceID, &e.Description,
			&e.Before, &e.After, &e.IPAddress, &e.UserAgent, &e.RequestID, &e.CreatedAt)
		return e, err
	},
	Insert: func(e Entry) ([]string, []any) {
		cols := []string{
			"actor_id", "action", "resource_type", "resource_id", "description",
			"before_json", "after_json", "ip_address", "user_agent", "request_id", "created_at",
		}
		return cols, []any{
			e.ActorID, e.Action, e.ResourceType, e.ResourceID, e.Description,
			nullable(e.Before), nullable(e.After), e.IPAddress, e.UserAgent, e.RequestID, e.CreatedAt,
		}
	},
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

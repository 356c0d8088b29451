package backoffice

import (
	"context"
	"net/url"

	"safar/internal/audit"
)

type AuditView struct {
	ListMeta
	Rows []audit.Entry `json:"rows"`
}

// AuditLog lists recent admin activity. It has no summary cards.
func (s *Service) AuditLog(ctx context.Context, q url.Values) (AuditView, error) {
	lq := listQuery[audit.Entry]{
		source: s.store.Repos().AuditLog,
		schema: audit.Schema,
		sorts:  audit.Sorts,
	}
	page, _, meta, err := lq.run(ctx, q, nil)
	if err != nil {
		return AuditView{}, err
	}
	return AuditView{ListMeta: meta, Rows: page.Rows}, nil
}

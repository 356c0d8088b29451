package params

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// URL: /admin/bookings?page=2&limit=30
// → ParsePagination() → Pagination{Limit:30, Page:2, Offset:30}
// → SQL: SELECT ... LIMIT 30 OFFSET 30
// → DB returns rows + total count
// → ComputeMeta(total) → fills TotalPages, HasNext, etc.
// Pagination holds pagination info and computed metadata.
type Pagination struct {
	Limit      int  `json:"limit"`       // items per page
	Offset     int  `json:"offset"`      // SQL OFFSET value
	Page       int  `json:"page"`        // current page number, 1-indexed
	Total      int  `json:"total"`       // total matching items
	TotalPages int  `json:"total_pages"` // total pages available
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// New builds a pagination window, clamping out-of-range values to defaults.
func New(page, limit int) Pagination {
	p := Pagination{Limit: DefaultLimit, Page: 1}
	switch {
	case limit <= 0:
	case limit > MaxLimit:
		p.Limit = MaxLimit
	default:
		p.Limit = limit
	}
	if page > 0 {
		// keep Page*Limit representable so Offset never wraps negative
		p.Page = min(page, math.MaxInt/p.Limit)
	}
	p.Offset = (p.Page - 1) * p.Limit
	return p
}

// ParsePagination parses ?limit=...&page=... safely. Keys are case sensitive;
// malformed values fall back to page 1 / DefaultLimit.
func ParsePagination(q url.Values) Pagination {
	page, limit := 0, 0
	if s := strings.TrimSpace(q.Get("page")); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			page = v
		}
	}
	if s := strings.TrimSpace(q.Get("limit")); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			limit = v
		}
	}
	return New(page, limit)
}

// ComputeMeta updates pagination after fetching total count.
func (p *Pagination) ComputeMeta(total int) {
	p.Total = total
	if p.Limit > 0 {
		p.TotalPages = int(math.Ceil(float64(total) / float64(p.Limit)))
	}
	p.HasPrev = p.Page > 1
	p.HasNext = p.Offset+p.Limit < total
}

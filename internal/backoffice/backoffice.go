// Package backoffice assembles the admin list and detail views: filters,
// a page of rows, summary aggregates and derived metrics, as plain
// serializable structs.
package backoffice

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"safar/internal/aggregate"
	"safar/internal/collection"
	"safar/internal/fetch"
	"safar/internal/metrics"
	"safar/internal/params"
	"safar/internal/query"
	"safar/internal/store"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Service struct {
	store    store.Store
	enricher *metrics.Enricher
	logger   *zap.SugaredLogger
	now      func() time.Time
}

func New(s store.Store, logger *zap.SugaredLogger) *Service {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Service{
		store:    s,
		enricher: metrics.NewEnricher(s.Repos().Bookings),
		logger:   logger,
		now:      time.Now,
	}
}

// SetClock fixes the time used for derived metrics and growth windows.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
	s.enricher.Now = now
}

// StatusCounts maps lowercase status labels, plus "total", to counts.
type StatusCounts map[string]int64

// ListMeta is shared by every list view.
type ListMeta struct {
	Filters    map[string]string `json:"filters"`
	Sort       string            `json:"sort"`
	Pagination params.Pagination `json:"pagination"`
}

// listQuery describes one admin list route.
type listQuery[T any] struct {
	source fetch.Source[T]
	schema query.Schema
	sorts  query.Sorts
	// base is ANDed into every predicate, e.g. kind = 'tour'.
	base query.Predicate
	// summaryIgnores lists filter keys the summary cards do not follow, so
	// the status tabs keep showing every status while one is selected.
	summaryIgnores []string
}

func (l listQuery[T]) where(q url.Values) query.Predicate {
	return query.Conj(l.base, l.schema.Build(q))
}

// summaryScope is the predicate the summary aggregates run within.
func (l listQuery[T]) summaryScope(q url.Values) query.Predicate {
	return query.Conj(l.base, l.schema.Build(query.Without(q, l.summaryIgnores...)))
}

// run fetches the page and, concurrently, the summary built by summarize
// over summaryScope.
func (l listQuery[T]) run(ctx context.Context, q url.Values, summarize func(c *aggregate.Collector)) (fetch.Page[T], aggregate.Result, ListMeta, error) {
	sortKey := l.sorts.Key(q.Get("sort"))
	req := fetch.Request{
		Where:      l.where(q),
		Order:      l.sorts.Resolve(sortKey),
		Pagination: params.ParsePagination(q),
	}

	var (
		page fetch.Page[T]
		sum  aggregate.Result
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		page, err = fetch.Run(gctx, l.source, req)
		return err
	})
	if summarize != nil {
		g.Go(func() error {
			c := aggregate.New().Within(l.summaryScope(q))
			summarize(c)
			var err error
			sum, err = c.Run(gctx)
			if err != nil {
				return fmt.Errorf("summary: %w", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fetch.Page[T]{}, nil, ListMeta{}, err
	}

	meta := ListMeta{
		Filters:    l.schema.Echo(q),
		Sort:       sortKey,
		Pagination: page.Pagination,
	}
	return page, sum, meta, nil
}

func statusCounts(res aggregate.Result, statuses []string) StatusCounts {
	out := make(StatusCounts, len(statuses)+1)
	for _, s := range statuses {
		out[label(s)] = res.Int(label(s))
	}
	out["total"] = res.Int("total")
	return out
}

func countStatuses(c *aggregate.Collector, src collection.Aggregator, field string, statuses []string) {
	c.Count("total", src, nil)
	for _, s := range statuses {
		c.Count(label(s), src, query.Eq(field, s))
	}
}

// label is the JSON key used for an enum value, e.g. IN_PROGRESS -> in_progress.
func label(status string) string {
	return strings.ToLower(status)
}

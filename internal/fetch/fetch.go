// Package fetch runs a paginated list query: one page of rows plus the total
// count of the same predicate.
package fetch

import (
	"context"
	"fmt"

	"safar/internal/collection"
	"safar/internal/params"
	"safar/internal/query"

	"golang.org/x/sync/errgroup"
)

// Source is the subset of a collection a page fetch needs.
type Source[T any] interface {
	Find(ctx context.Context, opts collection.FindOptions) ([]T, error)
	Count(ctx context.Context, where query.Predicate) (int, error)
}

// Request is a fully resolved list request.
type Request struct {
	Where      query.Predicate
	Order      []query.Order
	Pagination params.Pagination
}

// Page is one window of the ordered, filtered result set.
type Page[T any] struct {
	Rows       []T               `json:"rows"`
	Pagination params.Pagination `json:"pagination"`
}

// Run issues the page query and the count query concurrently. Both use the
// same predicate; if either fails the other is cancelled.
func Run[T any](ctx context.Context, src Source[T], req Request) (Page[T], error) {
	p := req.Pagination
	if p.Limit <= 0 || p.Page <= 0 {
		p = params.New(p.Page, p.Limit)
	}

	var (
		rows  []T
		total int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rows, err = src.Find(gctx, collection.FindOptions{
			Where:  req.Where,
			Order:  req.Order,
			Offset: p.Offset,
			Limit:  p.Limit,
		})
		if err != nil {
			return fmt.Errorf("fetch page: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		total, err = src.Count(gctx, req.Where)
		if err != nil {
			return fmt.Errorf("fetch count: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return Page[T]{}, err
	}

	if rows == nil {
		rows = []T{}
	}
	p.ComputeMeta(total)
	return Page[T]{Rows: rows, Pagination: p}, nil
}

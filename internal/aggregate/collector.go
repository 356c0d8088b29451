// Package aggregate fans out independent count/sum/avg queries and joins
// them into one named result.
package aggregate

import (
	"context"
	"fmt"
	"sync"

	"safar/internal/collection"
	"safar/internal/query"

	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds how many aggregate queries run at once per
// request, so a dashboard cannot take the whole connection pool.
const DefaultConcurrency = 8

type task struct {
	label string
	src   collection.Aggregator
	spec  collection.Spec
}

// Collector accumulates labelled aggregate specs. It is not safe for
// concurrent use while being built; Run may be called once built.
type Collector struct {
	tasks []task
	limit int
	base  query.Predicate
}

func New() *Collector {
	return &Collector{limit: DefaultConcurrency}
}

// Within ANDs base into every spec added afterwards, for routes whose
// summary follows the same filters as the list.
func (c *Collector) Within(base query.Predicate) *Collector {
	c.base = base
	return c
}

// Limit sets the fan-out width. n <= 0 means unbounded.
func (c *Collector) Limit(n int) *Collector {
	c.limit = n
	return c
}

func (c *Collector) Add(label string, src collection.Aggregator, spec collection.Spec) *Collector {
	if c.base != nil {
		spec.Where = query.Conj(c.base, spec.Where)
	}
	c.tasks = append(c.tasks, task{label: label, src: src, spec: spec})
	return c
}

func (c *Collector) Count(label string, src collection.Aggregator, where query.Predicate) *Collector {
	return c.Add(label, src, collection.Count(where))
}

func (c *Collector) Sum(label string, src collection.Aggregator, field string, where query.Predicate) *Collector {
	return c.Add(label, src, collection.Sum(field, where))
}

func (c *Collector) Avg(label string, src collection.Aggregator, field string, where query.Predicate) *Collector {
	return c.Add(label, src, collection.Avg(field, where))
}

// Labels returns the labels in the order they were added.
func (c *Collector) Labels() []string {
	out := make([]string, len(c.tasks))
	for i, t := range c.tasks {
		out[i] = t.label
	}
	return out
}

// Run issues every spec concurrently and waits for all of them. Every label
// is present in the result; specs that match nothing report 0. The first
// failure cancels the outstanding queries.
func (c *Collector) Run(ctx context.Context) (Result, error) {
	out := make(Result, len(c.tasks))
	for _, t := range c.tasks {
		if _, dup := out[t.label]; dup {
			return nil, fmt.Errorf("aggregate: duplicate label %q", t.label)
		}
		out[t.label] = 0
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	if c.limit > 0 {
		g.SetLimit(c.limit)
	}
	for _, t := range c.tasks {
		g.Go(func() error {
			v, err := t.src.Aggregate(gctx, t.spec)
			if err != nil {
				return fmt.Errorf("aggregate %q: %w", t.label, err)
			}
			mu.Lock()
			out[t.label] = v
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Result maps labels to aggregate values.
type Result map[string]float64

// Int returns the value for label rounded down to an integer (for counts).
func (r Result) Int(label string) int64 {
	return int64(r[label])
}

func (r Result) Float(label string) float64 {
	return r[label]
}

package collection

import (
	"context"
	"errors"

	"safar/internal/query"
)

var ErrNotFound = errors.New("resource not found")

// Func is an aggregate function.
type Func string

const (
	FuncCount Func = "count"
	FuncSum   Func = "sum"
	FuncAvg   Func = "avg"
	FuncMax   Func = "max"
)

// Spec describes one aggregate over the rows matching Where.
type Spec struct {
	Func  Func
	Field string // ignored for count when empty
	Where query.Predicate
}

func Count(where query.Predicate) Spec {
	return Spec{Func: FuncCount, Where: where}
}

func Sum(field string, where query.Predicate) Spec {
	return Spec{Func: FuncSum, Field: field, Where: where}
}

func Avg(field string, where query.Predicate) Spec {
	return Spec{Func: FuncAvg, Field: field, Where: where}
}

func Max(field string, where query.Predicate) Spec {
	return Spec{Func: FuncMax, Field: field, Where: where}
}

// Patch maps field names to their new values.
type Patch map[string]any

// FindOptions selects a window of an ordered, filtered collection.
// Limit <= 0 means no limit.
type FindOptions struct {
	Where  query.Predicate
	Order  []query.Order
	Offset int
	Limit  int
}

// Aggregator computes scalar and grouped aggregates. Empty matches yield 0.
type Aggregator interface {
	Aggregate(ctx context.Context, spec Spec) (float64, error)
	GroupAggregate(ctx context.Context, spec Spec, groupBy string) (map[int64]float64, error)
}

// Collection is the data store boundary every list route and command uses.
type Collection[T any] interface {
	Aggregator
	Find(ctx context.Context, opts FindOptions) ([]T, error)
	Count(ctx context.Context, where query.Predicate) (int, error)
	Get(ctx context.Context, id int64) (T, error)
	Update(ctx context.Context, id int64, patch Patch) (T, error)
	Create(ctx context.Context, rec T) (T, error)
}

// Entity is what the in-memory backend needs from a row type.
type Entity[T any] interface {
	query.Record
	EntityID() int64
	WithID(id int64) T
	Apply(p Patch) T
}

package collection

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"safar/internal/query"
)

// Memory is an in-process Collection. It evaluates predicates with
// query.Match, so it honours the same filter semantics as Postgres.
type Memory[T Entity[T]] struct {
	mu     sync.RWMutex
	rows   []T
	nextID int64
	now    func() time.Time
}

func NewMemory[T Entity[T]](rows ...T) *Memory[T] {
	m := &Memory[T]{now: time.Now}
	for _, r := range rows {
		m.insert(r)
	}
	return m
}

func (m *Memory[T]) insert(r T) T {
	if r.EntityID() == 0 {
		m.nextID++
		r = r.WithID(m.nextID)
	} else if r.EntityID() > m.nextID {
		m.nextID = r.EntityID()
	}
	m.rows = append(m.rows, r)
	return r
}

// Snapshot captures the current rows; calling the returned func restores them.
func (m *Memory[T]) Snapshot() (restore func()) {
	m.mu.RLock()
	rows := append([]T(nil), m.rows...)
	next := m.nextID
	m.mu.RUnlock()

	return func() {
		m.mu.Lock()
		m.rows = rows
		m.nextID = next
		m.mu.Unlock()
	}
}

// All returns a copy of every row in insertion order.
func (m *Memory[T]) All() []T {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]T(nil), m.rows...)
}

func (m *Memory[T]) matching(where query.Predicate) []T {
	var out []T
	for _, r := range m.rows {
		if query.Match(where, r) {
			out = append(out, r)
		}
	}
	return out
}

func (m *Memory[T]) Find(ctx context.Context, opts FindOptions) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	rows := m.matching(opts.Where)
	m.mu.RUnlock()

	if len(opts.Order) > 0 {
		sort.SliceStable(rows, func(i, j int) bool {
			return less(rows[i], rows[j], opts.Order)
		})
	}

	if opts.Offset < 0 || opts.Offset >= len(rows) {
		return []T{}, nil
	}
	rows = rows[opts.Offset:]
	if opts.Limit > 0 && len(rows) > opts.Limit {
		rows = rows[:opts.Limit]
	}
	return rows, nil
}

func less[T query.Record](a, b T, orders []query.Order) bool {
	for _, o := range orders {
		av, aok := a.Field(o.Field)
		bv, bok := b.Field(o.Field)
		aok = aok && av != nil
		bok = bok && bv != nil
		// NULLS LAST regardless of direction
		switch {
		case !aok && !bok:
			continue
		case !aok:
			return false
		case !bok:
			return true
		}
		c := query.Compare(av, bv)
		if c == 0 {
			continue
		}
		if o.Desc {
			return c > 0
		}
		return c < 0
	}
	return false
}

func (m *Memory[T]) Count(ctx context.Context, where query.Predicate) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.matching(where)), nil
}

func (m *Memory[T]) values(rows []T, field string) []float64 {
	out := make([]float64, 0, len(rows))
	for _, r := range rows {
		v, ok := r.Field(field)
		if !ok || v == nil {
			continue
		}
		if f, ok := number(v); ok {
			out = append(out, f)
		}
	}
	return out
}

func (m *Memory[T]) reduce(rows []T, spec Spec) (float64, error) {
	if spec.Func == FuncCount && spec.Field == "" {
		return float64(len(rows)), nil
	}
	vs := m.values(rows, spec.Field)
	switch spec.Func {
	case FuncCount:
		return float64(len(vs)), nil
	case FuncSum, FuncAvg:
		var sum float64
		for _, v := range vs {
			sum += v
		}
		if spec.Func == FuncAvg {
			if len(vs) == 0 {
				return 0, nil
			}
			return sum / float64(len(vs)), nil
		}
		return sum, nil
	case FuncMax:
		var out float64
		for i, v := range vs {
			if i == 0 || v > out {
				out = v
			}
		}
		return out, nil
	}
	return 0, fmt.Errorf("unsupported aggregate %q", spec.Func)
}

func (m *Memory[T]) Aggregate(ctx context.Context, spec Spec) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.mu.RLock()
	rows := m.matching(spec.Where)
	m.mu.RUnlock()
	return m.reduce(rows, spec)
}

func (m *Memory[T]) GroupAggregate(ctx context.Context, spec Spec, groupBy string) (map[int64]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	rows := m.matching(spec.Where)
	m.mu.RUnlock()

	groups := make(map[int64][]T)
	for _, r := range rows {
		v, ok := r.Field(groupBy)
		if !ok {
			continue
		}
		key, ok := number(v)
		if !ok {
			continue
		}
		groups[int64(key)] = append(groups[int64(key)], r)
	}

	out := make(map[int64]float64, len(groups))
	for key, rs := range groups {
		v, err := m.reduce(rs, spec)
		if err != nil {
			return nil, err
		}
		out[key] = v
	}
	return out, nil
}

func (m *Memory[T]) Get(ctx context.Context, id int64) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.rows {
		if r.EntityID() == id {
			return r, nil
		}
	}
	return zero, ErrNotFound
}

func (m *Memory[T]) Update(ctx context.Context, id int64, patch Patch) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.rows {
		if r.EntityID() != id {
			continue
		}
		p := make(Patch, len(patch)+1)
		for k, v := range patch {
			p[k] = v
		}
		p["updated_at"] = m.now().UTC()
		m.rows[i] = r.Apply(p)
		return m.rows[i], nil
	}
	return zero, ErrNotFound
}

func (m *Memory[T]) Create(ctx context.Context, rec T) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if rec.EntityID() != 0 {
		for _, r := range m.rows {
			if r.EntityID() == rec.EntityID() {
				return zero, fmt.Errorf("create: id %d already exists", rec.EntityID())
			}
		}
	}
	return m.insert(rec), nil
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

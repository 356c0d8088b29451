package collection

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"safar/internal/infra/dbx"
	"safar/internal/query"

	"github.com/jackc/pgx/v5"
)

// Table describes how a row type maps onto PostgreSQL.
type Table[T any] struct {
	Name     string // table written by Update/Create, e.g. "bookings"
	Alias    string // alias of Name inside From, e.g. "b"
	From     string // FROM clause including joins
	Select   string // column list, in Scan order
	Mapping  query.Mapping
	Writable map[string]bool // columns of Name that Update may set
	Touch    bool            // set updated_at = now() on Update
	Scan     func(row pgx.Row) (T, error)
	Insert   func(rec T) (cols []string, args []any)
}

// Postgres is a Collection backed by a pgx pool or transaction.
type Postgres[T any] struct {
	q         dbx.Querier
	t         *Table[T]
	forUpdate bool
}

func NewPostgres[T any](q dbx.Querier, t *Table[T]) *Postgres[T] {
	return &Postgres[T]{q: q, t: t}
}

// Locking returns a copy whose Get takes a row lock. Only meaningful inside a
// transaction.
func (p *Postgres[T]) Locking() *Postgres[T] {
	cp := *p
	cp.forUpdate = true
	return &cp
}

func (p *Postgres[T]) where(pred query.Predicate, next int) (string, []any, error) {
	if query.IsAll(pred) {
		return "", nil, nil
	}
	sql, args, err := query.Compile(pred, p.t.Mapping, next)
	if err != nil {
		return "", nil, err
	}
	return " WHERE " + sql, args, nil
}

func (p *Postgres[T]) Find(ctx context.Context, opts FindOptions) ([]T, error) {
	if opts.Offset < 0 {
		return []T{}, nil
	}
	whereSQL, args, err := p.where(opts.Where, 1)
	if err != nil {
		return nil, err
	}

	q := "SELECT " + p.t.Select + " FROM " + p.t.From + whereSQL
	if len(opts.Order) > 0 {
		orderSQL, err := query.OrderBy(opts.Order, p.t.Mapping)
		if err != nil {
			return nil, err
		}
		q += " ORDER BY " + orderSQL
	}
	if opts.Limit > 0 {
		q += fmt.Sprintf(" LIMIT $%d", len(args)+1)
		args = append(args, opts.Limit)
	}
	if opts.Offset > 0 {
		q += fmt.Sprintf(" OFFSET $%d", len(args)+1)
		args = append(args, opts.Offset)
	}

	rows, err := p.q.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", p.t.Name, err)
	}
	defer rows.Close()

	out := make([]T, 0, opts.Limit)
	for rows.Next() {
		rec, err := p.t.Scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s row: %w", p.t.Name, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows %s: %w", p.t.Name, err)
	}
	return out, nil
}

func (p *Postgres[T]) Count(ctx context.Context, where query.Predicate) (int, error) {
	whereSQL, args, err := p.where(where, 1)
	if err != nil {
		return 0, err
	}
	var total int
	if err := p.q.QueryRow(ctx, "SELECT COUNT(*) FROM "+p.t.From+whereSQL, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count %s: %w", p.t.Name, err)
	}
	return total, nil
}

func (p *Postgres[T]) aggExpr(spec Spec) (string, error) {
	if spec.Func == FuncCount && spec.Field == "" {
		return "COUNT(*)::float8", nil
	}
	expr, err := p.t.Mapping.Expr(spec.Field)
	if err != nil {
		return "", err
	}
	switch spec.Func {
	case FuncCount:
		return "COUNT(" + expr + ")::float8", nil
	case FuncSum:
		return "COALESCE(SUM(" + expr + "), 0)::float8", nil
	case FuncAvg:
		return "COALESCE(AVG(" + expr + "), 0)::float8", nil
	case FuncMax:
		return "COALESCE(MAX(" + expr + "), 0)::float8", nil
	}
	return "", fmt.Errorf("unsupported aggregate %q", spec.Func)
}

func (p *Postgres[T]) Aggregate(ctx context.Context, spec Spec) (float64, error) {
	agg, err := p.aggExpr(spec)
	if err != nil {
		return 0, err
	}
	whereSQL, args, err := p.where(spec.Where, 1)
	if err != nil {
		return 0, err
	}
	var v float64
	if err := p.q.QueryRow(ctx, "SELECT "+agg+" FROM "+p.t.From+whereSQL, args...).Scan(&v); err != nil {
		return 0, fmt.Errorf("aggregate %s: %w", p.t.Name, err)
	}
	return v, nil
}

// GroupAggregate runs one grouped query instead of one query per group key.
func (p *Postgres[T]) GroupAggregate(ctx context.Context, spec Spec, groupBy string) (map[int64]float64, error) {
	agg, err := p.aggExpr(spec)
	if err != nil {
		return nil, err
	}
	groupExpr, err := p.t.Mapping.Expr(groupBy)
	if err != nil {
		return nil, err
	}
	whereSQL, args, err := p.where(spec.Where, 1)
	if err != nil {
		return nil, err
	}

	q := "SELECT " + groupExpr + ", " + agg + " FROM " + p.t.From + whereSQL + " GROUP BY " + groupExpr
	rows, err := p.q.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("group aggregate %s: %w", p.t.Name, err)
	}
	defer rows.Close()

	out := make(map[int64]float64)
	for rows.Next() {
		var (
			key int64
			v   float64
		)
		if err := rows.Scan(&key, &v); err != nil {
			return nil, fmt.Errorf("scan group aggregate %s: %w", p.t.Name, err)
		}
		out[key] = v
	}
	return out, rows.Err()
}

func (p *Postgres[T]) Get(ctx context.Context, id int64) (T, error) {
	var zero T
	q := "SELECT " + p.t.Select + " FROM " + p.t.From + " WHERE " + p.t.Alias + ".id = $1"
	if p.forUpdate {
		q += " FOR UPDATE OF " + p.t.Alias
	}
	rec, err := p.t.Scan(p.q.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, ErrNotFound
		}
		return zero, fmt.Errorf("get %s %d: %w", p.t.Name, id, err)
	}
	return rec, nil
}

func (p *Postgres[T]) Update(ctx context.Context, id int64, patch Patch) (T, error) {
	var zero T
	if len(patch) == 0 {
		return p.Get(ctx, id)
	}

	cols := make([]string, 0, len(patch))
	for col := range patch {
		if !p.t.Writable[col] {
			return zero, fmt.Errorf("update %s: column %q is not writable", p.t.Name, col)
		}
		cols = append(cols, col)
	}
	sort.Strings(cols)

	sets := make([]string, 0, len(cols)+1)
	args := make([]any, 0, len(cols)+1)
	for i, col := range cols {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, i+1))
		args = append(args, patch[col])
	}
	if p.t.Touch {
		sets = append(sets, "updated_at = now()")
	}
	args = append(args, id)

	q := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d", p.t.Name, strings.Join(sets, ", "), len(args))
	tag, err := p.q.Exec(ctx, q, args...)
	if err != nil {
		return zero, fmt.Errorf("update %s %d: %w", p.t.Name, id, err)
	}
	if tag.RowsAffected() == 0 {
		return zero, ErrNotFound
	}
	return p.Get(ctx, id)
}

func (p *Postgres[T]) Create(ctx context.Context, rec T) (T, error) {
	var zero T
	cols, args := p.t.Insert(rec)
	marks := make([]string, len(cols))
	for i := range cols {
		marks[i] = fmt.Sprintf("$%d", i+1)
	}

	q := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id",
		p.t.Name, strings.Join(cols, ", "), strings.Join(marks, ", "))

	var id int64
	if err := p.q.QueryRow(ctx, q, args...).Scan(&id); err != nil {
		return zero, fmt.Errorf("create %s: %w", p.t.Name, err)
	}
	return p.Get(ctx, id)
}

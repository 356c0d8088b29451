package query

import (
	"fmt"
	"strings"
)

// Relation describes how to reach a related entity from the outer row.
// On references the outer table alias, e.g. "o.id = l.owner_id".
type Relation struct {
	From    string
	On      string
	Columns map[string]string
}

// Mapping resolves predicate fields to SQL expressions.
type Mapping struct {
	Columns   map[string]string
	Relations map[string]Relation
}

// Expr returns the SQL expression for field.
func (m Mapping) Expr(field string) (string, error) {
	expr, ok := m.Columns[field]
	if !ok {
		return "", fmt.Errorf("query: unknown field %q", field)
	}
	return expr, nil
}

// Compile renders p as a WHERE fragment using pgx positional arguments
// starting at $next. It returns the fragment and its args.
func Compile(p Predicate, m Mapping, next int) (string, []any, error) {
	c := &compiler{next: next}
	sql, err := c.compile(p, m)
	if err != nil {
		return "", nil, err
	}
	return sql, c.args, nil
}

// OrderBy renders orders as an ORDER BY list (without the keyword).
func OrderBy(orders []Order, m Mapping) (string, error) {
	parts := make([]string, 0, len(orders))
	for _, o := range orders {
		expr, err := m.Expr(o.Field)
		if err != nil {
			return "", err
		}
		dir := "ASC"
		if o.Desc {
			dir = "DESC"
		}
		parts = append(parts, expr+" "+dir+" NULLS LAST")
	}
	return strings.Join(parts, ", "), nil
}

type compiler struct {
	next int
	args []any
}

func (c *compiler) arg(v any) string {
	c.args = append(c.args, v)
	s := fmt.Sprintf("$%d", c.next)
	c.next++
	return s
}

func (c *compiler) compile(p Predicate, m Mapping) (string, error) {
	switch v := p.(type) {
	case nil:
		return "TRUE", nil
	case And:
		return c.join(v, m, " AND ", "TRUE")
	case Or:
		return c.join(v, m, " OR ", "FALSE")
	case Cond:
		return c.cond(v, m)
	case Related:
		rel, ok := m.Relations[v.Relation]
		if !ok {
			return "", fmt.Errorf("query: unknown relation %q", v.Relation)
		}
		inner, err := c.compile(v.Where, Mapping{Columns: rel.Columns})
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("EXISTS (SELECT 1 FROM %s WHERE %s AND (%s))", rel.From, rel.On, inner), nil
	default:
		return "", fmt.Errorf("query: unsupported predicate %T", p)
	}
}

func (c *compiler) join(ps []Predicate, m Mapping, sep, empty string) (string, error) {
	if len(ps) == 0 {
		return empty, nil
	}
	parts := make([]string, 0, len(ps))
	for _, p := range ps {
		s, err := c.compile(p, m)
		if err != nil {
			return "", err
		}
		parts = append(parts, "("+s+")")
	}
	return strings.Join(parts, sep), nil
}

func (c *compiler) cond(v Cond, m Mapping) (string, error) {
	expr, err := m.Expr(v.Field)
	if err != nil {
		return "", err
	}
	switch v.Op {
	case OpEq:
		return expr + " = " + c.arg(v.Value), nil
	case OpGt:
		return expr + " > " + c.arg(v.Value), nil
	case OpGte:
		return expr + " >= " + c.arg(v.Value), nil
	case OpLt:
		return expr + " < " + c.arg(v.Value), nil
	case OpLte:
		return expr + " <= " + c.arg(v.Value), nil
	case OpContains:
		s, _ := v.Value.(string)
		return expr + " ILIKE " + c.arg("%"+escapeLike(s)+"%"), nil
	case OpIn:
		vs, _ := v.Value.([]any)
		if len(vs) == 0 {
			return "FALSE", nil
		}
		return expr + " = ANY(" + c.arg(typedSlice(vs)) + ")", nil
	default:
		return "", fmt.Errorf("query: unsupported operator %q", v.Op)
	}
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// typedSlice converts []any into a homogeneous slice pgx can encode as an array.
func typedSlice(vs []any) any {
	switch vs[0].(type) {
	case string:
		out := make([]string, 0, len(vs))
		for _, v := range vs {
			s, _ := v.(string)
			out = append(out, s)
		}
		return out
	case int, int32, int64:
		out := make([]int64, 0, len(vs))
		for _, v := range vs {
			f, _ := toFloat(v)
			out = append(out, int64(f))
		}
		return out
	}
	return vs
}

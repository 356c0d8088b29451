package query

import (
	"strings"
	"time"
)

// Record exposes named field values for in-memory evaluation.
type Record interface {
	Field(name string) (any, bool)
}

// Relater is implemented by records that carry joined entities.
type Relater interface {
	Related(name string) (Record, bool)
}

// Match evaluates p against rec with the same semantics as Compile.
func Match(p Predicate, rec Record) bool {
	switch v := p.(type) {
	case nil:
		return true
	case And:
		for _, c := range v {
			if !Match(c, rec) {
				return false
			}
		}
		return true
	case Or:
		for _, c := range v {
			if Match(c, rec) {
				return true
			}
		}
		return false
	case Related:
		r, ok := rec.(Relater)
		if !ok {
			return false
		}
		other, ok := r.Related(v.Relation)
		if !ok || other == nil {
			return false
		}
		return Match(v.Where, other)
	case Cond:
		got, ok := rec.Field(v.Field)
		if !ok || got == nil {
			return false
		}
		return matchCond(v, got)
	}
	return false
}

func matchCond(c Cond, got any) bool {
	switch c.Op {
	case OpEq:
		return sameKind(got, c.Value) && Compare(got, c.Value) == 0
	case OpGt:
		return sameKind(got, c.Value) && Compare(got, c.Value) > 0
	case OpGte:
		return sameKind(got, c.Value) && Compare(got, c.Value) >= 0
	case OpLt:
		return sameKind(got, c.Value) && Compare(got, c.Value) < 0
	case OpLte:
		return sameKind(got, c.Value) && Compare(got, c.Value) <= 0
	case OpContains:
		s, ok := got.(string)
		needle, _ := c.Value.(string)
		return ok && strings.Contains(strings.ToLower(s), strings.ToLower(needle))
	case OpIn:
		vs, _ := c.Value.([]any)
		for _, v := range vs {
			if sameKind(got, v) && Compare(got, v) == 0 {
				return true
			}
		}
	}
	return false
}

func sameKind(a, b any) bool {
	if _, ok := toFloat(a); ok {
		_, ok := toFloat(b)
		return ok
	}
	switch a.(type) {
	case string:
		_, ok := b.(string)
		return ok
	case bool:
		_, ok := b.(bool)
		return ok
	case time.Time:
		_, ok := b.(time.Time)
		return ok
	}
	return false
}

// Compare orders two field values of the same kind. Values of different
// kinds compare as equal; callers check kinds first where it matters.
func Compare(a, b any) int {
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			}
			return 0
		}
	}
	switch x := a.(type) {
	case string:
		if y, ok := b.(string); ok {
			return strings.Compare(x, y)
		}
	case bool:
		if y, ok := b.(bool); ok {
			switch {
			case x == y:
				return 0
			case !x:
				return -1
			}
			return 1
		}
	case time.Time:
		if y, ok := b.(time.Time); ok {
			return x.Compare(y)
		}
	}
	return 0
}

func toFloat(v any) (float64, bool) {
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

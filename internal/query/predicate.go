package query

// Op is a comparison operator understood by both the SQL compiler and the
// in-memory matcher.
type Op string

const (
	OpEq       Op = "eq"
	OpIn       Op = "in"
	OpGt       Op = "gt"
	OpGte      Op = "gte"
	OpLt       Op = "lt"
	OpLte      Op = "lte"
	OpContains Op = "contains" // case-insensitive substring
)

// Predicate describes which rows of a collection satisfy a filter.
// Implementations: Cond, And, Or, Related.
type Predicate interface {
	predicate()
}

// Cond is a single field comparison.
type Cond struct {
	Field string
	Op    Op
	Value any
}

// And matches when every child matches. An empty And matches everything.
type And []Predicate

// Or matches when at least one child matches. An empty Or matches nothing.
type Or []Predicate

// Related applies Where to a joined entity (e.g. the owner of a listing).
type Related struct {
	Relation string
	Where    Predicate
}

func (Cond) predicate()    {}
func (And) predicate()     {}
func (Or) predicate()      {}
func (Related) predicate() {}

// All returns the predicate that matches every row.
func All() Predicate { return And(nil) }

func Eq(field string, v any) Cond              { return Cond{Field: field, Op: OpEq, Value: v} }
func In(field string, vs ...any) Cond          { return Cond{Field: field, Op: OpIn, Value: vs} }
func Gte(field string, v any) Cond             { return Cond{Field: field, Op: OpGte, Value: v} }
func Lte(field string, v any) Cond             { return Cond{Field: field, Op: OpLte, Value: v} }
func Lt(field string, v any) Cond              { return Cond{Field: field, Op: OpLt, Value: v} }
func Gt(field string, v any) Cond              { return Cond{Field: field, Op: OpGt, Value: v} }
func Contains(field, s string) Cond            { return Cond{Field: field, Op: OpContains, Value: s} }
func Rel(relation string, p Predicate) Related { return Related{Relation: relation, Where: p} }

// Conj joins predicates with AND, dropping nils and flattening nested Ands so
// the compiled SQL stays readable.
func Conj(ps ...Predicate) Predicate {
	out := make(And, 0, len(ps))
	for _, p := range ps {
		switch v := p.(type) {
		case nil:
		case And:
			out = append(out, v...)
		default:
			out = append(out, v)
		}
	}
	return out
}

// IsAll reports whether p places no constraint at all.
func IsAll(p Predicate) bool {
	if p == nil {
		return true
	}
	a, ok := p.(And)
	if !ok {
		return false
	}
	for _, c := range a {
		if !IsAll(c) {
			return false
		}
	}
	return true
}

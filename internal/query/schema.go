package query

import (
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Sentinel meaning "no constraint for this key".
const AllValues = "all"

// EnumFilter restricts Field to one of Values. Input is matched
// case-insensitively and normalized to the stored spelling.
type EnumFilter struct {
	Key    string
	Field  string
	Values []string
}

// RangeFilter parses "min-max" (either side optional, "5000+" also accepted).
type RangeFilter struct {
	Key   string
	Field string
}

// NumberFilter compares Field against a single number with Op.
type NumberFilter struct {
	Key   string
	Field string
	Op    Op
}

// BoolFilter accepts true/false/1/0/yes/no.
type BoolFilter struct {
	Key   string
	Field string
}

// DateFilter bounds Field by [From, To]. A bare date in To covers the whole day.
type DateFilter struct {
	FromKey string
	ToKey   string
	Field   string
}

// PresetFilter maps the values of Key onto predefined predicates, e.g.
// status=flagged. Unknown values add no constraint.
type PresetFilter struct {
	Key     string
	Options map[string]Predicate
}

// Schema declares the filter keys a collection recognizes and how each one
// maps to a predicate.
type Schema struct {
	SearchKey     string              // defaults to "search"
	Search        []string            // fields matched by substring
	SearchRelated map[string][]string // relation -> fields matched by substring
	Enums         []EnumFilter
	Ranges        []RangeFilter
	Numbers       []NumberFilter
	Bools         []BoolFilter
	Dates         []DateFilter
	Presets       []PresetFilter
}

// Build translates query-string filters into a predicate. It never fails:
// unknown keys are ignored, and empty values, the "all" sentinel and
// malformed values add no constraint.
func (s Schema) Build(q url.Values) Predicate {
	var out And

	if p := s.search(value(q, s.searchKey())); p != nil {
		out = append(out, p)
	}

	for _, e := range s.Enums {
		v := value(q, e.Key)
		if v == "" {
			continue
		}
		if norm, ok := e.normalize(v); ok {
			out = append(out, Eq(e.Field, norm))
		}
	}

	for _, r := range s.Ranges {
		lo, hi := ParseRange(value(q, r.Key))
		if lo != nil {
			out = append(out, Gte(r.Field, *lo))
		}
		if hi != nil {
			out = append(out, Lte(r.Field, *hi))
		}
	}

	for _, n := range s.Numbers {
		v := value(q, n.Key)
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || !finite(f) {
			continue
		}
		op := n.Op
		if op == "" {
			op = OpEq
		}
		out = append(out, Cond{Field: n.Field, Op: op, Value: f})
	}

	for _, b := range s.Bools {
		if v, ok := parseBool(value(q, b.Key)); ok {
			out = append(out, Eq(b.Field, v))
		}
	}

	for _, d := range s.Dates {
		if from, _, ok := parseDate(value(q, d.FromKey)); ok {
			out = append(out, Gte(d.Field, from))
		}
		if to, dateOnly, ok := parseDate(value(q, d.ToKey)); ok {
			if dateOnly {
				out = append(out, Lt(d.Field, to.AddDate(0, 0, 1)))
			} else {
				out = append(out, Lte(d.Field, to))
			}
		}
	}

	for _, p := range s.Presets {
		if pred, ok := p.Options[strings.ToLower(value(q, p.Key))]; ok {
			out = append(out, pred)
		}
	}

	return out
}

func (s Schema) searchKey() string {
	if s.SearchKey == "" {
		return "search"
	}
	return s.SearchKey
}

func (s Schema) search(term string) Predicate {
	if term == "" || (len(s.Search) == 0 && len(s.SearchRelated) == 0) {
		return nil
	}
	var or Or
	for _, f := range s.Search {
		or = append(or, Contains(f, term))
	}
	rels := make([]string, 0, len(s.SearchRelated))
	for rel := range s.SearchRelated {
		rels = append(rels, rel)
	}
	sort.Strings(rels)
	for _, rel := range rels {
		var inner Or
		for _, f := range s.SearchRelated[rel] {
			inner = append(inner, Contains(f, term))
		}
		or = append(or, Rel(rel, inner))
	}
	return or
}

func (e EnumFilter) normalize(v string) (string, bool) {
	for _, allowed := range e.Values {
		if strings.EqualFold(allowed, v) {
			return allowed, true
		}
	}
	return "", false
}

// value returns the trimmed value for key, or "" when it is absent or "all".
func value(q url.Values, key string) string {
	if key == "" {
		return ""
	}
	v := strings.TrimSpace(q.Get(key))
	if strings.EqualFold(v, AllValues) {
		return ""
	}
	return v
}

// ParseRange splits "min-max" into optional bounds. "1000-" and "5000+" give
// only a minimum, "-3000" only a maximum. A side that is not a finite,
// non-negative number is left open.
func ParseRange(s string) (lo, hi *float64) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, AllValues) {
		return nil, nil
	}
	if strings.HasSuffix(s, "+") {
		return parseBound(strings.TrimSuffix(s, "+")), nil
	}
	from, to, found := strings.Cut(s, "-")
	if !found {
		// a single number is treated as an exact price point
		b := parseBound(s)
		return b, b
	}
	return parseBound(from), parseBound(to)
}

func parseBound(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || !finite(f) || f < 0 {
		return nil
	}
	return &f
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "true", "1", "yes":
		return true, true
	case "false", "0", "no":
		return false, true
	}
	return false, false
}

// parseDate accepts RFC3339 or YYYY-MM-DD (UTC). dateOnly is true for the latter.
func parseDate(s string) (t time.Time, dateOnly bool, ok bool) {
	if s == "" {
		return time.Time{}, false, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, false, true
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, true, true
	}
	return time.Time{}, false, false
}

// Keys lists every query key the schema recognizes, in declaration order.
func (s Schema) Keys() []string {
	keys := []string{}
	if len(s.Search) > 0 || len(s.SearchRelated) > 0 {
		keys = append(keys, s.searchKey())
	}
	for _, e := range s.Enums {
		keys = append(keys, e.Key)
	}
	for _, r := range s.Ranges {
		keys = append(keys, r.Key)
	}
	for _, n := range s.Numbers {
		keys = append(keys, n.Key)
	}
	for _, b := range s.Bools {
		keys = append(keys, b.Key)
	}
	for _, d := range s.Dates {
		keys = append(keys, d.FromKey, d.ToKey)
	}
	for _, p := range s.Presets {
		keys = append(keys, p.Key)
	}
	return keys
}

// Echo returns the recognized filter values present in q, trimmed, so a
// client can render the controls in their current state.
func (s Schema) Echo(q url.Values) map[string]string {
	out := make(map[string]string)
	for _, k := range s.Keys() {
		if v := value(q, k); v != "" {
			out[k] = v
		}
	}
	return out
}

// Without returns a copy of q with keys removed.
func Without(q url.Values, keys ...string) url.Values {
	out := make(url.Values, len(q))
	for k, v := range q {
		out[k] = v
	}
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

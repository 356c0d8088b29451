package query

import "strings"

// Order is one ORDER BY term.
type Order struct {
	Field string
	Desc  bool
}

// Sorts maps user-facing sort keys (e.g. "price_low") to concrete orders.
type Sorts struct {
	Default string
	Keys    map[string][]Order
	// TieBreak makes every ordering total; defaults to "id".
	TieBreak string
}

// Resolve returns the ordering for key. Unknown or empty keys fall back to
// Default, so the result is always deterministic.
func (s Sorts) Resolve(key string) []Order {
	key = strings.ToLower(strings.TrimSpace(key))
	orders, ok := s.Keys[key]
	if !ok {
		orders = s.Keys[s.Default]
	}

	tie := s.TieBreak
	if tie == "" {
		tie = "id"
	}

	out := make([]Order, 0, len(orders)+1)
	desc := false
	for _, o := range orders {
		if o.Field == tie {
			return append(out, o)
		}
		out = append(out, o)
		desc = o.Desc
	}
	return append(out, Order{Field: tie, Desc: desc})
}

// Key reports the sort key that Resolve actually applies for key.
func (s Sorts) Key(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	if _, ok := s.Keys[key]; ok {
		return key
	}
	return s.Default
}

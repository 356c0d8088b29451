package query

import (
	"net/url"
	"testing"
	"time"
)

var bookingSchema = Schema{
	Search:        []string{"user_name", "user_email", "listing_title"},
	SearchRelated: map[string][]string{"listing": {"city"}},
	Enums: []EnumFilter{
		{Key: "status", Field: "status", Values: []string{"PENDING", "CONFIRMED", "COMPLETED", "CANCELLED"}},
	},
	Ranges:  []RangeFilter{{Key: "priceRange", Field: "total_price"}},
	Numbers: []NumberFilter{{Key: "rating", Field: "rating", Op: OpGte}},
	Bools:   []BoolFilter{{Key: "flagged", Field: "is_flagged"}},
	Dates:   []DateFilter{{FromKey: "from", ToKey: "to", Field: "created_at"}},
}

func TestParseRange(t *testing.T) {
	f := func(v float64) *float64 { return &v }
	tests := []struct {
		in     string
		lo, hi *float64
	}{
		{"1000-3000", f(1000), f(3000)},
		{" 1000 - 3000 ", f(1000), f(3000)},
		{"1000-", f(1000), nil},
		{"-3000", nil, f(3000)},
		{"5000+", f(5000), nil},
		{"abc-3000", nil, f(3000)},
		{"1000-xyz", f(1000), nil},
		{"1500", f(1500), f(1500)},
		{"", nil, nil},
		{"all", nil, nil},
		{"-", nil, nil},
		{"NaN-Inf", nil, nil},
		{"--5", nil, nil},
	}

	for _, tt := range tests {
		lo, hi := ParseRange(tt.in)
		if !sameBound(lo, tt.lo) || !sameBound(hi, tt.hi) {
			t.Errorf("ParseRange(%q) = (%v, %v), want (%v, %v)", tt.in, deref(lo), deref(hi), deref(tt.lo), deref(tt.hi))
		}
	}
}

func sameBound(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func deref(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

func TestBuildIsTotal(t *testing.T) {
	values := []string{"", " ", "all", "ALL", "garbage", "-", "1000-3000", "abc-", "+", "NaN", "2024-13-45", "2024-01-02", "true", "%_\\"}
	keys := []string{"search", "status", "priceRange", "rating", "flagged", "from", "to", "unknown"}

	for _, k := range keys {
		for _, v := range values {
			q := url.Values{k: {v}}
			p := bookingSchema.Build(q)
			if p == nil {
				t.Fatalf("Build(%s=%q) returned nil", k, v)
			}
			if _, err := compileForTest(p); err != nil {
				t.Fatalf("Build(%s=%q) produced an uncompilable predicate: %v", k, v, err)
			}
		}
	}
}

func TestBuildSentinelsAddNoConstraint(t *testing.T) {
	q := url.Values{
		"search":     {"  "},
		"status":     {"all"},
		"priceRange": {"all"},
		"flagged":    {""},
		"from":       {"not-a-date"},
	}
	if p := bookingSchema.Build(q); !IsAll(p) {
		t.Fatalf("expected no constraint, got %#v", p)
	}
}

func TestBuildNormalizesEnum(t *testing.T) {
	p := bookingSchema.Build(url.Values{"status": {"confirmed"}})
	and, ok := p.(And)
	if !ok || len(and) != 1 {
		t.Fatalf("expected one condition, got %#v", p)
	}
	c := and[0].(Cond)
	if c.Field != "status" || c.Op != OpEq || c.Value != "CONFIRMED" {
		t.Fatalf("unexpected condition %#v", c)
	}

	if p := bookingSchema.Build(url.Values{"status": {"teleported"}}); !IsAll(p) {
		t.Fatalf("unknown enum value should be ignored, got %#v", p)
	}
}

func TestBuildSearchFansOut(t *testing.T) {
	p := bookingSchema.Build(url.Values{"search": {"Kathmandu"}})
	and := p.(And)
	or, ok := and[0].(Or)
	if !ok {
		t.Fatalf("expected Or, got %T", and[0])
	}
	if len(or) != 4 {
		t.Fatalf("expected 3 direct fields + 1 related, got %d", len(or))
	}
	rel, ok := or[3].(Related)
	if !ok || rel.Relation != "listing" {
		t.Fatalf("expected related listing predicate, got %#v", or[3])
	}
}

func TestBuildDateOnlyCoversWholeDay(t *testing.T) {
	p := bookingSchema.Build(url.Values{"from": {"2024-03-01"}, "to": {"2024-03-31"}}).(And)
	if len(p) != 2 {
		t.Fatalf("expected 2 conditions, got %d", len(p))
	}
	to := p[1].(Cond)
	want := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	if to.Op != OpLt || !to.Value.(time.Time).Equal(want) {
		t.Fatalf("unexpected upper bound %#v", to)
	}
}

func compileForTest(p Predicate) (string, error) {
	m := Mapping{
		Columns: map[string]string{
			"user_name": "u.name", "user_email": "u.email", "listing_title": "l.title",
			"status": "b.status", "total_price": "b.total_price", "rating": "l.rating_avg",
			"is_flagged": "b.is_flagged", "created_at": "b.created_at",
		},
		Relations: map[string]Relation{
			"listing": {From: "listings lx", On: "lx.id = b.listing_id", Columns: map[string]string{"city": "lx.city"}},
		},
	}
	s, _, err := Compile(p, m, 1)
	return s, err
}

func TestEchoAndWithout(t *testing.T) {
	s := Schema{
		Search: []string{"title"},
		Enums:  []EnumFilter{{Key: "status", Field: "status", Values: []string{"PENDING"}}},
		Ranges: []RangeFilter{{Key: "priceRange", Field: "price"}},
	}
	q := url.Values{"search": {" inn "}, "status": {"all"}, "priceRange": {"100-200"}, "page": {"2"}}

	got := s.Echo(q)
	if len(got) != 2 || got["search"] != "inn" || got["priceRange"] != "100-200" {
		t.Fatalf("echo = %v", got)
	}

	w := Without(q, "priceRange")
	if w.Get("priceRange") != "" || q.Get("priceRange") == "" || w.Get("page") != "2" {
		t.Fatalf("Without = %v (orig %v)", w, q)
	}
}

func TestBuildPreset(t *testing.T) {
	flagged := Eq("is_flagged", true)
	s := Schema{Presets: []PresetFilter{{Key: "status", Options: map[string]Predicate{"flagged": flagged}}}}

	p := s.Build(url.Values{"status": {"Flagged"}}).(And)
	if len(p) != 1 || p[0] != flagged {
		t.Fatalf("expected the flagged preset, got %#v", p)
	}
	if p := s.Build(url.Values{"status": {"archived"}}); !IsAll(p) {
		t.Fatalf("unknown preset should be ignored, got %#v", p)
	}
	if keys := s.Keys(); len(keys) != 1 || keys[0] != "status" {
		t.Fatalf("keys = %v", keys)
	}
}

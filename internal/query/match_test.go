package query

import (
	"net/url"
	"testing"
	"time"
)

type row map[string]any

func (r row) Field(name string) (any, bool) {
	v, ok := r[name]
	return v, ok
}

type ownedRow struct {
	row
	owner row
}

func (r ownedRow) Related(name string) (Record, bool) {
	if name == "owner" && r.owner != nil {
		return r.owner, true
	}
	return nil, false
}

func TestMatchPriceRange(t *testing.T) {
	schema := Schema{Ranges: []RangeFilter{{Key: "priceRange", Field: "price"}}}
	p := schema.Build(url.Values{"priceRange": {"1000-3000"}})

	var got []float64
	for _, price := range []float64{500, 1500, 2500, 3500} {
		if Match(p, row{"price": price}) {
			got = append(got, price)
		}
	}
	if len(got) != 2 || got[0] != 1500 || got[1] != 2500 {
		t.Fatalf("expected [1500 2500], got %v", got)
	}
}

func TestMatchRelatedSearch(t *testing.T) {
	schema := Schema{
		Search:        []string{"title"},
		SearchRelated: map[string][]string{"owner": {"name", "email"}},
	}
	p := schema.Build(url.Values{"search": {"SHERPA"}})

	byTitle := ownedRow{row: row{"title": "Sherpa Lodge"}}
	byOwner := ownedRow{row: row{"title": "Lake View"}, owner: row{"name": "Pemba Sherpa", "email": "p@x.io"}}
	neither := ownedRow{row: row{"title": "Lake View"}, owner: row{"name": "Ann", "email": "ann@x.io"}}

	if !Match(p, byTitle) || !Match(p, byOwner) {
		t.Fatal("expected title and owner matches")
	}
	if Match(p, neither) {
		t.Fatal("unexpected match")
	}
}

func TestMatchKindsAndNil(t *testing.T) {
	now := time.Now()
	r := row{"status": "CONFIRMED", "count": int64(3), "at": now, "flag": true, "missing": nil}

	cases := []struct {
		p    Predicate
		want bool
	}{
		{Eq("status", "CONFIRMED"), true},
		{Eq("status", "confirmed"), false},
		{Gte("count", 3.0), true},
		{Gt("count", 3), false},
		{Lt("at", now.Add(time.Second)), true},
		{Eq("flag", true), true},
		{Eq("missing", "x"), false},
		{Eq("status", 1), false},
		{In("status", "PENDING", "CONFIRMED"), true},
		{And{}, true},
		{Or{}, false},
	}
	for i, c := range cases {
		if got := Match(c.p, r); got != c.want {
			t.Errorf("case %d: got %v want %v", i, got, c.want)
		}
	}
}

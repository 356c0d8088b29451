package query

import (
	"reflect"
	"testing"
)

var listingMapping = Mapping{
	Columns: map[string]string{
		"status": "l.approval_status",
		"price":  "l.price",
		"title":  "l.title",
		"id":     "l.id",
		"kind":   "l.kind",
	},
	Relations: map[string]Relation{
		"owner": {
			From:    "users o",
			On:      "o.id = l.owner_id",
			Columns: map[string]string{"name": "o.name", "email": "o.email"},
		},
	},
}

func TestCompile(t *testing.T) {
	tests := []struct {
		name string
		pred Predicate
		next int
		sql  string
		args []any
	}{
		{
			name: "empty",
			pred: All(),
			next: 1,
			sql:  "TRUE",
		},
		{
			name: "conjunction",
			pred: And{Eq("status", "APPROVED"), Gte("price", 1000.0), Lte("price", 3000.0)},
			next: 1,
			sql:  "(l.approval_status = $1) AND (l.price >= $2) AND (l.price <= $3)",
			args: []any{"APPROVED", 1000.0, 3000.0},
		},
		{
			name: "related search",
			pred: Or{Contains("title", "lake"), Rel("owner", Or{Contains("name", "ann"), Contains("email", "ann")})},
			next: 3,
			sql:  "(l.title ILIKE $3) OR (EXISTS (SELECT 1 FROM users o WHERE o.id = l.owner_id AND ((o.name ILIKE $4) OR (o.email ILIKE $5))))",
			args: []any{"%lake%", "%ann%", "%ann%"},
		},
		{
			name: "in list",
			pred: In("kind", "property", "tour"),
			next: 1,
			sql:  "l.kind = ANY($1)",
			args: []any{[]string{"property", "tour"}},
		},
		{
			name: "empty or",
			pred: Or{},
			next: 1,
			sql:  "FALSE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := Compile(tt.pred, listingMapping, tt.next)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if sql != tt.sql {
				t.Errorf("sql:\n got %s\nwant %s", sql, tt.sql)
			}
			if len(args) != len(tt.args) || (len(args) > 0 && !reflect.DeepEqual(args, tt.args)) {
				t.Errorf("args: got %#v want %#v", args, tt.args)
			}
		})
	}
}

func TestCompileUnknownField(t *testing.T) {
	if _, _, err := Compile(Eq("nope", 1), listingMapping, 1); err == nil {
		t.Fatal("expected error for unknown field")
	}
	if _, _, err := Compile(Rel("guide", All()), listingMapping, 1); err == nil {
		t.Fatal("expected error for unknown relation")
	}
}

func TestCompileEscapesLike(t *testing.T) {
	_, args, err := Compile(Contains("title", `50%_off\`), listingMapping, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := args[0], `%50\%\_off\\%`; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestOrderByAndResolve(t *testing.T) {
	sorts := Sorts{
		Default: "newest",
		Keys: map[string][]Order{
			"newest":    {{Field: "id", Desc: true}},
			"price_low": {{Field: "price"}},
		},
	}

	got, err := OrderBy(sorts.Resolve("price_low"), listingMapping)
	if err != nil {
		t.Fatal(err)
	}
	if want := "l.price ASC NULLS LAST, l.id ASC NULLS LAST"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}

	fallback := sorts.Resolve("bogus")
	if len(fallback) != 1 || fallback[0].Field != "id" || !fallback[0].Desc {
		t.Fatalf("unexpected fallback order %#v", fallback)
	}
	if sorts.Key("bogus") != "newest" {
		t.Fatalf("expected fallback key newest, got %s", sorts.Key("bogus"))
	}
}

package fetch

import (
	"context"
	"errors"
	"testing"

	"safar/internal/collection"
	"safar/internal/params"
	"safar/internal/query"
)

type stay struct {
	ID    int64
	Price float64
	City  string
}

func (s stay) EntityID() int64             { return s.ID }
func (s stay) WithID(id int64) stay        { s.ID = id; return s }
func (s stay) Apply(collection.Patch) stay { return s }
func (s stay) Field(name string) (any, bool) {
	switch name {
	case "id":
		return s.ID, true
	case "price":
		return s.Price, true
	case "city":
		return s.City, true
	}
	return nil, false
}

func TestRunPagesConcatenateToFullSet(t *testing.T) {
	var seed []stay
	for i := 0; i < 47; i++ {
		city := "Pokhara"
		if i%3 == 0 {
			city = "Kathmandu"
		}
		// prices repeat so the id tie-break matters
		seed = append(seed, stay{Price: float64(1000 + (i%7)*100), City: city})
	}
	mem := collection.NewMemory(seed...)
	where := query.Eq("city", "Pokhara")
	order := []query.Order{{Field: "price"}, {Field: "id"}}

	full, err := mem.Find(context.Background(), collection.FindOptions{Where: where, Order: order})
	if err != nil {
		t.Fatal(err)
	}
	n := len(full)
	const limit = 10

	var got []stay
	pages := (n + limit - 1) / limit
	for p := 1; p <= pages; p++ {
		page, err := Run[stay](context.Background(), mem, Request{
			Where:      where,
			Order:      order,
			Pagination: params.New(p, limit),
		})
		if err != nil {
			t.Fatal(err)
		}
		want := min(limit, n-(p-1)*limit)
		if len(page.Rows) != want {
			t.Fatalf("page %d: %d rows, want %d", p, len(page.Rows), want)
		}
		if page.Pagination.Total != n || page.Pagination.TotalPages != pages {
			t.Fatalf("page %d: bad meta %+v", p, page.Pagination)
		}
		got = append(got, page.Rows...)
	}

	if len(got) != n {
		t.Fatalf("concatenated %d rows, want %d", len(got), n)
	}
	seen := map[int64]bool{}
	for i := range got {
		if got[i].ID != full[i].ID {
			t.Fatalf("row %d: id %d, want %d", i, got[i].ID, full[i].ID)
		}
		if seen[got[i].ID] {
			t.Fatalf("row %d seen twice", got[i].ID)
		}
		seen[got[i].ID] = true
	}
}

func TestRunEmptyResultIsNotNil(t *testing.T) {
	mem := collection.NewMemory[stay]()
	page, err := Run[stay](context.Background(), mem, Request{Pagination: params.New(1, 20)})
	if err != nil {
		t.Fatal(err)
	}
	if page.Rows == nil || len(page.Rows) != 0 || page.Pagination.Total != 0 {
		t.Fatalf("unexpected page %+v", page)
	}
}

type failingCount struct {
	*collection.Memory[stay]
}

var errBoom = errors.New("boom")

func (failingCount) Count(context.Context, query.Predicate) (int, error) { return 0, errBoom }

func TestRunPropagatesErrors(t *testing.T) {
	src := failingCount{collection.NewMemory(stay{Price: 1})}
	_, err := Run[stay](context.Background(), src, Request{Pagination: params.New(1, 20)})
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected errBoom, got %v", err)
	}
}

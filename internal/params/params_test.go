package params

import (
	"math"
	"net/url"
	"strconv"
	"testing"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		query       string
		page, limit int
		offset      int
	}{
		{"", 1, DefaultLimit, 0},
		{"page=3&limit=10", 3, 10, 20},
		{"page=0&limit=-5", 1, DefaultLimit, 0},
		{"page=abc&limit=xyz", 1, DefaultLimit, 0},
		{"page=2&limit=1000", 2, MaxLimit, MaxLimit},
	}

	for _, tt := range tests {
		q, _ := url.ParseQuery(tt.query)
		p := ParsePagination(q)
		if p.Page != tt.page || p.Limit != tt.limit || p.Offset != tt.offset {
			t.Errorf("%q: got page=%d limit=%d offset=%d", tt.query, p.Page, p.Limit, p.Offset)
		}
	}
}

func TestComputeMeta(t *testing.T) {
	p := New(2, 10)
	p.ComputeMeta(25)
	if p.TotalPages != 3 || !p.HasNext || !p.HasPrev || p.Total != 25 {
		t.Fatalf("unexpected meta %+v", p)
	}

	last := New(3, 10)
	last.ComputeMeta(25)
	if last.HasNext {
		t.Fatal("last page should not have next")
	}

	empty := New(1, 10)
	empty.ComputeMeta(0)
	if empty.TotalPages != 0 || empty.HasNext || empty.HasPrev {
		t.Fatalf("unexpected empty meta %+v", empty)
	}
}

func TestHugePageStaysPastTheEnd(t *testing.T) {
	q := url.Values{"page": {strconv.Itoa(math.MaxInt)}, "limit": {"20"}}
	p := ParsePagination(q)
	if p.Offset < 0 {
		t.Fatalf("offset wrapped to %d", p.Offset)
	}
	if p.Page != math.MaxInt/20 {
		t.Fatalf("page = %d, want %d", p.Page, math.MaxInt/20)
	}

	p.ComputeMeta(25)
	if p.HasNext || !p.HasPrev || p.TotalPages != 2 {
		t.Fatalf("unexpected meta %+v", p)
	}
}

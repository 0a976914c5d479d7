package catalog

import (
	"encoding/json"
	"fmt"
	"testing"
)

func makeProducts(n int) []Product {
	out := make([]Product, 0, n)
	for i := range n {
		out = append(out, Product{ID: fmt.Sprintf("p%d", i+1), Title: "t", Price: "$1.00"})
	}
	return out
}

func TestPaginate_Windows(t *testing.T) {
	t.Parallel()

	all := makeProducts(10)
	cases := []struct {
		page      int
		wantFirst string
		wantLen   int
	}{
		{page: 1, wantFirst: "p1", wantLen: 8},
		{page: 2, wantFirst: "p9", wantLen: 2},
		{page: 3, wantLen: 0},
	}
	for _, tc := range cases {
		l := Paginate(Shoes, all, tc.page)
		if len(l.Products) != tc.wantLen {
			t.Fatalf("page %d: unexpected product count: %d", tc.page, len(l.Products))
		}
		if tc.wantLen > 0 && l.Products[0].ID != tc.wantFirst {
			t.Fatalf("page %d: unexpected first product: %q", tc.page, l.Products[0].ID)
		}
		if l.TotalPages != 2 || l.TotalProducts != 10 || l.Page != tc.page {
			t.Fatalf("page %d: unexpected listing metadata: %+v", tc.page, l)
		}
	}
}

func TestPaginate_WindowsAreContiguous(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 1, 7, 8, 9, 16, 17, 40} {
		all := makeProducts(n)
		seen := 0
		for page := 1; page <= TotalPages(n); page++ {
			l := Paginate(Travel, all, page)
			for i, p := range l.Products {
				if want := all[seen+i].ID; p.ID != want {
					t.Fatalf("n=%d page=%d: got %s want %s", n, page, p.ID, want)
				}
			}
			seen += len(l.Products)
		}
		if seen != n {
			t.Fatalf("n=%d: pages covered %d products", n, seen)
		}
	}
}

func TestPaginate_AllPages(t *testing.T) {
	t.Parallel()

	l := Paginate(Merch, makeProducts(12), AllPages)
	if len(l.Products) != 12 || l.Page != 1 || l.TotalPages != 2 {
		t.Fatalf("unexpected unpaged listing: page=%d totalPages=%d len=%d", l.Page, l.TotalPages, len(l.Products))
	}
}

func TestPaginate_NegativePageIsFirst(t *testing.T) {
	t.Parallel()

	l := Paginate(Merch, makeProducts(3), -4)
	if l.Page != 1 || len(l.Products) != 3 {
		t.Fatalf("unexpected listing: %+v", l)
	}
}

func TestWhole_CapsTotalPages(t *testing.T) {
	t.Parallel()

	l := Whole(Pants, makeProducts(20))
	if l.TotalPages != 1 || l.Page != 1 || len(l.Products) != 20 || l.TotalProducts != 20 {
		t.Fatalf("unexpected whole listing: %+v", l)
	}
	if l := Whole(Pants, nil); l.TotalPages != 0 {
		t.Fatalf("expected zero pages for empty set, got %d", l.TotalPages)
	}
}

func TestEmpty_MarshalsEmptyArray(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(Empty("bogus"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"category":"bogus","products":[],"page":1,"totalPages":0,"totalProducts":0}`
	if string(b) != want {
		t.Fatalf("unexpected json: %s", b)
	}
}

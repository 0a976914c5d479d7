package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"souvenirspartan/internal/catalog"
	"souvenirspartan/internal/config"
	"souvenirspartan/internal/products"
)

type fakeSource struct {
	byCategory map[catalog.Category][]catalog.Product
	err        error
}

func (f *fakeSource) Name() string  { return "local" }
func (f *fakeSource) Label() string { return "local" }

func (f *fakeSource) List(_ context.Context, c catalog.Category, page int) (catalog.Listing, error) {
	if f.err != nil {
		return catalog.Listing{}, f.err
	}
	return catalog.Paginate(c, f.byCategory[c], page), nil
}

func full() map[catalog.Category][]catalog.Product {
	m := map[catalog.Category][]catalog.Product{}
	for _, c := range catalog.Categories {
		m[c] = []catalog.Product{{ID: "1", Title: "Thing", ProductURL: "https://example.com"}}
	}
	return m
}

func TestVerify_AllCategoriesPass(t *testing.T) {
	var out bytes.Buffer
	r := products.NewRouter(config.Routing{}, products.Sources{Local: &fakeSource{byCategory: full()}})

	if failed := verify(context.Background(), &out, r); len(failed) != 0 {
		t.Fatalf("expected no failures, got %v\n%s", failed, out.String())
	}
	if !strings.Contains(out.String(), "Config: all categories: local") {
		t.Fatalf("missing config line:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "shoes: 1 products (local)") {
		t.Fatalf("missing category line:\n%s", out.String())
	}
}

func TestVerify_ReportsMissingData(t *testing.T) {
	data := full()
	delete(data, catalog.Travel)
	data[catalog.Merch] = []catalog.Product{{ID: "m", Title: "No links"}}

	var out bytes.Buffer
	r := products.NewRouter(config.Routing{}, products.Sources{Local: &fakeSource{byCategory: data}})
	failed := verify(context.Background(), &out, r)

	if len(failed) != 2 || failed[0] != catalog.Merch || failed[1] != catalog.Travel {
		t.Fatalf("unexpected failures %v", failed)
	}
	if !strings.Contains(out.String(), "travel: 0 products (local) - MISSING DATA") {
		t.Fatalf("missing failure line:\n%s", out.String())
	}
}

func TestVerify_SourceErrors(t *testing.T) {
	var out bytes.Buffer
	r := products.NewRouter(config.Routing{}, products.Sources{Local: &fakeSource{err: errors.New("corrupt")}})
	if failed := verify(context.Background(), &out, r); len(failed) != len(catalog.Categories) {
		t.Fatalf("expected every category to fail, got %v", failed)
	}
	if !strings.Contains(out.String(), "shoes: ERROR - corrupt") {
		t.Fatalf("missing error line:\n%s", out.String())
	}
}

// Command verifysources lists page 1 of every category through the configured
// sources and exits non-zero when any category comes back without usable products.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"souvenirspartan/internal/catalog"
	"souvenirspartan/internal/config"
	"souvenirspartan/internal/products"
)

type router interface {
	Resolve(category catalog.Category) products.Source
	Listing(ctx context.Context, raw string, page int) (catalog.Listing, error)
	Describe() string
}

func main() {
	var timeout time.Duration
	flag.DurationVar(&timeout, "timeout", 30*time.Second, "overall time limit for the check")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	r, _, err := products.New(cfg)
	if err != nil {
		log.Fatalf("failed to create product router: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	failed := verify(ctx, os.Stdout, r)
	if len(failed) > 0 {
		os.Exit(1)
	}
}

// verify returns the categories whose first page has no product with a title and a link or image.
func verify(ctx context.Context, w io.Writer, r router) []catalog.Category {
	fmt.Fprintln(w, "Product pipeline check - all categories")
	fmt.Fprintln(w, "Config:", r.Describe())
	fmt.Fprintln(w)

	var failed []catalog.Category
	for _, category := range catalog.Categories {
		src := r.Resolve(category)
		listing, err := r.Listing(ctx, string(category), 1)
		if err != nil {
			fmt.Fprintf(w, "%s: ERROR - %v\n", category, err)
			failed = append(failed, category)
			continue
		}
		ok := usable(listing.Products)
		suffix := ""
		if !ok {
			suffix = " - MISSING DATA"
			failed = append(failed, category)
		}
		fmt.Fprintf(w, "%s: %d products (%s)%s\n", category, len(listing.Products), src.Label(), suffix)
	}

	fmt.Fprintln(w)
	if len(failed) > 0 {
		names := make([]string, len(failed))
		for i, c := range failed {
			names[i] = string(c)
		}
		fmt.Fprintln(w, "Categories with no/fake data:", strings.Join(names, ", "))
		fmt.Fprintln(w, "For Walmart-only: set AMAZON_CATEGORIES= (empty) and WALMART_CATEGORIES=shoes,shirts,pants,merch,travel,collectables")
		return failed
	}
	fmt.Fprintf(w, "All %d categories have real products.\n", len(catalog.Categories))
	return nil
}

func usable(ps []catalog.Product) bool {
	if len(ps) == 0 {
		return false
	}
	first := ps[0]
	return first.Title != "" && (first.ImageURL != "" || first.ProductURL != "")
}

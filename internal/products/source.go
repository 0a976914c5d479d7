// Package products routes each category to one product source and serves the
// listing and detail API on top of it.
package products

import (
	"context"

	"souvenirspartan/internal/catalog"
)

// Source lists one page of a category. Adapters that can fail softly return an empty
// listing and a nil error; only unexpected failures come back as errors.
type Source interface {
	Name() string
	Label() string
	List(ctx context.Context, category catalog.Category, page int) (catalog.Listing, error)
}

// Lookup is implemented by sources that resolve a single product more cheaply than a full listing.
type Lookup interface {
	ProductByID(ctx context.Context, category catalog.Category, id string) (*catalog.Product, error)
}

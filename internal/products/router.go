package products

import (
	"context"
	"fmt"
	"strings"

	"souvenirspartan/internal/amazon"
	"souvenirspartan/internal/catalog"
	"souvenirspartan/internal/config"
	"souvenirspartan/internal/fixtures"
	"souvenirspartan/internal/walmart"

	"github.com/samber/lo"
)

type Sources struct {
	Local       Source
	Amazon      Source
	AmazonProxy Source
	Walmart     Source
}

type Router struct {
	routing config.Routing
	sources Sources
	walmart map[catalog.Category]bool
	amazon  map[catalog.Category]bool
}

func NewRouter(routing config.Routing, sources Sources) *Router {
	return &Router{
		routing: routing,
		sources: sources,
		walmart: lo.SliceToMap(routing.WalmartCategories, func(c catalog.Category) (catalog.Category, bool) { return c, true }),
		amazon:  lo.SliceToMap(routing.AmazonCategories, func(c catalog.Category) (catalog.Category, bool) { return c, true }),
	}
}

// New wires every adapter from configuration. The fixture store is returned so callers can
// register its readiness check.
func New(cfg *config.Config) (*Router, fixtures.Store, error) {
	store, err := fixtures.MakeStore(cfg.Fixtures)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create fixture store: %w", err)
	}
	wm, err := walmart.New(cfg)
	if err != nil {
		return nil, nil, err
	}
	proxy, err := amazon.NewProxy(cfg)
	if err != nil {
		return nil, nil, err
	}
	return NewRouter(cfg.Routing(), Sources{
		Local:       fixtures.NewSource(store, cfg.Fixtures.Readers),
		Amazon:      amazon.NewNative(cfg),
		AmazonProxy: proxy,
		Walmart:     wm,
	}), store, nil
}

// Resolve picks the source for a category. Order matters: explicit Walmart, explicit Amazon
// (native before proxy), implicit Walmart, then local fixtures.
func (r *Router) Resolve(category catalog.Category) Source {
	switch {
	case r.walmart[category] && r.routing.HasProxyKey:
		return r.sources.Walmart
	case r.amazon[category] && r.routing.HasAmazonKeys:
		return r.sources.Amazon
	case r.amazon[category] && r.routing.HasProxyKey:
		return r.sources.AmazonProxy
	case r.routing.HasProxyKey && !r.amazon[category]:
		return r.sources.Walmart
	default:
		return r.sources.Local
	}
}

// Listing never fails for an unknown category; it answers with an empty listing instead.
func (r *Router) Listing(ctx context.Context, raw string, page int) (catalog.Listing, error) {
	category, ok := catalog.ParseCategory(raw)
	if !ok {
		return catalog.Empty(category), nil
	}
	return r.Resolve(category).List(ctx, category, page)
}

// Product returns nil when the category is unknown, the id is blank or nothing matches.
func (r *Router) Product(ctx context.Context, raw, id string) (*catalog.Product, error) {
	category, ok := catalog.ParseCategory(raw)
	id = strings.TrimSpace(id)
	if !ok || id == "" {
		return nil, nil
	}
	src := r.Resolve(category)
	if l, ok := src.(Lookup); ok {
		return l.ProductByID(ctx, category, id)
	}
	listing, err := src.List(ctx, category, catalog.AllPages)
	if err != nil {
		return nil, err
	}
	return catalog.Find(listing.Products, id), nil
}

// Describe summarizes routing for startup logs and /api/sources.
func (r *Router) Describe() string {
	routes := r.Routes()
	labels := lo.Uniq(lo.Map(catalog.Categories, func(c catalog.Category, _ int) string { return routes[c] }))
	if len(labels) == 1 {
		return "all categories: " + labels[0]
	}

	local := r.sources.Local.Label()
	var parts []string
	for _, label := range labels {
		if label == local {
			continue
		}
		cats := lo.Filter(catalog.Categories, func(c catalog.Category, _ int) bool { return routes[c] == label })
		names := lo.Map(cats, func(c catalog.Category, _ int) string { return string(c) })
		parts = append(parts, fmt.Sprintf("categories [%s]: %s", strings.Join(names, ", "), label))
	}
	if lo.Contains(labels, local) {
		parts = append(parts, "others: "+local)
	}
	return strings.Join(parts, "; ")
}

// Routes maps every category to the name of the source serving it.
func (r *Router) Routes() map[catalog.Category]string {
	return lo.SliceToMap(catalog.Categories, func(c catalog.Category) (catalog.Category, string) {
		return c, r.Resolve(c).Name()
	})
}

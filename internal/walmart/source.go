// Package walmart serves Walmart products through the Axesso RapidAPI proxy.
package walmart

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"souvenirspartan/internal/catalog"
	"souvenirspartan/internal/config"
	"souvenirspartan/internal/rapidapi"
)

const (
	Name = "walmart-axesso"

	partnerParam = "wmlspartner"
)

type searcher interface {
	HasKey() bool
	Get(ctx context.Context, path string, params url.Values) ([]byte, error)
}

type Options struct {
	SearchPath string
	PartnerID  string
	// MaxItems caps how many upstream items are normalized; <= 0 means no cap.
	MaxItems int
}

type Source struct {
	client searcher
	opts   Options
}

// New builds the Walmart source from configuration. A missing RapidAPI key is not an error;
// the source then answers every call with an empty listing.
func New(cfg *config.Config) (*Source, error) {
	client, err := rapidapi.NewClient(rapidapi.Options{
		APIKey:  cfg.Axesso.APIKey,
		Host:    cfg.Walmart.Host,
		BaseURL: cfg.Walmart.BaseURL,
		Timeout: cfg.UpstreamTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("create walmart rapidapi client: %w", err)
	}
	return NewSource(client, Options{
		SearchPath: cfg.Walmart.SearchPath,
		PartnerID:  cfg.Walmart.PartnerID,
		MaxItems:   cfg.Walmart.MaxItems,
	}), nil
}

func NewSource(client searcher, opts Options) *Source {
	if opts.SearchPath == "" {
		opts.SearchPath = "/wlm/walmart-search-by-keyword"
	}
	return &Source{client: client, opts: opts}
}

func (s *Source) Name() string { return Name }

func (s *Source) Label() string { return "Walmart (RapidAPI)" }

// List never fails: upstream problems are logged and become an empty listing.
func (s *Source) List(ctx context.Context, category catalog.Category, page int) (catalog.Listing, error) {
	if !s.client.HasKey() {
		return catalog.Empty(category), nil
	}
	products, err := s.search(ctx, category)
	if err != nil {
		slog.WarnContext(ctx, "walmart search failed, serving empty listing", "category", category, "error", err)
		return catalog.Empty(category), nil
	}
	return catalog.Paginate(category, products, page), nil
}

// ProductByID scans the whole normalized result set for id.
func (s *Source) ProductByID(ctx context.Context, category catalog.Category, id string) (*catalog.Product, error) {
	if !s.client.HasKey() {
		return nil, nil
	}
	products, err := s.search(ctx, category)
	if err != nil {
		slog.WarnContext(ctx, "walmart lookup failed", "category", category, "id", id, "error", err)
		return nil, nil
	}
	return catalog.Find(products, id), nil
}

// search always asks for upstream page 1 so that client-side pages stay contiguous.
func (s *Source) search(ctx context.Context, category catalog.Category) ([]catalog.Product, error) {
	params := url.Values{}
	params.Set("keyword", catalog.ProxyKeywords(category))
	params.Set("page", "1")

	body, err := s.client.Get(ctx, s.opts.SearchPath, params)
	if err != nil {
		return nil, err
	}
	return MapProducts(body, s.opts.PartnerID, s.opts.MaxItems), nil
}

// Package amazon serves Amazon products either natively through the Product
// Advertising API 5.0 or through the Axesso RapidAPI proxy.
package amazon

import (
	"context"
	"fmt"
	"log/slog"

	"souvenirspartan/internal/catalog"
	"souvenirspartan/internal/config"

	"github.com/samber/lo"
)

const (
	Name = "amazon"

	tagParam = "tag"
)

// nativeKeywords are short PA-API search phrases; the proxy uses the longer catalog.ProxyKeywords.
var nativeKeywords = map[catalog.Category]string{
	catalog.Shoes:        "men's dress shoes",
	catalog.Shirts:       "men's polo shirt",
	catalog.Pants:        "men's dress slacks",
	catalog.Merch:        "leather briefcase men's accessories",
	catalog.Travel:       "travel duffel bag",
	catalog.Collectables: "collectible figurine",
}

type itemSearcher interface {
	Configured() bool
	PartnerTag() string
	SearchItems(ctx context.Context, keywords string) (*SearchItemsResponse, error)
}

// NativeSource answers every category with one PA-API result page presented as a single listing page.
type NativeSource struct {
	client itemSearcher
}

func NewNative(cfg *config.Config) *NativeSource {
	return NewNativeSource(NewClient(ClientOptions{
		AccessKey:   cfg.Amazon.AccessKey,
		SecretKey:   cfg.Amazon.SecretKey,
		PartnerTag:  cfg.Amazon.AssociateTag,
		Region:      cfg.Amazon.Region,
		Host:        cfg.Amazon.Host,
		Marketplace: cfg.Amazon.Marketplace,
		BaseURL:     cfg.Amazon.BaseURL,
		Timeout:     cfg.UpstreamTimeout,
	}))
}

func NewNativeSource(client itemSearcher) *NativeSource {
	return &NativeSource{client: client}
}

func (s *NativeSource) Name() string { return Name }

func (s *NativeSource) Label() string { return "Amazon (PA-API)" }

// List ignores page; PA-API results are always returned whole.
func (s *NativeSource) List(ctx context.Context, category catalog.Category, _ int) (catalog.Listing, error) {
	products, err := s.search(ctx, category)
	if err != nil {
		slog.WarnContext(ctx, "amazon search failed, serving empty listing", "category", category, "error", err)
		return catalog.Empty(category), nil
	}
	return catalog.Whole(category, products), nil
}

func (s *NativeSource) ProductByID(ctx context.Context, category catalog.Category, id string) (*catalog.Product, error) {
	products, err := s.search(ctx, category)
	if err != nil {
		slog.WarnContext(ctx, "amazon lookup failed", "category", category, "id", id, "error", err)
		return nil, nil
	}
	return catalog.Find(products, id), nil
}

func (s *NativeSource) search(ctx context.Context, category catalog.Category) ([]catalog.Product, error) {
	if !s.client.Configured() {
		return nil, fmt.Errorf("amazon PA-API credentials missing")
	}
	keywords, ok := nativeKeywords[category]
	if !ok {
		keywords = string(category)
	}
	resp, err := s.client.SearchItems(ctx, keywords)
	if err != nil {
		return nil, err
	}
	if resp == nil || resp.SearchResult == nil {
		return []catalog.Product{}, nil
	}
	return MapItems(resp.SearchResult.Items, s.client.PartnerTag()), nil
}

// MapItems normalizes PA-API items, tagging product links with the associate tag.
func MapItems(items []Item, partnerTag string) []catalog.Product {
	return lo.Map(items, func(item Item, i int) catalog.Product {
		p := catalog.Product{
			ID:         item.ASIN,
			Title:      item.title(),
			Price:      item.price(),
			ImageURL:   item.image(),
			ProductURL: catalog.Tag(item.DetailPageURL, tagParam, partnerTag),
		}
		return catalog.Finalize(p, Name, i)
	})
}

func (it Item) title() string {
	if it.ItemInfo == nil || it.ItemInfo.Title == nil {
		return ""
	}
	return it.ItemInfo.Title.DisplayValue
}

func (it Item) price() catalog.Price {
	if it.Offers == nil || len(it.Offers.Listings) == 0 || it.Offers.Listings[0].Price == nil {
		return catalog.PriceVaries
	}
	if d := it.Offers.Listings[0].Price.DisplayAmount; d != "" {
		return catalog.Price(d)
	}
	return catalog.PriceVaries
}

func (it Item) image() string {
	if it.Images == nil || it.Images.Primary == nil {
		return ""
	}
	for _, img := range []*Image{it.Images.Primary.Medium, it.Images.Primary.Large} {
		if img != nil && img.URL != "" {
			return img.URL
		}
	}
	return ""
}

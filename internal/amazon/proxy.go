package amazon

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"souvenirspartan/internal/catalog"
	"souvenirspartan/internal/config"
	"souvenirspartan/internal/rapidapi"

	"github.com/samber/lo"
	"github.com/tidwall/gjson"
)

const (
	ProxyName = "amazon-axesso"

	proxySearchPath = "/amz/amazon-search"
)

var proxyShapes = []rapidapi.Shape{
	rapidapi.Path("searchResults.products"),
	rapidapi.Path("products"),
	rapidapi.Path("items"),
	rapidapi.TopLevelArray,
}

type searcher interface {
	HasKey() bool
	Get(ctx context.Context, path string, params url.Values) ([]byte, error)
}

// ProxySource serves Amazon search results fetched through the Axesso RapidAPI proxy.
type ProxySource struct {
	client   searcher
	tag      string
	maxItems int
}

func NewProxy(cfg *config.Config) (*ProxySource, error) {
	client, err := rapidapi.NewClient(rapidapi.Options{
		APIKey:  cfg.Axesso.APIKey,
		Host:    cfg.Axesso.Host,
		BaseURL: cfg.Axesso.BaseURL,
		Timeout: cfg.UpstreamTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("create amazon rapidapi client: %w", err)
	}
	return NewProxySource(client, cfg.ProxyTag(), cfg.Axesso.MaxItems), nil
}

func NewProxySource(client searcher, tag string, maxItems int) *ProxySource {
	return &ProxySource{client: client, tag: tag, maxItems: maxItems}
}

func (s *ProxySource) Name() string { return ProxyName }

func (s *ProxySource) Label() string { return "Amazon (RapidAPI)" }

func (s *ProxySource) List(ctx context.Context, category catalog.Category, page int) (catalog.Listing, error) {
	if !s.client.HasKey() {
		return catalog.Empty(category), nil
	}
	products, err := s.search(ctx, category)
	if err != nil {
		slog.WarnContext(ctx, "amazon proxy search failed, serving empty listing", "category", category, "error", err)
		return catalog.Empty(category), nil
	}
	return catalog.Paginate(category, products, page), nil
}

func (s *ProxySource) ProductByID(ctx context.Context, category catalog.Category, id string) (*catalog.Product, error) {
	if !s.client.HasKey() {
		return nil, nil
	}
	products, err := s.search(ctx, category)
	if err != nil {
		slog.WarnContext(ctx, "amazon proxy lookup failed", "category", category, "id", id, "error", err)
		return nil, nil
	}
	return catalog.Find(products, id), nil
}

func (s *ProxySource) search(ctx context.Context, category catalog.Category) ([]catalog.Product, error) {
	params := url.Values{}
	params.Set("keyword", catalog.ProxyKeywords(category))
	params.Set("domainCode", "us")

	body, err := s.client.Get(ctx, proxySearchPath, params)
	if err != nil {
		return nil, err
	}
	return MapProxyProducts(body, s.tag, s.maxItems), nil
}

// MapProxyProducts normalizes an Axesso Amazon search response.
func MapProxyProducts(body []byte, tag string, maxItems int) []catalog.Product {
	items := rapidapi.Cap(rapidapi.Items(body, proxyShapes...), maxItems)
	return lo.Map(items, func(item gjson.Result, i int) catalog.Product {
		asin := rapidapi.String(item, "asin", "ASIN", "id")
		link := rapidapi.String(item, "url", "link", "productUrl", "detailPageURL")
		if link == "" && asin != "" {
			link = "https://www.amazon.com/dp/" + url.PathEscape(asin)
		}
		p := catalog.Product{
			ID:         asin,
			Title:      rapidapi.String(item, "title", "productTitle", "name"),
			Price:      proxyPrice(item),
			ImageURL:   rapidapi.Image(item, "imageUrl", "image", "img", "mainImage", "thumbnail"),
			ProductURL: catalog.Tag(link, tagParam, tag),
		}
		return catalog.Finalize(p, "axesso", i)
	})
}

func proxyPrice(item gjson.Result) catalog.Price {
	v := rapidapi.Present(item, "price.raw", "price", "listPrice", "formattedPrice")
	switch {
	case v.Type == gjson.String && strings.TrimSpace(v.Str) != "":
		return catalog.Price(strings.TrimSpace(v.Str))
	case v.Type == gjson.Number:
		return catalog.FormatPrice(v.Float())
	case v.IsObject():
		if d := v.Get("displayAmount"); d.Type == gjson.String && d.Str != "" {
			return catalog.Price(d.Str)
		}
	}
	return catalog.PriceVaries
}

package amazon

import (
	"context"
	"errors"
	"testing"

	"souvenirspartan/internal/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeItems struct {
	configured bool
	resp       *SearchItemsResponse
	err        error
	keywords   []string
}

func (f *fakeItems) Configured() bool   { return f.configured }
func (f *fakeItems) PartnerTag() string { return "spartan-20" }

func (f *fakeItems) SearchItems(_ context.Context, keywords string) (*SearchItemsResponse, error) {
	f.keywords = append(f.keywords, keywords)
	return f.resp, f.err
}

func sampleItems() []Item {
	return []Item{
		{
			ASIN:          "B0SHOE",
			DetailPageURL: "https://www.amazon.com/dp/B0SHOE",
			ItemInfo:      &ItemInfo{Title: &DisplayValue{DisplayValue: "Oxford"}},
			Offers:        &Offers{Listings: []OfferListing{{Price: &OfferPrice{DisplayAmount: "$89.99"}}}},
			Images:        &Images{Primary: &ImageSet{Large: &Image{URL: "https://img/large.jpg"}}},
		},
		{},
	}
}

func TestMapItems(t *testing.T) {
	t.Parallel()

	products := MapItems(sampleItems(), "spartan-20")
	require.Len(t, products, 2)

	assert.Equal(t, catalog.Product{
		ID:         "B0SHOE",
		Title:      "Oxford",
		Price:      "$89.99",
		ImageURL:   "https://img/large.jpg",
		ProductURL: "https://www.amazon.com/dp/B0SHOE?tag=spartan-20",
	}, products[0])

	assert.Equal(t, "amazon-1", products[1].ID)
	assert.Equal(t, "Product", products[1].Title)
	assert.Equal(t, catalog.PriceVaries, products[1].Price)
	assert.Empty(t, products[1].ProductURL)
}

func TestNativeList_WholeResultSet(t *testing.T) {
	t.Parallel()

	fake := &fakeItems{configured: true, resp: &SearchItemsResponse{SearchResult: &SearchResult{Items: sampleItems()}}}
	listing, err := NewNativeSource(fake).List(context.Background(), catalog.Shoes, 3)
	require.NoError(t, err)

	assert.Equal(t, []string{"men's dress shoes"}, fake.keywords)
	assert.Equal(t, 1, listing.Page)
	assert.Equal(t, 1, listing.TotalPages)
	assert.Equal(t, 2, listing.TotalProducts)
	assert.Len(t, listing.Products, 2)
}

func TestNativeList_DegradesToEmpty(t *testing.T) {
	t.Parallel()

	for name, fake := range map[string]*fakeItems{
		"missing credentials": {},
		"upstream error":      {configured: true, err: errors.New("boom")},
		"no search result":    {configured: true, resp: &SearchItemsResponse{}},
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			listing, err := NewNativeSource(fake).List(context.Background(), catalog.Travel, 1)
			require.NoError(t, err)
			assert.Equal(t, catalog.Travel, listing.Category)
			assert.Empty(t, listing.Products)
			assert.Equal(t, 1, listing.Page)
		})
	}
}

func TestNativeProductByID(t *testing.T) {
	t.Parallel()

	fake := &fakeItems{configured: true, resp: &SearchItemsResponse{SearchResult: &SearchResult{Items: sampleItems()}}}
	src := NewNativeSource(fake)

	p, err := src.ProductByID(context.Background(), catalog.Shoes, "B0SHOE")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Oxford", p.Title)

	p, err = src.ProductByID(context.Background(), catalog.Shoes, "missing")
	require.NoError(t, err)
	assert.Nil(t, p)
}

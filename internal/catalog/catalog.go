// Package catalog holds the canonical product shape every source normalizes into.
package catalog

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// PerPage is the fixed page size for category listings.
const PerPage = 8

// AllPages asks a source for its whole normalized result set in one listing.
const AllPages = 0

type Category string

const (
	Shoes        Category = "shoes"
	Shirts       Category = "shirts"
	Pants        Category = "pants"
	Merch        Category = "merch"
	Travel       Category = "travel"
	Collectables Category = "collectables"
)

// Categories is the closed set of storefront categories, in display order.
var Categories = []Category{Shoes, Shirts, Pants, Merch, Travel, Collectables}

// ParseCategory lowercases and trims raw. ok is false for anything outside Categories.
func ParseCategory(raw string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(raw)))
	return c, slices.Contains(Categories, c)
}

// Price is a display string. Fixtures occasionally carry bare numbers, which are formatted on decode.
type Price string

const PriceVaries Price = "Price varies"

func FormatPrice(amount float64) Price {
	return Price(fmt.Sprintf("$%.2f", amount))
}

func (p *Price) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*p = Price(s)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("price must be a string or number: %s", string(data))
	}
	*p = FormatPrice(n)
	return nil
}

type Detail struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type Product struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Price      Price  `json:"price"`
	ImageURL   string `json:"imageUrl"`
	ProductURL string `json:"productUrl"`

	// detail view only
	Summary string   `json:"summary,omitempty"`
	Sizes   []string `json:"sizes,omitempty"`
	Colors  []string `json:"colors,omitempty"`
	Details []Detail `json:"details,omitempty"`
}

// Finalize fills the defaults a normalized upstream record must carry.
// A missing id becomes "<source>-<index>" so that ids stay stable for the same upstream ordering.
func Finalize(p Product, source string, index int) Product {
	p.ID = strings.TrimSpace(p.ID)
	if p.ID == "" {
		p.ID = fmt.Sprintf("%s-%d", source, index)
	}
	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" {
		p.Title = "Product"
	}
	if strings.TrimSpace(string(p.Price)) == "" {
		p.Price = PriceVaries
	}
	return p
}

// Find returns the product with the given id, or nil.
func Find(products []Product, id string) *Product {
	for i := range products {
		if products[i].ID == id {
			p := products[i]
			return &p
		}
	}
	return nil
}

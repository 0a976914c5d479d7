package amazon

import "fmt"

// SearchItemsResponse is the subset of the PA-API SearchItems payload the storefront reads.
type SearchItemsResponse struct {
	SearchResult *SearchResult `json:"SearchResult"`
	Errors       []ErrorDetail `json:"Errors"`
}

type SearchResult struct {
	Items            []Item `json:"Items"`
	TotalResultCount int    `json:"TotalResultCount"`
}

type Item struct {
	ASIN          string    `json:"ASIN"`
	DetailPageURL string    `json:"DetailPageURL"`
	ItemInfo      *ItemInfo `json:"ItemInfo"`
	Offers        *Offers   `json:"Offers"`
	Images        *Images   `json:"Images"`
}

type ItemInfo struct {
	Title *DisplayValue `json:"Title"`
}

type DisplayValue struct {
	DisplayValue string `json:"DisplayValue"`
}

type Offers struct {
	Listings []OfferListing `json:"Listings"`
}

type OfferListing struct {
	Price *OfferPrice `json:"Price"`
}

type OfferPrice struct {
	Amount        float64 `json:"Amount"`
	Currency      string  `json:"Currency"`
	DisplayAmount string  `json:"DisplayAmount"`
}

type Images struct {
	Primary *ImageSet `json:"Primary"`
}

type ImageSet struct {
	Small  *Image `json:"Small"`
	Medium *Image `json:"Medium"`
	Large  *Image `json:"Large"`
}

type Image struct {
	URL    string `json:"URL"`
	Height int    `json:"Height"`
	Width  int    `json:"Width"`
}

type ErrorDetail struct {
	Code    string `json:"Code"`
	Message string `json:"Message"`
}

// APIError captures a non-2xx PA-API response.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Code == "" {
		return fmt.Sprintf("PA-API request failed: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("PA-API request failed: status %d: %s: %s", e.StatusCode, e.Code, e.Message)
}

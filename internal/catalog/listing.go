package catalog

type Listing struct {
	Category      Category  `json:"category"`
	Products      []Product `json:"products"`
	Page          int       `json:"page"`
	TotalPages    int       `json:"totalPages"`
	TotalProducts int       `json:"totalProducts"`
}

// Empty is the listing returned for unknown categories, missing credentials and upstream failures.
func Empty(category Category) Listing {
	return Listing{
		Category: category,
		Products: []Product{},
		Page:     1,
	}
}

// TotalPages is ceil(total / PerPage).
func TotalPages(total int) int {
	if total <= 0 {
		return 0
	}
	return (total + PerPage - 1) / PerPage
}

// Paginate slices all into the requested window of PerPage products.
// page == AllPages returns every product as page 1. Pages past the end yield no products.
func Paginate(category Category, all []Product, page int) Listing {
	l := Listing{
		Category:      category,
		Products:      []Product{},
		Page:          page,
		TotalPages:    TotalPages(len(all)),
		TotalProducts: len(all),
	}
	if page == AllPages {
		l.Page = 1
		l.Products = append(l.Products, all...)
		return l
	}
	if page < 1 {
		l.Page = 1
	}
	start := (l.Page - 1) * PerPage
	if start >= len(all) {
		return l
	}
	end := min(start+PerPage, len(all))
	l.Products = append(l.Products, all[start:end]...)
	return l
}

// Whole wraps an unpaged result set as a single page.
func Whole(category Category, all []Product) Listing {
	l := Paginate(category, all, AllPages)
	l.TotalPages = min(l.TotalPages, 1)
	return l
}

package walmart

import (
	"regexp"
	"strings"

	"souvenirspartan/internal/catalog"
	"souvenirspartan/internal/rapidapi"

	"github.com/samber/lo"
	"github.com/tidwall/gjson"
)

const siteURL = "https://www.walmart.com"

var whitespace = regexp.MustCompile(`\s+`)

// itemShapes lists where Axesso deployments have been seen to put search items, most specific first.
var itemShapes = []rapidapi.Shape{
	itemStacks,
	rapidapi.Path("searchResults.products"),
	rapidapi.Path("products"),
	rapidapi.Path("items"),
	rapidapi.Path("payload.products"),
	rapidapi.TopLevelArray,
}

// itemStacks flattens the embedded page state: item.props.pageProps.initialData.searchResult.itemStacks[].items.
func itemStacks(doc gjson.Result) []gjson.Result {
	stacks := doc.Get("item.props.pageProps.initialData.searchResult.itemStacks")
	if !stacks.IsArray() {
		return nil
	}
	var items []gjson.Result
	for _, stack := range stacks.Array() {
		if v := stack.Get("items"); v.IsArray() {
			items = append(items, v.Array()...)
		}
	}
	return items
}

// MapProducts normalizes a Walmart search response into canonical products.
func MapProducts(body []byte, partnerID string, maxItems int) []catalog.Product {
	items := rapidapi.Cap(rapidapi.Items(body, itemShapes...), maxItems)
	return lo.Map(items, func(item gjson.Result, i int) catalog.Product {
		return mapItem(item, i, partnerID)
	})
}

func mapItem(item gjson.Result, i int, partnerID string) catalog.Product {
	id := rapidapi.String(item, "usItemId", "id", "itemId", "productId")

	p := catalog.Product{
		ID:         id,
		Title:      rapidapi.String(item, "name", "title", "productTitle"),
		Price:      price(item),
		ImageURL:   rapidapi.Image(item, "image", "imageUrl", "thumbnailUrl", "mediumImage"),
		ProductURL: catalog.Tag(productURL(item, id), partnerParam, partnerID),
		Summary:    rapidapi.String(item, "description", "shortDescription"),
	}
	return catalog.Finalize(p, "walmart", i)
}

func price(item gjson.Result) catalog.Price {
	display := rapidapi.Truthy(item, "priceInfo.linePriceDisplay", "priceInfo.linePrice", "priceInfo.itemPrice")
	if display.Type == gjson.String {
		return catalog.Price(display.Str)
	}
	if n := item.Get("price"); n.Type == gjson.Number {
		return catalog.FormatPrice(n.Num)
	}
	if n := item.Get("priceInfo.minPrice"); n.Type == gjson.Number {
		return catalog.FormatPrice(n.Num)
	}
	return catalog.PriceVaries
}

func productURL(item gjson.Result, id string) string {
	if u := rapidapi.String(item, "productUrl", "url", "link", "detailPageURL"); u != "" {
		return u
	}
	if canonical := rapidapi.String(item, "canonicalUrl"); canonical != "" {
		if strings.HasPrefix(canonical, "http") {
			return canonical
		}
		return siteURL + canonical
	}
	if id != "" {
		return siteURL + "/ip/" + whitespace.ReplaceAllString(id, "-")
	}
	return ""
}

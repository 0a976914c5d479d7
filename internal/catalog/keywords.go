package catalog

// proxyKeywords tunes the free-text search sent to the RapidAPI marketplaces.
var proxyKeywords = map[Category]string{
	Shoes:        "men's dress shoes casual sneakers oxford loafers",
	Shirts:       "men's graphic tees streetwear fashion shirts",
	Pants:        "men's pants trousers chinos joggers goodfellow dress casual",
	Merch:        "men's accessories watches wallets bags hats caps",
	Travel:       "travel bags backpacks luggage duffel carry-on",
	Collectables: "collectibles figurines memorabilia vintage decor",
}

// ProxyKeywords returns the search phrase for c, falling back to the category name.
func ProxyKeywords(c Category) string {
	if k, ok := proxyKeywords[c]; ok {
		return k
	}
	return string(c)
}

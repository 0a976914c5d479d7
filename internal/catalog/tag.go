package catalog

import (
	"net/url"
	"strings"
)

// Tag adds param=value to the query of rawURL unless the link already carries param.
// Empty links and empty values are returned unchanged, so tagging is idempotent.
func Tag(rawURL, param, value string) string {
	if rawURL == "" || value == "" || param == "" {
		return rawURL
	}
	pair := param + "=" + url.QueryEscape(value)

	u, err := url.Parse(rawURL)
	if err != nil {
		if strings.Contains(rawURL, "?"+param+"=") || strings.Contains(rawURL, "&"+param+"=") {
			return rawURL
		}
		return rawURL + querySep(rawURL) + pair
	}
	if u.Query().Has(param) {
		return rawURL
	}
	// the query goes before any #fragment
	if u.RawQuery == "" {
		u.RawQuery = pair
	} else {
		u.RawQuery += querySep("?"+u.RawQuery) + pair
	}
	u.ForceQuery = false
	return u.String()
}

func querySep(s string) string {
	switch {
	case strings.HasSuffix(s, "?"), strings.HasSuffix(s, "&"):
		return ""
	case strings.Contains(s, "?"):
		return "&"
	default:
		return "?"
	}
}

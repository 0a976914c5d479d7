package rapidapi

import (
	"strings"

	"github.com/tidwall/gjson"
)

// Shape pulls a candidate item list out of an upstream document.
type Shape func(doc gjson.Result) []gjson.Result

// Path is the shape "array at path".
func Path(path string) Shape {
	return func(doc gjson.Result) []gjson.Result {
		v := doc.Get(path)
		if !v.IsArray() {
			return nil
		}
		return v.Array()
	}
}

// TopLevelArray is the shape of a bare JSON array document.
func TopLevelArray(doc gjson.Result) []gjson.Result {
	if !doc.IsArray() {
		return nil
	}
	return doc.Array()
}

// Items tries shapes in order and returns the object items of the first shape that yields any.
func Items(body []byte, shapes ...Shape) []gjson.Result {
	if !gjson.ValidBytes(body) {
		return nil
	}
	doc := gjson.ParseBytes(body)
	for _, shape := range shapes {
		var items []gjson.Result
		for _, it := range shape(doc) {
			if it.IsObject() {
				items = append(items, it)
			}
		}
		if len(items) > 0 {
			return items
		}
	}
	return nil
}

// Cap truncates items to at most limit entries; limit <= 0 means no cap.
func Cap(items []gjson.Result, limit int) []gjson.Result {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}

// String returns the first non-empty string or number among paths, as text.
func String(item gjson.Result, paths ...string) string {
	for _, p := range paths {
		v := item.Get(p)
		switch v.Type {
		case gjson.String:
			if s := strings.TrimSpace(v.Str); s != "" {
				return s
			}
		case gjson.Number:
			return v.String()
		}
	}
	return ""
}

// Present returns the first value among paths that exists and is not null.
func Present(item gjson.Result, paths ...string) gjson.Result {
	for _, p := range paths {
		if v := item.Get(p); v.Exists() && v.Type != gjson.Null {
			return v
		}
	}
	return gjson.Result{}
}

// Truthy returns the first value among paths that is neither missing, null, false, zero nor empty.
func Truthy(item gjson.Result, paths ...string) gjson.Result {
	for _, p := range paths {
		v := item.Get(p)
		switch v.Type {
		case gjson.String:
			if v.Str != "" {
				return v
			}
		case gjson.Number:
			if v.Num != 0 {
				return v
			}
		case gjson.True, gjson.JSON:
			return v
		}
	}
	return gjson.Result{}
}

// Image picks the first direct image field, then falls back to images[0] / images.primary.
func Image(item gjson.Result, paths ...string) string {
	if s := String(item, paths...); s != "" {
		return s
	}
	return String(item, "images.0", "images.primary")
}

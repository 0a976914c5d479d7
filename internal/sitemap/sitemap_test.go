package sitemap

import (
	"encoding/xml"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"souvenirspartan/internal/catalog"
)

func TestHandleSitemap_ListsHomeAndCategories(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	New("https://souvenirspartan.example/").handleSitemap(rr, httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if got := rr.Header().Get("Content-Type"); !strings.Contains(got, "application/xml") {
		t.Fatalf("expected XML content type, got %q", got)
	}

	var parsed urlSet
	if err := xml.Unmarshal(rr.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("expected valid XML sitemap, got error: %v\nbody: %s", err, rr.Body.String())
	}
	if len(parsed.URLs) != len(catalog.Categories)+1 {
		t.Fatalf("expected %d urls, got %d", len(catalog.Categories)+1, len(parsed.URLs))
	}
	if parsed.URLs[0].Loc != "https://souvenirspartan.example/" {
		t.Fatalf("unexpected home url %q", parsed.URLs[0].Loc)
	}
	if parsed.URLs[1].Loc != "https://souvenirspartan.example/shoes.html" {
		t.Fatalf("unexpected category url %q", parsed.URLs[1].Loc)
	}
}

func TestHandleRobots_UsesRequestHostWithoutSiteURL(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/robots.txt", nil)
	req.Host = "localhost:3000"
	rr := httptest.NewRecorder()
	New("").handleRobots(rr, req)

	body := rr.Body.String()
	if !strings.Contains(body, "Sitemap: http://localhost:3000/sitemap.xml") {
		t.Fatalf("unexpected robots.txt:\n%s", body)
	}
	if !strings.Contains(body, "Disallow: /api/") {
		t.Fatalf("expected api to be disallowed:\n%s", body)
	}
}

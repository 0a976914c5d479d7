// Package sitemap serves robots.txt and a sitemap of the storefront pages.
package sitemap

import (
	"encoding/xml"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"souvenirspartan/internal/catalog"
)

const robots = `# Allow all search engines to crawl the site
User-agent: *
Allow: /
Disallow: /api/

# Sitemap location
Sitemap: %s/sitemap.xml
`

type Server struct {
	siteURL string
}

// New serves links under siteURL; an empty siteURL uses the request's own host.
func New(siteURL string) *Server {
	return &Server{siteURL: strings.TrimRight(siteURL, "/")}
}

func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /sitemap.xml", s.handleSitemap)
	mux.HandleFunc("GET /robots.txt", s.handleRobots)
}

type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	Xmlns   string     `xml:"xmlns,attr"`
	URLs    []urlEntry `xml:"url"`
}

type urlEntry struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

func (s *Server) base(r *http.Request) string {
	if s.siteURL != "" {
		return s.siteURL
	}
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

func (s *Server) handleSitemap(w http.ResponseWriter, r *http.Request) {
	base := s.base(r)
	entries := []urlEntry{{Loc: base + "/"}}
	// one static page per category: shoes.html, shirts.html, ...
	for _, c := range catalog.Categories {
		entries = append(entries, urlEntry{Loc: base + "/" + string(c) + ".html"})
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	if _, err := w.Write([]byte(xml.Header)); err != nil {
		slog.ErrorContext(r.Context(), "failed to write sitemap header", "error", err)
		return
	}
	if err := xml.NewEncoder(w).Encode(urlSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  entries,
	}); err != nil {
		slog.ErrorContext(r.Context(), "failed to encode sitemap", "error", err)
	}
}

func (s *Server) handleRobots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := fmt.Fprintf(w, robots, s.base(r)); err != nil {
		slog.ErrorContext(r.Context(), "failed to write robots.txt", "error", err)
	}
}

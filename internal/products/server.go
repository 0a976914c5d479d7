package products

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"souvenirspartan/internal/catalog"
)

type server struct {
	router *Router
}

// NewHandler serves the product API backed by router.
func NewHandler(router *Router) *server {
	return &server{router: router}
}

func (s *server) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/products/{category}", s.handleListing)
	mux.HandleFunc("GET /api/product/{category}/{id}", s.handleProduct)
	mux.HandleFunc("GET /api/sources", s.handleSources)
}

func (s *server) handleListing(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	category := r.PathValue("category")
	page := parsePage(r.URL.Query().Get("page"))

	listing, err := s.router.Listing(ctx, category, page)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load products", "category", category, "page", page, "error", err)
		writeJSON(w, r, http.StatusInternalServerError, map[string]any{
			"category": category,
			"products": []catalog.Product{},
			"error":    "Failed to load products",
		})
		return
	}
	writeJSON(w, r, http.StatusOK, listing)
}

func (s *server) handleProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	category, id := r.PathValue("category"), r.PathValue("id")

	product, err := s.router.Product(ctx, category, id)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load product", "category", category, "id", id, "error", err)
		writeJSON(w, r, http.StatusInternalServerError, map[string]string{"error": "Failed to load product"})
		return
	}
	if product == nil {
		writeJSON(w, r, http.StatusNotFound, map[string]string{"error": "Product not found"})
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]*catalog.Product{"product": product})
}

func (s *server) handleSources(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, struct {
		Description string                      `json:"description"`
		Routes      map[catalog.Category]string `json:"routes"`
	}{
		Description: s.router.Describe(),
		Routes:      s.router.Routes(),
	})
}

// parsePage treats anything that is not a positive integer as the first page.
func parsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	h := w.Header()
	h.Set("Content-Type", "application/json")
	h.Set("Cache-Control", "no-cache, no-store, must-revalidate")
	h.Set("Pragma", "no-cache")
	h.Set("Expires", "0")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.ErrorContext(r.Context(), "failed to write json response", "path", r.URL.Path, "error", err)
	}
}

type cors struct {
	http.Handler
}

// WithCORS opens the API to any origin for GET and answers preflight requests with 204.
func WithCORS(h http.Handler) http.Handler {
	return &cors{h}
}

func (c *cors) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h := w.Header()
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	h.Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	c.Handler.ServeHTTP(w, r)
}

package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/uslu-pos/api/internal/catalog"
)

// ProductHandler serves the fixed menu to order screens.
type ProductHandler struct{}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler() *ProductHandler {
	return &ProductHandler{}
}

// RegisterRoutes registers catalog endpoints on the given Chi router.
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Get("/products", h.List)
	r.Get("/categories", h.Categories)
}

type productResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Category string `json:"category"`
}

// List returns the catalog, optionally filtered by ?category=.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products := catalog.Products()
	if c := r.URL.Query().Get("category"); c != "" {
		products = catalog.ByCategory(c)
	}

	resp := make([]productResponse, len(products))
	for i, p := range products {
		resp[i] = productResponse{
			ID:       p.ID,
			Name:     p.Name,
			Price:    p.Price.String(),
			Category: p.Category,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// Categories returns the menu categories in display order.
func (h *ProductHandler) Categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, catalog.Categories())
}

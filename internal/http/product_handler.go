package http

import (
	"context"
	"net/http"
	"time"

	"github.com/JulioMoratelli/vila-mantos/internal/domain"
	"github.com/JulioMoratelli/vila-mantos/internal/service"
	"github.com/go-chi/chi/v5"
)

type ProductHandler struct {
	products *service.ProductService
	timeout  time.Duration
}

func NewProductHandler(products *service.ProductService, timeout time.Duration) *ProductHandler {
	return &ProductHandler{
		products: products,
		timeout:  timeout,
	}
}

// GET /api/v1/products?category=&team=&promotion=&q=
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	q := r.URL.Query()
	filter := domain.ProductFilter{
		Category:      q.Get("category"),
		Team:          q.Get("team"),
		PromotionOnly: q.Get("promotion") == "true",
		Search:        q.Get("q"),
	}

	products, err := h.products.List(ctx, filter)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, products)
}

// GET /api/v1/products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id := chi.URLParam(r, "id")
	product, err := h.products.Get(ctx, id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, product)
}

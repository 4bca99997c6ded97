package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/JulioMoratelli/vila-mantos/internal/domain"
	"github.com/JulioMoratelli/vila-mantos/internal/repository"
	"github.com/JulioMoratelli/vila-mantos/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type CartHandler struct {
	carts   *service.CartService
	pricing domain.Pricing
	timeout time.Duration
}

func NewCartHandler(carts *service.CartService, pricing domain.Pricing, timeout time.Duration) *CartHandler {
	return &CartHandler{
		carts:   carts,
		pricing: pricing,
		timeout: timeout,
	}
}

type AddItemRequestDTO struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Image     string `json:"image"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type UpdateSizeRequestDTO struct {
	NewSize string `json:"new_size"`
}

type CartResponseDTO struct {
	SessionID   string            `json:"session_id"`
	Items       []domain.CartLine `json:"items"`
	TotalItems  int               `json:"total_items"`
	Subtotal    string            `json:"subtotal"`
	ShippingFee string            `json:"shipping_fee"`
	Total       string            `json:"total"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func (h *CartHandler) cartResponse(cart *domain.Cart) CartResponseDTO {
	subtotal := cart.Subtotal()
	fee := h.pricing.ShippingFee(subtotal)
	return CartResponseDTO{
		SessionID:   cart.SessionID,
		Items:       cart.Items,
		TotalItems:  cart.TotalItems(),
		Subtotal:    subtotal.StringFixed(2),
		ShippingFee: fee.StringFixed(2),
		Total:       subtotal.Add(fee).StringFixed(2),
	}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionIDFromContext(r.Context())
	cart, err := h.carts.Get(ctx, sessionID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, h.cartResponse(cart))
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}
	if req.Quantity <= 0 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}
	unitPrice, err := decimal.NewFromString(req.UnitPrice)
	if err != nil || unitPrice.IsNegative() {
		respondError(w, http.StatusBadRequest, "invalid_unit_price", "unit_price must be a non-negative decimal")
		return
	}

	sessionID := getSessionIDFromContext(r.Context())
	cart, err := h.carts.AddItem(ctx, sessionID, domain.CartLine{
		ProductID: req.ProductID,
		Name:      req.Name,
		Image:     req.Image,
		Size:      req.Size,
		Quantity:  req.Quantity,
		UnitPrice: unitPrice,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, h.cartResponse(cart))
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	sessionID := getSessionIDFromContext(r.Context())
	productID := chi.URLParam(r, "product_id")
	size := chi.URLParam(r, "size")

	cart, err := h.carts.UpdateQuantity(ctx, sessionID, productID, size, req.Quantity)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, h.cartResponse(cart))
}

func (h *CartHandler) UpdateSize(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req UpdateSizeRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	sessionID := getSessionIDFromContext(r.Context())
	productID := chi.URLParam(r, "product_id")
	oldSize := chi.URLParam(r, "size")

	cart, err := h.carts.UpdateSize(ctx, sessionID, productID, oldSize, req.NewSize)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, h.cartResponse(cart))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionIDFromContext(r.Context())
	productID := chi.URLParam(r, "product_id")
	size := chi.URLParam(r, "size")

	cart, err := h.carts.RemoveItem(ctx, sessionID, productID, size)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, h.cartResponse(cart))
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionIDFromContext(r.Context())
	if err := h.carts.Clear(ctx, sessionID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error:   message,
		Code:    code,
		Details: "",
	})
}

// handleServiceError maps service and repository errors to HTTP statuses.
// Validation errors are correctable input, persistence errors get a retry
// prompt.
func handleServiceError(w http.ResponseWriter, err error) {
	var perr *service.PersistenceError

	switch {
	case errors.Is(err, service.ErrEmptyCart):
		respondError(w, http.StatusUnprocessableEntity, "empty_cart", "cart is empty")
	case errors.Is(err, service.ErrNoShippingAddress):
		respondError(w, http.StatusUnprocessableEntity, "no_shipping_address", "fill in the shipping address")
	case errors.Is(err, service.ErrInvalidPaymentMethod):
		respondError(w, http.StatusBadRequest, "invalid_payment_method", "payment method must be card or pix")
	case errors.Is(err, service.ErrInvalidSize):
		respondError(w, http.StatusBadRequest, "invalid_size", "select a valid size")
	case errors.Is(err, service.ErrInvalidQuantity):
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be positive")
	case errors.Is(err, repository.ErrOrderNotFound):
		respondError(w, http.StatusNotFound, "order_not_found", "order not found")
	case errors.Is(err, repository.ErrProductNotFound):
		respondError(w, http.StatusNotFound, "product_not_found", "product not found")
	case errors.Is(err, repository.ErrAddressNotFound):
		respondError(w, http.StatusNotFound, "address_not_found", "no default address")
	case errors.As(err, &perr):
		log.Printf("persistence error at stage %s: %v", perr.Stage, perr.Err)
		respondError(w, http.StatusBadGateway, "persistence_error", "could not complete the operation, please retry")
	default:
		log.Printf("internal error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

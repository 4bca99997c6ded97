package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/JulioMoratelli/vila-mantos/internal/domain"
	"github.com/JulioMoratelli/vila-mantos/internal/service"
)

type CheckoutHandler struct {
	checkout *service.CheckoutService
	timeout  time.Duration
}

func NewCheckoutHandler(checkout *service.CheckoutService, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
		timeout:  timeout,
	}
}

type CheckoutRequestDTO struct {
	PaymentMethod string              `json:"payment_method"`
	Address       *domain.AddressForm `json:"address,omitempty"`
}

type CheckoutResponseDTO struct {
	OrderNumber string `json:"order_number"`
	Total       string `json:"total"`
}

// POST /api/v1/checkout
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var req CheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	result, err := h.checkout.Checkout(ctx, &service.CheckoutRequest{
		UserID:        userID,
		SessionID:     getSessionIDFromContext(r.Context()),
		Address:       req.Address,
		PaymentMethod: domain.PaymentMethod(req.PaymentMethod),
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, CheckoutResponseDTO{
		OrderNumber: result.OrderNumber,
		Total:       result.Total,
	})
}

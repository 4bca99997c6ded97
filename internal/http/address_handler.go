package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/JulioMoratelli/vila-mantos/internal/domain"
	"github.com/JulioMoratelli/vila-mantos/internal/repository"
)

type AddressHandler struct {
	repo    repository.AddressRepo
	timeout time.Duration
}

func NewAddressHandler(repo repository.AddressRepo, timeout time.Duration) *AddressHandler {
	return &AddressHandler{
		repo:    repo,
		timeout: timeout,
	}
}

// GET /api/v1/address
func (h *AddressHandler) GetDefaultAddress(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	address, err := h.repo.GetDefaultAddress(ctx, userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, address)
}

// PUT /api/v1/address
func (h *AddressHandler) UpsertDefaultAddress(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var form domain.AddressForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if form.IsZero() {
		respondError(w, http.StatusBadRequest, "invalid_address", "street is required")
		return
	}

	address, err := h.repo.UpsertDefaultAddress(ctx, userID, form)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, address)
}

package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/JulioMoratelli/vila-mantos/internal/cartstore"
	"github.com/JulioMoratelli/vila-mantos/internal/domain"
	"github.com/JulioMoratelli/vila-mantos/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCartRouter() (*chi.Mux, *service.CartService) {
	carts := service.NewCartService(cartstore.NewMemoryStore())
	handler := NewCartHandler(carts, domain.DefaultPricing(), time.Second)

	r := chi.NewRouter()
	r.Use(SessionMiddleware)
	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Get("/", handler.GetCart)
		r.Post("/items", handler.AddItem)
		r.Put("/items/{product_id}/{size}", handler.UpdateQuantity)
		r.Put("/items/{product_id}/{size}/size", handler.UpdateSize)
		r.Delete("/items/{product_id}/{size}", handler.RemoveItem)
		r.Delete("/", handler.ClearCart)
	})
	return r, carts
}

func addItemBody(t *testing.T) *bytes.Buffer {
	t.Helper()
	body, err := json.Marshal(AddItemRequestDTO{
		ProductID: "1",
		Name:      "Camisa Flamengo I 2024",
		Image:     "https://cdn.example.com/flamengo.jpg",
		Size:      "M",
		Quantity:  2,
		UnitPrice: "199.90",
	})
	require.NoError(t, err)
	return bytes.NewBuffer(body)
}

func TestGetCart_MintsSessionAndReturnsEmptyCart(t *testing.T) {
	router, _ := newCartRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Session-ID"))

	var resp CartResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.TotalItems)
	assert.Equal(t, "0.00", resp.Subtotal)
}

func TestAddItem_ReturnsPricedCart(t *testing.T) {
	router, _ := newCartRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", addItemBody(t))
	req.Header.Set("X-Session-ID", "sess-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp CartResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.TotalItems)
	assert.Equal(t, "399.80", resp.Subtotal)
	// 399.80 clears the free-shipping threshold
	assert.Equal(t, "0.00", resp.ShippingFee)
	assert.Equal(t, "399.80", resp.Total)
}

func TestAddItem_MissingSizeIsBadRequest(t *testing.T) {
	router, _ := newCartRouter()

	body, err := json.Marshal(AddItemRequestDTO{
		ProductID: "1",
		Quantity:  1,
		UnitPrice: "199.90",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", bytes.NewBuffer(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "invalid_size", resp.Code)
}

func TestAddItem_InvalidPriceIsBadRequest(t *testing.T) {
	router, _ := newCartRouter()

	body, err := json.Marshal(AddItemRequestDTO{
		ProductID: "1",
		Size:      "M",
		Quantity:  1,
		UnitPrice: "not-a-price",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", bytes.NewBuffer(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateQuantity_ZeroRemovesLine(t *testing.T) {
	router, carts := newCartRouter()
	ctx := context.Background()
	_, err := carts.AddItem(ctx, "sess-1", domain.CartLine{
		ProductID: "1", Size: "M", Quantity: 2,
		UnitPrice: mustDecimal(t, "199.90"),
	})
	require.NoError(t, err)

	body, err := json.Marshal(UpdateQuantityRequestDTO{Quantity: 0})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/cart/items/1/M", bytes.NewBuffer(body))
	req.Header.Set("X-Session-ID", "sess-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp CartResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Items)
}

func TestUpdateSize_CollisionMergesLines(t *testing.T) {
	router, carts := newCartRouter()
	ctx := context.Background()
	for _, size := range []string{"M", "G"} {
		_, err := carts.AddItem(ctx, "sess-1", domain.CartLine{
			ProductID: "1", Size: size, Quantity: 1,
			UnitPrice: mustDecimal(t, "199.90"),
		})
		require.NoError(t, err)
	}

	body, err := json.Marshal(UpdateSizeRequestDTO{NewSize: "G"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/cart/items/1/M/size", bytes.NewBuffer(body))
	req.Header.Set("X-Session-ID", "sess-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp CartResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "G", resp.Items[0].Size)
	assert.Equal(t, 2, resp.Items[0].Quantity)
}

func TestRemoveItem(t *testing.T) {
	router, carts := newCartRouter()
	_, err := carts.AddItem(context.Background(), "sess-1", domain.CartLine{
		ProductID: "1", Size: "M", Quantity: 2,
		UnitPrice: mustDecimal(t, "199.90"),
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/cart/items/1/M", nil)
	req.Header.Set("X-Session-ID", "sess-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp CartResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Items)
}

func TestClearCart(t *testing.T) {
	router, carts := newCartRouter()
	_, err := carts.AddItem(context.Background(), "sess-1", domain.CartLine{
		ProductID: "1", Size: "M", Quantity: 2,
		UnitPrice: mustDecimal(t, "199.90"),
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/cart", nil)
	req.Header.Set("X-Session-ID", "sess-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

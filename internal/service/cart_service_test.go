package service

import (
	"context"
	"errors"
	"testing"

	"github.com/JulioMoratelli/vila-mantos/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLine(size string, qty int) domain.CartLine {
	return domain.CartLine{
		ProductID: "1",
		Name:      "Camisa Flamengo I 2024",
		Image:     "https://cdn.example.com/flamengo.jpg",
		Size:      size,
		Quantity:  qty,
		UnitPrice: decimal.RequireFromString("199.90"),
	}
}

func TestCartGet_UnknownSessionReturnsEmptyCart(t *testing.T) {
	svc := NewCartService(newMockStore())

	cart, err := svc.Get(context.Background(), "fresh")

	require.NoError(t, err)
	assert.Equal(t, "fresh", cart.SessionID)
	assert.True(t, cart.IsEmpty())
}

func TestCartGet_StoreErrorPropagates(t *testing.T) {
	store := newMockStore()
	store.getErr = errors.New("redis down")
	svc := NewCartService(store)

	_, err := svc.Get(context.Background(), "sess")

	assert.Error(t, err)
}

func TestCartAddItem_PersistsMergedCart(t *testing.T) {
	store := newMockStore()
	svc := NewCartService(store)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess", testLine("M", 2))
	require.NoError(t, err)
	cart, err := svc.AddItem(ctx, "sess", testLine("M", 1))
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)

	stored, err := store.Get(ctx, "sess")
	require.NoError(t, err)
	assert.Equal(t, 3, stored.TotalItems())
}

func TestCartAddItem_RejectsMissingSize(t *testing.T) {
	svc := NewCartService(newMockStore())

	_, err := svc.AddItem(context.Background(), "sess", testLine("", 1))
	assert.ErrorIs(t, err, ErrInvalidSize)

	_, err = svc.AddItem(context.Background(), "sess", testLine("XL", 1))
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestCartAddItem_RejectsNonPositiveQuantity(t *testing.T) {
	svc := NewCartService(newMockStore())

	_, err := svc.AddItem(context.Background(), "sess", testLine("M", 0))

	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestCartUpdateQuantity_ZeroRemovesLine(t *testing.T) {
	svc := NewCartService(newMockStore())
	ctx := context.Background()
	_, err := svc.AddItem(ctx, "sess", testLine("M", 2))
	require.NoError(t, err)

	cart, err := svc.UpdateQuantity(ctx, "sess", "1", "M", 0)

	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestCartUpdateSize_CollisionMerges(t *testing.T) {
	svc := NewCartService(newMockStore())
	ctx := context.Background()
	_, err := svc.AddItem(ctx, "sess", testLine("M", 2))
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "sess", testLine("G", 1))
	require.NoError(t, err)

	cart, err := svc.UpdateSize(ctx, "sess", "1", "M", "G")

	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "G", cart.Items[0].Size)
	assert.Equal(t, 3, cart.Items[0].Quantity)
}

func TestCartUpdateSize_RejectsUnknownTargetSize(t *testing.T) {
	svc := NewCartService(newMockStore())

	_, err := svc.UpdateSize(context.Background(), "sess", "1", "M", "XXL")

	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestCartRemoveItem(t *testing.T) {
	svc := NewCartService(newMockStore())
	ctx := context.Background()
	_, err := svc.AddItem(ctx, "sess", testLine("M", 2))
	require.NoError(t, err)

	cart, err := svc.RemoveItem(ctx, "sess", "1", "M")

	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestCartClear(t *testing.T) {
	store := newMockStore()
	svc := NewCartService(store)
	ctx := context.Background()
	_, err := svc.AddItem(ctx, "sess", testLine("M", 2))
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx, "sess"))

	cart, err := svc.Get(ctx, "sess")
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestCartMutate_SaveErrorPropagates(t *testing.T) {
	store := newMockStore()
	store.setErr = errors.New("redis down")
	svc := NewCartService(store)

	_, err := svc.AddItem(context.Background(), "sess", testLine("M", 2))

	assert.Error(t, err)
}

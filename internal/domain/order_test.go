package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderNumber_Format(t *testing.T) {
	n := NewOrderNumber()

	assert.True(t, strings.HasPrefix(n, "FS-"))
	assert.Equal(t, strings.ToUpper(n), n)
	assert.Greater(t, len(n), len("FS-")+8)
}

func TestNewOrderNumber_SuffixVaries(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		seen[NewOrderNumber()] = true
	}
	// Same-millisecond calls still differ through the random suffix.
	assert.Greater(t, len(seen), 1)
}

func TestOrderLinesFromCart_SnapshotsEveryField(t *testing.T) {
	cart := NewCart("sess-1")
	cart.AddItem(CartLine{
		ProductID: "1",
		Name:      "Camisa Flamengo I 2024",
		Image:     "https://cdn.example.com/flamengo.jpg",
		Size:      "M",
		Quantity:  2,
		UnitPrice: decimal.RequireFromString("199.90"),
	})
	cart.AddItem(CartLine{
		ProductID: "2",
		Name:      "Camisa Corinthians I 2024",
		Image:     "https://cdn.example.com/corinthians.jpg",
		Size:      "G",
		Quantity:  1,
		UnitPrice: decimal.RequireFromString("249.90"),
	})

	orderID := uuid.New()
	lines := OrderLinesFromCart(orderID, cart)

	require.Len(t, lines, 2)
	for i, line := range lines {
		assert.Equal(t, orderID, line.OrderID)
		assert.NotEqual(t, uuid.Nil, line.ID)
		assert.Equal(t, cart.Items[i].ProductID, line.ProductID)
		assert.Equal(t, cart.Items[i].Name, line.ProductName)
		assert.Equal(t, cart.Items[i].Image, line.ProductImage)
		assert.Equal(t, cart.Items[i].Size, line.Size)
		assert.Equal(t, cart.Items[i].Quantity, line.Quantity)
		assert.True(t, cart.Items[i].UnitPrice.Equal(line.UnitPrice))
	}
}

func TestPaymentMethodValid(t *testing.T) {
	assert.True(t, PaymentMethodCard.Valid())
	assert.True(t, PaymentMethodPix.Valid())
	assert.False(t, PaymentMethod("boleto").Valid())
	assert.False(t, PaymentMethod("").Valid())
}

func TestValidSize(t *testing.T) {
	for _, s := range []string{"P", "M", "G", "GG"} {
		assert.True(t, ValidSize(s))
	}
	assert.False(t, ValidSize(""))
	assert.False(t, ValidSize("XL"))
}

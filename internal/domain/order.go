package domain

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type PaymentMethod string

const (
	PaymentMethodCard PaymentMethod = "card"
	PaymentMethodPix  PaymentMethod = "pix"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodCard || m == PaymentMethodPix
}

// OrderLine is an immutable snapshot of one cart line at checkout time.
// Product name, image and unit price must never be re-derived from the
// current catalog after creation.
type OrderLine struct {
	ID           uuid.UUID       `json:"id"`
	OrderID      uuid.UUID       `json:"order_id"`
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	ProductImage string          `json:"product_image"`
	Size         string          `json:"size"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
}

type Order struct {
	ID              uuid.UUID       `json:"id"`
	OrderNumber     string          `json:"order_number"`
	UserID          string          `json:"user_id"`
	Total           decimal.Decimal `json:"total"`
	PaymentMethod   PaymentMethod   `json:"payment_method"`
	ShippingAddress AddressSnapshot `json:"shipping_address"`
	Status          OrderStatus     `json:"status"`
	Lines           []OrderLine     `json:"lines,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

const orderNumberPrefix = "FS-"

// NewOrderNumber builds a human-facing order token: prefix, base-36
// millisecond timestamp, and a 4-char random suffix. Uniqueness is enforced
// by the database constraint on orders.order_number; callers retry with a
// fresh number on conflict.
func NewOrderNumber() string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)
	suffix := fmt.Sprintf("%04x", rand.Intn(0x10000))
	return orderNumberPrefix + strings.ToUpper(ts+suffix)
}

// OrderLinesFromCart materializes one order line per cart line, carrying the
// cart's snapshot fields over unchanged.
func OrderLinesFromCart(orderID uuid.UUID, cart *Cart) []OrderLine {
	lines := make([]OrderLine, 0, len(cart.Items))
	for _, item := range cart.Items {
		lines = append(lines, OrderLine{
			ID:           uuid.New(),
			OrderID:      orderID,
			ProductID:    item.ProductID,
			ProductName:  item.Name,
			ProductImage: item.Image,
			Size:         item.Size,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
		})
	}
	return lines
}

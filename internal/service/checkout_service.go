package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/JulioMoratelli/vila-mantos/internal/domain"
	"github.com/JulioMoratelli/vila-mantos/internal/repository"
	"github.com/google/uuid"
)

const (
	orderConfirmedEvent    = "order-confirmed"
	orderNumberMaxAttempts = 3
)

type CheckoutRequest struct {
	UserID        string
	SessionID     string
	Address       *domain.AddressForm // nil means "use the stored default"
	PaymentMethod domain.PaymentMethod
}

type CheckoutResult struct {
	OrderNumber string
	Total       string
}

// CheckoutRepo is the persistence surface the orchestrator drives.
type CheckoutRepo interface {
	repository.AddressRepo
	repository.OrderWriter
}

// CheckoutService converts a session cart into a persisted order. Stages run
// strictly in sequence; a stage failure aborts the rest and leaves the cart
// untouched. Side effects of completed stages are not rolled back.
type CheckoutService struct {
	carts   *CartService
	repo    CheckoutRepo
	pricing domain.Pricing
	timeout time.Duration
}

func NewCheckoutService(carts *CartService, repo CheckoutRepo, pricing domain.Pricing, timeout time.Duration) *CheckoutService {
	return &CheckoutService{
		carts:   carts,
		repo:    repo,
		pricing: pricing,
		timeout: timeout,
	}
}

func (s *CheckoutService) Checkout(ctx context.Context, req *CheckoutRequest) (*CheckoutResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	// Stage 1: preconditions. Nothing is persisted past this point unless
	// the cart is non-empty and the payment method is known.
	if !req.PaymentMethod.Valid() {
		return nil, ErrInvalidPaymentMethod
	}
	cart, err := s.carts.Get(ctx, req.SessionID)
	if err != nil {
		return nil, &PersistenceError{Stage: StageCart, Err: err}
	}
	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	// Stage 2: address resolution. An order must never reference an address
	// that failed to save, so the upsert gates order creation.
	snapshot, err := s.resolveAddress(ctx, req)
	if err != nil {
		return nil, err
	}

	// Stage 3: order creation, retried with a fresh number when the unique
	// constraint reports a collision.
	total := s.pricing.GrandTotal(cart.Subtotal())
	order := &domain.Order{
		ID:              uuid.New(),
		UserID:          req.UserID,
		Total:           total,
		PaymentMethod:   req.PaymentMethod,
		ShippingAddress: snapshot,
		Status:          domain.OrderStatusConfirmed,
	}
	if err := s.createOrderWithRetry(ctx, order); err != nil {
		return nil, &PersistenceError{Stage: StageOrder, Err: err}
	}

	// Stage 4: order-line materialization. Failing here leaves an order with
	// no lines; that gap is surfaced, not hidden, and the cart is preserved
	// for a retry.
	lines := domain.OrderLinesFromCart(order.ID, cart)
	if err := s.repo.CreateOrderLines(ctx, lines); err != nil {
		return nil, &PersistenceError{Stage: StageOrderLines, Err: err}
	}
	order.Lines = lines

	// Stage 5: commit. The outbox row feeds downstream consumers; clearing
	// the cart happens exactly once, here.
	s.writeOutboxEvent(ctx, order)
	if err := s.carts.Clear(ctx, req.SessionID); err != nil {
		// The order is already committed; an uncleared cart is the lesser
		// problem and the next Set will overwrite it anyway.
		log.Printf("failed to clear cart after checkout %s: %v", order.OrderNumber, err)
	}

	return &CheckoutResult{
		OrderNumber: order.OrderNumber,
		Total:       order.Total.StringFixed(2),
	}, nil
}

func (s *CheckoutService) resolveAddress(ctx context.Context, req *CheckoutRequest) (domain.AddressSnapshot, error) {
	if req.Address != nil && !req.Address.IsZero() {
		saved, err := s.repo.UpsertDefaultAddress(ctx, req.UserID, *req.Address)
		if err != nil {
			return domain.AddressSnapshot{}, &PersistenceError{Stage: StageAddress, Err: err}
		}
		return saved.Snapshot(), nil
	}

	stored, err := s.repo.GetDefaultAddress(ctx, req.UserID)
	if errors.Is(err, repository.ErrAddressNotFound) {
		return domain.AddressSnapshot{}, ErrNoShippingAddress
	}
	if err != nil {
		return domain.AddressSnapshot{}, &PersistenceError{Stage: StageAddress, Err: err}
	}
	return stored.Snapshot(), nil
}

func (s *CheckoutService) createOrderWithRetry(ctx context.Context, order *domain.Order) error {
	var err error
	for attempt := 0; attempt < orderNumberMaxAttempts; attempt++ {
		order.OrderNumber = domain.NewOrderNumber()
		err = s.repo.CreateOrder(ctx, order)
		if !errors.Is(err, repository.ErrDuplicateOrderNumber) {
			return err
		}
		log.Printf("order number collision on %s, retrying", order.OrderNumber)
	}
	return err
}

func (s *CheckoutService) writeOutboxEvent(ctx context.Context, order *domain.Order) {
	payload, err := json.Marshal(order)
	if err != nil {
		log.Printf("failed to marshal order event payload: %v", err)
		return
	}
	if err := s.repo.InsertOrderEvent(ctx, order.ID, orderConfirmedEvent, payload); err != nil {
		// Best effort: the order itself is committed, downstream consumers
		// miss one event until reconciliation.
		log.Printf("failed to insert order event for %s: %v", order.OrderNumber, err)
	}
}

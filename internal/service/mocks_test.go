package service

import (
	"context"
	"sync"

	"github.com/JulioMoratelli/vila-mantos/internal/cartstore"
	"github.com/JulioMoratelli/vila-mantos/internal/domain"
	"github.com/google/uuid"
)

// mockStore implements cartstore.Store for testing
type mockStore struct {
	m      sync.RWMutex
	carts  map[string]*domain.Cart
	getErr error
	setErr error
	delErr error
}

func newMockStore() *mockStore {
	return &mockStore{carts: map[string]*domain.Cart{}}
}

func (m *mockStore) Get(_ context.Context, sessionID string) (*domain.Cart, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	cart, ok := m.carts[sessionID]
	if !ok {
		return nil, cartstore.ErrCartNotFound
	}
	copied := *cart
	copied.Items = append([]domain.CartLine(nil), cart.Items...)
	return &copied, nil
}

func (m *mockStore) Set(_ context.Context, sessionID string, cart *domain.Cart) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	copied := *cart
	copied.Items = append([]domain.CartLine(nil), cart.Items...)
	m.carts[sessionID] = &copied
	return nil
}

func (m *mockStore) Delete(_ context.Context, sessionID string) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.delErr != nil {
		return m.delErr
	}
	delete(m.carts, sessionID)
	return nil
}

// MockCheckoutRepo implements CheckoutRepo for testing. It captures every
// write so tests can assert exactly which rows a checkout produced.
type MockCheckoutRepo struct {
	DefaultAddress *domain.Address
	GetAddressErr  error
	UpsertErr      error
	CreateOrderErr error
	LinesErr       error
	EventErr       error

	UpsertedForms  []domain.AddressForm
	CreatedOrders  []*domain.Order
	CreatedLines   [][]domain.OrderLine
	InsertedEvents []string
}

func (m *MockCheckoutRepo) UpsertDefaultAddress(_ context.Context, userID string, form domain.AddressForm) (*domain.Address, error) {
	if m.UpsertErr != nil {
		return nil, m.UpsertErr
	}
	m.UpsertedForms = append(m.UpsertedForms, form)
	return &domain.Address{
		ID:           uuid.New(),
		UserID:       userID,
		CEP:          form.CEP,
		Street:       form.Street,
		Number:       form.Number,
		Complement:   form.Complement,
		Neighborhood: form.Neighborhood,
		City:         form.City,
		State:        form.State,
		IsDefault:    true,
	}, nil
}

func (m *MockCheckoutRepo) GetDefaultAddress(_ context.Context, _ string) (*domain.Address, error) {
	if m.GetAddressErr != nil {
		return nil, m.GetAddressErr
	}
	return m.DefaultAddress, nil
}

func (m *MockCheckoutRepo) CreateOrder(_ context.Context, order *domain.Order) error {
	if m.CreateOrderErr != nil {
		return m.CreateOrderErr
	}
	copied := *order
	m.CreatedOrders = append(m.CreatedOrders, &copied)
	return nil
}

func (m *MockCheckoutRepo) CreateOrderLines(_ context.Context, lines []domain.OrderLine) error {
	if m.LinesErr != nil {
		return m.LinesErr
	}
	m.CreatedLines = append(m.CreatedLines, lines)
	return nil
}

func (m *MockCheckoutRepo) InsertOrderEvent(_ context.Context, _ uuid.UUID, eventType string, _ []byte) error {
	if m.EventErr != nil {
		return m.EventErr
	}
	m.InsertedEvents = append(m.InsertedEvents, eventType)
	return nil
}

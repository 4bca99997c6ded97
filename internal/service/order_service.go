package service

import (
	"context"

	"github.com/JulioMoratelli/vila-mantos/internal/domain"
	"github.com/JulioMoratelli/vila-mantos/internal/repository"
)

// OrderService serves order history. Orders and their lines are read-only
// after checkout.
type OrderService struct {
	repo repository.OrderReader
}

func NewOrderService(repo repository.OrderReader) *OrderService {
	return &OrderService{repo: repo}
}

func (s *OrderService) GetByNumber(ctx context.Context, userID, orderNumber string) (*domain.Order, error) {
	return s.repo.GetOrderByNumber(ctx, userID, orderNumber)
}

func (s *OrderService) ListForUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	return s.repo.ListOrdersByUserID(ctx, userID)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/JulioMoratelli/vila-mantos/internal/cartstore"
	"github.com/JulioMoratelli/vila-mantos/internal/domain"
	"golang.org/x/sync/singleflight"
)

// CartService owns all session cart mutations. The merge rules live on
// domain.Cart; this layer loads the cart from the store, applies them and
// writes the result back.
type CartService struct {
	store cartstore.Store
	sfg   singleflight.Group // Prevents concurrent store misses for same key
}

func NewCartService(store cartstore.Store) *CartService {
	return &CartService{store: store}
}

// Get returns the session's cart, or a fresh empty cart for an unknown
// session.
func (s *CartService) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	v, err, _ := s.sfg.Do(sessionID, func() (interface{}, error) {
		cart, errGet := s.store.Get(ctx, sessionID)
		if errGet != nil && errors.Is(errGet, cartstore.ErrCartNotFound) {
			return domain.NewCart(sessionID), nil
		}
		if errGet != nil {
			return nil, errGet
		}
		return cart, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(*domain.Cart), nil
}

// AddItem validates the line and merges it into the session cart. A missing
// or unknown size and a non-positive quantity are validation errors.
func (s *CartService) AddItem(ctx context.Context, sessionID string, line domain.CartLine) (*domain.Cart, error) {
	if !domain.ValidSize(line.Size) {
		return nil, ErrInvalidSize
	}
	if line.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	return s.mutate(ctx, sessionID, func(cart *domain.Cart) {
		cart.AddItem(line)
	})
}

func (s *CartService) UpdateQuantity(ctx context.Context, sessionID, productID, size string, quantity int) (*domain.Cart, error) {
	return s.mutate(ctx, sessionID, func(cart *domain.Cart) {
		cart.UpdateQuantity(productID, size, quantity)
	})
}

func (s *CartService) UpdateSize(ctx context.Context, sessionID, productID, oldSize, newSize string) (*domain.Cart, error) {
	if !domain.ValidSize(newSize) {
		return nil, ErrInvalidSize
	}
	return s.mutate(ctx, sessionID, func(cart *domain.Cart) {
		cart.UpdateSize(productID, oldSize, newSize)
	})
}

func (s *CartService) RemoveItem(ctx context.Context, sessionID, productID, size string) (*domain.Cart, error) {
	return s.mutate(ctx, sessionID, func(cart *domain.Cart) {
		cart.RemoveItem(productID, size)
	})
}

func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	if err := s.store.Delete(ctx, sessionID); err != nil {
		log.Printf("store delete cart error: %v \n", err)
		return err
	}
	return nil
}

func (s *CartService) mutate(ctx context.Context, sessionID string, apply func(*domain.Cart)) (*domain.Cart, error) {
	cart, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	apply(cart)

	if err := s.store.Set(ctx, sessionID, cart); err != nil {
		log.Printf("store set cart error: %v \n", err)
		return nil, fmt.Errorf("save cart: %w", err)
	}
	return cart, nil
}

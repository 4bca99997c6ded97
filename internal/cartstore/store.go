package cartstore

import (
	"context"
	"errors"

	"github.com/JulioMoratelli/vila-mantos/internal/domain"
)

// Store holds session carts. Carts are session-scoped and never durable:
// losing one means the user rebuilds it, nothing else breaks.
type Store interface {
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)
	Set(ctx context.Context, sessionID string, cart *domain.Cart) error
	Delete(ctx context.Context, sessionID string) error
}

var ErrCartNotFound = errors.New("cart not found")

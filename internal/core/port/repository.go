package port

import (
	"context"
	"time"

	"github.com/MikeRez0/studiocheckout/internal/core/domain"
)

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock
type Repository interface {
	// CreateOrder fails with domain.ErrConflictingData when the purchase key already
	// has a non-terminal order.
	CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)
	ReadOrder(ctx context.Context, orderID string) (*domain.Order, error)
	ReadOrderByGatewayID(ctx context.Context, gatewayOrderID string) (*domain.Order, error)
	FindOpenOrder(ctx context.Context, key domain.PurchaseKey) (*domain.Order, error)
	ListStaleOrders(ctx context.Context, createdBefore time.Time, limit int) ([]*domain.Order, error)

	// UpdateOrder loads the order under a row lock, applies updateFn and stores the result.
	UpdateOrder(ctx context.Context, orderID string, updateFn UpdateOrderFn) (*domain.Order, error)

	Ping(ctx context.Context) error
}

type UpdateOrderFn func(*domain.Order) error

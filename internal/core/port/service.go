package port

import (
	"context"
	"time"

	"github.com/MikeRez0/studiocheckout/internal/core/domain"
)

//go:generate mockgen -source=service.go -destination=mock/service.go -package=mock
type Service interface {
	CreateCheckout(ctx context.Context, req *domain.CheckoutRequest) (*domain.Checkout, error)
	Quote(ctx context.Context, req *domain.CheckoutRequest) (*domain.Quote, error)
	ConfirmPayment(ctx context.Context, orderID string, confirmation *domain.Confirmation) (*domain.Order, error)
	ConfirmGatewayPayment(ctx context.Context, confirmation *domain.Confirmation) (*domain.Order, error)
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
	Ping(ctx context.Context) error
}

type OrderExpirer interface {
	ExpireStale(ctx context.Context, now time.Time) (int, error)
}

// TransitionObserver is notified of every persisted state change.
type TransitionObserver interface {
	ObserveTransition(from, to domain.OrderState)
}

package port

import (
	"context"

	"github.com/MikeRez0/studiocheckout/internal/core/domain"
	"github.com/govalues/decimal"
)

//go:generate mockgen -source=collaborator.go -destination=mock/collaborator.go -package=mock
type Catalog interface {
	PriceOf(ctx context.Context, kind domain.PurchaseKind, reference string) (decimal.Decimal, error)
}

type DiscountValidator interface {
	Validate(ctx context.Context, code string, baseAmount decimal.Decimal) (*domain.DiscountResult, error)
}

type WalletLedger interface {
	GetBalance(ctx context.Context, buyerReference string) (decimal.Decimal, error)
	// Debit is idempotent on idempotencyKey.
	Debit(ctx context.Context, buyerReference string, amount decimal.Decimal, idempotencyKey string) (*domain.LedgerDebit, error)
}

type GatewayBridge interface {
	CreateOrder(ctx context.Context, amount decimal.Decimal, currency string, metadata map[string]string) (string, error)
}

type Verifier interface {
	Verify(gatewayOrderID, gatewayPaymentID, signature string) bool
}

type EventPublisher interface {
	PublishSettlement(ctx context.Context, event domain.SettlementEvent) error
}

package domain

import (
	"time"

	"github.com/govalues/decimal"
)

type OrderState string

const (
	OrderStateCreated             OrderState = "CREATED"
	OrderStateAwaitingGateway     OrderState = "AWAITING_GATEWAY"
	OrderStatePendingConfirmation OrderState = "PENDING_CONFIRMATION"
	OrderStatePaid                OrderState = "PAID"
	OrderStateFailed              OrderState = "FAILED"
	OrderStateExpired             OrderState = "EXPIRED"
)

// NonTerminalStates lists every state an order can still leave.
var NonTerminalStates = []OrderState{
	OrderStateCreated,
	OrderStateAwaitingGateway,
	OrderStatePendingConfirmation,
}

var orderTransitions = map[OrderState][]OrderState{
	OrderStateCreated:             {OrderStateAwaitingGateway, OrderStatePaid, OrderStateFailed, OrderStateExpired},
	OrderStateAwaitingGateway:     {OrderStatePendingConfirmation, OrderStateFailed, OrderStateExpired},
	OrderStatePendingConfirmation: {OrderStatePaid, OrderStateFailed, OrderStateExpired},
}

func (s OrderState) Terminal() bool {
	_, ok := orderTransitions[s]
	return !ok
}

func (s OrderState) CanTransitionTo(next OrderState) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type PurchaseKind string

const (
	PurchaseKindDropIn    PurchaseKind = "DROP_IN"
	PurchaseKindClassPack PurchaseKind = "CLASS_PACK"
)

func (k PurchaseKind) Valid() bool {
	return k == PurchaseKindDropIn || k == PurchaseKindClassPack
}

// Annotations stored next to a FAILED or EXPIRED state.
const (
	AnnotationLedgerInconsistency = "ledger_inconsistency"
	// AnnotationPaymentAfterClose marks a closed order for which the gateway
	// later delivered a verified payment.
	AnnotationPaymentAfterClose = "payment_after_close"
)

type Order struct {
	ID                string
	BuyerReference    string
	PurchaseKind      PurchaseKind
	PurchaseReference string

	BaseAmount     decimal.Decimal
	DiscountAmount decimal.Decimal
	WalletAmount   decimal.Decimal
	TaxAmount      decimal.Decimal
	TotalAmount    decimal.Decimal
	Currency       string
	DiscountCode   string

	GatewayOrderID   string
	GatewayPaymentID string
	LedgerTxID       string

	State         OrderState
	FailureReason string
	Annotation    string

	CreatedAt time.Time
	UpdatedAt time.Time
	SettledAt *time.Time
}

// Transition moves the order to next, stamping settlement time on terminal states.
func (o *Order) Transition(next OrderState, at time.Time) error {
	if !o.State.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	o.State = next
	o.UpdatedAt = at
	if next.Terminal() {
		settled := at
		o.SettledAt = &settled
	}
	return nil
}

// Fail moves the order to FAILED with a reason.
func (o *Order) Fail(reason string, at time.Time) error {
	if err := o.Transition(OrderStateFailed, at); err != nil {
		return err
	}
	o.FailureReason = reason
	return nil
}

// PurchaseKey identifies the seat or pack a buyer is paying for.
type PurchaseKey struct {
	BuyerReference    string
	PurchaseReference string
}

func (o *Order) Key() PurchaseKey {
	return PurchaseKey{BuyerReference: o.BuyerReference, PurchaseReference: o.PurchaseReference}
}

func (k PurchaseKey) String() string {
	return k.BuyerReference + "/" + k.PurchaseReference
}

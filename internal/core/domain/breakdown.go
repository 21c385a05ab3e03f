package domain

import "github.com/govalues/decimal"

// Breakdown is an itemized price for one checkout.
type Breakdown struct {
	BaseAmount     decimal.Decimal
	DiscountAmount decimal.Decimal
	WalletAmount   decimal.Decimal
	Subtotal       decimal.Decimal
	TaxAmount      decimal.Decimal
	TotalAmount    decimal.Decimal
}

// Discount is a validated discount code and its magnitude.
type Discount struct {
	Code   string
	Amount decimal.Decimal
}

// DiscountResult is what the discount collaborator answers for a code.
type DiscountResult struct {
	Valid  bool
	Amount decimal.Decimal
	Reason string
}

// Confirmation is the payload the gateway delivers after the buyer pays.
type Confirmation struct {
	GatewayOrderID   string
	GatewayPaymentID string
	Signature        string
	ErrorCode        string
	ErrorDescription string
}

// CheckoutRequest is a buyer's intent to pay for one purchase.
type CheckoutRequest struct {
	BuyerReference    string
	PurchaseKind      PurchaseKind
	PurchaseReference string
	DiscountCode      string
	UseWallet         bool
}

// Checkout is the result handed back to the buyer's widget.
type Checkout struct {
	Order            *Order
	GatewayPublicKey string
	AmountMinor      int64
}

// Quote is a priced checkout that was not persisted.
type Quote struct {
	Breakdown    Breakdown
	DiscountCode string
	Currency     string
}

// LedgerDebit is a wallet debit confirmation.
type LedgerDebit struct {
	TransactionID string
}

// SettlementEvent announces a terminal order to downstream consumers.
type SettlementEvent struct {
	OrderID           string          `json:"order_id"`
	BuyerReference    string          `json:"buyer_reference"`
	PurchaseKind      PurchaseKind    `json:"purchase_kind"`
	PurchaseReference string          `json:"purchase_reference"`
	State             OrderState      `json:"state"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	Reason            string          `json:"reason,omitempty"`
	OccurredAt        string          `json:"occurred_at"`
}

package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/MikeRez0/studiocheckout/internal/core/domain"
	"github.com/MikeRez0/studiocheckout/internal/core/port"
	"github.com/gin-gonic/gin"
	"github.com/govalues/decimal"
	"go.uber.org/zap"
)

// WebhookVerifier authenticates a raw webhook body against its signature header.
type WebhookVerifier interface {
	VerifyPayload(payload []byte, signature string) bool
}

const webhookSignatureHeader = "X-Gateway-Signature"

type CheckoutHandler struct {
	Handler
	service  port.Service
	webhooks WebhookVerifier
}

func NewCheckoutHandler(service port.Service, webhooks WebhookVerifier, logger *zap.Logger) (*CheckoutHandler, error) {
	if webhooks == nil {
		return nil, errors.New("checkout handler: webhook verifier is required")
	}
	return &CheckoutHandler{
		Handler:  *NewHandler(logger),
		service:  service,
		webhooks: webhooks,
	}, nil
}

type checkoutRequest struct {
	BuyerReference    string  `json:"buyer_reference"`
	PurchaseKind      string  `json:"purchase_kind"`
	PurchaseReference string  `json:"purchase_reference"`
	DiscountCode      *string `json:"discount_code"`
	UseWallet         bool    `json:"use_wallet"`
}

type breakdownResponse struct {
	BaseAmount     string `json:"base_amount"`
	DiscountAmount string `json:"discount_amount"`
	WalletAmount   string `json:"wallet_amount"`
	TaxAmount      string `json:"tax_amount"`
	TotalAmount    string `json:"total_amount"`
	Currency       string `json:"currency"`
	DiscountCode   string `json:"discount_code,omitempty"`
}

type checkoutResponse struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
	breakdownResponse
	GatewayOrderID   string `json:"gateway_order_id,omitempty"`
	GatewayPublicKey string `json:"gateway_public_key,omitempty"`
	AmountMinor      int64  `json:"amount_minor,omitempty"`
}

type quoteResponse struct {
	breakdownResponse
	Subtotal string `json:"subtotal"`
}

type orderResponse struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
	breakdownResponse
	BuyerReference    string  `json:"buyer_reference"`
	PurchaseKind      string  `json:"purchase_kind"`
	PurchaseReference string  `json:"purchase_reference"`
	GatewayOrderID    string  `json:"gateway_order_id,omitempty"`
	GatewayPaymentID  string  `json:"gateway_payment_id,omitempty"`
	FailureReason     string  `json:"failure_reason,omitempty"`
	CreatedAt         string  `json:"created_at"`
	SettledAt         *string `json:"settled_at,omitempty"`
}

type confirmRequest struct {
	GatewayOrderID   string `json:"gateway_order_id"`
	GatewayPaymentID string `json:"gateway_payment_id"`
	Signature        string `json:"signature"`
	ErrorCode        string `json:"error_code"`
	ErrorDescription string `json:"error_description"`
}

type confirmResponse struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

func amount(d decimal.Decimal) string {
	return d.String()
}

func statusOf(s domain.OrderState) string {
	return strings.ToLower(string(s))
}

func orderBreakdown(o *domain.Order) breakdownResponse {
	return breakdownResponse{
		BaseAmount:     amount(o.BaseAmount),
		DiscountAmount: amount(o.DiscountAmount),
		WalletAmount:   amount(o.WalletAmount),
		TaxAmount:      amount(o.TaxAmount),
		TotalAmount:    amount(o.TotalAmount),
		Currency:       o.Currency,
		DiscountCode:   o.DiscountCode,
	}
}

// bindCheckout parses the body and pins the buyer to the token holder.
func (ch *CheckoutHandler) bindCheckout(ctx *gin.Context) (*domain.CheckoutRequest, bool) {
	body, err := validateJSONSchema(ctx, checkoutLoader)
	if err != nil {
		ch.handleValidationError(ctx, err)
		return nil, false
	}

	req := checkoutRequest{}
	err = json.Unmarshal(body, &req)
	if err != nil {
		ch.handleValidationError(ctx, err)
		return nil, false
	}

	buyer := getAuthPayload(ctx).BuyerReference
	if req.BuyerReference != "" && strings.TrimSpace(req.BuyerReference) != buyer {
		ch.logger.Warn("buyer mismatch",
			zap.String("token_buyer", buyer),
			zap.String("body_buyer", req.BuyerReference))
		ch.handleError(ctx, domain.ErrForbidden)
		return nil, false
	}

	r := &domain.CheckoutRequest{
		BuyerReference:    buyer,
		PurchaseKind:      domain.PurchaseKind(req.PurchaseKind),
		PurchaseReference: req.PurchaseReference,
		UseWallet:         req.UseWallet,
	}
	if req.DiscountCode != nil {
		r.DiscountCode = *req.DiscountCode
	}
	return r, true
}

func (ch *CheckoutHandler) CreateCheckout(ctx *gin.Context) {
	req, ok := ch.bindCheckout(ctx)
	if !ok {
		return
	}

	checkout, err := ch.service.CreateCheckout(ctx, req)
	if err != nil {
		ch.handleError(ctx, err)
		return
	}

	o := checkout.Order
	resp := checkoutResponse{
		OrderID:           o.ID,
		Status:            statusOf(o.State),
		breakdownResponse: orderBreakdown(o),
	}
	if o.State != domain.OrderStatePaid {
		resp.GatewayOrderID = o.GatewayOrderID
		resp.GatewayPublicKey = checkout.GatewayPublicKey
		resp.AmountMinor = checkout.AmountMinor
	}

	ch.handleSuccessWithStatus(ctx, resp, http.StatusCreated)
}

func (ch *CheckoutHandler) Quote(ctx *gin.Context) {
	req, ok := ch.bindCheckout(ctx)
	if !ok {
		return
	}

	q, err := ch.service.Quote(ctx, req)
	if err != nil {
		ch.handleError(ctx, err)
		return
	}

	b := q.Breakdown
	ch.handleSuccess(ctx, quoteResponse{
		breakdownResponse: breakdownResponse{
			BaseAmount:     amount(b.BaseAmount),
			DiscountAmount: amount(b.DiscountAmount),
			WalletAmount:   amount(b.WalletAmount),
			TaxAmount:      amount(b.TaxAmount),
			TotalAmount:    amount(b.TotalAmount),
			Currency:       q.Currency,
			DiscountCode:   q.DiscountCode,
		},
		Subtotal: amount(b.Subtotal),
	})
}

// ownedOrder loads the path order and checks it belongs to the token buyer.
func (ch *CheckoutHandler) ownedOrder(ctx *gin.Context) (*domain.Order, bool) {
	order, err := ch.service.GetOrder(ctx, ctx.Param("order_id"))
	if err != nil {
		ch.handleError(ctx, err)
		return nil, false
	}
	if order.BuyerReference != getAuthPayload(ctx).BuyerReference {
		ch.handleError(ctx, domain.ErrForbidden)
		return nil, false
	}
	return order, true
}

func (ch *CheckoutHandler) GetOrder(ctx *gin.Context) {
	o, ok := ch.ownedOrder(ctx)
	if !ok {
		return
	}

	resp := orderResponse{
		OrderID:           o.ID,
		Status:            statusOf(o.State),
		breakdownResponse: orderBreakdown(o),
		BuyerReference:    o.BuyerReference,
		PurchaseKind:      string(o.PurchaseKind),
		PurchaseReference: o.PurchaseReference,
		GatewayOrderID:    o.GatewayOrderID,
		GatewayPaymentID:  o.GatewayPaymentID,
		FailureReason:     o.FailureReason,
		CreatedAt:         o.CreatedAt.Format(time.RFC3339),
	}
	if o.SettledAt != nil {
		s := o.SettledAt.Format(time.RFC3339)
		resp.SettledAt = &s
	}

	ch.handleSuccess(ctx, resp)
}

func (ch *CheckoutHandler) bindConfirmation(ctx *gin.Context, body []byte) (*domain.Confirmation, bool) {
	err := checkSchema(body, confirmLoader)
	if err != nil {
		ch.handleValidationError(ctx, err)
		return nil, false
	}

	req := confirmRequest{}
	err = json.Unmarshal(body, &req)
	if err != nil {
		ch.handleValidationError(ctx, err)
		return nil, false
	}

	return &domain.Confirmation{
		GatewayOrderID:   req.GatewayOrderID,
		GatewayPaymentID: req.GatewayPaymentID,
		Signature:        req.Signature,
		ErrorCode:        req.ErrorCode,
		ErrorDescription: req.ErrorDescription,
	}, true
}

// ConfirmPayment receives the widget's success or failure callback for an order.
func (ch *CheckoutHandler) ConfirmPayment(ctx *gin.Context) {
	body, err := readBody(ctx)
	if err != nil {
		ch.handleValidationError(ctx, err)
		return
	}
	c, ok := ch.bindConfirmation(ctx, body)
	if !ok {
		return
	}
	order, ok := ch.ownedOrder(ctx)
	if !ok {
		return
	}

	paid, err := ch.service.ConfirmPayment(ctx, order.ID, c)
	if err != nil {
		ch.handlePaymentError(ctx, err)
		return
	}

	ch.handleSuccess(ctx, confirmResponse{OrderID: paid.ID, Status: statusOf(paid.State)})
}

// GatewayWebhook receives the provider's server-to-server confirmation. The
// body must carry a valid X-Gateway-Signature before anything is parsed.
func (ch *CheckoutHandler) GatewayWebhook(ctx *gin.Context) {
	body, err := readBody(ctx)
	if err != nil {
		ch.handleValidationError(ctx, err)
		return
	}
	if !ch.webhooks.VerifyPayload(body, ctx.GetHeader(webhookSignatureHeader)) {
		ch.logger.Warn("webhook signature rejected",
			zap.String("client_ip", ctx.ClientIP()),
			zap.Bool("fraud_review", true))
		ch.handleError(ctx, domain.ErrWebhookSignature)
		return
	}

	c, ok := ch.bindConfirmation(ctx, body)
	if !ok {
		return
	}

	paid, err := ch.service.ConfirmGatewayPayment(ctx, c)
	if err != nil {
		ch.handlePaymentError(ctx, err)
		return
	}

	ch.handleSuccess(ctx, confirmResponse{OrderID: paid.ID, Status: statusOf(paid.State)})
}

type healthResponse struct {
	Status string `json:"status"`
}

func (ch *CheckoutHandler) Health(ctx *gin.Context) {
	err := ch.service.Ping(ctx)
	if err != nil {
		ch.logger.Error("health check failed", zap.Error(err))
		ctx.JSON(http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
		return
	}
	ch.handleSuccess(ctx, healthResponse{Status: "ok"})
}

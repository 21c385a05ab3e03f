package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MikeRez0/studiocheckout/internal/core/domain"
	"github.com/MikeRez0/studiocheckout/internal/core/port"
	"github.com/MikeRez0/studiocheckout/internal/core/pricing"
	"github.com/google/uuid"
	"github.com/govalues/decimal"
	"go.uber.org/zap"
)

const (
	DefaultExpiryWindow   = 30 * time.Minute
	DefaultGatewayTimeout = 10 * time.Second
	DefaultSweepBatch     = 100

	maxReferenceLen = 128
	maxCodeLen      = 64
)

// Failure reasons stored on FAILED orders.
const (
	ReasonGatewayUnavailable = "gateway_unavailable"
	ReasonVerificationFailed = "verification_failed"
	ReasonWalletDebitFailed  = "wallet_debit_failed"
	ReasonOrderCommitFailed  = "order_commit_failed"
	ReasonGatewayReported    = "gateway_reported_failure"
)

var errAlreadySettled = errors.New("order already settled")

type Config struct {
	TaxRate          decimal.Decimal
	Currency         string
	ExpiryWindow     time.Duration
	GatewayTimeout   time.Duration
	GatewayPublicKey string
	SweepBatch       int
}

// Deps bundles the collaborators of the orchestrator. Events, Observer, Clock
// and IDGenerator are optional.
type Deps struct {
	Repo      port.Repository
	Catalog   port.Catalog
	Discounts port.DiscountValidator
	Wallet    port.WalletLedger
	Gateway   port.GatewayBridge
	Verifier  port.Verifier
	Events    port.EventPublisher
	Observer  port.TransitionObserver

	Clock       func() time.Time
	IDGenerator func() string
}

type Service struct {
	repo      port.Repository
	catalog   port.Catalog
	discounts port.DiscountValidator
	wallet    port.WalletLedger
	gateway   port.GatewayBridge
	verifier  port.Verifier
	events    port.EventPublisher
	observer  port.TransitionObserver

	conf   Config
	locks  *keyLock
	clock  func() time.Time
	newID  func() string
	logger *zap.Logger
}

func NewService(deps Deps, conf Config, logger *zap.Logger) (*Service, error) {
	if deps.Repo == nil || deps.Catalog == nil || deps.Discounts == nil ||
		deps.Wallet == nil || deps.Gateway == nil || deps.Verifier == nil {
		return nil, errors.New("order service: missing collaborator")
	}
	if conf.TaxRate.IsNeg() || conf.TaxRate.Cmp(decimal.One) >= 0 {
		return nil, fmt.Errorf("order service: %w", pricing.ErrTaxRate)
	}
	if conf.Currency == "" {
		return nil, errors.New("order service: currency is required")
	}
	if conf.ExpiryWindow <= 0 {
		conf.ExpiryWindow = DefaultExpiryWindow
	}
	if conf.GatewayTimeout <= 0 {
		conf.GatewayTimeout = DefaultGatewayTimeout
	}
	if conf.SweepBatch <= 0 {
		conf.SweepBatch = DefaultSweepBatch
	}

	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	newID := deps.IDGenerator
	if newID == nil {
		newID = func() string { return uuid.NewString() }
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		repo:      deps.Repo,
		catalog:   deps.Catalog,
		discounts: deps.Discounts,
		wallet:    deps.Wallet,
		gateway:   deps.Gateway,
		verifier:  deps.Verifier,
		events:    deps.Events,
		observer:  deps.Observer,
		conf:      conf,
		locks:     newKeyLock(),
		clock:     func() time.Time { return clock().UTC() },
		newID:     newID,
		logger:    logger,
	}, nil
}

func (s *Service) Quote(ctx context.Context, req *domain.CheckoutRequest) (*domain.Quote, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	code := normalizeCode(req.DiscountCode)

	breakdown, discount, err := s.price(ctx, req, code)
	if err != nil {
		return nil, err
	}

	q := &domain.Quote{Breakdown: breakdown, Currency: s.conf.Currency}
	if discount != nil {
		q.DiscountCode = discount.Code
	}
	return q, nil
}

func (s *Service) CreateCheckout(ctx context.Context, req *domain.CheckoutRequest) (*domain.Checkout, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	code := normalizeCode(req.DiscountCode)
	key := domain.PurchaseKey{BuyerReference: req.BuyerReference, PurchaseReference: req.PurchaseReference}

	unlock := s.locks.Lock(key.String())
	defer unlock()

	if err := s.ensureNoOpenOrder(ctx, key); err != nil {
		return nil, err
	}

	breakdown, discount, err := s.price(ctx, req, code)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	order := &domain.Order{
		ID:                s.newID(),
		BuyerReference:    req.BuyerReference,
		PurchaseKind:      req.PurchaseKind,
		PurchaseReference: req.PurchaseReference,
		BaseAmount:        breakdown.BaseAmount,
		DiscountAmount:    breakdown.DiscountAmount,
		WalletAmount:      breakdown.WalletAmount,
		TaxAmount:         breakdown.TaxAmount,
		TotalAmount:       breakdown.TotalAmount,
		Currency:          s.conf.Currency,
		State:             domain.OrderStateCreated,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if discount != nil {
		order.DiscountCode = discount.Code
	}

	created, err := s.repo.CreateOrder(ctx, order)
	if err != nil {
		if errors.Is(err, domain.ErrConflictingData) {
			if openErr := s.ensureNoOpenOrder(ctx, key); openErr != nil {
				return nil, openErr
			}
			return nil, &domain.AlreadyPendingError{}
		}
		s.logger.Error("Create order", zap.Error(err))
		return nil, domain.ErrInternal
	}
	s.observe("", created.State)

	s.logger.Debug("Order created",
		zap.String("order_id", created.ID),
		zap.String("purchase", key.String()),
		zap.Stringer("total", created.TotalAmount))

	// The buyer may hang up from here on; every step below must still reach a
	// recorded state.
	ctx = context.WithoutCancel(ctx)

	if created.TotalAmount.IsZero() {
		return s.settleWithoutGateway(ctx, created)
	}
	return s.requestGatewayOrder(ctx, created)
}

func (s *Service) ensureNoOpenOrder(ctx context.Context, key domain.PurchaseKey) error {
	existing, err := s.repo.FindOpenOrder(ctx, key)
	if err != nil && !errors.Is(err, domain.ErrDataNotFound) {
		s.logger.Error("Find open order", zap.Error(err))
		return domain.ErrInternal
	}
	if existing != nil {
		return &domain.AlreadyPendingError{OrderID: existing.ID}
	}
	return nil
}

func (s *Service) price(ctx context.Context, req *domain.CheckoutRequest, code string) (domain.Breakdown, *domain.Discount, error) {
	base, err := s.catalog.PriceOf(ctx, req.PurchaseKind, req.PurchaseReference)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return domain.Breakdown{}, nil, domain.NewValidationError("purchase not found")
		}
		s.logger.Error("Catalog price", zap.Error(err))
		return domain.Breakdown{}, nil, domain.ErrCatalogUnavailable
	}

	var discount *domain.Discount
	if code != "" {
		res, err := s.discounts.Validate(ctx, code, base)
		if err != nil {
			s.logger.Error("Discount validation error", zap.String("code", code), zap.Error(err))
			return domain.Breakdown{}, nil, domain.ErrDiscountUnavailable
		}
		if !res.Valid {
			s.logger.Debug("Discount code rejected", zap.String("code", code), zap.String("reason", res.Reason))
			return domain.Breakdown{}, nil, domain.NewValidationError("discount code is not valid")
		}
		discount = &domain.Discount{Code: code, Amount: res.Amount}
	}

	walletSnapshot := decimal.Zero
	if req.UseWallet {
		walletSnapshot, err = s.wallet.GetBalance(ctx, req.BuyerReference)
		if err != nil {
			s.logger.Error("Wallet balance", zap.String("buyer", req.BuyerReference), zap.Error(err))
			return domain.Breakdown{}, nil, domain.ErrWalletUnavailable
		}
	}

	breakdown, err := pricing.Compute(pricing.Input{
		BaseAmount:     base,
		Discount:       discount,
		WalletSnapshot: walletSnapshot,
		UseWallet:      req.UseWallet,
		TaxRate:        s.conf.TaxRate,
	})
	if err != nil {
		s.logger.Error("Compute price", zap.Error(err))
		return domain.Breakdown{}, nil, domain.ErrInternal
	}

	return breakdown, discount, nil
}

// settleWithoutGateway pays a fully discounted or wallet-funded order. The
// wallet is debited before PAID is committed.
func (s *Service) settleWithoutGateway(ctx context.Context, order *domain.Order) (*domain.Checkout, error) {
	ledgerTxID := ""
	if order.WalletAmount.IsPos() {
		debit, err := s.wallet.Debit(ctx, order.BuyerReference, order.WalletAmount, order.ID)
		if err != nil {
			s.logger.Error("Wallet debit", zap.String("order_id", order.ID), zap.Error(err))
			s.failOrder(ctx, order.ID, ReasonWalletDebitFailed, "")
			if errors.Is(err, domain.ErrInsufficientBalance) {
				return nil, domain.ErrInsufficientBalance
			}
			return nil, domain.ErrWalletUnavailable
		}
		ledgerTxID = debit.TransactionID
	}

	paid, err := s.transition(ctx, order.ID, func(o *domain.Order) error {
		if err := o.Transition(domain.OrderStatePaid, s.clock()); err != nil {
			return err
		}
		o.LedgerTxID = ledgerTxID
		return nil
	})
	if err != nil {
		if ledgerTxID != "" {
			s.reportLedgerInconsistency(ctx, order, ledgerTxID, err)
			return nil, domain.ErrLedgerInconsistency
		}
		s.logger.Error("Commit paid order", zap.String("order_id", order.ID), zap.Error(err))
		return nil, domain.ErrInternal
	}

	return &domain.Checkout{Order: paid}, nil
}

func (s *Service) requestGatewayOrder(ctx context.Context, order *domain.Order) (*domain.Checkout, error) {
	_, err := s.transition(ctx, order.ID, func(o *domain.Order) error {
		return o.Transition(domain.OrderStateAwaitingGateway, s.clock())
	})
	if err != nil {
		s.logger.Error("Mark order awaiting gateway", zap.String("order_id", order.ID), zap.Error(err))
		return nil, domain.ErrInternal
	}

	gctx, cancel := context.WithTimeout(ctx, s.conf.GatewayTimeout)
	gatewayOrderID, err := s.gateway.CreateOrder(gctx, order.TotalAmount, order.Currency, map[string]string{
		"order_id":           order.ID,
		"buyer_reference":    order.BuyerReference,
		"purchase_kind":      string(order.PurchaseKind),
		"purchase_reference": order.PurchaseReference,
	})
	cancel()
	if err != nil {
		s.logger.Warn("Gateway create order", zap.String("order_id", order.ID), zap.Error(err))
		s.failOrder(ctx, order.ID, ReasonGatewayUnavailable, "")
		return nil, domain.ErrGatewayUnavailable
	}

	pending, err := s.transition(ctx, order.ID, func(o *domain.Order) error {
		if err := o.Transition(domain.OrderStatePendingConfirmation, s.clock()); err != nil {
			return err
		}
		o.GatewayOrderID = gatewayOrderID
		return nil
	})
	if err != nil {
		s.logger.Error("Store gateway order",
			zap.String("order_id", order.ID),
			zap.String("gateway_order_id", gatewayOrderID),
			zap.Error(err))
		return nil, domain.ErrInternal
	}

	amountMinor, err := pricing.MinorUnits(pending.TotalAmount)
	if err != nil {
		s.logger.Error("Minor units", zap.String("order_id", order.ID), zap.Error(err))
		return nil, domain.ErrInternal
	}

	return &domain.Checkout{
		Order:            pending,
		GatewayPublicKey: s.conf.GatewayPublicKey,
		AmountMinor:      amountMinor,
	}, nil
}

// confirmSource is the channel a confirmation arrived on.
type confirmSource int

const (
	// sourceBuyer is the widget callback relayed by the order's buyer.
	sourceBuyer confirmSource = iota
	// sourceGateway is a webhook whose delivery signature was checked by the caller.
	sourceGateway
)

func (src confirmSource) String() string {
	if src == sourceGateway {
		return "webhook"
	}
	return "buyer"
}

// ConfirmPayment applies a confirmation relayed by the order's buyer.
// Confirmations may be delivered more than once; a repeated valid confirmation
// of a PAID order succeeds without side effects. A confirmation whose payment
// signature does not verify fails the order.
func (s *Service) ConfirmPayment(ctx context.Context, orderID string, c *domain.Confirmation) (*domain.Order, error) {
	if c == nil {
		return nil, domain.NewValidationError("confirmation is empty")
	}
	return s.confirm(ctx, orderID, c, sourceBuyer)
}

// ConfirmGatewayPayment handles a confirmation pushed by the gateway, which
// only knows its own order id. The caller must have authenticated the
// delivery. A payment signature that does not verify is rejected without
// touching the order.
func (s *Service) ConfirmGatewayPayment(ctx context.Context, c *domain.Confirmation) (*domain.Order, error) {
	if c == nil || c.GatewayOrderID == "" {
		return nil, domain.NewValidationError("gateway_order_id is required")
	}

	order, err := s.repo.ReadOrderByGatewayID(ctx, c.GatewayOrderID)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			s.logger.Warn("Confirmation for unknown gateway order", zap.String("gateway_order_id", c.GatewayOrderID))
			return nil, domain.ErrDataNotFound
		}
		s.logger.Error("Read order by gateway id", zap.Error(err))
		return nil, domain.ErrInternal
	}
	return s.confirm(ctx, order.ID, c, sourceGateway)
}

func (s *Service) confirm(ctx context.Context, orderID string, c *domain.Confirmation, src confirmSource) (*domain.Order, error) {
	order, err := s.repo.ReadOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return nil, domain.ErrDataNotFound
		}
		s.logger.Error("Read order", zap.Error(err))
		return nil, domain.ErrInternal
	}

	unlock := s.locks.Lock(order.Key().String())
	defer unlock()
	ctx = context.WithoutCancel(ctx)

	// state may have moved while waiting for the lock
	order, err = s.repo.ReadOrder(ctx, orderID)
	if err != nil {
		s.logger.Error("Read order", zap.Error(err))
		return nil, domain.ErrInternal
	}

	log := s.logger.With(
		zap.String("order_id", order.ID),
		zap.String("state", string(order.State)),
		zap.Stringer("source", src),
		zap.String("gateway_order_id", c.GatewayOrderID),
		zap.String("gateway_payment_id", c.GatewayPaymentID))

	switch order.State {
	case domain.OrderStatePendingConfirmation:
	case domain.OrderStatePaid:
		if s.authentic(order, c) {
			log.Debug("Repeated confirmation for paid order")
			return order, nil
		}
		log.Warn("Confirmation for paid order failed verification", zap.Bool("fraud_review", true))
		return nil, domain.ErrVerificationFailed
	case domain.OrderStateExpired:
		if s.authentic(order, c) {
			s.reportPaymentAfterClose(ctx, order, c, log)
		} else {
			log.Warn("Late confirmation for expired order")
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidTransition, domain.ErrOrderExpired)
	case domain.OrderStateFailed:
		if s.authentic(order, c) {
			s.reportPaymentAfterClose(ctx, order, c, log)
		} else {
			log.Warn("Confirmation for failed order")
		}
		return nil, domain.ErrInvalidTransition
	default:
		log.Warn("Confirmation rejected")
		return nil, domain.ErrInvalidTransition
	}

	if c.ErrorCode != "" {
		if c.GatewayOrderID != order.GatewayOrderID {
			log.Warn("Failure callback for foreign gateway order", zap.Bool("fraud_review", true))
			return nil, domain.ErrVerificationFailed
		}
		log.Info("Gateway reported payment failure",
			zap.String("error_code", c.ErrorCode),
			zap.String("error_description", c.ErrorDescription))
		s.failOrder(ctx, order.ID, ReasonGatewayReported+": "+c.ErrorCode, "")
		return nil, domain.ErrPaymentFailed
	}

	now := s.clock()
	if now.Sub(order.CreatedAt) > s.conf.ExpiryWindow {
		log.Warn("Late confirmation for stale order")
		expired, err := s.transition(ctx, order.ID, func(o *domain.Order) error {
			return o.Transition(domain.OrderStateExpired, now)
		})
		if err != nil {
			log.Error("Expire order", zap.Error(err))
		} else if s.authentic(expired, c) {
			s.reportPaymentAfterClose(ctx, expired, c, log)
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidTransition, domain.ErrOrderExpired)
	}

	if !s.authentic(order, c) {
		if src == sourceGateway {
			log.Warn("Webhook payment verification failed", zap.Bool("fraud_review", true))
			return nil, domain.ErrVerificationFailed
		}
		log.Warn("Payment verification failed", zap.Bool("fraud_review", true))
		s.failOrder(ctx, order.ID, ReasonVerificationFailed, "")
		return nil, domain.ErrVerificationFailed
	}

	ledgerTxID := ""
	if order.WalletAmount.IsPos() {
		debit, err := s.wallet.Debit(ctx, order.BuyerReference, order.WalletAmount, order.ID)
		if err != nil {
			log.Error("Wallet debit after captured payment",
				zap.String("reconcile", "manual"),
				zap.Stringer("wallet_amount", order.WalletAmount),
				zap.Error(err))
			s.failOrderWith(ctx, order.ID, func(o *domain.Order) {
				o.FailureReason = ReasonWalletDebitFailed
				o.Annotation = domain.AnnotationLedgerInconsistency
				o.GatewayPaymentID = c.GatewayPaymentID
			})
			return nil, domain.ErrLedgerInconsistency
		}
		ledgerTxID = debit.TransactionID
	}

	paid, err := s.transition(ctx, order.ID, func(o *domain.Order) error {
		if err := o.Transition(domain.OrderStatePaid, s.clock()); err != nil {
			return err
		}
		o.GatewayPaymentID = c.GatewayPaymentID
		o.LedgerTxID = ledgerTxID
		return nil
	})
	if err != nil {
		if ledgerTxID != "" {
			s.reportLedgerInconsistency(ctx, order, ledgerTxID, err)
			return nil, domain.ErrLedgerInconsistency
		}
		log.Error("Commit paid order", zap.Error(err))
		return nil, domain.ErrInternal
	}

	log.Info("Order paid")
	return paid, nil
}

// reportPaymentAfterClose records a verified payment for an order that is
// already FAILED or EXPIRED. The gateway holds the buyer's money, so an
// operator has to refund or honour it.
func (s *Service) reportPaymentAfterClose(ctx context.Context, order *domain.Order, c *domain.Confirmation, log *zap.Logger) {
	log.Error("Verified payment for closed order",
		zap.String("reconcile", "manual"),
		zap.Bool("fraud_review", true),
		zap.String("buyer", order.BuyerReference),
		zap.String("failure_reason", order.FailureReason),
		zap.Stringer("total", order.TotalAmount))

	// the state stays terminal; only the annotation and payment id are recorded
	_, err := s.repo.UpdateOrder(ctx, order.ID, func(o *domain.Order) error {
		if o.Annotation == "" {
			o.Annotation = domain.AnnotationPaymentAfterClose
		}
		if o.GatewayPaymentID == "" {
			o.GatewayPaymentID = c.GatewayPaymentID
		}
		return nil
	})
	if err != nil {
		log.Error("Annotate closed order", zap.Error(err))
	}
}

func (s *Service) authentic(order *domain.Order, c *domain.Confirmation) bool {
	if order.GatewayOrderID == "" || c.GatewayOrderID != order.GatewayOrderID {
		return false
	}
	return s.verifier.Verify(order.GatewayOrderID, c.GatewayPaymentID, c.Signature)
}

func (s *Service) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.repo.ReadOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return nil, domain.ErrDataNotFound
		}
		s.logger.Error("Read order", zap.Error(err))
		return nil, domain.ErrInternal
	}
	return order, nil
}

func (s *Service) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// ExpireStale moves every order left non-terminal past the expiry window to
// EXPIRED and returns how many were moved.
func (s *Service) ExpireStale(ctx context.Context, now time.Time) (int, error) {
	stale, err := s.repo.ListStaleOrders(ctx, now.Add(-s.conf.ExpiryWindow), s.conf.SweepBatch)
	if err != nil {
		return 0, fmt.Errorf("list stale orders: %w", err)
	}

	expired := 0
	for _, o := range stale {
		if s.expireOne(ctx, o, now) {
			expired++
		}
	}
	return expired, nil
}

func (s *Service) expireOne(ctx context.Context, order *domain.Order, now time.Time) bool {
	unlock := s.locks.Lock(order.Key().String())
	defer unlock()

	_, err := s.transition(ctx, order.ID, func(o *domain.Order) error {
		if o.State.Terminal() {
			return errAlreadySettled
		}
		return o.Transition(domain.OrderStateExpired, now)
	})
	if err != nil {
		if !errors.Is(err, errAlreadySettled) {
			s.logger.Error("Expire order", zap.String("order_id", order.ID), zap.Error(err))
		}
		return false
	}

	s.logger.Info("Order expired",
		zap.String("order_id", order.ID),
		zap.String("state", string(order.State)),
		zap.String("gateway_order_id", order.GatewayOrderID))
	return true
}

func (s *Service) failOrder(ctx context.Context, orderID, reason, annotation string) {
	s.failOrderWith(ctx, orderID, func(o *domain.Order) {
		o.FailureReason = reason
		o.Annotation = annotation
	})
}

func (s *Service) failOrderWith(ctx context.Context, orderID string, annotate func(*domain.Order)) {
	_, err := s.transition(ctx, orderID, func(o *domain.Order) error {
		if err := o.Transition(domain.OrderStateFailed, s.clock()); err != nil {
			return err
		}
		annotate(o)
		return nil
	})
	if err != nil {
		s.logger.Error("Mark order failed", zap.String("order_id", orderID), zap.Error(err))
	}
}

// reportLedgerInconsistency records a debited wallet whose order could not be
// committed as PAID. It needs an operator.
func (s *Service) reportLedgerInconsistency(ctx context.Context, order *domain.Order, ledgerTxID string, cause error) {
	s.logger.Error("Ledger inconsistency",
		zap.String("reconcile", "manual"),
		zap.String("order_id", order.ID),
		zap.String("buyer", order.BuyerReference),
		zap.String("ledger_tx_id", ledgerTxID),
		zap.Stringer("wallet_amount", order.WalletAmount),
		zap.String("gateway_order_id", order.GatewayOrderID),
		zap.Error(cause))

	s.failOrderWith(ctx, order.ID, func(o *domain.Order) {
		o.FailureReason = ReasonOrderCommitFailed
		o.Annotation = domain.AnnotationLedgerInconsistency
		o.LedgerTxID = ledgerTxID
	})
}

func (s *Service) transition(ctx context.Context, orderID string, mutate port.UpdateOrderFn) (*domain.Order, error) {
	var from domain.OrderState
	updated, err := s.repo.UpdateOrder(ctx, orderID, func(o *domain.Order) error {
		from = o.State
		return mutate(o)
	})
	if err != nil {
		return nil, err
	}

	s.observe(from, updated.State)
	if updated.State.Terminal() {
		s.publish(ctx, updated)
	}
	return updated, nil
}

func (s *Service) observe(from, to domain.OrderState) {
	if s.observer != nil {
		s.observer.ObserveTransition(from, to)
	}
}

func (s *Service) publish(ctx context.Context, o *domain.Order) {
	if s.events == nil {
		return
	}
	reason := o.FailureReason
	if o.Annotation != "" {
		reason = o.Annotation + ": " + reason
	}
	occurred := o.UpdatedAt
	if o.SettledAt != nil {
		occurred = *o.SettledAt
	}
	err := s.events.PublishSettlement(ctx, domain.SettlementEvent{
		OrderID:           o.ID,
		BuyerReference:    o.BuyerReference,
		PurchaseKind:      o.PurchaseKind,
		PurchaseReference: o.PurchaseReference,
		State:             o.State,
		TotalAmount:       o.TotalAmount,
		Reason:            reason,
		OccurredAt:        occurred.Format(time.RFC3339Nano),
	})
	if err != nil {
		s.logger.Warn("Publish settlement", zap.String("order_id", o.ID), zap.Error(err))
	}
}

func validateRequest(req *domain.CheckoutRequest) error {
	if req == nil {
		return domain.NewValidationError("request is empty")
	}
	req.BuyerReference = strings.TrimSpace(req.BuyerReference)
	req.PurchaseReference = strings.TrimSpace(req.PurchaseReference)

	switch {
	case req.BuyerReference == "":
		return domain.NewValidationError("buyer_reference is required")
	case req.PurchaseReference == "":
		return domain.NewValidationError("purchase_reference is required")
	case len(req.BuyerReference) > maxReferenceLen || len(req.PurchaseReference) > maxReferenceLen:
		return domain.NewValidationError("reference is too long")
	case !req.PurchaseKind.Valid():
		return domain.NewValidationError("purchase_kind must be DROP_IN or CLASS_PACK")
	case len(req.DiscountCode) > maxCodeLen:
		return domain.NewValidationError("discount code is too long")
	}
	return nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

package http

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/MikeRez0/studiocheckout/internal/adapter/config"
	"github.com/MikeRez0/studiocheckout/internal/adapter/storage/memory"
	"github.com/MikeRez0/studiocheckout/internal/adapter/verify"
	"github.com/MikeRez0/studiocheckout/internal/core/domain"
	"github.com/MikeRez0/studiocheckout/internal/core/port"
	"github.com/MikeRez0/studiocheckout/internal/core/port/mock"
	"github.com/MikeRez0/studiocheckout/internal/core/service"
	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const paymentKeySecret = "rzp_key_secret"

type webhookStack struct {
	router   *Router
	repo     port.Repository
	wallet   *mock.MockWalletLedger
	payments *verify.HMACVerifier
	order    *domain.Order
}

// newWebhookStack wires the router to a real order service over the memory
// store and opens one pending order for order_GW_ord-1.
func newWebhookStack(t *testing.T, ctrl *gomock.Controller) *webhookStack {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := memory.NewRepository()
	catalog := mock.NewMockCatalog(ctrl)
	discounts := mock.NewMockDiscountValidator(ctrl)
	wallet := mock.NewMockWalletLedger(ctrl)
	gateway := mock.NewMockGatewayBridge(ctrl)
	events := mock.NewMockEventPublisher(ctrl)
	events.EXPECT().PublishSettlement(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	payments := verify.NewHMACVerifier(paymentKeySecret)

	svc, err := service.NewService(service.Deps{
		Repo:        repo,
		Catalog:     catalog,
		Discounts:   discounts,
		Wallet:      wallet,
		Gateway:     gateway,
		Verifier:    payments,
		Events:      events,
		Clock:       func() time.Time { return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC) },
		IDGenerator: func() string { return "ord-1" },
	}, service.Config{
		TaxRate:      decimal.MustParse("0.18"),
		Currency:     "INR",
		ExpiryWindow: 30 * time.Minute,
	}, zap.NewNop())
	require.NoError(t, err)

	catalog.EXPECT().PriceOf(gomock.Any(), domain.PurchaseKindDropIn, "session-1").Return(decimal.MustParse("1000"), nil)
	wallet.EXPECT().GetBalance(gomock.Any(), "contact-42").Return(decimal.MustParse("200"), nil)
	gateway.EXPECT().CreateOrder(gomock.Any(), gomock.Any(), "INR", gomock.Any()).Return("order_GW_ord-1", nil)

	checkout, err := svc.CreateCheckout(context.Background(), &domain.CheckoutRequest{
		BuyerReference:    "contact-42",
		PurchaseKind:      domain.PurchaseKindDropIn,
		PurchaseReference: "session-1",
		UseWallet:         true,
	})
	require.NoError(t, err)
	require.Equal(t, domain.OrderStatePendingConfirmation, checkout.Order.State)

	handler, err := NewCheckoutHandler(svc, webhookSigner, zap.NewNop())
	require.NoError(t, err)
	r, err := NewRouter(&config.HTTP{RateRPS: 1000, RateBurst: 1000}, mock.NewMockTokenService(ctrl), handler, nil, zap.NewNop())
	require.NoError(t, err)

	return &webhookStack{router: r, repo: repo, wallet: wallet, payments: payments, order: checkout.Order}
}

func TestGatewayWebhook_OrderState(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	const gatewayOrderID = "order_GW_ord-1"
	paymentSig := verify.NewHMACVerifier(paymentKeySecret).Sign(gatewayOrderID, "pay_1")
	paidBody := `{"gateway_order_id":"` + gatewayOrderID + `","gateway_payment_id":"pay_1","signature":"` + paymentSig + `"}`
	failedBody := `{"gateway_order_id":"` + gatewayOrderID + `","error_code":"BAD_REQUEST_ERROR","error_description":"declined"}`
	forgedBody := `{"gateway_order_id":"` + gatewayOrderID + `","gateway_payment_id":"pay_1","signature":"deadbeef"}`
	noPaymentBody := `{"gateway_order_id":"` + gatewayOrderID + `","signature":"` + paymentSig + `"}`

	type stateTest struct {
		name      string
		body      string
		signature func(body string) string
		mock      func(s *webhookStack)
		expStatus int
		expError  string
		expState  domain.OrderState
		expReason string
	}

	signed := func(body string) string { return webhookSigner.SignPayload([]byte(body)) }
	unsigned := func(string) string { return "" }

	tests := []stateTest{
		{
			name:      "unsigned failure report",
			body:      failedBody,
			signature: unsigned,
			mock:      func(s *webhookStack) {},
			expStatus: http.StatusUnauthorized,
			expError:  "invalid_signature",
			expState:  domain.OrderStatePendingConfirmation,
		},
		{
			name:      "failure report with a bad delivery signature",
			body:      failedBody,
			signature: func(string) string { return "00ff" },
			mock:      func(s *webhookStack) {},
			expStatus: http.StatusUnauthorized,
			expError:  "invalid_signature",
			expState:  domain.OrderStatePendingConfirmation,
		},
		{
			name:      "payment signed by the webhook secret only",
			body:      forgedBody,
			signature: signed,
			mock:      func(s *webhookStack) {},
			expStatus: http.StatusBadRequest,
			expError:  "verification_failed",
			expState:  domain.OrderStatePendingConfirmation,
		},
		{
			name:      "missing gateway payment id",
			body:      noPaymentBody,
			signature: signed,
			mock:      func(s *webhookStack) {},
			expStatus: http.StatusBadRequest,
			expError:  "verification_failed",
			expState:  domain.OrderStatePendingConfirmation,
		},
		{
			name:      "signed failure report",
			body:      failedBody,
			signature: signed,
			mock:      func(s *webhookStack) {},
			expStatus: http.StatusPaymentRequired,
			expError:  "payment_failed",
			expState:  domain.OrderStateFailed,
			expReason: service.ReasonGatewayReported + ": BAD_REQUEST_ERROR",
		},
		{
			name:      "signed genuine payment",
			body:      paidBody,
			signature: signed,
			mock: func(s *webhookStack) {
				s.wallet.EXPECT().Debit(gomock.Any(), "contact-42", gomock.Any(), "ord-1").
					Return(&domain.LedgerDebit{TransactionID: "ltx-1"}, nil)
			},
			expStatus: http.StatusOK,
			expState:  domain.OrderStatePaid,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s := newWebhookStack(t, mockCtrl)
			test.mock(s)

			rec := doWebhook(s.router, test.body, test.signature(test.body))
			assert.Equal(t, test.expStatus, rec.Code, rec.Body.String())
			if test.expError != "" {
				assert.Equal(t, test.expError, decodeBody(t, rec)["error"])
			}

			stored, err := s.repo.ReadOrder(context.Background(), s.order.ID)
			require.NoError(t, err)
			assert.Equal(t, test.expState, stored.State)
			assert.Equal(t, test.expReason, stored.FailureReason)
		})
	}
}

func TestGatewayWebhook_ForgedFailureDoesNotLosePayment(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	s := newWebhookStack(t, mockCtrl)
	gatewayOrderID := s.order.GatewayOrderID

	forged := `{"gateway_order_id":"` + gatewayOrderID + `","error_code":"BAD_REQUEST_ERROR"}`
	rec := doWebhook(s.router, forged, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code, rec.Body.String())

	s.wallet.EXPECT().Debit(gomock.Any(), "contact-42", gomock.Any(), s.order.ID).
		Return(&domain.LedgerDebit{TransactionID: "ltx-1"}, nil)

	genuine := `{"gateway_order_id":"` + gatewayOrderID + `","gateway_payment_id":"pay_1","signature":"` +
		s.payments.Sign(gatewayOrderID, "pay_1") + `"}`
	rec = doWebhook(s.router, genuine, webhookSigner.SignPayload([]byte(genuine)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "paid", decodeBody(t, rec)["status"])

	stored, err := s.repo.ReadOrder(context.Background(), s.order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatePaid, stored.State)
	assert.Equal(t, "pay_1", stored.GatewayPaymentID)
	assert.Equal(t, "ltx-1", stored.LedgerTxID)
}

package service_test

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MikeRez0/studiocheckout/internal/adapter/config"
	"github.com/MikeRez0/studiocheckout/internal/adapter/storage"
	"github.com/MikeRez0/studiocheckout/internal/adapter/storage/repository"
	"github.com/MikeRez0/studiocheckout/internal/adapter/verify"
	"github.com/MikeRez0/studiocheckout/internal/core/domain"
	"github.com/MikeRez0/studiocheckout/internal/core/port/mock"
	"github.com/MikeRez0/studiocheckout/internal/core/service"
	"github.com/MikeRez0/studiocheckout/internal/e2etest/testdb"
	"github.com/golang/mock/gomock"
	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var dbtest *testdb.TestDBInstance

func TestMain(m *testing.M) {
	flag.Parse()
	if !testing.Short() {
		var err error
		dbtest, err = testdb.NewTestDBInstance()
		if err != nil {
			log.Printf("database tests disabled: %s", err)
		}
	}

	code := m.Run()

	if dbtest != nil {
		dbtest.Down()
	}
	os.Exit(code)
}

var seq atomic.Int64

// unique keeps tests apart in the shared database.
func unique(prefix string) string {
	return fmt.Sprintf("%s-%d-%d", prefix, time.Now().UnixNano(), seq.Add(1))
}

func getRepo(t *testing.T) *repository.Repository {
	t.Helper()
	if dbtest == nil {
		t.Skip("postgres container is not available")
	}

	db, err := storage.NewDBStorage(context.Background(), &config.Database{DSN: dbtest.DSN, MaxConns: 8})
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, db.RunMigrations())

	repo, err := repository.NewRepository(db)
	require.NoError(t, err)
	return repo
}

func newOrder(buyer, purchase string, createdAt time.Time) *domain.Order {
	return &domain.Order{
		ID:                unique("ord"),
		BuyerReference:    buyer,
		PurchaseKind:      domain.PurchaseKindClassPack,
		PurchaseReference: purchase,
		BaseAmount:        decimal.MustParse("4500.00"),
		DiscountAmount:    decimal.MustParse("500.00"),
		WalletAmount:      decimal.Zero,
		TaxAmount:         decimal.MustParse("720.00"),
		TotalAmount:       decimal.MustParse("4720.00"),
		Currency:          "INR",
		DiscountCode:      "PACK500",
		State:             domain.OrderStateCreated,
		CreatedAt:         createdAt,
		UpdatedAt:         createdAt,
	}
}

func TestRepositoryDB_CreateAndRead(t *testing.T) {
	repo := getRepo(t)
	ctx := context.Background()

	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	o := newOrder(unique("contact"), unique("pack"), created)

	_, err := repo.CreateOrder(ctx, o)
	require.NoError(t, err)

	got, err := repo.ReadOrder(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.BuyerReference, got.BuyerReference)
	assert.Equal(t, domain.PurchaseKindClassPack, got.PurchaseKind)
	assert.True(t, o.TotalAmount.Equal(got.TotalAmount), got.TotalAmount.String())
	assert.True(t, o.DiscountAmount.Equal(got.DiscountAmount))
	assert.Equal(t, "PACK500", got.DiscountCode)
	assert.Equal(t, domain.OrderStateCreated, got.State)
	assert.True(t, created.Equal(got.CreatedAt))
	assert.Nil(t, got.SettledAt)

	open, err := repo.FindOpenOrder(ctx, o.Key())
	require.NoError(t, err)
	assert.Equal(t, o.ID, open.ID)

	_, err = repo.ReadOrder(ctx, unique("missing"))
	assert.ErrorIs(t, err, domain.ErrDataNotFound)
	_, err = repo.ReadOrderByGatewayID(ctx, "")
	assert.ErrorIs(t, err, domain.ErrDataNotFound)
}

func TestRepositoryDB_OneOpenOrderPerPurchase(t *testing.T) {
	repo := getRepo(t)
	ctx := context.Background()

	buyer, purchase := unique("contact"), unique("pack")
	first := newOrder(buyer, purchase, time.Now().UTC())
	_, err := repo.CreateOrder(ctx, first)
	require.NoError(t, err)

	_, err = repo.CreateOrder(ctx, newOrder(buyer, purchase, time.Now().UTC()))
	assert.ErrorIs(t, err, domain.ErrConflictingData)

	// another buyer may buy the same pack
	_, err = repo.CreateOrder(ctx, newOrder(unique("contact"), purchase, time.Now().UTC()))
	assert.NoError(t, err)

	_, err = repo.UpdateOrder(ctx, first.ID, func(o *domain.Order) error {
		return o.Fail("gateway_unavailable", time.Now().UTC())
	})
	require.NoError(t, err)

	_, err = repo.CreateOrder(ctx, newOrder(buyer, purchase, time.Now().UTC()))
	assert.NoError(t, err, "a terminal order must not block a new checkout")
}

func TestRepositoryDB_UpdateOrder(t *testing.T) {
	repo := getRepo(t)
	ctx := context.Background()

	o := newOrder(unique("contact"), unique("pack"), time.Now().UTC())
	_, err := repo.CreateOrder(ctx, o)
	require.NoError(t, err)

	gatewayID := unique("order_GW")
	updated, err := repo.UpdateOrder(ctx, o.ID, func(o *domain.Order) error {
		o.GatewayOrderID = gatewayID
		return o.Transition(domain.OrderStateAwaitingGateway, time.Now().UTC())
	})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStateAwaitingGateway, updated.State)

	boom := errors.New("boom")
	_, err = repo.UpdateOrder(ctx, o.ID, func(o *domain.Order) error {
		o.GatewayOrderID = "overwritten"
		_ = o.Transition(domain.OrderStatePendingConfirmation, time.Now().UTC())
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := repo.ReadOrderByGatewayID(ctx, gatewayID)
	require.NoError(t, err)
	assert.Equal(t, o.ID, got.ID)
	assert.Equal(t, domain.OrderStateAwaitingGateway, got.State, "failed update must roll back")

	_, err = repo.UpdateOrder(ctx, unique("missing"), func(*domain.Order) error { return nil })
	assert.ErrorIs(t, err, domain.ErrDataNotFound)
}

func TestRepositoryDB_UpdateKeepsAmounts(t *testing.T) {
	repo := getRepo(t)
	ctx := context.Background()

	o := newOrder(unique("contact"), unique("pack"), time.Now().UTC())
	_, err := repo.CreateOrder(ctx, o)
	require.NoError(t, err)

	updated, err := repo.UpdateOrder(ctx, o.ID, func(o *domain.Order) error {
		o.TotalAmount = decimal.One
		o.TaxAmount = decimal.Zero
		return o.Transition(domain.OrderStateAwaitingGateway, time.Now().UTC())
	})
	require.NoError(t, err)
	assert.True(t, decimal.MustParse("4720").Equal(updated.TotalAmount), updated.TotalAmount.String())

	stored, err := repo.ReadOrder(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStateAwaitingGateway, stored.State)
	assert.True(t, decimal.MustParse("4720").Equal(stored.TotalAmount), stored.TotalAmount.String())
	assert.True(t, decimal.MustParse("720").Equal(stored.TaxAmount), stored.TaxAmount.String())
}

func TestRepositoryDB_ConcurrentUpdatesSerialize(t *testing.T) {
	repo := getRepo(t)
	ctx := context.Background()

	o := newOrder(unique("contact"), unique("pack"), time.Now().UTC())
	o.State = domain.OrderStatePendingConfirmation
	_, err := repo.CreateOrder(ctx, o)
	require.NoError(t, err)

	var wg sync.WaitGroup
	var paid atomic.Int32
	for i := range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.UpdateOrder(ctx, o.ID, func(o *domain.Order) error {
				o.GatewayPaymentID = fmt.Sprintf("pay_%d", i)
				return o.Transition(domain.OrderStatePaid, time.Now().UTC())
			})
			if err == nil {
				paid.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), paid.Load(), "exactly one update may settle the order")
	got, err := repo.ReadOrder(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatePaid, got.State)
	require.NotNil(t, got.SettledAt)
}

func TestRepositoryDB_ListStaleOrders(t *testing.T) {
	repo := getRepo(t)
	ctx := context.Background()

	// far in the past so rows from other tests never qualify
	base := time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)
	stale := newOrder(unique("contact"), unique("pack"), base)
	fresh := newOrder(unique("contact"), unique("pack"), base.Add(time.Hour))
	settled := newOrder(unique("contact"), unique("pack"), base)
	for _, o := range []*domain.Order{stale, fresh, settled} {
		_, err := repo.CreateOrder(ctx, o)
		require.NoError(t, err)
	}
	_, err := repo.UpdateOrder(ctx, settled.ID, func(o *domain.Order) error {
		return o.Transition(domain.OrderStatePaid, base)
	})
	require.NoError(t, err)

	list, err := repo.ListStaleOrders(ctx, base.Add(30*time.Minute), 0)
	require.NoError(t, err)

	ids := make([]string, 0, len(list))
	for _, o := range list {
		ids = append(ids, o.ID)
	}
	assert.Contains(t, ids, stale.ID)
	assert.NotContains(t, ids, fresh.ID)
	assert.NotContains(t, ids, settled.ID)
}

func TestServiceDB_CheckoutAndConfirm(t *testing.T) {
	repo := getRepo(t)
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	catalog := mock.NewMockCatalog(mockCtrl)
	discounts := mock.NewMockDiscountValidator(mockCtrl)
	wallet := mock.NewMockWalletLedger(mockCtrl)
	gateway := mock.NewMockGatewayBridge(mockCtrl)
	verifier := verify.NewHMACVerifier("whsec_db")

	logger, _ := zap.NewDevelopment()
	svc, err := service.NewService(service.Deps{
		Repo:      repo,
		Catalog:   catalog,
		Discounts: discounts,
		Wallet:    wallet,
		Gateway:   gateway,
		Verifier:  verifier,
	}, service.Config{
		TaxRate:      decimal.MustParse("0.18"),
		Currency:     "INR",
		ExpiryWindow: 30 * time.Minute,
	}, logger)
	require.NoError(t, err)

	buyer, pack := unique("contact"), unique("pack")
	gatewayID := unique("order_GW")

	catalog.EXPECT().PriceOf(gomock.Any(), domain.PurchaseKindClassPack, pack).Return(decimal.MustParse("4500"), nil)
	discounts.EXPECT().Validate(gomock.Any(), "PACK500", gomock.Any()).
		Return(&domain.DiscountResult{Valid: true, Amount: decimal.MustParse("500")}, nil)
	wallet.EXPECT().GetBalance(gomock.Any(), buyer).Return(decimal.MustParse("1000"), nil)
	gateway.EXPECT().CreateOrder(gomock.Any(), gomock.Any(), "INR", gomock.Any()).Return(gatewayID, nil)

	req := &domain.CheckoutRequest{
		BuyerReference:    buyer,
		PurchaseKind:      domain.PurchaseKindClassPack,
		PurchaseReference: pack,
		DiscountCode:      "pack500",
		UseWallet:         true,
	}
	checkout, err := svc.CreateCheckout(context.Background(), req)
	require.NoError(t, err)

	o := checkout.Order
	assert.Equal(t, domain.OrderStatePendingConfirmation, o.State)
	assert.True(t, decimal.MustParse("3540").Equal(o.TotalAmount), o.TotalAmount.String())
	assert.Equal(t, int64(354000), checkout.AmountMinor)

	// the open order is found before anything is priced again
	_, err = svc.CreateCheckout(context.Background(), req)
	var pending *domain.AlreadyPendingError
	require.ErrorAs(t, err, &pending)
	assert.Equal(t, o.ID, pending.OrderID)

	wallet.EXPECT().Debit(gomock.Any(), buyer, gomock.Any(), o.ID).
		Return(&domain.LedgerDebit{TransactionID: "ltx-db"}, nil)

	confirmation := &domain.Confirmation{
		GatewayOrderID:   gatewayID,
		GatewayPaymentID: "pay_db",
		Signature:        verifier.Sign(gatewayID, "pay_db"),
	}
	paid, err := svc.ConfirmPayment(context.Background(), o.ID, confirmation)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatePaid, paid.State)

	// a webhook for the same payment is a no-op
	again, err := svc.ConfirmGatewayPayment(context.Background(), confirmation)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatePaid, again.State)

	stored, err := repo.ReadOrder(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, "pay_db", stored.GatewayPaymentID)
	assert.Equal(t, "ltx-db", stored.LedgerTxID)
	require.NotNil(t, stored.SettledAt)
}

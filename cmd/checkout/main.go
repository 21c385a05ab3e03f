package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MikeRez0/studiocheckout/internal/adapter/auth"
	"github.com/MikeRez0/studiocheckout/internal/adapter/client/gateway"
	"github.com/MikeRez0/studiocheckout/internal/adapter/client/studio"
	"github.com/MikeRez0/studiocheckout/internal/adapter/config"
	"github.com/MikeRez0/studiocheckout/internal/adapter/events"
	"github.com/MikeRez0/studiocheckout/internal/adapter/handler/http"
	"github.com/MikeRez0/studiocheckout/internal/adapter/logger"
	"github.com/MikeRez0/studiocheckout/internal/adapter/metrics"
	"github.com/MikeRez0/studiocheckout/internal/adapter/scheduler"
	"github.com/MikeRez0/studiocheckout/internal/adapter/storage"
	"github.com/MikeRez0/studiocheckout/internal/adapter/storage/memory"
	"github.com/MikeRez0/studiocheckout/internal/adapter/storage/repository"
	"github.com/MikeRez0/studiocheckout/internal/adapter/verify"
	"github.com/MikeRez0/studiocheckout/internal/core/port"
	"github.com/MikeRez0/studiocheckout/internal/core/service"
	"github.com/govalues/decimal"
	"go.uber.org/zap"
)

func main() {
	conf, err := config.NewConfig(os.Args[1:])
	if err != nil {
		fmt.Printf("config error:%s", err)
		os.Exit(2)
	}

	log, err := logger.NewLogger(conf.App)
	if err != nil {
		fmt.Printf("error creating log: %s", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, conf, log); err != nil {
		log.Error("checkout service stopped", zap.Error(err))
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, conf *config.Config, log *zap.Logger) error {
	repo, closeRepo, err := newRepository(ctx, conf.Database, log)
	if err != nil {
		return err
	}
	defer closeRepo()

	tokenService, err := auth.New(conf.Auth.SymmetricKeyHex, conf.Auth.TokenTTL)
	if err != nil {
		return fmt.Errorf("token service: %w", err)
	}
	if conf.Auth.SymmetricKeyHex == "" {
		log.Warn("no AUTH_SYMMETRIC_KEY set, buyer tokens will not survive a restart")
	}

	gw, err := gateway.NewGatewayClient(conf.Gateway, log.Named("Gateway"))
	if err != nil {
		return fmt.Errorf("gateway client: %w", err)
	}
	studioClient, err := studio.NewStudioClient(conf.Studio, log.Named("Studio"))
	if err != nil {
		return fmt.Errorf("studio client: %w", err)
	}

	publisher := events.New(conf.Events, log.Named("Events"))
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Warn("close event publisher", zap.Error(err))
		}
	}()

	m := metrics.NewMetrics(nil)

	taxRate, err := decimal.Parse(conf.Checkout.TaxRate)
	if err != nil {
		return fmt.Errorf("tax rate %q: %w", conf.Checkout.TaxRate, err)
	}

	svc, err := service.NewService(service.Deps{
		Repo:      repo,
		Catalog:   studioClient,
		Discounts: studioClient,
		Wallet:    studioClient,
		Gateway:   gw,
		Verifier:  verify.NewHMACVerifier(conf.Gateway.KeySecret),
		Events:    publisher,
		Observer:  m,
	}, service.Config{
		TaxRate:          taxRate,
		Currency:         conf.Checkout.Currency,
		ExpiryWindow:     conf.Checkout.ExpiryWindow,
		GatewayTimeout:   conf.Gateway.Timeout,
		GatewayPublicKey: conf.Gateway.PublicKey,
	}, log.Named("Orchestrator"))
	if err != nil {
		return fmt.Errorf("order service: %w", err)
	}

	sweeper := scheduler.NewSweeper(svc, conf.Checkout.SweepInterval, log.Named("Sweeper"))
	go sweeper.Run(ctx)

	if conf.Gateway.WebhookSecret == "" {
		log.Warn("gateway webhook secret is not set, every webhook will be rejected")
	}
	checkoutHandler, err := http.NewCheckoutHandler(svc,
		verify.NewHMACVerifier(conf.Gateway.WebhookSecret), log.Named("Checkout handler"))
	if err != nil {
		return fmt.Errorf("checkout handler: %w", err)
	}

	r, err := http.NewRouter(conf.HTTP, tokenService, checkoutHandler, m, log.Named("Router"))
	if err != nil {
		return fmt.Errorf("router: %w", err)
	}

	return r.Serve(ctx, conf.HTTP.HostString)
}

// newRepository opens Postgres when a DSN is configured and falls back to the
// in-memory store otherwise.
func newRepository(ctx context.Context, conf *config.Database, log *zap.Logger) (port.Repository, func(), error) {
	if conf.DSN == "" {
		log.Warn("no DATABASE_URI set, orders are kept in memory")
		return memory.NewRepository(), func() {}, nil
	}

	db, err := storage.NewDBStorage(ctx, conf)
	if err != nil {
		return nil, nil, fmt.Errorf("database: %w", err)
	}
	err = db.RunMigrations()
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("database migration: %w", err)
	}

	repo, err := repository.NewRepository(db)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("order repository: %w", err)
	}
	return repo, db.Close, nil
}

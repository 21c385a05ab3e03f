package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/MikeRez0/studiocheckout/internal/adapter/config"
	"github.com/MikeRez0/studiocheckout/internal/core/port"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

type Router struct {
	*gin.Engine
	logger *zap.Logger
}

// Metrics is what the router needs from the metrics adapter.
type Metrics interface {
	requestObserver
	Handler() http.Handler
}

func NewRouter(
	conf *config.HTTP,
	tokenService port.TokenService,
	checkoutHandler *CheckoutHandler,
	metrics Metrics,
	logger *zap.Logger) (*Router, error) {

	router := gin.New()
	router.Use(gin.Recovery())

	h := NewHandler(logger)
	router.Use(h.observe(metrics))

	corsConf := cors.DefaultConfig()
	if len(conf.AllowOrigins) > 0 {
		corsConf.AllowOrigins = conf.AllowOrigins
	} else {
		corsConf.AllowAllOrigins = true
	}
	corsConf.AddAllowHeaders(authHeaderKey, webhookSignatureHeader)
	router.Use(cors.New(corsConf))

	// Swagger
	router.GET("/openapi.json", serveOpenAPI)
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/openapi.json")))

	router.GET("/health", checkoutHandler.Health)
	if metrics != nil {
		router.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	limiter := newRateLimiter(conf.RateRPS, conf.RateBurst)

	checkout := router.Group("/checkout")
	{
		checkout.Use(h.authCheck(tokenService), h.rateLimit(limiter))
		checkout.POST("", checkoutHandler.CreateCheckout)
		checkout.POST("/quote", checkoutHandler.Quote)
		checkout.GET("/:order_id", checkoutHandler.GetOrder)
		checkout.POST("/:order_id/confirm", checkoutHandler.ConfirmPayment)
	}

	webhooks := router.Group("/webhooks")
	{
		webhooks.Use(h.rateLimit(limiter))
		webhooks.POST("/gateway", checkoutHandler.GatewayWebhook)
	}

	return &Router{Engine: router, logger: logger}, nil
}

// Serve starts the HTTP server and shuts it down gracefully when ctx is done.
func (r *Router) Serve(ctx context.Context, listenAddr string) error {
	srv := &http.Server{
		Addr:              listenAddr,
		Handler:           r.Engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		r.logger.Info("HTTP server listening", zap.String("addr", listenAddr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	if err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

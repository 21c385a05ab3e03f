package http

import (
	"strings"
	"sync"
	"time"

	"github.com/MikeRez0/studiocheckout/internal/core/domain"
	"github.com/MikeRez0/studiocheckout/internal/core/port"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const authHeaderKey = "Authorization"
const authType = "Bearer"
const buyerPayloadKey = "buyer_payload"

func (h *Handler) authCheck(tokenService port.TokenService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.Request.Header.Get(authHeaderKey)
		if len(header) == 0 {
			h.handleAbort(ctx, domain.ErrEmptyAuthorizationHeader)
			return
		}

		words := strings.Fields(header)
		if len(words) != 2 {
			h.handleAbort(ctx, domain.ErrInvalidAuthorizationHeader)
			return
		}
		if words[0] != authType {
			h.handleAbort(ctx, domain.ErrInvalidAuthorizationType)
			return
		}
		token := words[1]
		payload, err := tokenService.VerifyToken(token)
		if err != nil {
			h.handleAbort(ctx, domain.ErrInvalidToken)
			return
		}

		ctx.Set(buyerPayloadKey, payload)

		ctx.Next()
	}
}

func getAuthPayload(ctx *gin.Context) *port.TokenPayload {
	return ctx.MustGet(buyerPayloadKey).(*port.TokenPayload)
}

type clientLimiter struct {
	limiter *rate.Limiter
	last    time.Time
}

// rateLimiter keeps a token bucket per buyer, or per client IP before auth.
type rateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*clientLimiter
	rps      rate.Limit
	burst    int
	idle     time.Duration
	now      func() time.Time
	pruned   time.Time
}

func newRateLimiter(rps float64, burst int) *rateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &rateLimiter{
		limiters: make(map[string]*clientLimiter),
		rps:      rate.Limit(rps),
		burst:    burst,
		idle:     30 * time.Minute,
		now:      time.Now,
	}
}

func (rl *rateLimiter) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.pruned) > rl.idle {
		for k, l := range rl.limiters {
			if now.Sub(l.last) > rl.idle {
				delete(rl.limiters, k)
			}
		}
		rl.pruned = now
	}

	l, ok := rl.limiters[key]
	if !ok {
		l = &clientLimiter{limiter: rate.NewLimiter(rl.rps, rl.burst)}
		rl.limiters[key] = l
	}
	l.last = now
	return l.limiter.AllowN(now, 1)
}

func (h *Handler) rateLimit(rl *rateLimiter) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		key := ctx.ClientIP()
		if v, ok := ctx.Get(buyerPayloadKey); ok {
			key = "buyer:" + v.(*port.TokenPayload).BuyerReference
		}
		if !rl.allow(key) {
			h.handleAbort(ctx, domain.ErrRateLimited)
			return
		}
		ctx.Next()
	}
}

type requestObserver interface {
	ObserveRequest(handler string, status int, elapsed time.Duration)
}

// observe records request counts and latency, and logs each request.
func (h *Handler) observe(m requestObserver) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()
		elapsed := time.Since(start)

		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := ctx.Writer.Status()
		if m != nil {
			m.ObserveRequest(route, status, elapsed)
		}

		h.logger.Debug("request",
			zap.String("method", ctx.Request.Method),
			zap.String("route", route),
			zap.Int("status", status),
			zap.Duration("elapsed", elapsed),
			zap.Strings("errors", ctx.Errors.Errors()))
	}
}

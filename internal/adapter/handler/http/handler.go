package http

import (
	"errors"
	"net/http"

	"github.com/MikeRez0/studiocheckout/internal/core/domain"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type errorMapping struct {
	err    error
	status int
	code   string
	reason string
}

// errorStatusMap is matched in order with errors.Is, so more specific errors
// come first. Reasons are fixed: collaborator text never reaches the client.
var errorStatusMap = []errorMapping{
	{domain.ErrValidation, http.StatusBadRequest, "validation_error", "request is not valid"},
	{domain.ErrBadRequest, http.StatusBadRequest, "bad_request", "request body could not be parsed"},
	{domain.ErrAlreadyPending, http.StatusConflict, "already_pending", "a checkout for this purchase is already in progress"},
	{domain.ErrGatewayUnavailable, http.StatusBadGateway, "gateway_unavailable", "payment provider is unavailable, start a new checkout"},
	{domain.ErrVerificationFailed, http.StatusBadRequest, "verification_failed", "payment could not be verified"},
	{domain.ErrPaymentFailed, http.StatusPaymentRequired, "payment_failed", "payment was declined"},
	{domain.ErrLedgerInconsistency, http.StatusInternalServerError, "ledger_inconsistency", "payment received, settlement is under review"},
	{domain.ErrOrderExpired, http.StatusGone, "order_expired", "checkout has expired"},
	{domain.ErrInvalidTransition, http.StatusConflict, "invalid_transition", "order can no longer be changed"},
	{domain.ErrInsufficientBalance, http.StatusPaymentRequired, "insufficient_balance", "wallet balance is not enough"},
	{domain.ErrWalletUnavailable, http.StatusServiceUnavailable, "wallet_unavailable", "wallet is unavailable"},
	{domain.ErrCatalogUnavailable, http.StatusServiceUnavailable, "catalog_unavailable", "catalog is unavailable"},
	{domain.ErrDiscountUnavailable, http.StatusServiceUnavailable, "discount_unavailable", "discount service is unavailable"},
	{domain.ErrDataNotFound, http.StatusNotFound, "not_found", "order not found"},
	{domain.ErrConflictingData, http.StatusConflict, "conflict", "data conflicts with existing data"},

	{domain.ErrEmptyAuthorizationHeader, http.StatusUnauthorized, "unauthorized", "authorization header is not provided"},
	{domain.ErrInvalidAuthorizationHeader, http.StatusUnauthorized, "unauthorized", "authorization header format is invalid"},
	{domain.ErrInvalidAuthorizationType, http.StatusUnauthorized, "unauthorized", "authorization type is not supported"},
	{domain.ErrInvalidToken, http.StatusUnauthorized, "unauthorized", "access token is invalid"},
	{domain.ErrExpiredToken, http.StatusUnauthorized, "unauthorized", "access token has expired"},
	{domain.ErrWebhookSignature, http.StatusUnauthorized, "invalid_signature", "webhook signature is invalid"},
	{domain.ErrForbidden, http.StatusForbidden, "forbidden", "buyer is forbidden to access the resource"},
	{domain.ErrRateLimited, http.StatusTooManyRequests, "rate_limited", "too many requests"},

	{domain.ErrInternal, http.StatusInternalServerError, "internal", "internal error"},
}

type errorResponse struct {
	Status  string `json:"status,omitempty"`
	Error   string `json:"error"`
	Reason  string `json:"reason"`
	OrderID string `json:"order_id,omitempty"`
}

type Handler struct {
	logger *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{logger: logger}
}

func lookupError(err error) (int, errorResponse) {
	for _, m := range errorStatusMap {
		if errors.Is(err, m.err) {
			resp := errorResponse{Error: m.code, Reason: m.reason}

			var vErr *domain.ValidationError
			if errors.As(err, &vErr) {
				resp.Reason = vErr.Reason
			}
			var pending *domain.AlreadyPendingError
			if errors.As(err, &pending) {
				resp.OrderID = pending.OrderID
			}
			return m.status, resp
		}
	}
	return http.StatusInternalServerError, errorResponse{Error: "internal", Reason: "internal error"}
}

// handleValidationError sends a 400 for a body that failed to bind or match its schema
func (h *Handler) handleValidationError(ctx *gin.Context, err error) {
	h.logger.Debug("invalid request", zap.String("path", ctx.FullPath()), zap.Error(err))
	ctx.JSON(http.StatusBadRequest, errorResponse{Error: "bad_request", Reason: "request body could not be parsed"})
}

// handleAbort sends an error response and aborts the middleware chain
func (h *Handler) handleAbort(ctx *gin.Context, err error) {
	statusCode, resp := lookupError(err)
	if statusCode == http.StatusInternalServerError {
		h.logger.Error("aborting request", zap.Error(err))
	}
	_ = ctx.Error(err)
	ctx.AbortWithStatusJSON(statusCode, resp)
}

func (h *Handler) handleError(ctx *gin.Context, err error) {
	statusCode, resp := lookupError(err)
	if statusCode == http.StatusInternalServerError {
		h.logger.Error("error processing request", zap.String("path", ctx.FullPath()), zap.Error(err))
	}
	_ = ctx.Error(err)
	ctx.JSON(statusCode, resp)
}

// handlePaymentError answers a failed confirmation with status "failed".
func (h *Handler) handlePaymentError(ctx *gin.Context, err error) {
	statusCode, resp := lookupError(err)
	if statusCode == http.StatusInternalServerError {
		h.logger.Error("error confirming payment", zap.Error(err))
	}
	resp.Status = "failed"
	_ = ctx.Error(err)
	ctx.JSON(statusCode, resp)
}

// handleSuccessWithStatus sends a success response with the specified status code and optional data
func (h *Handler) handleSuccessWithStatus(ctx *gin.Context, data any, status int) {
	if data != nil {
		ctx.JSON(status, data)
	} else {
		ctx.Status(status)
	}
}

func (h *Handler) handleSuccess(ctx *gin.Context, data any) {
	h.handleSuccessWithStatus(ctx, data, http.StatusOK)
}

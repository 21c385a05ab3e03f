package domain

import (
	"errors"
)

var (
	ErrInternal = errors.New("internal error")

	// * Data errors.
	ErrDataNotFound    = errors.New("data not found")
	ErrConflictingData = errors.New("data conflicts with existing data in unique column")

	// * Communication errors.
	ErrBadRequest = errors.New("error parsing request")

	// * Authority errors.
	ErrTokenCreation              = errors.New("error creating token")
	ErrExpiredToken               = errors.New("access token has expired")
	ErrInvalidToken               = errors.New("access token is invalid")
	ErrEmptyAuthorizationHeader   = errors.New("authorization header is not provided")
	ErrInvalidAuthorizationHeader = errors.New("authorization header format is invalid")
	ErrInvalidAuthorizationType   = errors.New("authorization type is not supported")
	ErrForbidden                  = errors.New("buyer is forbidden to access the resource")
	ErrRateLimited                = errors.New("too many requests")
	ErrWebhookSignature           = errors.New("webhook signature is invalid")

	// * Checkout errors.
	ErrValidation          = errors.New("checkout request is not valid")
	ErrAlreadyPending      = errors.New("checkout already pending for this purchase")
	ErrGatewayUnavailable  = errors.New("payment gateway is unavailable")
	ErrVerificationFailed  = errors.New("payment verification failed")
	ErrLedgerInconsistency = errors.New("wallet ledger and order state disagree")
	ErrInvalidTransition   = errors.New("order state transition is not allowed")
	ErrOrderExpired        = errors.New("order has expired")
	ErrPaymentFailed       = errors.New("payment reported failed by gateway")
	ErrWalletUnavailable   = errors.New("wallet ledger is unavailable")
	ErrCatalogUnavailable  = errors.New("catalog is unavailable")
	ErrDiscountUnavailable = errors.New("discount service is unavailable")
	ErrInsufficientBalance = errors.New("wallet balance is not enough")
)

// ValidationError is a rejected checkout request with a reason safe to show to the buyer.
type ValidationError struct {
	Reason string
}

func NewValidationError(reason string) *ValidationError {
	return &ValidationError{Reason: reason}
}

func (e *ValidationError) Error() string {
	return ErrValidation.Error() + ": " + e.Reason
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// AlreadyPendingError points at the order that blocks a new checkout.
type AlreadyPendingError struct {
	OrderID string
}

func (e *AlreadyPendingError) Error() string {
	return ErrAlreadyPending.Error() + ": " + e.OrderID
}

func (e *AlreadyPendingError) Unwrap() error {
	return ErrAlreadyPending
}

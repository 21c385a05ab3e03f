// Package studio talks to the studio backend that owns the class catalog,
// discount codes and buyer wallets.
package studio

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/MikeRez0/studiocheckout/internal/adapter/config"
	"github.com/MikeRez0/studiocheckout/internal/core/domain"
	"github.com/govalues/decimal"
	"go.uber.org/zap"
)

var ErrBadResponse = errors.New("unexpected studio response")

type StudioClient struct {
	logger  *zap.Logger
	client  *http.Client
	baseURL string
	token   string
}

func NewStudioClient(cfg *config.Studio, log *zap.Logger) (*StudioClient, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("studio base url is required")
	}

	return &StudioClient{
		logger:  log,
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
	}, nil
}

// jsonAmount accepts both quoted and bare JSON numbers.
type jsonAmount decimal.Decimal

func (a *jsonAmount) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*a = jsonAmount(decimal.Zero)
		return nil
	}
	d, err := decimal.Parse(s)
	if err != nil {
		return fmt.Errorf("amount %q: %w", s, err)
	}
	*a = jsonAmount(d)
	return nil
}

func (a jsonAmount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + decimal.Decimal(a).String() + `"`), nil
}

type priceResponse struct {
	Price jsonAmount `json:"price"`
}

func (c *StudioClient) PriceOf(ctx context.Context, kind domain.PurchaseKind, reference string) (decimal.Decimal, error) {
	path := "/api/catalog/" + url.PathEscape(strings.ToLower(string(kind))) + "/" + url.PathEscape(reference)

	var result priceResponse
	err := c.do(ctx, http.MethodGet, path, nil, &result)
	if err != nil {
		return decimal.Zero, err
	}

	price := decimal.Decimal(result.Price)
	if price.IsNeg() {
		return decimal.Zero, fmt.Errorf("%w: negative price %s", ErrBadResponse, price)
	}
	return price, nil
}

type discountRequest struct {
	Code       string     `json:"code"`
	BaseAmount jsonAmount `json:"base_amount"`
}

type discountResponse struct {
	Valid  bool       `json:"valid"`
	Amount jsonAmount `json:"amount"`
	Reason string     `json:"reason"`
}

func (c *StudioClient) Validate(ctx context.Context, code string, baseAmount decimal.Decimal) (*domain.DiscountResult, error) {
	var result discountResponse
	err := c.do(ctx, http.MethodPost, "/api/discounts/validate",
		discountRequest{Code: code, BaseAmount: jsonAmount(baseAmount)}, &result)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return &domain.DiscountResult{Valid: false, Reason: "unknown code"}, nil
		}
		return nil, err
	}

	return &domain.DiscountResult{
		Valid:  result.Valid,
		Amount: decimal.Decimal(result.Amount),
		Reason: result.Reason,
	}, nil
}

type balanceResponse struct {
	Balance jsonAmount `json:"balance"`
}

// GetBalance returns zero for buyers that never had a wallet.
func (c *StudioClient) GetBalance(ctx context.Context, buyerReference string) (decimal.Decimal, error) {
	var result balanceResponse
	err := c.do(ctx, http.MethodGet, "/api/wallets/"+url.PathEscape(buyerReference), nil, &result)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}
	return decimal.Decimal(result.Balance), nil
}

type debitRequest struct {
	Amount         jsonAmount `json:"amount"`
	IdempotencyKey string     `json:"idempotency_key"`
}

type debitResponse struct {
	TransactionID string `json:"transaction_id"`
}

func (c *StudioClient) Debit(ctx context.Context, buyerReference string, amount decimal.Decimal,
	idempotencyKey string) (*domain.LedgerDebit, error) {
	var result debitResponse
	err := c.do(ctx, http.MethodPost, "/api/wallets/"+url.PathEscape(buyerReference)+"/debits",
		debitRequest{Amount: jsonAmount(amount), IdempotencyKey: idempotencyKey}, &result)
	if err != nil {
		return nil, err
	}
	if result.TransactionID == "" {
		return nil, fmt.Errorf("%w: empty transaction id", ErrBadResponse)
	}

	c.logger.Debug("Wallet debited",
		zap.String("buyer", buyerReference),
		zap.Stringer("amount", amount),
		zap.String("ledger_tx_id", result.TransactionID))

	return &domain.LedgerDebit{TransactionID: result.TransactionID}, nil
}

func (c *StudioClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader = http.NoBody
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("studio request encode: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	requestStr := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, requestStr, reader)
	if err != nil {
		return fmt.Errorf("error on %s : %w", requestStr, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request error %s : %w", requestStr, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
	case http.StatusNotFound:
		return domain.ErrDataNotFound
	case http.StatusPaymentRequired, http.StatusUnprocessableEntity:
		return domain.ErrInsufficientBalance
	default:
		c.logger.Error("unexpected status for studio request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		return fmt.Errorf("%w: status %d for %s %s", ErrBadResponse, resp.StatusCode, method, path)
	}

	err = json.NewDecoder(resp.Body).Decode(out)
	if err != nil {
		return fmt.Errorf("error on response decode: %w", err)
	}
	return nil
}

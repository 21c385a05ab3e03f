// Package gateway creates payment orders at the card/UPI provider.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/MikeRez0/studiocheckout/internal/adapter/config"
	"github.com/MikeRez0/studiocheckout/internal/core/pricing"
	"github.com/govalues/decimal"
	"go.uber.org/zap"
)

const (
	ordersPath        = "/v1/orders"
	defaultRetryAfter = time.Second
	maxAttempts       = 2
)

var ErrBadResponse = errors.New("unexpected gateway response")

type GatewayClient struct {
	logger    *zap.Logger
	client    *http.Client
	baseURL   string
	keyID     string
	keySecret string
}

func NewGatewayClient(cfg *config.Gateway, log *zap.Logger) (*GatewayClient, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("gateway base url is required")
	}
	if cfg.KeyID == "" || cfg.KeySecret == "" {
		return nil, errors.New("gateway key id and secret are required")
	}

	return &GatewayClient{
		logger:    log,
		client:    &http.Client{Timeout: cfg.Timeout},
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		keyID:     cfg.KeyID,
		keySecret: cfg.KeySecret,
	}, nil
}

type createOrderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt,omitempty"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type createOrderResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type errorResponse struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

type errTooManyRequests struct {
	RetryAfter time.Duration
}

func (e *errTooManyRequests) Error() string {
	return fmt.Sprintf("Too Many Requests. Retry-After: %s", e.RetryAfter)
}

// CreateOrder registers amount with the provider and returns its order id.
// A throttled request is retried once when the deadline allows it.
func (c *GatewayClient) CreateOrder(ctx context.Context, amount decimal.Decimal, currency string,
	metadata map[string]string) (string, error) {
	minor, err := pricing.MinorUnits(amount)
	if err != nil {
		return "", fmt.Errorf("gateway amount: %w", err)
	}
	if minor <= 0 {
		return "", fmt.Errorf("gateway amount must be positive, got %s", amount)
	}

	body, err := json.Marshal(createOrderRequest{
		Amount:   minor,
		Currency: currency,
		Receipt:  metadata["order_id"],
		Notes:    metadata,
	})
	if err != nil {
		return "", fmt.Errorf("gateway request encode: %w", err)
	}

	for attempt := 1; ; attempt++ {
		id, err := c.postOrder(ctx, body)
		if err == nil {
			return id, nil
		}

		var throttled *errTooManyRequests
		if !errors.As(err, &throttled) || attempt >= maxAttempts || !fitsDeadline(ctx, throttled.RetryAfter) {
			return "", err
		}

		c.logger.Debug("Gateway throttled, waiting",
			zap.String("order_id", metadata["order_id"]),
			zap.Duration("retry_after", throttled.RetryAfter))

		t := time.NewTimer(throttled.RetryAfter)
		select {
		case <-t.C:
		case <-ctx.Done():
			t.Stop()
			return "", ctx.Err()
		}
	}
}

func (c *GatewayClient) postOrder(ctx context.Context, body []byte) (string, error) {
	requestStr := c.baseURL + ordersPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestStr, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("error on %s : %w", requestStr, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request error %s : %w", requestStr, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		retryAfter := defaultRetryAfter
		if sec, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil {
			retryAfter = time.Duration(sec) * time.Second
		}
		return "", &errTooManyRequests{RetryAfter: retryAfter}
	case resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated:
		var e errorResponse
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		_ = json.Unmarshal(raw, &e)
		c.logger.Error("unexpected status for gateway order",
			zap.Int("status", resp.StatusCode),
			zap.String("code", e.Error.Code),
			zap.String("description", e.Error.Description))
		return "", fmt.Errorf("%w: status %d", ErrBadResponse, resp.StatusCode)
	}

	var result createOrderResponse
	err = json.NewDecoder(resp.Body).Decode(&result)
	if err != nil {
		return "", fmt.Errorf("error on response decode: %w", err)
	}
	if result.ID == "" {
		return "", fmt.Errorf("%w: empty order id", ErrBadResponse)
	}

	return result.ID, nil
}

func fitsDeadline(ctx context.Context, wait time.Duration) bool {
	deadline, ok := ctx.Deadline()
	return !ok || time.Until(deadline) > wait
}

package studio

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MikeRez0/studiocheckout/internal/adapter/config"
	"github.com/MikeRez0/studiocheckout/internal/core/domain"
	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, mux *http.ServeMux) *StudioClient {
	t.Helper()

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c, err := NewStudioClient(&config.Studio{BaseURL: srv.URL + "/", Token: "studio-token", Timeout: time.Second}, zap.NewNop())
	require.NoError(t, err)
	return c
}

func TestStudioClient_PriceOf(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/catalog/drop_in/session-1", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer studio-token", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"price":"1000.00"}`))
	})
	mux.HandleFunc("/api/catalog/class_pack/pack-10", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"price":4500.5}`))
	})
	mux.HandleFunc("/api/catalog/drop_in/broken", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"price":"-1"}`))
	})
	c := newTestClient(t, mux)

	price, err := c.PriceOf(context.Background(), domain.PurchaseKindDropIn, "session-1")
	require.NoError(t, err)
	assert.True(t, decimal.MustParse("1000").Equal(price))

	price, err = c.PriceOf(context.Background(), domain.PurchaseKindClassPack, "pack-10")
	require.NoError(t, err)
	assert.True(t, decimal.MustParse("4500.5").Equal(price))

	_, err = c.PriceOf(context.Background(), domain.PurchaseKindDropIn, "missing")
	assert.ErrorIs(t, err, domain.ErrDataNotFound)

	_, err = c.PriceOf(context.Background(), domain.PurchaseKindDropIn, "broken")
	assert.ErrorIs(t, err, ErrBadResponse)
}

func TestStudioClient_Validate(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/discounts/validate", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "1000", req["base_amount"])

		switch req["code"] {
		case "SAVE100":
			_, _ = w.Write([]byte(`{"valid":true,"amount":"100"}`))
		case "OLD":
			_, _ = w.Write([]byte(`{"valid":false,"reason":"expired"}`))
		case "GONE":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	})
	c := newTestClient(t, mux)
	base := decimal.MustParse("1000")

	res, err := c.Validate(context.Background(), "SAVE100", base)
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.True(t, decimal.MustParse("100").Equal(res.Amount))

	res, err = c.Validate(context.Background(), "OLD", base)
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Equal(t, "expired", res.Reason)

	res, err = c.Validate(context.Background(), "GONE", base)
	require.NoError(t, err)
	assert.False(t, res.Valid)

	_, err = c.Validate(context.Background(), "BOOM", base)
	assert.ErrorIs(t, err, ErrBadResponse)
}

func TestStudioClient_Wallet(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/wallets/contact-42", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"balance":"200.00"}`))
	})
	mux.HandleFunc("/api/wallets/contact-42/debits", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var req map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "200.00", req["amount"])
		assert.Equal(t, "ord-1", req["idempotency_key"])

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"transaction_id":"ltx-1"}`))
	})
	mux.HandleFunc("/api/wallets/contact-7/debits", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	})
	c := newTestClient(t, mux)

	balance, err := c.GetBalance(context.Background(), "contact-42")
	require.NoError(t, err)
	assert.True(t, decimal.MustParse("200").Equal(balance))

	balance, err = c.GetBalance(context.Background(), "nobody")
	require.NoError(t, err)
	assert.True(t, balance.IsZero())

	debit, err := c.Debit(context.Background(), "contact-42", decimal.MustParse("200.00"), "ord-1")
	require.NoError(t, err)
	assert.Equal(t, "ltx-1", debit.TransactionID)

	_, err = c.Debit(context.Background(), "contact-7", decimal.MustParse("5"), "ord-2")
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
}

func TestStudioClient_Unreachable(t *testing.T) {
	c, err := NewStudioClient(&config.Studio{BaseURL: "http://127.0.0.1:1", Timeout: 200 * time.Millisecond}, zap.NewNop())
	require.NoError(t, err)

	_, err = c.PriceOf(context.Background(), domain.PurchaseKindDropIn, "session-1")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrDataNotFound)
}

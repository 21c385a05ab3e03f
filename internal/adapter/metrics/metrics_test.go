package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MikeRez0/studiocheckout/internal/core/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_ObserveTransition(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.ObserveTransition("", domain.OrderStateCreated)
	m.ObserveTransition(domain.OrderStateCreated, domain.OrderStateAwaitingGateway)
	m.ObserveTransition(domain.OrderStateAwaitingGateway, domain.OrderStateFailed)
	m.ObserveTransition("", domain.OrderStateCreated)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Orders.WithLabelValues("CREATED")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Orders.WithLabelValues("FAILED")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Orders.WithLabelValues("PAID")))
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics(nil)
	m.ObserveRequest("create_checkout", http.StatusCreated, 40*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `checkout_http_requests_total{handler="create_checkout",status="201"} 1`)
	assert.Contains(t, string(body), `checkout_http_request_duration_ms_bucket{handler="create_checkout",le="50"} 1`)
}

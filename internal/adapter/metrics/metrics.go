package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/MikeRez0/studiocheckout/internal/core/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	Orders    *prometheus.CounterVec
	Requests  *prometheus.CounterVec
	LatencyMS *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

// NewMetrics registers checkout metrics on reg. A nil reg uses a fresh registry.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}

	orders := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "checkout",
		Name:      "orders_total",
		Help:      "Order state transitions by target state.",
	}, []string{"state"})
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "checkout",
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"handler", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "checkout",
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
	}, []string{"handler"})

	reg.MustRegister(orders, requests, latency)
	return &Metrics{Orders: orders, Requests: requests, LatencyMS: latency, gatherer: reg}
}

// ObserveTransition counts orders entering a state.
func (m *Metrics) ObserveTransition(_, to domain.OrderState) {
	m.Orders.WithLabelValues(string(to)).Inc()
}

func (m *Metrics) ObserveRequest(handler string, status int, elapsed time.Duration) {
	m.Requests.WithLabelValues(handler, strconv.Itoa(status)).Inc()
	m.LatencyMS.WithLabelValues(handler).Observe(float64(elapsed) / float64(time.Millisecond))
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

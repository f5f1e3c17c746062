// Package metrics exposes prometheus instruments for the HTTP surface and the
// booking/payment domain counters.
package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTPMetrics instruments inbound HTTP requests.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewHTTPMetrics() *HTTPMetrics {
	return &HTTPMetrics{
		requests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "yoyo_http_requests_total",
			Help: "Count of HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		duration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "yoyo_http_request_duration_seconds",
			Help:    "HTTP request latency by route and method.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
}

// GinMiddleware records request counts and latency.
func GinMiddleware(m *HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if strings.TrimSpace(route) == "" {
			route = "unknown"
		}
		m.requests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		m.duration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}

// Metrics exposes application-level instruments.
type Metrics struct {
	bookings      *prometheus.CounterVec
	paymentEvents *prometheus.CounterVec
	refunds       *prometheus.CounterVec
	priceQuotes   prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		bookings: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "yoyo_bookings_total",
			Help: "Count of booking state transitions.",
		}, []string{"status"}),
		paymentEvents: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "yoyo_payment_events_total",
			Help: "Count of processed payment webhook events.",
		}, []string{"provider", "event_type"}),
		refunds: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "yoyo_refunds_total",
			Help: "Count of refund state transitions.",
		}, []string{"status"}),
		priceQuotes: promauto.NewCounter(prometheus.CounterOpts{
			Name: "yoyo_price_quotes_total",
			Help: "Count of effective price resolutions served.",
		}),
	}
}

func (m *Metrics) RecordBooking(status string) {
	if m == nil {
		return
	}
	m.bookings.WithLabelValues(strings.TrimSpace(status)).Inc()
}

func (m *Metrics) RecordPaymentEvent(provider, eventType string) {
	if m == nil {
		return
	}
	m.paymentEvents.WithLabelValues(strings.TrimSpace(provider), strings.TrimSpace(eventType)).Inc()
}

func (m *Metrics) RecordRefund(status string) {
	if m == nil {
		return
	}
	m.refunds.WithLabelValues(strings.TrimSpace(status)).Inc()
}

func (m *Metrics) RecordPriceQuote() {
	if m == nil {
		return
	}
	m.priceQuotes.Inc()
}

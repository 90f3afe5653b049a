package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so several instances (tests) never collide.
// All methods are safe on a nil receiver.
type Metrics struct {
	registry *prometheus.Registry

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec

	transactions *prometheus.CounterVec
	amount       *prometheus.CounterVec
	stockClamps  prometheus.Counter
	catalogSize  prometheus.Gauge
}

func New(serviceName string) *Metrics {
	labels := prometheus.Labels{"service": serviceName}
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "path", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "Duration of HTTP requests in seconds",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: labels,
		}, []string{"method", "path"}),
		transactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "inventory_transactions_recorded_total",
			Help:        "Transactions appended to the ledger",
			ConstLabels: labels,
		}, []string{"type"}),
		amount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "inventory_transaction_amount_idr_total",
			Help:        "Sum of transaction total amounts in IDR",
			ConstLabels: labels,
		}, []string{"type"}),
		stockClamps: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "inventory_stock_floor_clamps_total",
			Help:        "Outgoing transactions larger than the stock on hand, floored at zero",
			ConstLabels: labels,
		}),
		catalogSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "inventory_catalog_products",
			Help:        "Number of products in the catalog",
			ConstLabels: labels,
		}),
	}
	m.registry.MustRegister(m.requests, m.duration, m.transactions, m.amount, m.stockClamps, m.catalogSize)
	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry is exposed for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Middleware records request count and latency labelled by route pattern.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}
		path := c.Route().Path
		m.requests.WithLabelValues(c.Method(), path, strconv.Itoa(status)).Inc()
		m.duration.WithLabelValues(c.Method(), path).Observe(time.Since(start).Seconds())
		return err
	}
}

func (m *Metrics) ObserveTransaction(txType string, totalAmount int64) {
	if m == nil {
		return
	}
	m.transactions.WithLabelValues(txType).Inc()
	m.amount.WithLabelValues(txType).Add(float64(totalAmount))
}

func (m *Metrics) StockClamped() {
	if m == nil {
		return
	}
	m.stockClamps.Inc()
}

func (m *Metrics) SetCatalogSize(n int) {
	if m == nil {
		return
	}
	m.catalogSize.Set(float64(n))
}

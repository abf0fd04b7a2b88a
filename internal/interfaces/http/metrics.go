package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics métricas Prometheus de la API.
type Metrics struct {
	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewMetrics registra las métricas en el registry por defecto.
func NewMetrics() *Metrics {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stock_ledger_requests_total",
			Help: "Total de peticiones HTTP atendidas",
		},
		[]string{"method", "route", "status"},
	)
	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stock_ledger_request_duration_seconds",
			Help:    "Duración de las peticiones HTTP en segundos",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	return &Metrics{requestCounter: requestCounter, requestLatency: requestLatency}
}

// Middleware instrumenta cada petición con contador y latencia por ruta.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		route := c.Route().Path
		method := c.Method()
		status := strconv.Itoa(c.Response().StatusCode())
		m.requestCounter.WithLabelValues(method, route, status).Inc()
		m.requestLatency.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler expone /metrics con el handler estándar de promhttp adaptado a Fiber.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}

package metrics

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	// RequestsTotal counts answered HTTP requests by method, route and status
	RequestsTotal *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notes_http_requests_total",
				Help: "Number of HTTP requests answered, by method, route and status",
			},
			[]string{"method", "route", "status"},
		),
	}

	m.registry.MustRegister(m.RequestsTotal)
	m.registry.MustRegister(prometheus.NewGoCollector())

	return m
}

// Middleware records every request once the rest of the chain has answered it.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		m.RequestsTotal.WithLabelValues(
			utils.CopyString(c.Method()),
			c.Route().Path,
			strconv.Itoa(c.Response().StatusCode()),
		).Inc()

		return err
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

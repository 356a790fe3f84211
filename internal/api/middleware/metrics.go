// Package middleware provides Echo middleware for the tcg-price-tracker API.
package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tcgtrack/tcg-price-tracker/internal/metrics"
)

// probeGauges maps the probe endpoints to their up/down gauges. Probe paths
// and the scrape endpoint are excluded from the request histogram and
// counter: they fire constantly and would drown the real traffic series.
var probeGauges = map[string]prometheus.Gauge{
	"/healthz": metrics.HealthzUp,
	"/readyz":  metrics.ReadyzUp,
}

// Metrics returns Echo middleware recording per-request duration and status.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Path()
			if path == "" {
				path = c.Request().URL.Path
			}

			if gauge, ok := probeGauges[path]; ok {
				err := next(c)
				if status := c.Response().Status; status >= 200 && status < 300 {
					gauge.Set(1)
				} else {
					gauge.Set(0)
				}
				return err
			}
			if path == "/metrics" {
				return next(c)
			}

			start := time.Now()
			err := next(c)

			labels := []string{
				c.Request().Method,
				path,
				strconv.Itoa(c.Response().Status),
			}
			metrics.HTTPRequestDuration.WithLabelValues(labels...).
				Observe(time.Since(start).Seconds())
			metrics.HTTPRequestsTotal.WithLabelValues(labels...).Inc()

			return err
		}
	}
}

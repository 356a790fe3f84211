package middleware

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const requestIDHeader = "X-Request-ID"

// healthPaths are probe endpoints polled frequently by orchestrators.
// Repeated successful probes are not worth a log line each.
var healthPaths = map[string]struct{}{
	"/healthz": {},
	"/readyz":  {},
}

// RequestLog returns Echo middleware that logs requests with structured
// fields. It generates a request ID if none is provided and propagates it
// through the response header and echo context.
//
// Health probe successes are logged once per state change: the first success
// after startup or after a failure is logged, repeats are suppressed.
// Failures are always logged at WARN.
func RequestLog(log *slog.Logger) echo.MiddlewareFunc {
	var mu sync.Mutex
	healthOK := map[string]bool{}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			reqID := c.Request().Header.Get(requestIDHeader)
			if reqID == "" {
				reqID = uuid.NewString()
			}

			c.Set("request_id", reqID)
			c.Response().Header().Set(requestIDHeader, reqID)

			err := next(c)

			path := c.Request().URL.Path
			status := c.Response().Status
			fields := []any{
				"method", c.Request().Method,
				"path", path,
				"status", status,
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", reqID,
			}

			if _, isHealth := healthPaths[path]; isHealth {
				mu.Lock()
				defer mu.Unlock()

				if status >= 400 {
					healthOK[path] = false
					log.Warn("request", fields...)
					return err
				}
				if healthOK[path] {
					return err
				}
				healthOK[path] = true
			}

			log.Info("request", fields...)
			return err
		}
	}
}

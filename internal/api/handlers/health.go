package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tcgtrack/tcg-price-tracker/internal/store"
)

// readyzPingTimeout bounds the database ping so a wedged pool cannot hang
// the readiness probe.
const readyzPingTimeout = 2 * time.Second

// HealthHandler provides the liveness and readiness endpoints. Liveness only
// proves the process is serving; readiness additionally requires a reachable
// database.
type HealthHandler struct {
	store store.Store
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(s store.Store) *HealthHandler {
	return &HealthHandler{store: s}
}

// Healthz reports liveness.
func (*HealthHandler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, StatusResponse{Status: "ok"})
}

// Readyz reports readiness: 200 when the database answers a ping within the
// timeout, 503 otherwise.
func (h *HealthHandler) Readyz(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readyzPingTimeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, StatusResponse{Status: "unavailable"})
	}
	return c.JSON(http.StatusOK, StatusResponse{Status: "ready"})
}

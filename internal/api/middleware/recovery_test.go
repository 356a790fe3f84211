package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recoveryTestContext(t *testing.T, method, path string) (echo.Context, *httptest.ResponseRecorder, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer
	e := echo.New()
	req := httptest.NewRequest(method, path, http.NoBody)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec, &buf
}

func TestRecovery_NoPanic(t *testing.T) {
	t.Parallel()

	c, rec, buf := recoveryTestContext(t, http.MethodGet, "/api/v1/listings")
	logger := slog.New(slog.NewTextHandler(buf, nil))

	handler := Recovery(logger)(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, buf.String(), "no panic should produce no log output")
}

func TestRecovery_PanicString(t *testing.T) {
	t.Parallel()

	c, rec, buf := recoveryTestContext(t, http.MethodGet, "/panic")
	logger := slog.New(slog.NewTextHandler(buf, nil))

	handler := Recovery(logger)(func(_ echo.Context) error {
		panic("boom")
	})

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "internal server error")

	logOutput := buf.String()
	assert.Contains(t, logOutput, "panic recovered")
	assert.Contains(t, logOutput, "boom")
	assert.Contains(t, logOutput, "path=/panic")
}

func TestRecovery_PanicNonString(t *testing.T) {
	t.Parallel()

	c, rec, buf := recoveryTestContext(t, http.MethodPost, "/api/v1/parse")
	logger := slog.New(slog.NewTextHandler(buf, nil))

	handler := Recovery(logger)(func(_ echo.Context) error {
		panic(42)
	})

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	logOutput := buf.String()
	assert.Contains(t, logOutput, "42")
	assert.Contains(t, logOutput, "method=POST")
}

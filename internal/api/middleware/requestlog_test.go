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

// requestLogHarness wraps one RequestLog middleware instance so suppression
// state carries across calls within a test.
type requestLogHarness struct {
	t   *testing.T
	e   *echo.Echo
	mw  echo.MiddlewareFunc
	buf *bytes.Buffer
}

func newRequestLogHarness(t *testing.T) *requestLogHarness {
	t.Helper()

	buf := &bytes.Buffer{}
	return &requestLogHarness{
		t:   t,
		e:   echo.New(),
		mw:  RequestLog(slog.New(slog.NewTextHandler(buf, nil))),
		buf: buf,
	}
}

// do runs one request through the middleware and returns the echo context
// and recorder.
func (h *requestLogHarness) do(
	method, path, reqID string,
	next echo.HandlerFunc,
) (echo.Context, *httptest.ResponseRecorder) {
	h.t.Helper()

	req := httptest.NewRequest(method, path, http.NoBody)
	if reqID != "" {
		req.Header.Set(requestIDHeader, reqID)
	}
	rec := httptest.NewRecorder()
	c := h.e.NewContext(req, rec)

	require.NoError(h.t, h.mw(next)(c))
	return c, rec
}

func respondWith(status int) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.NoContent(status)
	}
}

func TestRequestLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		method        string
		path          string
		status        int
		providedReqID string
		wantLogFields []string
	}{
		{
			name:   "logs GET request with generated ID",
			method: http.MethodGet,
			path:   "/api/v1/listings",
			status: http.StatusOK,
			wantLogFields: []string{
				"method=GET",
				"path=/api/v1/listings",
				"status=200",
				"duration_ms=",
				"request_id=",
			},
		},
		{
			name:   "logs POST request",
			method: http.MethodPost,
			path:   "/api/v1/parse",
			status: http.StatusUnprocessableEntity,
			wantLogFields: []string{
				"method=POST",
				"status=422",
			},
		},
		{
			name:          "uses provided request ID",
			method:        http.MethodGet,
			path:          "/test",
			status:        http.StatusOK,
			providedReqID: "custom-req-id-123",
			wantLogFields: []string{
				"request_id=custom-req-id-123",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := newRequestLogHarness(t)
			c, rec := h.do(tt.method, tt.path, tt.providedReqID, respondWith(tt.status))

			for _, field := range tt.wantLogFields {
				assert.Contains(t, h.buf.String(), field)
			}

			respID := rec.Header().Get(requestIDHeader)
			assert.NotEmpty(t, respID)
			if tt.providedReqID != "" {
				assert.Equal(t, tt.providedReqID, respID)
			}

			assert.NotEmpty(t, c.Get("request_id"))
		})
	}
}

func TestRequestLog_HealthzRepeatSuccessSuppressed(t *testing.T) {
	t.Parallel()

	h := newRequestLogHarness(t)

	h.do(http.MethodGet, "/healthz", "", respondWith(http.StatusOK))
	assert.Contains(t, h.buf.String(), "path=/healthz")
	assert.Contains(t, h.buf.String(), "status=200")

	firstLen := h.buf.Len()

	h.do(http.MethodGet, "/healthz", "", respondWith(http.StatusOK))
	h.do(http.MethodGet, "/healthz", "", respondWith(http.StatusOK))
	assert.Equal(t, firstLen, h.buf.Len(),
		"repeated successful healthz should not produce log output")
}

func TestRequestLog_HealthzFailureAlwaysLogged(t *testing.T) {
	t.Parallel()

	h := newRequestLogHarness(t)

	h.do(http.MethodGet, "/readyz", "", respondWith(http.StatusServiceUnavailable))
	assert.Contains(t, h.buf.String(), "path=/readyz")
	assert.Contains(t, h.buf.String(), "status=503")
	assert.Contains(t, h.buf.String(), "level=WARN")

	firstLen := h.buf.Len()

	h.do(http.MethodGet, "/readyz", "", respondWith(http.StatusServiceUnavailable))
	assert.Greater(t, h.buf.Len(), firstLen, "failed readyz should always be logged")
}

func TestRequestLog_ReadyzFailureAfterSuppressedSuccesses(t *testing.T) {
	t.Parallel()

	h := newRequestLogHarness(t)

	h.do(http.MethodGet, "/readyz", "", respondWith(http.StatusOK))
	assert.Contains(t, h.buf.String(), "status=200")

	firstLen := h.buf.Len()

	h.do(http.MethodGet, "/readyz", "", respondWith(http.StatusOK))
	assert.Equal(t, firstLen, h.buf.Len(),
		"second successful readyz should be suppressed")

	h.do(http.MethodGet, "/readyz", "", respondWith(http.StatusServiceUnavailable))
	assert.Greater(t, h.buf.Len(), firstLen,
		"failure after suppressed successes should still be logged")
	assert.Contains(t, h.buf.String(), "status=503")
	assert.Contains(t, h.buf.String(), "level=WARN")

	// Recovery after a failure is news again.
	beforeRecovery := h.buf.Len()
	h.do(http.MethodGet, "/readyz", "", respondWith(http.StatusOK))
	assert.Greater(t, h.buf.Len(), beforeRecovery,
		"first success after a failure should be logged")
}

func TestRequestLog_NonHealthPathAlwaysLogged(t *testing.T) {
	t.Parallel()

	h := newRequestLogHarness(t)

	h.do(http.MethodGet, "/api/v1/listings", "", respondWith(http.StatusOK))
	firstLen := h.buf.Len()
	assert.Positive(t, firstLen)

	h.do(http.MethodGet, "/api/v1/listings", "", respondWith(http.StatusOK))
	assert.Greater(t, h.buf.Len(), firstLen,
		"non-health paths should always be logged")
}

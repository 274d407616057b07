package observability

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/bloodconnect/internal/config"
)

func TestMetricsRecordsRequestsAndErrors(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/requests", "GET", 200, 15*time.Millisecond)
	m.RecordRequest("/requests", "GET", 200, 5*time.Millisecond)
	m.RecordError("/requests/:id/accept", "POST", "INVALID_STATE")
	m.RecordLifecycleEvent("blood_request_accepted")

	assert.Equal(t, float64(2), testutil.ToFloat64(m.requestsTotal.WithLabelValues("/requests", "GET", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.errorsTotal.WithLabelValues("/requests/:id/accept", "POST", "INVALID_STATE")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.lifecycleEvents.WithLabelValues("blood_request_accepted")))
}

func TestMetricsNilReceiverIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordRequest("/", "GET", 200, time.Millisecond)
		m.RecordError("/", "GET", "NOT_FOUND")
		m.RecordLifecycleEvent("blood_request_created")
	})
}

func TestMetricsHandlerExposesText(t *testing.T) {
	m := NewMetrics()
	m.RecordLifecycleEvent("blood_request_created")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), MetricLifecycleEventsTotal)
}

func TestRequestLoggerSetsRequestIDAndCounts(t *testing.T) {
	m := NewMetrics()
	app := fiber.New()
	app.Use(RequestLogger(zap.NewNop(), m))
	app.Get("/requests/:id", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/requests/abc", nil))
	require.NoError(t, err)
	_, _ = io.Copy(io.Discard, resp.Body)

	assert.NotEmpty(t, resp.Header.Get(RequestIDHeader))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.requestsTotal.WithLabelValues("/requests/:id", "GET", "204")))
}

func TestRequestLoggerKeepsIncomingRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestLogger(zap.NewNop(), nil))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "req-42", resp.Header.Get(RequestIDHeader))
}

func TestNewLoggerFallsBackOnUnknownLevel(t *testing.T) {
	logger, err := NewLogger(config.AppConfig{Name: "bloodconnect", Env: "production"}, config.LoggerConfig{Level: "loud"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zap.InfoLevel))
	assert.False(t, logger.Core().Enabled(zap.DebugLevel))
}

func TestNewLoggerHonoursLevel(t *testing.T) {
	logger, err := NewLogger(config.AppConfig{Name: "bloodconnect", Env: "development"}, config.LoggerConfig{Level: " DEBUG "})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zap.DebugLevel))
}

func TestRouteLabelsUseRoutePattern(t *testing.T) {
	var route, method string
	app := fiber.New()
	app.Get("/requests/:id", func(c *fiber.Ctx) error {
		route, method = RouteLabels(c)
		return c.SendStatus(fiber.StatusNoContent)
	})

	for _, path := range []string{"/requests/one", "/requests/two"} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		require.NoError(t, err)
		_, _ = io.Copy(io.Discard, resp.Body)
		assert.Equal(t, "/requests/:id", route)
		assert.Equal(t, "GET", method)
	}
}

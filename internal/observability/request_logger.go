package observability

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// RequestLogger logs every request and records it in metrics.
func RequestLogger(logger *zap.Logger, metrics *Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		requestID := c.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(RequestIDHeader, requestID)

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		route, method := RouteLabels(c)
		latency := time.Since(start)
		metrics.RecordRequest(route, method, status, latency)
		logger.Info("http request",
			zap.String("request_id", requestID),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", latency))
		return err
	}
}

// RouteLabels returns the matched route pattern and method for use as metric labels.
// fasthttp reuses the request buffers, so anything taken from the raw request is copied.
func RouteLabels(c *fiber.Ctx) (route, method string) {
	method = utils.CopyString(c.Method())
	if r := c.Route(); r != nil && r.Path != "" {
		return utils.CopyString(r.Path), method
	}
	return utils.CopyString(c.Path()), method
}

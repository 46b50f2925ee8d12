package middleware

import (
	"github.com/gofiber/fiber/v2"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/xid"

	"mirrorlab/internal/domain"
	"mirrorlab/internal/infra/logging"
)

// Register attaches the global middleware. Nothing here may answer a request on
// its own: every request has to reach the echo handler.
func Register(app *fiber.App, v domain.Variant) {
	app.Use(fiberrecover.New())

	app.Use(requestid.New(requestid.Config{
		Generator: func() string {
			return xid.New().String()
		},
	}))

	app.Use(RequestLog(v))
}

// RequestLog writes exactly one line per request with its method and path.
func RequestLog(v domain.Variant) fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := c.GetRespHeader(fiber.HeaderXRequestID)
		if requestID == "" {
			requestID = c.Get(fiber.HeaderXRequestID)
		}
		logging.Info(v.LogPrefix, "method", c.Method(), "path", c.OriginalURL(), "request_id", requestID)
		return c.Next()
	}
}

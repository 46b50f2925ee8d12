package server

import (
	"github.com/gofiber/fiber/v2"

	"mirrorlab/internal/config"
	"mirrorlab/internal/domain"
	"mirrorlab/internal/http/handlers"
	"mirrorlab/internal/http/middleware"
	"mirrorlab/internal/infra/logging"
)

// extensionMethods are accepted on top of Fiber's defaults, which would
// otherwise answer them with 400 before any handler runs. Together with the
// defaults this is the method table of Node's llhttp parser.
var extensionMethods = []string{
	"COPY", "LOCK", "MKCOL", "MOVE", "PROPFIND", "PROPPATCH", "SEARCH", "UNLOCK",
	"BIND", "REBIND", "UNBIND", "ACL",
	"REPORT", "MKACTIVITY", "CHECKOUT", "MERGE",
	"M-SEARCH", "NOTIFY", "SUBSCRIBE", "UNSUBSCRIBE",
	"PURGE", "MKCALENDAR", "LINK", "UNLINK", "SOURCE", "QUERY",
}

type Deps struct {
	Config  config.Config
	Variant domain.Variant
}

// New builds the echo app: every method on every path gets the variant's response.
func New(d Deps) *fiber.App {
	methods := make([]string, 0, len(fiber.DefaultMethods)+len(extensionMethods))
	methods = append(methods, fiber.DefaultMethods...)
	methods = append(methods, extensionMethods...)

	app := fiber.New(fiber.Config{
		Prefork:               d.Config.Server.Prefork,
		DisableStartupMessage: true,
		RequestMethods:        methods,
		// Bodies over BodyLimit are streamed instead of rejected; the echo
		// handler never reads them.
		StreamRequestBody:     true,
		ErrorHandler:          errorHandler,
	})

	middleware.Register(app, d.Variant)
	app.Use(handlers.Echo(d.Variant))

	return app
}

// errorHandler only sees framework-level failures; the echo handler never returns one.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		msg = e.Message
	}

	logging.Warn("Request failed", "path", c.Path(), "status", code, "message", msg)

	return c.Status(code).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": msg,
		},
	})
}

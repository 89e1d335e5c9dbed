package server

import (
	"notes-be/internal/controller"
	"notes-be/internal/metrics"
	"notes-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

type Options struct {
	// StaticDir is served before the API when not empty
	StaticDir string
	Metrics   *metrics.Metrics
	// DisableAccessLog turns the request logger off, tests use it
	DisableAccessLog bool
}

// NewApp assembles the Fiber application: middleware, static assets, the
// notes API under /api and the unknown endpoint fallback.
func NewApp(noteController controller.INoteController, opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "notes-be",
		DisableStartupMessage: true,
	})

	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))

	if !opts.DisableAccessLog {
		app.Use(accessLoggers()...)
	}

	if opts.Metrics != nil {
		app.Use(opts.Metrics.Middleware())
	}

	app.Use(cors.New())
	app.Use(serverutils.ErrorHandlerMiddleware())

	if opts.StaticDir != "" {
		app.Static("/", opts.StaticDir)
	}

	if opts.Metrics != nil {
		app.Get("/metrics", opts.Metrics.Handler())
	}

	api := app.Group("/api")
	noteController.RegisterRoutes(api)

	app.Use(serverutils.UnknownEndpoint)

	return app
}

// accessLoggers logs POST requests together with their body and every other
// request with a compact line.
func accessLoggers() []any {
	isPost := func(c *fiber.Ctx) bool { return c.Method() == fiber.MethodPost }

	return []any{
		logger.New(logger.Config{
			Format: "${method} ${url} ${status} ${bytesSent} - ${latency} ${body} [${locals:requestid}]\n",
			Next:   func(c *fiber.Ctx) bool { return !isPost(c) },
		}),
		logger.New(logger.Config{
			Format: "${method} ${url} ${status} ${bytesSent} - ${latency} [${locals:requestid}]\n",
			Next:   isPost,
		}),
	}
}

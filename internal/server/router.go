package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"leadreach/outreach-assistant/internal/handlers"
	"leadreach/outreach-assistant/internal/web"
)

// Handlers groups everything the router dispatches to.
type Handlers struct {
	Pages    *handlers.PageHandler
	Search   *handlers.SearchHandler
	Outreach *handlers.OutreachHandler
	Runs     *handlers.SearchRunHandler
}

// New builds the fiber app with middleware and routes.
func New(h Handlers) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Outreach Assistant",
		Views:        web.Engine(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
		ErrorHandler: customErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Get("/", h.Pages.HandleIndex)
	app.Get("/index", h.Pages.HandleIndex)
	app.Get("/results", h.Pages.HandleResults)
	app.Post("/search", h.Search.HandleSearch)
	app.Post("/send_messages", h.Outreach.HandleSendMessages)
	app.Post("/send_connection_requests", h.Outreach.HandleSendConnectionRequests)
	app.Get("/outreach/batches/:id", h.Outreach.HandleGetBatch)
	app.Get("/searches/:id", h.Runs.HandleGetSearch)

	return app
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}

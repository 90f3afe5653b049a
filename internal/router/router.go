package router

import (
	"go-pharmacy-inventory/internal/handler"
	"go-pharmacy-inventory/internal/middleware"
	"go-pharmacy-inventory/internal/ws"
	"go-pharmacy-inventory/pkg/logger"
	"go-pharmacy-inventory/pkg/metrics"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

type Handlers struct {
	Inventory *handler.InventoryHandler
	Dashboard *handler.DashboardHandler
	Alert     *handler.AlertHandler
	Report    *handler.ReportHandler
}

// Options carries the optional infrastructure. A nil Metrics disables /metrics and a
// nil Hub disables /ws.
type Options struct {
	AppName string
	Logger  *zap.Logger
	Metrics *metrics.Metrics
	Hub     *ws.Hub
}

// New wires middleware and routes and returns a configured fiber app.
func New(h Handlers, opts Options) *fiber.App {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	app := fiber.New(fiber.Config{
		AppName:      opts.AppName,
		ErrorHandler: handler.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS
	app.Use(logger.Middleware(opts.Logger))
	if opts.Metrics != nil {
		app.Use(opts.Metrics.Middleware())
		app.Get("/metrics", adaptor.HTTPHandler(opts.Metrics.Handler()))
	}

	api := app.Group("/api/v1", middleware.RequireJSON())

	// Product Routes
	api.Get("/products", h.Inventory.GetProducts)
	api.Get("/products/:id", h.Inventory.GetProduct)
	api.Post("/products", h.Inventory.CreateProduct)
	api.Put("/products/:id", h.Inventory.UpdateProduct)
	api.Delete("/products/:id", h.Inventory.DeleteProduct)

	// Transaction Routes (append-only ledger)
	api.Get("/transactions", h.Inventory.GetTransactions)
	api.Get("/transactions/:id", h.Inventory.GetTransaction)
	api.Post("/transactions", h.Inventory.CreateTransaction)

	// Derived views
	api.Get("/alerts", h.Alert.GetAlerts)
	api.Get("/dashboard/stats", h.Dashboard.GetDashboardStats)
	api.Get("/dashboard/stock-movement", h.Dashboard.GetStockMovement)
	api.Get("/reports/:kind", h.Report.GetReport)

	// WebSocket Route
	if opts.Hub != nil {
		app.Use("/ws", middleware.RequireWebSocketUpgrade())
		app.Get("/ws", websocket.New(opts.Hub.Handler()))
	}

	return app
}

package http

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/Orders-api/internal/application/orders"
	"github.com/jhoicas/Orders-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CreateOrder *orders.CreateOrderUseCase
	QueryOrders *orders.QueryOrdersUseCase
	PickTicket  *orders.PickTicketUseCase
	Health      *HealthHandler
	Metrics     http.Handler // nil = /metrics deshabilitado
	JWTSecret   string
	Debug       bool
	Logger      *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Health != nil {
		app.Get("/health", deps.Health.Check)
	}
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics))
	}

	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token con user_id y project_id)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Orders
	ordersGroup := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.CreateOrder, deps.QueryOrders, deps.PickTicket, deps.Debug, deps.Logger)
	ordersGroup.Post("/", orderHandler.Create)
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	if deps.PickTicket != nil {
		ordersGroup.Get("/:id/pick-ticket", orderHandler.PickTicket)
	}
}

package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/tienda-backoffice/internal/application/analytics"
	"github.com/jhoicas/tienda-backoffice/internal/application/auth"
	"github.com/jhoicas/tienda-backoffice/internal/application/inventory"
	"github.com/jhoicas/tienda-backoffice/internal/application/loyalty"
	"github.com/jhoicas/tienda-backoffice/internal/application/orders"
	"github.com/jhoicas/tienda-backoffice/internal/application/returns"
	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CreateOrder  *orders.CreateOrderUseCase
	OrderStatus  *orders.StatusUseCase
	Orders       *orders.OrderUseCase
	ReceiveGoods *inventory.ReceiveGoodsUseCase
	ReceiptPDF   *inventory.ReceiptPDFUseCase
	Restock      *inventory.ReplenishmentUseCase
	Returns      *returns.UseCase
	Loyalty      *loyalty.UseCase
	DashboardUC  *appanalytics.DashboardUseCase
	AuthUC       *auth.AuthUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	staff := RequireRole(backOffice...)
	admin := RequireRole(entity.RoleAdmin)

	// Orders
	orderHandler := NewOrderHandler(deps.CreateOrder, deps.OrderStatus, deps.Orders, deps.Returns)
	ordersGroup := protected.Group("/orders", staff)
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Post("/", orderHandler.Create)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Put("/:id", orderHandler.UpdateStatus)
	ordersGroup.Delete("/:id", admin, orderHandler.Delete)
	ordersGroup.Get("/:id/items", orderHandler.Items)
	ordersGroup.Get("/:id/history", orderHandler.History)
	ordersGroup.Post("/:id/ship", orderHandler.Ship)
	ordersGroup.Get("/:id/returns", orderHandler.Returns)

	// Users: el propio cliente o el back-office
	loyaltyHandler := NewLoyaltyHandler(deps.Loyalty)
	self := RequireSelfOrRole("id", backOffice...)
	protected.Get("/users/:id/orders", self, orderHandler.ListByUser)
	protected.Get("/users/:id/loyalty", self, loyaltyHandler.Balance)
	protected.Get("/users/:id/loyalty/entries", self, loyaltyHandler.Entries)

	// Goods receipts
	receiptHandler := NewReceiptHandler(deps.ReceiveGoods, deps.ReceiptPDF)
	receipts := protected.Group("/goods-receipts", staff)
	receipts.Get("/", receiptHandler.List)
	receipts.Post("/", receiptHandler.Create)
	receipts.Get("/:id", receiptHandler.GetByID)
	receipts.Get("/:id/pdf", receiptHandler.PDF)

	// Inventory
	inventoryHandler := NewInventoryHandler(deps.Restock)
	protected.Get("/inventory/replenishment", staff, inventoryHandler.Replenishment)

	// Returns
	returnHandler := NewReturnHandler(deps.Returns)
	returnsGroup := protected.Group("/returns", staff)
	returnsGroup.Get("/", returnHandler.List)
	returnsGroup.Post("/", returnHandler.Create)
	returnsGroup.Get("/:id", returnHandler.GetByID)
	returnsGroup.Put("/:id/status", admin, returnHandler.UpdateStatus)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/summary", staff, dashboardHandler.GetSummary)
}

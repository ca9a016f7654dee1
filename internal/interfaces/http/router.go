package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/auth"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	WarehouseUC *usecase.WarehouseUseCase
	LocationUC  *usecase.LocationUseCase
	ProductUC   *usecase.ProductUseCase
	DocumentUC  *usecase.DocumentUseCase
	CommitUC    *inventory.CommitUseCase
	StockUC     *inventory.StockUseCase
	HistoryUC   *inventory.HistoryUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Warehouses (protegido)
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	locationHandler := NewLocationHandler(deps.LocationUC)
	warehouses.Post("/create", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", warehouseHandler.Update)
	warehouses.Get("/:warehouseId/locations", locationHandler.ListByWarehouse)

	// Locations (protegido)
	locations := protected.Group("/locations")
	locations.Post("/create", locationHandler.Create)
	locations.Get("/all", locationHandler.ListAll)
	locations.Get("/warehouse/:warehouseId", locationHandler.ListByWarehouse)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	// low-stock va antes de :id para que Fiber no la capture como parámetro.
	products.Get("/low-stock", productHandler.LowStock)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Get("/:id/stock", productHandler.StockTotal)

	// Stock (protegido). increase/decrease van antes de :code para que Fiber
	// no las capture como parámetro.
	stock := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC)
	stock.Post("/create", stockHandler.Create)
	stock.Put("/increase", stockHandler.Increase)
	stock.Put("/decrease", stockHandler.Decrease)
	stock.Get("/", stockHandler.List)
	stock.Get("/:code", stockHandler.GetByCode)
	stock.Delete("/:code", RequireRole(entity.RoleAdmin), stockHandler.Delete)

	// Movement documents (protegido)
	documents := protected.Group("/documents")
	documentHandler := NewDocumentHandler(deps.DocumentUC, deps.CommitUC)
	documents.Post("/", documentHandler.Create)
	documents.Get("/", documentHandler.List)
	documents.Get("/recent", documentHandler.ListRecent)
	documents.Get("/:id", documentHandler.GetByID)
	documents.Put("/:id", documentHandler.Update)
	documents.Put("/:id/status", documentHandler.Advance)
	documents.Post("/:id/cancel", documentHandler.Cancel)
	documents.Post("/:id/validate", documentHandler.Commit)

	// Movement history (protegido, solo lectura)
	history := protected.Group("/history")
	historyHandler := NewHistoryHandler(deps.HistoryUC)
	history.Get("/", historyHandler.List)
}

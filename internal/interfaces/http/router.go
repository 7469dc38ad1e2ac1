package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mini-estoque/internal/application/auth"
	"github.com/jhoicas/mini-estoque/internal/application/inventory"
	"github.com/jhoicas/mini-estoque/internal/application/usecase"
	"github.com/jhoicas/mini-estoque/pkg/logger"
	"github.com/jhoicas/mini-estoque/pkg/validator"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC        *usecase.ProductUseCase
	ReportUC         *usecase.ReportUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	AuthUC           *auth.AuthUseCase
	Validator        validator.Validator
	Logger           *logger.Logger
	JWTSecret        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	log = log.Component("http")

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.Validator, log)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	productHandler := NewProductHandler(deps.ProductUC, deps.ReportUC, deps.Validator, log)
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.ProductUC, deps.Validator, log)

	// Products; las rutas fijas van antes de /:id
	products := protected.Group("/products")
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/low-stock", productHandler.ListLowStock)
	products.Get("/export.xlsx", productHandler.ExportXLSX)
	products.Get("/report.pdf", productHandler.ReportPDF)
	products.Get("/:id", productHandler.GetByID)
	products.Get("/:id/movements", inventoryHandler.ListProductMovements)

	// Inventory movements
	invGroup := protected.Group("/inventory")
	invGroup.Post("/movements", inventoryHandler.RegisterMovement)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
}

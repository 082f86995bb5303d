package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fruteria-olga/panel/internal/application/analytics"
	"github.com/fruteria-olga/panel/internal/application/store"
	"github.com/fruteria-olga/panel/internal/domain/entity"
	"github.com/fruteria-olga/panel/internal/infrastructure/pdf"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Store        *store.Store
	DashboardUC  *analytics.DashboardUseCase
	PDF          *pdf.MarotoPDFGenerator
	BusinessName string
	Tokens       TokenConfig
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	tokens := NewSessionTokens(deps.Store, deps.Tokens)
	sessionHandler := NewSessionHandler(deps.Store, tokens)

	// Públicas
	api.Post("/session/login", sessionHandler.Login)
	api.Get("/status", sessionHandler.Status)

	// Rutas protegidas (requieren Bearer token de una sesión vigente)
	protected := api.Group("/", RequireSession(tokens))

	protected.Get("/session", sessionHandler.Current)
	protected.Delete("/session", sessionHandler.Logout)
	protected.Get("/state", sessionHandler.State)
	protected.Post("/refresh", sessionHandler.Refresh)

	prefs := protected.Group("/preferences")
	prefs.Put("/theme", sessionHandler.SetTheme)
	prefs.Put("/currency", sessionHandler.SetCurrency)
	prefs.Put("/exchange-rate", sessionHandler.SetExchangeRate)
	prefs.Put("/identity", sessionHandler.SetIdentity)

	catalog := NewCatalogHandler(deps.Store)

	products := protected.Group("/products")
	products.Get("/", catalog.ListProducts)
	products.Get("/search", catalog.SearchProducts)
	products.Post("/", catalog.CreateProduct)
	products.Put("/:id", catalog.UpdateProduct)
	products.Delete("/:id", catalog.DeleteProduct)

	clients := protected.Group("/clients")
	clients.Get("/", catalog.ListClients)
	clients.Get("/suggest", catalog.SuggestClients)
	clients.Post("/", catalog.CreateClient)
	clients.Put("/:id", catalog.UpdateClient)
	clients.Delete("/:id", catalog.DeleteClient)

	suppliers := protected.Group("/suppliers")
	suppliers.Get("/", catalog.ListSuppliers)
	suppliers.Post("/", catalog.CreateSupplier)
	suppliers.Put("/:id", catalog.UpdateSupplier)
	suppliers.Delete("/:id", catalog.DeleteSupplier)

	movements := NewMovementHandler(deps.Store, deps.PDF, deps.BusinessName)

	sales := protected.Group("/sales")
	sales.Get("/", movements.ListSales)
	sales.Get("/report.pdf", movements.SalesReport)
	sales.Post("/", movements.CreateSale)
	sales.Put("/:id", movements.UpdateSale)
	sales.Post("/:id/cancel", movements.CancelSale)

	purchases := protected.Group("/purchases")
	purchases.Get("/", movements.ListPurchases)
	purchases.Post("/", movements.CreatePurchase)
	purchases.Post("/:id/cancel", movements.CancelPurchase)

	taskHandler := NewTaskHandler(deps.Store)
	taskGroup := protected.Group("/tasks")
	taskGroup.Get("/", taskHandler.List)
	taskGroup.Get("/calendar", taskHandler.Calendar)
	taskGroup.Get("/pending", taskHandler.Pending)
	taskGroup.Get("/on", taskHandler.On)
	taskGroup.Post("/", taskHandler.Create)
	taskGroup.Put("/:id", taskHandler.Update)
	taskGroup.Delete("/:id", taskHandler.Delete)
	taskGroup.Post("/:id/toggle", taskHandler.Toggle)

	protected.Get("/dashboard", NewDashboardHandler(deps.DashboardUC).GetSummary)

	// Usuarios (sólo Administrador)
	userHandler := NewUserHandler(deps.Store)
	users := protected.Group("/users", RequireRole(entity.RoleAdministrador))
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Put("/:id", userHandler.Update)
	users.Put("/:id/password", userHandler.SetPassword)
	users.Delete("/:id", userHandler.Delete)
}

package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/contable-pro/internal/application/auth"
	"github.com/tu-usuario/contable-pro/internal/application/usecase"
	"github.com/tu-usuario/contable-pro/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	UserUC       *usecase.UserUseCase
	ClientUC     *usecase.ClientUseCase
	PermissionUC *usecase.PermissionUseCase
	ValidityUC   *usecase.ValidityUseCase
	CustomerUC   *usecase.CustomerUseCase
	VendorUC     *usecase.VendorUseCase
	BankUC       *usecase.BankUseCase
	EntryUC      *usecase.EntryUseCase
	ReportUC     *usecase.ReportUseCase
	JWTSecret    string
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

	// Clients / accounts (gestión de plataforma: solo master, salvo lectura)
	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	permissionHandler := NewPermissionHandler(deps.PermissionUC)
	clients.Post("/", RequireRole("master"), clientHandler.Create)
	clients.Get("/", RequireRole("master"), clientHandler.List)
	// "/my" antes de "/:id" para que no lo capture el parámetro.
	clients.Get("/my/permissions", permissionHandler.GetMyClientPermission)
	clients.Get("/my", clientHandler.GetMy)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", RequireRole("master"), clientHandler.Update)
	clients.Delete("/:id", RequireRole("master"), clientHandler.Delete)

	// Users (administración dentro del account)
	users := protected.Group("/users", RequireRole("master", "customer", "admin"))
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Permisos (overrides por usuario y permisos del account)
	userPerms := protected.Group("/user-permissions")
	userPerms.Get("/:userId", permissionHandler.GetUserOverrides)
	userPerms.Patch("/:userId", RequireRole("master", "customer", "admin"), permissionHandler.SaveUserOverrides)
	userPerms.Get("/:userId/effective", permissionHandler.GetEffective)
	protected.Get("/client-permissions/:clientId", permissionHandler.GetClientPermission)

	// Validez del account (extensiones y disable: solo master)
	validityHandler := NewValidityHandler(deps.ValidityUC)
	account := protected.Group("/account")
	account.Get("/:clientId/validity", validityHandler.Get)
	account.Put("/:clientId/validity", RequireRole("master"), validityHandler.Extend)
	account.Put("/:clientId/validity/expiry", RequireRole("master"), validityHandler.SetExpiry)
	account.Patch("/:clientId/validity/disable", RequireRole("master"), validityHandler.Disable)

	// Customers (terceros clientes; gateados por capability)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", RequirePermission(entity.CapCreateCustomers, deps.PermissionUC), customerHandler.Create)
	customers.Get("/", RequirePermission(entity.CapShowCustomers, deps.PermissionUC), customerHandler.List)
	customers.Get("/:id", RequirePermission(entity.CapShowCustomers, deps.PermissionUC), customerHandler.GetByID)
	customers.Delete("/:id", RequirePermission(entity.CapCreateCustomers, deps.PermissionUC), customerHandler.Delete)

	// Vendors (proveedores; gateados por capability)
	vendors := protected.Group("/vendors")
	vendorHandler := NewVendorHandler(deps.VendorUC)
	vendors.Post("/", RequirePermission(entity.CapCreateVendors, deps.PermissionUC), vendorHandler.Create)
	vendors.Get("/", RequirePermission(entity.CapShowVendors, deps.PermissionUC), vendorHandler.List)
	vendors.Get("/:id", RequirePermission(entity.CapShowVendors, deps.PermissionUC), vendorHandler.GetByID)
	vendors.Delete("/:id", RequirePermission(entity.CapCreateVendors, deps.PermissionUC), vendorHandler.Delete)

	// Bank details (datos bancarios del account)
	bank := protected.Group("/bank-details")
	bankHandler := NewBankHandler(deps.BankUC)
	bank.Post("/", bankHandler.Create)
	bank.Get("/", bankHandler.List)
	bank.Put("/:id", bankHandler.Update)
	bank.Delete("/:id", bankHandler.Delete)

	// Entries (asientos; la capability de creación depende del tipo en el body)
	entries := protected.Group("/entries")
	entryHandler := NewEntryHandler(deps.EntryUC, deps.PermissionUC)
	entries.Post("/", entryHandler.Create)
	entries.Get("/", RequirePermission(entity.CapShowEntries, deps.PermissionUC), entryHandler.List)
	entries.Get("/:id", RequirePermission(entity.CapShowEntries, deps.PermissionUC), entryHandler.GetByID)

	// Reports (estado de resultados)
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/profit-loss", RequirePermission(entity.CapShowEntries, deps.PermissionUC), reportHandler.ProfitLoss)
	reports.Get("/profit-loss/pdf", RequirePermission(entity.CapShowEntries, deps.PermissionUC), reportHandler.ProfitLossPDF)
}

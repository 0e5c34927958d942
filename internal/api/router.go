package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/soportec/inventory-system/internal/api/handler"
	"github.com/soportec/inventory-system/internal/api/middleware"
	"github.com/soportec/inventory-system/internal/core/domain"
	"github.com/soportec/inventory-system/internal/core/ports"
)

// PublicPaths are the path prefixes the request gate lets through
// without a session: the login flow itself, the denial landing page,
// and the operational probes. Logout is public too: a blocked or
// pending-approval visitor must still be able to destroy their session
// and cookie instead of carrying them until TTL.
var PublicPaths = []string{
	"/auth/login",
	"/auth/callback",
	"/auth/unauthorized",
	"/auth/token",
	"/auth/logout",
	"/health",
	"/metrics",
}

// Dependencies carries everything the router needs. They are built in
// cmd/server and injected so the router stays free of construction
// logic.
type Dependencies struct {
	Logger zerolog.Logger
	DB     *mongo.Database
	Redis  *redis.Client

	Gate    ports.Gate
	Auth    ports.AuthService
	Admin   ports.AdminService
	Monitor ports.SessionMonitor

	Products   ports.ProductService
	Customers  ports.CustomerService
	Warehouses ports.WarehouseService
	Invoices   ports.InvoiceService
	Orders     ports.ServiceOrderService

	CookieName   string
	CookieSecure bool
	JWTSecret    string
	// Activity reports allowed-request session ids to the idle monitor,
	// typically through the queue dispatcher.
	Activity func(sessionID string)
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("inventory"))
	e.Use(middleware.Gate(middleware.GateConfig{
		Gate:       deps.Gate,
		CookieName: deps.CookieName,
		JWTSecret:  deps.JWTSecret,
		Activity:   deps.Activity,
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth, deps.Monitor, handler.CookieConfig{
		Name:   deps.CookieName,
		Secure: deps.CookieSecure,
	})
	adminHandler := handler.NewAdminHandler(deps.Admin)
	productHandler := handler.NewProductHandler(deps.Products)
	customerHandler := handler.NewCustomerHandler(deps.Customers)
	warehouseHandler := handler.NewWarehouseHandler(deps.Warehouses)
	invoiceHandler := handler.NewInvoiceHandler(deps.Invoices)
	orderHandler := handler.NewServiceOrderHandler(deps.Orders)
	locationHandler := handler.NewLocationHandler()

	// --- Auth and session routes ---
	e.GET("/auth/login", authHandler.Login)
	e.GET("/auth/callback", authHandler.Callback)
	e.GET("/auth/unauthorized", authHandler.Unauthorized)
	e.POST("/auth/token", authHandler.TokenLogin)
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/auth/session", authHandler.SessionState)
	e.POST("/auth/session/extend", authHandler.ExtendSession)

	// --- Health probes and metrics (public) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Role sets ---
	staff := middleware.RBAC(domain.RoleAdmin, domain.RoleManager, domain.RoleTechSupport)
	managers := middleware.RBAC(domain.RoleAdmin, domain.RoleManager)
	admins := middleware.RBAC(domain.RoleAdmin)

	// --- Business routes ---
	v1 := e.Group("/v1")

	v1.GET("/products", productHandler.List)
	v1.GET("/products/:id", productHandler.Get)
	v1.POST("/products", productHandler.Create, managers)
	v1.PATCH("/products/:id", productHandler.Update, managers)
	v1.POST("/products/:id/stock", productHandler.AdjustStock, staff)

	v1.GET("/customers", customerHandler.List)
	v1.GET("/customers/:id", customerHandler.Get)
	v1.POST("/customers", customerHandler.Create, staff)
	v1.PUT("/customers/:id", customerHandler.Update, staff)

	v1.GET("/warehouses", warehouseHandler.List)
	v1.GET("/warehouses/:id", warehouseHandler.Get)
	v1.POST("/warehouses", warehouseHandler.Create, managers)
	v1.PUT("/warehouses/:id", warehouseHandler.Update, managers)
	v1.DELETE("/warehouses/:id", warehouseHandler.Deactivate, admins)

	v1.GET("/invoices", invoiceHandler.List)
	v1.GET("/invoices/:id", invoiceHandler.Get)
	v1.POST("/invoices", invoiceHandler.Create, staff)

	v1.GET("/orders", orderHandler.List)
	v1.GET("/orders/:id", orderHandler.Get)
	v1.POST("/orders", orderHandler.Create, staff)
	v1.POST("/orders/:id/status", orderHandler.UpdateStatus, staff)
	v1.POST("/orders/:id/assign", orderHandler.Assign, staff)
	v1.POST("/orders/:id/diagnosis", orderHandler.SetDiagnosis, staff)

	v1.GET("/locations/regions", locationHandler.Regions)
	v1.GET("/locations/regions/:id/communes", locationHandler.Communes)

	// --- Admin routes ---
	adm := v1.Group("/admin", admins)
	adm.GET("/users", adminHandler.ListUsers)
	adm.POST("/users/:id/authorize", adminHandler.Authorize)
	adm.POST("/users/:id/block", adminHandler.Block)
	adm.POST("/users/:id/unblock", adminHandler.Unblock)
	adm.PUT("/users/:id/role", adminHandler.SetRole)

	return e
}

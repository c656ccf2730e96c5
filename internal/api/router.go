package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/leadline/crm-system/internal/api/handler"
	"github.com/leadline/crm-system/internal/api/middleware"
	"github.com/leadline/crm-system/internal/core/domain"
	"github.com/leadline/crm-system/internal/core/ports"
)

// Deps carries everything the router needs. Mongo and Redis may be nil
// when the in-memory backend is selected; readiness degrades gracefully.
type Deps struct {
	Customers ports.CustomerService
	Leads     ports.LeadService
	Auth      ports.AuthService
	Activity  ports.ActivityService
	JWTSecret string
	Mongo     *mongo.Database
	Redis     *redis.Client
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("crm"))

	customerHandler := handler.NewCustomerHandler(deps.Customers, deps.Activity)
	leadHandler := handler.NewLeadHandler(deps.Leads)
	dashboardHandler := handler.NewDashboardHandler(deps.Leads)
	authHandler := handler.NewAuthHandler(deps.Auth)

	// --- Auth routes (public) ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	e.GET("/metrics", echoprometheus.NewHandler())

	// --- API routes (token required) ---
	v1 := e.Group("/v1", middleware.Auth(deps.JWTSecret))

	v1.GET("/customers", customerHandler.List)
	v1.POST("/customers", customerHandler.Create)
	v1.GET("/customers/:id", customerHandler.Get)
	v1.PUT("/customers/:id", customerHandler.Update)
	v1.DELETE("/customers/:id", customerHandler.Delete, middleware.RBAC(domain.RoleAdmin))
	v1.GET("/customers/:id/activity", customerHandler.Activity)

	v1.GET("/customers/:id/leads", leadHandler.ListForCustomer)
	v1.GET("/leads", leadHandler.ListAll)
	v1.POST("/leads", leadHandler.Create)
	v1.PUT("/leads/:id", leadHandler.Update)
	v1.DELETE("/leads/:id", leadHandler.Delete)

	v1.GET("/dashboard/metrics", dashboardHandler.Metrics)

	return e
}

package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/routeai/admin-console/docs"
	"github.com/routeai/admin-console/internal/api/handler"
	"github.com/routeai/admin-console/internal/api/middleware"
	"github.com/routeai/admin-console/internal/core/ports"
	"github.com/routeai/admin-console/internal/core/service"
)

// Deps carries the collaborators the router wires together. Mongo, Redis,
// Audit, Recorder, and Guard may be nil; the matching features degrade
// gracefully.
type Deps struct {
	Directory ports.UserDirectory
	Audit     ports.AuditRepository
	Recorder  ports.AuditRecorder
	Guard     service.SubmitGuard
	Mongo     *mongo.Database
	Redis     *redis.Client
	JWTSecret string
	Log       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("console"))

	// --- Dependencies ---
	registry := service.NewRegistry(d.Directory, d.Recorder, d.Guard, d.Log)
	consoleHandler := handler.NewConsoleHandler(registry, d.Audit)

	// --- Console routes (admin only) ---
	v1 := e.Group("/v1/console", middleware.Auth(d.JWTSecret), middleware.AdminOnly())
	v1.GET("/users", consoleHandler.ListUsers)
	v1.POST("/users/:id/role/workflow", consoleHandler.OpenRoleChange)
	v1.PUT("/users/:id/role", consoleHandler.SubmitRoleChange)
	v1.POST("/users/:id/credits/workflow", consoleHandler.OpenCreditAdjustment)
	v1.POST("/users/:id/credits/proposal", consoleHandler.ProposeCreditAdjustment)
	v1.POST("/users/:id/credits", consoleHandler.CommitCreditAdjustment)
	v1.GET("/users/:id/audit", consoleHandler.ListAudit)
	v1.GET("/workflow", consoleHandler.ActiveWorkflow)
	v1.DELETE("/workflow", consoleHandler.CancelWorkflow)
	v1.DELETE("/workflow/confirmation", consoleHandler.DeclineConfirmation)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.Mongo, d.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

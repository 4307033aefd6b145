package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/frontdesk/hotel-system/internal/api/handler"
	"github.com/frontdesk/hotel-system/internal/api/middleware"
	"github.com/frontdesk/hotel-system/internal/core/domain"
	"github.com/frontdesk/hotel-system/internal/core/ports"
	"github.com/frontdesk/hotel-system/internal/infrastructure/http/handlers"

	_ "github.com/frontdesk/hotel-system/docs"
)

// Dependencies are the collaborators the router wires into handlers.
type Dependencies struct {
	Users       ports.UserService
	Rooms       ports.RoomService
	Tokens      ports.TokenVerifier
	UserRepo    ports.UserRepository
	Idempotency ports.IdempotencyStore
	Readiness   []handlers.Dependency
	Logger      zerolog.Logger
	// Registry collects HTTP metrics and backs /metrics. Nil selects the
	// process default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	var registerer prometheus.Registerer = prometheus.DefaultRegisterer
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if d.Registry != nil {
		registerer, gatherer = d.Registry, d.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "hotel",
		Subsystem:  "http",
		Registerer: registerer,
	}))
	e.Use(middleware.RequestLogger(d.Logger))

	guard := middleware.Auth(d.Tokens, d.UserRepo)
	idempotent := middleware.Idempotency(d.Idempotency, d.Logger)
	manageRooms := middleware.RequireCapability(domain.CapManageRooms)

	userHandler := handler.NewUserHandler(d.Users)
	roomHandler := handler.NewRoomHandler(d.Rooms)

	// --- Tokens ---
	e.POST("/api/Tokens/", userHandler.Authenticate)

	// --- Users ---
	users := e.Group("/api/Users")
	users.POST("/", userHandler.Create, idempotent)
	users.GET("/me", userHandler.Me, guard)
	users.POST("/change-password", userHandler.ChangePassword, guard)
	users.POST("/change-role", userHandler.ChangeRole, guard, middleware.RequireCapability(domain.CapManageUsers))

	// --- Rooms ---
	rooms := e.Group("/api/Rooms", guard)
	rooms.POST("/create-type/:type", roomHandler.CreateType, manageRooms, idempotent)
	rooms.POST("/create-room", roomHandler.CreateRoom, manageRooms, idempotent)
	rooms.POST("/remove-type/:type", roomHandler.RemoveType, manageRooms)
	rooms.POST("/remove-room/:room", roomHandler.RemoveRoom, manageRooms)
	rooms.POST("/update/:room", roomHandler.Update, manageRooms)
	rooms.GET("/room", roomHandler.Query, middleware.RequireCapability(domain.CapViewRooms))
	rooms.GET("/types", roomHandler.ListTypes)

	// --- Operations (no auth required) ---
	e.GET("/health", handlers.NewHealthHandler().Liveness)
	e.GET("/health/ready", handlers.NewReadinessHandler(d.Readiness...).Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

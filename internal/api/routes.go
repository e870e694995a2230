// routes.go - Route registration helpers
// This file provides a clean way to register all API routes
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/techequipments/engine/internal/soe"
	"github.com/techequipments/engine/internal/trend"
)

// Dependencies holds all handler dependencies
type Dependencies struct {
	Directory      EquipmentDirectory
	Series         *trend.Catalog
	Extractor      SoeExtractor
	Jobs           JobManager
	Sessions       SessionManager
	Historian      HistorianStore
	SoeDefaults    soe.Options
	Version        string
	WSMaxMessageKB int
}

// Handlers holds all handler instances
type Handlers struct {
	Health    HealthHandler
	Equipment EquipmentHandler
	Soe       SoeHandler
	Trend     TrendHandler
	Historian HistorianHandler
	WebSocket *TrendWebSocketHandler
}

// NewHandlers creates all handler instances
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		Health:    NewHealthHandler(deps.Version, deps.Directory),
		Equipment: NewEquipmentHandler(deps.Directory, deps.Series),
		Soe:       NewSoeHandler(deps.Extractor, deps.Jobs, deps.SoeDefaults),
		Trend:     NewTrendHandler(deps.Sessions, deps.Directory),
		Historian: historianHandler(deps.Historian),
		WebSocket: NewTrendWebSocketHandler(deps.Sessions, deps.WSMaxMessageKB),
	}
}

func historianHandler(store HistorianStore) HistorianHandler {
	if store == nil {
		return nil
	}
	return NewHistorianHandler(store)
}

// RegisterRoutes registers all API routes with the Echo instance
func RegisterRoutes(e *echo.Echo, handlers *Handlers) {
	// Health check
	e.GET("/api/health", handlers.Health.HandleHealth)

	// Prometheus
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Equipment catalog routes
	equipmentGroup := e.Group("/api/equipment")
	equipmentGroup.GET("", handlers.Equipment.HandleListEquipment)
	equipmentGroup.GET("/:name", handlers.Equipment.HandleGetEquipment)

	// SOE routes
	soeGroup := e.Group("/api/soe")
	soeGroup.GET("/codes/:group", handlers.Soe.HandleGetCodes)
	soeGroup.GET("/extract/:name", handlers.Soe.HandleExtract)
	soeGroup.POST("/jobs", handlers.Soe.HandleStartJob)
	soeGroup.GET("/jobs/:jobId", handlers.Soe.HandleJobStatus)
	soeGroup.GET("/jobs/:jobId/progress", handlers.Soe.HandleJobProgressStream)
	soeGroup.GET("/jobs/:jobId/records", handlers.Soe.HandleJobRecords)
	soeGroup.GET("/jobs/:jobId/records/msgpack", handlers.Soe.HandleJobRecordsMsgpack)
	soeGroup.DELETE("/jobs/:jobId", handlers.Soe.HandleCancelJob)

	// Trend session routes
	trendGroup := e.Group("/api/trend/sessions")
	trendGroup.POST("", handlers.Trend.HandleStartSession)
	trendGroup.GET("/:id", handlers.Trend.HandleSnapshot)
	trendGroup.GET("/:id/points/msgpack", handlers.Trend.HandlePointsMsgpack)
	trendGroup.PUT("/:id/equipment", handlers.Trend.HandleChangeEquipment)
	trendGroup.POST("/:id/range", handlers.Trend.HandleRange)
	trendGroup.POST("/:id/live", handlers.Trend.HandleLive)
	trendGroup.POST("/:id/keepalive", handlers.Trend.HandleKeepAlive)
	trendGroup.DELETE("/:id", handlers.Trend.HandleCloseSession)

	// Historian routes
	if handlers.Historian != nil {
		historianGroup := e.Group("/api/historian")
		historianGroup.POST("/ingest", handlers.Historian.HandleIngest)
		historianGroup.GET("/tags", handlers.Historian.HandleListTags)
	}
}

// RegisterWebSocketRoutes registers WebSocket routes
func RegisterWebSocketRoutes(e *echo.Echo, handlers *Handlers) {
	e.GET("/api/ws/trend/:id", handlers.WebSocket.HandleTrendWebSocket)
}

// MiddlewareOptions selects the optional middleware
type MiddlewareOptions struct {
	RequestLogging bool
	EnableCORS     bool
	AllowOrigins   []string
	BodyLimit      string
	RequestTimeout time.Duration
}

// SetupMiddleware configures common middleware
func SetupMiddleware(e *echo.Echo, opts MiddlewareOptions) {
	e.HTTPErrorHandler = ErrorHandler

	if opts.RequestLogging {
		e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
			Skipper: quietRoute,
		}))
	}
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 * 1024,
	}))

	if opts.RequestTimeout > 0 {
		e.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
			Timeout:      opts.RequestTimeout,
			Skipper:      longRunningRoute,
			ErrorMessage: "Request timeout - query took too long",
		}))
	}

	if opts.EnableCORS {
		origins := opts.AllowOrigins
		if len(origins) == 0 || (len(origins) == 1 && origins[0] == "") {
			origins = []string{"*"}
		}
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: origins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		}))
	}
	if opts.BodyLimit != "" {
		e.Use(middleware.BodyLimit(opts.BodyLimit))
	}
}

// quietRoute skips request logging for polling and streaming endpoints
func quietRoute(c echo.Context) bool {
	path := c.Request().URL.Path
	return path == "/api/health" ||
		path == "/metrics" ||
		strings.HasSuffix(path, "/progress") ||
		strings.HasSuffix(path, "/keepalive") ||
		strings.HasPrefix(path, "/api/ws/")
}

// longRunningRoute skips the request timeout for streams and synchronous extractions
func longRunningRoute(c echo.Context) bool {
	path := c.Request().URL.Path
	return strings.HasSuffix(path, "/progress") ||
		strings.HasPrefix(path, "/api/ws/") ||
		strings.HasPrefix(path, "/api/soe/extract/") ||
		path == "/api/historian/ingest" ||
		c.Request().Header.Get("Accept") == "text/event-stream"
}

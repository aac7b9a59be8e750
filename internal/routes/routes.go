package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/xyz-asif/todoapp/internal/config"
	"github.com/xyz-asif/todoapp/internal/features/todos"
	"github.com/xyz-asif/todoapp/internal/middleware"
	"github.com/xyz-asif/todoapp/internal/pkg/logger"
	"github.com/xyz-asif/todoapp/internal/pkg/ratelimit"
	"github.com/xyz-asif/todoapp/internal/pkg/response"
)

const serviceName = "todoapp"

// Deps are the collaborators the router is assembled from.
type Deps struct {
	Todos *todos.Service
	// Registry receives the HTTP metrics and is served on /metrics.
	Registry *prometheus.Registry
	// Limiter throttles the API group per client. Nil disables it.
	Limiter *ratelimit.RateLimiter
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Store  string `json:"store" example:"memory"`
	Time   int64  `json:"time" example:"1735689600"`
}

// NewRouter builds the engine with middleware, operational endpoints and
// the todo API.
func NewRouter(cfg *config.Config, deps Deps) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS(cfg.FrontendURLs))
	if cfg.TracingEnabled {
		router.Use(otelgin.Middleware(serviceName))
	}

	registry := deps.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	router.Use(middleware.NewMetrics(registry).Handler())

	router.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "No route matches "+c.Request.Method+" "+c.Request.URL.Path)
	})

	router.GET("/health", health(cfg.StoreDriver, deps.Todos))
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})))
	router.GET(
		"/swagger/*any",
		ginSwagger.WrapHandler(
			swaggerFiles.Handler,
			ginSwagger.URL("/swagger/doc.json"),
			ginSwagger.DeepLinking(true),
			ginSwagger.DefaultModelsExpandDepth(-1),
			ginSwagger.DocExpansion("none"),
		),
	)

	SetupRoutes(router, cfg, deps)
	return router
}

// SetupRoutes mounts the API group.
func SetupRoutes(router *gin.Engine, cfg *config.Config, deps Deps) {
	api := router.Group(cfg.APIBasePath)
	if deps.Limiter != nil {
		api.Use(ratelimit.Middleware(deps.Limiter))
	}

	todos.RegisterRoutes(api, deps.Todos)
}

// health answers 503 when the store does not respond to a ping.
func health(store string, svc *todos.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := svc.Ping(ctx); err != nil {
			logger.Warn("store ping failed", "store", store, "error", err)
			response.ServiceUnavailable(c, "The "+store+" store is not reachable")
			return
		}

		c.JSON(http.StatusOK, HealthResponse{
			Status: "ok",
			Store:  store,
			Time:   time.Now().Unix(),
		})
	}
}

package http

import (
	"net/http"
	"time"

	"todo_webapp/internal/config"
	"todo_webapp/internal/http/handlers"
	"todo_webapp/internal/http/middleware"
	"todo_webapp/internal/service"
	"todo_webapp/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps is everything the routes need. Config may be nil, in which case
// defaults apply.
type Deps struct {
	Todos   *service.TodoService
	Hub     *ws.Hub
	Config  *config.Config
	Version string
}

func RegisterRoutes(r *gin.Engine, deps Deps) {
	cfg := deps.Config
	if cfg == nil {
		cfg = &config.Config{
			APIRateLimit:              120,
			APIRateWindowSeconds:      60,
			MutationRateLimit:         30,
			MutationRateWindowSeconds: 60,
		}
	}

	r.Use(middleware.RequestID())
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(cfg.AllowedOrigin))

	h := handlers.NewHandler(deps.Todos)
	healthHandler := handlers.NewHealthHandler(deps.Todos, deps.Version)

	apiRateWindow := time.Duration(cfg.APIRateWindowSeconds) * time.Second
	mutationRateWindow := time.Duration(cfg.MutationRateWindowSeconds) * time.Second

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiLimit := middleware.RateLimit(cfg.APIRateLimit, apiRateWindow)
	mutationLimit := middleware.MutationRateLimit(cfg.MutationRateLimit, mutationRateWindow)

	// API v1 routes
	v1 := r.Group("/api/v1")
	v1.Use(apiLimit, mutationLimit)
	registerAPIRoutes(v1, h)

	// Unversioned /api routes, the paths the original frontend calls
	api := r.Group("/api")
	api.Use(apiLimit, mutationLimit)
	api.GET("/health", healthHandler.Health)
	registerAPIRoutes(api, h)

	// Live change feed
	if deps.Hub != nil {
		r.GET("/ws", ws.HandleWS(deps.Hub, cfg.AllowedOrigin))
	}

	// Frontend static files
	if cfg.FrontendDir != "" {
		r.StaticFS("/assets", gin.Dir(cfg.FrontendDir, false))
		r.NoRoute(func(c *gin.Context) {
			c.File(cfg.FrontendDir + "/index.html")
		})
		return
	}
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
}

func registerAPIRoutes(api *gin.RouterGroup, h *handlers.Handler) {
	api.GET("/todos", h.ListTodos)
	api.POST("/todos", h.CreateTodo)
	api.PATCH("/todos/:id", h.UpdateTodo)
	api.DELETE("/todos/:id", h.DeleteTodo)
}

// Package api assembles the gin engine: the middleware chain and every
// controller's routes under /api/v1.
package api

import (
	"net/http"

	"bookstore/api/catalog"
	"bookstore/api/health"
	"bookstore/api/middleware"
	"bookstore/api/order"
	"bookstore/api/upload"
	"bookstore/api/user"
	"bookstore/config"
	"bookstore/pkg/auth"

	"github.com/gin-gonic/gin"
)

// Controllers bundles everything the router mounts.
type Controllers struct {
	Health  *health.Controller
	User    *user.Controller
	Catalog *catalog.Controller
	Order   *order.Controller
	Upload  *upload.Controller
}

// Router owns the gin engine and the route table.
type Router struct {
	engine      *gin.Engine
	config      *config.Config
	controllers Controllers
}

// NewRouter builds the engine with the standard middleware chain. The
// order matters: the request ID must exist before anything logs, and
// recovery must wrap everything that can panic.
func NewRouter(cfg *config.Config, tokens *auth.TokenService, controllers Controllers) *Router {
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Recovery())
	engine.Use(middleware.Logging())
	engine.Use(middleware.CORS(&cfg.CORS))
	engine.Use(middleware.RateLimit(&cfg.Server.RateLimit))
	engine.Use(middleware.Authenticate(tokens))

	return &Router{
		engine:      engine,
		config:      cfg,
		controllers: controllers,
	}
}

// SetupRoutes mounts every controller.
func (r *Router) SetupRoutes() {
	apiGroup := r.engine.Group("/api/v1")
	{
		r.controllers.User.RegisterRoutes(apiGroup)
		r.controllers.Catalog.RegisterRoutes(apiGroup)
		r.controllers.Order.RegisterRoutes(apiGroup)
		r.controllers.Upload.RegisterRoutes(apiGroup)
	}

	r.controllers.Health.RegisterRoutes(r.engine)

	r.engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":    r.config.App.Name,
			"version": r.config.App.Version,
			"env":     r.config.App.Env,
			"health":  "/health",
		})
	})
}

// GetEngine returns the gin engine.
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// Package router wires the gin engine, shared middleware, and module routes.
package router

import (
	"net/http"

	apphttp "quotebot/internal/http"
	"quotebot/platform/httpkit"
	"quotebot/platform/logger"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// New builds the gin engine with shared middleware and registers every module's routes.
func New(env string, log *logger.Logger, modules []apphttp.Module) *gin.Engine {
	if env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(httpkit.RequestID())
	engine.Use(httpkit.RequestLogger(log))

	engine.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	ctx := &apphttp.RouterContext{
		Engine:             engine,
		WebhookRateLimiter: httpkit.NewIPRateLimiter(rate.Limit(5), 10, log),
	}

	for _, module := range modules {
		module.RegisterRoutes(ctx)
		log.Info("module routes registered", "module", module.Name())
	}

	return engine
}

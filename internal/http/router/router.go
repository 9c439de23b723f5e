// Package router assembles the Gin engine from the registered modules.
package router

import (
	nethttp "net/http"

	apphttp "recruit_portal_backend/internal/http"
	"recruit_portal_backend/platform/httpkit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// New builds the HTTP engine: global middleware, the health endpoint, and
// one RegisterRoutes call per module.
func New(app *apphttp.App) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(httpkit.RequestLogger(app.Logger))
	engine.Use(httpkit.SecurityHeaders())

	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "X-Webhook-Token"},
		ExposeHeaders: []string{"Content-Length"},
	}
	if app.Config.GetCORSAllowAll() {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = app.Config.GetCORSOrigins()
		corsCfg.AllowCredentials = app.Config.GetCORSAllowCreds()
	}
	engine.Use(cors.New(corsCfg))

	// 100 req/s per IP with a burst of 200; auth routes get a stricter
	// limiter via the RouterContext.
	globalLimiter := httpkit.NewIPRateLimiter(rate.Limit(100), 200, app.Logger)
	engine.Use(globalLimiter.RateLimit())

	api := engine.Group("/api")
	api.GET("/health", healthHandler(app))

	authMiddleware := httpkit.AuthRequired(app.Sessions)
	protected := engine.Group("/api")
	protected.Use(authMiddleware)

	ctx := &apphttp.RouterContext{
		Engine:          engine,
		API:             api,
		Protected:       protected,
		AuthMiddleware:  authMiddleware,
		AuthRateLimiter: httpkit.NewAuthRateLimiter(app.Logger),
	}

	for _, module := range app.Modules {
		module.RegisterRoutes(ctx)
		app.Logger.Info("module routes registered", "module", module.Name())
	}

	return engine
}

func healthHandler(app *apphttp.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "ok"
		database := "up"
		if err := app.Health.Ping(c.Request.Context()); err != nil {
			status = "degraded"
			database = "down"
		}

		code := nethttp.StatusOK
		if status != "ok" {
			code = nethttp.StatusServiceUnavailable
		}

		c.JSON(code, gin.H{
			"status":   status,
			"database": database,
			"integrations": gin.H{
				"vapi":   app.Config.IsVapiEnabled(),
				"twilio": app.Config.GetTwilioAccountSID() != "",
				"ghl":    app.Config.GetGHLAPIKey() != "",
				"openai": app.Config.GetOpenAIAPIKey() != "",
			},
		})
	}
}

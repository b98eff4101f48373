package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fiche-backend/internal/fiches"
	"fiche-backend/internal/services/health"
	"fiche-backend/internal/shared/config"
	"fiche-backend/internal/shared/metrics"
	"fiche-backend/internal/shared/server/middleware"
	"fiche-backend/internal/shared/server/respond"
)

// rootBanner answers the cold-start probe on GET /.
const rootBanner = "Backend Job Generator OK"

// RouterDeps lists what the router wires into routes.
type RouterDeps struct {
	Config       config.Config
	FicheHandler *fiches.Handler
	Health       *health.Service
	Limiter      *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(middleware.DefaultCORSOptions(deps.Config.CORSAllowOrigin)),
	)

	healthSvc := deps.Health
	if healthSvc == nil {
		healthSvc = health.NewService(nil)
	}

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, rootBanner)
	})
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		respond.OK(c, healthSvc.Status())
	})

	if deps.FicheHandler != nil {
		limiter := deps.Limiter
		if limiter == nil {
			limiter = middleware.NewRateLimiter(nil)
		}
		rule := middleware.PerMinute(deps.Config.GenerateRatePerMinute, deps.Config.GenerateBurst)
		deps.FicheHandler.RegisterRoutes(api, middleware.RateLimit(limiter, "generate", rule))
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":3000"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}

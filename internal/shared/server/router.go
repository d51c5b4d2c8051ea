package server

import (
	"github.com/gin-gonic/gin"

	"resume-check/internal/shared/config"
	"resume-check/internal/shared/metrics"
	"resume-check/internal/shared/server/middleware"
)

const (
	apiPrefix  = "/api/v1"
	healthPath = apiPrefix + "/health"

	defaultGroup = "DEFAULT"
	exportGroup  = "EXPORT"
)

// exportRoutes render PDFs and share the stricter EXPORT bucket.
var exportRoutes = map[string]struct{}{
	apiPrefix + "/analyses/current/report.pdf": {},
	apiPrefix + "/reports/render":              {},
}

// RouteRegistrar attaches a feature's routes to the API group.
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// NewRouter constructs the Gin engine with middleware and routes registered.
// A nil limiter gets a fresh one on the wall clock.
func NewRouter(cfg config.Config, limiter *middleware.RateLimiter, registrars ...RouteRegistrar) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.MaxMultipartMemory = cfg.MaxUploadBytes

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group(apiPrefix)
	api.Use(
		middleware.Session(healthPath),
		middleware.RateLimit(middleware.RateLimitConfig{
			Limiter:      limiter,
			DefaultGroup: defaultGroup,
			GroupFor:     rateLimitGroup,
			Rules:        rateLimitRules(cfg),
		}),
	)
	registerHealthRoutes(api)
	for _, reg := range registrars {
		reg.RegisterRoutes(api)
	}

	return r
}

func rateLimitGroup(c *gin.Context) string {
	if _, ok := exportRoutes[c.FullPath()]; ok {
		return exportGroup
	}
	return defaultGroup
}

// rateLimitRules uses the default rule for exports when no export limit is
// configured.
func rateLimitRules(cfg config.Config) map[string]middleware.RateLimitRule {
	def := middleware.RateLimitRule{Rate: cfg.RateLimitRPS, Burst: cfg.RateLimitBurst}
	export := middleware.RateLimitRule{Rate: cfg.ExportRateLimitRPS, Burst: cfg.ExportRateLimitBurst}
	if export.Rate <= 0 || export.Burst <= 0 {
		export = def
	}
	return map[string]middleware.RateLimitRule{
		defaultGroup: def,
		exportGroup:  export,
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}

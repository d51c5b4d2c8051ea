package bootstrap

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"resume-check/internal/analyses"
	"resume-check/internal/shared/config"
	"resume-check/internal/shared/server"
	"resume-check/internal/shared/server/middleware"
	"resume-check/internal/shared/telemetry"
	"resume-check/report/render"
)

// App holds shared dependencies.
type App struct {
	Config          config.Config
	Router          *gin.Engine
	Layout          render.Config
	Renderer        *render.Renderer
	AnalysesRepo    *analyses.MemoryRepo
	AnalysesService *analyses.Service
	AnalysisHandler *analyses.Handler
	Limiter         *middleware.RateLimiter
}

// Options overrides collaborators for tests.
type Options struct {
	Now      func() time.Time
	Producer analyses.Producer
}

// Build wires the application from configuration.
func Build(cfg config.Config, opts Options) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}

	layout, err := config.LoadLayout(cfg.ReportLayoutFile, render.DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}
	if cfg.ReportLayoutFile != "" {
		telemetry.Info("bootstrap.layout_loaded", map[string]any{"path": cfg.ReportLayoutFile})
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}
	producer := opts.Producer
	if producer == nil {
		producer = analyses.MockProducer{}
	}

	renderer := render.NewRenderer(layout)
	renderer.Now = now

	repo := analyses.NewMemoryRepo(now)
	if cfg.SessionTTL > 0 {
		repo.TTL = cfg.SessionTTL
	}
	if cfg.MaxSessions > 0 {
		repo.MaxSessions = cfg.MaxSessions
	}
	svc := &analyses.Service{
		Repo:              repo,
		Producer:          producer,
		Renderer:          renderer,
		EnforceExtensions: cfg.EnforceExtensions,
		Now:               now,
	}
	handler := analyses.NewHandler(svc, cfg.MaxUploadBytes)
	if cfg.MaxReportBytes > 0 {
		handler.MaxReportBytes = cfg.MaxReportBytes
	}
	limiter := middleware.NewRateLimiter(now)

	app := &App{
		Config:          cfg,
		Layout:          layout,
		Renderer:        renderer,
		AnalysesRepo:    repo,
		AnalysesService: svc,
		AnalysisHandler: handler,
		Limiter:         limiter,
	}
	app.Router = server.NewRouter(cfg, limiter, handler)

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":                cfg.Env,
		"max_upload_bytes":   cfg.MaxUploadBytes,
		"enforce_extensions": cfg.EnforceExtensions,
		"rate_limit_rps":     cfg.RateLimitRPS,
		"rate_limit_burst":   cfg.RateLimitBurst,
		"session_ttl":        repo.TTL.String(),
		"max_sessions":       repo.MaxSessions,
	})
	return app, nil
}

package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"resume-check/internal/shared/telemetry"
)

const (
	defaultMaxUploadBytes = 10 << 20
	defaultRateLimitRPS   = 5
	defaultRateLimitBurst = 10
	defaultExportRPS      = 1
	defaultExportBurst    = 3
	defaultSessionTTL     = 30 * time.Minute
	defaultMaxSessions    = 1000
	defaultMaxReportBytes = 1 << 20
)

// Config holds application configuration.
type Config struct {
	Port              string
	Env               string
	CORSAllowOrigin   []string
	MaxUploadBytes    int64
	EnforceExtensions bool
	RateLimitRPS      float64
	RateLimitBurst    int
	ReportLayoutFile  string

	// ExportRateLimitRPS and ExportRateLimitBurst bound the PDF routes.
	ExportRateLimitRPS   float64
	ExportRateLimitBurst int

	// SessionTTL is how long an untouched session keeps its analysis.
	SessionTTL     time.Duration
	MaxSessions    int
	MaxReportBytes int64
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	return Config{
		Port:                 getEnv("PORT", "8080"),
		Env:                  normalizeEnv(getEnv("ENV", "dev")),
		CORSAllowOrigin:      splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		MaxUploadBytes:       getInt64("MAX_UPLOAD_BYTES", defaultMaxUploadBytes),
		EnforceExtensions:    getBool("ENFORCE_EXTENSIONS", false),
		RateLimitRPS:         getFloat("RATE_LIMIT_RPS", defaultRateLimitRPS),
		RateLimitBurst:       int(getInt64("RATE_LIMIT_BURST", defaultRateLimitBurst)),
		ReportLayoutFile:     getEnv("REPORT_LAYOUT_FILE", ""),
		ExportRateLimitRPS:   getFloat("RATE_LIMIT_EXPORT_RPS", defaultExportRPS),
		ExportRateLimitBurst: int(getInt64("RATE_LIMIT_EXPORT_BURST", defaultExportBurst)),
		SessionTTL:           getDuration("SESSION_TTL", defaultSessionTTL),
		MaxSessions:          int(getInt64("MAX_SESSIONS", defaultMaxSessions)),
		MaxReportBytes:       getInt64("MAX_REPORT_BYTES", defaultMaxReportBytes),
	}
}

func getEnv(key, def string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return def
}

func getInt64(key string, def int64) int64 {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	val, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || val <= 0 {
		telemetry.Warn("config.invalid", map[string]any{"key": key, "value": raw})
		return def
	}
	return val
}

func getFloat(key string, def float64) float64 {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil || val < 0 {
		telemetry.Warn("config.invalid", map[string]any{"key": key, "value": raw})
		return def
	}
	return val
}

func getDuration(key string, def time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	val, err := time.ParseDuration(raw)
	if err != nil || val <= 0 {
		telemetry.Warn("config.invalid", map[string]any{"key": key, "value": raw})
		return def
	}
	return val
}

func getBool(key string, def bool) bool {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	val, err := strconv.ParseBool(raw)
	if err != nil {
		telemetry.Warn("config.invalid", map[string]any{"key": key, "value": raw})
		return def
	}
	return val
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

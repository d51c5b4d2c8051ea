package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"

	"resume-check/internal/shared/telemetry"
)

// loadEnvFiles loads KEY=VALUE pairs from the given files if they exist.
// Variables already set in the environment win.
func loadEnvFiles(paths ...string) {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			telemetry.Warn("config.dotenv_failed", map[string]any{"path": path, "err": err})
		}
	}
}

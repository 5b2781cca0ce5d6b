package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/akeren/consent-intake/internal/log"
	"github.com/joho/godotenv"
)

const AppEnvKey = "APP_ENV"

// DefaultEnvFiles are read in order; a key set by an earlier file, or by the
// process environment, is never overwritten.
var DefaultEnvFiles = []string{".env.local", ".env"}

// developmentEnvs may run --auto-migrate. An unset APP_ENV counts as development.
var developmentEnvs = []string{"", "dev", "development", "local", "test", "testing"}

// LoadEnvFiles loads whichever of files exist. SKIP_DOTENV=true turns it off,
// which is how containers that inject their env directly run.
func LoadEnvFiles(logger *log.Logger, files ...string) {
	if strings.EqualFold(strings.TrimSpace(os.Getenv("SKIP_DOTENV")), "true") {
		logger.Info("Skipping env files (SKIP_DOTENV=true)")
		return
	}

	if len(files) == 0 {
		files = DefaultEnvFiles
	}

	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		} else if !errors.Is(err, fs.ErrNotExist) {
			logger.Warn("Cannot read env file", "file", f, "error", err)
		}
	}

	if len(present) == 0 {
		logger.Info("No env files found; using process environment", "looked_for", files)
		return
	}

	if err := godotenv.Load(present...); err != nil {
		logger.Warn("Failed to load env files", "files", present, "error", err)
		return
	}

	logger.Info("Loaded env files", "files", present)
}

// envValue returns key with surrounding whitespace and matching quotes removed.
func envValue(key string) string {
	return sanitizeEnv(os.Getenv(key))
}

func GetAppEnv() string {
	return strings.ToLower(envValue(AppEnvKey))
}

func ValidateAutoMigrateAllowed(appEnv string) error {
	env := strings.ToLower(strings.TrimSpace(appEnv))
	if slices.Contains(developmentEnvs, env) {
		return nil
	}

	return fmt.Errorf("--auto-migrate creates the submissions table and is not allowed when %s=%q; use `cli migrate up` instead", AppEnvKey, env)
}

package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Module provides application and source configuration.
var Module = fx.Module("config",
	fx.Provide(Load),
	fx.Provide(LoadSources),
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string

	// ExportsDir is scanned for export files when no explicit
	// paths are given on the command line.
	ExportsDir string

	DBType     string
	DBPath     string
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppName:     getenv("APP_SERVICE", "tickethouse"),
		AppVersion:  getenv("APP_VERSION", "0.1.0"),
		Environment: getenv("ENVIRONMENT", "development"),
		ExportsDir:  getenv("EXPORTS_DIR", "exports"),
		DBType:      getenv("DATABASE_TYPE", "sqlite"),
		DBPath:      getenv("DATABASE_PATH", "interactions.db"),
		DBHost:      getenv("DATABASE_HOST", "localhost"),
		DBPort:      getenv("DATABASE_PORT", "5432"),
		DBName:      getenv("DATABASE_NAME", "tickethouse"),
		DBUser:      getenv("DATABASE_USER", "postgres"),
		DBPassword:  getenv("DATABASE_PASSWORD", ""),
		DBSSLMode:   getenv("DATABASE_SSLMODE", "disable"),
	}
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

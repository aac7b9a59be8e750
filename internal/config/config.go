package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/xyz-asif/todoapp/internal/pkg/logger"
)

const (
	StoreMemory = "memory"
	StoreMySQL  = "mysql"
	StoreMongo  = "mongo"
)

type Config struct {
	Port        string `env:"PORT" env-default:"8080"`
	AppEnv      string `env:"APP_ENV" env-default:"development"`
	LogLevel    string `env:"LOG_LEVEL" env-default:"info"`
	APIBasePath string `env:"API_BASE_PATH" env-default:"/api"`

	StoreDriver string `env:"STORE_DRIVER" env-default:"memory"`
	MySQLDSN    string `env:"MYSQL_DSN" env-default:"root:root@tcp(localhost:3306)/todoapp"`
	MongoURI    string `env:"MONGO_URI" env-default:"mongodb://localhost:27017"`
	MongoDB     string `env:"MONGO_DB" env-default:"todoapp"`

	FrontendURLs []string `env:"FRONTEND_URLS" env-separator:"," env-default:"http://localhost:5173,http://localhost:5174"`

	RateLimit       int           `env:"RATE_LIMIT" env-default:"600"`
	RateLimitWindow time.Duration `env:"RATE_LIMIT_WINDOW" env-default:"1m"`
	RateLimitBurst  int           `env:"RATE_LIMIT_BURST" env-default:"0"`

	TracingEnabled  bool          `env:"TRACING_ENABLED" env-default:"false"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"5s"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file found")
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}

	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))
	switch cfg.StoreDriver {
	case StoreMemory, StoreMySQL, StoreMongo:
	default:
		return nil, fmt.Errorf("STORE_DRIVER must be one of %s, %s, %s; got %q",
			StoreMemory, StoreMySQL, StoreMongo, cfg.StoreDriver)
	}

	cfg.APIBasePath = "/" + strings.Trim(cfg.APIBasePath, "/")

	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// LogFormat picks JSON output for production and text elsewhere.
func (c *Config) LogFormat() logger.Format {
	if c.IsProduction() {
		return logger.FormatJSON
	}
	return logger.FormatText
}

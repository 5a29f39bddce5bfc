package config

import (
	"os"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

type Config struct {
	HTTPPort    string        `envconfig:"HTTP_PORT"   default:":8080"`
	LogLevel    string        `envconfig:"LOG_LEVEL"   default:"info"`
	DatabaseURL string        `envconfig:"DATABASE_URL"`
	SeedData    bool          `envconfig:"SEED_DATA"   default:"true"`
	SessionTTL  time.Duration `envconfig:"SESSION_TTL" default:"24h"`
}

var (
	config Config
	once   sync.Once
)

// LoadConfig reads the environment (and an optional .env file) exactly
// once. An empty DATABASE_URL selects the in-memory store.
func LoadConfig(logger *logrus.Logger) *Config {
	once.Do(func() {
		err := godotenv.Load()
		if err != nil && !os.IsNotExist(err) {
			logger.Warnf("Error loading .env file (but continuing): %v", err)
		} else if err == nil {
			logger.Info("Loaded configuration from .env file")
		}

		if err := envconfig.Process("", &config); err != nil {
			logger.Fatalf("Failed to process configuration from environment variables: %v", err)
		}

		logger.Infof("Configuration loaded: HTTP port=%s, log level=%s, seed=%t", config.HTTPPort, config.LogLevel, config.SeedData)
		if config.DatabaseURL != "" {
			logger.Info("Configuration loaded: DATABASE_URL is set, using postgres store")
		} else {
			logger.Info("Configuration loaded: DATABASE_URL not set, using in-memory store")
		}
	})
	return &config
}

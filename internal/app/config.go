package app

import (
	"strings"

	"github.com/yungbote/movies-etl/internal/data/db"
	"github.com/yungbote/movies-etl/internal/observability"
	"github.com/yungbote/movies-etl/internal/pkg/logger"
	"github.com/yungbote/movies-etl/internal/utils"
)

type Config struct {
	LogMode string
	DB      db.Config
	Otel    observability.OtelConfig
}

// Overrides carries command line values that win over the environment.
type Overrides struct {
	Driver  string
	DSN     string
	LogMode string
}

func LoadConfig(log *logger.Logger) Config {
	return Config{
		LogMode: utils.GetEnv("LOG_MODE", "development", log),
		DB: db.Config{
			Driver:     strings.ToLower(utils.GetEnv("DB_DRIVER", db.DriverPostgres, log)),
			DSN:        utils.GetEnv("DATABASE_DSN", "", log),
			Host:       utils.GetEnv("POSTGRES_HOST", "localhost", log),
			Port:       utils.GetEnv("POSTGRES_PORT", "5432", log),
			User:       utils.GetEnv("POSTGRES_USER", "postgres", log),
			Password:   utils.GetEnv("POSTGRES_PASSWORD", "", log),
			Name:       utils.GetEnv("POSTGRES_NAME", "movies", log),
			Schema:     utils.GetEnv("POSTGRES_SCHEMA", "movies", log),
			SQLitePath: utils.GetEnv("SQLITE_PATH", "movies.db", log),
		},
		Otel: observability.OtelConfig{
			Enabled:     utils.GetEnvAsBool("OTEL_ENABLED", false, log),
			ServiceName: utils.GetEnv("OTEL_SERVICE_NAME", "movies-etl", log),
			Environment: utils.GetEnv("OTEL_ENVIRONMENT", "development", log),
			Version:     utils.GetEnv("OTEL_SERVICE_VERSION", "", log),
			Endpoint:    utils.GetEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "", log),
			Headers:     observability.ParseHeaders(utils.GetEnv("OTEL_EXPORTER_OTLP_HEADERS", "", log)),
			Insecure:    utils.GetEnvAsBool("OTEL_EXPORTER_OTLP_INSECURE", false, log),
			SampleRatio: utils.GetEnvAsFloat("OTEL_SAMPLER_RATIO", 1, log),
		},
	}
}

func (c Config) Apply(o Overrides) Config {
	if v := strings.TrimSpace(o.Driver); v != "" {
		c.DB.Driver = strings.ToLower(v)
	}
	if v := strings.TrimSpace(o.DSN); v != "" {
		c.DB.DSN = v
	}
	if v := strings.TrimSpace(o.LogMode); v != "" {
		c.LogMode = v
	}
	return c
}

package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	defaultPort         = "8080"
	defaultStoreBackend = StoreSQLite
	defaultLogLevel     = "info"
)

// Scenario store backends.
const (
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	Port         string
	StoreBackend string
	AdminToken   string
	LogLevel     zerolog.Level
	SeedBaseline bool
}

// Load reads environment variables and returns a populated Config.
func Load() Config {
	// Best-effort: load local dev environment variables.
	// We don't fail if the file is missing; production should use real env injection.
	if n, err := loadDotEnv(".env"); err != nil {
		log.Warn().Err(err).Msg("could not read .env")
	} else if n > 0 {
		log.Debug().Int("keys", n).Msg("loaded .env")
	}

	cfg := Config{
		Port:         os.Getenv("PORT"),
		StoreBackend: strings.ToLower(strings.TrimSpace(os.Getenv("STORE_BACKEND"))),
		AdminToken:   os.Getenv("ADMIN_TOKEN"),
		LogLevel:     zerolog.InfoLevel,
	}

	if cfg.Port == "" {
		cfg.Port = defaultPort
	}

	switch cfg.StoreBackend {
	case "":
		cfg.StoreBackend = defaultStoreBackend
	case StoreSQLite, StoreMemory:
	default:
		log.Warn().Str("STORE_BACKEND", cfg.StoreBackend).Msgf("unknown store backend, using %s", defaultStoreBackend)
		cfg.StoreBackend = defaultStoreBackend
	}

	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = defaultLogLevel
	}
	if parsed, err := zerolog.ParseLevel(level); err == nil {
		cfg.LogLevel = parsed
	} else {
		log.Warn().Str("LOG_LEVEL", level).Msg("invalid log level, using info")
	}

	if raw := os.Getenv("SEED_BASELINE"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			cfg.SeedBaseline = v
		} else {
			log.Warn().Str("SEED_BASELINE", raw).Msg("invalid boolean, keeping baseline seeding off")
		}
	}

	if cfg.AdminToken == "" {
		log.Warn().Msg("ADMIN_TOKEN is not set: clearing saved scenarios is unprotected")
	}

	return cfg
}

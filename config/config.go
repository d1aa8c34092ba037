// Package config loads the runtime configuration from KBO_* environment
// variables, with defaults suitable for a local single-file database.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "KBO_"

type Config struct {
	Server   ServerConfig   `koanf:"server" validate:"required"`
	Database DatabaseConfig `koanf:"database" validate:"required"`
	Log      LogConfig      `koanf:"log" validate:"required"`
	Import   ImportConfig   `koanf:"import" validate:"required"`
}

// ServerConfig timeouts are in seconds.
type ServerConfig struct {
	Port         string `koanf:"port" validate:"required"`
	ReadTimeout  int    `koanf:"read_timeout" validate:"min=1"`
	WriteTimeout int    `koanf:"write_timeout" validate:"min=1"`
	IdleTimeout  int    `koanf:"idle_timeout" validate:"min=1"`
}

type DatabaseConfig struct {
	Driver string `koanf:"driver" validate:"required,oneof=sqlite postgres"`
	DSN    string `koanf:"dsn" validate:"required"`
	Debug  bool   `koanf:"debug"`
}

type LogConfig struct {
	Level  string `koanf:"level" validate:"required,oneof=trace debug info warn error"`
	Format string `koanf:"format" validate:"required,oneof=console json"`
}

// ImportConfig row limits cap inserted rows per file; zero or less disables the cap.
type ImportConfig struct {
	DataDir            string `koanf:"data_dir" validate:"required"`
	ActivityLimit      int    `koanf:"activity_limit"`
	CompanyLimit       int    `koanf:"company_limit"`
	EstablishmentLimit int    `koanf:"establishment_limit"`
}

// Default returns the configuration used when no variable overrides it.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         "8000",
			ReadTimeout:  10,
			WriteTimeout: 10,
			IdleTimeout:  60,
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			DSN:    "data/kbo.db",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Import: ImportConfig{
			DataDir:            "data",
			ActivityLimit:      500,
			CompanyLimit:       50,
			EstablishmentLimit: 50,
		},
	}
}

// envKey maps KBO_DATABASE_DSN to database.dsn and KBO_SERVER_READ_TIMEOUT to
// server.read_timeout: only the first underscore separates section and key.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	return strings.Replace(key, "_", ".", 1)
}

// Load reads an optional .env file, then the environment, on top of Default.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds the configuration from the process environment only.
func FromEnv() (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Package config loads the service configuration from GRADATION_* environment
// variables (and a .env file when present).
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "GRADATION_"

type Config struct {
	Server   ServerConfig   `koanf:"server" validate:"required"`
	Database DatabaseConfig `koanf:"database" validate:"required"`
	Log      LogConfig      `koanf:"log" validate:"required"`
}

type ServerConfig struct {
	Port         string `koanf:"port" validate:"required"`
	ReadTimeout  int    `koanf:"read_timeout" validate:"min=1"`
	WriteTimeout int    `koanf:"write_timeout" validate:"min=1"`
	IdleTimeout  int    `koanf:"idle_timeout" validate:"min=1"`
}

type DatabaseConfig struct {
	Driver          string `koanf:"driver" validate:"required,oneof=postgres sqlite"`
	Host            string `koanf:"host" validate:"required_if=Driver postgres"`
	Port            int    `koanf:"port" validate:"required_if=Driver postgres"`
	User            string `koanf:"user" validate:"required_if=Driver postgres"`
	Password        string `koanf:"password"`
	Name            string `koanf:"name" validate:"required_if=Driver postgres"`
	SSLMode         string `koanf:"ssl_mode"`
	Path            string `koanf:"path" validate:"required_if=Driver sqlite"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"min=1"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"min=0"`
	ConnectRetries  int    `koanf:"connect_retries" validate:"min=1"`
}

type LogConfig struct {
	Level  string `koanf:"level" validate:"required,oneof=trace debug info warn error"`
	Pretty bool   `koanf:"pretty"`
}

// DSN builds the postgres connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=UTC",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode)
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         "8080",
			ReadTimeout:  10,
			WriteTimeout: 10,
			IdleTimeout:  60,
		},
		Database: DatabaseConfig{
			Driver:          "postgres",
			Host:            "postgres",
			Port:            5432,
			User:            "program",
			Password:        "test",
			Name:            "gradation",
			SSLMode:         "disable",
			Path:            "gradation.db",
			MaxOpenConns:    25,
			MaxIdleConns:    10,
			ConnMaxLifetime: 300,
			ConnectRetries:  10,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// envKey turns GRADATION_DATABASE_MAX_OPEN_CONNS into database.max_open_conns.
func envKey(s string) string {
	return strings.Replace(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".", 1)
}

// Load reads the environment on top of Default and validates the result.
func Load() (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

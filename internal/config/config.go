// Package config loads service settings from the environment and an
// optional config file.
package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds the service settings.
type Config struct {
	AppPort        string `mapstructure:"APP_PORT"        validate:"required"`
	DatabaseDriver string `mapstructure:"DATABASE_DRIVER" validate:"required,oneof=sqlite postgres"`
	DatabaseDSN    string `mapstructure:"DATABASE_DSN"    validate:"required"`
	RabbitMQURL    string `mapstructure:"RABBITMQ_URL"    validate:"omitempty,url"`
	JWTSecret      string `mapstructure:"JWT_SECRET"`
	LogLevel       string `mapstructure:"LOG_LEVEL"       validate:"required,oneof=debug info warn error"`
}

var keys = []string{
	"APP_PORT",
	"DATABASE_DRIVER",
	"DATABASE_DSN",
	"RABBITMQ_URL",
	"JWT_SECRET",
	"LOG_LEVEL",
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DATABASE_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "file:catalog.db?cache=shared")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("LOG_LEVEL", "info")
}

// Load reads config.yaml from the working directory when present, then
// environment variables, which take precedence.
func Load() (*Config, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config.Load: read file: %w", err)
		}
	}
	return FromViper(v)
}

// FromViper decodes and validates the settings held by v.
func FromViper(v *viper.Viper) (*Config, error) {
	v.AutomaticEnv()
	// Unmarshal only sees keys viper knows about; bind them so env-only
	// values are picked up.
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("config: bind %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config: validation: %w", err)
	}
	return &cfg, nil
}

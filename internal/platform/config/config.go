// Package config loads service configuration from the environment and an
// optional config file. Environment variables always win over the file.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the full service configuration.
type Config struct {
	Server     Server
	Database   Database
	Validation Validation
	Auth       Auth
	Metrics    Metrics
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr        string
	Environment string
	Timezone    string
	LogLevel    string
}

// Database captures connection pool and retry settings.
type Database struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnectAttempts int
	ConnectBackoff  time.Duration
	TxTimeout       time.Duration
	AutoMigrate     bool
}

type Validation struct {
	StrictPhone bool
}

// Auth holds the bcrypt hash of the function key. Empty disables the check.
type Auth struct {
	FunctionKeyHash string
}

type Metrics struct {
	Enabled bool
}

// Load reads configuration. CONFIG_FILE, when set, names a file read before
// the environment is applied.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path := v.GetString("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := Config{
		Server: Server{
			Addr:        v.GetString("HTTP_ADDR"),
			Environment: v.GetString("APP_ENV"),
			Timezone:    v.GetString("APP_TIMEZONE"),
			LogLevel:    v.GetString("LOG_LEVEL"),
		},
		Database: Database{
			URL:             v.GetString("DATABASE_URL"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
			ConnectAttempts: v.GetInt("DB_CONNECT_ATTEMPTS"),
			ConnectBackoff:  v.GetDuration("DB_CONNECT_BACKOFF"),
			TxTimeout:       v.GetDuration("DB_TX_TIMEOUT"),
			AutoMigrate:     v.GetBool("DB_AUTO_MIGRATE"),
		},
		Validation: Validation{
			StrictPhone: v.GetBool("VALIDATION_STRICT_PHONE"),
		},
		Auth: Auth{
			FunctionKeyHash: v.GetString("AUTH_FUNCTION_KEY_HASH"),
		},
		Metrics: Metrics{
			Enabled: v.GetBool("METRICS_ENABLED"),
		},
	}
	return cfg, cfg.validate()
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("APP_ENV", "local")
	v.SetDefault("APP_TIMEZONE", "UTC")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 5*time.Minute)
	v.SetDefault("DB_CONNECT_ATTEMPTS", 5)
	v.SetDefault("DB_CONNECT_BACKOFF", time.Duration(0))
	v.SetDefault("DB_TX_TIMEOUT", 10*time.Second)
	v.SetDefault("DB_AUTO_MIGRATE", false)
	v.SetDefault("VALIDATION_STRICT_PHONE", false)
	v.SetDefault("AUTH_FUNCTION_KEY_HASH", "")
	v.SetDefault("METRICS_ENABLED", true)
	v.SetDefault("CONFIG_FILE", "")
}

func (c Config) validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Database.ConnectAttempts < 1 {
		return fmt.Errorf("DB_CONNECT_ATTEMPTS must be at least 1, got %d", c.Database.ConnectAttempts)
	}
	if c.Database.ConnectBackoff < 0 {
		return fmt.Errorf("DB_CONNECT_BACKOFF must not be negative")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves the configured timezone.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Server.Timezone)
	if err != nil {
		return nil, fmt.Errorf("APP_TIMEZONE %q: %w", c.Server.Timezone, err)
	}
	return loc, nil
}

// Package config provides configuration management for the SimChess server:
// HTTP server settings, logging, and the simultaneous-move rules knobs
// (clocks, illegality thresholds and penalties).
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config represents the application configuration.
type Config struct {
	Server  ServerConfig  `json:"server"`
	Rules   RulesConfig   `json:"rules"`
	Logging LoggingConfig `json:"logging"`
	Metrics MetricsConfig `json:"metrics"`
}

// ServerConfig contains HTTP/WebSocket server configuration.
type ServerConfig struct {
	Host            string        `json:"host"`
	Port            int           `json:"port"`
	ReadTimeout     time.Duration `json:"read_timeout"`
	WriteTimeout    time.Duration `json:"write_timeout"`
	IdleTimeout     time.Duration `json:"idle_timeout"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
	CORSEnabled     bool          `json:"cors_enabled"`
	AllowedOrigins  []string      `json:"allowed_origins"`
}

// RulesConfig contains the simultaneous-move rules parameters. These mirror
// the constants game.Game applies per match; they're surfaced here so an
// operator can retune them per deployment without a code change.
type RulesConfig struct {
	InitialClockSeconds    int `json:"initial_clock_seconds"`
	OneSidedThreshold      int `json:"one_sided_threshold"`
	OneSidedPenaltySeconds int `json:"one_sided_penalty_seconds"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level      string `json:"level"`
	Format     string `json:"format"`
	OutputPath string `json:"output_path"`
	ErrorPath  string `json:"error_path"`
}

// MetricsConfig contains the Prometheus metrics endpoint configuration.
type MetricsConfig struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path"`
}

// Default returns a default configuration, overridable by environment
// variables.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            getEnvString("SIMCHESS_HOST", "localhost"),
			Port:            getEnvInt("SIMCHESS_PORT", 8080),
			ReadTimeout:     getEnvDuration("SIMCHESS_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getEnvDuration("SIMCHESS_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:     getEnvDuration("SIMCHESS_IDLE_TIMEOUT", 120*time.Second),
			ShutdownTimeout: getEnvDuration("SIMCHESS_SHUTDOWN_TIMEOUT", 10*time.Second),
			CORSEnabled:     getEnvBool("SIMCHESS_CORS_ENABLED", true),
			AllowedOrigins:  getEnvStringSlice("SIMCHESS_ALLOWED_ORIGINS", []string{"*"}),
		},
		Rules: RulesConfig{
			InitialClockSeconds:    getEnvInt("SIMCHESS_INITIAL_CLOCK_SECONDS", 600),
			OneSidedThreshold:      getEnvInt("SIMCHESS_ONE_SIDED_THRESHOLD", 3),
			OneSidedPenaltySeconds: getEnvInt("SIMCHESS_ONE_SIDED_PENALTY_SECONDS", 30),
		},
		Logging: LoggingConfig{
			Level:      getEnvString("SIMCHESS_LOG_LEVEL", "info"),
			Format:     getEnvString("SIMCHESS_LOG_FORMAT", "json"),
			OutputPath: getEnvString("SIMCHESS_LOG_OUTPUT_PATH", "stdout"),
			ErrorPath:  getEnvString("SIMCHESS_LOG_ERROR_PATH", "stderr"),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvBool("SIMCHESS_METRICS_ENABLED", true),
			Path:    getEnvString("SIMCHESS_METRICS_PATH", "/metrics"),
		},
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d (must be between 0 and 65535)", c.Server.Port)
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("invalid server read timeout: %v (must be positive)", c.Server.ReadTimeout)
	}

	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("invalid server write timeout: %v (must be positive)", c.Server.WriteTimeout)
	}

	if c.Rules.InitialClockSeconds <= 0 {
		return fmt.Errorf("invalid initial clock seconds: %d (must be positive)", c.Rules.InitialClockSeconds)
	}

	if c.Rules.OneSidedThreshold <= 0 {
		return fmt.Errorf("invalid one-sided illegality threshold: %d (must be positive)", c.Rules.OneSidedThreshold)
	}

	if c.Rules.OneSidedPenaltySeconds < 0 {
		return fmt.Errorf("invalid one-sided penalty seconds: %d (must not be negative)", c.Rules.OneSidedPenaltySeconds)
	}

	return nil
}

// GetServerAddress returns the full server address.
func (c *Config) GetServerAddress() string {
	return c.Server.Host + ":" + strconv.Itoa(c.Server.Port)
}

// Helper functions for environment variable parsing.

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvStringSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return []string{value}
	}
	return defaultValue
}

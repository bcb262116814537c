package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port           int           `envconfig:"PORT" default:"8080"`
	CanvasWidth    int           `envconfig:"CANVAS_WIDTH" default:"512"`
	CanvasHeight   int           `envconfig:"CANVAS_HEIGHT" default:"512"`
	JWTSecret      string        `envconfig:"JWT_SECRET" default:"dev-secret-change-in-production"`
	TokenTTL       time.Duration `envconfig:"TOKEN_TTL" default:"24h"`
	AllowedOrigins []string      `envconfig:"ALLOWED_ORIGINS" default:"localhost:5173,localhost:3000"`
	LogLevel       string        `envconfig:"LOG_LEVEL" default:"info"`
	ReflectRefill  bool          `envconfig:"REFLECT_REFILL" default:"false"`
	MaxZoom        int           `envconfig:"MAX_ZOOM" default:"8"`
	MaxExportSize  int           `envconfig:"MAX_EXPORT_SIZE" default:"8192"`
	IdleTimeout    time.Duration `envconfig:"SESSION_IDLE_TIMEOUT" default:"10m"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.CanvasWidth < 1 || c.CanvasHeight < 1 {
		return fmt.Errorf("canvas size must be positive, got %dx%d", c.CanvasWidth, c.CanvasHeight)
	}
	if c.MaxZoom < 1 {
		return fmt.Errorf("MAX_ZOOM must be at least 1, got %d", c.MaxZoom)
	}
	if c.MaxExportSize < 1 {
		return fmt.Errorf("MAX_EXPORT_SIZE must be at least 1, got %d", c.MaxExportSize)
	}
	if c.IdleTimeout < 0 {
		return fmt.Errorf("SESSION_IDLE_TIMEOUT must not be negative, got %s", c.IdleTimeout)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses LogLevel ("debug", "info", "warn", "error").
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return level, nil
}

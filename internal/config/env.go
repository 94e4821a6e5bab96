// Package config loads milestone boards from YAML files and the HTTP server
// settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Server holds the settings of `milestones serve`.
type Server struct {
	Port       int
	LogLevel   string
	APIKey     string
	BoardPath  string
	FrameWidth int
	MaxViews   int
	CORSOrigin string
}

// LoadServer reads server settings from the environment.
func LoadServer() (*Server, error) {
	cfg := &Server{
		Port:       envInt("PORT", 8742),
		LogLevel:   envStr("LOG_LEVEL", "info"),
		APIKey:     envStr("API_KEY", ""),
		BoardPath:  envStr("BOARD_PATH", ""),
		FrameWidth: envInt("FRAME_WIDTH", 600),
		MaxViews:   envInt("MAX_VIEWS", 256),
		CORSOrigin: envStr("CORS_ORIGIN", "*"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func (c *Server) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error, got %q", c.LogLevel)
	}
	if c.FrameWidth < 1 || c.FrameWidth > 8192 {
		return fmt.Errorf("FRAME_WIDTH must be between 1 and 8192, got %d", c.FrameWidth)
	}
	if c.MaxViews < 1 {
		return fmt.Errorf("MAX_VIEWS must be positive, got %d", c.MaxViews)
	}
	return nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

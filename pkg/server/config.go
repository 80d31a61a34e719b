package server

import (
	"time"

	"github.com/toastify-dev/toastify/internal/config"
	"github.com/toastify-dev/toastify/pkg/frame"
)

// Config holds server settings.
type Config struct {
	// Address is the listen address (e.g., "localhost:4000").
	Address string

	// Title is the demo page title.
	Title string

	// FrameRate is the interval between session frames.
	FrameRate time.Duration

	// ReadTimeout is the WebSocket read deadline. Clients are pinged at
	// half this interval.
	ReadTimeout time.Duration

	// WriteTimeout bounds a single WebSocket write.
	WriteTimeout time.Duration

	// SendBuffer is the number of outgoing messages queued per session.
	SendBuffer int

	// MaxSessions caps live sessions. Zero means unlimited.
	MaxSessions int

	// AllowedOrigins lists origins allowed to open a WebSocket. Empty
	// allows same-origin requests only.
	AllowedOrigins []string

	// MetricsPath is where the metrics handler is mounted.
	MetricsPath string

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Address:         "localhost:4000",
		Title:           "Toastify",
		FrameRate:       frame.DefaultRate,
		ReadTimeout:     60 * time.Second,
		WriteTimeout:    10 * time.Second,
		SendBuffer:      64,
		MetricsPath:     "/metrics",
		ShutdownTimeout: 10 * time.Second,
	}
}

// ConfigFrom builds a server Config from a loaded configuration file.
func ConfigFrom(cfg *config.Config) Config {
	c := DefaultConfig()
	c.Address = cfg.Addr()
	c.Title = cfg.Name
	c.FrameRate = cfg.FrameInterval()
	c.ReadTimeout = cfg.ReadTimeout()
	c.MaxSessions = cfg.Server.MaxSessions
	c.AllowedOrigins = cfg.Server.AllowedOrigins
	if cfg.Metrics.Path != "" {
		c.MetricsPath = cfg.Metrics.Path
	}
	return c
}

func (c *Config) applyDefaults() {
	d := DefaultConfig()
	if c.Address == "" {
		c.Address = d.Address
	}
	if c.Title == "" {
		c.Title = d.Title
	}
	if c.FrameRate <= 0 {
		c.FrameRate = d.FrameRate
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = d.ReadTimeout
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = d.WriteTimeout
	}
	if c.SendBuffer <= 0 {
		c.SendBuffer = d.SendBuffer
	}
	if c.MetricsPath == "" {
		c.MetricsPath = d.MetricsPath
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = d.ShutdownTimeout
	}
}

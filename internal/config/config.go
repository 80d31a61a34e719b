package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/toastify-dev/toastify/internal/errors"
	"github.com/toastify-dev/toastify/pkg/toast"
)

const (
	// DefaultPort is the default server port.
	DefaultPort = 4000

	// DefaultHost is the default server host.
	DefaultHost = "localhost"

	// DefaultFrameRate is the default interval between session frames.
	DefaultFrameRate = "16ms"
)

// FileNames are the file names Load looks for, in order.
var FileNames = []string{"toastify.json", "toastify.yaml", "toastify.yml"}

// Config represents the complete configuration file.
type Config struct {
	// Name is shown in the page title.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	Server  ServerConfig  `json:"server,omitempty" yaml:"server,omitempty"`
	Log     LogConfig     `json:"log,omitempty" yaml:"log,omitempty"`
	Metrics MetricsConfig `json:"metrics,omitempty" yaml:"metrics,omitempty"`
	Tracing TracingConfig `json:"tracing,omitempty" yaml:"tracing,omitempty"`
	Icons   IconsConfig   `json:"icons,omitempty" yaml:"icons,omitempty"`
	Toast   ToastConfig   `json:"toast,omitempty" yaml:"toast,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains HTTP and session settings.
type ServerConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty" yaml:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty" yaml:"port,omitempty"`

	// FrameRate is the interval between frames of a session (e.g., "16ms").
	FrameRate string `json:"frameRate,omitempty" yaml:"frameRate,omitempty"`

	// ReadTimeout is the WebSocket read deadline (e.g., "60s").
	ReadTimeout string `json:"readTimeout,omitempty" yaml:"readTimeout,omitempty"`

	// MaxSessions caps concurrent sessions. Zero means unlimited.
	MaxSessions int `json:"maxSessions,omitempty" yaml:"maxSessions,omitempty"`

	// AllowedOrigins restricts WebSocket origins. Empty allows same-origin only.
	AllowedOrigins []string `json:"allowedOrigins,omitempty" yaml:"allowedOrigins,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level,omitempty" yaml:"level,omitempty"`

	// Format is text or json.
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	Enabled   bool   `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Path      string `json:"path,omitempty" yaml:"path,omitempty"`
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
}

// TracingConfig contains OpenTelemetry settings.
type TracingConfig struct {
	Enabled    bool   `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	TracerName string `json:"tracerName,omitempty" yaml:"tracerName,omitempty"`
}

// IconsConfig selects where icon markup comes from. Dir wins over S3;
// with neither set the embedded icons are used.
type IconsConfig struct {
	Dir string   `json:"dir,omitempty" yaml:"dir,omitempty"`
	S3  S3Config `json:"s3,omitempty" yaml:"s3,omitempty"`
}

// S3Config locates icons in a bucket.
type S3Config struct {
	Bucket       string `json:"bucket,omitempty" yaml:"bucket,omitempty"`
	Prefix       string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Region       string `json:"region,omitempty" yaml:"region,omitempty"`
	Endpoint     string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	UsePathStyle bool   `json:"usePathStyle,omitempty" yaml:"usePathStyle,omitempty"`
}

// ToastConfig contains widget defaults.
type ToastConfig struct {
	// Defaults uses the option names accepted by toast.ParseOptions.
	Defaults map[string]any `json:"defaults,omitempty" yaml:"defaults,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Name: "Toastify",
		Server: ServerConfig{
			Host:        DefaultHost,
			Port:        DefaultPort,
			FrameRate:   DefaultFrameRate,
			ReadTimeout: "60s",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Path:      "/metrics",
			Namespace: "toastify",
		},
		Tracing: TracingConfig{
			TracerName: "toastify",
		},
	}
}

// Load reads configuration from the first known file name in dir.
func Load(dir string) (*Config, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return nil, errors.New("T100").
		WithDetail("No toastify.json or toastify.yaml found in " + dir).
		WithSuggestion("Create toastify.json or pass --config")
}

// LoadFile reads configuration from the specified file path.
// Files ending in .yaml or .yml are parsed as YAML, everything else as JSON.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("T100").WithField(path)
		}
		return nil, errors.New("T101").WithField(path).Wrap(err)
	}

	cfg, err := Parse(data, isYAML(path))
	if err != nil {
		return nil, err
	}
	cfg.configPath = path
	return cfg, nil
}

// Parse decodes configuration data over the defaults and validates it.
func Parse(data []byte, asYAML bool) (*Config, error) {
	cfg := New()
	if asYAML {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.New("T101").
				WithDetail("Failed to parse YAML: " + err.Error())
		}
	} else if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("T101").
			WithDetail("Failed to parse JSON: " + err.Error()).
			WithSuggestion("Check that the file is valid JSON")
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills fields left empty by the file.
func (c *Config) applyDefaults() {
	d := New()
	if c.Server.Host == "" {
		c.Server.Host = d.Server.Host
	}
	if c.Server.Port == 0 {
		c.Server.Port = d.Server.Port
	}
	if c.Server.FrameRate == "" {
		c.Server.FrameRate = d.Server.FrameRate
	}
	if c.Server.ReadTimeout == "" {
		c.Server.ReadTimeout = d.Server.ReadTimeout
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = d.Log.Format
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = d.Metrics.Path
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = d.Metrics.Namespace
	}
	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = d.Tracing.TracerName
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return invalid("server.port", fmt.Sprintf("%d is not a valid port", c.Server.Port))
	}
	if d, err := time.ParseDuration(c.Server.FrameRate); err != nil || d <= 0 {
		return invalid("server.frameRate", fmt.Sprintf("%q is not a positive duration", c.Server.FrameRate))
	}
	if d, err := time.ParseDuration(c.Server.ReadTimeout); err != nil || d <= 0 {
		return invalid("server.readTimeout", fmt.Sprintf("%q is not a positive duration", c.Server.ReadTimeout))
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return invalid("log.level", fmt.Sprintf("%q is not one of debug, info, warn, error", c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return invalid("log.format", fmt.Sprintf("%q is not text or json", c.Log.Format))
	}
	if c.Icons.S3.Prefix != "" && c.Icons.S3.Bucket == "" {
		return invalid("icons.s3.bucket", "a prefix was given without a bucket")
	}
	if _, err := c.ToastDefaults(); err != nil {
		return errors.New("T102").WithField("toast.defaults").Wrap(err)
	}
	return nil
}

func invalid(field, detail string) error {
	return errors.New("T102").WithField(field).WithDetail(detail)
}

// FrameInterval returns the parsed frame rate.
func (c *Config) FrameInterval() time.Duration {
	d, _ := time.ParseDuration(c.Server.FrameRate)
	return d
}

// ReadTimeout returns the parsed WebSocket read deadline.
func (c *Config) ReadTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Server.ReadTimeout)
	return d
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// ToastDefaults converts the configured defaults into toast options.
func (c *Config) ToastDefaults() ([]toast.Option, error) {
	if len(c.Toast.Defaults) == 0 {
		return nil, nil
	}
	return toast.ParseOptions(c.Toast.Defaults)
}

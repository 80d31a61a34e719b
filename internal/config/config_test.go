package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/toastify-dev/toastify/internal/errors"
	"github.com/toastify-dev/toastify/pkg/toast"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Server.Port != DefaultPort {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, DefaultPort)
	}
	if cfg.Server.Host != DefaultHost {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, DefaultHost)
	}
	if cfg.FrameInterval() != 16*time.Millisecond {
		t.Errorf("FrameInterval() = %v", cfg.FrameInterval())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadJSON(t *testing.T) {
	tmpDir := t.TempDir()

	if _, err := Load(tmpDir); !errors.HasCode(err, "T100") {
		t.Errorf("missing config error = %v, want T100", err)
	}

	configJSON := `{
  "server": { "port": 8080, "host": "0.0.0.0" },
  "log": { "level": "debug" },
  "icons": { "dir": "icons" },
  "toast": { "defaults": { "position": "bottom-left", "autoCloseTime": 8000 } }
}`
	if err := os.WriteFile(filepath.Join(tmpDir, "toastify.json"), []byte(configJSON), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Addr() != "0.0.0.0:8080" {
		t.Errorf("Addr() = %q", cfg.Addr())
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "text" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if cfg.Server.FrameRate != DefaultFrameRate {
		t.Errorf("FrameRate default not applied: %q", cfg.Server.FrameRate)
	}
	if cfg.Path() != filepath.Join(tmpDir, "toastify.json") {
		t.Errorf("Path() = %q", cfg.Path())
	}

	opts, err := cfg.ToastDefaults()
	if err != nil {
		t.Fatal(err)
	}
	if len(opts) != 2 || opts[0].Value() != toast.BottomLeft || opts[1].Value() != 8*time.Second {
		t.Errorf("ToastDefaults() = %v", opts)
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "toastify.yaml")
	configYAML := `
server:
  port: 9000
  frameRate: 20ms
icons:
  s3:
    bucket: brand
    prefix: icons/
toast:
  defaults:
    type: info
    autoCloseTime: 1500
    canClose: false
`
	if err := os.WriteFile(path, []byte(configYAML), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.Server.Port != 9000 || cfg.FrameInterval() != 20*time.Millisecond {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.Icons.S3.Bucket != "brand" || cfg.Icons.S3.Prefix != "icons/" {
		t.Errorf("Icons = %+v", cfg.Icons)
	}

	opts, err := cfg.ToastDefaults()
	if err != nil {
		t.Fatal(err)
	}
	if len(opts) != 3 {
		t.Fatalf("ToastDefaults() = %v", opts)
	}
	if opts[0].Key() != toast.KeyAutoClose || opts[0].Value() != 1500*time.Millisecond {
		t.Errorf("opts[0] = %v", opts[0])
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"bad frame rate", func(c *Config) { c.Server.FrameRate = "fast" }, "server.frameRate"},
		{"zero frame rate", func(c *Config) { c.Server.FrameRate = "0s" }, "server.frameRate"},
		{"bad read timeout", func(c *Config) { c.Server.ReadTimeout = "-1s" }, "server.readTimeout"},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"prefix without bucket", func(c *Config) { c.Icons.S3.Prefix = "x/" }, "icons.s3.bucket"},
		{"bad toast default", func(c *Config) {
			c.Toast.Defaults = map[string]any{"position": "middle"}
		}, "toast.defaults"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.HasCode(err, "T102") {
				t.Fatalf("Validate() = %v, want T102", err)
			}
			te := errors.FromError(err, "T102")
			if te.Field != tt.field {
				t.Errorf("Field = %q, want %q", te.Field, tt.field)
			}
		})
	}
}

func TestParseInvalid(t *testing.T) {
	if _, err := Parse([]byte("{"), false); !errors.HasCode(err, "T101") {
		t.Errorf("JSON error = %v", err)
	}
	if _, err := Parse([]byte("server: [1"), true); !errors.HasCode(err, "T101") {
		t.Errorf("YAML error = %v", err)
	}
}

func TestWatcherReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "toastify.json")
	if err := os.WriteFile(path, []byte(`{"server":{"port":4001}}`), 0644); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(path, nil)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Close()
	w.debounce = 10 * time.Millisecond

	reloaded := make(chan *Config, 1)
	w.OnReload(func(c *Config) {
		select {
		case reloaded <- c:
		default:
		}
	})

	if err := os.WriteFile(path, []byte(`{"server":{"port":4002}}`), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-reloaded:
		if cfg.Server.Port != 4002 {
			t.Errorf("reloaded port = %d", cfg.Server.Port)
		}
		if w.Config().Server.Port != 4002 {
			t.Errorf("Config() port = %d", w.Config().Server.Port)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("config was not reloaded")
	}
}

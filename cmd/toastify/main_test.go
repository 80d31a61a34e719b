package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/toastify-dev/toastify/internal/errors"
	"github.com/toastify-dev/toastify/pkg/toast"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRenderDefaults(t *testing.T) {
	out, err := execute(t, "render", "--message=Saved", "--type=success")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{
		`data-position="top-right"`,
		"Saved",
		"toast-icon",
		"success",
		"show",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderFlagsOverrideOptions(t *testing.T) {
	out, err := execute(t, "render",
		`--options={"position":"bottom-left","toastMsg":"from json","type":"info","theme":"dark"}`,
		"--message=from flag")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, `data-position="bottom-left"`) {
		t.Errorf("position from --options not applied:\n%s", out)
	}
	if !strings.Contains(out, "from flag") || strings.Contains(out, "from json") {
		t.Errorf("--message should override toastMsg:\n%s", out)
	}
	if !strings.Contains(out, "var(--dark_color)") {
		t.Errorf("dark theme not applied to typed toast:\n%s", out)
	}
}

func TestRenderDefaultTypeShowsBrand(t *testing.T) {
	out, err := execute(t, "render", "--message=hidden text")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, toast.Brand) || strings.Contains(out, "hidden text") {
		t.Errorf("default type should show the brand text:\n%s", out)
	}
}

func TestRenderElapsedProgress(t *testing.T) {
	out, err := execute(t, "render", "--auto-close=1s", "--elapsed=500ms")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "--progress:") {
		t.Errorf("progress not rendered:\n%s", out)
	}
}

func TestRenderInvalidFlags(t *testing.T) {
	tests := [][]string{
		{"render", "--type=fancy"},
		{"render", "--position=middle"},
		{"render", "--options=not json"},
	}
	for _, args := range tests {
		_, err := execute(t, args...)
		if !errors.HasCode(err, "T400") {
			t.Errorf("%v: err = %v, want T400", args, err)
		}
	}
}

func TestRenderIconsDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "info.svg"), []byte(`<svg id="custom"></svg>`), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := execute(t, "render", "--type=info", "--icons-dir="+dir)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, `<svg id="custom"></svg>`) {
		t.Errorf("custom icon not used:\n%s", out)
	}
}

func TestVersionShort(t *testing.T) {
	out, err := execute(t, "version", "--short")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != version {
		t.Errorf("version --short = %q", out)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "toastify.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 5000\nlog:\n  level: debug\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(serveOptions{configPath: path, port: 6000, logFormat: "json"})
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Server.Port != 6000 || cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("config = %+v", cfg)
	}

	_, err = loadConfig(serveOptions{configPath: path, logLevel: "loud"})
	if !errors.HasCode(err, "T102") {
		t.Errorf("invalid level err = %v, want T102", err)
	}
}

package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/opd-ai/go-plotkit/internal/config"
	"github.com/opd-ai/go-plotkit/pkg/toolkit"
)

func TestVersion(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
}

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig(\"\") error = %v", err)
	}
	if *cfg != config.DefaultConfig() {
		t.Error("an empty path should give the default configuration")
	}

	if _, err := loadConfig("/nonexistent/plotdemo.yaml"); err == nil {
		t.Error("loadConfig() should fail for a missing file")
	}

	cfg, err = loadConfig(filepath.Join("..", "..", "examples", "plotdemo.yaml"))
	if err != nil {
		t.Fatalf("example configuration: %v", err)
	}
	if cfg.Script.Path == "" {
		t.Error("example configuration should name a script")
	}
}

func smallConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Window.Width, cfg.Window.Height = 200, 200
	cfg.Plot.Width, cfg.Plot.Height = 200, 200
	cfg.Plot.SplitX, cfg.Plot.SplitY = 160, 40
	cfg.Plot.Samples = 200
	return &cfg
}

func writeScript(t *testing.T, code string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plot.lua")
	if err := os.WriteFile(path, []byte(code), 0o644); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}
	return path
}

func TestWritePNG(t *testing.T) {
	a, err := newApp(smallConfig(), toolkit.NopLogger())
	if err != nil {
		t.Fatalf("newApp() error = %v", err)
	}
	defer a.Close()

	path := filepath.Join(t.TempDir(), "plot.png")
	if err := a.WritePNG(path); err != nil {
		t.Fatalf("WritePNG() error = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open PNG: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("failed to decode PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 200 {
		t.Errorf("image size = %v, want 200x200", b)
	}
}

func TestNewAppWithScript(t *testing.T) {
	cfg := smallConfig()
	cfg.Script.Path = writeScript(t, `
function draw_plot(w, h, counts)
  print(#counts)
end
`)
	a, err := newApp(cfg, toolkit.NopLogger())
	if err != nil {
		t.Fatalf("newApp() error = %v", err)
	}
	defer a.Close()

	if err := a.WritePNG(filepath.Join(t.TempDir(), "plot.png")); err != nil {
		t.Fatalf("WritePNG() error = %v", err)
	}
	if got := strings.TrimSpace(a.script.Output()); got != "100" {
		t.Errorf("script saw %q bins, want 100", got)
	}
}

func TestNewAppBadScript(t *testing.T) {
	cfg := smallConfig()
	cfg.Script.Path = filepath.Join(t.TempDir(), "missing.lua")
	if _, err := newApp(cfg, toolkit.NopLogger()); err == nil {
		t.Error("newApp() should fail for a missing script")
	}
}

func TestApplyReloadsScript(t *testing.T) {
	cfg := smallConfig()
	cfg.Script.Path = writeScript(t, `function draw_plot(w, h) end`)

	var buf bytes.Buffer
	a, err := newApp(cfg, toolkit.TextLogger(&buf, 0))
	if err != nil {
		t.Fatalf("newApp() error = %v", err)
	}
	defer a.Close()

	next := *cfg
	next.Window.Title = "renamed"
	next.Plot.Seed = 5
	a.Apply(&next)

	log := buf.String()
	for _, want := range []string{"lua plot reloaded", "apply after a restart", "configuration reloaded"} {
		if !strings.Contains(log, want) {
			t.Errorf("log does not contain %q:\n%s", want, log)
		}
	}
}

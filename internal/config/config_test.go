package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nicobailon/twinpane/internal/pane"
)

func isolate(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)
	t.Setenv("HOME", tmp)
	confDir := filepath.Join(tmp, "twinpane")
	if err := os.MkdirAll(confDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	return confDir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestLoadYAMLConfig(t *testing.T) {
	confDir := isolate(t)
	writeFile(t, filepath.Join(confDir, "config.yaml"), `default_path: /srv/data
api_url: http://files.local:9000/
depth: 3
history_max: 10
refetch_delay: 750ms
request_timeout: 5s
theme: custom
presets:
  - label: Notes
    filter: md,txt`)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.DefaultPath != "/srv/data" && cfg.DefaultPath != `C:\` {
		t.Fatalf("default_path mismatch: %s", cfg.DefaultPath)
	}
	if cfg.APIURL != "http://files.local:9000" {
		t.Fatalf("api_url mismatch: %s", cfg.APIURL)
	}
	if cfg.Depth != 3 {
		t.Fatalf("depth mismatch: %d", cfg.Depth)
	}
	if cfg.HistoryMax != 10 {
		t.Fatalf("history_max mismatch: %d", cfg.HistoryMax)
	}
	if cfg.RefetchDelay != 750*time.Millisecond {
		t.Fatalf("refetch_delay mismatch: %s", cfg.RefetchDelay)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Fatalf("request_timeout mismatch: %s", cfg.RequestTimeout)
	}
	if cfg.Theme != "custom" {
		t.Fatalf("theme mismatch: %s", cfg.Theme)
	}
	if len(cfg.Presets) != 1 || cfg.Presets[0].Filter != "md,txt" {
		t.Fatalf("presets mismatch: %+v", cfg.Presets)
	}
}

func TestLoadTOMLFallback(t *testing.T) {
	confDir := isolate(t)
	writeFile(t, filepath.Join(confDir, "config.toml"), `api_url = "http://toml:1"
depth = 2`)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIURL != "http://toml:1" || cfg.Depth != 2 {
		t.Fatalf("toml values not applied: %+v", cfg)
	}
}

func TestLoadLegacyJSON(t *testing.T) {
	confDir := isolate(t)
	writeFile(t, filepath.Join(confDir, "config.json"), `{"defaultPath": "/legacy", "apiUrl": "http://legacy:8000"}`)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIURL != "http://legacy:8000" {
		t.Fatalf("legacy apiUrl not applied: %s", cfg.APIURL)
	}
	if cfg.DefaultPath != "/legacy" && cfg.DefaultPath != `C:\` {
		t.Fatalf("legacy defaultPath not applied: %s", cfg.DefaultPath)
	}
}

func TestYAMLPreferredOverLegacyJSON(t *testing.T) {
	confDir := isolate(t)
	writeFile(t, filepath.Join(confDir, "config.json"), `{"apiUrl": "http://legacy:8000"}`)
	writeFile(t, filepath.Join(confDir, "config.yaml"), `api_url: http://yaml:1`)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIURL != "http://yaml:1" {
		t.Fatalf("yaml not preferred: %s", cfg.APIURL)
	}
}

func TestDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIURL != "http://localhost:8000" {
		t.Fatalf("api_url default: %s", cfg.APIURL)
	}
	if cfg.Depth != 1 || cfg.HistoryMax != 50 {
		t.Fatalf("depth/history defaults: %d %d", cfg.Depth, cfg.HistoryMax)
	}
	if cfg.RefetchDelay != 500*time.Millisecond || cfg.RequestTimeout != 30*time.Second {
		t.Fatalf("duration defaults: %s %s", cfg.RefetchDelay, cfg.RequestTimeout)
	}
	if len(cfg.Presets) != len(pane.DefaultPresets) {
		t.Fatalf("presets default: %d", len(cfg.Presets))
	}
	if cfg.DefaultPath == "" {
		t.Fatalf("default path must resolve")
	}
}

func TestEnvOverride(t *testing.T) {
	isolate(t)
	t.Setenv("TWINPANE_API_URL", "http://env:7000")
	t.Setenv("TWINPANE_DEPTH", "4")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIURL != "http://env:7000" || cfg.Depth != 4 {
		t.Fatalf("env not applied: %s %d", cfg.APIURL, cfg.Depth)
	}
}

func TestExplicitConfigMustExist(t *testing.T) {
	isolate(t)
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing explicit config")
	}
}

func TestDepthFloor(t *testing.T) {
	confDir := isolate(t)
	writeFile(t, filepath.Join(confDir, "config.yaml"), "depth: 0")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Depth != 1 {
		t.Fatalf("depth must be floored at 1, got %d", cfg.Depth)
	}
}

func TestResolveDefaultPath(t *testing.T) {
	if got := ResolveDefaultPath("/home/me", "windows"); got != `C:\` {
		t.Fatalf("windows forward-slash default: %s", got)
	}
	if got := ResolveDefaultPath(`D:\data`, "windows"); got != `D:\data` {
		t.Fatalf("windows path kept: %s", got)
	}
	if got := ResolveDefaultPath("/srv", "linux"); got != "/srv" {
		t.Fatalf("posix path kept: %s", got)
	}
	if got := ResolveDefaultPath("", "linux"); got == "" {
		t.Fatalf("empty path must fall back")
	}
}

func TestLogger(t *testing.T) {
	cfg := &Config{LogLevel: "debug"}
	logger, closer, err := cfg.Logger()
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	logger.Info("discarded")
	_ = closer.Close()

	cfg = &Config{LogLevel: "warn", LogFile: filepath.Join(t.TempDir(), "logs", "twinpane.log")}
	logger, closer, err = cfg.Logger()
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	logger.Info("below level")
	logger.Warn("kept")
	_ = closer.Close()

	data, err := os.ReadFile(cfg.LogFile)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if got := string(data); !strings.Contains(got, "kept") || strings.Contains(got, "below level") {
		t.Fatalf("unexpected log contents: %q", got)
	}

	if _, _, err := (&Config{LogLevel: "loud"}).Logger(); err == nil {
		t.Fatalf("expected invalid level error")
	}
}

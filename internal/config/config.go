package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/nicobailon/twinpane/internal/pane"
)

const (
	defaultAPIURL         = "http://localhost:8000"
	defaultDepth          = 1
	defaultHistoryMax     = 50
	defaultRefetchDelay   = 500 * time.Millisecond
	defaultRequestTimeout = 30 * time.Second
	defaultTheme          = "catppuccin-mocha"
	defaultLogLevel       = "info"
	windowsRoot           = `C:\`
)

type Config struct {
	DefaultPath    string        `mapstructure:"default_path"`
	APIURL         string        `mapstructure:"api_url"`
	Depth          int           `mapstructure:"depth"`
	HistoryMax     int           `mapstructure:"history_max"`
	RefetchDelay   time.Duration `mapstructure:"refetch_delay"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	Theme          string        `mapstructure:"theme"`
	LogFile        string        `mapstructure:"log_file"`
	LogLevel       string        `mapstructure:"log_level"`
	LocationFile   string        `mapstructure:"location_file"`
	Presets        []pane.Preset `mapstructure:"presets"`
}

func defaultConfig() *Config {
	return &Config{
		APIURL:         defaultAPIURL,
		Depth:          defaultDepth,
		HistoryMax:     defaultHistoryMax,
		RefetchDelay:   defaultRefetchDelay,
		RequestTimeout: defaultRequestTimeout,
		Theme:          defaultTheme,
		LogLevel:       defaultLogLevel,
	}
}

// Default returns the configuration used when no file or environment
// override is present.
func Default() *Config {
	cfg := defaultConfig()
	cfg.normalize(runtime.GOOS)
	return cfg
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "twinpane")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "twinpane")
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("TWINPANE")
	v.AutomaticEnv()

	v.SetDefault("default_path", "")
	v.SetDefault("api_url", defaultAPIURL)
	v.SetDefault("depth", defaultDepth)
	v.SetDefault("history_max", defaultHistoryMax)
	v.SetDefault("refetch_delay", defaultRefetchDelay)
	v.SetDefault("request_timeout", defaultRequestTimeout)
	v.SetDefault("theme", defaultTheme)
	v.SetDefault("log_file", "")
	v.SetDefault("log_level", defaultLogLevel)
	v.SetDefault("location_file", "")
	return v
}

// Load reads configuration. An explicit path must exist; otherwise
// config.yaml, then config.toml, then the legacy config.json are tried
// under the config directory, and defaults apply when none is found.
func Load(explicit string) (*Config, error) {
	cfg := defaultConfig()
	v := newViper()

	if explicit != "" {
		v.SetConfigFile(explicit)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", explicit, err)
		}
		return finish(v, cfg)
	}

	if path, ok := findConfig("yaml"); ok {
		return readFile(v, cfg, path)
	}

	// fallback to TOML if yaml missing
	if path, ok := findConfig("toml"); ok {
		return readFile(v, cfg, path)
	}

	// legacy front-end config.json
	if err := loadLegacy(v); err == nil {
		return finish(v, cfg)
	}

	return finish(v, cfg)
}

func searchDirs() []string {
	var dirs []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		dirs = append(dirs, filepath.Join(xdg, "twinpane"))
	}
	if home := os.Getenv("HOME"); home != "" {
		dirs = append(dirs, filepath.Join(home, ".config", "twinpane"))
	}
	return dirs
}

// findConfig returns the first config.<ext> in the search dirs. Files are
// named explicitly so a config.json is never parsed as yaml.
func findConfig(ext string) (string, bool) {
	for _, dir := range searchDirs() {
		path := filepath.Join(dir, "config."+ext)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

func readFile(v *viper.Viper, cfg *Config, path string) (*Config, error) {
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return finish(v, cfg)
}

func finish(v *viper.Viper, cfg *Config) (*Config, error) {
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.normalize(runtime.GOOS)
	return cfg, nil
}

// loadLegacy maps {"defaultPath", "apiUrl"} from config.json onto v.
func loadLegacy(v *viper.Viper) error {
	path := filepath.Join(configDir(), "config.json")
	if _, err := os.Stat(path); err != nil {
		return err
	}
	lv := viper.New()
	lv.SetConfigFile(path)
	lv.SetConfigType("json")
	if err := lv.ReadInConfig(); err != nil {
		return err
	}
	found := false
	if p := lv.GetString("defaultPath"); p != "" {
		v.Set("default_path", p)
		found = true
	}
	if u := lv.GetString("apiUrl"); u != "" {
		v.Set("api_url", u)
		found = true
	}
	if !found {
		return errors.New("no legacy keys")
	}
	return nil
}

func (c *Config) normalize(goos string) {
	c.DefaultPath = ResolveDefaultPath(c.DefaultPath, goos)
	c.APIURL = strings.TrimRight(c.APIURL, "/")
	if c.Depth < pane.MinDepth {
		c.Depth = pane.MinDepth
	}
	if c.HistoryMax <= 0 {
		c.HistoryMax = defaultHistoryMax
	}
	if c.RefetchDelay <= 0 {
		c.RefetchDelay = defaultRefetchDelay
	}
	if len(c.Presets) == 0 {
		c.Presets = pane.DefaultPresets
	}
}

// ResolveDefaultPath applies the OS-aware default root: Windows clients
// get C:\ unless the configured path already looks like a Windows path,
// and an empty path elsewhere falls back to the home directory.
func ResolveDefaultPath(p, goos string) string {
	if goos == "windows" {
		if !strings.Contains(p, `\`) {
			return windowsRoot
		}
		return p
	}
	if p != "" {
		return p
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return home
	}
	return "/"
}

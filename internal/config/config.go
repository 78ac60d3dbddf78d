// Package config loads and saves ccdash settings from an XDG-compliant
// TOML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/theirongolddev/ccdash/internal/pricing"
)

// Config holds all ccdash configuration.
type Config struct {
	// DataDir is the Claude Code data directory. Empty means ~/.claude.
	DataDir string `toml:"data_dir,omitempty"`
	// Listen is the address the serve command binds to.
	Listen  string           `toml:"listen"`
	Pricing PricingOverrides `toml:"pricing"`
}

// PricingOverrides allows user-defined per-MTok rates. Nil fields keep
// the built-in rate.
type PricingOverrides struct {
	InputPerMTok       *float64 `toml:"input_per_mtok,omitempty"`
	CacheWritePerMTok  *float64 `toml:"cache_write_per_mtok,omitempty"`
	CacheRead5mPerMTok *float64 `toml:"cache_read_5m_per_mtok,omitempty"`
	CacheRead1hPerMTok *float64 `toml:"cache_read_1h_per_mtok,omitempty"`
	OutputPerMTok      *float64 `toml:"output_per_mtok,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Listen: "127.0.0.1:8642",
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "ccdash")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "ccdash")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.Listen == "" {
		cfg.Listen = DefaultConfig().Listen
	}
	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// DataDir returns the Claude Code data directory. An explicit caller
// override (the --data-dir flag) wins over the CCDASH_DATA_DIR env
// var, which wins over the config file, falling back to ~/.claude.
func DataDir(cfg Config, override string) string {
	if override != "" {
		return override
	}
	if dir := os.Getenv("CCDASH_DATA_DIR"); dir != "" {
		return dir
	}
	if cfg.DataDir != "" {
		return cfg.DataDir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".claude")
}

// ProjectsRoot returns the directory holding per-project session logs.
func ProjectsRoot(cfg Config, override string) string {
	return filepath.Join(DataDir(cfg, override), "projects")
}

// Rates returns the built-in pricing table with any configured
// overrides applied.
func (c Config) Rates() pricing.Rates {
	r := pricing.DefaultRates()
	if v := c.Pricing.InputPerMTok; v != nil {
		r.InputPerMTok = *v
	}
	if v := c.Pricing.CacheWritePerMTok; v != nil {
		r.CacheWritePerMTok = *v
	}
	if v := c.Pricing.CacheRead5mPerMTok; v != nil {
		r.CacheRead5mPerMTok = *v
	}
	if v := c.Pricing.CacheRead1hPerMTok; v != nil {
		r.CacheRead1hPerMTok = *v
	}
	if v := c.Pricing.OutputPerMTok; v != nil {
		r.OutputPerMTok = *v
	}
	return r
}

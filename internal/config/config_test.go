package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func fptr(v float64) *float64 { return &v }

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Listen != "127.0.0.1:8642" {
		t.Errorf("Listen = %q, want default", cfg.Listen)
	}
	if cfg.DataDir != "" {
		t.Errorf("DataDir = %q, want empty", cfg.DataDir)
	}
	if Exists() {
		t.Error("Exists() = true for missing file")
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	in := DefaultConfig()
	in.DataDir = "/srv/claude"
	in.Listen = "0.0.0.0:9000"
	in.Pricing.InputPerMTok = fptr(6.0)
	in.Pricing.OutputPerMTok = fptr(30.0)

	if err := Save(in); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if !Exists() {
		t.Fatal("Exists() = false after Save")
	}

	out, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if out.DataDir != in.DataDir {
		t.Errorf("DataDir = %q, want %q", out.DataDir, in.DataDir)
	}
	if out.Listen != in.Listen {
		t.Errorf("Listen = %q, want %q", out.Listen, in.Listen)
	}
	if out.Pricing.InputPerMTok == nil || *out.Pricing.InputPerMTok != 6.0 {
		t.Errorf("InputPerMTok = %v, want 6.0", out.Pricing.InputPerMTok)
	}
	if out.Pricing.CacheRead5mPerMTok != nil {
		t.Errorf("CacheRead5mPerMTok = %v, want nil", *out.Pricing.CacheRead5mPerMTok)
	}
}

func TestLoad_PartialFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path := filepath.Join(dir, "ccdash")
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatal(err)
	}
	body := "data_dir = \"/srv/claude\"\n"
	if err := os.WriteFile(filepath.Join(path, "config.toml"), []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DataDir != "/srv/claude" {
		t.Errorf("DataDir = %q, want /srv/claude", cfg.DataDir)
	}
	if cfg.Listen != "127.0.0.1:8642" {
		t.Errorf("Listen = %q, want default for absent key", cfg.Listen)
	}
}

func TestLoad_BadTOML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path := filepath.Join(dir, "ccdash")
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(path, "config.toml"), []byte("listen = [broken"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("Load() error = nil for invalid TOML")
	}
}

func TestRates_Overrides(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Pricing.CacheRead5mPerMTok = fptr(0.5)
	cfg.Pricing.OutputPerMTok = fptr(20.0)

	r := cfg.Rates()
	if r.CacheRead5mPerMTok != 0.5 {
		t.Errorf("CacheRead5mPerMTok = %v, want 0.5", r.CacheRead5mPerMTok)
	}
	if r.OutputPerMTok != 20.0 {
		t.Errorf("OutputPerMTok = %v, want 20.0", r.OutputPerMTok)
	}
	if r.InputPerMTok != 3.0 {
		t.Errorf("InputPerMTok = %v, want built-in 3.0", r.InputPerMTok)
	}
	if r.CacheWritePerMTok != 3.75 {
		t.Errorf("CacheWritePerMTok = %v, want built-in 3.75", r.CacheWritePerMTok)
	}
}

func TestDataDir_Precedence(t *testing.T) {
	t.Setenv("CCDASH_DATA_DIR", "/from/env")
	cfg := Config{DataDir: "/from/config"}

	// An explicit flag beats an ambient env var.
	if got := DataDir(cfg, "/from/flag"); got != "/from/flag" {
		t.Errorf("DataDir = %q, want flag to win over env", got)
	}

	if got := DataDir(cfg, ""); got != "/from/env" {
		t.Errorf("DataDir = %q, want env to win over config", got)
	}

	t.Setenv("CCDASH_DATA_DIR", "")
	if got := DataDir(cfg, ""); got != "/from/config" {
		t.Errorf("DataDir = %q, want config value", got)
	}

	got := DataDir(Config{}, "")
	if !strings.HasSuffix(got, ".claude") {
		t.Errorf("DataDir = %q, want ~/.claude fallback", got)
	}
}

func TestProjectsRoot(t *testing.T) {
	t.Setenv("CCDASH_DATA_DIR", "")
	cfg := Config{DataDir: "/srv/claude"}
	want := filepath.Join("/srv/claude", "projects")
	if got := ProjectsRoot(cfg, ""); got != want {
		t.Errorf("ProjectsRoot = %q, want %q", got, want)
	}
	if got := ProjectsRoot(cfg, "/elsewhere"); got != filepath.Join("/elsewhere", "projects") {
		t.Errorf("ProjectsRoot = %q, want override root", got)
	}
}

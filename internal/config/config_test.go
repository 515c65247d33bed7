package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Addr != ":3000" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.Database.Path != "./toposcope.db" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
	if cfg.Sim.TickInterval != "33ms" {
		t.Errorf("Sim.TickInterval = %q", cfg.Sim.TickInterval)
	}
}

func TestLoadFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "toposcope.yaml")
	content := `
addr: ":8080"
topology:
  url: http://controller:8181/api/topology/v3
layouts:
  url: http://store:8080/layouts
sim:
  width: 1280
  height: 720
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, loadedPath, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if loadedPath != path {
		t.Errorf("path = %q", loadedPath)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.Topology.URL != "http://controller:8181/api/topology/v3" {
		t.Errorf("Topology.URL = %q", cfg.Topology.URL)
	}
	if cfg.Layouts.URL != "http://store:8080/layouts" {
		t.Errorf("Layouts.URL = %q", cfg.Layouts.URL)
	}
	if cfg.Sim.Width != 1280 || cfg.Sim.Height != 720 {
		t.Errorf("Sim = %+v", cfg.Sim)
	}
	// Unset fields still get defaults
	if cfg.Database.Path != "./toposcope.db" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
}

func TestLoadFromPathErrors(t *testing.T) {
	if _, _, err := LoadFromPath(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("missing file: want error")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(bad, []byte("addr: [\n"), 0644)
	if _, _, err := LoadFromPath(bad); err == nil {
		t.Error("malformed yaml: want error")
	}
}

func TestFindConfigPathEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("addr: :9999\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvConfigPath, path)

	if got := FindConfigPath(); got != path {
		t.Errorf("FindConfigPath = %q, want %q", got, path)
	}

	t.Setenv(EnvConfigPath, filepath.Join(dir, "absent.yaml"))
	if got := FindConfigPath(); got == filepath.Join(dir, "absent.yaml") {
		t.Error("env path that does not exist must be skipped")
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
)

// chdirTemp moves the test into an empty directory so no real
// .tally.yaml leaks in, and points the config env at it too.
func chdirTemp(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tempDir, "xdg"))
	t.Setenv("HOME", filepath.Join(tempDir, "home"))
	return tempDir
}

func TestConfigPath_ReturnsLocalConfig_When_FileExists(t *testing.T) {
	tempDir := chdirTemp(t)

	localConfig := filepath.Join(tempDir, ".tally.yaml")
	if err := os.WriteFile(localConfig, []byte("theme: mono\n"), 0o600); err != nil {
		t.Fatalf("failed to write local config: %v", err)
	}

	if got := configPath(); got != ".tally.yaml" {
		t.Fatalf("expected local config path, got %q", got)
	}
}

func TestConfigPath_UsesXDGPath_When_LocalMissing(t *testing.T) {
	tempDir := chdirTemp(t)

	xdgRoot := filepath.Join(tempDir, "xdg")
	configHome := filepath.Join(xdgRoot, "tally")
	if err := os.MkdirAll(configHome, 0o755); err != nil {
		t.Fatalf("failed to create XDG config directory: %v", err)
	}
	want := filepath.Join(configHome, ".tally.yaml")
	if err := os.WriteFile(want, []byte("theme: orca\n"), 0o600); err != nil {
		t.Fatalf("failed to write XDG config: %v", err)
	}

	if got := configPath(); got != want {
		t.Fatalf("expected XDG config path %q, got %q", want, got)
	}
}

func TestConfigPath_ReturnsEmpty_When_NoConfigAvailable(t *testing.T) {
	chdirTemp(t)

	if got := configPath(); got != "" {
		t.Fatalf("expected empty path, got %q", got)
	}
}

func TestLoadFile_ParsesSettings(t *testing.T) {
	tempDir := chdirTemp(t)

	content := "format: json\ntheme: orca\nsuite_segment: 2\njobs: 4\nstrict: true\n"
	if err := os.WriteFile(filepath.Join(tempDir, ".tally.yaml"), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := LoadFile()
	if cfg.Format != "json" || cfg.Theme != "orca" {
		t.Errorf("cfg = %+v, want format json and theme orca", cfg)
	}
	if cfg.SuiteSegment != 2 || cfg.Jobs != 4 || !cfg.Strict {
		t.Errorf("cfg = %+v, want suite_segment 2, jobs 4, strict", cfg)
	}
}

func TestLoadFile_FallsBack_When_YamlInvalid(t *testing.T) {
	tempDir := chdirTemp(t)

	if err := os.WriteFile(filepath.Join(tempDir, ".tally.yaml"), []byte("{not yaml"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := LoadFile()
	if *cfg != (FileConfig{}) {
		t.Errorf("cfg = %+v, want zero config on parse failure", cfg)
	}
}

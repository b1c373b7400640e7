package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"digitize/internal/config"
)

func TestLoadWithoutFileUsesDefaultsAndExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	if want := filepath.Join(tempHome, "scans"); cfg.Paths.OutputDir != want {
		t.Fatalf("unexpected output dir: got %q want %q", cfg.Paths.OutputDir, want)
	}
	if want := filepath.Join(tempHome, ".config", "digitize", "profiles.toml"); cfg.Paths.Profiles != want {
		t.Fatalf("unexpected profiles path: got %q want %q", cfg.Paths.Profiles, want)
	}
	if cfg.Scanner.Device != "brother4:net1;dev0" {
		t.Fatalf("unexpected device: %q", cfg.Scanner.Device)
	}
	if cfg.Scanner.Resolution != 300 {
		t.Fatalf("unexpected resolution: %d", cfg.Scanner.Resolution)
	}
	if cfg.OCR.Language != "deu" {
		t.Fatalf("unexpected ocr language: %q", cfg.OCR.Language)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadReadsExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	doc := `
[paths]
output_dir = "/mnt/archive"

[scanner]
resolution = 600

[logging]
format = "JSON"
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected explicit file to be used, got %q exists=%v", resolved, exists)
	}
	if cfg.Paths.OutputDir != "/mnt/archive" {
		t.Fatalf("unexpected output dir: %q", cfg.Paths.OutputDir)
	}
	if cfg.Scanner.Resolution != 600 {
		t.Fatalf("unexpected resolution: %d", cfg.Scanner.Resolution)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("expected format to be lowercased, got %q", cfg.Logging.Format)
	}
}

func TestLoadRejectsInvalidResolution(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[scanner]\nresolution = 250\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, _, _, err := config.Load(path)
	if err == nil || !strings.Contains(err.Error(), "scanner.resolution") {
		t.Fatalf("expected resolution validation error, got %v", err)
	}
}

func TestLoadRejectsUnknownLogFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[logging]\nformat = \"pretty\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, _, _, err := config.Load(path)
	if err == nil || !strings.Contains(err.Error(), "logging.format") {
		t.Fatalf("expected log format validation error, got %v", err)
	}
}

func TestCreateSampleWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[scanner]") {
		t.Fatal("sample config missing scanner section")
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("sample config must load cleanly: %v", err)
	}
	if !exists {
		t.Fatal("expected sample file to exist")
	}
	if cfg.Scanner.Resolution != 300 {
		t.Fatalf("unexpected sample resolution: %d", cfg.Scanner.Resolution)
	}
}

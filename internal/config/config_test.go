package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("MECALIN_DB", "")
	t.Setenv("MECALIN_LANG", "")
	t.Setenv("MECALIN_LOG_LEVEL", "")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.DBPath != "" {
		t.Errorf("DBPath = %q, want empty", cfg.DBPath)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("MECALIN_DB", "/tmp/x.db")
	t.Setenv("MECALIN_LANG", "es_ES.UTF-8")
	t.Setenv("MECALIN_LOG_FILE", "-")
	t.Setenv("MECALIN_LOG_LEVEL", "debug")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.DBPath != "/tmp/x.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if err := cfg.Complete(func(string) string { return "" }); err != nil {
		t.Fatal(err)
	}
	if cfg.Language != "es" {
		t.Errorf("Language = %q, want es", cfg.Language)
	}
	if cfg.LogPath() != "" {
		t.Errorf("LogPath = %q, want disabled", cfg.LogPath())
	}
}

func TestCompleteDerivesPaths(t *testing.T) {
	vars := map[string]string{
		"XDG_DATA_HOME":  "/data",
		"XDG_STATE_HOME": "/state",
		"LANG":           "es_MX.UTF-8",
	}
	cfg := DefaultConfig()
	if err := cfg.Complete(func(k string) string { return vars[k] }); err != nil {
		t.Fatal(err)
	}

	if want := filepath.Join("/data", "mecalin", "mecalin.db"); cfg.DBPath != want {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, want)
	}
	if want := filepath.Join("/state", "mecalin", "mecalin.log"); cfg.LogPath() != want {
		t.Errorf("LogPath = %q, want %q", cfg.LogPath(), want)
	}
	if cfg.Language != "es" {
		t.Errorf("Language = %q, want es", cfg.Language)
	}
}

func TestCompleteKeepsExplicitValues(t *testing.T) {
	cfg := Config{DBPath: "mine.db", LogFile: "mine.log", Language: "us"}
	if err := cfg.Complete(func(string) string { return "" }); err != nil {
		t.Fatal(err)
	}
	if cfg.DBPath != "mine.db" || cfg.LogFile != "mine.log" || cfg.Language != "us" {
		t.Errorf("explicit values overwritten: %+v", cfg)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
}

func TestCompleteFallsBackToHome(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg := DefaultConfig()
	if err := cfg.Complete(func(string) string { return "" }); err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(cfg.DBPath, filepath.Join(".local", "share", "mecalin", "mecalin.db")) {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.Language != "us" {
		t.Errorf("Language = %q, want us", cfg.Language)
	}
}

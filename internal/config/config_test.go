package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadAppliesDefaultsWhenFileMissing(t *testing.T) {
	t.Setenv("YOUTUBE_API_KEY", "env-key")

	cfg, _, exists, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Fatal("expected exists=false for missing file")
	}
	if cfg.YouTube.APIKey != "env-key" {
		t.Fatalf("api key = %q, want env fallback", cfg.YouTube.APIKey)
	}
	if cfg.YouTube.BaseURL != defaultYouTubeBaseURL {
		t.Fatalf("base url = %q", cfg.YouTube.BaseURL)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("logging defaults not applied: %+v", cfg.Logging)
	}
}

func TestLoadParsesFileAndExpandsPaths(t *testing.T) {
	t.Setenv("YOUTUBE_API_KEY", "")
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
data_dir = "` + filepath.Join(dir, "data") + `"
log_dir = "~/ytharvest-test-logs"

[youtube]
api_key = "file-key"
max_comments_per_video = 25

[logging]
format = "JSON"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("resolved = %q exists = %v", resolved, exists)
	}
	if cfg.YouTube.APIKey != "file-key" {
		t.Fatalf("api key = %q", cfg.YouTube.APIKey)
	}
	if cfg.YouTube.MaxCommentsPerVideo != 25 {
		t.Fatalf("max comments = %d", cfg.YouTube.MaxCommentsPerVideo)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("format = %q, want json", cfg.Logging.Format)
	}
	if strings.HasPrefix(cfg.Paths.LogDir, "~") {
		t.Fatalf("log dir not expanded: %q", cfg.Paths.LogDir)
	}
}

func TestLoadRequiresAPIKey(t *testing.T) {
	t.Setenv("YOUTUBE_API_KEY", "")
	_, _, _, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err == nil {
		t.Fatal("expected error when api key missing")
	}
	if !strings.Contains(err.Error(), "youtube.api_key") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNormalizeClampsPageSizes(t *testing.T) {
	cfg := Default()
	cfg.YouTube.APIKey = "k"
	cfg.YouTube.PlaylistPageSize = 500
	cfg.YouTube.CommentThreadPageSize = -3
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.YouTube.PlaylistPageSize != defaultPlaylistPageSize {
		t.Fatalf("playlist page size = %d", cfg.YouTube.PlaylistPageSize)
	}
	if cfg.YouTube.CommentThreadPageSize != defaultCommentThreadPageSize {
		t.Fatalf("comment page size = %d", cfg.YouTube.CommentThreadPageSize)
	}
}

func TestCreateSampleWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[youtube]") {
		t.Fatal("sample config missing [youtube] section")
	}
}

func TestDatabasePathUnderDataDir(t *testing.T) {
	cfg := Default()
	cfg.Paths.DataDir = "/tmp/ythtest"
	if got := cfg.DatabasePath(); got != filepath.Join("/tmp/ythtest", "warehouse.db") {
		t.Fatalf("DatabasePath = %q", got)
	}
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, path, exists, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Fatal("expected exists=false for missing config file")
	}
	if path == "" {
		t.Fatal("expected resolved path")
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Errorf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if cfg.Speech.Locale != "en-US" {
		t.Errorf("locale = %q, want en-US", cfg.Speech.Locale)
	}
	if !filepath.IsAbs(cfg.Paths.StagingDir) {
		t.Errorf("staging dir not absolute: %q", cfg.Paths.StagingDir)
	}
}

func TestLoadParsesAndExpands(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := `
[paths]
staging_dir = "` + filepath.Join(dir, "staging") + `"
history_db = "` + filepath.Join(dir, "history.db") + `"

[speech]
locale = "de"
whisper_model = "` + filepath.Join(dir, "model.bin") + `"

[logging]
format = "json"
level = "debug"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatal("expected exists=true")
	}
	if cfg.Speech.Locale != "de" {
		t.Errorf("locale = %q, want de", cfg.Speech.Locale)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("format = %q, want json", cfg.Logging.Format)
	}
	if cfg.Paths.StagingDir != filepath.Join(dir, "staging") {
		t.Errorf("staging dir = %q", cfg.Paths.StagingDir)
	}
	// Unset sections keep defaults.
	if cfg.Transcription.DownloadTimeoutSeconds != defaultDownloadTimeoutSeconds {
		t.Errorf("download timeout = %d", cfg.Transcription.DownloadTimeoutSeconds)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}

	bad := cfg
	bad.Logging.Format = "xml"
	if err := bad.Validate(); err == nil || !strings.Contains(err.Error(), "logging format") {
		t.Errorf("expected logging format error, got %v", err)
	}

	bad = cfg
	bad.Transcription.DownloadTimeoutSeconds = 0
	if err := bad.Validate(); err == nil {
		t.Error("expected download timeout error")
	}

	bad = cfg
	bad.Speech.CloudAPIKey = "secret"
	bad.Speech.CloudBaseURL = ""
	if err := bad.Validate(); err == nil {
		t.Error("expected cloud_base_url error")
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	if _, _, _, err := Load(path); err != nil {
		t.Fatalf("Load(sample): %v", err)
	}
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.Paths.StagingDir = filepath.Join(dir, "staging")
	cfg.Paths.DownloadsDir = filepath.Join(dir, "downloads")
	cfg.Paths.LogDir = filepath.Join(dir, "logs")
	cfg.Paths.HistoryDB = filepath.Join(dir, "state", "history.db")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	for _, d := range []string{cfg.Paths.StagingDir, cfg.Paths.LogDir, filepath.Join(dir, "state")} {
		if info, err := os.Stat(d); err != nil || !info.IsDir() {
			t.Errorf("expected directory %s: %v", d, err)
		}
	}
}

func TestFFmpegBinaryFallsBackToPathLookup(t *testing.T) {
	cfg := Default()
	if got := cfg.FFmpegBinary(); got != "ffmpeg" {
		t.Errorf("FFmpegBinary = %q, want ffmpeg", got)
	}
	cfg.Transcription.FFmpeg = "/opt/ffmpeg/bin/ffmpeg"
	if got := cfg.FFmpegBinary(); got != "/opt/ffmpeg/bin/ffmpeg" {
		t.Errorf("FFmpegBinary = %q", got)
	}
}

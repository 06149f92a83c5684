package staging

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"podscribe/internal/logging"
)

func newTestStager() *Stager {
	return NewStager(5*time.Second, logging.NewNop())
}

func TestStageLocalPathPassesThrough(t *testing.T) {
	dir := t.TempDir()
	local := filepath.Join(dir, "episode.mp3")
	if err := os.WriteFile(local, []byte("audio"), 0o644); err != nil {
		t.Fatalf("write local file: %v", err)
	}

	tracker := NewTracker(filepath.Join(dir, "staging"))
	got, err := newTestStager().Stage(context.Background(), tracker, "ep-1", local)
	if err != nil {
		t.Fatalf("Stage: %v", err)
	}
	if got != local {
		t.Errorf("Stage = %q, want %q", got, local)
	}
	if len(tracker.Paths()) != 0 {
		t.Errorf("local passthrough must not register temp files, got %v", tracker.Paths())
	}
}

func TestStageFileURLPassesThrough(t *testing.T) {
	dir := t.TempDir()
	local := filepath.Join(dir, "episode.wav")
	if err := os.WriteFile(local, []byte("audio"), 0o644); err != nil {
		t.Fatalf("write local file: %v", err)
	}

	tracker := NewTracker(filepath.Join(dir, "staging"))
	got, err := newTestStager().Stage(context.Background(), tracker, "ep-1", "file://"+local)
	if err != nil {
		t.Fatalf("Stage: %v", err)
	}
	if got != local {
		t.Errorf("Stage = %q, want %q", got, local)
	}
}

func TestStageMissingLocalFileFails(t *testing.T) {
	tracker := NewTracker(t.TempDir())
	if _, err := newTestStager().Stage(context.Background(), tracker, "ep-1", "/nonexistent/audio.mp3"); err == nil {
		t.Fatal("expected error for missing local file")
	}
}

func TestStageDownloadsRemoteAudio(t *testing.T) {
	payload := []byte("fake mp3 bytes")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(payload)
	}))
	defer server.Close()

	tracker := NewTracker(t.TempDir())
	got, err := newTestStager().Stage(context.Background(), tracker, "ep-1", server.URL+"/feed/episode.mp3")
	if err != nil {
		t.Fatalf("Stage: %v", err)
	}

	if !strings.HasSuffix(got, ".mp3") {
		t.Errorf("staged path %q should keep remote extension", got)
	}
	data, err := os.ReadFile(got)
	if err != nil {
		t.Fatalf("read staged file: %v", err)
	}
	if string(data) != string(payload) {
		t.Errorf("staged content mismatch: %q", data)
	}

	paths := tracker.Paths()
	if len(paths) != 1 || paths[0] != got {
		t.Errorf("expected staged file registered for cleanup, got %v", paths)
	}
}

func TestStageReportsHTTPFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	tracker := NewTracker(t.TempDir())
	_, err := newTestStager().Stage(context.Background(), tracker, "ep-1", server.URL+"/missing.mp3")
	if err == nil {
		t.Fatal("expected error for 404 response")
	}
	if !strings.Contains(err.Error(), "404") {
		t.Errorf("expected status in error, got %v", err)
	}
}

func TestStageWrapsTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	tracker := NewTracker(t.TempDir())
	_, err := newTestStager().Stage(context.Background(), tracker, "ep-1", server.URL+"/episode.mp3")
	if err == nil {
		t.Fatal("expected transport error")
	}
	if !strings.Contains(err.Error(), "download") {
		t.Errorf("expected download context in error, got %v", err)
	}
}

func TestRemoteExtensionDefaults(t *testing.T) {
	if got := remoteExtension("https://x/e1.mp3"); got != ".mp3" {
		t.Errorf("remoteExtension = %q", got)
	}
	if got := remoteExtension("https://x/audio.m4a"); got != ".m4a" {
		t.Errorf("remoteExtension = %q", got)
	}
	if got := remoteExtension("https://x/stream"); got != ".mp3" {
		t.Errorf("remoteExtension fallback = %q", got)
	}
}

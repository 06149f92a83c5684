package staging

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"podscribe/internal/logging"
	"podscribe/internal/podcast"
)

// Tracker allocates uniquely named temporary files under the staging
// directory and records every path it hands out so Cleanup can delete them
// all. One tracker is owned by exactly one pipeline invocation; it is never
// shared across episodes.
type Tracker struct {
	dir string

	mu    sync.Mutex
	paths []string
}

// NewTracker creates a tracker rooted at dir.
func NewTracker(dir string) *Tracker {
	return &Tracker{dir: dir}
}

// Dir returns the staging directory the tracker allocates under.
func (t *Tracker) Dir() string {
	return t.dir
}

// NewFile allocates a unique path for episode-scoped temporary audio and
// registers it for cleanup. The name combines a stable hash of the episode
// identifier with a fresh random component, so concurrent episodes never
// collide and leftover files remain attributable during debugging. The file
// itself is not created.
func (t *Tracker) NewFile(episodeID, ext string) (string, error) {
	if err := os.MkdirAll(t.dir, 0o755); err != nil {
		return "", fmt.Errorf("ensure staging directory: %w", err)
	}

	ext = strings.TrimSpace(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	name := fmt.Sprintf("%s-%s%s", podcast.FingerprintID(episodeID), uuid.NewString()[:8], ext)
	path := filepath.Join(t.dir, name)

	t.Register(path)
	return path, nil
}

// Register records an existing path for deletion during Cleanup.
func (t *Tracker) Register(path string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.paths = append(t.paths, path)
}

// Paths returns a copy of the registered paths.
func (t *Tracker) Paths() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, len(t.paths))
	copy(out, t.paths)
	return out
}

// Cleanup deletes every registered path. Missing files are ignored; other
// failures are logged and do not stop the remaining deletions. The tracker
// is empty afterwards.
func (t *Tracker) Cleanup(logger *slog.Logger) {
	t.mu.Lock()
	paths := t.paths
	t.paths = nil
	t.mu.Unlock()

	for _, path := range paths {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			if logger != nil {
				logger.Warn("failed to remove staged file",
					logging.String("path", path),
					logging.Error(err),
					logging.String(logging.FieldEventType, "staging_cleanup_failed"),
					logging.String(logging.FieldErrorHint, "check staging_dir permissions"),
					logging.String(logging.FieldImpact, "disk space not reclaimed"),
				)
			}
		}
	}
}

// Package downloads locates completed local episode downloads so the
// pipeline can skip re-fetching audio it already has.
package downloads

import (
	"os"
	"path/filepath"

	"podscribe/internal/podcast"
)

// audioExtensions lists the file types a podcast client is expected to
// leave in the downloads directory, in preference order.
var audioExtensions = []string{".wav", ".mp3", ".m4a", ".aac", ".ogg", ".flac"}

// Manager resolves episodes against a directory of completed downloads.
// Files are matched by the episode fingerprint, the same stable naming
// the staging tracker uses.
type Manager struct {
	dir string
}

// NewManager creates a manager over the downloads directory. An empty
// dir disables local lookups.
func NewManager(dir string) *Manager {
	return &Manager{dir: dir}
}

// PreferredPlaybackURL returns a local download for the episode when one
// exists, otherwise the episode's remote enclosure URL.
func (m *Manager) PreferredPlaybackURL(episode podcast.Episode) string {
	if m == nil || m.dir == "" {
		return episode.AudioURL
	}
	stem := filepath.Join(m.dir, episode.Fingerprint())
	for _, ext := range audioExtensions {
		candidate := stem + ext
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return episode.AudioURL
}

// DownloadPath returns where a completed download for the episode would
// be stored with the given extension.
func (m *Manager) DownloadPath(episode podcast.Episode, ext string) string {
	return filepath.Join(m.dir, episode.Fingerprint()+ext)
}

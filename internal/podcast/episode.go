// Package podcast holds the episode model shared by the transcription
// pipeline and its callers.
package podcast

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"
)

// Episode identifies one podcast episode and where its audio lives.
type Episode struct {
	// ID uniquely identifies the episode, typically the feed GUID.
	ID string
	// Title is the human-readable episode title.
	Title string
	// ShowTitle is the containing podcast's title, when known.
	ShowTitle string
	// Duration is an optional hint; zero when unknown.
	Duration time.Duration
	// AudioURL is the episode's enclosure URL. It may be a remote http(s)
	// URL or a local file path.
	AudioURL string
}

// Validate reports whether the episode carries enough information to be
// transcribed.
func (e Episode) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return errors.New("episode: id is required")
	}
	if strings.TrimSpace(e.AudioURL) == "" {
		return errors.New("episode: audio url is required")
	}
	return nil
}

// Fingerprint returns a short stable hash of the episode ID, used to name
// files belonging to this episode on disk. It is safe for filenames and
// identical across runs.
func (e Episode) Fingerprint() string {
	return FingerprintID(e.ID)
}

// FingerprintID hashes an episode identifier into a short filename-safe token.
func FingerprintID(id string) string {
	sum := sha256.Sum256([]byte(id))
	return hex.EncodeToString(sum[:])[:12]
}

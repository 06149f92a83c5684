package staging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"podscribe/internal/logging"
)

// Stager ensures a local, readable copy of episode audio exists. Local
// sources pass through untouched; remote sources are downloaded into a
// tracked temporary file.
type Stager struct {
	client *http.Client
	logger *slog.Logger
}

// NewStager constructs a stager with the given download timeout.
func NewStager(timeout time.Duration, logger *slog.Logger) *Stager {
	return &Stager{
		client: &http.Client{Timeout: timeout},
		logger: logging.NewComponentLogger(logger, "stager"),
	}
}

// Stage resolves rawURL to a local file path. Remote audio is downloaded to
// a temporary file allocated from the tracker; the tracker owns its
// deletion. Download failures wrap the underlying transport error and are
// never retried here.
func (s *Stager) Stage(ctx context.Context, tracker *Tracker, episodeID, rawURL string) (string, error) {
	local, remote := classify(rawURL)
	if !remote {
		if _, err := os.Stat(local); err != nil {
			return "", fmt.Errorf("local audio %s: %w", local, err)
		}
		return local, nil
	}

	dest, err := tracker.NewFile(episodeID, remoteExtension(rawURL))
	if err != nil {
		return "", err
	}

	start := time.Now()
	if err := s.download(ctx, rawURL, dest); err != nil {
		return "", fmt.Errorf("download %s: %w", rawURL, err)
	}

	s.logger.Info("staged remote audio",
		logging.String(logging.FieldEpisodeID, episodeID),
		logging.String("path", dest),
		logging.Duration("elapsed", time.Since(start)),
	)
	return dest, nil
}

func (s *Stager) download(ctx context.Context, rawURL, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// classify splits a source into a local path or a remote URL. file:// URLs
// and bare paths are local; http(s) is remote.
func classify(raw string) (local string, remote bool) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return raw, false
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
		return "", true
	case "file":
		return parsed.Path, false
	default:
		return raw, false
	}
}

// remoteExtension preserves the remote file's extension on the staged copy
// so format detection keeps working; unknown sources default to .mp3.
func remoteExtension(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ".mp3"
	}
	if ext := path.Ext(parsed.Path); ext != "" && len(ext) <= 5 {
		return ext
	}
	return ".mp3"
}

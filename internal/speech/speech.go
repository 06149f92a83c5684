package speech

import (
	"context"
	"time"
)

// Metadata carries episode context some backends attach to their requests.
type Metadata struct {
	EpisodeID string
	Title     string
	ShowTitle string
	Duration  time.Duration
}

// Backend converts one normalized audio file into transcript text.
type Backend interface {
	Name() string
	Transcribe(ctx context.Context, path string, meta Metadata) (string, error)
}

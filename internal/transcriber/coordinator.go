package transcriber

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"podscribe/internal/logging"
	"podscribe/internal/podcast"
	"podscribe/internal/speech"
	"podscribe/internal/staging"
)

// State describes where an episode currently sits in the pipeline.
type State string

const (
	StateIdle         State = "idle"
	StateStaging      State = "staging"
	StateNormalizing  State = "normalizing"
	StateTranscribing State = "transcribing"
	StateCached       State = "cached"
	StateFailed       State = "failed"
)

// Transcript is the cached result of one successful pipeline run.
type Transcript struct {
	EpisodeID string
	Text      string
	CreatedAt time.Time
}

// Stager resolves episode audio to a readable local file.
type Stager interface {
	Stage(ctx context.Context, tracker *staging.Tracker, episodeID, rawURL string) (string, error)
}

// Normalizer guarantees backend-compatible audio, allocating temp space
// through the supplied callback only when transcoding is needed.
type Normalizer interface {
	Normalize(ctx context.Context, source string, allocTemp func(ext string) (string, error)) (string, error)
}

// Engine produces transcript text from a normalized audio file.
type Engine interface {
	Transcribe(ctx context.Context, path string, meta speech.Metadata) (string, error)
}

// PlaybackResolver picks the best audio source for an episode, typically
// preferring a completed local download over the remote enclosure.
type PlaybackResolver interface {
	PreferredPlaybackURL(episode podcast.Episode) string
}

// inflightCall is the shared handle every concurrent requester of the
// same episode waits on. done is closed exactly once, after transcript
// and err are final.
type inflightCall struct {
	done       chan struct{}
	state      State
	transcript *Transcript
	err        error
	// waiters counts callers attached to this run, the initiator included.
	waiters int
}

// Coordinator runs the transcription pipeline with single-flight
// semantics: at most one run per episode at a time, results cached in
// memory, failures surfaced identically to every waiter and never cached.
type Coordinator struct {
	stagingDir string
	resolver   PlaybackResolver
	stager     Stager
	normalizer Normalizer
	engine     Engine
	logger     *slog.Logger

	// Pipeline work runs on baseCtx, not a caller's context, so one
	// impatient caller cannot abandon work other waiters still want.
	baseCtx context.Context
	cancel  context.CancelFunc

	mu       sync.Mutex
	cache    map[string]*Transcript
	inflight map[string]*inflightCall
	failed   map[string]bool
}

// New constructs a coordinator. resolver may be nil, in which case the
// episode's own audio URL is used directly.
func New(stagingDir string, resolver PlaybackResolver, stager Stager, normalizer Normalizer, engine Engine, logger *slog.Logger) *Coordinator {
	baseCtx, cancel := context.WithCancel(context.Background())
	return &Coordinator{
		stagingDir: stagingDir,
		resolver:   resolver,
		stager:     stager,
		normalizer: normalizer,
		engine:     engine,
		logger:     logging.NewComponentLogger(logger, "transcriber"),
		baseCtx:    baseCtx,
		cancel:     cancel,
		cache:      make(map[string]*Transcript),
		inflight:   make(map[string]*inflightCall),
		failed:     make(map[string]bool),
	}
}

// Transcript returns the episode's transcript, joining an in-flight run
// or starting a new one as needed. ctx cancellation detaches this caller
// with ErrCancelled; the shared run continues.
func (c *Coordinator) Transcript(ctx context.Context, episode podcast.Episode) (*Transcript, error) {
	if err := episode.Validate(); err != nil {
		return nil, err
	}

	// Cache check, in-flight join, and insertion happen in one critical
	// section so two callers can never both start a run.
	c.mu.Lock()
	if cached, ok := c.cache[episode.ID]; ok {
		c.mu.Unlock()
		return cached, nil
	}
	if call, ok := c.inflight[episode.ID]; ok {
		call.waiters++
		c.mu.Unlock()
		return c.wait(ctx, call)
	}
	call := &inflightCall{done: make(chan struct{}), state: StateStaging, waiters: 1}
	c.inflight[episode.ID] = call
	c.mu.Unlock()

	go c.run(episode, call)
	return c.wait(ctx, call)
}

// CachedTranscript returns the cached transcript or nil, never blocking.
func (c *Coordinator) CachedTranscript(episodeID string) *Transcript {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache[episodeID]
}

// Status reports the episode's pipeline state.
func (c *Coordinator) Status(episodeID string) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.cache[episodeID]; ok {
		return StateCached
	}
	if call, ok := c.inflight[episodeID]; ok {
		return call.state
	}
	if c.failed[episodeID] {
		return StateFailed
	}
	return StateIdle
}

// Close cancels all in-flight pipeline work. Waiters observe the failure
// of their run; the coordinator remains usable only for cache reads.
func (c *Coordinator) Close() {
	c.cancel()
}

func (c *Coordinator) wait(ctx context.Context, call *inflightCall) (*Transcript, error) {
	select {
	case <-call.done:
		return call.transcript, call.err
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %w", ErrCancelled, context.Cause(ctx))
	}
}

func (c *Coordinator) run(episode podcast.Episode, call *inflightCall) {
	transcript, err := c.pipeline(c.baseCtx, episode, call)

	c.mu.Lock()
	delete(c.inflight, episode.ID)
	call.transcript = transcript
	call.err = err
	if err == nil {
		call.state = StateCached
		c.cache[episode.ID] = transcript
		delete(c.failed, episode.ID)
	} else {
		call.state = StateFailed
		c.failed[episode.ID] = true
	}
	c.mu.Unlock()

	close(call.done)
}

func (c *Coordinator) pipeline(ctx context.Context, episode podcast.Episode, call *inflightCall) (*Transcript, error) {
	tracker := staging.NewTracker(c.stagingDir)
	defer tracker.Cleanup(c.logger)

	start := time.Now()
	source := episode.AudioURL
	if c.resolver != nil {
		source = c.resolver.PreferredPlaybackURL(episode)
	}

	c.setState(call, StateStaging)
	staged, err := c.stager.Stage(ctx, tracker, episode.ID, source)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStagingFailed, err)
	}

	c.setState(call, StateNormalizing)
	normalized, err := c.normalizer.Normalize(ctx, staged, func(ext string) (string, error) {
		return tracker.NewFile(episode.ID, ext)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAudioConversionFailed, err)
	}

	c.setState(call, StateTranscribing)
	text, err := c.engine.Transcribe(ctx, normalized, speech.Metadata{
		EpisodeID: episode.ID,
		Title:     episode.Title,
		ShowTitle: episode.ShowTitle,
		Duration:  episode.Duration,
	})
	if err != nil {
		if speechSentinel(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrBackendFailure, err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyResult
	}

	c.logger.Info("episode transcribed",
		logging.String(logging.FieldEpisodeID, episode.ID),
		logging.Int("characters", len(text)),
		logging.Duration("elapsed", time.Since(start)),
	)
	return &Transcript{EpisodeID: episode.ID, Text: text, CreatedAt: time.Now()}, nil
}

func (c *Coordinator) setState(call *inflightCall, state State) {
	c.mu.Lock()
	call.state = state
	c.mu.Unlock()
}

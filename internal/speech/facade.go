package speech

import (
	"context"
	"log/slog"
	"sync"

	"podscribe/internal/config"
	"podscribe/internal/logging"
)

// Candidate is one ranked backend option. Probe either yields a ready
// backend or an error explaining why this rank is skipped.
type Candidate struct {
	Name  string
	Probe func() (Backend, error)
}

// Facade selects the best available speech backend and delegates
// transcription to it. Selection is evaluated lazily and exactly once;
// every later call reuses the same backend or the same failure.
type Facade struct {
	logger     *slog.Logger
	candidates []Candidate

	once      sync.Once
	backend   Backend
	selectErr error
}

// NewFacade builds the production ranking: on-device whisper.cpp, then
// the legacy whisper CLI, then the cloud speech API.
func NewFacade(cfg *config.Config, logger *slog.Logger) *Facade {
	lang := ShortCode(Negotiate(cfg.Speech.Locale))
	return NewFacadeWithCandidates(logger, []Candidate{
		{Name: "whisper.cpp", Probe: func() (Backend, error) {
			return newWhisperBackend(cfg.Speech.WhisperModel, lang)
		}},
		{Name: "whisper-cli", Probe: func() (Backend, error) {
			return newCLIBackend(cfg.Speech.WhisperCLI, cfg.Speech.WhisperModel, lang)
		}},
		{Name: "cloud", Probe: func() (Backend, error) {
			return newCloudBackend(cfg.Speech, lang)
		}},
	})
}

// NewFacadeWithCandidates builds a facade over an explicit ranking.
func NewFacadeWithCandidates(logger *slog.Logger, candidates []Candidate) *Facade {
	return &Facade{
		logger:     logging.NewComponentLogger(logger, "speech"),
		candidates: candidates,
	}
}

// Select returns the chosen backend, probing the ranking on first use.
// A probe failure downgrades to the next rank; it never aborts selection.
func (f *Facade) Select() (Backend, error) {
	f.once.Do(func() {
		for _, cand := range f.candidates {
			backend, err := cand.Probe()
			if err != nil {
				f.logger.Debug("speech backend skipped",
					logging.String("backend", cand.Name),
					logging.Error(err),
				)
				continue
			}
			f.logger.Info("speech backend selected", logging.String("backend", cand.Name))
			f.backend = backend
			return
		}
		f.selectErr = ErrNoBackendFound
	})
	return f.backend, f.selectErr
}

// Transcribe runs the selected backend against the given audio file.
func (f *Facade) Transcribe(ctx context.Context, path string, meta Metadata) (string, error) {
	backend, err := f.Select()
	if err != nil {
		return "", err
	}
	return backend.Transcribe(ctx, path, meta)
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"podscribe/internal/audio"
	"podscribe/internal/downloads"
	"podscribe/internal/history"
	"podscribe/internal/logging"
	"podscribe/internal/podcast"
	"podscribe/internal/runlock"
	"podscribe/internal/speech"
	"podscribe/internal/staging"
	"podscribe/internal/transcriber"
)

func newTranscribeCommand(ctx *commandContext) *cobra.Command {
	var (
		episodeID string
		audioURL  string
		title     string
		show      string
		duration  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "transcribe",
		Short: "Stage, normalize, and transcribe a podcast episode",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger(cfg)
			if err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			sweepStaleFiles(cfg.Paths.StagingDir, time.Duration(cfg.Transcription.StagingMaxAgeHours)*time.Hour, logger)

			episode := podcast.Episode{
				ID:        episodeID,
				Title:     title,
				ShowTitle: show,
				Duration:  duration,
				AudioURL:  audioURL,
			}

			coordinator := transcriber.New(
				cfg.Paths.StagingDir,
				downloads.NewManager(cfg.Paths.DownloadsDir),
				staging.NewStager(time.Duration(cfg.Transcription.DownloadTimeoutSeconds)*time.Second, logger),
				audio.NewNormalizer(cfg.FFmpegBinary(), logger),
				speech.NewFacade(cfg, logger),
				logger,
			)
			defer coordinator.Close()

			transcript, err := coordinator.Transcript(runCtx, episode)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), transcript.Text)

			persistTranscript(cfg.Paths.HistoryDB, episode, transcript, logger)
			return nil
		},
	}

	cmd.Flags().StringVar(&episodeID, "id", "", "Episode identifier (feed GUID)")
	cmd.Flags().StringVar(&audioURL, "url", "", "Episode audio URL or local file path")
	cmd.Flags().StringVar(&title, "title", "", "Episode title")
	cmd.Flags().StringVar(&show, "show", "", "Podcast title")
	cmd.Flags().DurationVar(&duration, "duration", 0, "Episode duration hint")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("url")
	return cmd
}

// sweepStaleFiles removes staged files orphaned by crashed runs. The sweep
// only happens under the staging lock; a held lock means another live run
// owns the directory and the sweep is skipped.
func sweepStaleFiles(stagingDir string, maxAge time.Duration, logger *slog.Logger) {
	lock, err := runlock.New(stagingDir)
	if err != nil {
		logger.Warn("stale sweep skipped", logging.Error(err))
		return
	}
	if err := lock.Acquire(); err != nil {
		if !errors.Is(err, runlock.ErrHeld) {
			logger.Warn("stale sweep skipped", logging.Error(err))
		}
		return
	}
	defer func() { _ = lock.Release() }()

	result := staging.CleanStale(stagingDir, maxAge, logger)
	if len(result.Removed) > 0 {
		logger.Info("swept stale staged files", logging.Int("count", len(result.Removed)))
	}
}

// persistTranscript records a successful run in history. Persistence is
// best-effort: the transcript was already delivered on stdout.
func persistTranscript(dbPath string, episode podcast.Episode, transcript *transcriber.Transcript, logger *slog.Logger) {
	store, err := history.Open(dbPath)
	if err != nil {
		logger.Warn("transcript not persisted", logging.Error(err))
		return
	}
	defer store.Close()

	rec := history.Record{
		EpisodeID: episode.ID,
		Title:     episode.Title,
		ShowTitle: episode.ShowTitle,
		Text:      transcript.Text,
		CreatedAt: transcript.CreatedAt,
	}
	if err := store.Upsert(context.Background(), rec); err != nil {
		logger.Warn("transcript not persisted", logging.Error(err))
	}
}

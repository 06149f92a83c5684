package transcriber

import (
	"errors"

	"podscribe/internal/speech"
)

var (
	// ErrEmptyResult reports a backend run that produced no text after
	// whitespace trimming. Empty results are never cached.
	ErrEmptyResult = errors.New("transcription produced no text")
	// ErrCancelled reports that the waiting caller's context ended before
	// the shared pipeline run finished. The run itself keeps going for any
	// remaining waiters.
	ErrCancelled = errors.New("transcription cancelled")
	// ErrStagingFailed wraps failures while obtaining a local audio copy.
	ErrStagingFailed = errors.New("audio staging failed")
	// ErrAudioConversionFailed wraps failures while normalizing the audio
	// format.
	ErrAudioConversionFailed = errors.New("audio conversion failed")
	// ErrBackendFailure wraps unclassified speech backend errors. Backend
	// sentinels from the speech package pass through unwrapped.
	ErrBackendFailure = errors.New("speech backend failure")
)

// speechSentinel reports whether err already carries one of the speech
// package's classifications, which callers match on directly.
func speechSentinel(err error) bool {
	return errors.Is(err, speech.ErrUnsupportedEnvironment) ||
		errors.Is(err, speech.ErrAuthorizationDenied) ||
		errors.Is(err, speech.ErrBackendUnavailable) ||
		errors.Is(err, speech.ErrNoBackendFound)
}

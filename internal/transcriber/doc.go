// Package transcriber coordinates the episode transcription pipeline:
// stage the audio locally, normalize its format, run a speech backend,
// and cache the resulting transcript. Concurrent requests for the same
// episode share one pipeline run.
package transcriber

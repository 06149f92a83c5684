package audio

import (
	"context"
	"fmt"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// wavWriter encodes PCM blocks into a WAV container the speech backends
// accept directly. It is always ready for the next block once the previous
// one has been flushed to the encoder.
type wavWriter struct {
	path  string
	file  *os.File
	enc   *wav.Encoder
	ready chan struct{}
}

func newWAVWriter(path string) (*wavWriter, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output: %w", err)
	}

	w := &wavWriter{
		path:  path,
		file:  file,
		enc:   wav.NewEncoder(file, TargetSampleRate, TargetBitDepth, TargetChannels, 1),
		ready: make(chan struct{}, 1),
	}
	w.ready <- struct{}{}
	return w, nil
}

func (w *wavWriter) Ready() <-chan struct{} {
	return w.ready
}

func (w *wavWriter) Write(block Block) error {
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: TargetChannels, SampleRate: TargetSampleRate},
		Data:           block,
		SourceBitDepth: TargetBitDepth,
	}
	if err := w.enc.Write(buf); err != nil {
		return err
	}
	select {
	case w.ready <- struct{}{}:
	default:
	}
	return nil
}

// Finalize writes the container headers and flushes everything to disk.
// The output file is only trustworthy after Finalize returns nil.
func (w *wavWriter) Finalize(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		w.Abort()
		return err
	}
	if err := w.enc.Close(); err != nil {
		_ = w.file.Close()
		return err
	}
	return w.file.Close()
}

// Abort discards the partial output file.
func (w *wavWriter) Abort() {
	_ = w.file.Close()
	_ = os.Remove(w.path)
}

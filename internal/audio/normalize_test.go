package audio

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"podscribe/internal/logging"
)

func writeWAV(t *testing.T, path string, sampleRate, bitDepth, channels int) {
	t.Helper()
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	enc := wav.NewEncoder(file, sampleRate, bitDepth, channels, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           []int{0, 10, -10, 20},
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close encoder: %v", err)
	}
	if err := file.Close(); err != nil {
		t.Fatalf("close file: %v", err)
	}
}

func TestCompatible(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.wav")
	writeWAV(t, good, TargetSampleRate, TargetBitDepth, TargetChannels)
	if !Compatible(good) {
		t.Error("16 kHz mono 16-bit WAV should be compatible")
	}

	stereo := filepath.Join(dir, "stereo.wav")
	writeWAV(t, stereo, TargetSampleRate, TargetBitDepth, 2)
	if Compatible(stereo) {
		t.Error("stereo WAV must not be compatible")
	}

	hiRate := filepath.Join(dir, "cd.wav")
	writeWAV(t, hiRate, 44100, TargetBitDepth, TargetChannels)
	if Compatible(hiRate) {
		t.Error("44.1 kHz WAV must not be compatible")
	}

	mp3 := filepath.Join(dir, "episode.mp3")
	if err := os.WriteFile(mp3, []byte("not audio"), 0o644); err != nil {
		t.Fatal(err)
	}
	if Compatible(mp3) {
		t.Error("non-WAV extension must not be compatible")
	}

	if Compatible(filepath.Join(dir, "missing.wav")) {
		t.Error("missing file must not be compatible")
	}
}

func TestNormalizeFastPath(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "already.wav")
	writeWAV(t, source, TargetSampleRate, TargetBitDepth, TargetChannels)

	n := NewNormalizer("ffmpeg", logging.NewNop())
	n.WithConverter(func(ctx context.Context, source, dest string) error {
		t.Fatal("converter must not run for compatible sources")
		return nil
	})

	got, err := n.Normalize(context.Background(), source, func(ext string) (string, error) {
		t.Fatal("allocTemp must not run for compatible sources")
		return "", nil
	})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if got != source {
		t.Errorf("Normalize = %q, want source path %q", got, source)
	}
}

func TestNormalizeTranscodesIncompatibleSource(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "cd.wav")
	writeWAV(t, source, 44100, TargetBitDepth, 2)
	dest := filepath.Join(dir, "converted.wav")

	var gotSource, gotDest string
	n := NewNormalizer("ffmpeg", logging.NewNop())
	n.WithConverter(func(ctx context.Context, source, dest string) error {
		gotSource, gotDest = source, dest
		return nil
	})

	got, err := n.Normalize(context.Background(), source, func(ext string) (string, error) {
		if ext != ".wav" {
			t.Errorf("allocTemp ext = %q, want .wav", ext)
		}
		return dest, nil
	})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if got != dest {
		t.Errorf("Normalize = %q, want %q", got, dest)
	}
	if gotSource != source || gotDest != dest {
		t.Errorf("converter saw %q -> %q, want %q -> %q", gotSource, gotDest, source, dest)
	}
}

func TestNormalizeWrapsConverterFailure(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "episode.mp3")
	if err := os.WriteFile(source, []byte("not audio"), 0o644); err != nil {
		t.Fatal(err)
	}

	boom := errors.New("no audio track")
	n := NewNormalizer("ffmpeg", logging.NewNop())
	n.WithConverter(func(ctx context.Context, source, dest string) error {
		return boom
	})

	_, err := n.Normalize(context.Background(), source, func(ext string) (string, error) {
		return filepath.Join(dir, "out.wav"), nil
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Normalize err = %v, want wrapped converter error", err)
	}
	if !strings.Contains(err.Error(), source) {
		t.Errorf("error %q should name the source file", err)
	}
}

func TestNormalizePropagatesAllocFailure(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "episode.mp3")
	if err := os.WriteFile(source, []byte("not audio"), 0o644); err != nil {
		t.Fatal(err)
	}

	boom := errors.New("staging dir gone")
	n := NewNormalizer("ffmpeg", logging.NewNop())
	n.WithConverter(func(ctx context.Context, source, dest string) error {
		t.Fatal("converter must not run when allocation fails")
		return nil
	})

	if _, err := n.Normalize(context.Background(), source, func(ext string) (string, error) {
		return "", boom
	}); !errors.Is(err, boom) {
		t.Fatalf("Normalize err = %v, want allocation error", err)
	}
}

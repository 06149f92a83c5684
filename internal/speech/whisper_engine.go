//go:build whisper_cpp

package speech

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	whisperpkg "github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"
	"github.com/go-audio/wav"
)

// whisperBackend runs transcription in-process through the whisper.cpp
// bindings. The model is loaded per call and released as soon as the
// transcript is produced, so memory is only held while work is active.
type whisperBackend struct {
	modelPath string
	lang      string
}

func newWhisperBackend(modelPath, lang string) (Backend, error) {
	if strings.TrimSpace(modelPath) == "" {
		return nil, fmt.Errorf("%w: no whisper model configured", ErrBackendUnavailable)
	}
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("%w: whisper model: %w", ErrBackendUnavailable, err)
	}
	if englishOnlyModel(modelPath) && lang != "en" {
		return nil, fmt.Errorf("%w: model %s is English-only, locale needs %q",
			ErrBackendUnavailable, filepath.Base(modelPath), lang)
	}
	return &whisperBackend{modelPath: modelPath, lang: lang}, nil
}

func (b *whisperBackend) Name() string { return "whisper.cpp" }

func (b *whisperBackend) Transcribe(ctx context.Context, path string, meta Metadata) (string, error) {
	samples, err := readSamples(path)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	model, err := whisperpkg.New(b.modelPath)
	if err != nil {
		return "", fmt.Errorf("load whisper model: %w", err)
	}
	defer model.Close()

	wctx, err := model.NewContext()
	if err != nil {
		return "", fmt.Errorf("create whisper context: %w", err)
	}
	wctx.SetThreads(uint(runtime.NumCPU()))
	if err := wctx.SetLanguage(b.lang); err != nil {
		return "", fmt.Errorf("set language %q: %w", b.lang, err)
	}

	if err := wctx.Process(samples, nil, nil, nil); err != nil {
		return "", fmt.Errorf("process audio: %w", err)
	}

	var parts []string
	for {
		seg, err := wctx.NextSegment()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return "", fmt.Errorf("read segment: %w", err)
		}
		if text := strings.TrimSpace(seg.Text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " "), nil
}

// englishOnlyModel recognizes the ggml ".en" model naming convention
// (ggml-base.en.bin and friends).
func englishOnlyModel(modelPath string) bool {
	name := filepath.Base(modelPath)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	return strings.HasSuffix(name, ".en")
}

// readSamples decodes a 16 kHz mono WAV file into the float32 PCM the
// bindings expect.
func readSamples(path string) ([]float32, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open audio: %w", err)
	}
	defer file.Close()

	dec := wav.NewDecoder(file)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("decode audio: %s is not a valid WAV file", path)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode audio: %w", err)
	}
	if buf == nil {
		return nil, fmt.Errorf("decode audio: %s holds no samples", path)
	}

	bitDepth := buf.SourceBitDepth
	if bitDepth <= 0 {
		bitDepth = 16
	}
	scale := float32(int(1) << (bitDepth - 1))
	samples := make([]float32, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = float32(v) / scale
	}
	return samples, nil
}

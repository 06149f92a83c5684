package audio

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"

	"podscribe/internal/logging"
)

// Target format accepted by every speech backend: uncompressed mono PCM at
// the rate whisper-family models are trained on.
const (
	TargetSampleRate = 16000
	TargetBitDepth   = 16
	TargetChannels   = 1
)

// blockSamples is the conversion block size: 4096 samples, a quarter
// second of audio and 8 KiB per block.
const blockSamples = 4096

// Normalizer guarantees a speech-backend-compatible local audio file.
// Compatible files are returned untouched; everything else is transcoded.
type Normalizer struct {
	ffmpeg  string
	logger  *slog.Logger
	convert func(ctx context.Context, source, dest string) error
}

// NewNormalizer constructs a normalizer decoding through the given ffmpeg
// binary.
func NewNormalizer(ffmpegBinary string, logger *slog.Logger) *Normalizer {
	n := &Normalizer{
		ffmpeg: ffmpegBinary,
		logger: logging.NewComponentLogger(logger, "normalizer"),
	}
	n.convert = n.convertStreaming
	return n
}

// WithConverter sets a custom conversion implementation (for testing).
func (n *Normalizer) WithConverter(fn func(ctx context.Context, source, dest string) error) {
	n.convert = fn
}

// Normalize returns a path to audio acceptable to the speech backends.
// allocTemp allocates a tracked destination path with the given extension;
// it is only invoked when transcoding is required, so already-compatible
// sources cost nothing.
func (n *Normalizer) Normalize(ctx context.Context, source string, allocTemp func(ext string) (string, error)) (string, error) {
	if Compatible(source) {
		n.logger.Debug("audio already compatible", logging.String("path", source))
		return source, nil
	}

	dest, err := allocTemp(".wav")
	if err != nil {
		return "", err
	}
	if err := n.convert(ctx, source, dest); err != nil {
		return "", fmt.Errorf("convert %s: %w", source, err)
	}

	n.logger.Info("transcoded audio",
		logging.String("source", source),
		logging.String("path", dest),
	)
	return dest, nil
}

// Compatible reports whether the file can be fed to the backends as-is:
// a WAV container already holding 16 kHz mono 16-bit linear PCM.
func Compatible(path string) bool {
	if strings.ToLower(filepath.Ext(path)) != ".wav" {
		return false
	}

	file, err := os.Open(path)
	if err != nil {
		return false
	}
	defer file.Close()

	dec := wav.NewDecoder(file)
	dec.ReadInfo()
	return dec.WavAudioFormat == 1 &&
		int(dec.NumChans) == TargetChannels &&
		int(dec.SampleRate) == TargetSampleRate &&
		int(dec.BitDepth) == TargetBitDepth
}

func (n *Normalizer) convertStreaming(ctx context.Context, source, dest string) error {
	reader, err := newFFmpegReader(ctx, n.ffmpeg, source, blockSamples)
	if err != nil {
		return err
	}

	writer, err := newWAVWriter(dest)
	if err != nil {
		_ = reader.Close()
		return err
	}

	return NewConversion(reader, writer).Run(ctx)
}

package audio

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
)

// ffmpegReader streams the first audio track of a source file through an
// ffmpeg subprocess, decoded to 16 kHz mono s16le on stdout. Blocks are
// pulled on demand so decode speed is governed by the consumer.
type ffmpegReader struct {
	cmd    *exec.Cmd
	stdout io.ReadCloser
	stderr bytes.Buffer
	buf    []byte

	waited  bool
	waitErr error
}

func newFFmpegReader(ctx context.Context, binary, source string, blockSamples int) (*ffmpegReader, error) {
	args := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-nostdin",
		"-i", source,
		"-map", "0:a:0",
		"-vn",
		"-sn",
		"-dn",
		"-ac", strconv.Itoa(TargetChannels),
		"-ar", strconv.Itoa(TargetSampleRate),
		"-f", "s16le",
		"-",
	}

	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	reader := &ffmpegReader{cmd: cmd, buf: make([]byte, blockSamples*2)}
	cmd.Stderr = &reader.stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("ffmpeg stdout pipe: %w", err)
	}
	reader.stdout = stdout

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start ffmpeg: %w", err)
	}
	return reader, nil
}

// Next returns the next block of decoded samples, io.EOF once the source is
// exhausted, or a decode error carrying ffmpeg's stderr. A source without
// an audio track fails here: the stream map matches nothing and ffmpeg
// exits with a diagnostic.
func (r *ffmpegReader) Next(ctx context.Context) (Block, error) {
	if r.waited {
		return nil, io.EOF
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	n, err := io.ReadFull(r.stdout, r.buf)
	if n > 0 {
		block := make(Block, n/2)
		for i := range block {
			block[i] = int(int16(binary.LittleEndian.Uint16(r.buf[2*i:])))
		}
		if err == nil || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return block, nil
		}
		return nil, err
	}

	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		if werr := r.wait(); werr != nil {
			return nil, werr
		}
		return nil, io.EOF
	}
	return nil, err
}

// Close tears the subprocess down. Safe after a successful drain and after
// failures; a still-running ffmpeg is killed and reaped.
func (r *ffmpegReader) Close() error {
	if !r.waited {
		if r.cmd.Process != nil {
			_ = r.cmd.Process.Kill()
		}
		_ = r.wait()
	}
	return nil
}

func (r *ffmpegReader) wait() error {
	if r.waited {
		return r.waitErr
	}
	r.waited = true
	if err := r.cmd.Wait(); err != nil {
		if msg := strings.TrimSpace(r.stderr.String()); msg != "" {
			r.waitErr = fmt.Errorf("ffmpeg decode: %w: %s", err, msg)
		} else {
			r.waitErr = fmt.Errorf("ffmpeg decode: %w", err)
		}
	}
	return r.waitErr
}

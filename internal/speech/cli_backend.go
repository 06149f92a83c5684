package speech

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"podscribe/internal/deps"
)

type cliRunner func(ctx context.Context, binary string, args ...string) error

// cliBackend shells out to a whisper.cpp command-line build found on
// PATH. It exists for hosts that install the tool but run a binary of
// this program compiled without the in-process bindings.
type cliBackend struct {
	binary string
	model  string
	lang   string
	run    cliRunner
}

func newCLIBackend(binary, model, lang string) (Backend, error) {
	if strings.TrimSpace(binary) == "" {
		binary = "whisper-cli"
	}
	resolved, err := deps.LookBinary(binary)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBackendUnavailable, err)
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("%w: no whisper model configured", ErrBackendUnavailable)
	}
	if _, err := os.Stat(model); err != nil {
		return nil, fmt.Errorf("%w: whisper model: %w", ErrBackendUnavailable, err)
	}
	return &cliBackend{binary: resolved, model: model, lang: lang, run: runCLI}, nil
}

func (b *cliBackend) Name() string { return "whisper-cli" }

func (b *cliBackend) Transcribe(ctx context.Context, path string, meta Metadata) (string, error) {
	// -of takes the output stem; -otxt writes <stem>.txt next to the audio.
	stem := strings.TrimSuffix(path, filepath.Ext(path))
	args := []string{
		"-m", b.model,
		"-l", b.lang,
		"-np",
		"-otxt",
		"-of", stem,
		"-f", path,
	}
	if err := b.run(ctx, b.binary, args...); err != nil {
		return "", fmt.Errorf("whisper-cli: %w", err)
	}

	out := stem + ".txt"
	defer os.Remove(out)
	text, err := os.ReadFile(out)
	if err != nil {
		return "", fmt.Errorf("read whisper-cli output: %w", err)
	}
	return string(text), nil
}

func runCLI(ctx context.Context, binary string, args ...string) error {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}

// Package deps probes the external resources podscribe relies on: binaries
// looked up on PATH and files expected on disk. Probes never fail hard; an
// absent dependency is reported as unavailable so callers can downgrade.
package deps

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"podscribe/internal/config"
)

// Requirement defines an external dependency podscribe relies on.
type Requirement struct {
	Name        string
	Command     string
	FilePath    string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Requirements builds the dependency list for the given configuration.
func Requirements(cfg *config.Config) []Requirement {
	reqs := []Requirement{
		{
			Name:        "ffmpeg",
			Command:     cfg.FFmpegBinary(),
			Description: "decodes compressed episode audio to PCM",
		},
		{
			Name:        "whisper-cli",
			Command:     cfg.Speech.WhisperCLI,
			Description: "legacy on-device transcription engine",
			Optional:    true,
		},
	}
	reqs = append(reqs, Requirement{
		Name:        "whisper model",
		FilePath:    cfg.Speech.WhisperModel,
		Description: "ggml model for on-device engines",
		Optional:    true,
	})
	return reqs
}

// Check evaluates the provided requirements and reports availability.
func Check(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		status := Status{
			Name:        req.Name,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		switch {
		case strings.TrimSpace(req.Command) != "":
			if _, err := exec.LookPath(strings.TrimSpace(req.Command)); err != nil {
				status.Detail = fmt.Sprintf("binary %q not found", req.Command)
			} else {
				status.Available = true
			}
		case strings.TrimSpace(req.FilePath) != "":
			if info, err := os.Stat(req.FilePath); err != nil || info.IsDir() {
				status.Detail = fmt.Sprintf("file %q not found", req.FilePath)
			} else {
				status.Available = true
			}
		default:
			status.Detail = "not configured"
		}
		results = append(results, status)
	}
	return results
}

// LookBinary resolves a binary on PATH, reporting a descriptive error when
// it is missing. Used by backend capability probes.
func LookBinary(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("binary name not configured")
	}
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("binary %q not found on PATH: %w", name, err)
	}
	return path, nil
}

package deps

import (
	"os"
	"path/filepath"
	"testing"

	"podscribe/internal/config"
)

func stubBinary(t *testing.T, name string) {
	t.Helper()
	binDir := t.TempDir()
	target := filepath.Join(binDir, name)
	if err := os.WriteFile(target, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", name, err)
	}
	t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

func TestCheckBinaryAvailability(t *testing.T) {
	stubBinary(t, "podscribe-test-ffmpeg")

	statuses := Check([]Requirement{
		{Name: "ffmpeg", Command: "podscribe-test-ffmpeg"},
		{Name: "missing", Command: "podscribe-test-definitely-absent"},
	})

	if !statuses[0].Available {
		t.Errorf("expected stubbed binary available: %+v", statuses[0])
	}
	if statuses[1].Available {
		t.Errorf("expected missing binary unavailable: %+v", statuses[1])
	}
	if statuses[1].Detail == "" {
		t.Error("expected detail for missing binary")
	}
}

func TestCheckFileRequirement(t *testing.T) {
	model := filepath.Join(t.TempDir(), "model.bin")
	if err := os.WriteFile(model, []byte("x"), 0o644); err != nil {
		t.Fatalf("write model: %v", err)
	}

	statuses := Check([]Requirement{
		{Name: "model", FilePath: model},
		{Name: "absent", FilePath: model + ".missing"},
		{Name: "unset"},
	})

	if !statuses[0].Available {
		t.Errorf("expected model available: %+v", statuses[0])
	}
	if statuses[1].Available || statuses[2].Available {
		t.Error("expected absent and unset requirements to be unavailable")
	}
}

func TestRequirementsCoverPipeline(t *testing.T) {
	cfg := config.Default()
	reqs := Requirements(&cfg)

	names := make(map[string]bool, len(reqs))
	for _, r := range reqs {
		names[r.Name] = true
	}
	for _, want := range []string{"ffmpeg", "whisper-cli", "whisper model"} {
		if !names[want] {
			t.Errorf("missing requirement %q", want)
		}
	}
}

func TestLookBinary(t *testing.T) {
	stubBinary(t, "podscribe-test-tool")

	if _, err := LookBinary("podscribe-test-tool"); err != nil {
		t.Errorf("LookBinary stub: %v", err)
	}
	if _, err := LookBinary("podscribe-test-never-exists"); err == nil {
		t.Error("expected error for missing binary")
	}
	if _, err := LookBinary(" "); err == nil {
		t.Error("expected error for blank name")
	}
}

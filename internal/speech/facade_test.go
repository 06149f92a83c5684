package speech

import (
	"context"
	"errors"
	"testing"

	"podscribe/internal/logging"
)

type staticBackend struct {
	name  string
	text  string
	err   error
	calls int
}

func (b *staticBackend) Name() string { return b.name }

func (b *staticBackend) Transcribe(ctx context.Context, path string, meta Metadata) (string, error) {
	b.calls++
	return b.text, b.err
}

func TestFacadeDowngradesToNextRank(t *testing.T) {
	probes := make(map[string]int)
	fallback := &staticBackend{name: "second", text: "transcript"}

	facade := NewFacadeWithCandidates(logging.NewNop(), []Candidate{
		{Name: "first", Probe: func() (Backend, error) {
			probes["first"]++
			return nil, ErrUnsupportedEnvironment
		}},
		{Name: "second", Probe: func() (Backend, error) {
			probes["second"]++
			return fallback, nil
		}},
	})

	for i := 0; i < 3; i++ {
		got, err := facade.Transcribe(context.Background(), "audio.wav", Metadata{})
		if err != nil {
			t.Fatalf("Transcribe: %v", err)
		}
		if got != "transcript" {
			t.Fatalf("Transcribe = %q, want transcript", got)
		}
	}

	if probes["first"] != 1 || probes["second"] != 1 {
		t.Errorf("probe counts = %v, want each exactly once", probes)
	}
	if fallback.calls != 3 {
		t.Errorf("backend calls = %d, want 3", fallback.calls)
	}
}

func TestFacadeStopsProbingAtFirstViableRank(t *testing.T) {
	first := &staticBackend{name: "first", text: "ok"}
	facade := NewFacadeWithCandidates(logging.NewNop(), []Candidate{
		{Name: "first", Probe: func() (Backend, error) { return first, nil }},
		{Name: "second", Probe: func() (Backend, error) {
			t.Fatal("lower rank probed although a higher one was viable")
			return nil, nil
		}},
	})

	backend, err := facade.Select()
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if backend.Name() != "first" {
		t.Errorf("selected %q, want first", backend.Name())
	}
}

func TestFacadeReportsNoBackendFound(t *testing.T) {
	probes := 0
	facade := NewFacadeWithCandidates(logging.NewNop(), []Candidate{
		{Name: "first", Probe: func() (Backend, error) {
			probes++
			return nil, ErrBackendUnavailable
		}},
		{Name: "second", Probe: func() (Backend, error) {
			probes++
			return nil, ErrBackendUnavailable
		}},
	})

	if _, err := facade.Transcribe(context.Background(), "audio.wav", Metadata{}); !errors.Is(err, ErrNoBackendFound) {
		t.Fatalf("Transcribe err = %v, want ErrNoBackendFound", err)
	}
	if _, err := facade.Select(); !errors.Is(err, ErrNoBackendFound) {
		t.Fatalf("Select err = %v, want ErrNoBackendFound", err)
	}
	if probes != 2 {
		t.Errorf("probes = %d, want 2 (selection must not re-run)", probes)
	}
}

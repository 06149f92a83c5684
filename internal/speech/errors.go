package speech

import "errors"

var (
	// ErrUnsupportedEnvironment reports a backend that cannot run in this
	// build or on this host at all.
	ErrUnsupportedEnvironment = errors.New("unsupported environment")
	// ErrAuthorizationDenied reports missing or rejected credentials.
	ErrAuthorizationDenied = errors.New("authorization denied")
	// ErrBackendUnavailable reports a backend that exists but cannot serve
	// right now (missing binary, missing model, wrong locale).
	ErrBackendUnavailable = errors.New("speech backend unavailable")
	// ErrNoBackendFound reports that every ranked backend was unavailable.
	ErrNoBackendFound = errors.New("no speech backend found")
)

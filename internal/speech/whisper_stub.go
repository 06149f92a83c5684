//go:build !whisper_cpp

package speech

import "fmt"

// Builds without the whisper_cpp tag carry no cgo bindings; the facade
// downgrades to the next ranked backend.
func newWhisperBackend(modelPath, lang string) (Backend, error) {
	return nil, fmt.Errorf("%w: built without whisper_cpp support", ErrUnsupportedEnvironment)
}

// Package speech turns normalized audio files into transcript text. A
// facade ranks the available backends (on-device whisper.cpp, legacy
// whisper CLI, cloud speech API) and selects the best viable one exactly
// once per process.
package speech

// Package audio prepares episode audio for speech recognition. It decides
// whether a file is already acceptable to the backends and, when it is not,
// transcodes it to 16 kHz mono 16-bit PCM WAV through a bounded
// producer/consumer loop that never decodes faster than the writer can
// absorb.
package audio

// Package history persists completed transcripts in a local SQLite
// database so past episodes can be listed and re-read without another
// pipeline run.
package history

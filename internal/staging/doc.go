// Package staging manages the working area for episode audio: unique
// temporary file allocation with guaranteed cleanup, downloading of remote
// episode audio, and sweeping of files orphaned by crashed runs.
package staging

// Package config loads, validates, and normalizes podscribe configuration
// from TOML. All path fields are expanded (including ~) and made absolute
// during Load so the rest of the application never handles relative paths.
package config

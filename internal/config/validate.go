package config

import (
	"fmt"
	"strings"
)

// Validate reports configuration values that cannot work at runtime.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Paths.StagingDir) == "" {
		return fmt.Errorf("config: staging_dir is required")
	}
	if strings.TrimSpace(c.Paths.HistoryDB) == "" {
		return fmt.Errorf("config: history_db is required")
	}

	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "console", "json":
	default:
		return fmt.Errorf("config: logging format must be console or json, got %q", c.Logging.Format)
	}

	if c.Transcription.DownloadTimeoutSeconds <= 0 {
		return fmt.Errorf("config: download_timeout_seconds must be positive")
	}
	if c.Transcription.StagingMaxAgeHours <= 0 {
		return fmt.Errorf("config: staging_max_age_hours must be positive")
	}

	if strings.TrimSpace(c.Speech.CloudAPIKey) != "" && strings.TrimSpace(c.Speech.CloudBaseURL) == "" {
		return fmt.Errorf("config: cloud_base_url is required when cloud_api_key is set")
	}

	return nil
}

package config

import "strings"

// normalize expands every path field and fills gaps with defaults so the
// rest of the application only ever sees absolute paths.
func (c *Config) normalize() error {
	defaults := Default()

	if strings.TrimSpace(c.Paths.StagingDir) == "" {
		c.Paths.StagingDir = defaults.Paths.StagingDir
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaults.Paths.LogDir
	}
	if strings.TrimSpace(c.Paths.HistoryDB) == "" {
		c.Paths.HistoryDB = defaults.Paths.HistoryDB
	}

	for _, field := range []*string{
		&c.Paths.StagingDir,
		&c.Paths.DownloadsDir,
		&c.Paths.LogDir,
		&c.Paths.HistoryDB,
		&c.Speech.WhisperModel,
	} {
		if strings.TrimSpace(*field) == "" {
			continue
		}
		expanded, err := expandPath(*field)
		if err != nil {
			return err
		}
		*field = expanded
	}

	if c.Transcription.DownloadTimeoutSeconds <= 0 {
		c.Transcription.DownloadTimeoutSeconds = defaults.Transcription.DownloadTimeoutSeconds
	}
	if c.Transcription.StagingMaxAgeHours <= 0 {
		c.Transcription.StagingMaxAgeHours = defaults.Transcription.StagingMaxAgeHours
	}
	if strings.TrimSpace(c.Speech.Locale) == "" {
		c.Speech.Locale = defaults.Speech.Locale
	}
	if strings.TrimSpace(c.Speech.WhisperCLI) == "" {
		c.Speech.WhisperCLI = defaults.Speech.WhisperCLI
	}
	if strings.TrimSpace(c.Speech.CloudModel) == "" {
		c.Speech.CloudModel = defaults.Speech.CloudModel
	}
	if c.Speech.CloudTimeoutSeconds <= 0 {
		c.Speech.CloudTimeoutSeconds = defaults.Speech.CloudTimeoutSeconds
	}
	if strings.TrimSpace(c.Logging.Format) == "" {
		c.Logging.Format = defaults.Logging.Format
	}
	if strings.TrimSpace(c.Logging.Level) == "" {
		c.Logging.Level = defaults.Logging.Level
	}

	return nil
}

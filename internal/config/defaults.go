package config

const (
	defaultStagingDir             = "~/.local/share/podscribe/staging"
	defaultDownloadsDir           = "~/.local/share/podscribe/downloads"
	defaultLogDir                 = "~/.local/share/podscribe/logs"
	defaultHistoryDB              = "~/.local/share/podscribe/history.db"
	defaultLogFormat              = "console"
	defaultLogLevel               = "info"
	defaultDownloadTimeoutSeconds = 300
	defaultStagingMaxAgeHours     = 24
	defaultLocale                 = "en-US"
	defaultWhisperCLI             = "whisper-cli"
	defaultCloudBaseURL           = "https://api.openai.com/v1"
	defaultCloudModel             = "whisper-1"
	defaultCloudTimeoutSeconds    = 600
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StagingDir:   defaultStagingDir,
			DownloadsDir: defaultDownloadsDir,
			LogDir:       defaultLogDir,
			HistoryDB:    defaultHistoryDB,
		},
		Transcription: Transcription{
			DownloadTimeoutSeconds: defaultDownloadTimeoutSeconds,
			StagingMaxAgeHours:     defaultStagingMaxAgeHours,
		},
		Speech: Speech{
			Locale:              defaultLocale,
			WhisperCLI:          defaultWhisperCLI,
			CloudBaseURL:        defaultCloudBaseURL,
			CloudModel:          defaultCloudModel,
			CloudTimeoutSeconds: defaultCloudTimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

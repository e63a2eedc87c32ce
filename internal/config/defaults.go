package config

const (
	defaultLogLevel         = "info"
	defaultLogFormat        = "console"
	defaultCompressionLevel = 5
	defaultHistoryPath      = "~/.local/share/photozip/history.db"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
		Archive: Archive{
			CompressionLevel: defaultCompressionLevel,
		},
		History: History{
			Enabled: true,
			Path:    defaultHistoryPath,
		},
	}
}

package config

// Default configuration constants
const (
	// Covers cache defaults
	defaultCoversMaxMB    = 512 // MB of cover art kept on disk
	defaultMinFreeSpaceMB = 200 // refuse cache writes below this much free space

	// Logging defaults
	defaultMaxLogSizeMB  = 50 // MB
	defaultMaxBackups    = 3  // backup files
	defaultMaxLogAgeDays = 7  // days
)

// getDefaultLogDir returns the default log directory, falls back to empty string on error
func getDefaultLogDir() string {
	logDir, err := GetLogDir()
	if err != nil {
		return ""
	}
	return logDir
}

// getDefaultMusicDir returns the default music library root, falls back to empty string on error
func getDefaultMusicDir() string {
	dir, err := GetDefaultMusicDir()
	if err != nil {
		return ""
	}
	return dir
}

// DefaultConfig returns the default configuration values for calliope.
func DefaultConfig() *Config {
	return &Config{
		Library: LibraryConfig{
			MusicDir: getDefaultMusicDir(),
		},
		Covers: CoversConfig{
			Download:       true,
			MaxSizeMB:      defaultCoversMaxMB,
			MinFreeSpaceMB: defaultMinFreeSpaceMB,
		},
		Logging: LoggingConfig{
			Level:         "info",
			Format:        "console",
			MaxSize:       defaultMaxLogSizeMB,
			MaxBackups:    defaultMaxBackups,
			MaxAge:        defaultMaxLogAgeDays,
			Compress:      true,
			LogDir:        getDefaultLogDir(),
			EnableFileLog: false,
		},
	}
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// File permission constants
const (
	dirPerm  = 0755 // Standard directory permissions (rwxr-xr-x)
	filePerm = 0644 // Standard file permissions (rw-r--r--)
)

// Config represents the complete configuration for calliope.
type Config struct {
	Library LibraryConfig `mapstructure:"library" yaml:"library"`
	Covers  CoversConfig  `mapstructure:"covers" yaml:"covers"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// LibraryConfig holds music library configuration.
type LibraryConfig struct {
	MusicDir string `mapstructure:"music_dir" yaml:"music_dir"`
}

// CoversConfig holds album-cover cache configuration.
type CoversConfig struct {
	Download bool `mapstructure:"download" yaml:"download"`
	// MaxSizeMB caps the on-disk size of the cover cache.
	MaxSizeMB int `mapstructure:"max_size_mb" yaml:"max_size_mb"`
	// MinFreeSpaceMB stops cache writes when the volume holding the cache
	// has less than this much space available.
	MinFreeSpaceMB int `mapstructure:"min_free_space_mb" yaml:"min_free_space_mb"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`
	Format     string `mapstructure:"format" yaml:"format"`
	MaxSize    int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge     int    `mapstructure:"max_age" yaml:"max_age"`
	Compress   bool   `mapstructure:"compress" yaml:"compress"`

	// File output configuration
	LogDir        string `mapstructure:"log_dir" yaml:"log_dir"`
	EnableFileLog bool   `mapstructure:"enable_file_log" yaml:"enable_file_log"`
}

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool
}

// NewManager creates a new configuration manager.
func NewManager() (*Manager, error) {
	v := viper.New()

	// Will find config.toml, config.yaml, config.json, etc.
	v.SetConfigName("config")

	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config directory: %w", err)
	}
	v.AddConfigPath(configDir)
	v.AddConfigPath(".") // Current directory for development

	v.SetEnvPrefix("CALLIOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Bind specific environment variables
	bindings := map[string]string{
		"library.music_dir":        "LIBRARY_MUSIC_DIR",
		"covers.download":          "COVERS_DOWNLOAD",
		"covers.max_size_mb":       "COVERS_MAX_SIZE_MB",
		"covers.min_free_space_mb": "COVERS_MIN_FREE_SPACE_MB",
		"logging.level":            "LOGGING_LEVEL",
		"logging.format":           "LOGGING_FORMAT",
		"logging.max_size":         "LOGGING_MAX_SIZE",
		"logging.max_backups":      "LOGGING_MAX_BACKUPS",
		"logging.max_age":          "LOGGING_MAX_AGE",
		"logging.compress":         "LOGGING_COMPRESS",
		"logging.log_dir":          "LOGGING_LOG_DIR",
		"logging.enable_file_log":  "LOGGING_ENABLE_FILE_LOG",
	}

	for key, env := range bindings {
		if err := v.BindEnv(key, "CALLIOPE_"+env); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable %s: %w", env, err)
		}
	}

	return &Manager{
		viper:     v,
		callbacks: make([]func(*Config), 0),
	}, nil
}

// Load loads the configuration from file and environment variables.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to ensure directories: %w", err)
	}

	m.setDefaults()

	// Read config file if it exists
	if err := m.viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			// Config file not found, create default one
			if err := m.createDefaultConfig(); err != nil {
				return fmt.Errorf("failed to create default config: %w", err)
			}
		} else {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config, err := m.unmarshal()
	if err != nil {
		return err
	}

	m.config = config
	return nil
}

// Get returns the current configuration (thread-safe).
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	// Return a copy to prevent external modification
	configCopy := *m.config
	return &configCopy
}

// Watch starts watching the config file for changes and reloads automatically.
func (m *Manager) Watch() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.watching {
		return nil // Already watching
	}

	m.viper.WatchConfig()
	m.viper.OnConfigChange(func(_ fsnotify.Event) {
		m.handleConfigChange()
	})

	m.watching = true
	return nil
}

// handleConfigChange re-reads the config file and notifies registered
// callbacks with the new configuration.
func (m *Manager) handleConfigChange() {
	if err := m.reload(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to reload config: %v\n", err)
		return
	}

	m.mu.RLock()
	config := m.config
	callbacks := make([]func(*Config), len(m.callbacks))
	copy(callbacks, m.callbacks)
	m.mu.RUnlock()

	for _, callback := range callbacks {
		callback(config)
	}
}

// OnConfigChange registers a callback function to be called when config changes.
func (m *Manager) OnConfigChange(callback func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.callbacks = append(m.callbacks, callback)
}

// reload re-reads and re-applies the configuration.
func (m *Manager) reload() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.viper.ReadInConfig(); err != nil {
		return err
	}

	config, err := m.unmarshal()
	if err != nil {
		return err
	}

	m.config = config
	return nil
}

// unmarshal decodes viper state into a Config and fills derived paths.
func (m *Manager) unmarshal() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Library.MusicDir == "" {
		musicDir, err := GetDefaultMusicDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get default music directory: %w", err)
		}
		config.Library.MusicDir = musicDir
	}

	if config.Logging.LogDir == "" {
		logDir, err := GetLogDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get log directory: %w", err)
		}
		config.Logging.LogDir = logDir
	}

	return config, nil
}

// setDefaults sets default configuration values in Viper.
func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.viper.SetDefault("library.music_dir", defaults.Library.MusicDir)

	m.viper.SetDefault("covers.download", defaults.Covers.Download)
	m.viper.SetDefault("covers.max_size_mb", defaults.Covers.MaxSizeMB)
	m.viper.SetDefault("covers.min_free_space_mb", defaults.Covers.MinFreeSpaceMB)

	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
	m.viper.SetDefault("logging.max_size", defaults.Logging.MaxSize)
	m.viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
	m.viper.SetDefault("logging.max_age", defaults.Logging.MaxAge)
	m.viper.SetDefault("logging.compress", defaults.Logging.Compress)
	m.viper.SetDefault("logging.log_dir", defaults.Logging.LogDir)
	m.viper.SetDefault("logging.enable_file_log", defaults.Logging.EnableFileLog)
}

// createDefaultConfig writes the default config file and its JSON schema on
// first run.
func (m *Manager) createDefaultConfig() error {
	configFile, err := GetConfigFile()
	if err != nil {
		return fmt.Errorf("failed to get config file path: %w", err)
	}

	if err := m.viper.SafeWriteConfigAs(configFile); err != nil {
		var alreadyExists viper.ConfigFileAlreadyExistsError
		if !errors.As(err, &alreadyExists) {
			return fmt.Errorf("failed to write default config: %w", err)
		}
	}

	if err := GenerateSchemaFile(); err != nil {
		return fmt.Errorf("failed to generate config schema: %w", err)
	}

	m.viper.SetConfigFile(configFile)
	return m.viper.ReadInConfig()
}

// Package-level manager for callers that do not need their own instance.
var (
	defaultManager     *Manager
	defaultManagerOnce sync.Once
	defaultManagerErr  error
)

// Init loads the package-level configuration manager.
func Init() error {
	defaultManagerOnce.Do(func() {
		m, err := NewManager()
		if err != nil {
			defaultManagerErr = err
			return
		}
		if err := m.Load(); err != nil {
			defaultManagerErr = err
			return
		}
		defaultManager = m
	})
	return defaultManagerErr
}

// Get returns the current package-level configuration. Init must have
// succeeded first; otherwise defaults are returned.
func Get() *Config {
	if defaultManager == nil {
		return DefaultConfig()
	}
	return defaultManager.Get()
}

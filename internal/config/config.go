package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/focustrack/internal/constants"
)

// Config is the persisted configuration, stored as a single JSON object.
type Config struct {
	ReminderInterval    int  `json:"reminder_interval"`    // minutes
	NotificationTimeout int  `json:"notification_timeout"` // milliseconds
	AutoStart           bool `json:"auto_start"`
	LogTasks            bool `json:"log_tasks"`
}

// Default returns the configuration written on first run.
func Default() Config {
	return Config{
		ReminderInterval:    constants.DefaultReminderIntervalMin,
		NotificationTimeout: constants.DefaultNotificationTimeout,
		AutoStart:           constants.DefaultAutoStart,
		LogTasks:            constants.DefaultLogTasks,
	}
}

// Manager reads and writes the config file. The session loop re-reads the
// file on every reminder check, so interval changes take effect immediately.
type Manager struct {
	path string
}

// NewManager creates a Manager for the given config file path.
func NewManager(path string) *Manager {
	return &Manager{path: path}
}

// Path returns the config file path.
func (m *Manager) Path() string {
	return m.path
}

// Load reads the configuration. A missing or corrupt file is replaced with
// defaults rather than treated as an error; the session must keep running.
func (m *Manager) Load() (Config, error) {
	data, err := os.ReadFile(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := Default()
			return cfg, m.Save(cfg)
		}
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		cfg = Default()
		return cfg, m.Save(cfg)
	}

	if cfg.ReminderInterval < 1 {
		cfg.ReminderInterval = constants.DefaultReminderIntervalMin
	}
	if cfg.NotificationTimeout <= 0 {
		cfg.NotificationTimeout = constants.DefaultNotificationTimeout
	}

	return cfg, nil
}

// Save writes the configuration, creating the config directory if needed.
func (m *Manager) Save(cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(m.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(m.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// DefaultPath returns <user config dir>/focus-tracker/config.json.
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}
	return filepath.Join(configDir, constants.ConfigDirName, constants.ConfigFileName), nil
}

// DefaultDataDir returns the data root, honoring XDG_DATA_HOME and falling
// back to ~/.local/share.
func DefaultDataDir() (string, error) {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, constants.DataDirName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home dir: %w", err)
	}
	return filepath.Join(home, ".local", "share", constants.DataDirName), nil
}

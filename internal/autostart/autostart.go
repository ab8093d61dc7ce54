// Package autostart installs the XDG autostart entry so the tracker launches
// in a terminal on login.
package autostart

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/focustrack/internal/constants"
)

const entryTemplate = `[Desktop Entry]
Type=Application
Exec=gnome-terminal -- %s
Hidden=false
NoDisplay=false
X-GNOME-Autostart-enabled=true
Name=Focus Tracker
Comment=Start Focus Tracker on boot
`

// Install writes the desktop entry pointing at execPath and returns the entry
// file path.
func Install(execPath string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}
	return InstallAt(filepath.Join(configDir, "autostart"), execPath)
}

// InstallAt writes the desktop entry into the given autostart directory.
func InstallAt(autostartDir, execPath string) (string, error) {
	if err := os.MkdirAll(autostartDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create autostart directory: %w", err)
	}

	abs, err := filepath.Abs(execPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve executable path: %w", err)
	}

	entryPath := filepath.Join(autostartDir, constants.AutostartFileName)
	if err := os.WriteFile(entryPath, []byte(fmt.Sprintf(entryTemplate, abs)), 0755); err != nil {
		return "", fmt.Errorf("failed to write autostart entry: %w", err)
	}
	return entryPath, nil
}

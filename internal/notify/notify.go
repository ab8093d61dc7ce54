// Package notify dispatches desktop notifications through notify-send.
// Dispatch failures are never fatal to the session.
package notify

import (
	"fmt"
	"os/exec"
	"strconv"
)

// notifyCommand is swappable for tests.
var notifyCommand = "notify-send"

// Notifier is the opaque notification sink used by the session loop.
type Notifier interface {
	Notify(title, body string, timeoutMs int) error
}

// Desktop sends notifications via the notify-send binary.
type Desktop struct{}

// NewDesktop returns the notify-send backed Notifier.
func NewDesktop() *Desktop {
	return &Desktop{}
}

// Notify sends one desktop notification with normal urgency.
func (d *Desktop) Notify(title, body string, timeoutMs int) error {
	cmd := exec.Command(notifyCommand,
		title,
		body,
		"--urgency=normal",
		"--expire-time="+strconv.Itoa(timeoutMs),
	)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	return nil
}

// CheckDependencies verifies that the notification binary is reachable.
func CheckDependencies() error {
	if _, err := exec.LookPath(notifyCommand); err != nil {
		return fmt.Errorf("%s command not found: %w", notifyCommand, err)
	}
	return nil
}

// InstallHint is printed when the notification dependency is missing.
const InstallHint = "Please install the libnotify-bin package:\n  sudo apt install libnotify-bin"

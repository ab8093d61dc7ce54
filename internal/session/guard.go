package session

import (
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/focustrack/internal/constants"
	"github.com/julianstephens/focustrack/internal/logger"
)

// findProcessesFunc is swappable for tests.
var findProcessesFunc = ps.Processes

// warnDuplicateSession checks for another running focustrack process. Today's
// log assumes a single writer, so a second session risks corrupting it; the
// check only warns since the other process may be idle or exiting.
func (s *Session) warnDuplicateSession() {
	procs, err := findProcessesFunc()
	if err != nil {
		return
	}

	me := os.Getpid()
	for _, p := range procs {
		if p.Pid() == me {
			continue
		}
		if strings.HasPrefix(p.Executable(), constants.AppName) {
			fmt.Fprintf(s.out, "Warning: another %s session appears to be running (pid %d). Two sessions on the same day log may corrupt it.\n",
				constants.AppName, p.Pid())
			logger.Warn("Duplicate session detected", "session", s.id, "pid", p.Pid())
			return
		}
	}
}

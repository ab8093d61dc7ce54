package session

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/julianstephens/focustrack/internal/constants"
	"github.com/julianstephens/focustrack/internal/logger"
)

// promptTask reads the next task name. The literal token CLEAR (any case)
// wipes today's log after confirmation and re-prompts; empty input offers the
// recent abandoned tasks for resumption. Read errors (closed input, cancelled
// context) propagate to the caller, which treats them as quit.
func (s *Session) promptTask() (string, error) {
	for {
		line, err := s.readLine()
		if err != nil {
			return "", err
		}

		if strings.EqualFold(line, "CLEAR") {
			if err := s.confirmClear(); err != nil {
				return "", err
			}
			fmt.Fprintln(s.out, "\nWhat are you working on next?")
			continue
		}

		if line != "" {
			return line, nil
		}

		name, picked, err := s.pickAbandoned()
		if err != nil {
			return "", err
		}
		if picked {
			return name, nil
		}
	}
}

func (s *Session) confirmClear() error {
	fmt.Fprint(s.out, "\nWARNING: This will delete ALL tasks for today. Are you sure? (y/n): ")
	confirm, err := s.readLine()
	if err != nil {
		return err
	}
	if strings.ToLower(confirm) != "y" {
		return nil
	}

	if err := s.store.ClearToday(); err != nil {
		fmt.Fprintf(s.out, "Failed to clear today's tasks: %v\n", err)
		return nil
	}
	if err := s.recomputeRollup(); err != nil {
		logger.Warn("Rollup after clear failed", "session", s.id, "error", err)
	}
	fmt.Fprintln(s.out, "\nAll tasks for today have been cleared.")
	logger.Info("Cleared today's tasks", "session", s.id)
	return nil
}

// pickAbandoned shows the recent abandoned tasks and reads a selection.
// picked is false when the user should be re-prompted for a task name.
func (s *Session) pickAbandoned() (name string, picked bool, err error) {
	abandoned, err := s.store.ListRecentAbandoned(constants.MaxAbandonedListed)
	if err != nil {
		return "", false, err
	}
	if len(abandoned) == 0 {
		fmt.Fprintln(s.out, "No abandoned tasks found. Please enter a task name.")
		return "", false, nil
	}

	fmt.Fprintln(s.out, "\nAbandoned tasks:")
	for i, row := range abandoned {
		fmt.Fprintf(s.out, "%d. %s\n", i+1, row.Task)
	}

	fmt.Fprint(s.out, "\nSelect task number to resume (or press Enter to enter a new task): ")
	line, err := s.readLine()
	if err != nil {
		return "", false, err
	}
	if line == "" {
		return "", false, nil
	}

	n, convErr := strconv.Atoi(line)
	if convErr != nil {
		fmt.Fprintln(s.out, "Invalid input. Please enter a task name.")
		return "", false, nil
	}
	if n < 1 || n > len(abandoned) {
		fmt.Fprintln(s.out, "Invalid selection. Please enter a task name.")
		return "", false, nil
	}
	return abandoned[n-1].Task, true, nil
}

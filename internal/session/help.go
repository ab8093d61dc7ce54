package session

import "fmt"

func (s *Session) printHelp() {
	fmt.Fprintln(s.out, "\nAvailable commands (press key - no Enter needed):")
	fmt.Fprintln(s.out, "  p - Pause/resume the current task")
	fmt.Fprintln(s.out, "  c - Complete the current task and start a new one")
	fmt.Fprintln(s.out, "  x - Abandon the current task and start a new one")
	fmt.Fprintln(s.out, "  a - Show list of abandoned tasks to potentially resume")
	fmt.Fprintln(s.out, "  l - List all tasks for today")
	fmt.Fprintln(s.out, "  t - Change the reminder timer interval")
	fmt.Fprintln(s.out, "  h - Show this help message")
	fmt.Fprintln(s.out, "  q - Quit Focus Tracker and show summary")
	fmt.Fprintln(s.out, "\nSpecial commands (enter when prompted for a task):")
	fmt.Fprintln(s.out, "  CLEAR - Delete all tasks for today (with confirmation)")
	fmt.Fprintln(s.out, "")
}

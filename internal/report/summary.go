// Package report renders read-only views over a day's log rows.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/focustrack/internal/constants"
	"github.com/julianstephens/focustrack/internal/store"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#4A90E2"))

	totalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575"))

	rateStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F7DC6F"))
)

// NoTasksMessage is returned when the day log is absent or header-only.
const NoTasksMessage = "No tasks recorded today."

// Summary builds the human-readable day report: COMPLETED, ABANDONED, and
// STARTED BUT NOT COMPLETED sections (empty ones omitted), totals, and the
// completion rate.
func Summary(rows []store.TaskRow) string {
	var completed, abandoned, inProgress []store.TaskRow
	var completedMinutes, abandonedMinutes float64

	for _, row := range rows {
		switch {
		case row.Status == constants.StatusCompleted:
			if m, ok := row.DurationMinutes(); ok {
				completedMinutes += m
			}
			completed = append(completed, row)
		case row.Status == constants.StatusAbandoned:
			if m, ok := row.DurationMinutes(); ok {
				abandonedMinutes += m
			}
			abandoned = append(abandoned, row)
		case row.Status.InProgress():
			inProgress = append(inProgress, row)
		}
	}

	if len(completed) == 0 && len(abandoned) == 0 && len(inProgress) == 0 {
		return NoTasksMessage
	}

	var b strings.Builder
	b.WriteString("\n" + titleStyle.Render("=== Today's Tasks ===") + "\n")

	if len(completed) > 0 {
		b.WriteString(sectionStyle.Render("COMPLETED:") + "\n")
		for i, row := range completed {
			b.WriteString(fmt.Sprintf("%d. %s - %s minutes\n", i+1, row.Task, minutesLabel(row)))
		}
		b.WriteString(totalStyle.Render(fmt.Sprintf("Completed: %d tasks, %.1f minutes", len(completed), completedMinutes)) + "\n")
	}

	if len(abandoned) > 0 {
		b.WriteString("\n" + sectionStyle.Render("ABANDONED:") + "\n")
		for i, row := range abandoned {
			b.WriteString(fmt.Sprintf("%d. %s - %s minutes\n", i+1, row.Task, minutesLabel(row)))
		}
		b.WriteString(totalStyle.Render(fmt.Sprintf("Abandoned: %d tasks, %.1f minutes", len(abandoned), abandonedMinutes)) + "\n")
	}

	if len(inProgress) > 0 {
		b.WriteString("\n" + sectionStyle.Render("STARTED BUT NOT COMPLETED:") + "\n")
		for i, row := range inProgress {
			b.WriteString(fmt.Sprintf("%d. %s - started at %s\n", i+1, row.Task, row.StartTime))
		}
	}

	if total := len(completed) + len(abandoned); total > 0 {
		rate := float64(len(completed)) / float64(total) * 100
		b.WriteString("\n" + rateStyle.Render(fmt.Sprintf("Completion rate: %.1f%%", rate)) + "\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// minutesLabel keeps malformed durations visible in listings instead of
// dropping the row.
func minutesLabel(row store.TaskRow) string {
	if m, ok := row.DurationMinutes(); ok {
		return fmt.Sprintf("%.1f", m)
	}
	if row.Duration == "" {
		return "?"
	}
	return row.Duration
}

package report

import (
	"strings"
	"testing"

	"github.com/julianstephens/focustrack/internal/constants"
	"github.com/julianstephens/focustrack/internal/store"
)

func row(task string, status constants.Status, duration string) store.TaskRow {
	r := store.TaskRow{Task: task, StartTime: "09:00:00", Status: status}
	if duration != "" {
		r.EndTime = "09:30:00"
		r.Duration = duration
	}
	return r
}

func TestSummaryEmpty(t *testing.T) {
	if got := Summary(nil); got != NoTasksMessage {
		t.Errorf("expected %q, got %q", NoTasksMessage, got)
	}
	if got := Summary([]store.TaskRow{}); got != NoTasksMessage {
		t.Errorf("expected %q for header-only log, got %q", NoTasksMessage, got)
	}
}

func TestSummarySections(t *testing.T) {
	rows := []store.TaskRow{
		row("write report", constants.StatusCompleted, "30.00"),
		row("emails", constants.StatusAbandoned, "5.00"),
		row("deep work", constants.StatusInProgress, ""),
		row("retry emails", constants.StatusResumed, ""),
	}

	got := Summary(rows)

	for _, want := range []string{
		"COMPLETED:",
		"1. write report - 30.0 minutes",
		"Completed: 1 tasks, 30.0 minutes",
		"ABANDONED:",
		"1. emails - 5.0 minutes",
		"STARTED BUT NOT COMPLETED:",
		"1. deep work - started at 09:00:00",
		"2. retry emails - started at 09:00:00",
		"Completion rate: 50.0%",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q:\n%s", want, got)
		}
	}
}

func TestSummaryOmitsEmptySections(t *testing.T) {
	rows := []store.TaskRow{row("solo", constants.StatusCompleted, "12.00")}
	got := Summary(rows)

	if strings.Contains(got, "ABANDONED") {
		t.Errorf("empty ABANDONED section should be omitted:\n%s", got)
	}
	if strings.Contains(got, "STARTED BUT NOT COMPLETED") {
		t.Errorf("empty in-progress section should be omitted:\n%s", got)
	}
	if !strings.Contains(got, "Completion rate: 100.0%") {
		t.Errorf("expected 100%% completion rate:\n%s", got)
	}
}

func TestSummaryKeepsMalformedDurations(t *testing.T) {
	rows := []store.TaskRow{row("odd", constants.StatusCompleted, "garbage")}
	got := Summary(rows)

	if !strings.Contains(got, "odd - garbage minutes") {
		t.Errorf("malformed duration should stay visible in the listing:\n%s", got)
	}
	// but not count toward the total
	if !strings.Contains(got, "Completed: 1 tasks, 0.0 minutes") {
		t.Errorf("malformed duration should not be aggregated:\n%s", got)
	}
}

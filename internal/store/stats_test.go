package store

import (
	"math"
	"os"
	"testing"
	"time"

	"github.com/julianstephens/focustrack/internal/clock"
	"github.com/julianstephens/focustrack/internal/constants"
)

func terminalRow(task, status, duration string) TaskRow {
	return TaskRow{
		Task:      task,
		StartTime: "09:00:00",
		EndTime:   "09:30:00",
		Duration:  duration,
		Status:    constants.Status(status),
	}
}

func TestAggregate(t *testing.T) {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)
	rows := []TaskRow{
		terminalRow("a", "Completed", "10.00"),
		terminalRow("b", "Completed", "20.00"),
		terminalRow("c", "Abandoned", "5.00"),
		{Task: "d", StartTime: "12:00:00", Status: constants.StatusInProgress},
	}

	stats, ok := Aggregate(date, rows)
	if !ok {
		t.Fatal("expected aggregation to produce a row")
	}
	if stats.TasksCompleted != 2 || stats.TasksAbandoned != 1 {
		t.Errorf("counts wrong: %+v", stats)
	}
	if stats.CompletedMinutes != 30 || stats.AvgCompletedMinutes != 15 {
		t.Errorf("completed minutes wrong: %+v", stats)
	}
	if stats.AbandonedMinutes != 5 || stats.AvgAbandonedMinutes != 5 {
		t.Errorf("abandoned minutes wrong: %+v", stats)
	}
	want := 2.0 / 3.0 * 100
	if math.Abs(stats.CompletionRate-want) > 0.001 {
		t.Errorf("completion rate %v, want %v", stats.CompletionRate, want)
	}
}

func TestAggregateSkipsMalformedDurations(t *testing.T) {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)
	rows := []TaskRow{
		terminalRow("a", "Completed", "10.00"),
		terminalRow("b", "Completed", "not-a-number"),
	}

	stats, ok := Aggregate(date, rows)
	if !ok {
		t.Fatal("expected aggregation to produce a row")
	}
	if stats.TasksCompleted != 1 || stats.CompletedMinutes != 10 {
		t.Errorf("malformed duration not skipped: %+v", stats)
	}
	if stats.CompletionRate != 100 {
		t.Errorf("completion rate %v, want 100", stats.CompletionRate)
	}
}

func TestAggregateEmptyDay(t *testing.T) {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)
	if _, ok := Aggregate(date, nil); ok {
		t.Error("empty day must not produce a stats row")
	}
	rows := []TaskRow{{Task: "open", StartTime: "09:00:00", Status: constants.StatusInProgress}}
	if _, ok := Aggregate(date, rows); ok {
		t.Error("day with only open rows must not produce a stats row")
	}
}

func TestRecomputeStatsUpsert(t *testing.T) {
	s, fake := newTestStore(t)
	today := fake.Now()
	yesterday := today.AddDate(0, 0, -1)

	// Yesterday: one completed 10-minute task
	fake.Advance(-24 * time.Hour)
	if err := s.Append(terminalRow("old", "Completed", "10.00")); err != nil {
		t.Fatal(err)
	}
	fake.Advance(24 * time.Hour)

	if err := s.RecomputeStats(yesterday, today); err != nil {
		t.Fatalf("RecomputeStats failed: %v", err)
	}

	recs, err := s.readStats()
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected a single stats row (empty today skipped), got %d", len(recs))
	}
	got := recs[0]
	if got[0] != yesterday.Format(constants.DateFormat) {
		t.Errorf("wrong date: %v", got[0])
	}
	if got[1] != "1" || got[2] != "10.00" || got[7] != "100.0" {
		t.Errorf("unexpected stats row: %v", got)
	}

	// Add a completed task today and recompute: yesterday's row is preserved
	// in place, today's appended.
	if err := s.Append(terminalRow("new", "Completed", "4.00")); err != nil {
		t.Fatal(err)
	}
	if err := s.RecomputeStats(yesterday, today); err != nil {
		t.Fatal(err)
	}
	recs, _ = s.readStats()
	if len(recs) != 2 {
		t.Fatalf("expected 2 stats rows, got %d", len(recs))
	}
	if recs[0][0] != yesterday.Format(constants.DateFormat) || recs[1][0] != today.Format(constants.DateFormat) {
		t.Errorf("row order not preserved: %v", recs)
	}
}

func TestRecomputeStatsIdempotent(t *testing.T) {
	s, fake := newTestStore(t)

	if err := s.Append(terminalRow("a", "Completed", "10.00")); err != nil {
		t.Fatal(err)
	}
	if err := s.Append(terminalRow("b", "Abandoned", "2.50")); err != nil {
		t.Fatal(err)
	}

	if err := s.RecomputeStats(fake.Now()); err != nil {
		t.Fatal(err)
	}
	first, err := os.ReadFile(s.StatsPath())
	if err != nil {
		t.Fatal(err)
	}

	if err := s.RecomputeStats(fake.Now()); err != nil {
		t.Fatal(err)
	}
	second, err := os.ReadFile(s.StatsPath())
	if err != nil {
		t.Fatal(err)
	}

	if string(first) != string(second) {
		t.Errorf("recompute is not idempotent:\nfirst:\n%s\nsecond:\n%s", first, second)
	}
}

func TestEnsureStatsFile(t *testing.T) {
	s, _ := newTestStore(t)

	if err := s.EnsureStatsFile(); err != nil {
		t.Fatalf("EnsureStatsFile failed: %v", err)
	}
	data, err := os.ReadFile(s.StatsPath())
	if err != nil {
		t.Fatal(err)
	}
	want := "Date,Tasks Completed,Completed Time (min),Avg Completed Time (min),Tasks Abandoned,Abandoned Time (min),Avg Abandoned Time (min),Completion Rate (%)\n"
	if string(data) != want {
		t.Errorf("unexpected stats header:\n%q", string(data))
	}

	// Must not truncate an existing file
	if err := s.Append(terminalRow("a", "Completed", "1.00")); err != nil {
		t.Fatal(err)
	}
	s2 := New(s.DataDir(), clock.NewFake(time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)))
	if err := s2.RecomputeStats(time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)); err != nil {
		t.Fatal(err)
	}
	if err := s2.EnsureStatsFile(); err != nil {
		t.Fatal(err)
	}
	recs, _ := s2.readStats()
	if len(recs) != 1 {
		t.Errorf("EnsureStatsFile truncated existing rows: %v", recs)
	}
}

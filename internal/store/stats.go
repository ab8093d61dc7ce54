package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/julianstephens/focustrack/internal/constants"
)

// DayStats is one aggregate row in the statistics rollup file.
type DayStats struct {
	Date                string
	TasksCompleted      int
	CompletedMinutes    float64
	AvgCompletedMinutes float64
	TasksAbandoned      int
	AbandonedMinutes    float64
	AvgAbandonedMinutes float64
	CompletionRate      float64
}

func (d DayStats) record() []string {
	return []string{
		d.Date,
		strconv.Itoa(d.TasksCompleted),
		fmt.Sprintf("%.2f", d.CompletedMinutes),
		fmt.Sprintf("%.2f", d.AvgCompletedMinutes),
		strconv.Itoa(d.TasksAbandoned),
		fmt.Sprintf("%.2f", d.AbandonedMinutes),
		fmt.Sprintf("%.2f", d.AvgAbandonedMinutes),
		fmt.Sprintf("%.1f", d.CompletionRate),
	}
}

// StatsPath returns the statistics rollup file path.
func (s *Store) StatsPath() string {
	return filepath.Join(s.dataDir, constants.StatsFileName)
}

// EnsureStatsFile creates the rollup file with its header if absent.
func (s *Store) EnsureStatsFile() error {
	path := s.StatsPath()
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.MkdirAll(s.dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return s.writeStats(nil)
}

// Aggregate partitions a day's rows into completed and abandoned and computes
// the rollup figures. ok is false when the day has neither, in which case any
// existing rollup entry for that date is left untouched.
func Aggregate(date time.Time, rows []TaskRow) (DayStats, bool) {
	stats := DayStats{Date: date.Format(constants.DateFormat)}

	for _, row := range rows {
		minutes, parsed := row.DurationMinutes()
		if !parsed {
			continue
		}
		switch row.Status {
		case constants.StatusCompleted:
			stats.TasksCompleted++
			stats.CompletedMinutes += minutes
		case constants.StatusAbandoned:
			stats.TasksAbandoned++
			stats.AbandonedMinutes += minutes
		}
	}

	if stats.TasksCompleted == 0 && stats.TasksAbandoned == 0 {
		return DayStats{}, false
	}

	if stats.TasksCompleted > 0 {
		stats.AvgCompletedMinutes = stats.CompletedMinutes / float64(stats.TasksCompleted)
	}
	if stats.TasksAbandoned > 0 {
		stats.AvgAbandonedMinutes = stats.AbandonedMinutes / float64(stats.TasksAbandoned)
	}
	total := stats.TasksCompleted + stats.TasksAbandoned
	stats.CompletionRate = float64(stats.TasksCompleted) / float64(total) * 100

	return stats, true
}

// RecomputeStats re-derives and upserts the rollup rows for the given dates.
// The whole file is rewritten each time; it is fully derivable from the day
// logs, so a truncated write heals on the next recompute.
func (s *Store) RecomputeStats(dates ...time.Time) error {
	for _, date := range dates {
		rows, err := s.ReadDay(date)
		if err != nil {
			return err
		}
		stats, ok := Aggregate(date, rows)
		if !ok {
			continue
		}

		existing, err := s.readStats()
		if err != nil {
			return err
		}

		updated := false
		for i, rec := range existing {
			if len(rec) > 0 && rec[0] == stats.Date {
				existing[i] = stats.record()
				updated = true
				break
			}
		}
		if !updated {
			existing = append(existing, stats.record())
		}

		if err := s.writeStats(existing); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) readStats() ([][]string, error) {
	f, err := os.Open(s.StatsPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open statistics file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	// Header row
	if _, err := r.Read(); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read statistics header: %w", err)
	}

	var recs [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read statistics row: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func (s *Store) writeStats(recs [][]string) error {
	f, err := os.Create(s.StatsPath())
	if err != nil {
		return fmt.Errorf("failed to write statistics file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(constants.StatsHeader); err != nil {
		return err
	}
	for _, rec := range recs {
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

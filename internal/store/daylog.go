// Package store owns the on-disk data layer: per-day CSV task logs grouped
// by month, and the statistics rollup file derived from them. A single live
// session is assumed to be the only writer to today's log.
package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/focustrack/internal/clock"
	"github.com/julianstephens/focustrack/internal/constants"
)

const dayLogPrefix = "tasks_"

// Store reads and writes day logs and the statistics file under dataDir.
type Store struct {
	dataDir string
	clk     clock.Clock
}

// New creates a Store rooted at dataDir.
func New(dataDir string, clk clock.Clock) *Store {
	return &Store{dataDir: dataDir, clk: clk}
}

// DataDir returns the data root.
func (s *Store) DataDir() string {
	return s.dataDir
}

// MonthDir returns the directory holding day logs for t's month.
func (s *Store) MonthDir(t time.Time) string {
	return filepath.Join(s.dataDir, fmt.Sprintf("%d_%02d", t.Year(), int(t.Month())))
}

// DayLogPath returns the day log file path for t's date.
func (s *Store) DayLogPath(t time.Time) string {
	name := fmt.Sprintf("%s%d_%02d_%02d.csv", dayLogPrefix, t.Year(), int(t.Month()), t.Day())
	return filepath.Join(s.MonthDir(t), name)
}

// BackupPath returns the sibling backup file written by ClearToday.
func (s *Store) BackupPath(t time.Time) string {
	logPath := s.DayLogPath(t)
	return strings.TrimSuffix(logPath, ".csv") + ".backup"
}

// InitDayLog creates today's log with its header row if it does not exist.
func (s *Store) InitDayLog() error {
	return s.ensureDayLog(s.DayLogPath(s.clk.Now()))
}

func (s *Store) ensureDayLog(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create month directory: %w", err)
	}
	return writeDayLog(path, nil)
}

// Append adds one row to today's log, creating the file with header if absent.
func (s *Store) Append(row TaskRow) error {
	path := s.DayLogPath(s.clk.Now())
	if err := s.ensureDayLog(path); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open day log: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(row.record()); err != nil {
		return fmt.Errorf("failed to append task row: %w", err)
	}
	w.Flush()
	return w.Error()
}

// UpdateStatus rewrites today's log, changing the first row whose Task
// matches and whose status is in from. Rows moving to an open status have
// their end time and duration cleared; rows moving to a terminal status take
// the given endTime and duration. Reports whether a row was changed.
func (s *Store) UpdateStatus(task string, from []constants.Status, to constants.Status, endTime, duration string) (bool, error) {
	path := s.DayLogPath(s.clk.Now())
	rows, err := readDayLog(path)
	if err != nil {
		return false, err
	}
	if rows == nil {
		return false, nil
	}

	changed := false
	for i, row := range rows {
		if row.Task != task || !statusIn(row.Status, from) {
			continue
		}
		rows[i].Status = to
		if to.InProgress() {
			rows[i].EndTime = ""
			rows[i].Duration = ""
		} else {
			rows[i].EndTime = endTime
			rows[i].Duration = duration
		}
		changed = true
		break
	}

	if !changed {
		return false, nil
	}
	if err := writeDayLog(path, rows); err != nil {
		return false, err
	}
	return true, nil
}

// ReadDay returns the ordered rows for the given date, or nil when no log
// exists for that day.
func (s *Store) ReadDay(t time.Time) ([]TaskRow, error) {
	return readDayLog(s.DayLogPath(t))
}

// ListRecentAbandoned scans the current month's day logs newest-first and
// collects rows with status Abandoned, deduplicating by task name. At most
// limit rows are returned.
func (s *Store) ListRecentAbandoned(limit int) ([]TaskRow, error) {
	monthDir := s.MonthDir(s.clk.Now())
	entries, err := os.ReadDir(monthDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read month directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), dayLogPrefix) && strings.HasSuffix(e.Name(), ".csv") {
			names = append(names, e.Name())
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))

	var abandoned []TaskRow
	seen := make(map[string]bool)
	for _, name := range names {
		rows, err := readDayLog(filepath.Join(monthDir, name))
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			if row.Status != constants.StatusAbandoned || seen[row.Task] {
				continue
			}
			seen[row.Task] = true
			abandoned = append(abandoned, row)
			if len(abandoned) >= limit {
				return abandoned, nil
			}
		}
	}
	return abandoned, nil
}

// ClearToday copies today's log to its .backup sibling, removes the original,
// and re-creates an empty header-only log. A prior backup is overwritten.
func (s *Store) ClearToday() error {
	now := s.clk.Now()
	path := s.DayLogPath(now)

	if _, err := os.Stat(path); err == nil {
		if err := copyFile(path, s.BackupPath(now)); err != nil {
			return fmt.Errorf("failed to back up day log: %w", err)
		}
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to remove day log: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access day log: %w", err)
	}

	return s.ensureDayLog(path)
}

func statusIn(status constants.Status, set []constants.Status) bool {
	for _, s := range set {
		if status == s {
			return true
		}
	}
	return false
}

func readDayLog(path string) ([]TaskRow, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open day log: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	// Header row
	if _, err := r.Read(); err != nil {
		if err == io.EOF {
			return []TaskRow{}, nil
		}
		return nil, fmt.Errorf("failed to read day log header: %w", err)
	}

	rows := []TaskRow{}
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read day log row: %w", err)
		}
		if row, ok := rowFromRecord(rec); ok {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func writeDayLog(path string, rows []TaskRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to write day log: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(constants.DayLogHeader); err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.Write(row.record()); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

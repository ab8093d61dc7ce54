package store

import (
	"strconv"

	"github.com/julianstephens/focustrack/internal/constants"
)

// TaskRow is one record in a day log. Times are stored as HH:MM:SS strings
// and durations as two-decimal minute strings, matching the CSV layout; rows
// in an open state carry empty end time and duration.
type TaskRow struct {
	Task      string
	StartTime string
	EndTime   string
	Duration  string
	Status    constants.Status
}

// DurationMinutes parses the duration column. ok is false for empty or
// malformed values, which aggregation skips but listings keep.
func (r TaskRow) DurationMinutes() (float64, bool) {
	if r.Duration == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(r.Duration, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func (r TaskRow) record() []string {
	return []string{r.Task, r.StartTime, r.EndTime, r.Duration, string(r.Status)}
}

func rowFromRecord(rec []string) (TaskRow, bool) {
	if len(rec) < 5 {
		return TaskRow{}, false
	}
	return TaskRow{
		Task:      rec[0],
		StartTime: rec[1],
		EndTime:   rec[2],
		Duration:  rec[3],
		Status:    constants.Status(rec[4]),
	}, true
}

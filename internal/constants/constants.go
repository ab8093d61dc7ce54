package constants

// Status represents the lifecycle state of a logged task row.
type Status string

const (
	AppName = "focustrack"
	Version = "v0.3.1"

	// ConfigDirName is the directory under the user config root holding
	// config.json and the log directory.
	ConfigDirName = "focus-tracker"
	// DataDirName is the directory under the user data root holding the
	// month directories and the statistics file.
	DataDirName    = "focus-tracker"
	ConfigFileName = "config.json"
	StatsFileName  = "statistics.csv"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// ClockFormat is the time-of-day format used in day log rows (HH:MM:SS)
	ClockFormat = "15:04:05"

	// ReminderFormat is the short time printed with inline reminders (HH:MM)
	ReminderFormat = "15:04"

	// Status values as they appear in the day log Status column.
	StatusInProgress Status = "In Progress"
	StatusResumed    Status = "In Progress (Resumed)"
	StatusCompleted  Status = "Completed"
	StatusAbandoned  Status = "Abandoned"

	// MaxAbandonedListed caps the recent-abandoned listing.
	MaxAbandonedListed = 10

	// Default configuration values
	DefaultReminderIntervalMin = 30
	DefaultNotificationTimeout = 10000
	DefaultAutoStart           = false
	DefaultLogTasks            = true

	AutostartFileName = "focus-tracker.desktop"
)

// InProgress reports whether the status is one of the open states.
func (s Status) InProgress() bool {
	return s == StatusInProgress || s == StatusResumed
}

// DayLogHeader is the header row of every day log file.
var DayLogHeader = []string{"Task", "Start Time", "End Time", "Duration (minutes)", "Status"}

// StatsHeader is the header row of the statistics rollup file.
var StatsHeader = []string{
	"Date",
	"Tasks Completed",
	"Completed Time (min)",
	"Avg Completed Time (min)",
	"Tasks Abandoned",
	"Abandoned Time (min)",
	"Avg Abandoned Time (min)",
	"Completion Rate (%)",
}

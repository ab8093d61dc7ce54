// Package session runs the interactive tracking loop: a single-threaded
// cooperative dispatcher multiplexing keyboard polls, reminder timing, and
// task transitions. All log writes happen on this loop, which keeps the
// session the sole writer to today's log.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/focustrack/internal/clock"
	"github.com/julianstephens/focustrack/internal/config"
	"github.com/julianstephens/focustrack/internal/constants"
	"github.com/julianstephens/focustrack/internal/keyreader"
	"github.com/julianstephens/focustrack/internal/logger"
	"github.com/julianstephens/focustrack/internal/notify"
	"github.com/julianstephens/focustrack/internal/report"
	"github.com/julianstephens/focustrack/internal/store"
	"github.com/julianstephens/focustrack/internal/task"
)

// errQuit signals a clean exit from inside key dispatch.
var errQuit = errors.New("quit")

// Options wires a Session's collaborators.
type Options struct {
	Config   *config.Manager
	Store    *store.Store
	Clock    clock.Clock
	Keys     keyreader.Reader
	Notifier notify.Notifier
	Out      io.Writer
	Idle     time.Duration
}

// Session is the interactive tracking session.
type Session struct {
	id       string
	cfg      *config.Manager
	store    *store.Store
	clk      clock.Clock
	keys     keyreader.Reader
	notifier notify.Notifier
	out      io.Writer
	idle     time.Duration
	machine  *task.Machine
	timer    *clock.Timer
	ctx      context.Context // set for the lifetime of Run
}

// New creates a Session from the given collaborators.
func New(opts Options) *Session {
	return &Session{
		id:       uuid.NewString(),
		cfg:      opts.Config,
		store:    opts.Store,
		clk:      opts.Clock,
		keys:     opts.Keys,
		notifier: opts.Notifier,
		out:      opts.Out,
		idle:     opts.Idle,
		machine:  task.NewMachine(opts.Clock),
		timer:    clock.NewTimer(opts.Clock),
	}
}

// Run executes the session until quit, end-of-text, closed input, or context
// cancellation. The shutdown path (terminator row, rollup, summary) always
// runs before return.
func (s *Session) Run(ctx context.Context) error {
	s.ctx = ctx
	logger.Info("Session starting", "session", s.id)
	s.warnDuplicateSession()

	if err := s.store.InitDayLog(); err != nil {
		return err
	}
	if err := s.store.EnsureStatsFile(); err != nil {
		return err
	}
	if err := s.recomputeRollup(); err != nil {
		logger.Warn("Startup rollup failed", "session", s.id, "error", err)
	}

	cfg, err := s.cfg.Load()
	if err != nil {
		return err
	}

	fmt.Fprintln(s.out, "\n\U0001F9E0 Focus Tracker - Stay on your current task \U0001F9E0")
	fmt.Fprintln(s.out, "Press 'h' anytime to see available commands")
	fmt.Fprintln(s.out, strings.Repeat("-", 60))

	fmt.Fprintln(s.out, "\nWhat are you working on first?")
	name, err := s.promptTask()
	if err != nil {
		// Quit before the first task: still run the shutdown path.
		return s.shutdown()
	}
	if err := s.startTask(name); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "\nTask started: '%s'\n", name)
	fmt.Fprintf(s.out, "You'll receive a reminder every %d minutes\n", cfg.ReminderInterval)
	s.sendNotification("Task Started", "You're now working on: "+name)
	s.timer.Reset()

	for {
		select {
		case <-ctx.Done():
			return s.shutdown()
		default:
		}

		key, ok, err := s.keys.Poll(s.idle)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return s.shutdown()
			}
			return err
		}

		if ok {
			if err := s.dispatch(key); err != nil {
				if errors.Is(err, errQuit) || errors.Is(err, io.EOF) || s.ctx.Err() != nil {
					return s.shutdown()
				}
				fmt.Fprintf(s.out, "\nError processing command: %v\n", err)
				logger.Error("Command dispatch failed", "session", s.id, "key", string(key), "error", err)
			}
		}

		if s.machine.Paused() {
			continue
		}

		// Reload so a mid-session interval change takes effect on the
		// next check.
		cfg, err := s.cfg.Load()
		if err != nil {
			logger.Warn("Config reload failed", "session", s.id, "error", err)
			continue
		}
		if s.timer.Due(time.Duration(cfg.ReminderInterval) * time.Minute) {
			body := fmt.Sprintf("'%s', are you on track?", s.machine.Task())
			s.sendNotification("Focus Check", body)
			fmt.Fprintf(s.out, "[%s] Reminder: %s\n", s.clk.Now().Format(constants.ReminderFormat), body)
			s.timer.Reset()
		}
	}
}

// readLine reads one prompt reply, abandoning the wait when the session
// context is cancelled so an interrupt at a prompt still quits the session.
func (s *Session) readLine() (string, error) {
	type reply struct {
		line string
		err  error
	}
	ch := make(chan reply, 1)
	go func() {
		line, err := s.keys.ReadLine()
		ch <- reply{line, err}
	}()

	select {
	case r := <-ch:
		if s.ctx.Err() != nil {
			return "", s.ctx.Err()
		}
		return r.line, r.err
	case <-s.ctx.Done():
		return "", s.ctx.Err()
	}
}

// dispatch routes one keypress. Errors other than errQuit are reported and
// the loop continues.
func (s *Session) dispatch(key byte) error {
	logger.Debug("Dispatching key", "session", s.id, "key", string(key))
	switch key {
	case 'p':
		return s.togglePause()
	case 'c':
		return s.completeCurrent()
	case 'x':
		return s.abandonCurrent()
	case 'a':
		return s.resumeAbandoned()
	case 'l':
		return s.listToday()
	case 't':
		return s.changeInterval()
	case 'h':
		s.printHelp()
		return nil
	case 'q', keyreader.EndOfText:
		return errQuit
	case ' ', '\n', '\r', '\t':
		return nil
	default:
		if key >= ' ' && key < 0x7f {
			fmt.Fprintf(s.out, "\nUnrecognized command: '%c'. Press 'h' for help.\n", key)
		}
		return nil
	}
}

func (s *Session) togglePause() error {
	name := s.machine.Task()
	if s.machine.Paused() {
		if err := s.machine.Resume(); err != nil {
			return err
		}
		fmt.Fprintf(s.out, "\nTask '%s' resumed.\n", name)
		logger.Info("Task resumed", "session", s.id, "task", name)
	} else {
		if err := s.machine.Pause(); err != nil {
			return err
		}
		fmt.Fprintf(s.out, "\nTask '%s' paused. Press 'p' again to resume.\n", name)
		logger.Info("Task paused", "session", s.id, "task", name)
	}
	s.timer.Reset()
	return nil
}

func (s *Session) completeCurrent() error {
	return s.finishCurrent(constants.StatusCompleted)
}

func (s *Session) abandonCurrent() error {
	return s.finishCurrent(constants.StatusAbandoned)
}

// finishCurrent ends the running task with the given terminal status, then
// prompts for and starts the next one. Ignored while paused.
func (s *Session) finishCurrent(status constants.Status) error {
	if s.machine.State() != task.Running {
		return nil
	}

	name := s.machine.Task()
	minutes, err := s.writeTerminator(status)
	if err != nil {
		return err
	}

	verb := "completed"
	if status == constants.StatusAbandoned {
		verb = "abandoned"
	}
	fmt.Fprintf(s.out, "\nTask '%s' %s. Duration: %.1f minutes\n", name, verb, minutes)
	logger.Info("Task "+verb, "session", s.id, "task", name, "minutes", fmt.Sprintf("%.2f", minutes))

	fmt.Fprintln(s.out, "\nWhat are you working on next?")
	next, err := s.promptTask()
	if err != nil {
		return err
	}
	if err := s.startTask(next); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "\nNew task started: '%s'\n", next)
	s.sendNotification("New Task Started", "You're now working on: "+next)
	s.timer.Reset()
	return nil
}

// writeTerminator finishes the machine's running task and appends the
// terminating row for it.
func (s *Session) writeTerminator(status constants.Status) (float64, error) {
	name := s.machine.Task()
	start, end, minutes, err := s.machine.Finish()
	if err != nil {
		return 0, err
	}

	row := store.TaskRow{
		Task:      name,
		StartTime: start.Format(constants.ClockFormat),
		EndTime:   end.Format(constants.ClockFormat),
		Duration:  fmt.Sprintf("%.2f", minutes),
		Status:    status,
	}
	if err := s.store.Append(row); err != nil {
		return 0, err
	}
	return minutes, nil
}

// resumeAbandoned lists recent abandoned tasks and switches to a selection.
// The currently running task, if any, is abandoned first; a paused task is
// simply replaced. Selecting 0 cancels.
func (s *Session) resumeAbandoned() error {
	abandoned, err := s.store.ListRecentAbandoned(constants.MaxAbandonedListed)
	if err != nil {
		return err
	}
	if len(abandoned) == 0 {
		fmt.Fprintln(s.out, "\nNo abandoned tasks found.")
		return nil
	}

	fmt.Fprintln(s.out, "\nAbandoned tasks:")
	for i, row := range abandoned {
		fmt.Fprintf(s.out, "%d. %s\n", i+1, row.Task)
	}

	fmt.Fprint(s.out, "\nSelect task number to resume (or 0 to cancel): ")
	line, err := s.readLine()
	if err != nil {
		return err
	}
	n, convErr := strconv.Atoi(line)
	if convErr != nil {
		fmt.Fprintln(s.out, "Invalid selection.")
		return nil
	}
	if n <= 0 || n > len(abandoned) {
		return nil
	}

	if s.machine.State() == task.Running {
		if _, err := s.writeTerminator(constants.StatusAbandoned); err != nil {
			return err
		}
	}

	target := abandoned[n-1].Task
	if err := s.startTask(target); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "\nResuming task: '%s'\n", target)
	s.sendNotification("Task Resumed", "You're now working on: "+target)
	s.timer.Reset()
	return nil
}

// startTask starts name on the machine and records it in today's log. A task
// with an Abandoned row in today's log is resumed by flipping that row to
// In Progress (Resumed) in place; otherwise a fresh start row is appended.
func (s *Session) startTask(name string) error {
	s.machine.Start(name)

	changed, err := s.store.UpdateStatus(name,
		[]constants.Status{constants.StatusAbandoned}, constants.StatusResumed, "", "")
	if err != nil {
		return err
	}
	if changed {
		logger.Info("Task resumed from abandoned", "session", s.id, "task", name)
		return nil
	}

	row := store.TaskRow{
		Task:      name,
		StartTime: s.machine.StartedAt().Format(constants.ClockFormat),
		Status:    constants.StatusInProgress,
	}
	if err := s.store.Append(row); err != nil {
		return err
	}
	logger.Info("Task started", "session", s.id, "task", name)
	return nil
}

func (s *Session) listToday() error {
	rows, err := s.store.ReadDay(s.clk.Now())
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, "\n"+report.Summary(rows))

	suffix := ""
	if s.machine.Paused() {
		suffix = " (paused)"
	}
	fmt.Fprintf(s.out, "\nCurrent task: '%s'%s\n", s.machine.Task(), suffix)
	return nil
}

func (s *Session) changeInterval() error {
	cfg, err := s.cfg.Load()
	if err != nil {
		return err
	}

	fmt.Fprintf(s.out, "\nCurrent reminder interval is %d minutes. Enter new interval: ", cfg.ReminderInterval)
	line, err := s.readLine()
	if err != nil {
		return err
	}
	interval, convErr := strconv.Atoi(line)
	if convErr != nil {
		fmt.Fprintln(s.out, "Please enter a valid number.")
		return nil
	}
	if interval < 1 {
		fmt.Fprintln(s.out, "Interval must be at least 1 minute.")
		return nil
	}

	cfg.ReminderInterval = interval
	if err := s.cfg.Save(cfg); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Reminder interval updated to %d minutes.\n", interval)
	logger.Info("Reminder interval changed", "session", s.id, "minutes", interval)
	s.timer.Reset()
	return nil
}

// shutdown finalizes the open task, recomputes the rollup, and prints the
// day's summary. Best effort: later steps run even when earlier ones fail.
func (s *Session) shutdown() error {
	if s.machine.State() == task.Running {
		name := s.machine.Task()
		minutes, err := s.writeTerminator(constants.StatusCompleted)
		if err != nil {
			logger.Error("Failed to finalize task on shutdown", "session", s.id, "task", name, "error", err)
		} else {
			fmt.Fprintf(s.out, "\nTask '%s' ended. Duration: %.1f minutes\n", name, minutes)
		}
	}

	if err := s.recomputeRollup(); err != nil {
		logger.Error("Shutdown rollup failed", "session", s.id, "error", err)
	}

	rows, err := s.store.ReadDay(s.clk.Now())
	if err == nil {
		fmt.Fprintln(s.out, report.Summary(rows))
	}
	fmt.Fprintln(s.out, "\nFocus Tracker stopped. Have a great day!")
	logger.Info("Session stopped", "session", s.id)
	return nil
}

func (s *Session) recomputeRollup() error {
	now := s.clk.Now()
	return s.store.RecomputeStats(now.AddDate(0, 0, -1), now)
}

// sendNotification dispatches a desktop notification; failures are reported
// inline and never interrupt the session.
func (s *Session) sendNotification(title, body string) {
	cfg, err := s.cfg.Load()
	timeoutMs := constants.DefaultNotificationTimeout
	if err == nil {
		timeoutMs = cfg.NotificationTimeout
	}
	if err := s.notifier.Notify(title, body, timeoutMs); err != nil {
		fmt.Fprintf(s.out, "Failed to send notification: %v\n", err)
		logger.Warn("Notification failed", "session", s.id, "error", err)
	}
}

// Package task holds the in-memory task state machine for a session. The
// machine tracks only runtime state; log writes belong to the session loop,
// which keeps a single writer on today's log.
package task

import (
	"errors"
	"time"

	"github.com/julianstephens/focustrack/internal/clock"
)

// State is the machine's coarse state.
type State int

const (
	// Idle means no task is active (pre-first-task and post-quit).
	Idle State = iota
	// Running means a task is active and accruing time.
	Running
	// Paused means a task is active but the clock is stopped.
	Paused
)

var (
	ErrNoTask    = errors.New("no active task")
	ErrNotPaused = errors.New("task is not paused")
	ErrPaused    = errors.New("task is paused")
)

// Machine tracks the current task, its effective start time, and pause state.
// Pause time is folded into the start time on resume, so a task's duration is
// always a single subtraction from now.
type Machine struct {
	clk         clock.Clock
	state       State
	task        string
	start       time.Time
	pausedSince time.Time
}

// NewMachine creates an idle Machine.
func NewMachine(clk clock.Clock) *Machine {
	return &Machine{clk: clk, state: Idle}
}

// State returns the current coarse state.
func (m *Machine) State() State {
	return m.state
}

// Task returns the current task name, or "" when idle.
func (m *Machine) Task() string {
	return m.task
}

// StartedAt returns the effective start time of the current task.
func (m *Machine) StartedAt() time.Time {
	return m.start
}

// Paused reports whether the current task is paused.
func (m *Machine) Paused() bool {
	return m.state == Paused
}

// Start begins a new task at now. Any previous task must have been finished
// by the caller first.
func (m *Machine) Start(name string) {
	m.task = name
	m.start = m.clk.Now()
	m.state = Running
}

// Pause stops the clock on the running task.
func (m *Machine) Pause() error {
	if m.state != Running {
		if m.state == Paused {
			return ErrPaused
		}
		return ErrNoTask
	}
	m.pausedSince = m.clk.Now()
	m.state = Paused
	return nil
}

// Resume restarts the clock, advancing the start time by the paused interval
// so the pause is excluded from the reported duration.
func (m *Machine) Resume() error {
	if m.state != Paused {
		return ErrNotPaused
	}
	m.start = m.start.Add(m.clk.Now().Sub(m.pausedSince))
	m.state = Running
	return nil
}

// Finish ends the running task, returning its effective start, end, and
// duration in minutes, and leaves the machine idle.
func (m *Machine) Finish() (start, end time.Time, minutes float64, err error) {
	if m.state != Running {
		if m.state == Paused {
			return time.Time{}, time.Time{}, 0, ErrPaused
		}
		return time.Time{}, time.Time{}, 0, ErrNoTask
	}

	start = m.start
	end = m.clk.Now()
	minutes = end.Sub(start).Minutes()

	m.task = ""
	m.start = time.Time{}
	m.state = Idle
	return start, end, minutes, nil
}

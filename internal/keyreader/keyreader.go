// Package keyreader delivers single keypresses from the controlling terminal
// without line buffering or echo. Terminal state is acquired once per session
// and restored on every exit path; line prompts temporarily suspend character
// mode so normal editing and echo apply.
package keyreader

import (
	"bufio"
	"io"
	"strings"
	"time"
)

// EndOfText is the interrupt character (Ctrl+C) as delivered in character mode.
const EndOfText = '\x03'

// Reader yields single keys and, during prompts, whole lines.
type Reader interface {
	// Poll waits up to timeout for a key and returns it lowercased. ok is
	// false when the timeout elapsed with no input.
	Poll(timeout time.Duration) (key byte, ok bool, err error)
	// ReadLine reads one full line with echo and editing enabled, trimmed
	// of surrounding whitespace. Returns io.EOF when input is closed.
	ReadLine() (string, error)
	// Close restores the terminal to its prior state. Safe to call more
	// than once.
	Close() error
}

// lineReader is the fallback for terminals without character-mode support:
// line-buffered reads where a polled key is the first character of a trimmed
// line. A bounded channel keeps the single consumer (the session loop) as the
// only writer-facing party.
type lineReader struct {
	lines chan string
	done  chan struct{}
}

// NewLineReader starts a fallback reader over in.
func NewLineReader(in io.Reader) Reader {
	r := &lineReader{
		lines: make(chan string, 16),
		done:  make(chan struct{}),
	}
	go func() {
		defer close(r.lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case r.lines <- scanner.Text():
			case <-r.done:
				return
			}
		}
	}()
	return r
}

func (r *lineReader) Poll(timeout time.Duration) (byte, bool, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case line, open := <-r.lines:
		if !open {
			return 0, false, io.EOF
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			return '\n', true, nil
		}
		return lower(trimmed[0]), true, nil
	case <-timer.C:
		return 0, false, nil
	}
}

func (r *lineReader) ReadLine() (string, error) {
	line, open := <-r.lines
	if !open {
		return "", io.EOF
	}
	return strings.TrimSpace(line), nil
}

func (r *lineReader) Close() error {
	select {
	case <-r.done:
	default:
		close(r.done)
	}
	return nil
}

func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

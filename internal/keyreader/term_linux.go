//go:build linux

package keyreader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/sys/unix"
)

// termReader reads single characters from a terminal switched out of
// canonical mode. Echo and signal generation are disabled so keys, including
// Ctrl+C, arrive as plain bytes; OPOST stays on so interleaved prints keep
// working.
type termReader struct {
	file  *os.File
	fd    int
	in    *bufio.Reader
	saved *unix.Termios
}

// Open acquires the terminal for stdin. When character mode cannot be
// established (not a tty, termios failure), it returns a line-buffered
// fallback and fallback=true; the session continues either way.
func Open() (r Reader, fallback bool, err error) {
	tr, err := newTermReader(os.Stdin)
	if err != nil {
		return NewLineReader(os.Stdin), true, nil
	}
	return tr, false, nil
}

func newTermReader(f *os.File) (*termReader, error) {
	fd := int(f.Fd())
	saved, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return nil, fmt.Errorf("failed to get terminal attributes: %w", err)
	}

	r := &termReader{file: f, fd: fd, in: bufio.NewReader(f), saved: saved}
	if err := r.acquire(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *termReader) acquire() error {
	raw := *r.saved
	raw.Lflag &^= unix.ICANON | unix.ECHO | unix.ISIG
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0
	if err := unix.IoctlSetTermios(r.fd, unix.TCSETS, &raw); err != nil {
		return fmt.Errorf("failed to set terminal attributes: %w", err)
	}
	return nil
}

func (r *termReader) restore() error {
	if r.saved == nil {
		return nil
	}
	if err := unix.IoctlSetTermios(r.fd, unix.TCSETS, r.saved); err != nil {
		return fmt.Errorf("failed to restore terminal attributes: %w", err)
	}
	return nil
}

func (r *termReader) Poll(timeout time.Duration) (byte, bool, error) {
	if r.in.Buffered() == 0 {
		fds := []unix.PollFd{{Fd: int32(r.fd), Events: unix.POLLIN}}
		n, err := unix.Poll(fds, int(timeout.Milliseconds()))
		if err != nil {
			// A signal interrupting the poll is not input.
			if err == unix.EINTR {
				return 0, false, nil
			}
			return 0, false, fmt.Errorf("failed to poll stdin: %w", err)
		}
		if n == 0 {
			return 0, false, nil
		}
	}

	b, err := r.in.ReadByte()
	if err != nil {
		if err == io.EOF {
			return 0, false, io.EOF
		}
		return 0, false, fmt.Errorf("failed to read key: %w", err)
	}
	return lower(b), true, nil
}

// ReadLine suspends character mode for the duration of the read so the user
// gets echo and line editing back, then re-acquires it.
func (r *termReader) ReadLine() (string, error) {
	if err := r.restore(); err != nil {
		return "", err
	}
	defer func() {
		_ = r.acquire()
	}()

	line, err := r.in.ReadString('\n')
	if err != nil && line == "" {
		if err == io.EOF {
			return "", io.EOF
		}
		return "", fmt.Errorf("failed to read line: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func (r *termReader) Close() error {
	err := r.restore()
	r.saved = nil
	return err
}

//go:build !linux

package keyreader

import "os"

// Open falls back to line-buffered reads on platforms without the termios
// character-mode path.
func Open() (r Reader, fallback bool, err error) {
	return NewLineReader(os.Stdin), true, nil
}

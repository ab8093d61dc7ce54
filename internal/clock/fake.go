package clock

import "time"

// Fake is a manually-advanced Clock for tests.
type Fake struct {
	now time.Time
}

// NewFake returns a Fake starting at the given time.
func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

func (f *Fake) Now() time.Time { return f.now }

// Advance moves the fake clock forward.
func (f *Fake) Advance(d time.Duration) {
	f.now = f.now.Add(d)
}

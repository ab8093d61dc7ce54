package clock

import (
	"testing"
	"time"
)

func TestTimerDue(t *testing.T) {
	fake := NewFake(time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local))
	timer := NewTimer(fake)

	if timer.Due(time.Minute) {
		t.Error("timer should not be due immediately after creation")
	}

	fake.Advance(59 * time.Second)
	if timer.Due(time.Minute) {
		t.Error("timer should not be due at 59s of a 1m interval")
	}

	fake.Advance(time.Second)
	if !timer.Due(time.Minute) {
		t.Error("timer should be due at exactly the interval")
	}
}

func TestTimerReset(t *testing.T) {
	fake := NewFake(time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local))
	timer := NewTimer(fake)

	fake.Advance(2 * time.Minute)
	if !timer.Due(time.Minute) {
		t.Fatal("timer should be due after 2m")
	}

	timer.Reset()
	if timer.Due(time.Minute) {
		t.Error("timer should not be due right after reset")
	}

	fake.Advance(time.Minute)
	if !timer.Due(time.Minute) {
		t.Error("timer should be due one interval after reset")
	}
}

func TestSystemClock(t *testing.T) {
	before := time.Now()
	now := System().Now()
	after := time.Now()

	if now.Before(before) || now.After(after) {
		t.Errorf("system clock returned %v outside [%v, %v]", now, before, after)
	}
}

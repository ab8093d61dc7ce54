package notify

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNotifyRunsCommand(t *testing.T) {
	dir := t.TempDir()
	outFile := filepath.Join(dir, "out")
	script := filepath.Join(dir, "fake-notify")

	content := "#!/bin/sh\necho \"$@\" > " + outFile + "\n"
	if err := os.WriteFile(script, []byte(content), 0755); err != nil {
		t.Fatal(err)
	}

	orig := notifyCommand
	notifyCommand = script
	defer func() { notifyCommand = orig }()

	d := NewDesktop()
	if err := d.Notify("Focus Check", "'ping', are you on track?", 10000); err != nil {
		t.Fatalf("Notify failed: %v", err)
	}

	out, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatalf("fake notify-send was not invoked: %v", err)
	}
	got := string(out)
	for _, want := range []string{"Focus Check", "ping", "--urgency=normal", "--expire-time=10000"} {
		if !strings.Contains(got, want) {
			t.Errorf("notify args missing %q: %s", want, got)
		}
	}
}

func TestNotifyMissingBinary(t *testing.T) {
	orig := notifyCommand
	notifyCommand = filepath.Join(t.TempDir(), "does-not-exist")
	defer func() { notifyCommand = orig }()

	d := NewDesktop()
	if err := d.Notify("t", "b", 1000); err == nil {
		t.Error("expected an error for a missing binary")
	}
}

func TestCheckDependencies(t *testing.T) {
	orig := notifyCommand
	defer func() { notifyCommand = orig }()

	notifyCommand = "does-not-exist-on-any-path"
	if err := CheckDependencies(); err == nil {
		t.Error("expected an error for an unreachable binary")
	}

	notifyCommand = "sh"
	if err := CheckDependencies(); err != nil {
		t.Errorf("expected sh to be reachable: %v", err)
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "focus-tracker", "config.json")
	m := NewManager(path)

	cfg, err := m.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.ReminderInterval != 30 {
		t.Errorf("expected default interval 30, got %d", cfg.ReminderInterval)
	}
	if cfg.NotificationTimeout != 10000 {
		t.Errorf("expected default timeout 10000, got %d", cfg.NotificationTimeout)
	}
	if !cfg.LogTasks {
		t.Error("expected log_tasks to default to true")
	}

	// The defaults must have been persisted
	if _, err := os.Stat(path); err != nil {
		t.Errorf("config file was not written: %v", err)
	}
}

func TestLoadCorruptFileRewritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	m := NewManager(path)
	cfg, err := m.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ReminderInterval != 30 {
		t.Errorf("expected defaults after corrupt file, got interval %d", cfg.ReminderInterval)
	}

	// Second load should parse the rewritten file cleanly
	if _, err := m.Load(); err != nil {
		t.Fatalf("reload after rewrite failed: %v", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	m := NewManager(path)

	want := Config{ReminderInterval: 5, NotificationTimeout: 2000, AutoStart: true, LogTasks: false}
	if err := m.Save(want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := m.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got != want {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, want)
	}
}

func TestLoadClampsInvalidInterval(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"reminder_interval": 0, "notification_timeout": -1}`), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewManager(path).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ReminderInterval != 30 {
		t.Errorf("expected interval clamped to 30, got %d", cfg.ReminderInterval)
	}
	if cfg.NotificationTimeout != 10000 {
		t.Errorf("expected timeout clamped to 10000, got %d", cfg.NotificationTimeout)
	}
}

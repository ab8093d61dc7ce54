package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/focustrack/internal/autostart"
	"github.com/julianstephens/focustrack/internal/clock"
	"github.com/julianstephens/focustrack/internal/config"
	"github.com/julianstephens/focustrack/internal/constants"
	"github.com/julianstephens/focustrack/internal/errors"
	"github.com/julianstephens/focustrack/internal/keyreader"
	"github.com/julianstephens/focustrack/internal/logger"
	"github.com/julianstephens/focustrack/internal/notify"
	"github.com/julianstephens/focustrack/internal/report"
	"github.com/julianstephens/focustrack/internal/session"
	"github.com/julianstephens/focustrack/internal/store"
)

var CLI struct {
	Version     kong.VersionFlag `help:"Show version."`
	Summary     bool             `help:"Show today's task summary."`
	Config      bool             `help:"Show current configuration and where to edit it."`
	Install     bool             `help:"Install the autostart entry."`
	ShowDataDir bool             `name:"show-data-dir" help:"Show where data is stored."`
	Idle        float64          `help:"Idle time in seconds between input checks (higher values save CPU)." default:"0.05"`
	Debug       bool             `help:"Enable debug logging."`
}

func main() {
	kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Focus Tracker - Stay on task with periodic reminders"),
		kong.UsageOnError(),
		kong.Vars{"version": constants.Version},
	)

	cfgPath, err := config.DefaultPath()
	if err != nil {
		fmt.Fprintln(os.Stderr, errors.Format(err))
		os.Exit(1)
	}
	dataDir, err := config.DefaultDataDir()
	if err != nil {
		fmt.Fprintln(os.Stderr, errors.Format(err))
		os.Exit(1)
	}

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: filepath.Dir(cfgPath)}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	cfgMgr := config.NewManager(cfgPath)
	cfg, err := cfgMgr.Load()
	errors.Fatal(err)

	st := store.New(dataDir, clock.System())
	errors.Fatal(st.EnsureStatsFile())
	errors.Fatal(st.InitDayLog())

	switch {
	case CLI.ShowDataDir:
		fmt.Println("\nFocus Tracker data is stored in the following locations:")
		fmt.Printf("  Configuration files: %s\n", filepath.Dir(cfgPath))
		fmt.Printf("  Task logs and statistics: %s\n", dataDir)
		fmt.Printf("  Daily logs organized by month: %s\n", st.MonthDir(time.Now()))
		fmt.Printf("  Statistics file: %s\n", st.StatsPath())
		return

	case CLI.Summary:
		errors.Fatal(st.RecomputeStats(time.Now().AddDate(0, 0, -1), time.Now()))
		rows, err := st.ReadDay(time.Now())
		errors.Fatal(err)
		fmt.Println(report.Summary(rows))
		return

	case CLI.Config:
		fmt.Println("\nCurrent configuration:")
		fmt.Printf("reminder_interval: %d\n", cfg.ReminderInterval)
		fmt.Printf("notification_timeout: %d\n", cfg.NotificationTimeout)
		fmt.Printf("auto_start: %t\n", cfg.AutoStart)
		fmt.Printf("log_tasks: %t\n", cfg.LogTasks)
		fmt.Println("\nTo modify, edit the file:")
		fmt.Println(cfgPath)
		return

	case CLI.Install:
		execPath, err := os.Executable()
		errors.Fatal(err)
		entryPath, err := autostart.Install(execPath)
		errors.Fatal(err)
		fmt.Printf("Startup script created at %s\n", entryPath)
		fmt.Println("Focus Tracker will now start automatically on boot.")
		return
	}

	if err := notify.CheckDependencies(); err != nil {
		fmt.Fprintln(os.Stderr, errors.Format(err))
		fmt.Fprintln(os.Stderr, notify.InstallHint)
		os.Exit(1)
	}

	errors.Fatal(runSession(cfgMgr, st))
}

// runSession runs the interactive loop with the terminal held in character
// mode, guaranteeing restoration on every exit path before the process ends.
func runSession(cfgMgr *config.Manager, st *store.Store) error {
	keys, fallback, err := keyreader.Open()
	if err != nil {
		return err
	}
	defer keys.Close()

	if fallback {
		fmt.Println("Warning: terminal character mode unavailable; commands require Enter.")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sess := session.New(session.Options{
		Config:   cfgMgr,
		Store:    st,
		Clock:    clock.System(),
		Keys:     keys,
		Notifier: notify.NewDesktop(),
		Out:      os.Stdout,
		Idle:     time.Duration(CLI.Idle * float64(time.Second)),
	})
	return sess.Run(ctx)
}

package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/djb242/inkwell/internal/config"
	"github.com/djb242/inkwell/internal/logging"
	"github.com/djb242/inkwell/internal/persist"
	"github.com/djb242/inkwell/internal/remote"
	"github.com/djb242/inkwell/internal/store"
	"github.com/djb242/inkwell/internal/tui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.Initialize(cfg.Debug, cfg.DebugFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
		os.Exit(1)
	}

	cache, err := persist.Open(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer cache.Close()

	st := store.New()

	// Seed from the local mirror before the bridge starts observing, so
	// the initial load does not echo straight back into a save.
	if bundle, ok, err := cache.Load(); err != nil {
		logger.Error("local load failed", "error", err)
	} else if ok {
		st.Replace(bundle)
	}

	var rc persist.Remote
	if cfg.SyncURL != "" {
		rc = remote.NewClient(cfg.SyncURL, cfg.SyncToken)
	}

	bridge := persist.NewBridge(st, cache, rc, logger)
	bridge.Attach()

	app := tui.NewApp(st, bridge, cfg)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

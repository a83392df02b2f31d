package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"deckgrip/internal/config"
	"deckgrip/internal/deck"
	"deckgrip/internal/eventbus"
	"deckgrip/internal/ui"
)

// version is stamped by the release build
var version = "dev"

func main() {
	// Parse command line arguments
	var (
		targetDir   string
		themeFlag   string
		showVersion bool
	)
	flag.StringVar(&targetDir, "dir", "", "Deck directory to open")
	flag.StringVar(&targetDir, "d", "", "Deck directory to open (shorthand)")
	flag.StringVar(&themeFlag, "theme", "", "Color theme: mocha, latte, frappe, macchiato or auto")
	flag.BoolVar(&showVersion, "version", false, "Print the version and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("deckgrip %s\n", version)
		return
	}

	// If no directory specified, check for remaining args
	if targetDir == "" && flag.NArg() > 0 {
		targetDir = flag.Arg(0)
	}

	// If still no directory, use current directory
	if targetDir == "" {
		var err error
		targetDir, err = os.Getwd()
		if err != nil {
			fmt.Printf("Error getting current directory: %v\n", err)
			os.Exit(1)
		}
	}

	// Resolve to absolute path
	absDir, err := filepath.Abs(targetDir)
	if err != nil {
		fmt.Printf("Error resolving path: %v\n", err)
		os.Exit(1)
	}
	if info, err := os.Stat(absDir); err != nil || !info.IsDir() {
		fmt.Printf("Not a directory: %s\n", absDir)
		os.Exit(1)
	}

	// Set up logging
	logFile, err := os.OpenFile("deckgrip.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Create event bus
	bus := eventbus.New()

	// Load configuration from the deck directory with event bus support
	configSvc := config.NewServiceWithBus(bus)
	cfg := loadOrCreateConfig(configSvc, absDir)
	if themeFlag != "" {
		cfg.Theme = themeFlag
	}

	// The tab strip marks click zones; the global manager resolves them
	zone.NewGlobal()

	// Create UI model; its store subscribes to scan events
	uiModel := ui.NewModel(bus, cfg)

	// Initialize the deck scanner
	scanner := deck.NewScanner(bus, deck.Options{
		Extensions:   cfg.Extensions,
		PreviewLines: cfg.PreviewLines,
	})

	// Create Bubble Tea program
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.UISettings.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(uiModel, opts...)
	uiModel.SetProgram(p)

	// Set up event forwarding to UI
	eventChan := make(chan eventbus.DomainEvent, 100)
	forward := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			// Channel full, drop event
			log.Println("Event channel full, dropping event")
		}
	}
	for _, eventType := range []eventbus.EventType{
		eventbus.EventScanStarted,
		eventbus.EventScanCompleted,
		eventbus.EventDeckChanged,
		eventbus.EventStaleReference,
		eventbus.EventUnknownCommand,
		eventbus.EventError,
		eventbus.EventConfigSaved,
	} {
		bus.Subscribe(eventType, forward)
	}

	// Cursor diagnostics go to the log only
	bus.Subscribe(eventbus.EventCursorMoved, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.CursorMovedEvent); ok {
			log.Printf("Cursor moved %d -> %d", event.OldIndex, event.NewIndex)
		}
	})

	// Start forwarding events to UI in background
	go func() {
		for event := range eventChan {
			p.Send(ui.EventMsg{Event: event})
		}
	}()

	// Start initial scan
	go scanner.StartScan(ctx, cfg.DeckDir)

	// Readiness marker for the test harness
	if os.Getenv("DECKGRIP_E2E_TEST") == "1" {
		fmt.Println("__READY__")
	}

	// Run the UI
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}

	// Cleanup
	scanner.StopScan()
	close(eventChan)
	bus.Close()
	cancel()
}

// loadOrCreateConfig loads the deck config or writes a fresh default one
func loadOrCreateConfig(configSvc config.Service, deckDir string) *config.Config {
	configPath := filepath.Join(deckDir, config.FileName)

	if _, err := os.Stat(configPath); err == nil {
		if cfg, err := configSvc.LoadFromPath(configPath); err == nil {
			log.Printf("Loaded config from %s", configPath)
			cfg.DeckDir = deckDir
			return cfg
		}
	}

	// No config or failed to load - create new one
	log.Printf("Creating new config for %s", deckDir)
	cfg := config.DefaultConfig()
	cfg.DeckDir = deckDir

	if err := configSvc.SaveToPath(cfg, configPath); err != nil {
		log.Printf("Failed to save config: %v", err)
	}

	return cfg
}

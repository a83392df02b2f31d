package deck

import (
	"bufio"
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"deckgrip/internal/domain"
	"deckgrip/internal/eventbus"
)

const (
	maxDepth    = 5  // how deep below the deck root we look for cards
	titleWindow = 20 // lines of a markdown file searched for a heading
)

// dirs that never contain cards worth showing
var skipDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	"target":       true,
	"__pycache__":  true,
	".git":         true,
}

// Scanner finds card files under the deck directory
type Scanner interface {
	StartScan(ctx context.Context, root string) error
	StopScan()
}

// Options controls which files become cards and how much of them is read
type Options struct {
	Extensions   []string
	PreviewLines int
}

// scanner is the concrete implementation
type scanner struct {
	bus          eventbus.EventBus
	exts         map[string]bool
	previewLines int

	mu         sync.Mutex
	isScanning bool
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup

	readerPool chan struct{} // limits concurrent file reads
}

// NewScanner creates a new deck scanner
func NewScanner(bus eventbus.EventBus, opts Options) Scanner {
	exts := make(map[string]bool, len(opts.Extensions))
	for _, e := range opts.Extensions {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		exts[e] = true
	}
	previewLines := opts.PreviewLines
	if previewLines <= 0 {
		previewLines = 12
	}

	sc := &scanner{
		bus:          bus,
		exts:         exts,
		previewLines: previewLines,
		readerPool:   make(chan struct{}, 5),
	}

	// Subscribe to scan requests
	bus.Subscribe(eventbus.EventScanRequested, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ScanRequestedEvent); ok {
			go sc.StartScan(context.Background(), event.Root)
		}
	})

	return sc
}

// StartScan starts scanning the deck directory for cards
func (sc *scanner) StartScan(ctx context.Context, root string) error {
	sc.mu.Lock()
	if sc.isScanning {
		sc.mu.Unlock()
		return fmt.Errorf("scan already in progress")
	}
	sc.isScanning = true

	scanCtx, cancel := context.WithCancel(ctx)
	sc.cancelFunc = cancel
	sc.mu.Unlock()

	sc.bus.Publish(eventbus.ScanStartedEvent{Root: root})

	sc.wg.Add(1)
	go func() {
		defer sc.wg.Done()

		found := sc.scanDeck(scanCtx, root)

		sc.mu.Lock()
		sc.isScanning = false
		sc.cancelFunc = nil
		sc.mu.Unlock()

		sc.bus.Publish(eventbus.ScanCompletedEvent{CardsFound: found})
	}()

	return nil
}

// StopScan stops any ongoing scan
func (sc *scanner) StopScan() {
	sc.mu.Lock()
	if sc.cancelFunc != nil {
		sc.cancelFunc()
	}
	sc.mu.Unlock()

	sc.wg.Wait()
}

// scanDeck walks the deck directory and publishes a card per matching
// file. All card events are on the bus before it returns.
func (sc *scanner) scanDeck(ctx context.Context, root string) int {
	var found atomic.Int64
	var readers sync.WaitGroup

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			log.Printf("Error walking path %s: %v", path, err)
			return nil // Continue walking
		}

		if d.IsDir() {
			if path == root {
				return nil
			}
			name := d.Name()
			if strings.HasPrefix(name, ".") || skipDirs[name] {
				return filepath.SkipDir
			}
			relPath, _ := filepath.Rel(root, path)
			if strings.Count(relPath, string(filepath.Separator)) >= maxDepth {
				return filepath.SkipDir
			}
			return nil
		}

		name := d.Name()
		if strings.HasPrefix(name, ".") {
			return nil
		}
		if !sc.exts[strings.ToLower(filepath.Ext(name))] {
			return nil
		}

		info, ierr := d.Info()
		if ierr != nil {
			log.Printf("Error reading file info for %s: %v", path, ierr)
			return nil
		}

		readers.Add(1)
		go func(p string, size int64, mod time.Time) {
			defer readers.Done()
			sc.readerPool <- struct{}{}
			defer func() { <-sc.readerPool }()

			card := sc.buildCard(p, size, mod)
			sc.bus.Publish(eventbus.CardDiscoveredEvent{Card: card})
			found.Add(1)
		}(path, info.Size(), info.ModTime())

		return nil
	})

	readers.Wait()

	if err != nil && err != context.Canceled {
		log.Printf("Error scanning deck %s: %v", root, err)
		sc.bus.Publish(eventbus.ErrorEvent{
			Message: fmt.Sprintf("Failed to scan %s", root),
			Err:     err,
		})
	}

	return int(found.Load())
}

// buildCard reads the head of a file and turns it into a card. Read
// failures still yield a card so the deck reflects the directory.
func (sc *scanner) buildCard(path string, size int64, mod time.Time) domain.Card {
	name := filepath.Base(path)
	ext := strings.ToLower(filepath.Ext(name))
	card := domain.Card{
		Path:    path,
		Name:    name,
		Title:   strings.TrimSuffix(name, filepath.Ext(name)),
		Ext:     ext,
		Size:    size,
		ModTime: mod,
	}

	f, err := os.Open(path)
	if err != nil {
		log.Printf("Error opening card %s: %v", path, err)
		return card
	}
	defer f.Close()

	isMarkdown := ext == ".md" || ext == ".markdown"
	titled := !isMarkdown

	reader := bufio.NewScanner(f)
	reader.Buffer(make([]byte, 64*1024), 1024*1024)

	preview := make([]string, 0, sc.previewLines)
	for lineNo := 0; reader.Scan(); lineNo++ {
		line := reader.Text()
		if len(preview) < sc.previewLines {
			preview = append(preview, line)
		}
		if !titled && lineNo < titleWindow && strings.HasPrefix(line, "# ") {
			card.Title = strings.TrimSpace(strings.TrimPrefix(line, "# "))
			titled = true
		}
		if len(preview) >= sc.previewLines && (titled || lineNo >= titleWindow) {
			break
		}
	}
	if err := reader.Err(); err != nil {
		log.Printf("Error reading card %s: %v", path, err)
	}

	card.Preview = preview
	return card
}

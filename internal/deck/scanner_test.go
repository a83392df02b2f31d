package deck

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"deckgrip/internal/domain"
	"deckgrip/internal/eventbus"
)

func writeFixture(t *testing.T, root, rel, body string) string {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func newScanFixture(t *testing.T) (string, eventbus.EventBus, *Store, Scanner, <-chan int) {
	t.Helper()
	root := t.TempDir()
	bus := eventbus.New()
	t.Cleanup(bus.Close)

	store := NewStore(bus, domain.SortByName)
	sc := NewScanner(bus, Options{
		Extensions:   []string{".md", ".txt", ".go"},
		PreviewLines: 4,
	})

	deckCh := make(chan int, 8)
	bus.Subscribe(eventbus.EventDeckChanged, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.DeckChangedEvent); ok {
			deckCh <- ev.Count
		}
	})

	return root, bus, store, sc, deckCh
}

func TestScanFindsMatchingFiles(t *testing.T) {
	root, _, store, sc, deckCh := newScanFixture(t)

	writeFixture(t, root, "alpha.md", "# Alpha Notes\n\nbody text\n")
	writeFixture(t, root, "beta.txt", "plain text card\n")
	writeFixture(t, root, "gamma.go", "package main\n\nfunc main() {}\n")
	writeFixture(t, root, "noise.bin", "\x00\x01")
	writeFixture(t, root, ".hidden.md", "# Hidden\n")
	writeFixture(t, root, "sub/delta.md", "no heading here\n")
	writeFixture(t, root, "node_modules/omega.md", "# Vendored\n")
	writeFixture(t, root, ".secret/epsilon.md", "# Secret\n")

	require.NoError(t, sc.StartScan(context.Background(), root))
	require.Equal(t, 4, waitForCount(t, deckCh))

	names := cardNames(store.Cards())
	require.Equal(t, []string{"alpha.md", "beta.txt", "delta.md", "gamma.go"}, names)

	alpha, ok := store.Card(0)
	require.True(t, ok)
	require.Equal(t, "Alpha Notes", alpha.Title)
	require.Equal(t, ".md", alpha.Ext)
	require.NotEmpty(t, alpha.Preview)

	beta, _ := store.Card(1)
	require.Equal(t, "beta", beta.Title)

	delta, _ := store.Card(2)
	require.Equal(t, "delta", delta.Title)
}

func TestRescanSweepsDeletedFiles(t *testing.T) {
	root, _, store, sc, deckCh := newScanFixture(t)

	writeFixture(t, root, "keep.md", "stays\n")
	gone := writeFixture(t, root, "gone.md", "leaves\n")

	require.NoError(t, sc.StartScan(context.Background(), root))
	require.Equal(t, 2, waitForCount(t, deckCh))

	require.NoError(t, os.Remove(gone))

	require.NoError(t, sc.StartScan(context.Background(), root))
	require.Equal(t, 1, waitForCount(t, deckCh))
	require.Equal(t, []string{"keep.md"}, cardNames(store.Cards()))
}

func TestScanRequestedEventTriggersScan(t *testing.T) {
	root, bus, store, _, deckCh := newScanFixture(t)

	writeFixture(t, root, "solo.md", "# Solo\n")

	bus.Publish(eventbus.ScanRequestedEvent{Root: root})
	require.Equal(t, 1, waitForCount(t, deckCh))
	require.Equal(t, []string{"solo.md"}, cardNames(store.Cards()))
}

func TestScannerNormalizesExtensions(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()

	sc := NewScanner(bus, Options{Extensions: []string{"md", ".TXT ", ""}}).(*scanner)

	require.True(t, sc.exts[".md"])
	require.True(t, sc.exts[".txt"])
	require.False(t, sc.exts[""])
	require.Len(t, sc.exts, 2)
}

func TestBuildCardPreviewAndTitle(t *testing.T) {
	root := t.TempDir()
	sc := &scanner{previewLines: 3}

	t.Run("markdown heading becomes the title", func(t *testing.T) {
		path := writeFixture(t, root, "titled.md", "intro line\n# The Real Title\nmore\nand more\n")
		card := sc.buildCard(path, 10, time.Now())

		require.Equal(t, "The Real Title", card.Title)
		require.Equal(t, []string{"intro line", "# The Real Title", "more"}, card.Preview)
	})

	t.Run("heading beyond the search window is ignored", func(t *testing.T) {
		body := ""
		for i := 0; i < titleWindow+5; i++ {
			body += "filler\n"
		}
		body += "# Too Late\n"
		path := writeFixture(t, root, "late.md", body)
		card := sc.buildCard(path, 10, time.Now())

		require.Equal(t, "late", card.Title)
		require.Len(t, card.Preview, 3)
	})

	t.Run("non-markdown keeps the file stem", func(t *testing.T) {
		path := writeFixture(t, root, "script.go", "// # not a heading\npackage main\n")
		card := sc.buildCard(path, 10, time.Now())

		require.Equal(t, "script", card.Title)
	})

	t.Run("unreadable file still yields a card", func(t *testing.T) {
		card := sc.buildCard(filepath.Join(root, "missing.md"), 0, time.Now())

		require.Equal(t, "missing.md", card.Name)
		require.Empty(t, card.Preview)
	})
}

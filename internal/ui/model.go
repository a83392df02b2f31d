package ui

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/sahilm/fuzzy"

	"deckgrip/internal/config"
	"deckgrip/internal/deck"
	"deckgrip/internal/domain"
	"deckgrip/internal/eventbus"
	"deckgrip/internal/ring"
	"deckgrip/internal/ui/input"
	inputtypes "deckgrip/internal/ui/input/types"
	"deckgrip/internal/ui/services/navigation"
	"deckgrip/internal/ui/views"
)

// tabSlotWidth approximates the rendered width of one tab: the label,
// its padding and the separator. Used to size the strip window.
const tabSlotWidth = 20

// Model represents the UI state
type Model struct {
	bus       eventbus.EventBus
	config    *config.Config
	configSvc config.Service

	store *deck.Store
	nav   *navigation.Service
	pager *Pager

	inputHandler *input.Handler
	renderer     *views.Renderer

	width  int
	height int

	visible     []domain.Card // deck after the filter, in display order
	filterQuery string
	sortKey     string

	scanning      bool
	lastScan      time.Time
	statusMessage string
	statusIsError bool
	showHelp      bool
	showPreview   bool
	inPagerMode   bool // tracks if we're currently in pager mode

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model
func NewModel(bus eventbus.EventBus, cfg *config.Config) *Model {
	m := &Model{
		bus:          bus,
		config:       cfg,
		configSvc:    config.NewServiceWithBus(bus),
		store:        deck.NewStore(bus, domain.SortMode(cfg.Sort)),
		nav:          navigation.NewService(bus, cfg.StartIndex),
		pager:        NewPager(nil),
		inputHandler: input.New(),
		renderer:     views.NewRenderer(cfg.Theme),
		sortKey:      cfg.Sort,
		showPreview:  cfg.UISettings.ShowPreview,
		lastScan:     time.Now(),
	}

	// The controller only ever sees the filtered deck
	m.nav.SetQueryFunction(func() int { return len(m.visible) })

	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	if m.pager != nil {
		m.pager.SetProgram(p)
	}
}

// Store exposes the deck store, used by the entrypoint for wiring
func (m *Model) Store() *deck.Store {
	return m.store
}

// The model is the read-only context the input modes classify against.

func (m *Model) CurrentIndex() int { return m.nav.Cursor() }

func (m *Model) TotalItems() int { return len(m.visible) }

func (m *Model) CurrentCardPath() string {
	if card, ok := m.currentCard(); ok {
		return card.Path
	}
	return ""
}

func (m *Model) FilterQuery() string { return m.filterQuery }

func (m *Model) CurrentSort() string { return m.sortKey }

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return tea.Tick(time.Millisecond*80, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.nav.SetWindowSize(tabsFor(msg.Width))

	case tea.KeyMsg:
		// Handle the help popup first
		if m.showHelp {
			switch msg.String() {
			case "esc", "?", "q":
				m.showHelp = false
				return m, nil
			}
		}

		// Handle input through the mode handler
		actions, cmd := m.inputHandler.HandleKey(msg, m)

		// Process actions
		cmds := []tea.Cmd{}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}

		for _, action := range actions {
			if actionCmd := m.processAction(action); actionCmd != nil {
				cmds = append(cmds, actionCmd)
			}
		}

		return m, tea.Batch(cmds...)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	default:
		// Handle non-keyboard messages
		if cmd := m.inputHandler.Update(msg); cmd != nil {
			return m, cmd
		}
		return m.handleNonKeyboardMsg(msg)
	}

	return m, nil
}

// handleMouse maps wheel and click input onto deck navigation
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if !m.config.UISettings.Mouse {
		return nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelLeft:
		if msg.Action == tea.MouseActionPress {
			m.nav.Navigate(ring.CommandPrevious)
		}

	case tea.MouseButtonWheelDown, tea.MouseButtonWheelRight:
		if msg.Action == tea.MouseActionPress {
			m.nav.Navigate(ring.CommandNext)
		}

	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionRelease {
			return nil
		}
		for i := range m.visible {
			if zone.Get(views.ZoneID(i)).InBounds(msg) {
				m.nav.MoveToIndex(i)
				break
			}
		}
	}

	return nil
}

// handleNonKeyboardMsg handles non-keyboard messages
func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EventMsg:
		return m, m.handleEvent(msg.Event)

	case tickMsg:
		// Don't continue tick loop if we're in pager mode
		if m.inPagerMode {
			return m, nil
		}
		m.pollRescan()
		return m, tick()

	case pagerDoneMsg:
		if msg.err != nil {
			// Pager failed: log and surface briefly
			log.Printf("Pager failed for %s: %v", msg.path, msg.err)
			return m, m.setError("Pager failed")
		}
		// Pager succeeded, RestoreTerminal() should have restored the screen
		return m, nil

	case yankDoneMsg:
		if msg.err != nil {
			log.Printf("Clipboard copy failed: %v", msg.err)
			return m, m.setError("Copy failed")
		}
		return m, m.setStatus(fmt.Sprintf("Copied %s", msg.what))

	case pauseRenderingMsg:
		// Signal that rendering should be paused for external pager
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		// Signal that rendering should resume after external pager
		// Bubble Tea's RestoreTerminal() should handle the actual resuming
		m.inPagerMode = false
		return m, nil

	case clearStatusMsg:
		m.statusMessage = ""
		m.statusIsError = false
		return m, nil

	case quitMsg:
		if msg.saveConfig && m.sortKey != m.config.Sort {
			m.config.Sort = m.sortKey
			path := filepath.Join(m.config.DeckDir, config.FileName)
			if err := m.configSvc.SaveToPath(m.config, path); err != nil {
				log.Printf("Error saving config: %v", err)
			}
		}
		return m, tea.Quit

	default:
		// Other messages are handled elsewhere
		return m, nil
	}
}

// handleEvent processes domain events forwarded into the program
func (m *Model) handleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.ScanStartedEvent:
		m.scanning = true
		m.lastScan = time.Now()

	case eventbus.ScanCompletedEvent:
		m.scanning = false
		return m.setStatus(fmt.Sprintf("Scan complete: %d cards", e.CardsFound))

	case eventbus.DeckChangedEvent:
		// The store settled on a new deck; rebuild the filtered view and
		// pull the cursor back into range
		m.refilter()

	case eventbus.CursorMovedEvent:
		// Cursor state lives in the navigation service; re-render only

	case eventbus.StaleReferenceEvent:
		log.Printf("Stale cursor %d of %d resolved to %d", e.Reference, e.Count, e.Resolved)
		return m.setStatus("Deck changed, cursor adjusted")

	case eventbus.UnknownCommandEvent:
		log.Printf("Dropping unmapped navigation command %q", e.Command)

	case eventbus.ErrorEvent:
		log.Printf("Error event: %s: %v", e.Message, e.Err)
		return m.setError(e.Message)

	case eventbus.ConfigSavedEvent:
		log.Printf("Config saved")
	}

	return nil
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	log.Printf("processAction: %T", action)
	switch a := action.(type) {
	case inputtypes.NavigateAction:
		m.nav.Navigate(a.Command)

	case inputtypes.JumpFirstAction:
		m.nav.JumpFirst()

	case inputtypes.JumpLastAction:
		m.nav.JumpLast()

	case inputtypes.OpenPagerAction:
		if card, ok := m.currentCard(); ok {
			return m.openPager(card.Path)
		}

	case inputtypes.OpenHelpAction:
		m.showHelp = !m.showHelp

	case inputtypes.UpdateTextAction:
		// The filter applies live while typing
		m.filterQuery = a.Text
		m.refilter()

	case inputtypes.SubmitTextAction:
		if a.Mode == inputtypes.ModeFilter {
			m.filterQuery = strings.TrimSpace(a.Text)
			m.refilter()
			if m.filterQuery != "" {
				return m.setStatus(fmt.Sprintf("Filter: %s (%d cards)", m.filterQuery, len(m.visible)))
			}
		}

	case inputtypes.CancelTextAction:
		m.filterQuery = ""
		m.refilter()

	case inputtypes.ClearFilterAction:
		m.filterQuery = ""
		m.refilter()
		return m.setStatus("Filter cleared")

	case inputtypes.RefreshAction:
		m.bus.Publish(eventbus.ScanRequestedEvent{Root: m.config.DeckDir})

	case inputtypes.YankAction:
		if card, ok := m.currentCard(); ok {
			return yankCard(card, a.Body)
		}

	case inputtypes.SortByAction:
		return m.applySort(a.Criteria)

	case inputtypes.UpdateSortIndexAction:
		// The sort overlay tracks its own index; nothing to copy here

	case inputtypes.QuitAction:
		save := !a.Force
		return func() tea.Msg { return quitMsg{saveConfig: save} }
	}

	return nil
}

// refilter recomputes the visible deck from the store and the active
// query, then reconciles the cursor against the new count. Matching
// cards keep their deck order so the strip never jumps while typing.
func (m *Model) refilter() {
	cards := m.store.Cards()

	if m.filterQuery == "" {
		m.visible = cards
		m.nav.Reconcile()
		return
	}

	targets := make([]string, len(cards))
	for i, c := range cards {
		targets[i] = c.Title + " " + c.Name
	}

	matches := fuzzy.Find(m.filterQuery, targets)
	matched := make(map[int]bool, len(matches))
	for _, match := range matches {
		matched[match.Index] = true
	}

	visible := make([]domain.Card, 0, len(matches))
	for i, c := range cards {
		if matched[i] {
			visible = append(visible, c)
		}
	}
	m.visible = visible
	m.nav.Reconcile()
}

// applySort publishes the new deck ordering; the store re-sorts and
// answers with a DeckChanged event
func (m *Model) applySort(criteria string) tea.Cmd {
	var mode domain.SortMode
	switch strings.ToLower(strings.TrimSpace(criteria)) {
	case "name", "n":
		mode = domain.SortByName
	case "modified", "m":
		mode = domain.SortByModified
	case "size", "s":
		mode = domain.SortBySize
	default:
		log.Printf("Unknown sort criteria: %s", criteria)
		return nil
	}

	if string(mode) == m.sortKey {
		return nil
	}
	m.sortKey = string(mode)
	m.bus.Publish(eventbus.SortChangedEvent{Mode: mode})
	return m.setStatus(fmt.Sprintf("Sorting by %s", mode))
}

// openPager returns a command that shows the card in ov, pausing and
// resuming rendering around it
func (m *Model) openPager(path string) tea.Cmd {
	return func() tea.Msg {
		// Send pause message to stop rendering
		m.program.Send(pauseRenderingMsg{})

		err := m.pager.ShowCard(path)

		// Send resume message to restart rendering
		m.program.Send(resumeRenderingMsg{})

		return pagerDoneMsg{
			path: path,
			err:  err,
		}
	}
}

// yankCard returns a command that copies the card path or body to the
// system clipboard
func yankCard(card domain.Card, body bool) tea.Cmd {
	return func() tea.Msg {
		if !body {
			return yankDoneMsg{what: "path", err: clipboard.WriteAll(card.Path)}
		}

		content, err := os.ReadFile(card.Path)
		if err != nil {
			return yankDoneMsg{what: "body", err: err}
		}
		return yankDoneMsg{what: card.Name, err: clipboard.WriteAll(string(content))}
	}
}

// pollRescan requests a fresh scan when the poll interval has elapsed
func (m *Model) pollRescan() {
	poll := time.Duration(m.config.PollSeconds) * time.Second
	if poll <= 0 || m.scanning {
		return
	}
	if time.Since(m.lastScan) < poll {
		return
	}
	m.lastScan = time.Now()
	m.bus.Publish(eventbus.ScanRequestedEvent{Root: m.config.DeckDir})
}

func (m *Model) currentCard() (domain.Card, bool) {
	cursor := m.nav.Cursor()
	if cursor < 0 || cursor >= len(m.visible) {
		return domain.Card{}, false
	}
	return m.visible[cursor], true
}

func (m *Model) setStatus(text string) tea.Cmd {
	m.statusMessage = text
	m.statusIsError = false
	return tea.Tick(3*time.Second, func(t time.Time) tea.Msg { return clearStatusMsg{} })
}

func (m *Model) setError(text string) tea.Cmd {
	m.statusMessage = text
	m.statusIsError = true
	return tea.Tick(5*time.Second, func(t time.Time) tea.Msg { return clearStatusMsg{} })
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	state := views.ViewState{
		Width:  m.width,
		Height: m.height,

		Cards:        m.visible,
		Cursor:       m.nav.Cursor(),
		WindowOffset: m.nav.WindowOffset(),
		WindowSize:   m.nav.WindowSize(),
		TotalCards:   m.store.Len(),

		Scanning:      m.scanning,
		StatusMessage: m.statusMessage,
		StatusIsError: m.statusIsError,
		ShowHelp:      m.showHelp,
		ShowPreview:   m.showPreview,

		FilterQuery: m.filterQuery,
		SortKey:     m.sortKey,
	}

	switch m.inputHandler.CurrentMode() {
	case inputtypes.ModeFilter:
		state.InputMode = "filter"
		if ti := m.inputHandler.TextInput(); ti != nil {
			state.TextInput = ti.Value()
		}
	case inputtypes.ModeSortSelect:
		state.InputMode = "sort"
		if ss := m.inputHandler.SortSelect(); ss != nil {
			state.SortOptionIndex = ss.GetCurrentIndex()
		}
	}

	// Scan resolves the zone markers left by the tab strip
	return zone.Scan(m.renderer.Render(state))
}

// tabsFor converts a terminal width into a strip window size
func tabsFor(width int) int {
	tabs := (width - 4) / tabSlotWidth
	if tabs < 1 {
		tabs = 1
	}
	return tabs
}

// tick returns a command that sends a tick message after a delay
func tick() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Package tui provides the terminal user interface for tripgrid.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tripgrid/internal/board"
	"tripgrid/internal/config"
	"tripgrid/internal/dragdrop"
	"tripgrid/internal/grid"
	"tripgrid/internal/itinerary"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeDrag        // An event is grabbed; cursor picks the drop target
	ModePrompt      // Text prompt for destination input
	ModeConfirmQuit
)

// Focus identifies which panel the cursor lives in.
type Focus int

const (
	FocusGrid Focus = iota
	FocusPool
)

// Model is the main TUI model.
type Model struct {
	// Dependencies
	controller *itinerary.Controller
	store      *board.Store
	layout     grid.Layout
	drag       *dragdrop.Controller
	config     *config.Config

	// Theme and styles
	styles *Styles

	// State
	mode       Mode
	focus      Focus
	cursorDay  int // index into store.Days()
	cursorSlot int // slot index within the day column
	cursorPool int // index into the unplaced pool

	// Drag session; valid only in ModeDrag
	session *dragdrop.Session

	// Components
	prompt  textinput.Model
	spin    spinner.Model
	busy    bool // generation or save in flight
	busyMsg string

	// Terminal dimensions and layout
	width        int
	height       int
	scrollOffset int // first visible slot row

	// Messages
	statusMsg  string
	statusTime time.Time

	err error
}

// New creates a new TUI model.
func New(controller *itinerary.Controller, cfg *config.Config) *Model {
	ti := textinput.New()
	ti.Placeholder = "destination, e.g. kyoto-japan"
	ti.CharLimit = 64
	ti.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	t := LoadTheme(cfg.UI.Theme)
	styles := NewStyles(t)
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent))

	layout := grid.NewLayout(cfg.Trip.SlotMinutes)
	store := controller.Store()

	return &Model{
		controller:   controller,
		store:        store,
		layout:       layout,
		drag:         dragdrop.NewController(store, layout),
		config:       cfg,
		styles:       styles,
		mode:         ModeNormal,
		focus:        FocusGrid,
		prompt:       ti,
		spin:         sp,
		scrollOffset: layout.SlotIndexFromTime(cfg.Trip.DayStart),
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return loadPlan(m.controller)
}

// Run starts the TUI.
func Run(controller *itinerary.Controller, cfg *config.Config) error {
	p := tea.NewProgram(*New(controller, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m *Model) setStatus(msg string) {
	m.statusMsg = msg
	m.statusTime = time.Now().Add(3 * time.Second)
}

// visibleSlots returns how many slot rows fit in the current terminal
// height after the header, pool panel, and footer take their share.
func (m *Model) visibleSlots() int {
	reserved := 7 // header, day header, pool title, pool rows, status, footer
	rows := m.height - reserved
	if rows < 4 {
		rows = 4
	}
	if total := m.layout.TotalSlots(); rows > total {
		rows = total
	}
	return rows
}

// clampCursor keeps the cursor inside the current plan dimensions.
func (m *Model) clampCursor() {
	days := m.store.Days()
	if m.cursorDay >= len(days) {
		m.cursorDay = len(days) - 1
	}
	if m.cursorDay < 0 {
		m.cursorDay = 0
	}
	if max := m.layout.TotalSlots() - 1; m.cursorSlot > max {
		m.cursorSlot = max
	}
	if m.cursorSlot < 0 {
		m.cursorSlot = 0
	}
	pool := m.store.Unplaced()
	if m.cursorPool >= len(pool) {
		m.cursorPool = len(pool) - 1
	}
	if m.cursorPool < 0 {
		m.cursorPool = 0
	}
}

// scrollToCursor adjusts the scroll offset so the cursor row stays
// visible.
func (m *Model) scrollToCursor() {
	visible := m.visibleSlots()
	if m.cursorSlot < m.scrollOffset {
		m.scrollOffset = m.cursorSlot
	}
	if m.cursorSlot >= m.scrollOffset+visible {
		m.scrollOffset = m.cursorSlot - visible + 1
	}
	if m.scrollOffset < 0 {
		m.scrollOffset = 0
	}
}

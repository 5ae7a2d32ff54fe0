package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"tripgrid/internal/dragdrop"
	"tripgrid/internal/trip"
)

// handleKeyMsg dispatches key events by interaction mode.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.busy {
		return m, nil
	}

	switch m.mode {
	case ModePrompt:
		return m.handlePromptKeys(msg)
	case ModeConfirmQuit:
		return m.handleConfirmQuitKeys(msg)
	case ModeDrag:
		return m.handleDragKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		if m.store.Dirty() {
			m.mode = ModeConfirmQuit
			return m, nil
		}
		return m, tea.Quit

	case "up", "k", "down", "j", "left", "h", "right", "l", "pgup", "pgdown":
		m.moveCursor(msg.String())
		return m, nil

	case "tab":
		m.toggleFocus()
		return m, nil

	case "g":
		return m.grabAtCursor()

	case "u":
		if e := m.eventAtCursor(); e != nil {
			m.store.Unschedule(e.ID)
			m.clampCursor()
		}
		return m, nil

	case "x":
		if e := m.eventAtCursor(); e != nil {
			m.store.RemoveEvent(e.ID)
			m.clampCursor()
		}
		return m, nil

	case "s":
		m.busy = true
		m.busyMsg = "Saving..."
		return m, tea.Batch(m.spin.Tick, savePlan(m.controller))

	case "G":
		m.mode = ModePrompt
		m.prompt.SetValue(m.controller.Trip().DestinationSlug)
		m.prompt.Focus()
		return m, nil

	case "y":
		return m, copyPlan(m.store.Plan())

	case "r":
		return m, loadPlan(m.controller)
	}

	return m, nil
}

func (m Model) handleDragKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k", "down", "j", "left", "h", "right", "l", "pgup", "pgdown":
		m.moveCursor(msg.String())
		return m, nil

	case "tab":
		m.toggleFocus()
		return m, nil

	case "esc":
		// Aborting commits nothing; the grabbed event stays where it was.
		m.drag.Drop(m.session, dragdrop.Target{Kind: dragdrop.TargetNone})
		m.session = nil
		m.mode = ModeNormal
		m.setStatus("Move cancelled")
		return m, nil

	case "u":
		m.drag.Drop(m.session, dragdrop.Pool())
		m.session = nil
		m.mode = ModeNormal
		m.clampCursor()
		return m, nil

	case "enter", " ":
		m.drag.Drop(m.session, m.dropTarget())
		m.session = nil
		m.mode = ModeNormal
		m.clampCursor()
		return m, nil
	}

	return m, nil
}

func (m Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		m.prompt.Blur()
		return m, nil

	case "enter":
		dest := m.prompt.Value()
		if dest == "" {
			return m, nil
		}
		m.controller.SetDestination(dest)
		m.mode = ModeNormal
		m.prompt.Blur()
		m.busy = true
		m.busyMsg = "Generating itinerary..."
		return m, tea.Batch(m.spin.Tick, generatePlan(m.controller))
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m Model) handleConfirmQuitKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		return m, tea.Quit
	case "s":
		m.mode = ModeNormal
		m.busy = true
		m.busyMsg = "Saving..."
		return m, tea.Batch(m.spin.Tick, savePlan(m.controller))
	default:
		m.mode = ModeNormal
		return m, nil
	}
}

func (m *Model) moveCursor(key string) {
	switch key {
	case "up", "k":
		if m.focus == FocusPool {
			m.cursorPool--
		} else {
			m.cursorSlot--
		}
	case "down", "j":
		if m.focus == FocusPool {
			m.cursorPool++
		} else {
			m.cursorSlot++
		}
	case "left", "h":
		if m.focus == FocusGrid {
			m.cursorDay--
		}
	case "right", "l":
		if m.focus == FocusGrid {
			m.cursorDay++
		}
	case "pgup":
		m.cursorSlot -= m.visibleSlots()
	case "pgdown":
		m.cursorSlot += m.visibleSlots()
	}
	m.clampCursor()
	m.scrollToCursor()
}

func (m *Model) toggleFocus() {
	if m.focus == FocusGrid {
		m.focus = FocusPool
	} else {
		m.focus = FocusGrid
	}
	m.clampCursor()
}

// grabAtCursor starts a drag session for the event under the cursor.
func (m Model) grabAtCursor() (tea.Model, tea.Cmd) {
	e := m.eventAtCursor()
	if e == nil {
		return m, nil
	}
	s, ok := m.drag.Start(e.ID)
	if !ok {
		return m, nil
	}
	m.session = s
	m.mode = ModeDrag
	return m, nil
}

// dropTarget derives the drop target from the current cursor position.
func (m *Model) dropTarget() dragdrop.Target {
	if m.focus == FocusPool {
		return dragdrop.Pool()
	}
	days := m.store.Days()
	if len(days) == 0 {
		return dragdrop.Target{Kind: dragdrop.TargetNone}
	}
	return dragdrop.TimeSlot(days[m.cursorDay].ID, m.cursorSlot)
}

// eventAtCursor returns the event under the cursor, or nil for an empty
// cell.
func (m *Model) eventAtCursor() *trip.Event {
	if m.focus == FocusPool {
		pool := m.store.Unplaced()
		if m.cursorPool < 0 || m.cursorPool >= len(pool) {
			return nil
		}
		e := pool[m.cursorPool]
		return &e
	}

	days := m.store.Days()
	if m.cursorDay < 0 || m.cursorDay >= len(days) {
		return nil
	}
	for _, e := range days[m.cursorDay].Events {
		if !e.Scheduled() {
			continue
		}
		start := m.layout.SlotIndexFromTime(e.StartClock())
		span := m.layout.RowEndFromDuration(e.StartClock(), e.Duration()) - m.layout.RowStartFromTime(e.StartClock())
		if m.cursorSlot >= start && m.cursorSlot < start+span {
			c := e.Clone()
			return &c
		}
	}
	return nil
}

package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.scrollToCursor()
		return m, nil

	case planLoadedMsg:
		m.clampCursor()
		return m, nil

	case planGeneratedMsg:
		m.busy = false
		m.clampCursor()
		m.setStatus(fmt.Sprintf("Generated %d days", len(msg.Plan.Days)))
		return m, clearStatusAfter(3 * time.Second)

	case planSavedMsg:
		m.busy = false
		m.setStatus("Saved")
		return m, clearStatusAfter(3 * time.Second)

	case copiedMsg:
		m.setStatus("Plan copied to clipboard")
		return m, clearStatusAfter(3 * time.Second)

	case errMsg:
		m.busy = false
		m.err = msg.Err
		m.setStatus(fmt.Sprintf("Error: %v", msg.Err))
		return m, clearStatusAfter(5 * time.Second)

	case clearStatusMsg:
		if time.Now().After(m.statusTime) {
			m.statusMsg = ""
		}
		return m, nil
	}

	if m.busy {
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	if m.mode == ModePrompt {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}

	return m, nil
}

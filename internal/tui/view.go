package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"tripgrid/internal/grid"
	"tripgrid/internal/trip"
)

const (
	rulerWidth  = 6
	minColWidth = 12
	maxColWidth = 28
)

type cellKind int

const (
	cellEmpty cellKind = iota
	cellEventStart
	cellEventBody
	cellConnector
	cellConnectorTight
)

type dayCell struct {
	kind    cellKind
	text    string
	eventID string
	cat     trip.Category
}

// View renders the full screen.
func (m Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	days := m.store.Days()
	colWidth := m.colWidth(len(days))

	b.WriteString(m.renderDayHeaders(days, colWidth))
	b.WriteString("\n")
	b.WriteString(m.renderGrid(days, colWidth))
	b.WriteString(m.renderPool())
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

func (m Model) renderHeader() string {
	spec := m.controller.Trip()
	title := m.styles.Title.Render("tripgrid")

	var parts []string
	parts = append(parts, title)
	if spec.DestinationSlug != "" {
		parts = append(parts, m.styles.Header.Render(spec.DestinationSlug))
	}
	parts = append(parts, m.styles.Header.Render(
		fmt.Sprintf("%s - %s", spec.StartDate.Format("Jan 2"), spec.EndDate.Format("Jan 2"))))
	if m.store.Dirty() {
		parts = append(parts, m.styles.Dirty.Render("[modified]"))
	}
	if m.busy {
		parts = append(parts, m.spin.View()+m.styles.Status.Render(m.busyMsg))
	}

	return strings.Join(parts, "  ")
}

func (m Model) renderDayHeaders(days []trip.Day, colWidth int) string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", rulerWidth))
	for i, d := range days {
		label := fmt.Sprintf("%s %s", d.Label, d.Date.Format("Mon 1/2"))
		label = ansi.Truncate(label, colWidth-1, "…")
		cell := padTo(label, colWidth)
		if m.focus == FocusGrid && i == m.cursorDay {
			b.WriteString(m.styles.DayHeader.Render(cell))
		} else {
			b.WriteString(m.styles.Ruler.Render(cell))
		}
	}
	return b.String()
}

func (m Model) renderGrid(days []trip.Day, colWidth int) string {
	visible := m.visibleSlots()
	cells := make([][]dayCell, len(days))
	for i, d := range days {
		cells[i] = m.buildDayCells(d)
	}

	var b strings.Builder
	for row := m.scrollOffset; row < m.scrollOffset+visible && row < m.layout.TotalSlots(); row++ {
		b.WriteString(m.styles.Ruler.Render(padTo(m.layout.SlotToTime(row), rulerWidth)))
		for i := range days {
			b.WriteString(m.renderCell(cells[i][row], i, row, colWidth))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderCell(c dayCell, day, row, colWidth int) string {
	text := ansi.Truncate(c.text, colWidth-1, "…")
	cell := padTo(text, colWidth)

	underCursor := m.focus == FocusGrid && day == m.cursorDay && row == m.cursorSlot
	grabbed := m.mode == ModeDrag && m.session.Active() && c.eventID == m.session.Item.ID && c.eventID != ""

	switch {
	case underCursor:
		return m.styles.Cursor.Render(cell)
	case grabbed:
		return m.styles.Dragging.Render(cell)
	case c.kind == cellEventStart:
		return m.styles.Category(c.cat).Bold(true).Render(cell)
	case c.kind == cellEventBody:
		return m.styles.Category(c.cat).Render(cell)
	case c.kind == cellConnectorTight:
		return m.styles.Tight.Render(cell)
	case c.kind == cellConnector:
		return m.styles.Connector.Render(cell)
	default:
		return m.styles.Cell.Render(cell)
	}
}

// buildDayCells flattens one day's events and travel gaps into per-slot
// cells.
func (m Model) buildDayCells(d trip.Day) []dayCell {
	cells := make([]dayCell, m.layout.TotalSlots())

	for _, e := range d.Events {
		if !e.Scheduled() {
			continue
		}
		start := m.layout.SlotIndexFromTime(e.StartClock())
		span := m.layout.RowEndFromDuration(e.StartClock(), e.Duration()) - m.layout.RowStartFromTime(e.StartClock())
		for s := start; s < start+span && s < len(cells); s++ {
			if s == start {
				cells[s] = dayCell{
					kind:    cellEventStart,
					text:    "▐ " + e.Title,
					eventID: e.ID,
					cat:     e.Metadata.Category,
				}
			} else {
				cells[s] = dayCell{
					kind:    cellEventBody,
					text:    "▐",
					eventID: e.ID,
					cat:     e.Metadata.Category,
				}
			}
		}
	}

	for _, c := range m.connectorsFor(d) {
		kind := cellConnector
		marker := "┊"
		if c.Tight {
			kind = cellConnectorTight
			marker = "┊!"
		}
		label := marker + " " + fmtGap(c.GapMinutes)
		// Connector rows are 1-based and span [StartRow, EndRow).
		first := c.StartRow - 1
		last := c.EndRow - 2
		for s := first; s <= last && s < len(cells); s++ {
			if s < 0 || cells[s].kind != cellEmpty {
				continue
			}
			text := marker
			if s == first {
				text = label
			}
			cells[s] = dayCell{kind: kind, text: text}
		}
	}

	return cells
}

func (m Model) connectorsFor(d trip.Day) []grid.Connector {
	return m.layout.Connectors(d.Events)
}

func (m Model) renderPool() string {
	pool := m.store.Unplaced()

	var b strings.Builder
	title := fmt.Sprintf("Unplaced (%d)", len(pool))
	if m.focus == FocusPool {
		b.WriteString(m.styles.PoolTitle.Render(title))
	} else {
		b.WriteString(m.styles.Ruler.Render(title))
	}
	b.WriteString("\n")

	if len(pool) == 0 {
		b.WriteString(m.styles.Status.Render("  nothing waiting"))
		b.WriteString("\n")
		return b.String()
	}

	for i, e := range pool {
		line := fmt.Sprintf("  %s (%s)", e.Title, fmtGap(e.Duration()))
		line = ansi.Truncate(line, m.width-1, "…")
		switch {
		case m.focus == FocusPool && i == m.cursorPool:
			b.WriteString(m.styles.Cursor.Render(line))
		case m.mode == ModeDrag && m.session.Active() && m.session.Item.ID == e.ID:
			b.WriteString(m.styles.Dragging.Render(line))
		default:
			b.WriteString(m.styles.Category(e.Metadata.Category).Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderStatus() string {
	if m.mode == ModePrompt {
		return m.styles.Prompt.Render("Destination: ") + m.prompt.View()
	}
	if m.mode == ModeConfirmQuit {
		return m.styles.Dirty.Render("Unsaved changes. Quit anyway? (y)es / (s)ave / any other key cancels")
	}
	if m.statusMsg != "" {
		return m.styles.Status.Render(m.statusMsg)
	}
	return ""
}

func (m Model) renderFooter() string {
	var keys string
	switch m.mode {
	case ModeDrag:
		keys = "move: hjkl  drop: enter  to pool: u  cancel: esc"
	case ModePrompt:
		keys = "generate: enter  cancel: esc"
	default:
		keys = "move: hjkl  grab: g  unschedule: u  delete: x  save: s  generate: G  copy: y  pool: tab  quit: q"
	}
	return m.styles.Footer.Render(ansi.Truncate(keys, m.width-1, "…"))
}

func (m Model) colWidth(numDays int) int {
	if numDays == 0 {
		return minColWidth
	}
	w := (m.width - rulerWidth) / numDays
	if w < minColWidth {
		w = minColWidth
	}
	if w > maxColWidth {
		w = maxColWidth
	}
	return w
}

func padTo(s string, width int) string {
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func fmtGap(minutes int) string {
	h := minutes / 60
	mm := minutes % 60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", mm)
	case mm == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh%02dm", h, mm)
	}
}

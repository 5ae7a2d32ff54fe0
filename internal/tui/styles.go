package tui

import (
	"github.com/charmbracelet/lipgloss"

	"tripgrid/internal/trip"
)

// Styles holds all lipgloss styles derived from a theme.
type Styles struct {
	theme Theme

	Title     lipgloss.Style
	Header    lipgloss.Style
	DayHeader lipgloss.Style
	Ruler     lipgloss.Style
	Cell      lipgloss.Style
	Cursor    lipgloss.Style
	Dragging  lipgloss.Style
	Connector lipgloss.Style
	Tight     lipgloss.Style
	Pool      lipgloss.Style
	PoolTitle lipgloss.Style
	Status    lipgloss.Style
	Dirty     lipgloss.Style
	Footer    lipgloss.Style
	Prompt    lipgloss.Style

	categories map[trip.Category]lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(t Theme) *Styles {
	s := &Styles{theme: t}

	s.Title = lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)).Bold(true)
	s.Header = lipgloss.NewStyle().Foreground(lipgloss.Color(t.Fg))
	s.DayHeader = lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)).Bold(true)
	s.Ruler = lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted))
	s.Cell = lipgloss.NewStyle().Foreground(lipgloss.Color(t.Fg))
	s.Cursor = lipgloss.NewStyle().Background(lipgloss.Color(t.BgSelection)).Foreground(lipgloss.Color(t.Fg)).Bold(true)
	s.Dragging = lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning)).Bold(true)
	s.Connector = lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted))
	s.Tight = lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning))
	s.Pool = lipgloss.NewStyle().Foreground(lipgloss.Color(t.Fg))
	s.PoolTitle = lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)).Bold(true)
	s.Status = lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted))
	s.Dirty = lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning)).Bold(true)
	s.Footer = lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted))
	s.Prompt = lipgloss.NewStyle().Foreground(lipgloss.Color(t.Fg))

	s.categories = map[trip.Category]lipgloss.Style{
		trip.CategoryActivity:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Activity)),
		trip.CategoryDining:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Dining)),
		trip.CategoryLodging:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Lodging)),
		trip.CategoryLogistics: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Logistics)),
		trip.CategoryTransit:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Transit)),
	}

	return s
}

// Category returns the style for an event category, falling back to the
// plain cell style for unknown categories.
func (s *Styles) Category(c trip.Category) lipgloss.Style {
	if st, ok := s.categories[c]; ok {
		return st
	}
	return s.Cell
}

package tui

import (
	"context"
	"encoding/json"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"tripgrid/internal/itinerary"
	"tripgrid/internal/trip"
)

// planLoadedMsg is sent when the plan has been seeded into the board.
type planLoadedMsg struct{}

// planGeneratedMsg is sent when generation completes.
type planGeneratedMsg struct {
	Plan *trip.Plan
}

// planSavedMsg is sent when the plan is saved successfully.
type planSavedMsg struct{}

// copiedMsg is sent when the plan JSON landed on the clipboard.
type copiedMsg struct{}

// errMsg is sent when an operation fails.
type errMsg struct {
	Err error
}

// clearStatusMsg is sent to clear the status message.
type clearStatusMsg struct{}

func loadPlan(c *itinerary.Controller) tea.Cmd {
	return func() tea.Msg {
		if err := c.Load(context.Background()); err != nil {
			return errMsg{Err: err}
		}
		return planLoadedMsg{}
	}
}

func generatePlan(c *itinerary.Controller) tea.Cmd {
	return func() tea.Msg {
		p, err := c.Generate(context.Background())
		if err != nil {
			return errMsg{Err: err}
		}
		return planGeneratedMsg{Plan: p}
	}
}

func savePlan(c *itinerary.Controller) tea.Cmd {
	return func() tea.Msg {
		if err := c.Save(context.Background()); err != nil {
			return errMsg{Err: err}
		}
		return planSavedMsg{}
	}
}

func copyPlan(p *trip.Plan) tea.Cmd {
	return func() tea.Msg {
		if p == nil {
			return errMsg{Err: itinerary.ErrNoPlan}
		}
		data, err := json.MarshalIndent(p, "", "  ")
		if err != nil {
			return errMsg{Err: err}
		}
		if err := clipboard.WriteAll(string(data)); err != nil {
			return errMsg{Err: err}
		}
		return copiedMsg{}
	}
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

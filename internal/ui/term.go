package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"tripgrid/internal/trip"
)

// Color definitions for consistent styling across the UI.
var (
	colorHeader = color.New(color.Bold)
	colorMuted  = color.New(color.FgWhite, color.Faint)
	colorStats  = color.New(color.FgGreen)
	colorGap    = color.New(color.FgYellow)

	categoryColors = map[trip.Category]*color.Color{
		trip.CategoryActivity:  color.New(color.FgGreen),
		trip.CategoryDining:    color.New(color.FgYellow),
		trip.CategoryLodging:   color.New(color.FgMagenta),
		trip.CategoryLogistics: color.New(color.FgRed),
		trip.CategoryTransit:   color.New(color.FgCyan),
	}
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// formatCategory formats text in the category's color.
func formatCategory(c trip.Category, s string) string {
	if col, ok := categoryColors[c]; ok {
		return col.Sprint(s)
	}
	return s
}

// formatHeader formats text as a header.
func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

// formatMuted formats text as secondary/muted.
func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}

// formatStats formats text for statistics.
func formatStats(s string) string {
	return colorStats.Sprint(s)
}

// formatGap formats a travel-gap annotation.
func formatGap(s string) string {
	return colorGap.Sprint(s)
}

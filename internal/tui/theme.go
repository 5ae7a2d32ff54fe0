package tui

import "strings"

// Theme holds all colors for a TUI theme. Values are hex strings fed to
// lipgloss.
type Theme struct {
	Name        string
	Bg          string // base background
	BgHighlight string // event blocks, subtle highlight
	BgSelection string // cursor, selection
	Fg          string // primary foreground
	FgMuted     string // ruler, muted elements
	Accent      string // title, borders
	Warning     string // dirty marker, drag mode

	// Category colors
	Activity  string
	Dining    string
	Lodging   string
	Logistics string
	Transit   string
}

var themes = map[string]Theme{
	"mocha": {
		Name:        "mocha",
		Bg:          "#1e1e2e",
		BgHighlight: "#313244",
		BgSelection: "#45475a",
		Fg:          "#cdd6f4",
		FgMuted:     "#6c7086",
		Accent:      "#89b4fa",
		Warning:     "#f9e2af",
		Activity:    "#a6e3a1",
		Dining:      "#fab387",
		Lodging:     "#cba6f7",
		Logistics:   "#f38ba8",
		Transit:     "#94e2d5",
	},
	"macchiato": {
		Name:        "macchiato",
		Bg:          "#24273a",
		BgHighlight: "#363a4f",
		BgSelection: "#494d64",
		Fg:          "#cad3f5",
		FgMuted:     "#6e738d",
		Accent:      "#8aadf4",
		Warning:     "#eed49f",
		Activity:    "#a6da95",
		Dining:      "#f5a97f",
		Lodging:     "#c6a0f6",
		Logistics:   "#ed8796",
		Transit:     "#8bd5ca",
	},
	"frappe": {
		Name:        "frappe",
		Bg:          "#303446",
		BgHighlight: "#414559",
		BgSelection: "#51576d",
		Fg:          "#c6d0f5",
		FgMuted:     "#737994",
		Accent:      "#8caaee",
		Warning:     "#e5c890",
		Activity:    "#a6d189",
		Dining:      "#ef9f76",
		Lodging:     "#ca9ee6",
		Logistics:   "#e78284",
		Transit:     "#81c8be",
	},
	"latte": {
		Name:        "latte",
		Bg:          "#eff1f5",
		BgHighlight: "#ccd0da",
		BgSelection: "#bcc0cc",
		Fg:          "#4c4f69",
		FgMuted:     "#8c8fa1",
		Accent:      "#1e66f5",
		Warning:     "#df8e1d",
		Activity:    "#40a02b",
		Dining:      "#fe640b",
		Lodging:     "#8839ef",
		Logistics:   "#d20f39",
		Transit:     "#179299",
	},
}

// LoadTheme returns the named theme, falling back to frappe for unknown
// names.
func LoadTheme(name string) Theme {
	if t, ok := themes[strings.ToLower(name)]; ok {
		return t
	}
	return themes["frappe"]
}

// AvailableThemes returns the theme names.
func AvailableThemes() []string {
	return []string{"mocha", "macchiato", "frappe", "latte"}
}

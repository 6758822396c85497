// Package style provides the palette and glyphs shared by the console output.
package style

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Teal   = lipgloss.Color("#0F766E")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Glyphs.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "●"
)

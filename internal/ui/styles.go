package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Layout constants - single source of truth for all viewport dimensions
const (
	MinViewportWidth  = 80
	MaxViewportWidth  = 140
	DefaultWidth      = 100 // Used when terminal size is unknown
	DefaultHeight     = 32
	MinViewportHeight = 20
	BorderPadding     = 2 // left/right padding inside borders
)

// Layout holds computed dimensions for the current terminal size
type Layout struct {
	ViewportWidth  int // clamped terminal width
	ViewportHeight int // terminal height, at least MinViewportHeight
	InnerWidth     int // exact width for content inside borders
	TableWidth     int // sum of column widths available to bubbles/table
	TableHeight    int // visible table rows
}

// NewLayout creates a Layout from the terminal size, clamping to min/max
func NewLayout(terminalWidth, terminalHeight int) Layout {
	if terminalWidth <= 0 {
		terminalWidth = DefaultWidth
	}
	if terminalHeight <= 0 {
		terminalHeight = DefaultHeight
	}
	width := clamp(terminalWidth, MinViewportWidth, MaxViewportWidth)
	height := terminalHeight
	if height < MinViewportHeight {
		height = MinViewportHeight
	}

	// header, filter summary, footer box and borders take the rest
	tableHeight := height - 14
	if tableHeight < 5 {
		tableHeight = 5
	}

	return Layout{
		ViewportWidth:  width,
		ViewportHeight: height,
		InnerWidth:     width - 2,
		TableWidth:     width - 4,
		TableHeight:    tableHeight,
	}
}

// DefaultLayout returns a layout using the default size
func DefaultLayout() Layout {
	return NewLayout(DefaultWidth, DefaultHeight)
}

// clamp restricts a value to the given range
func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// Color palette - centralized color definitions
var (
	ColorBorder    = lipgloss.Color("202") // mars orange
	ColorHighlight = lipgloss.Color("88")  // dark red background
	ColorText      = lipgloss.Color("15")  // bright white
	ColorAccent    = lipgloss.Color("226") // bright yellow
	ColorAccentDim = lipgloss.Color("220") // yellow (progress)
	ColorTextDim   = lipgloss.Color("241") // gray
	ColorError     = lipgloss.Color("196") // red
	ColorWhite     = lipgloss.Color("15")
)

// Common styles - reusable style definitions
var (
	// Border style for main viewport.
	// Always size with .Width(InnerWidth) and no padding.
	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	// Title style for section headers
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText)

	// Selected row/item style
	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Background(ColorHighlight).
			Bold(true)

	// Normal text style
	NormalStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	// Dim text for placeholders and disabled fields
	DimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)

	// Hint/help text style
	HintStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Italic(true)

	// Accent style for highlighted text (yellow)
	AccentStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	// Matched runes inside a suggestion row
	MatchStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Underline(true)

	// Progress style
	ProgressStyle = lipgloss.NewStyle().
			Foreground(ColorAccentDim)

	// Inline field and fetch errors
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	// Arrow style for pagination
	ArrowStyle = lipgloss.NewStyle().
			Foreground(ColorBorder).
			Bold(true)

	// Disabled arrow
	ArrowDisabledStyle = lipgloss.NewStyle().
				Foreground(ColorTextDim)

	// Focused field label
	LabelFocusedStyle = lipgloss.NewStyle().
				Foreground(ColorAccent).
				Bold(true).
				Width(12)

	// Unfocused field label
	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Width(12)
)

// Render helpers

func RenderTitle(s string) string  { return TitleStyle.Render(s) }
func RenderNormal(s string) string { return NormalStyle.Render(s) }
func RenderDim(s string) string    { return DimStyle.Render(s) }
func RenderError(s string) string  { return ErrorStyle.Render(s) }
func RenderAccent(s string) string { return AccentStyle.Render(s) }

// RenderSelectedWidth renders s highlighted and padded to width
func RenderSelectedWidth(s string, width int) string {
	return SelectedStyle.Render(PadRight(s, width))
}

// StringWidth returns the printable width of s, ignoring ANSI sequences
func StringWidth(s string) int {
	return ansi.StringWidth(s)
}

// PadRight pads s with spaces up to width cells, truncating when longer
func PadRight(s string, width int) string {
	w := StringWidth(s)
	if w > width {
		return Truncate(s, width)
	}
	return s + strings.Repeat(" ", width-w)
}

// Truncate shortens s to width cells with an ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return ansi.Truncate(s, width, "")
	}
	return ansi.Truncate(s, width, "...")
}

// ApplyTableStyles sets the shared table look. Selection is drawn by
// RenderTableWithSelection, so the table's own selected style stays neutral.
func ApplyTableStyles(t *table.Model) {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorBorder).
		BorderBottom(true).
		Bold(true).
		Foreground(ColorText)
	s.Cell = s.Cell.Foreground(ColorText)
	s.Selected = lipgloss.NewStyle()
	t.SetStyles(s)
}

// NewAppSpinner returns the spinner used for every loading state
func NewAppSpinner() spinner.Model {
	return spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(ColorBorder)),
	)
}

// BuildTwoBoxView renders the main content box above a one-line help box
func BuildTwoBoxView(content, helpText string, layout Layout) string {
	// footer box (3 lines) + spacing (1) + main border (2)
	mainHeight := layout.ViewportHeight - 6
	if mainHeight < 10 {
		mainHeight = 10
	}
	content = PadContentToHeight(content, mainHeight)

	var b strings.Builder
	b.WriteString(BorderStyle.
		Width(layout.InnerWidth).
		Height(mainHeight).
		Render(content))
	b.WriteString("\n")

	footer := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorWhite).
		Width(layout.InnerWidth).
		Height(1).
		Render(CenterTextPadded(HintStyle.Render(helpText), layout.InnerWidth))
	b.WriteString(footer)
	return b.String()
}

// PadContentToHeight pads content with newlines to fill targetHeight lines
func PadContentToHeight(content string, targetHeight int) string {
	lines := strings.Count(content, "\n") + 1
	if lines < targetHeight {
		content += strings.Repeat("\n", targetHeight-lines)
	}
	return content
}

// NewAppTheme creates a huh theme matching the app's style guide
func NewAppTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().
		Foreground(ColorText).
		Bold(true)
	t.Blurred.Title = t.Focused.Title

	t.Focused.Description = lipgloss.NewStyle().
		Foreground(ColorTextDim)
	t.Blurred.Description = t.Focused.Description

	t.Focused.Base = lipgloss.NewStyle().
		Foreground(ColorText)
	t.Blurred.Base = t.Focused.Base

	t.Focused.FocusedButton = lipgloss.NewStyle().
		Foreground(ColorText).
		Background(ColorBorder).
		Bold(true).
		Padding(0, 1)

	t.Focused.BlurredButton = lipgloss.NewStyle().
		Foreground(ColorText).
		Padding(0, 1)
	t.Blurred.FocusedButton = t.Focused.FocusedButton
	t.Blurred.BlurredButton = t.Focused.BlurredButton

	return t
}

// PrintSuccess prints a success message
func PrintSuccess(message string) {
	fmt.Println(AccentStyle.Render(message))
}

// PrintWarning prints a warning to stderr
func PrintWarning(message string) {
	fmt.Fprintln(os.Stderr, ProgressStyle.Render("Warning: "+message))
}

// PrintError prints an error message to stderr
func PrintError(message string) {
	fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: "+message))
}

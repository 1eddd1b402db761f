package ui

// view_helpers.go provides common View() rendering helpers shared by the
// search form, the results table and the featured panel.

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/x/ansi"
)

// RenderTableWithSelection renders a bubbles table with a full-width
// selection highlight on the cursor row.
//
// bubbles/table View() output is the header on line 0 followed by the
// visible data rows; the visible cursor row is found by replaying the
// table's scroll offset.
func RenderTableWithSelection(t table.Model, layout Layout, focused bool) string {
	lines := strings.Split(t.View(), "\n")
	result := make([]string, 0, len(lines))

	cursor := t.Cursor()
	height := t.Height()
	totalRows := len(t.Rows())

	start := 0
	if totalRows > height {
		if cursor >= height {
			start = cursor - height + 1
		}
		if maxStart := totalRows - height; start > maxStart {
			start = maxStart
		}
	}
	visibleCursor := cursor - start

	for i, line := range lines {
		if i == 0 {
			result = append(result, NormalStyle.Render(line))
			continue
		}
		// escape codes are stripped so embedded resets cannot kill the background
		if focused && totalRows > 0 && i-1 == visibleCursor {
			result = append(result, RenderSelectedWidth(ansi.Strip(line), layout.InnerWidth))
			continue
		}
		result = append(result, NormalStyle.Render(line))
	}

	return strings.Join(result, "\n")
}

// ViewHeader renders title + full-width divider + spacing
func ViewHeader(title string, innerWidth int) string {
	var b strings.Builder
	b.WriteString(RenderTitle(title))
	b.WriteString("\n")
	b.WriteString(FullWidthDivider(innerWidth))
	b.WriteString("\n\n")
	return b.String()
}

// CenterTextPadded centers text and pads to full width.
// Uses StringWidth() for ANSI-aware width calculation.
func CenterTextPadded(text string, width int) string {
	textW := StringWidth(text)
	if textW >= width {
		return text
	}
	leftPad := (width - textW) / 2
	rightPad := width - textW - leftPad
	return strings.Repeat(" ", leftPad) + text + strings.Repeat(" ", rightPad)
}

// FullWidthDivider returns a horizontal divider spanning the inner width.
func FullWidthDivider(innerWidth int) string {
	return strings.Repeat("─", innerWidth)
}

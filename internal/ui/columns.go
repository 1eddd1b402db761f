package ui

// columns.go provides column width calculation for bubbles/table.

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/thesavant42/marsphotos/internal/models"
)

// ColumnSpec defines a table column with flexible or fixed width.
// Use FlexRatio for columns that should expand/contract with terminal width.
// Use FixedWidth for columns that should maintain constant width.
type ColumnSpec struct {
	Title      string
	MinWidth   int // Minimum width (0 = no minimum)
	FixedWidth int // If > 0, use this exact width (ignores FlexRatio)
	FlexRatio  int // Relative ratio for flexible columns (0 = fixed-only)
}

// CalculateColumns computes column widths from specs.
// Flexible columns split remaining space by ratio after fixed columns are allocated.
//
// Example:
//
//	columns := CalculateColumns([]ColumnSpec{
//	    {Title: "Camera", FixedWidth: 14},
//	    {Title: "Image", FlexRatio: 100, MinWidth: 20},
//	}, layout.TableWidth)
func CalculateColumns(specs []ColumnSpec, totalWidth int) []table.Column {
	if totalWidth < 50 {
		totalWidth = 50
	}

	// bubbles/table pads every cell by one space on each side
	totalWidth -= 2 * len(specs)

	fixedTotal := 0
	flexTotal := 0
	for _, s := range specs {
		if s.FixedWidth > 0 {
			fixedTotal += s.FixedWidth
		} else {
			flexTotal += s.FlexRatio
		}
	}

	remaining := totalWidth - fixedTotal
	if remaining < 0 {
		remaining = 0
	}

	columns := make([]table.Column, len(specs))
	for i, s := range specs {
		var width int
		if s.FixedWidth > 0 {
			width = s.FixedWidth
		} else if flexTotal > 0 {
			width = remaining * s.FlexRatio / flexTotal
		}

		if s.MinWidth > 0 && width < s.MinWidth {
			width = s.MinWidth
		}

		columns[i] = table.Column{Title: s.Title, Width: width}
	}

	return columns
}

// PhotoColumnSpecs returns the results column specs for cfg
func PhotoColumnSpecs(cfg ViewConfig) []ColumnSpec {
	specs := make([]ColumnSpec, len(cfg.Columns))
	for i, c := range cfg.Columns {
		specs[i] = ColumnSpec{
			Title:      cfg.Messages.FieldTitle(c.Field),
			MinWidth:   c.MinWidth,
			FixedWidth: c.FixedWidth,
			FlexRatio:  c.FlexRatio,
		}
	}
	return specs
}

// PhotoRows renders photos as table rows, truncated to the column widths
func PhotoRows(cfg ViewConfig, columns []table.Column, photos []models.PhotoRecord) []table.Row {
	rows := make([]table.Row, len(photos))
	for i, p := range photos {
		row := make(table.Row, len(cfg.Columns))
		for j, c := range cfg.Columns {
			v := c.Field.Value(p)
			if j < len(columns) {
				v = Truncate(v, columns[j].Width)
			}
			row[j] = v
		}
		rows[i] = row
	}
	return rows
}

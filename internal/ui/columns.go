package ui

import (
	"github.com/charmbracelet/bubbles/table"
)

// ColumnSpec is one table column: a fixed width, or a share of what the fixed
// columns leave over.
type ColumnSpec struct {
	Title      string
	MinWidth   int // floor for flexible columns
	FixedWidth int // > 0 ignores FlexRatio
	FlexRatio  int
}

// minTableWidth keeps narrow terminals from collapsing every flexible column
const minTableWidth = 50

// CalculateColumns turns specs into bubbles columns totalling totalWidth.
// Flexible columns split the remainder by ratio; the last one absorbs the
// rounding so section rows line up with the header.
func CalculateColumns(specs []ColumnSpec, totalWidth int) []table.Column {
	totalWidth = max(totalWidth, minTableWidth)

	fixed, flex, lastFlex := 0, 0, -1
	for i, s := range specs {
		if s.FixedWidth > 0 {
			fixed += s.FixedWidth
			continue
		}
		flex += s.FlexRatio
		if s.FlexRatio > 0 {
			lastFlex = i
		}
	}
	remaining := max(totalWidth-fixed, 0)

	columns := make([]table.Column, len(specs))
	used := 0
	for i, s := range specs {
		w := s.FixedWidth
		if w == 0 && flex > 0 {
			w = remaining * s.FlexRatio / flex
			used += w
			if i == lastFlex {
				w += remaining - used
			}
		}
		columns[i] = table.Column{Title: s.Title, Width: max(w, s.MinWidth)}
	}
	return columns
}

// Fixed column widths of the section browser
const (
	ColWidthCourse = 12
	ColWidthSeats  = 9
	ColWidthRating = 14
)

// SectionColumns are the browser's columns. Course header rows and section
// rows share them: a header fills Course and Title, a section row the rest.
func SectionColumns() []ColumnSpec {
	return []ColumnSpec{
		{Title: "Course", FixedWidth: ColWidthCourse},
		{Title: "Title / Section", FlexRatio: 34, MinWidth: 20},
		{Title: "Meets", FlexRatio: 26, MinWidth: 16},
		{Title: "Instructor", FlexRatio: 24, MinWidth: 14},
		{Title: "Seats", FixedWidth: ColWidthSeats},
		{Title: "Rating", FixedWidth: ColWidthRating},
	}
}

// ClampWidth bounds width; a zero bound is ignored
func ClampWidth(width, minWidth, maxWidth int) int {
	if minWidth > 0 && width < minWidth {
		return minWidth
	}
	if maxWidth > 0 && width > maxWidth {
		return maxWidth
	}
	return width
}

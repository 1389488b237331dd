package ui

// base_model.go builds the bubbles components the browser is made of.

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
)

// sectionColumns sizes the section table for a layout. bubbles cells carry
// one column of padding on each side.
func sectionColumns(layout Layout) []table.Column {
	specs := SectionColumns()
	return CalculateColumns(specs, layout.TableWidth-2*len(specs))
}

// newSectionTable creates the focused, styled section table with no rows
func newSectionTable(layout Layout) table.Model {
	t := table.New(
		table.WithColumns(sectionColumns(layout)),
		table.WithFocused(true),
		table.WithHeight(layout.TableHeight),
	)
	ApplyTableStyles(&t)
	return t
}

// newQuickInput creates the one-line input used for quick search and page jumps
func newQuickInput(layout Layout) textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 128
	ti.Width = quickInputWidth(layout)
	return ti
}

func quickInputWidth(layout Layout) int {
	return ClampWidth(layout.InnerWidth-20, 20, 80)
}

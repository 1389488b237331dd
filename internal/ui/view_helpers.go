package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
)

// visibleStart mirrors the bubbles table viewport: rows scroll only once the
// cursor moves past the bottom edge.
func visibleStart(cursor, height, rows int) int {
	if rows <= height || cursor < height {
		return 0
	}
	return min(cursor-height+1, rows-height)
}

// RenderTableWithSelection renders t with the selected row highlighted across
// the full inner width. Rows for which accent returns true (course headers)
// are drawn in the divider style when not selected; accent may be nil.
func RenderTableWithSelection(t table.Model, layout Layout, accent func(row int) bool) string {
	lines := strings.Split(t.View(), "\n")
	start := visibleStart(t.Cursor(), t.Height(), len(t.Rows()))
	selected := t.Cursor() - start

	out := make([]string, 0, len(lines)+1)
	for i, line := range lines {
		row := i - 1 // line 0 is the column header
		switch {
		case i == 0:
			out = append(out, NormalStyle.Render(line), FullWidthDivider(layout.InnerWidth))
		case row == selected:
			out = append(out, RenderSelectedWidth(line, layout.InnerWidth))
		case accent != nil && accent(start+row):
			out = append(out, DividerStyle.Render(stripEscapeCodes(line)))
		default:
			out = append(out, NormalStyle.Render(line))
		}
	}
	return strings.Join(out, "\n")
}

// ViewHeaderWithSubtitle renders a title, an optional dim subtitle and a divider
func ViewHeaderWithSubtitle(title, subtitle string, innerWidth int) string {
	var b strings.Builder
	b.WriteString(RenderTitle(title) + "\n")
	if subtitle != "" {
		b.WriteString(RenderDim(subtitle) + "\n")
	}
	b.WriteString(FullWidthDivider(innerWidth) + "\n\n")
	return b.String()
}

// CenterText centers text within width, measuring ANSI-aware
func CenterText(text string, width int) string {
	pad := (width - StringWidth(text)) / 2
	if pad <= 0 {
		return text
	}
	return strings.Repeat(" ", pad) + text
}

func FullWidthDivider(innerWidth int) string {
	return strings.Repeat("─", innerWidth)
}

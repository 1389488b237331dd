package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
)

// PageViewBuilder assembles the main box of a screen line by line and wraps
// it with the help footer in Build:
//
//	return NewPageView(m.Layout).
//	    Title("CatBase · Course Sections").
//	    Subtitle(filters).
//	    Divider().
//	    QueryInfo(rangeText).
//	    Table(m.table, m.isGroupRow).
//	    Status(m.status).
//	    Help(m.help.View(m.keys)).
//	    Build()
type PageViewBuilder struct {
	layout   Layout
	content  strings.Builder
	helpText string
	started  bool
}

// NewPageView starts an empty view
func NewPageView(layout Layout) *PageViewBuilder {
	return &PageViewBuilder{layout: layout}
}

func (b *PageViewBuilder) line(rendered string) *PageViewBuilder {
	b.content.WriteString(rendered)
	b.content.WriteString("\n")
	b.started = true
	return b
}

// gap separates a block from whatever came before it
func (b *PageViewBuilder) gap() {
	if b.started {
		b.content.WriteString("\n")
	}
}

func (b *PageViewBuilder) Title(title string) *PageViewBuilder { return b.line(RenderTitle(title)) }

func (b *PageViewBuilder) Subtitle(s string) *PageViewBuilder { return b.line(RenderDim(s)) }

func (b *PageViewBuilder) Divider() *PageViewBuilder {
	return b.line(FullWidthDivider(b.layout.InnerWidth))
}

// QueryInfo is the accented line under the header: range text or loading state
func (b *PageViewBuilder) QueryInfo(info string) *PageViewBuilder {
	return b.line(AccentStyle.Render(info))
}

func (b *PageViewBuilder) Text(s string) *PageViewBuilder { return b.line(NormalStyle.Render(s)) }

func (b *PageViewBuilder) DimText(s string) *PageViewBuilder { return b.line(DimStyle.Render(s)) }

// Spacing adds blank lines
func (b *PageViewBuilder) Spacing(lines int) *PageViewBuilder {
	b.content.WriteString(strings.Repeat("\n", lines))
	return b
}

// CustomContent appends pre-rendered content as is
func (b *PageViewBuilder) CustomContent(content string) *PageViewBuilder {
	b.content.WriteString(content)
	b.started = true
	return b
}

// Table appends the table with full-width selection; accent marks the
// course header rows and may be nil
func (b *PageViewBuilder) Table(t table.Model, accent func(row int) bool) *PageViewBuilder {
	b.gap()
	return b.CustomContent(RenderTableWithSelection(t, b.layout, accent))
}

// Status appends the status line, if any
func (b *PageViewBuilder) Status(s statusLine) *PageViewBuilder {
	if s.text == "" {
		return b
	}
	b.gap()
	return b.line(s.render())
}

// Error appends err in the error style; nil adds nothing
func (b *PageViewBuilder) Error(err error) *PageViewBuilder {
	if err == nil {
		return b
	}
	b.gap()
	return b.line(RenderError("Error: " + err.Error()))
}

// Help sets the footer text
func (b *PageViewBuilder) Help(helpText string) *PageViewBuilder {
	b.helpText = helpText
	return b
}

// Build renders the two-box screen
func (b *PageViewBuilder) Build() string {
	return BuildTwoBoxView(b.content.String(), b.helpText, b.layout)
}

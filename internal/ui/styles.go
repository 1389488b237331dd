package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Layout constants - single source of truth for all viewport dimensions
const (
	MinViewportWidth  = 100
	MaxViewportWidth  = 160
	DefaultWidth      = 120 // Used when terminal size is unknown
	DefaultHeight     = 36
	MinTableHeight    = 5
	TwoBoxOverhead    = 5 // main box borders + footer box (3 rows)
	BrowserChromeRows = 8 // title, query info, range line, page controls, spacing
)

// Layout holds computed dimensions for the current terminal size
type Layout struct {
	ViewportWidth  int // clamped terminal width
	ViewportHeight int
	TableWidth     int // sum of column widths + separators
	InnerWidth     int // ViewportWidth - 2 (EXACT width for content inside borders)
	TableHeight    int // visible data rows of the browser table
}

// NewLayout creates a Layout from the terminal size, clamping the width to min/max
func NewLayout(terminalWidth, terminalHeight int) Layout {
	width := clamp(terminalWidth, MinViewportWidth, MaxViewportWidth)
	if terminalHeight <= 0 {
		terminalHeight = DefaultHeight
	}
	tableHeight := terminalHeight - TwoBoxOverhead - BrowserChromeRows
	if tableHeight < MinTableHeight {
		tableHeight = MinTableHeight
	}
	return Layout{
		ViewportWidth:  width,
		ViewportHeight: terminalHeight,
		TableWidth:     width - 4, // minus border + padding
		InnerWidth:     width - 2, // minus border chars
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

// Palette: campus green frame, gold accents
var (
	ColorBorder    = lipgloss.Color("29")  // green
	ColorHighlight = lipgloss.Color("22")  // dark green background
	ColorText      = lipgloss.Color("15")  // bright white
	ColorAccent    = lipgloss.Color("220") // gold
	ColorAccentDim = lipgloss.Color("178") // dim gold (rating bars)
	ColorTextDim   = lipgloss.Color("245") // gray
	ColorGood      = lipgloss.Color("78")  // light green
	ColorBad       = lipgloss.Color("167") // soft red
)

var (
	// Main box; sized with Width(InnerWidth), never padded
	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	// Footer box around the help line
	FooterStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorText)

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

	DimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)

	// Hint/help text style
	HintStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Italic(true)

	AccentStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	// Rating distribution bars
	ProgressStyle = lipgloss.NewStyle().
			Foreground(ColorAccentDim)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorBad).
			Bold(true)

	StatusMsgStyle = lipgloss.NewStyle().
			Foreground(ColorGood)

	// Page control styles
	PageActiveStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Background(ColorHighlight).
			Bold(true).
			Padding(0, 1)

	PageInactiveStyle = lipgloss.NewStyle().
				Foreground(ColorText).
				Padding(0, 1)

	// Arrow style for pagination
	ArrowStyle = lipgloss.NewStyle().
			Foreground(ColorBorder).
			Bold(true)

	ArrowDisabledStyle = lipgloss.NewStyle().
				Foreground(ColorTextDim)

	// Course group header rows
	DividerStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)
)

// RenderTitle renders a bold title
func RenderTitle(s string) string { return TitleStyle.Render(s) }

// RenderDim renders gray secondary text
func RenderDim(s string) string { return DimStyle.Render(s) }

// RenderNormal renders plain white text
func RenderNormal(s string) string { return NormalStyle.Render(s) }

// RenderError renders an error line
func RenderError(s string) string { return ErrorStyle.Render(s) }

// RenderSelectedWidth renders s highlighted and padded to width
func RenderSelectedWidth(s string, width int) string {
	clean := stripEscapeCodes(s)
	if w := StringWidth(clean); w < width {
		clean += strings.Repeat(" ", width-w)
	}
	return SelectedStyle.Render(truncateToWidth(clean, width))
}

// StringWidth returns the display width of s, ignoring ANSI sequences
func StringWidth(s string) int {
	return lipgloss.Width(s)
}

func stripEscapeCodes(s string) string {
	return ansi.Strip(s)
}

func truncateToWidth(s string, width int) string {
	return ansi.Truncate(s, width, "…")
}

// PadContentToHeight pads content with newlines to fill target height
func PadContentToHeight(content string, targetHeight int) string {
	lines := strings.Count(content, "\n") + 1
	if lines >= targetHeight {
		return content
	}
	return content + strings.Repeat("\n", targetHeight-lines)
}

// BuildTwoBoxView renders the main content box and the one-row help box beneath it
func BuildTwoBoxView(content, helpText string, layout Layout) string {
	mainHeight := layout.ViewportHeight - TwoBoxOverhead
	if mainHeight < 1 {
		mainHeight = 1
	}
	main := BorderStyle.
		Width(layout.InnerWidth).
		Render(PadContentToHeight(strings.TrimRight(content, "\n"), mainHeight))
	footer := FooterStyle.
		Width(layout.InnerWidth).
		Render(CenterText(HintStyle.Render(helpText), layout.InnerWidth))
	return lipgloss.JoinVertical(lipgloss.Left, main, footer)
}

// ApplyTableStyles applies the app table look. The selected style is neutral;
// RenderTableWithSelection paints the full-width highlight.
func ApplyTableStyles(t *table.Model) {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorBorder).
		BorderBottom(false).
		Bold(true).
		Foreground(ColorText)
	s.Selected = s.Selected.
		Foreground(ColorText).
		Bold(false)
	s.Cell = s.Cell.Foreground(ColorText)
	t.SetStyles(s)
}

// NewAppSpinner creates the white dot spinner used across the app
func NewAppSpinner() spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(ColorText)
	return s
}

// NewAppTheme is the huh theme of the filter form: white text, green selection
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

	t.Focused.SelectedOption = lipgloss.NewStyle().
		Foreground(ColorText).
		Background(ColorBorder).
		Bold(true).
		Padding(0, 1)

	t.Focused.UnselectedOption = lipgloss.NewStyle().
		Foreground(ColorText).
		Padding(0, 1)

	t.Focused.FocusedButton = lipgloss.NewStyle().
		Foreground(ColorText).
		Background(ColorBorder).
		Bold(true).
		Padding(0, 1)

	t.Focused.BlurredButton = lipgloss.NewStyle().
		Foreground(ColorText).
		Padding(0, 1)

	t.Focused.ErrorMessage = ErrorStyle
	t.Focused.ErrorIndicator = ErrorStyle

	t.Focused.TextInput.Cursor = lipgloss.NewStyle().
		Foreground(ColorAccent)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().
		Foreground(ColorTextDim)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().
		Foreground(ColorBorder)

	return t
}

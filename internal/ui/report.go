package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jonahtballard/CatBase/internal/db"
)

var (
	reportTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorAccent).
				MarginBottom(1)

	reportHeaderStyle = lipgloss.NewStyle().
				Foreground(ColorAccent).
				Bold(true)

	reportBorderStyle = lipgloss.NewStyle().
				Foreground(ColorBorder)

	reportRowStyle = lipgloss.NewStyle().
			Foreground(ColorText)
)

// PrintCourseTable prints the per-course section counts of an export snapshot.
//
// This is a CLI report (non-interactive), so the table is laid out with string
// formatting; lipgloss only colors the output. Interactive tables use bubbles/table.
func PrintCourseTable(title string, courses []db.CourseCount) {
	if len(courses) == 0 {
		fmt.Println(reportTitleStyle.Render(title + ": No data"))
		return
	}
	fmt.Println(reportTitleStyle.Render(title))

	colWidths := []int{8, 8, 44, 8} // Subject, Number, Title, Sections
	totalWidth := 2
	for _, w := range colWidths {
		totalWidth += w + 3
	}
	totalWidth--
	separator := strings.Repeat("─", totalWidth-2)

	fmt.Println(reportBorderStyle.Render("┌" + separator + "┐"))
	fmt.Println(reportHeaderStyle.Render(fmt.Sprintf("│ %-*s │ %-*s │ %-*s │ %*s │",
		colWidths[0], "Subject",
		colWidths[1], "Number",
		colWidths[2], "Title",
		colWidths[3], "Sections")))
	fmt.Println(reportBorderStyle.Render("├" + separator + "┤"))

	for _, c := range courses {
		fmt.Println(reportRowStyle.Render(fmt.Sprintf("│ %-*s │ %-*s │ %-*s │ %*d │",
			colWidths[0], truncateToWidth(c.Key.Subject, colWidths[0]),
			colWidths[1], truncateToWidth(c.Key.CourseNumber, colWidths[1]),
			colWidths[2], truncateToWidth(c.Key.Title, colWidths[2]),
			colWidths[3], c.Sections)))
	}

	fmt.Println(reportBorderStyle.Render("└" + separator + "┘"))
	fmt.Println()
}

// PrintProgress prints a progress message during an export walk
func PrintProgress(page, sections int) {
	progressStyle := lipgloss.NewStyle().Foreground(ColorAccentDim)
	fmt.Printf("\r%s", progressStyle.Render(fmt.Sprintf("Exporting sections... Page %d (%d sections)", page, sections)))
}

// PrintSuccess prints a success message
func PrintSuccess(message string) {
	successStyle := lipgloss.NewStyle().
		Foreground(ColorGood).
		Bold(true)
	fmt.Println(successStyle.Render(message))
}

// PrintError prints an error message
func PrintError(message string) {
	fmt.Println(ErrorStyle.Render("Error: " + message))
}

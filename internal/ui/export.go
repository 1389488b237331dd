package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonahtballard/CatBase/internal/catalog"
	"github.com/jonahtballard/CatBase/internal/models"
	"github.com/jonahtballard/CatBase/internal/ratings"
)

// ExportPageToMarkdown writes the current result page to a markdown file in
// dir, with the rating badges known at the time. Returns the file path.
func ExportPageToMarkdown(dir string, filters models.FilterState, result catalog.Result, badge func(models.InstructorRef) ratings.Badge) (string, error) {
	now := time.Now()
	scope := "all"
	if filters.Subject != "" {
		scope = strings.ToLower(strings.ReplaceAll(filters.Subject, "/", "-"))
	}
	filename := filepath.Join(dir, fmt.Sprintf("catbase-%s-p%d-%s.md", scope, result.Pagination.CurrentPage, now.Format("2006-01-02")))

	content := pageMarkdown(filters, result, badge, now)
	if err := os.WriteFile(filename, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write markdown file: %w", err)
	}
	return filename, nil
}

func pageMarkdown(filters models.FilterState, result catalog.Result, badge func(models.InstructorRef) ratings.Badge, now time.Time) string {
	var sb strings.Builder

	sb.WriteString("# Course Sections\n\n")
	if q := describeFilters(filters); q != "" {
		sb.WriteString(fmt.Sprintf("**Filters:** %s\n", q))
	}
	sb.WriteString(fmt.Sprintf("**Results:** %s (page %d)\n", result.Range.Text(), result.Pagination.CurrentPage))
	sb.WriteString(fmt.Sprintf("**Generated:** %s\n\n", now.Format("2006-01-02 15:04:05")))

	if len(result.Groups) == 0 {
		sb.WriteString("No sections\n")
		return sb.String()
	}

	for _, g := range result.Groups {
		sb.WriteString(fmt.Sprintf("## %s %s: %s\n\n", g.Key.Subject, g.Key.CourseNumber, g.Key.Title))
		sb.WriteString("| CRN | Type | Meets | Instructor | Seats | Rating |\n")
		sb.WriteString("|-----|------|-------|------------|-------|--------|\n")
		for _, s := range g.Sections {
			var names, badges []string
			for _, in := range s.Instructors {
				names = append(names, in.Name)
				if t := badge(in).Text(); t != "" {
					badges = append(badges, t)
				}
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s |\n",
				dashIfEmpty(s.CRN),
				dashIfEmpty(s.LecLab),
				dashIfEmpty(meetingsText(s.Meetings)),
				dashIfEmpty(strings.Join(names, ", ")),
				seatsText(s),
				dashIfEmpty(strings.Join(badges, "; "))))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func dashIfEmpty(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return strings.ReplaceAll(s, "|", "/")
}

package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jonahtballard/CatBase/internal/models"
)

// meetingsText renders meeting blocks as "MWF 09:00-09:50 VOTEY 105"; blocks
// without days are "TBA"
func meetingsText(meetings []models.Meeting) string {
	parts := make([]string, 0, len(meetings))
	for _, m := range meetings {
		if strings.TrimSpace(m.Days) == "" {
			parts = append(parts, "TBA")
			continue
		}
		s := m.Days
		if m.StartTime != "" {
			s += " " + m.StartTime
			if m.EndTime != "" {
				s += "-" + m.EndTime
			}
		}
		if where := strings.TrimSpace(m.Bldg + " " + m.Room); where != "" {
			s += " " + where
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, "; ")
}

// seatsText renders enrollment as "12/30", "-" when unknown
func seatsText(s models.SectionRecord) string {
	if _, known := s.IsOpen(); !known {
		return "-"
	}
	return fmt.Sprintf("%d/%d", *s.CurrentEnrollment, *s.MaxEnrollment)
}

// creditsText renders a credit range: "3", "1-4" or "" when unknown
func creditsText(min, max *float64) string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	switch {
	case min == nil && max == nil:
		return ""
	case min == nil:
		return f(*max)
	case max == nil || *min == *max:
		return f(*min)
	}
	return f(*min) + "-" + f(*max)
}

// instructorNames lists the first instructor and how many more there are
func instructorNames(refs []models.InstructorRef) string {
	switch len(refs) {
	case 0:
		return "Staff"
	case 1:
		return refs[0].Name
	}
	return fmt.Sprintf("%s +%d", refs[0].Name, len(refs)-1)
}

// sectionLabel is the second column of a section row: type, credits and open state
func sectionLabel(s models.SectionRecord) string {
	parts := []string{}
	if s.LecLab != "" {
		parts = append(parts, s.LecLab)
	}
	if c := creditsText(s.CreditsMin, s.CreditsMax); c != "" {
		parts = append(parts, c+" cr")
	}
	if open, known := s.IsOpen(); known && !open {
		parts = append(parts, "FULL")
	}
	return "  " + strings.Join(parts, " · ")
}

// describeFilters summarizes the active filters on one line ("" when none)
func describeFilters(f models.FilterState) string {
	var parts []string
	if f.Search != "" {
		parts = append(parts, fmt.Sprintf("search %q", f.Search))
	}
	if f.Subject != "" {
		parts = append(parts, f.Subject)
	}
	term := strings.TrimSpace(f.Semester + " " + formatOptionalInt(f.Year))
	if term != "" {
		parts = append(parts, term)
	}
	if f.CRN != "" {
		parts = append(parts, "CRN "+f.CRN)
	}
	if f.Instructor != "" {
		parts = append(parts, "instructor "+f.Instructor)
	}
	if f.InstructorID != nil {
		parts = append(parts, fmt.Sprintf("instructor #%d", *f.InstructorID))
	}
	switch {
	case f.MinCredits != nil && f.MaxCredits != nil:
		parts = append(parts, creditsText(f.MinCredits, f.MaxCredits)+" credits")
	case f.MinCredits != nil:
		parts = append(parts, formatOptionalFloat(f.MinCredits)+"+ credits")
	case f.MaxCredits != nil:
		parts = append(parts, "≤ "+formatOptionalFloat(f.MaxCredits)+" credits")
	}
	switch f.Status {
	case models.StatusOpen:
		parts = append(parts, "open seats")
	case models.StatusClosed:
		parts = append(parts, "full")
	}
	if f.MinRating != nil {
		parts = append(parts, "rating ≥ "+formatOptionalFloat(f.MinRating))
	}
	if f.MinRatingCount != nil {
		parts = append(parts, fmt.Sprintf("≥ %d ratings", *f.MinRatingCount))
	}
	if f.MaxDifficulty != nil {
		parts = append(parts, "difficulty ≤ "+formatOptionalFloat(f.MaxDifficulty))
	}
	return strings.Join(parts, " · ")
}

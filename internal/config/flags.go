package config

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/jonahtballard/CatBase/internal/models"
)

// FilterFlags are the command line filters shared by the CatBase commands.
// Numeric flags stay strings so that "unset" and "0" differ.
type FilterFlags struct {
	search     string
	subject    string
	semester   string
	year       string
	instructor string
	crn        string
	status     string
	minRating  string
}

// RegisterFilterFlags adds the filter flags to fs
func RegisterFilterFlags(fs *flag.FlagSet) *FilterFlags {
	ff := &FilterFlags{}
	fs.StringVar(&ff.search, "search", "", "Course title, subject or number")
	fs.StringVar(&ff.subject, "subject", "", "Subject code (e.g. CS)")
	fs.StringVar(&ff.semester, "semester", "", "Semester (e.g. Fall)")
	fs.StringVar(&ff.year, "year", "", "Academic year")
	fs.StringVar(&ff.instructor, "instructor", "", "Instructor name substring")
	fs.StringVar(&ff.crn, "crn", "", "Section CRN")
	fs.StringVar(&ff.status, "status", "", "Enrollment status: open or closed")
	fs.StringVar(&ff.minRating, "min-rating", "", "Minimum instructor rating (0-5)")
	return ff
}

// Filters converts the parsed flags into a filter state
func (ff *FilterFlags) Filters() (models.FilterState, error) {
	f := models.FilterState{
		Search:     strings.TrimSpace(ff.search),
		Subject:    strings.ToUpper(strings.TrimSpace(ff.subject)),
		Semester:   strings.TrimSpace(ff.semester),
		Instructor: strings.TrimSpace(ff.instructor),
		CRN:        strings.TrimSpace(ff.crn),
	}

	switch s := strings.ToLower(strings.TrimSpace(ff.status)); s {
	case "", "any":
	case "open", "closed":
		f.Status = models.ParseEnrollmentStatus(s)
	default:
		return models.FilterState{}, fmt.Errorf("invalid -status %q: want open or closed", ff.status)
	}

	if v := strings.TrimSpace(ff.year); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil || year < 1900 {
			return models.FilterState{}, fmt.Errorf("invalid -year %q", ff.year)
		}
		f.Year = &year
	}
	if v := strings.TrimSpace(ff.minRating); v != "" {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil || r < 0 || r > 5 {
			return models.FilterState{}, fmt.Errorf("invalid -min-rating %q: want 0-5", ff.minRating)
		}
		f.MinRating = &r
	}
	return f, nil
}

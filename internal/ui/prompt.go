package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/jonahtballard/CatBase/internal/catalog"
	"github.com/jonahtballard/CatBase/internal/models"
)

// sanitizeInput removes null bytes and other invisible control characters from input
func sanitizeInput(s string) string {
	return strings.Map(func(r rune) rune {
		// Keep printable characters and normal whitespace (space, tab)
		if r == 0 || (r < 32 && r != '\t') || r == 127 {
			return -1
		}
		return r
	}, s)
}

// anyOption is the select value meaning "no filter"
const anyOption = ""

// FilterOptions holds the reference data offered by the filter form
type FilterOptions struct {
	Subjects []models.Subject
	Terms    []models.Term
}

// filterForm is the string-backed state of the huh filter form
type filterForm struct {
	Search         string
	Subject        string
	Semester       string
	Year           string
	Instructor     string
	CRN            string
	Status         string
	MinCredits     string
	MaxCredits     string
	MinRating      string
	MinRatingCount string
	MaxDifficulty  string
}

func newFilterForm(f models.FilterState) filterForm {
	return filterForm{
		Search:         f.Search,
		Subject:        f.Subject,
		Semester:       f.Semester,
		Year:           formatOptionalInt(f.Year),
		Instructor:     f.Instructor,
		CRN:            f.CRN,
		Status:         string(f.Status),
		MinCredits:     formatOptionalFloat(f.MinCredits),
		MaxCredits:     formatOptionalFloat(f.MaxCredits),
		MinRating:      formatOptionalFloat(f.MinRating),
		MinRatingCount: formatOptionalInt(f.MinRatingCount),
		MaxDifficulty:  formatOptionalFloat(f.MaxDifficulty),
	}
}

// toFilters converts the form back into a filter state. InstructorID is not
// editable here and is carried over from base.
func (ff filterForm) toFilters(base models.FilterState) (models.FilterState, error) {
	out := models.FilterState{
		Search:       strings.TrimSpace(sanitizeInput(ff.Search)),
		Subject:      ff.Subject,
		Semester:     ff.Semester,
		Instructor:   strings.TrimSpace(sanitizeInput(ff.Instructor)),
		CRN:          strings.TrimSpace(sanitizeInput(ff.CRN)),
		InstructorID: base.InstructorID,
	}

	out.Status = models.ParseEnrollmentStatus(ff.Status)

	var err error
	if out.Year, err = parseOptionalInt("year", ff.Year, 1900, 3000); err != nil {
		return models.FilterState{}, err
	}
	if out.MinCredits, err = parseOptionalFloat("min credits", ff.MinCredits, 0, 30); err != nil {
		return models.FilterState{}, err
	}
	if out.MaxCredits, err = parseOptionalFloat("max credits", ff.MaxCredits, 0, 30); err != nil {
		return models.FilterState{}, err
	}
	if out.MinCredits != nil && out.MaxCredits != nil && *out.MinCredits > *out.MaxCredits {
		return models.FilterState{}, fmt.Errorf("min credits %g exceeds max credits %g", *out.MinCredits, *out.MaxCredits)
	}
	if out.MinRating, err = parseOptionalFloat("min rating", ff.MinRating, 0, 5); err != nil {
		return models.FilterState{}, err
	}
	if out.MinRatingCount, err = parseOptionalInt("min rating count", ff.MinRatingCount, 0, 1_000_000); err != nil {
		return models.FilterState{}, err
	}
	if out.MaxDifficulty, err = parseOptionalFloat("max difficulty", ff.MaxDifficulty, 0, 5); err != nil {
		return models.FilterState{}, err
	}
	return out, nil
}

func parseOptionalFloat(name, s string, min, max float64) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("%s: %q is not a number", name, s)
	}
	if v < min || v > max {
		return nil, fmt.Errorf("%s: %g out of range %g-%g", name, v, min, max)
	}
	return &v, nil
}

func parseOptionalInt(name, s string, min, max int) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("%s: %q is not a whole number", name, s)
	}
	if v < min || v > max {
		return nil, fmt.Errorf("%s: %d out of range %d-%d", name, v, min, max)
	}
	return &v, nil
}

func formatOptionalFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatOptionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func validator[T any](parse func(string) (T, error)) func(string) error {
	return func(s string) error {
		_, err := parse(s)
		return err
	}
}

// subjectOptions builds the subject select, keeping an unknown current value selectable
func subjectOptions(subjects []models.Subject, current string) []huh.Option[string] {
	opts := []huh.Option[string]{huh.NewOption("Any subject", anyOption)}
	seen := false
	for _, s := range subjects {
		opts = append(opts, huh.NewOption(s.Code, s.Code))
		seen = seen || s.Code == current
	}
	if current != "" && !seen {
		opts = append(opts, huh.NewOption(current, current))
	}
	return opts
}

func termOptions(terms []models.Term, semester, year string) (semesters, years []huh.Option[string]) {
	yearList, semesterList := catalog.TermOptions(terms)

	semesters = []huh.Option[string]{huh.NewOption("Any semester", anyOption)}
	for _, s := range semesterList {
		semesters = append(semesters, huh.NewOption(s, s))
	}
	if semester != "" && !containsString(semesterList, semester) {
		semesters = append(semesters, huh.NewOption(semester, semester))
	}

	years = []huh.Option[string]{huh.NewOption("Any year", anyOption)}
	found := false
	for _, y := range yearList {
		v := strconv.Itoa(y)
		years = append(years, huh.NewOption(v, v))
		found = found || v == year
	}
	if year != "" && !found {
		years = append(years, huh.NewOption(year, year))
	}
	return semesters, years
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// PromptForFilters opens the filter form pre-filled with current. Cancelling
// the form returns current unchanged together with the huh error.
func PromptForFilters(current models.FilterState, opts FilterOptions) (models.FilterState, error) {
	ff := newFilterForm(current)
	semesters, years := termOptions(opts.Terms, ff.Semester, ff.Year)

	floatField := func(name string, max float64) func(string) error {
		return validator(func(s string) (*float64, error) { return parseOptionalFloat(name, s, 0, max) })
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Search").
				Description("Course title, subject or number").
				Value(&ff.Search),
			huh.NewSelect[string]().
				Title("Subject").
				Options(subjectOptions(opts.Subjects, ff.Subject)...).
				Height(8).
				Value(&ff.Subject),
			huh.NewSelect[string]().
				Title("Semester").
				Options(semesters...).
				Value(&ff.Semester),
			huh.NewSelect[string]().
				Title("Year").
				Options(years...).
				Value(&ff.Year),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Instructor").
				Description("Name substring").
				Value(&ff.Instructor),
			huh.NewInput().
				Title("CRN").
				Value(&ff.CRN),
			huh.NewSelect[string]().
				Title("Enrollment").
				Options(
					huh.NewOption("Any", string(models.StatusAny)),
					huh.NewOption("Open seats", string(models.StatusOpen)),
					huh.NewOption("Full", string(models.StatusClosed)),
				).
				Value(&ff.Status),
			huh.NewInput().
				Title("Min credits").
				Value(&ff.MinCredits).
				Validate(floatField("min credits", 30)),
			huh.NewInput().
				Title("Max credits").
				Value(&ff.MaxCredits).
				Validate(floatField("max credits", 30)),
		),
		huh.NewGroup(
			huh.NewNote().
				Title("Instructor ratings").
				Description("Sections whose instructors have no rating data always pass"),
			huh.NewInput().
				Title("Min rating (0-5)").
				Value(&ff.MinRating).
				Validate(floatField("min rating", 5)),
			huh.NewInput().
				Title("Min number of ratings").
				Value(&ff.MinRatingCount).
				Validate(validator(func(s string) (*int, error) {
					return parseOptionalInt("min rating count", s, 0, 1_000_000)
				})),
			huh.NewInput().
				Title("Max difficulty (0-5)").
				Value(&ff.MaxDifficulty).
				Validate(floatField("max difficulty", 5)),
		),
	).WithTheme(NewAppTheme())

	if err := form.Run(); err != nil {
		return current, fmt.Errorf("filter form cancelled: %w", err)
	}
	return ff.toFilters(current)
}

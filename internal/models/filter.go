package models

// EnrollmentStatus filters sections by seat availability
type EnrollmentStatus string

const (
	StatusAny    EnrollmentStatus = ""
	StatusOpen   EnrollmentStatus = "open"
	StatusClosed EnrollmentStatus = "closed"
)

// ParseEnrollmentStatus maps user input to a status; anything unknown is StatusAny
func ParseEnrollmentStatus(s string) EnrollmentStatus {
	switch EnrollmentStatus(s) {
	case StatusOpen, StatusClosed:
		return EnrollmentStatus(s)
	}
	return StatusAny
}

// FilterState holds the user-facing search filters.
// Nil pointers and empty strings mean "no constraint". A FilterState is
// replaced as a whole value; compare with Equal.
type FilterState struct {
	Search       string
	Subject      string
	Semester     string
	Year         *int
	CRN          string
	Instructor   string // name substring
	InstructorID *int64
	MinCredits   *float64
	MaxCredits   *float64
	Status       EnrollmentStatus

	// Rating thresholds pass sections whose instructors have no rating data
	MinRating      *float64
	MinRatingCount *int
	MaxDifficulty  *float64
}

// Equal reports whether two filter states constrain the search identically
func (f FilterState) Equal(o FilterState) bool {
	return f.Search == o.Search &&
		f.Subject == o.Subject &&
		f.Semester == o.Semester &&
		eqPtr(f.Year, o.Year) &&
		f.CRN == o.CRN &&
		f.Instructor == o.Instructor &&
		eqPtr(f.InstructorID, o.InstructorID) &&
		eqPtr(f.MinCredits, o.MinCredits) &&
		eqPtr(f.MaxCredits, o.MaxCredits) &&
		f.Status == o.Status &&
		eqPtr(f.MinRating, o.MinRating) &&
		eqPtr(f.MinRatingCount, o.MinRatingCount) &&
		eqPtr(f.MaxDifficulty, o.MaxDifficulty)
}

// IsZero reports whether no filter is set
func (f FilterState) IsZero() bool {
	return f.Equal(FilterState{})
}

func eqPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

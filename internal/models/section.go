package models

// Meeting is one scheduled meeting block of a section
type Meeting struct {
	Days      string `json:"days"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Bldg      string `json:"bldg"`
	Room      string `json:"room"`
	Location  string `json:"location"`
}

// InstructorRef is an instructor as it appears on a section record.
// The rmp_* preview fields are echoed by /sections and may all be null.
type InstructorRef struct {
	InstructorID *int64   `json:"instructor_id"` // nullable - legacy rows only carry a name
	Name         string   `json:"name"`
	NetID        string   `json:"netid,omitempty"`
	Email        string   `json:"email,omitempty"`
	RMPID        *string  `json:"rmp_id,omitempty"`
	RMPURL       *string  `json:"rmp_url,omitempty"`
	AvgRating    *float64 `json:"rmp_avg_rating,omitempty"`
	NumRatings   *int     `json:"rmp_num_ratings,omitempty"`
	Difficulty   *float64 `json:"rmp_difficulty,omitempty"`
}

// SectionRecord is one course section returned by GET /sections
type SectionRecord struct {
	SectionID         int64           `json:"section_id"`
	CRN               string          `json:"crn"`
	LecLab            string          `json:"lec_lab"`
	CourseID          int64           `json:"course_id"`
	Subject           string          `json:"subject"`
	CourseNumber      string          `json:"course_number"`
	Title             string          `json:"title"`
	Semester          string          `json:"semester"`
	Year              int             `json:"year"`
	CreditsMin        *float64        `json:"credits_min"`
	CreditsMax        *float64        `json:"credits_max"`
	CurrentEnrollment *int            `json:"current_enrollment"`
	MaxEnrollment     *int            `json:"max_enrollment"`
	Meetings          []Meeting       `json:"meetings"`
	Instructors       []InstructorRef `json:"instructors"`
}

// IsOpen reports whether the section has seats left.
// Sections with unknown enrollment are neither open nor full.
func (s SectionRecord) IsOpen() (open bool, known bool) {
	if s.CurrentEnrollment == nil || s.MaxEnrollment == nil {
		return false, false
	}
	return *s.CurrentEnrollment < *s.MaxEnrollment, true
}

// CourseKey identifies a course group: subject, number and title
type CourseKey struct {
	Subject      string
	CourseNumber string
	Title        string
}

// Key returns the grouping key of the section
func (s SectionRecord) Key() CourseKey {
	return CourseKey{Subject: s.Subject, CourseNumber: s.CourseNumber, Title: s.Title}
}

// CourseGroup is a course together with the sections of one result page that share its key
type CourseGroup struct {
	Key      CourseKey
	Sections []SectionRecord
}

// SectionPage is the decoded body of GET /sections.
// Total is nil when the server omitted it or sent something non-numeric.
type SectionPage struct {
	Items  []SectionRecord
	Total  *float64
	Limit  int
	Offset int
}

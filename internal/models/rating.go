package models

// RatingProfile is the third-party rating payload for one instructor.
// Every stat is nullable; see IsEmpty.
type RatingProfile struct {
	RMPID              *string        `json:"rmp_id"`
	ProfileURL         *string        `json:"rmp_url"`
	AvgRating          *float64       `json:"avg_rating"`       // 0-5
	NumRatings         *int           `json:"num_ratings"`      // >= 0
	Difficulty         *float64       `json:"difficulty"`       // 0-5
	WouldTakeAgain     *float64       `json:"would_take_again"` // 0-100 percent
	TopTags            []string       `json:"top_tags"`
	RatingDistribution map[string]int `json:"rating_distribution"`
	LastRefreshed      *string        `json:"last_refreshed"`
}

// IsEmpty reports whether the profile carries no usable stats.
// An empty profile is a successful lookup, not a failure.
func (p *RatingProfile) IsEmpty() bool {
	if p == nil {
		return true
	}
	return p.AvgRating == nil && p.NumRatings == nil && p.Difficulty == nil && p.WouldTakeAgain == nil
}

// InstructorMatch is one hit of GET /instructors?search=...&include_rmp=1
type InstructorMatch struct {
	InstructorID *int64         `json:"instructor_id"`
	Name         string         `json:"name"`
	NetID        string         `json:"netid,omitempty"`
	Email        string         `json:"email,omitempty"`
	RMP          *RatingProfile `json:"rmp"`
}

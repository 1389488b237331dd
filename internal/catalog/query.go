package catalog

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/jonahtballard/CatBase/internal/models"
)

// DefaultPageSize matches the backend's default limit for /sections
const DefaultPageSize = 50

// Composer builds the query string of a /sections request.
// Every filter goes to the server; nothing is post-filtered locally, since a
// local filter applied after server pagination undercounts every page.
type Composer struct {
	PageSize int
}

// NewComposer returns a Composer with the given page size (DefaultPageSize if <= 0)
func NewComposer(pageSize int) Composer {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return Composer{PageSize: pageSize}
}

// Limit returns the effective page size
func (c Composer) Limit() int {
	if c.PageSize <= 0 {
		return DefaultPageSize
	}
	return c.PageSize
}

// Compose returns the parameters for one page of results. Unset filters are
// omitted: omission means "no constraint", never "constrain to empty/zero".
func (c Composer) Compose(f models.FilterState, offset int) url.Values {
	if offset < 0 {
		offset = 0
	}

	params := url.Values{}
	params.Set("limit", strconv.Itoa(c.Limit()))
	params.Set("offset", strconv.Itoa(offset))

	setString(params, "search", f.Search)
	setString(params, "subject", f.Subject)
	setString(params, "semester", f.Semester)
	setInt(params, "year", f.Year)
	setString(params, "crn", f.CRN)
	setString(params, "instructor", f.Instructor)
	if f.InstructorID != nil {
		params.Set("instructor_id", strconv.FormatInt(*f.InstructorID, 10))
	}
	setFloat(params, "min_credits", f.MinCredits)
	setFloat(params, "max_credits", f.MaxCredits)
	if f.Status != models.StatusAny {
		params.Set("status", string(f.Status))
	}
	setFloat(params, "rmp_min_rating", f.MinRating)
	setInt(params, "rmp_min_count", f.MinRatingCount)
	setFloat(params, "rmp_max_difficulty", f.MaxDifficulty)

	return params
}

func setString(params url.Values, key, value string) {
	if value = strings.TrimSpace(value); value != "" {
		params.Set(key, value)
	}
}

func setInt(params url.Values, key string, value *int) {
	if value != nil {
		params.Set(key, strconv.Itoa(*value))
	}
}

func setFloat(params url.Values, key string, value *float64) {
	if value != nil {
		params.Set(key, strconv.FormatFloat(*value, 'f', -1, 64))
	}
}

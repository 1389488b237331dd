package catalog

import (
	"fmt"

	"github.com/jonahtballard/CatBase/internal/models"
)

// Aggregate groups a page of sections by (subject, course number, title).
// Groups appear in first-seen order and keep their sections in arrival order.
// Two distinct courses with the same key share a group, and a course retitled
// between terms splits into two; /sections carries no better identity to group on.
func Aggregate(records []models.SectionRecord) []models.CourseGroup {
	index := make(map[models.CourseKey]int)
	var groups []models.CourseGroup

	for _, r := range records {
		key := r.Key()
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, models.CourseGroup{Key: key})
		}
		groups[i].Sections = append(groups[i].Sections, r)
	}
	return groups
}

// Range is the "start–end of total" figure shown above a page of results
type Range struct {
	Start int
	End   int
	Total *int // nil when the reported total is not trustworthy
}

// DescribeRange computes the visible range of a page. It applies the same
// trust rule as Paginate, so the two never disagree about the total.
func DescribeRange(offset, itemCount int, reportedTotal *float64) Range {
	if offset < 0 {
		offset = 0
	}

	r := Range{End: offset + itemCount}
	if itemCount > 0 {
		r.Start = offset + 1
	}

	if total, ok := TrustedTotal(reportedTotal, itemCount); ok {
		r.End = min(r.End, total)
		// a page that starts past the total collapses onto its last item
		r.Start = min(r.Start, r.End)
		r.Total = &total
	}
	return r
}

// Text renders the range: "51–100 of 137", or "1–50 results" without a trusted total
func (r Range) Text() string {
	if r.Start == 0 {
		return "No results"
	}
	if r.Total == nil {
		return fmt.Sprintf("%d–%d results", r.Start, r.End)
	}
	return fmt.Sprintf("%d–%d of %d", r.Start, r.End, *r.Total)
}

package catalog

import (
	"testing"

	"github.com/jonahtballard/CatBase/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate(t *testing.T) {
	records := []models.SectionRecord{
		{Subject: "MATH", CourseNumber: "1010", Title: "Calc I", SectionID: 1},
		{Subject: "MATH", CourseNumber: "1010", Title: "Calc I", SectionID: 2},
		{Subject: "CS", CourseNumber: "1000", Title: "Intro", SectionID: 3},
	}

	groups := Aggregate(records)
	require.Len(t, groups, 2)

	assert.Equal(t, models.CourseKey{Subject: "MATH", CourseNumber: "1010", Title: "Calc I"}, groups[0].Key)
	require.Len(t, groups[0].Sections, 2)
	assert.Equal(t, int64(1), groups[0].Sections[0].SectionID)
	assert.Equal(t, int64(2), groups[0].Sections[1].SectionID)

	assert.Equal(t, "CS", groups[1].Key.Subject)
	require.Len(t, groups[1].Sections, 1)
	assert.Equal(t, int64(3), groups[1].Sections[0].SectionID)
}

func TestAggregateKeepsFirstSeenOrder(t *testing.T) {
	records := []models.SectionRecord{
		{Subject: "CS", CourseNumber: "2100", Title: "Data Structures", SectionID: 10},
		{Subject: "BIO", CourseNumber: "1400", Title: "Cells", SectionID: 11},
		{Subject: "CS", CourseNumber: "2100", Title: "Data Structures", SectionID: 12},
		{Subject: "CS", CourseNumber: "2100", Title: "Data Structures II", SectionID: 13},
	}

	groups := Aggregate(records)
	require.Len(t, groups, 3)
	assert.Equal(t, "Data Structures", groups[0].Key.Title)
	assert.Equal(t, "BIO", groups[1].Key.Subject)
	assert.Equal(t, "Data Structures II", groups[2].Key.Title, "a retitled course is its own group")

	var ids []int64
	for _, s := range groups[0].Sections {
		ids = append(ids, s.SectionID)
	}
	assert.Equal(t, []int64{10, 12}, ids)
}

func TestAggregateEmpty(t *testing.T) {
	assert.Empty(t, Aggregate(nil))
}

func TestDescribeRange(t *testing.T) {
	tests := []struct {
		name      string
		offset    int
		itemCount int
		total     *float64
		wantStart int
		wantEnd   int
		wantText  string
	}{
		{"middle page", 50, 50, total(137), 51, 100, "51–100 of 137"},
		{"last page", 100, 37, total(137), 101, 137, "101–137 of 137"},
		{"untrusted total", 0, 50, total(50), 1, 50, "1–50 results"},
		{"absent total", 0, 50, nil, 1, 50, "1–50 results"},
		{"empty page", 0, 0, total(0), 0, 0, "No results"},
		{"empty page past the end", 150, 0, nil, 0, 150, "No results"},
		{"page past a trusted total", 200, 10, total(137), 137, 137, "137–137 of 137"},
		{"huge total is untrusted", 0, 50, total(1e300), 1, 50, "1–50 results"},
		{"fractional total is untrusted", 0, 50, total(50.5), 1, 50, "1–50 results"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := DescribeRange(tt.offset, tt.itemCount, tt.total)
			assert.Equal(t, tt.wantStart, r.Start)
			assert.Equal(t, tt.wantEnd, r.End)
			assert.Equal(t, tt.wantText, r.Text())
		})
	}
}

func TestDescribeRangeClampsEndToTotal(t *testing.T) {
	// a server that over-delivers on the last page still reports the trusted total
	r := DescribeRange(100, 40, total(137))
	require.NotNil(t, r.Total)
	assert.Equal(t, 137, r.End)
	assert.Equal(t, 137, *r.Total)
}

func TestDescribeRangeAgreesWithPaginate(t *testing.T) {
	states := []PageState{
		{Offset: 0, Limit: 50, ReportedTotal: total(50), ItemCount: 50},
		{Offset: 0, Limit: 50, ReportedTotal: total(51), ItemCount: 50},
		{Offset: 50, Limit: 50, ItemCount: 3},
		{Offset: 0, Limit: 50, ReportedTotal: total(0), ItemCount: 0},
		{Offset: 0, Limit: 50, ReportedTotal: total(1e300), ItemCount: 50},
		{Offset: 0, Limit: 50, ReportedTotal: total(50.5), ItemCount: 50},
		{Offset: 0, Limit: 50, ReportedTotal: total(137.5), ItemCount: 50},
	}
	for _, s := range states {
		p := Paginate(s)
		r := DescribeRange(s.Offset, s.ItemCount, s.ReportedTotal)
		require.Equal(t, p.Mode == ModeCounted, r.Total != nil, "%+v", s)
		if r.Total != nil {
			assert.Equal(t, (*r.Total+s.Limit-1)/s.Limit, p.PageCount, "%+v", s)
		}
	}
}

package catalog

import (
	"sort"

	"github.com/jonahtballard/CatBase/internal/models"
)

// semesterOrder is the academic order the backend sorts terms by
var semesterOrder = map[string]int{
	"Spring": 1,
	"Summer": 2,
	"Fall":   3,
	"Winter": 4,
}

// TermOptions derives the year and semester choices of the filter form from
// GET /terms: distinct years newest first, distinct semesters in academic
// order with unknown names last (alphabetical).
func TermOptions(terms []models.Term) (years []int, semesters []string) {
	seenYear := make(map[int]bool)
	seenSem := make(map[string]bool)

	for _, t := range terms {
		if t.Year != 0 && !seenYear[t.Year] {
			seenYear[t.Year] = true
			years = append(years, t.Year)
		}
		if t.Semester != "" && !seenSem[t.Semester] {
			seenSem[t.Semester] = true
			semesters = append(semesters, t.Semester)
		}
	}

	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	sort.Slice(semesters, func(i, j int) bool {
		ri, rj := semesterRank(semesters[i]), semesterRank(semesters[j])
		if ri != rj {
			return ri < rj
		}
		return semesters[i] < semesters[j]
	})
	return years, semesters
}

func semesterRank(s string) int {
	if r, ok := semesterOrder[s]; ok {
		return r
	}
	return len(semesterOrder) + 1
}

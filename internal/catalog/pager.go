package catalog

import "math"

// pageWindow is the largest page count rendered without ellipses
const pageWindow = 9

// PageState describes one fetched page of results
type PageState struct {
	Offset        int
	Limit         int
	ReportedTotal *float64 // as sent by the server; nil if absent
	ItemCount     int      // records actually returned for this page
}

// Mode says how far the reported total can be trusted
type Mode int

const (
	// ModeFallback navigates by offset alone; the total is absent or suspicious
	ModeFallback Mode = iota
	// ModeCounted bounds navigation by the reported total
	ModeCounted
)

func (m Mode) String() string {
	if m == ModeCounted {
		return "counted"
	}
	return "fallback"
}

// PageItem is one entry of the page list: a page number or an ellipsis
type PageItem struct {
	Page     int // 0 for an ellipsis
	Ellipsis bool
	Current  bool
}

// Pagination is the navigable state derived from a PageState
type Pagination struct {
	Mode        Mode
	CurrentPage int
	PageCount   int // 0 in fallback mode: unknown
	HasPrev     bool
	HasNext     bool
	Pages       []PageItem
}

// maxTrustedTotal is the largest total that converts to int safely on every platform
const maxTrustedTotal = math.MaxInt32

// TrustedTotal converts a reported total into the count that bounds
// navigation. It must be a finite whole number, larger than the page that was
// just returned and at most maxTrustedTotal. A total no bigger than the page
// is indistinguishable from the backend echoing the page size, so it is
// distrusted and Next stays usable. Paginate and DescribeRange both read the
// total through here.
func TrustedTotal(total *float64, itemCount int) (int, bool) {
	if total == nil {
		return 0, false
	}
	t := *total
	if math.IsNaN(t) || math.IsInf(t, 0) || t != math.Trunc(t) {
		return 0, false
	}
	if t <= 0 || t <= float64(itemCount) || t > maxTrustedTotal {
		return 0, false
	}
	return int(t), true
}

// TrustTotal reports whether TrustedTotal accepts total
func TrustTotal(total *float64, itemCount int) bool {
	_, ok := TrustedTotal(total, itemCount)
	return ok
}

// Paginate derives page controls from a page of results
func Paginate(s PageState) Pagination {
	limit := s.Limit
	if limit <= 0 {
		limit = DefaultPageSize
	}
	offset := s.Offset
	if offset < 0 {
		offset = 0
	}
	current := offset/limit + 1

	total, trusted := TrustedTotal(s.ReportedTotal, s.ItemCount)
	if !trusted {
		return Pagination{
			Mode:        ModeFallback,
			CurrentPage: current,
			HasPrev:     offset > 0,
			HasNext:     s.ItemCount >= limit,
			Pages:       []PageItem{{Page: current, Current: true}},
		}
	}

	pageCount := max(1, (total+limit-1)/limit)
	return Pagination{
		Mode:        ModeCounted,
		CurrentPage: current,
		PageCount:   pageCount,
		HasPrev:     offset > 0,
		HasNext:     current < pageCount,
		Pages:       pageList(current, pageCount),
	}
}

// pageList renders 1..pageCount, windowed around current once it gets long:
// 1 … c-2 c-1 c c+1 c+2 … N
func pageList(current, pageCount int) []PageItem {
	item := func(p int) PageItem {
		return PageItem{Page: p, Current: p == current}
	}

	var pages []PageItem
	if pageCount <= pageWindow {
		for p := 1; p <= pageCount; p++ {
			pages = append(pages, item(p))
		}
		return pages
	}

	pages = append(pages, item(1))
	if current > 4 {
		pages = append(pages, PageItem{Ellipsis: true})
	}
	for p := max(2, current-2); p <= min(pageCount-1, current+2); p++ {
		pages = append(pages, item(p))
	}
	if current < pageCount-3 {
		pages = append(pages, PageItem{Ellipsis: true})
	}
	return append(pages, item(pageCount))
}

// Goto converts a 1-based page number to an offset. Pages below 1 clamp to 1.
// There is no upper clamp: stepping past the last known page is how fallback
// mode discovers whether more data exists.
func Goto(page, limit int) int {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	return (page - 1) * limit
}

package catalog

import (
	"net/url"

	"github.com/jonahtballard/CatBase/internal/models"
)

// Request is one issued /sections request, stamped with the session generation
type Request struct {
	Gen     uint64
	Filters models.FilterState
	Offset  int
	Params  url.Values
}

// Result is the view state built from the latest applied response
type Result struct {
	Items      []models.SectionRecord
	Groups     []models.CourseGroup
	Page       PageState
	Pagination Pagination
	Range      Range
	Err        error
}

// Session owns the filter state and page position of one browser view and
// applies responses last-request-wins. It is not safe for concurrent use; the
// TUI drives it from its update loop.
type Session struct {
	composer Composer
	filters  models.FilterState
	offset   int

	gen      uint64
	inflight *Request
	disposed bool
	result   Result
}

// NewSession starts a session on the first page of the given filters
func NewSession(composer Composer, filters models.FilterState) *Session {
	return &Session{composer: composer, filters: filters}
}

// Filters returns the current filter state
func (s *Session) Filters() models.FilterState { return s.filters }

// Offset returns the offset the next request will use
func (s *Session) Offset() int { return s.offset }

// Limit returns the page size
func (s *Session) Limit() int { return s.composer.Limit() }

// Result returns the last applied result
func (s *Session) Result() Result { return s.result }

// Loading reports whether a request is outstanding
func (s *Session) Loading() bool { return s.inflight != nil }

// SetFilters replaces the filter state. A different filter context
// invalidates the old page position, so the offset resets to 0.
func (s *Session) SetFilters(f models.FilterState) bool {
	if f.Equal(s.filters) {
		return false
	}
	s.filters = f
	s.offset = 0
	return true
}

// GotoPage moves to a 1-based page (clamped to >= 1)
func (s *Session) GotoPage(page int) {
	s.offset = Goto(page, s.Limit())
}

// NextPage advances one page if the last result allows it
func (s *Session) NextPage() bool {
	p := s.result.Pagination
	if !p.HasNext {
		return false
	}
	s.GotoPage(p.CurrentPage + 1)
	return true
}

// PrevPage goes back one page if possible
func (s *Session) PrevPage() bool {
	p := s.result.Pagination
	if !p.HasPrev {
		return false
	}
	s.GotoPage(p.CurrentPage - 1)
	return true
}

// Begin issues a request for the current filters and offset. Any earlier
// request still in flight becomes stale. Returns false once disposed.
func (s *Session) Begin() (Request, bool) {
	if s.disposed {
		return Request{}, false
	}
	s.gen++
	req := Request{
		Gen:     s.gen,
		Filters: s.filters,
		Offset:  s.offset,
		Params:  s.composer.Compose(s.filters, s.offset),
	}
	s.inflight = &req
	return req, true
}

// Apply installs the response to the request with the given generation.
// Stale or post-dispose responses are dropped and Apply returns false.
// A failed request clears the result list rather than leaving a stale page.
func (s *Session) Apply(gen uint64, page *models.SectionPage, err error) bool {
	if s.disposed || s.inflight == nil || gen != s.inflight.Gen {
		return false
	}
	req := *s.inflight
	s.inflight = nil

	if err == nil && page == nil {
		page = &models.SectionPage{}
	}
	if err != nil {
		state := PageState{Offset: req.Offset, Limit: s.Limit()}
		s.result = Result{
			Page:       state,
			Pagination: Paginate(state),
			Range:      DescribeRange(req.Offset, 0, nil),
			Err:        err,
		}
		return true
	}

	state := PageState{
		Offset:        req.Offset,
		Limit:         s.Limit(),
		ReportedTotal: page.Total,
		ItemCount:     len(page.Items),
	}
	s.result = Result{
		Items:      page.Items,
		Groups:     Aggregate(page.Items),
		Page:       state,
		Pagination: Paginate(state),
		Range:      DescribeRange(req.Offset, len(page.Items), page.Total),
	}
	return true
}

// Dispose detaches the session; late responses are ignored from now on
func (s *Session) Dispose() {
	s.disposed = true
	s.inflight = nil
}

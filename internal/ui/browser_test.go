package ui

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonahtballard/CatBase/internal/api"
	"github.com/jonahtballard/CatBase/internal/catalog"
	"github.com/jonahtballard/CatBase/internal/models"
	"github.com/jonahtballard/CatBase/internal/ratings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

// fakeSource serves queued pages in order, repeating the last one
type fakeSource struct {
	mu    sync.Mutex
	calls []url.Values
	pages []*models.SectionPage
	errs  []error
}

func (f *fakeSource) Sections(_ context.Context, params url.Values) (*models.SectionPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := len(f.calls)
	f.calls = append(f.calls, params)
	if i < len(f.errs) && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	if i >= len(f.pages) {
		i = len(f.pages) - 1
	}
	return f.pages[i], nil
}

func (f *fakeSource) last() url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

type fakeFetcher struct {
	mu      sync.Mutex
	calls   int
	ratings map[int64]*models.RatingProfile
}

func (f *fakeFetcher) InstructorRating(_ context.Context, id int64) (*models.RatingProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.ratings[id], nil
}

func (f *fakeFetcher) SearchInstructors(context.Context, api.InstructorSearch) ([]models.InstructorMatch, error) {
	return nil, nil
}

func sectionRec(id int64, subject, number, title string, instructors ...models.InstructorRef) models.SectionRecord {
	return models.SectionRecord{
		SectionID:         id,
		CRN:               "9" + number,
		LecLab:            "LEC",
		Subject:           subject,
		CourseNumber:      number,
		Title:             title,
		CreditsMin:        ptr(3.0),
		CreditsMax:        ptr(3.0),
		CurrentEnrollment: ptr(10),
		MaxEnrollment:     ptr(30),
		Meetings:          []models.Meeting{{Days: "MWF", StartTime: "09:00", EndTime: "09:50"}},
		Instructors:       instructors,
	}
}

var ada = models.InstructorRef{InstructorID: ptr(int64(7)), Name: "Ada Lovelace"}

func firstPage() *models.SectionPage {
	return &models.SectionPage{
		Items: []models.SectionRecord{
			sectionRec(1, "CS", "021", "Intro Programming", ada),
			sectionRec(2, "CS", "021", "Intro Programming", ada),
			sectionRec(3, "MATH", "101", "Calculus"),
		},
		Total: ptr(137.0),
		Limit: 50,
	}
}

// run executes cmd and returns the messages it yields, flattening batches
// and skipping spinner ticks
func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	switch msg := msg.(type) {
	case nil, spinner.TickMsg:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, run(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func update(m BrowserModel, msg tea.Msg) (BrowserModel, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(BrowserModel), cmd
}

// settle feeds every message produced by cmd (and its follow-ups) back into m
func settle(t *testing.T, m BrowserModel, cmd tea.Cmd) BrowserModel {
	t.Helper()
	queue := run(cmd)
	for i := 0; len(queue) > 0; i++ {
		require.Less(t, i, 200, "update loop did not settle")
		msg := queue[0]
		queue = queue[1:]
		var next tea.Cmd
		m, next = update(m, msg)
		queue = append(queue, run(next)...)
	}
	return m
}

func press(t *testing.T, m BrowserModel, keys ...tea.KeyMsg) BrowserModel {
	t.Helper()
	for _, k := range keys {
		var cmd tea.Cmd
		m, cmd = update(m, k)
		m = settle(t, m, cmd)
	}
	return m
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var enter = tea.KeyMsg{Type: tea.KeyEnter}

func newTestBrowser(t *testing.T, src *fakeSource, fetcher *fakeFetcher) BrowserModel {
	t.Helper()
	cfg := BrowserConfig{
		Source:    src,
		Composer:  catalog.NewComposer(50),
		ExportDir: t.TempDir(),
	}
	if fetcher != nil {
		cfg.Resolver = ratings.NewResolver(ratings.NewCache(), fetcher, nil)
	}
	m := NewBrowserModel(context.Background(), cfg)
	return settle(t, m, m.Init())
}

func TestBrowserLoadsFirstPage(t *testing.T) {
	src := &fakeSource{pages: []*models.SectionPage{firstPage()}}
	m := newTestBrowser(t, src, nil)

	require.Len(t, src.calls, 1)
	assert.Equal(t, "50", src.calls[0].Get("limit"))
	assert.Equal(t, "0", src.calls[0].Get("offset"))

	rows := m.table.Rows()
	require.Len(t, rows, 5, "two course headers and three sections")
	assert.Equal(t, "CS 021", rows[0][0])
	assert.Equal(t, "2 sections", rows[0][2])
	assert.Equal(t, "  9021", rows[1][0])
	assert.Equal(t, "MATH 101", rows[3][0])
	assert.Equal(t, "1 section", rows[3][2])
	assert.Equal(t, "Staff", rows[4][3])
	assert.Equal(t, "10/30", rows[4][4])

	assert.True(t, m.isGroupRow(0))
	assert.False(t, m.isGroupRow(1))

	res := m.session.Result()
	assert.Equal(t, "1–3 of 137", res.Range.Text())
	assert.Equal(t, catalog.ModeCounted, res.Pagination.Mode)
	assert.Equal(t, 3, res.Pagination.PageCount)

	view := stripEscapeCodes(m.View())
	assert.Contains(t, view, "1–3 of 137")
	assert.Contains(t, view, "Intro Programming")
	assert.Contains(t, view, "of 3")
}

func TestBrowserPaging(t *testing.T) {
	src := &fakeSource{pages: []*models.SectionPage{firstPage()}}
	m := newTestBrowser(t, src, nil)

	m = press(t, m, runes("n"))
	assert.Equal(t, "50", src.last().Get("offset"))

	m = press(t, m, runes("p"))
	assert.Equal(t, "0", src.last().Get("offset"))

	// already on the first page
	m = press(t, m, runes("p"), runes("g"))
	assert.Len(t, src.calls, 3)
}

func TestBrowserFallbackStopsAtShortPage(t *testing.T) {
	page := firstPage()
	page.Total = nil
	src := &fakeSource{pages: []*models.SectionPage{page}}
	m := newTestBrowser(t, src, nil)

	assert.Equal(t, catalog.ModeFallback, m.session.Result().Pagination.Mode)
	m = press(t, m, runes("n"))
	assert.Len(t, src.calls, 1, "a short page disables next")
	assert.Contains(t, stripEscapeCodes(m.View()), "(total unknown)")
}

func TestBrowserJumpClampsToLastPage(t *testing.T) {
	src := &fakeSource{pages: []*models.SectionPage{firstPage()}}
	m := newTestBrowser(t, src, nil)

	m = press(t, m, runes("G"), runes("99"), enter)
	assert.Equal(t, "100", src.last().Get("offset"))

	m = press(t, m, runes("G"), runes("abc"), enter)
	assert.Len(t, src.calls, 2)
	assert.Contains(t, m.StatusText(), "Not a page number")
}

func TestBrowserQuickSearchResetsOffset(t *testing.T) {
	src := &fakeSource{pages: []*models.SectionPage{firstPage()}}
	m := newTestBrowser(t, src, nil)

	m = press(t, m, runes("n"))
	require.Equal(t, "50", src.last().Get("offset"))

	m = press(t, m, runes("/"), runes("calc"), enter)
	assert.Equal(t, "calc", src.last().Get("search"))
	assert.Equal(t, "0", src.last().Get("offset"))
	assert.Equal(t, "calc", m.session.Filters().Search)

	// same search again is not a filter change
	m = press(t, m, runes("/"), enter)
	assert.Len(t, src.calls, 3)

	m = press(t, m, runes("x"))
	assert.Empty(t, src.last().Get("search"))
}

func TestBrowserDropsStaleResponse(t *testing.T) {
	src := &fakeSource{pages: []*models.SectionPage{firstPage()}}
	m := newTestBrowser(t, src, nil)

	// gen 2 is issued; a late gen 1 style response must not land
	m, _ = update(m, runes("r"))
	require.True(t, m.session.Loading())

	m, _ = update(m, searchMsg{gen: 1, page: &models.SectionPage{}})
	assert.True(t, m.session.Loading())
	assert.Len(t, m.table.Rows(), 5)

	m, _ = update(m, searchMsg{gen: 2, page: &models.SectionPage{Items: firstPage().Items[:1]}})
	assert.False(t, m.session.Loading())
	assert.Len(t, m.table.Rows(), 2)
}

func TestBrowserSearchErrorClearsRows(t *testing.T) {
	src := &fakeSource{
		pages: []*models.SectionPage{firstPage()},
		errs:  []error{nil, errors.New("connection refused")},
	}
	m := newTestBrowser(t, src, nil)
	m = press(t, m, runes("r"))

	assert.Empty(t, m.table.Rows())
	view := stripEscapeCodes(m.View())
	assert.Contains(t, view, "search failed")
	assert.Contains(t, view, "connection refused")
}

func TestBrowserResolvesEachInstructorOnce(t *testing.T) {
	src := &fakeSource{pages: []*models.SectionPage{firstPage()}}
	fetcher := &fakeFetcher{ratings: map[int64]*models.RatingProfile{
		7: {AvgRating: ptr(4.2), NumRatings: ptr(37)},
	}}
	m := newTestBrowser(t, src, fetcher)

	assert.Equal(t, 1, fetcher.calls)
	rows := m.table.Rows()
	assert.Equal(t, "4.2 (37)", rows[1][5])
	assert.Equal(t, "4.2 (37)", rows[2][5])
	assert.Equal(t, "-", rows[4][5])

	// reload hits the cache
	m = press(t, m, runes("r"))
	assert.Equal(t, 1, fetcher.calls)
	assert.Equal(t, ratings.StateLoaded, m.badgeFor(ada).State)
}

func TestBrowserShowsPreviewWithoutResolver(t *testing.T) {
	page := firstPage()
	page.Items[0].Instructors[0].AvgRating = ptr(3.5)
	page.Items[0].Instructors[0].NumRatings = ptr(8)
	src := &fakeSource{pages: []*models.SectionPage{page}}
	m := newTestBrowser(t, src, nil)

	assert.Equal(t, "3.5 (8)", m.table.Rows()[1][5])
}

func TestBrowserDetailView(t *testing.T) {
	src := &fakeSource{pages: []*models.SectionPage{firstPage()}}
	fetcher := &fakeFetcher{ratings: map[int64]*models.RatingProfile{
		7: {AvgRating: ptr(4.2), NumRatings: ptr(37), Difficulty: ptr(3.1), WouldTakeAgain: ptr(85.0), TopTags: []string{"Caring"}},
	}}
	m := newTestBrowser(t, src, fetcher)

	m = press(t, m, enter)
	require.Equal(t, modeDetail, m.mode)
	view := stripEscapeCodes(m.View())
	assert.Contains(t, view, "CS 021 · Intro Programming")
	assert.Contains(t, view, "★ 4.2 · 37 ratings · difficulty 3.1 · 85% would take again")
	assert.Contains(t, view, "Tags: Caring")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, modeTable, m.mode)
}

func TestBrowserFilterKeyExitsWithState(t *testing.T) {
	src := &fakeSource{pages: []*models.SectionPage{firstPage()}}
	m := newTestBrowser(t, src, nil)
	m = press(t, m, runes("n"))

	m, cmd := update(m, runes("f"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	res := m.Result()
	assert.True(t, res.EditFilters)
	assert.Equal(t, 2, res.Page)

	// disposed: late responses are ignored
	m, _ = update(m, searchMsg{gen: 99})
	assert.Equal(t, "", m.View())
}

func TestBrowserExportPage(t *testing.T) {
	src := &fakeSource{pages: []*models.SectionPage{firstPage()}}
	m := newTestBrowser(t, src, nil)

	m = press(t, m, runes("e"))
	assert.Contains(t, m.StatusText(), "Exported to ")
}

func TestRenderPageControls(t *testing.T) {
	counted := catalog.Paginate(catalog.PageState{Offset: 500, Limit: 50, ReportedTotal: ptr(1000.0), ItemCount: 50})
	line := stripEscapeCodes(renderPageControls(counted))
	assert.Contains(t, line, "‹ Prev")
	assert.Contains(t, line, "Next ›")
	assert.Contains(t, line, "…")
	assert.Contains(t, line, "11")
	assert.Contains(t, line, "of 20")

	fallback := catalog.Paginate(catalog.PageState{Offset: 100, Limit: 50, ItemCount: 50})
	line = stripEscapeCodes(renderPageControls(fallback))
	assert.Contains(t, line, "3")
	assert.Contains(t, line, "(total unknown)")
}

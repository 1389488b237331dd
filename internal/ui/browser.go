package ui

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/jonahtballard/CatBase/internal/catalog"
	"github.com/jonahtballard/CatBase/internal/models"
	"github.com/jonahtballard/CatBase/internal/ratings"
)

// SectionSource is the slice of the catalog API the browser reads pages from
type SectionSource interface {
	Sections(ctx context.Context, params url.Values) (*models.SectionPage, error)
}

// BrowserConfig wires a browser run. Resolver may be nil to disable rating lookups.
type BrowserConfig struct {
	Source    SectionSource
	Resolver  *ratings.Resolver
	Composer  catalog.Composer
	Filters   models.FilterState
	Page      int // 1-based start page
	ExportDir string
	Logger    *log.Logger
}

// BrowserResult tells the caller why the browser exited
type BrowserResult struct {
	Filters     models.FilterState
	Page        int
	EditFilters bool // open the filter form and come back
}

// Message types for async operations

type searchMsg struct {
	gen  uint64
	page *models.SectionPage
	err  error
}

type ratingMsg struct {
	key     string
	profile *models.RatingProfile
	err     error
}

type browserMode int

const (
	modeTable browserMode = iota
	modeSearch
	modeJump
	modeDetail
)

const statusDuration = 4 * time.Second

// rowRef maps a table row back to the result: section is -1 on a course header row
type rowRef struct {
	group   int
	section int
}

// BrowserModel is the section browser
type BrowserModel struct {
	PageState

	cfg     BrowserConfig
	ctx     context.Context
	session *catalog.Session
	tracker *ratings.Tracker

	table   table.Model
	rows    []rowRef
	spinner spinner.Model
	input   textinput.Model
	mode    browserMode
	detail  rowRef
	keys    browserKeys
	help    help.Model
	result  BrowserResult
}

// NewBrowserModel creates a browser positioned on cfg.Page of cfg.Filters
func NewBrowserModel(ctx context.Context, cfg BrowserConfig) BrowserModel {
	if cfg.Composer.PageSize <= 0 {
		cfg.Composer = catalog.NewComposer(catalog.DefaultPageSize)
	}
	session := catalog.NewSession(cfg.Composer, cfg.Filters)
	if cfg.Page > 1 {
		session.GotoPage(cfg.Page)
	}

	layout := DefaultLayout()

	m := BrowserModel{
		PageState: NewPageState(layout),
		cfg:       cfg,
		ctx:       ctx,
		session:   session,
		tracker:   ratings.NewTracker(),
		spinner:   NewAppSpinner(),
		input:     newQuickInput(layout),
		keys:      newBrowserKeys(),
		help:      help.New(),
	}
	m.table = newSectionTable(layout)
	return m
}

// Init implements tea.Model
func (m BrowserModel) Init() tea.Cmd {
	return tea.Batch(tea.WindowSize(), m.fetch())
}

// Result returns the exit state; valid after the program finished
func (m BrowserModel) Result() BrowserResult {
	return m.result
}

// fetch issues a request for the session's current position. It must be
// called from the update loop; the network call runs in the returned command.
func (m *BrowserModel) fetch() tea.Cmd {
	req, ok := m.session.Begin()
	if !ok {
		return nil
	}
	if m.cfg.Logger != nil {
		m.cfg.Logger.Info("Searching sections", "gen", req.Gen, "offset", req.Offset, "query", req.Params.Encode())
	}

	ctx, source := m.ctx, m.cfg.Source
	search := func() tea.Msg {
		page, err := source.Sections(ctx, req.Params)
		return searchMsg{gen: req.Gen, page: page, err: err}
	}
	return tea.Batch(search, m.spinner.Tick)
}

// requestRatings starts lookups for every idle instructor on the page.
// Cached identities settle at once without a command.
func (m *BrowserModel) requestRatings() tea.Cmd {
	if m.cfg.Resolver == nil {
		return nil
	}

	var cmds []tea.Cmd
	for _, s := range m.session.Result().Items {
		for _, in := range s.Instructors {
			key := ratings.IdentityKey(in)
			if m.tracker.Badge(key).State != ratings.StateIdle {
				continue
			}
			if e, ok := m.cfg.Resolver.Cached(in); ok {
				_ = m.tracker.Hit(key, e)
				continue
			}
			if err := m.tracker.Load(key); err != nil {
				continue
			}
			cmds = append(cmds, m.resolve(key, in))
		}
	}
	return tea.Batch(cmds...)
}

func (m *BrowserModel) resolve(key string, ref models.InstructorRef) tea.Cmd {
	ctx, resolver := m.ctx, m.cfg.Resolver
	return func() tea.Msg {
		profile, err := resolver.Resolve(ctx, ref)
		return ratingMsg{key: key, profile: profile, err: err}
	}
}

// badgeFor returns the rating badge of an instructor on this page
func (m *BrowserModel) badgeFor(ref models.InstructorRef) ratings.Badge {
	return m.tracker.Badge(ratings.IdentityKey(ref))
}

// Update implements tea.Model
func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.ExpireStatus(time.Now())

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if m.Resize(msg.Width, msg.Height) {
			m.table.SetColumns(sectionColumns(m.Layout))
			m.table.SetHeight(m.Layout.TableHeight)
			m.input.Width = quickInputWidth(m.Layout)
			m.help.Width = m.Layout.InnerWidth
		}
		return m, nil

	case searchMsg:
		if !m.session.Apply(msg.gen, msg.page, msg.err) {
			if m.cfg.Logger != nil {
				m.cfg.Logger.Debug("Dropped stale search response", "gen", msg.gen)
			}
			return m, nil
		}
		res := m.session.Result()
		if res.Err != nil {
			if m.cfg.Logger != nil {
				m.cfg.Logger.Error("Search failed", "error", res.Err)
			}
		} else if m.cfg.Logger != nil {
			m.cfg.Logger.Info("Search applied", "gen", msg.gen, "items", len(res.Items),
				"groups", len(res.Groups), "mode", res.Pagination.Mode)
		}
		m.rebuildTable(true)
		return m, m.requestRatings()

	case ratingMsg:
		if err := m.tracker.Settle(msg.key, msg.profile, msg.err); err != nil {
			if m.cfg.Logger != nil {
				m.cfg.Logger.Warn("Ignored rating result", "key", msg.key, "error", err)
			}
			return m, nil
		}
		m.rebuildTable(false)
		return m, nil

	case spinner.TickMsg:
		if !m.session.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch m.mode {
		case modeSearch, modeJump:
			return m.handleInput(msg)
		case modeDetail:
			return m.handleDetail(msg)
		}
		return m.handleTableKeys(msg)
	}

	return m, nil
}

func (m BrowserModel) quit() (tea.Model, tea.Cmd) {
	m.result.Filters = m.session.Filters()
	m.result.Page = m.session.Offset()/m.session.Limit() + 1
	m.session.Dispose()
	m.Quitting = true
	return m, tea.Quit
}

func (m BrowserModel) handleTableKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Next):
		if m.session.NextPage() {
			return m, m.fetch()
		}
		return m, nil

	case key.Matches(msg, m.keys.Prev):
		if m.session.PrevPage() {
			return m, m.fetch()
		}
		return m, nil

	case key.Matches(msg, m.keys.First):
		if m.session.Offset() != 0 {
			m.session.GotoPage(1)
			return m, m.fetch()
		}
		return m, nil

	case key.Matches(msg, m.keys.Jump):
		m.openInput(modeJump, "Go to page: ", "")
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Search):
		m.openInput(modeSearch, "Search: ", m.session.Filters().Search)
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Filters):
		m.result.EditFilters = true
		return m.quit()

	case key.Matches(msg, m.keys.Clear):
		if m.session.SetFilters(models.FilterState{}) {
			return m, m.fetch()
		}
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		return m, m.fetch()

	case key.Matches(msg, m.keys.Detail):
		if ref, ok := m.selectedRow(); ok {
			m.detail = ref
			m.mode = modeDetail
		}
		return m, nil

	case key.Matches(msg, m.keys.Export):
		res := m.session.Result()
		if len(res.Items) == 0 {
			m.SetStatus("Nothing to export", statusDuration)
			return m, nil
		}
		path, err := ExportPageToMarkdown(m.cfg.ExportDir, m.session.Filters(), res, m.badgeFor)
		if err != nil {
			m.SetFailure(fmt.Sprintf("Export failed: %v", err), statusDuration)
		} else {
			m.SetStatus("Exported to "+path, statusDuration)
		}
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *BrowserModel) openInput(mode browserMode, prompt, value string) {
	m.mode = mode
	m.input.Prompt = prompt
	m.input.Placeholder = ""
	if mode == modeJump {
		m.input.Placeholder = "page number"
	}
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
}

func (m BrowserModel) handleInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeTable
		m.input.Blur()
		return m, nil

	case tea.KeyEnter:
		mode := m.mode
		value := strings.TrimSpace(sanitizeInput(m.input.Value()))
		m.mode = modeTable
		m.input.Blur()

		if mode == modeSearch {
			f := m.session.Filters()
			f.Search = value
			if m.session.SetFilters(f) {
				return m, m.fetch()
			}
			return m, nil
		}

		page, err := strconv.Atoi(value)
		if err != nil || page < 1 {
			m.SetFailure(fmt.Sprintf("Not a page number: %q", value), statusDuration)
			return m, nil
		}
		if p := m.session.Result().Pagination; p.Mode == catalog.ModeCounted && page > p.PageCount {
			page = p.PageCount
		}
		m.session.GotoPage(page)
		return m, m.fetch()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m BrowserModel) handleDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m.quit()
	case "esc", "enter", "backspace":
		m.mode = modeTable
	}
	return m, nil
}

// selectedRow resolves the table cursor; a course header selects its first section
func (m *BrowserModel) selectedRow() (rowRef, bool) {
	c := m.table.Cursor()
	if c < 0 || c >= len(m.rows) {
		return rowRef{}, false
	}
	ref := m.rows[c]
	if ref.section < 0 {
		ref.section = 0
	}
	return ref, true
}

// rebuildTable lays out group header rows followed by their section rows
func (m *BrowserModel) rebuildTable(resetCursor bool) {
	res := m.session.Result()
	n := len(res.Items) + len(res.Groups)
	m.rows = make([]rowRef, 0, n)
	rows := make([]table.Row, 0, n)

	for gi, g := range res.Groups {
		m.rows = append(m.rows, rowRef{group: gi, section: -1})
		count := fmt.Sprintf("%d sections", len(g.Sections))
		if len(g.Sections) == 1 {
			count = "1 section"
		}
		rows = append(rows, table.Row{
			g.Key.Subject + " " + g.Key.CourseNumber,
			g.Key.Title,
			count,
			"", "", "",
		})

		for si, s := range g.Sections {
			m.rows = append(m.rows, rowRef{group: gi, section: si})
			rows = append(rows, table.Row{
				"  " + s.CRN,
				sectionLabel(s),
				meetingsText(s.Meetings),
				instructorNames(s.Instructors),
				seatsText(s),
				m.ratingCell(s.Instructors),
			})
		}
	}

	m.table.SetRows(rows)
	if resetCursor {
		m.table.GotoTop()
	}
}

// ratingCell shows the lead instructor's badge, falling back to the preview
// stats the section record carries when no lookup has started
func (m *BrowserModel) ratingCell(refs []models.InstructorRef) string {
	if len(refs) == 0 {
		return "-"
	}
	lead := refs[0]
	b := m.badgeFor(lead)
	if b.State == ratings.StateIdle {
		if lead.AvgRating != nil {
			b = ratings.Badge{State: ratings.StateLoaded, Profile: &models.RatingProfile{
				AvgRating:  lead.AvgRating,
				NumRatings: lead.NumRatings,
				Difficulty: lead.Difficulty,
			}}
		} else {
			return "-"
		}
	}
	return b.Short()
}

func (m *BrowserModel) isGroupRow(row int) bool {
	return row >= 0 && row < len(m.rows) && m.rows[row].section < 0
}

// View implements tea.Model
func (m BrowserModel) View() string {
	if m.Quitting {
		return ""
	}
	if m.mode == modeDetail {
		return m.renderDetail()
	}

	res := m.session.Result()
	filters := describeFilters(m.session.Filters())
	if filters == "" {
		filters = "No filters"
	}

	info := res.Range.Text()
	if m.session.Loading() {
		info = m.spinner.View() + " Loading…"
	}

	b := NewPageView(m.Layout).
		Title("CatBase · Course Sections").
		Subtitle(filters).
		Divider().
		QueryInfo(info)

	switch {
	case res.Err != nil:
		b.Error(fmt.Errorf("search failed: %w", res.Err))
	case len(res.Items) == 0 && !m.session.Loading():
		b.Spacing(1).DimText("No sections match these filters.")
	default:
		b.Table(m.table, m.isGroupRow)
	}

	b.Spacing(1).CustomContent(renderPageControls(res.Pagination) + "\n")
	if m.mode == modeSearch || m.mode == modeJump {
		b.Spacing(1).CustomContent(m.input.View() + "\n")
	}

	return b.Status(m.status).
		Help(m.help.View(m.keys)).
		Build()
}

// renderPageControls draws "‹ Prev  1 … 4 [5] 6 … 20  Next ›". Without a
// trustworthy total only the current page is shown.
func renderPageControls(p catalog.Pagination) string {
	arrow := func(label string, enabled bool) string {
		if enabled {
			return ArrowStyle.Render(label)
		}
		return ArrowDisabledStyle.Render(label)
	}

	parts := []string{arrow("‹ Prev", p.HasPrev)}
	for _, item := range p.Pages {
		switch {
		case item.Ellipsis:
			parts = append(parts, RenderDim("…"))
		case item.Current:
			parts = append(parts, PageActiveStyle.Render(strconv.Itoa(item.Page)))
		default:
			parts = append(parts, PageInactiveStyle.Render(strconv.Itoa(item.Page)))
		}
	}
	parts = append(parts, arrow("Next ›", p.HasNext))

	line := strings.Join(parts, " ")
	if p.Mode == catalog.ModeFallback {
		line += "  " + RenderDim("(total unknown)")
	} else {
		line += "  " + RenderDim(fmt.Sprintf("of %d", p.PageCount))
	}
	return line
}

// RunBrowser runs the section browser until the user quits or asks for the filter form
func RunBrowser(ctx context.Context, cfg BrowserConfig) (BrowserResult, error) {
	m := NewBrowserModel(ctx, cfg)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	finalModel, err := p.Run()
	if err != nil {
		return BrowserResult{}, fmt.Errorf("browser program error: %w", err)
	}
	return finalModel.(BrowserModel).Result(), nil
}

package ui

import "time"

// statusLine is a transient message shown under the page content
type statusLine struct {
	text    string
	failure bool
	expires time.Time // zero = until replaced
}

func (s statusLine) render() string {
	switch {
	case s.text == "":
		return ""
	case s.failure:
		return ErrorStyle.Render(s.text)
	}
	return StatusMsgStyle.Render(s.text)
}

// PageState is the screen state the browser views share
type PageState struct {
	Layout   Layout
	Quitting bool
	status   statusLine
}

// NewPageState creates screen state for a layout
func NewPageState(layout Layout) PageState {
	return PageState{Layout: layout}
}

// SetStatus shows msg for d; d == 0 keeps it until the next status
func (p *PageState) SetStatus(msg string, d time.Duration) {
	p.setStatus(msg, false, d)
}

// SetFailure is SetStatus rendered in the error style
func (p *PageState) SetFailure(msg string, d time.Duration) {
	p.setStatus(msg, true, d)
}

func (p *PageState) setStatus(msg string, failure bool, d time.Duration) {
	p.status = statusLine{text: msg, failure: failure}
	if d > 0 {
		p.status.expires = time.Now().Add(d)
	}
}

// StatusText returns the visible status message
func (p *PageState) StatusText() string {
	return p.status.text
}

// ExpireStatus drops the status once its deadline is before now
func (p *PageState) ExpireStatus(now time.Time) {
	if !p.status.expires.IsZero() && now.After(p.status.expires) {
		p.status = statusLine{}
	}
}

// Resize recomputes the layout for a terminal size and reports whether it changed
func (p *PageState) Resize(width, height int) bool {
	next := NewLayout(width, height)
	if next == p.Layout {
		return false
	}
	p.Layout = next
	return true
}

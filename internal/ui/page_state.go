package ui

import (
	"time"
)

// PageState is the chrome shared by the search form and results screens:
// the current layout, a transient status line under the content, and the
// quit flag RunApp inspects after the program exits.
type PageState struct {
	Layout   Layout
	Quitting bool

	status       string
	statusErr    bool
	statusExpiry time.Time
	now          func() time.Time
}

// NewPageState returns chrome for layout with an empty status line
func NewPageState(layout Layout) PageState {
	return PageState{Layout: layout, now: time.Now}
}

func (p *PageState) clock() time.Time {
	if p.now == nil {
		return time.Now()
	}
	return p.now()
}

// Notify shows msg on the status line for ttl. A ttl <= 0 keeps it until
// the next message replaces it.
func (p *PageState) Notify(msg string, ttl time.Duration) {
	p.setStatus(msg, false, ttl)
}

// Alert is Notify for failures, such as a photo that could not be opened
func (p *PageState) Alert(msg string, ttl time.Duration) {
	p.setStatus(msg, true, ttl)
}

func (p *PageState) setStatus(msg string, isErr bool, ttl time.Duration) {
	p.status = msg
	p.statusErr = isErr
	p.statusExpiry = time.Time{}
	if ttl > 0 {
		p.statusExpiry = p.clock().Add(ttl)
	}
}

// ExpireStatus drops a timed status line once its ttl has passed.
// The shell calls it on every key press.
func (p *PageState) ExpireStatus() {
	if !p.statusExpiry.IsZero() && p.clock().After(p.statusExpiry) {
		p.status = ""
		p.statusErr = false
		p.statusExpiry = time.Time{}
	}
}

// StatusLine renders the status line, or "" when there is none
func (p *PageState) StatusLine() string {
	if p.status == "" {
		return ""
	}
	if p.statusErr {
		return ErrorStyle.Render(p.status)
	}
	return ProgressStyle.Render(p.status)
}

// Resize applies a terminal size and reports whether the layout changed,
// in which case the results table must recompute its columns.
func (p *PageState) Resize(width, height int) bool {
	next := NewLayout(width, height)
	if next == p.Layout {
		return false
	}
	p.Layout = next
	return true
}

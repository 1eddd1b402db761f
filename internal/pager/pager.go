// Package pager drives paged photo searches against a source that reports no
// total count. After each full page it probes the following page to decide
// whether "next" can be offered.
//
// Pager is a plain state holder: methods return the Requests the caller must
// execute and Resolve folds the Responses back in. Every request carries the
// generation it was issued under; responses from an older generation are
// dropped, so a slow response can never overwrite fresher state.
package pager

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/thesavant42/marsphotos/internal/models"
)

// PageSize is the upstream maximum number of photos per page.
const PageSize = 25

// Kind distinguishes the displayed fetch from the next-page probe.
type Kind int

const (
	// Primary fetches the page that is displayed.
	Primary Kind = iota
	// Probe fetches page+1 only to decide whether it is non-empty.
	Probe
)

func (k Kind) String() string {
	if k == Probe {
		return "probe"
	}
	return "primary"
}

// Request is one fetch the caller must perform.
type Request struct {
	Generation uint64
	Kind       Kind
	Filter     models.SearchFilter
	Page       int
}

// Response is the outcome of a Request.
type Response struct {
	Request Request
	Photos  []models.PhotoRecord
	Err     error
}

// Pager holds the page window for one search form.
type Pager struct {
	Filter       models.SearchFilter
	Page         int
	Photos       []models.PhotoRecord
	Loading      bool
	CheckingNext bool
	HasNext      bool
	Err          error

	pageSize   int
	generation uint64
	closed     bool
	logger     *log.Logger
}

// New returns an idle pager. A nil logger disables probe failure logging.
func New(logger *log.Logger) *Pager {
	return &Pager{Page: 1, pageSize: PageSize, logger: logger}
}

// Generation returns the current generation token.
func (p *Pager) Generation() uint64 {
	return p.generation
}

// SetFilter commits a new filter, resets to page 1 and returns the primary
// request. An invalid filter sets Err and returns nothing.
func (p *Pager) SetFilter(f models.SearchFilter) []Request {
	p.Filter = f.Normalized()
	p.Page = 1
	return p.load()
}

// Next advances one page when CanNext allows it.
func (p *Pager) Next() []Request {
	if !p.CanNext() {
		return nil
	}
	p.Page++
	return p.load()
}

// Prev goes back one page when CanPrev allows it.
func (p *Pager) Prev() []Request {
	if !p.CanPrev() {
		return nil
	}
	p.Page--
	return p.load()
}

// Retry refetches the current page.
func (p *Pager) Retry() []Request {
	if p.Loading {
		return nil
	}
	return p.load()
}

// Close invalidates everything in flight. Later calls to Resolve are no-ops.
func (p *Pager) Close() {
	p.generation++
	p.closed = true
	p.Loading = false
	p.CheckingNext = false
}

// CanPrev reports whether the previous-page control is enabled.
func (p *Pager) CanPrev() bool {
	return p.Page > 1 && !p.Loading
}

// CanNext reports whether the next-page control is enabled.
func (p *Pager) CanNext() bool {
	return !p.Loading && !p.CheckingNext && p.HasNext
}

// Current reports whether resp belongs to the live generation.
func (p *Pager) Current(resp Response) bool {
	return !p.closed && resp.Request.Generation == p.generation
}

// Resolve applies a response and returns any follow-up request.
// Responses from a superseded generation are ignored.
func (p *Pager) Resolve(resp Response) []Request {
	if !p.Current(resp) {
		return nil
	}

	req := resp.Request
	switch req.Kind {
	case Primary:
		p.Loading = false
		if resp.Err != nil {
			p.Err = resp.Err
			p.Photos = nil
			p.HasNext = false
			return nil
		}
		p.Err = nil
		p.Photos = resp.Photos
		if len(resp.Photos) < p.pageSize {
			p.HasNext = false
			return nil
		}
		p.CheckingNext = true
		return []Request{{
			Generation: p.generation,
			Kind:       Probe,
			Filter:     p.Filter,
			Page:       req.Page + 1,
		}}

	case Probe:
		p.CheckingNext = false
		if resp.Err != nil {
			if p.logger != nil {
				p.logger.Warn("next page probe failed", "rover", req.Filter.Rover, "page", req.Page, "err", resp.Err)
			}
			p.HasNext = false
			return nil
		}
		p.HasNext = len(resp.Photos) > 0
	}
	return nil
}

// Pending returns the requests still awaited under the current generation,
// for a caller that dropped its in-flight work and must reissue it.
func (p *Pager) Pending() []Request {
	if p.closed {
		return nil
	}
	var reqs []Request
	if p.Loading {
		reqs = append(reqs, Request{Generation: p.generation, Kind: Primary, Filter: p.Filter, Page: p.Page})
	}
	if p.CheckingNext {
		reqs = append(reqs, Request{Generation: p.generation, Kind: Probe, Filter: p.Filter, Page: p.Page + 1})
	}
	return reqs
}

// load starts a new generation for the current filter and page.
func (p *Pager) load() []Request {
	p.generation++
	p.closed = false
	p.HasNext = false
	p.CheckingNext = false

	if p.Filter.Rover == "" {
		p.Photos = nil
		p.Err = nil
		p.Loading = false
		return nil
	}

	if err := p.Filter.Validate(); err != nil {
		p.Photos = nil
		p.Err = err
		p.Loading = false
		return nil
	}

	p.Err = nil
	p.Loading = true
	return []Request{{
		Generation: p.generation,
		Kind:       Primary,
		Filter:     p.Filter,
		Page:       p.Page,
	}}
}

// IsValidationError reports whether err came from filter validation rather
// than from a fetch.
func IsValidationError(err error) bool {
	return errors.Is(err, models.ErrRoverRequired) ||
		errors.Is(err, models.ErrUnknownRover) ||
		errors.Is(err, models.ErrDateRequired) ||
		errors.Is(err, models.ErrDateFormat)
}

// String summarises the window for logs.
func (p *Pager) String() string {
	return fmt.Sprintf("pager{rover=%s camera=%s date=%s page=%d photos=%d hasNext=%v gen=%d}",
		p.Filter.Rover, p.Filter.Camera, p.Filter.EarthDate, p.Page, len(p.Photos), p.HasNext, p.generation)
}

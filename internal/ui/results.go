package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/thesavant42/marsphotos/internal/models"
	"github.com/thesavant42/marsphotos/internal/pager"
)

// PhotosMsg carries the outcome of one pager request
type PhotosMsg struct {
	Response pager.Response
}

// fetchPhotos runs each request asynchronously against src
func fetchPhotos(ctx context.Context, src pager.Source, reqs []pager.Request) tea.Cmd {
	if len(reqs) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, len(reqs))
	for i, req := range reqs {
		cmds[i] = func() tea.Msg {
			return PhotosMsg{Response: pager.Execute(ctx, src, req)}
		}
	}
	return tea.Batch(cmds...)
}

// ResultsView renders the pager's current page as a table
type ResultsView struct {
	cfg    ViewConfig
	pager  *pager.Pager
	table  table.Model
	layout Layout
}

// NewResultsView creates an empty results view
func NewResultsView(cfg ViewConfig, logger *log.Logger) *ResultsView {
	layout := DefaultLayout()
	t := table.New(
		table.WithColumns(CalculateColumns(PhotoColumnSpecs(cfg), layout.TableWidth)),
		table.WithRows([]table.Row{}),
		table.WithFocused(true),
		table.WithHeight(layout.TableHeight),
	)
	ApplyTableStyles(&t)

	return &ResultsView{
		cfg:    cfg,
		pager:  pager.New(logger),
		table:  t,
		layout: layout,
	}
}

// Pager exposes the underlying pager
func (r *ResultsView) Pager() *pager.Pager {
	return r.pager
}

// Resize recomputes column widths for layout
func (r *ResultsView) Resize(layout Layout) {
	r.layout = layout
	r.table.SetHeight(layout.TableHeight)
	r.table.SetColumns(CalculateColumns(PhotoColumnSpecs(r.cfg), layout.TableWidth))
	r.refresh()
}

// refresh rebuilds table rows from the pager's photos
func (r *ResultsView) refresh() {
	r.table.SetRows(PhotoRows(r.cfg, r.table.Columns(), r.pager.Photos))
	if r.table.Cursor() >= len(r.pager.Photos) {
		r.table.GotoTop()
	}
}

// Apply folds a response into the pager and returns the follow-up requests
func (r *ResultsView) Apply(resp pager.Response) []pager.Request {
	if !r.pager.Current(resp) {
		return nil
	}
	reqs := r.pager.Resolve(resp)
	if resp.Request.Kind == pager.Primary {
		r.table.GotoTop()
	}
	r.refresh()
	return reqs
}

// Search commits filter and returns the primary request
func (r *ResultsView) Search(filter models.SearchFilter) []pager.Request {
	reqs := r.pager.SetFilter(filter)
	r.refresh()
	return reqs
}

// Update handles result-screen navigation keys and returns requests to run
func (r *ResultsView) Update(msg tea.KeyMsg) []pager.Request {
	var reqs []pager.Request
	switch msg.String() {
	case "n", "right":
		reqs = r.pager.Next()
	case "p", "left":
		reqs = r.pager.Prev()
	case "r":
		if r.pager.Err != nil && !pager.IsValidationError(r.pager.Err) {
			reqs = r.pager.Retry()
		}
	case "up", "k":
		r.table.MoveUp(1)
	case "down", "j":
		r.table.MoveDown(1)
	case "home", "g":
		r.table.GotoTop()
	case "end", "G":
		r.table.GotoBottom()
	}
	if reqs != nil {
		r.refresh()
	}
	return reqs
}

// Selected returns the photo under the cursor
func (r *ResultsView) Selected() (models.PhotoRecord, bool) {
	if r.pager.Loading {
		return models.PhotoRecord{}, false
	}
	i := r.table.Cursor()
	if i < 0 || i >= len(r.pager.Photos) {
		return models.PhotoRecord{}, false
	}
	return r.pager.Photos[i], true
}

// View renders the filter summary, pagination and the table or its state
func (r *ResultsView) View(spin string) string {
	msgs := r.cfg.Messages
	p := r.pager
	var b strings.Builder

	summary := fmt.Sprintf(" %s", p.Filter.Rover)
	if p.Filter.Camera != "" {
		summary += " / " + p.Filter.Camera
	}
	summary += "  |  " + p.Filter.EarthDate
	b.WriteString(AccentStyle.Render(summary))
	b.WriteString("\n")
	b.WriteString(r.pagination(spin))
	b.WriteString("\n\n")

	switch {
	case p.Loading:
		b.WriteString(spin)
		b.WriteString(" ")
		b.WriteString(HintStyle.Render(msgs.Loading))
	case p.Err != nil:
		b.WriteString(RenderError(fmt.Sprintf(" %s: %v", msgs.ErrorPrefix, p.Err)))
		if !pager.IsValidationError(p.Err) {
			b.WriteString("\n\n")
			b.WriteString(HintStyle.Render(" " + msgs.RetryHint))
		}
	case len(p.Photos) == 0:
		b.WriteString(RenderDim(" " + msgs.NoResults))
	default:
		b.WriteString(RenderTableWithSelection(r.table, r.layout, true))
	}
	return b.String()
}

// pagination renders "< Page N >" with arrows dimmed when disabled
func (r *ResultsView) pagination(spin string) string {
	p := r.pager
	prev := ArrowDisabledStyle.Render("◀")
	if p.CanPrev() {
		prev = ArrowStyle.Render("◀")
	}
	next := ArrowDisabledStyle.Render("▶")
	if p.CanNext() {
		next = ArrowStyle.Render("▶")
	}

	line := fmt.Sprintf(" %s %s %d %s", prev, r.cfg.Messages.Page, p.Page, next)
	if p.CheckingNext {
		line += "  " + spin + " " + RenderDim(r.cfg.Messages.CheckingNext)
	}
	return line
}

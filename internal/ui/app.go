package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/thesavant42/marsphotos/internal/api"
	"github.com/thesavant42/marsphotos/internal/models"
	"github.com/thesavant42/marsphotos/internal/pager"
)

// Source is what the shell needs from a photo client
type Source interface {
	pager.Source
	api.FeaturedSource
}

// History stores submitted searches. *db.DB implements it.
type History interface {
	RecordSearch(filter models.SearchFilter) error
	RecentSearches(limit int) ([]models.RecentSearch, error)
	LastSearch() (*models.SearchFilter, error)
}

type screen int

const (
	screenForm screen = iota
	screenResults
)

// statusDuration is how long transient status messages stay visible
const statusDuration = 5 * time.Second

// AppModel is the top-level TUI model: search form with the featured
// panel, and the paged results table.
type AppModel struct {
	PageState

	ctx     context.Context
	cfg     ViewConfig
	src     Source
	history History
	logger  *log.Logger

	form     *SearchForm
	results  *ResultsView
	featured *FeaturedPanel
	spinner  spinner.Model
	screen   screen
	selected *models.PhotoRecord
}

// NewAppModel creates the shell. history and logger may be nil.
func NewAppModel(ctx context.Context, src Source, history History, cfg ViewConfig, logger *log.Logger) AppModel {
	form := NewSearchForm(cfg, loadLast(history, logger), logger)
	form.SetRecent(loadRecent(history, cfg.RecentLimit, logger))

	return AppModel{
		PageState: NewPageState(DefaultLayout()),
		ctx:       ctx,
		cfg:       cfg,
		src:       src,
		history:   history,
		logger:    logger,
		form:      form,
		results:   NewResultsView(cfg, logger),
		featured:  NewFeaturedPanel(cfg),
		spinner:   NewAppSpinner(),
	}
}

// loadLast returns the filter to prefill the form with, if any
func loadLast(history History, logger *log.Logger) *models.SearchFilter {
	if history == nil {
		return nil
	}
	last, err := history.LastSearch()
	if err != nil {
		if logger != nil {
			logger.Warn("failed to load last search", "error", err)
		}
		return nil
	}
	return last
}

func loadRecent(history History, limit int, logger *log.Logger) []models.RecentSearch {
	if history == nil {
		return nil
	}
	recent, err := history.RecentSearches(limit)
	if err != nil {
		if logger != nil {
			logger.Warn("failed to load search history", "error", err)
		}
		return nil
	}
	return recent
}

// Init implements tea.Model
func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.WindowSize(),
		textinput.Blink,
		m.spinner.Tick,
		fetchPhotos(m.ctx, m.src, m.results.Pager().Pending()),
	}
	if m.screen == screenForm {
		cmds = append(cmds, m.form.Focus())
	}
	if m.featured.Loading() {
		cmds = append(cmds, fetchFeatured(m.ctx, m.src))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if m.Resize(msg.Width, msg.Height) {
			m.results.Resize(m.Layout)
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case PhotosMsg:
		return m, m.applyPhotos(msg.Response)

	case FeaturedMsg:
		if msg.Err != nil && m.logger != nil {
			m.logger.Warn("featured photos failed", "error", msg.Err)
		}
		m.featured.Set(msg)
		return m, nil

	case tea.KeyMsg:
		m.ExpireStatus()
		if msg.String() == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		if m.screen == screenForm {
			return m.updateForm(msg)
		}
		return m.updateResults(msg)
	}

	return m, nil
}

func (m AppModel) applyPhotos(resp pager.Response) tea.Cmd {
	req := resp.Request
	if !m.results.Pager().Current(resp) {
		if m.logger != nil {
			m.logger.Debug("dropping stale response", "kind", req.Kind, "page", req.Page, "generation", req.Generation, "current", m.results.Pager().Generation())
		}
		return nil
	}
	if resp.Err != nil && req.Kind == pager.Primary && m.logger != nil {
		m.logger.Error("photo fetch failed", "rover", req.Filter.Rover, "page", req.Page, "error", resp.Err)
	}
	return fetchPhotos(m.ctx, m.src, m.results.Apply(resp))
}

func (m AppModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" && !m.form.Captures(msg) {
		m.Quitting = true
		return m, tea.Quit
	}

	submit, cmd := m.form.Update(msg)
	if !submit {
		return m, cmd
	}

	filter, ok := m.form.Submit()
	if !ok {
		return m, cmd
	}
	m.record(filter)
	m.form.blur()
	m.screen = screenResults
	return m, fetchPhotos(m.ctx, m.src, m.results.Search(filter))
}

// record stores filter in the history and refreshes the recent list
func (m AppModel) record(filter models.SearchFilter) {
	if m.history == nil {
		return
	}
	if err := m.history.RecordSearch(filter); err != nil {
		if m.logger != nil {
			m.logger.Warn("failed to record search", "error", err)
		}
		return
	}
	m.form.SetRecent(loadRecent(m.history, m.cfg.RecentLimit, m.logger))
}

func (m AppModel) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.Quitting = true
		return m, tea.Quit

	case "/":
		m.screen = screenForm
		return m, m.form.Focus()

	case "enter":
		if photo, ok := m.results.Selected(); ok {
			m.selected = &photo
			m.Quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	return m, fetchPhotos(m.ctx, m.src, m.results.Update(msg))
}

// View implements tea.Model
func (m AppModel) View() string {
	if m.Quitting {
		return ""
	}
	msgs := m.cfg.Messages
	inner := m.Layout.InnerWidth

	var b strings.Builder
	b.WriteString(ViewHeader(msgs.Title, inner))

	help := msgs.FormHelp
	if m.screen == screenForm {
		b.WriteString(m.form.View(m.Layout))
		b.WriteString("\n\n")
		b.WriteString(FullWidthDivider(inner))
		b.WriteString("\n")
		b.WriteString(m.featured.View(m.spinner.View(), inner))
	} else {
		help = msgs.ResultsHelp
		b.WriteString(m.results.View(m.spinner.View()))
	}

	if status := m.StatusLine(); status != "" {
		b.WriteString("\n\n")
		b.WriteString(status)
	}

	return BuildTwoBoxView(b.String(), help, m.Layout)
}

// Selected returns the photo the user chose to open, if any
func (m AppModel) Selected() (models.PhotoRecord, bool) {
	if m.selected == nil {
		return models.PhotoRecord{}, false
	}
	return *m.selected, true
}

// resume prepares the model to run again after leaving for a prompt
func (m AppModel) resume() AppModel {
	m.selected = nil
	m.Quitting = false
	return m
}

// RunApp runs the shell until the user quits. Choosing a photo leaves the
// alt screen for a confirm prompt, then returns to the same results.
func RunApp(ctx context.Context, src Source, history History, cfg ViewConfig, logger *log.Logger) error {
	model := NewAppModel(ctx, src, history, cfg, logger)

	for {
		p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
		finalModel, err := p.Run()
		if err != nil {
			if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("tui error: %w", err)
		}

		m, ok := finalModel.(AppModel)
		if !ok {
			return nil
		}

		photo, ok := m.Selected()
		if !ok {
			m.results.Pager().Close()
			return nil
		}

		open, err := ConfirmOpenPhoto(photo, cfg.Messages)
		if err != nil && logger != nil {
			logger.Warn("open prompt failed", "error", err)
		}
		if open {
			if err := OpenPhoto(photo, cfg.Messages); err != nil {
				if logger != nil {
					logger.Warn("failed to open photo", "id", photo.ID, "error", err)
				}
				if errors.Is(err, ErrUntrustedURL) {
					m.Alert(cfg.Messages.Untrusted, statusDuration)
				} else {
					m.Alert(fmt.Sprintf("%s: %v", cfg.Messages.ErrorPrefix, err), statusDuration)
				}
			} else {
				m.Notify(fmt.Sprintf(cfg.Messages.Opened, photo.ID), statusDuration)
			}
		}

		model = m.resume()
	}
}

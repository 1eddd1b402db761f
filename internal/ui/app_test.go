package ui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/thesavant42/marsphotos/internal/models"
	"github.com/thesavant42/marsphotos/internal/pager"
)

// fakeSource serves total photos per rover and can fail the featured call.
type fakeSource struct {
	total       map[string]int
	featuredErr error
}

func (f *fakeSource) FetchPage(_ context.Context, filter models.SearchFilter, page int) ([]models.PhotoRecord, error) {
	start := (page - 1) * pager.PageSize
	n := min(max(f.total[filter.Rover]-start, 0), pager.PageSize)
	photos := make([]models.PhotoRecord, n)
	for i := range photos {
		photos[i] = models.PhotoRecord{
			ID:        int64(start + i + 1),
			ImgSrc:    "http://mars.jpl.nasa.gov/msl-raw-images/photo.jpg",
			EarthDate: filter.EarthDate,
			Camera:    models.Camera{Name: "FHAZ", FullName: "Front Hazard Avoidance Camera"},
			Rover:     models.RoverInfo{Name: filter.Rover},
		}
	}
	return photos, nil
}

func (f *fakeSource) FetchFeatured(ctx context.Context) ([]models.PhotoRecord, error) {
	if f.featuredErr != nil {
		return nil, f.featuredErr
	}
	return f.FetchPage(ctx, models.SearchFilter{Rover: "Curiosity"}, 1)
}

type fakeHistory struct {
	searches []models.RecentSearch
	readErr  error
}

func (h *fakeHistory) RecordSearch(f models.SearchFilter) error {
	h.searches = append([]models.RecentSearch{{ID: int64(len(h.searches) + 1), Filter: f}}, h.searches...)
	return nil
}

func (h *fakeHistory) RecentSearches(limit int) ([]models.RecentSearch, error) {
	if h.readErr != nil {
		return nil, h.readErr
	}
	if limit > len(h.searches) {
		limit = len(h.searches)
	}
	return h.searches[:limit], nil
}

func (h *fakeHistory) LastSearch() (*models.SearchFilter, error) {
	if h.readErr != nil {
		return nil, h.readErr
	}
	if len(h.searches) == 0 {
		return nil, nil
	}
	f := h.searches[0].Filter
	return &f, nil
}

func update(t *testing.T, m AppModel, msg tea.Msg) AppModel {
	t.Helper()
	next, _ := m.Update(msg)
	am, ok := next.(AppModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return am
}

// settle executes the pager's pending requests until none remain
func settle(t *testing.T, m AppModel, src pager.Source) AppModel {
	t.Helper()
	for i := 0; i < 10; i++ {
		reqs := m.results.Pager().Pending()
		if len(reqs) == 0 {
			return m
		}
		for _, req := range reqs {
			m = update(t, m, PhotosMsg{Response: pager.Execute(context.Background(), src, req)})
		}
	}
	t.Fatal("pager never settled")
	return m
}

func TestAppSearchFlow(t *testing.T) {
	src := &fakeSource{total: map[string]int{"Curiosity": 40}}
	history := &fakeHistory{}
	m := NewAppModel(context.Background(), src, history, ConfigForLocale(LocaleEnglish), nil)

	m.form.Fill(models.SearchFilter{Rover: "Curiosity", EarthDate: "2015-05-30"})
	m = update(t, m, key(tea.KeyCtrlS))

	if m.screen != screenResults {
		t.Fatal("valid submit should switch to results")
	}
	if len(history.searches) != 1 {
		t.Errorf("history = %+v, want one search", history.searches)
	}
	if !m.results.Pager().Loading {
		t.Error("pager should be loading page 1")
	}

	m = settle(t, m, src)
	p := m.results.Pager()
	if len(p.Photos) != pager.PageSize || !p.HasNext {
		t.Fatalf("page 1: photos=%d hasNext=%v", len(p.Photos), p.HasNext)
	}

	m = update(t, m, keyRunes("n"))
	m = settle(t, m, src)
	if p.Page != 2 || len(p.Photos) != 15 || p.HasNext {
		t.Errorf("page 2: page=%d photos=%d hasNext=%v", p.Page, len(p.Photos), p.HasNext)
	}

	m = update(t, m, key(tea.KeyDown))
	m = update(t, m, key(tea.KeyEnter))
	photo, ok := m.Selected()
	if !ok || photo.ID != 27 {
		t.Errorf("Selected() = %d, %v, want photo 27", photo.ID, ok)
	}
	if !m.Quitting || m.View() != "" {
		t.Error("selecting a photo should quit the program for the prompt")
	}

	m = m.resume()
	if _, ok := m.Selected(); ok || m.Quitting {
		t.Error("resume should clear the selection")
	}
}

func TestAppInvalidSubmitStaysOnForm(t *testing.T) {
	src := &fakeSource{}
	m := NewAppModel(context.Background(), src, nil, ConfigForLocale(LocaleEnglish), nil)

	m = update(t, m, key(tea.KeyCtrlS))

	if m.screen != screenForm {
		t.Fatal("invalid submit must not leave the form")
	}
	if roverErr, _ := m.form.Errors(); roverErr == "" {
		t.Error("expected a rover error")
	}
	if m.results.Pager().Loading {
		t.Error("no fetch should start")
	}
}

func TestAppDropsStaleResponses(t *testing.T) {
	src := &fakeSource{total: map[string]int{"Curiosity": 5, "Spirit": 3}}
	m := NewAppModel(context.Background(), src, nil, ConfigForLocale(LocaleEnglish), nil)

	m.form.Fill(models.SearchFilter{Rover: "Curiosity", EarthDate: "2015-05-30"})
	m = update(t, m, key(tea.KeyCtrlS))
	stale := m.results.Pager().Pending()

	m = update(t, m, keyRunes("/"))
	m.form.Fill(models.SearchFilter{Rover: "Spirit", EarthDate: "2004-01-10"})
	m = update(t, m, key(tea.KeyCtrlS))

	m = update(t, m, PhotosMsg{Response: pager.Execute(context.Background(), src, stale[0])})
	if m.results.Pager().Photos != nil {
		t.Fatal("stale Curiosity response must not be displayed")
	}

	m = settle(t, m, src)
	if got := m.results.Pager().Photos; len(got) != 3 || got[0].Rover.Name != "Spirit" {
		t.Errorf("photos = %+v", got)
	}
}

func TestAppPrefillsLastSearch(t *testing.T) {
	history := &fakeHistory{}
	history.RecordSearch(models.SearchFilter{Rover: "Opportunity", Camera: "PANCAM", EarthDate: "2010-03-01"})

	m := NewAppModel(context.Background(), &fakeSource{}, history, ConfigForLocale(LocaleEnglish), nil)
	if got := m.form.Filter(); got.Rover != "Opportunity" || got.Camera != "PANCAM" {
		t.Errorf("form = %+v, want last search", got)
	}
}

func TestAppHistoryReadErrorLeavesFormEmpty(t *testing.T) {
	history := &fakeHistory{readErr: errors.New("database is locked")}
	history.searches = []models.RecentSearch{{ID: 1, Filter: models.SearchFilter{Rover: "Spirit", EarthDate: "2004-01-10"}}}

	m := NewAppModel(context.Background(), &fakeSource{}, history, ConfigForLocale(LocaleEnglish), nil)
	if got := m.form.Filter(); got.Rover != "" || got.EarthDate != "" {
		t.Errorf("form = %+v, want empty on history error", got)
	}
}

func TestAppFeaturedAndView(t *testing.T) {
	tests := []struct {
		name string
		msg  FeaturedMsg
		want string
	}{
		{"photos", FeaturedMsg{Photos: []models.PhotoRecord{{ID: 102693, Camera: models.Camera{Name: "FHAZ"}}}}, "#102693"},
		{"error", FeaturedMsg{Err: errors.New("boom")}, "boom"},
		{"empty", FeaturedMsg{}, englishMessages.FeaturedEmpty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewAppModel(context.Background(), &fakeSource{}, nil, ConfigForLocale(LocaleEnglish), nil)
			if !m.featured.Loading() {
				t.Fatal("featured panel should start loading")
			}
			m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
			m = update(t, m, tt.msg)

			view := m.View()
			if !strings.Contains(view, englishMessages.Title) || !strings.Contains(view, tt.want) {
				t.Errorf("view missing %q:\n%s", tt.want, view)
			}
		})
	}
}

func TestFetchFeaturedCmd(t *testing.T) {
	src := &fakeSource{featuredErr: errors.New("upstream down")}
	msg := fetchFeatured(context.Background(), src)()

	fm, ok := msg.(FeaturedMsg)
	if !ok || fm.Err == nil {
		t.Errorf("fetchFeatured() = %#v", msg)
	}
}

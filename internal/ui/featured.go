package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/thesavant42/marsphotos/internal/api"
	"github.com/thesavant42/marsphotos/internal/models"
	"github.com/thesavant42/marsphotos/internal/pager"
)

// FeaturedMsg is sent when the featured photos are ready
type FeaturedMsg struct {
	Photos []models.PhotoRecord
	Err    error
}

// fetchFeatured loads the featured photos asynchronously
func fetchFeatured(ctx context.Context, src api.FeaturedSource) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, pager.DefaultTimeout)
		defer cancel()
		photos, err := src.FetchFeatured(ctx)
		return FeaturedMsg{Photos: photos, Err: err}
	}
}

// FeaturedPanel shows the start-screen photos
type FeaturedPanel struct {
	cfg     ViewConfig
	photos  []models.PhotoRecord
	err     error
	loading bool
}

// NewFeaturedPanel returns a panel waiting for its photos
func NewFeaturedPanel(cfg ViewConfig) *FeaturedPanel {
	return &FeaturedPanel{cfg: cfg, loading: true}
}

// Set stores the fetch outcome
func (f *FeaturedPanel) Set(msg FeaturedMsg) {
	f.loading = false
	f.photos = msg.Photos
	f.err = msg.Err
}

// Loading reports whether the fetch is still pending
func (f *FeaturedPanel) Loading() bool {
	return f.loading
}

// View renders up to FeaturedLimit photos
func (f *FeaturedPanel) View(spin string, width int) string {
	msgs := f.cfg.Messages
	var b strings.Builder
	b.WriteString(RenderAccent(msgs.Featured))
	if !f.loading && f.err == nil {
		b.WriteString(RenderDim(fmt.Sprintf("  (%d)", len(f.photos))))
	}
	b.WriteString("\n")

	switch {
	case f.loading:
		b.WriteString(spin + " " + HintStyle.Render(msgs.FeaturedLoading))
	case f.err != nil:
		b.WriteString(RenderError(fmt.Sprintf("%s: %v", msgs.ErrorPrefix, f.err)))
	case len(f.photos) == 0:
		b.WriteString(RenderDim(msgs.FeaturedEmpty))
	default:
		for i, p := range f.photos {
			if i >= f.cfg.FeaturedLimit {
				b.WriteString(RenderDim("  ..."))
				break
			}
			line := fmt.Sprintf("  #%-8d %-12s %s", p.ID, p.Camera.Name, p.Camera.FullName)
			b.WriteString(RenderNormal(Truncate(line, width)))
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

package api

import (
	"context"
	"strings"

	"github.com/thesavant42/marsphotos/internal/models"
)

// PhotoSource fetches one page of photos for a committed filter.
// Camera filtering is applied by the implementation.
type PhotoSource interface {
	FetchPage(ctx context.Context, filter models.SearchFilter, page int) ([]models.PhotoRecord, error)
}

// FeaturedSource fetches the photos shown before any search.
type FeaturedSource interface {
	FetchFeatured(ctx context.Context) ([]models.PhotoRecord, error)
}

// PhotoFetcher performs a raw upstream query without local filtering.
type PhotoFetcher interface {
	FetchPhotos(ctx context.Context, q PhotoQuery) ([]models.PhotoRecord, error)
}

// Ensure clients implement the interfaces at compile time.
var (
	_ PhotoSource    = (*NASAClient)(nil)
	_ PhotoSource    = (*ProxyClient)(nil)
	_ FeaturedSource = (*NASAClient)(nil)
	_ FeaturedSource = (*ProxyClient)(nil)
	_ PhotoFetcher   = (*NASAClient)(nil)
	_ PhotoFetcher   = (*BreakerFetcher)(nil)
)

// PhotoQuery is a raw upstream query. Empty fields are omitted.
type PhotoQuery struct {
	Rover     string
	Camera    string
	EarthDate string
	Sol       string
	Page      int
}

// FilterByCameraPrefix keeps photos whose camera name starts with camera,
// ignoring case. An empty camera keeps everything.
func FilterByCameraPrefix(photos []models.PhotoRecord, camera string) []models.PhotoRecord {
	prefix := strings.ToLower(strings.TrimSpace(camera))
	if prefix == "" {
		return photos
	}
	out := make([]models.PhotoRecord, 0, len(photos))
	for _, p := range photos {
		if strings.HasPrefix(strings.ToLower(p.Camera.Name), prefix) {
			out = append(out, p)
		}
	}
	return out
}

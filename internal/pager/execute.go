package pager

import (
	"context"
	"time"

	"github.com/thesavant42/marsphotos/internal/models"
)

// DefaultTimeout bounds a single fetch issued through Execute.
const DefaultTimeout = 30 * time.Second

// Source fetches one page of photos for a filter.
type Source interface {
	FetchPage(ctx context.Context, filter models.SearchFilter, page int) ([]models.PhotoRecord, error)
}

// Execute performs req against src and wraps the outcome as a Response.
// The request is bounded by DefaultTimeout in addition to ctx.
func Execute(ctx context.Context, src Source, req Request) Response {
	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	photos, err := src.FetchPage(ctx, req.Filter, req.Page)
	return Response{Request: req, Photos: photos, Err: err}
}

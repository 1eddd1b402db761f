package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/thejerf/suture/v4"
	"github.com/thejerf/sutureslog"
)

// HTTPServer is the subset of *http.Server the service needs
type HTTPServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

// HTTPService runs an HTTP server as a suture service
type HTTPService struct {
	server          HTTPServer
	shutdownTimeout time.Duration
}

// NewHTTPService wraps server; shutdownTimeout bounds graceful shutdown
func NewHTTPService(server HTTPServer, shutdownTimeout time.Duration) *HTTPService {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	return &HTTPService{server: server, shutdownTimeout: shutdownTimeout}
}

// Serve blocks until ctx is cancelled or the server fails
func (s *HTTPService) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil

	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown failed: %w", err)
		}
		<-errCh
		return ctx.Err()
	}
}

func (s *HTTPService) String() string {
	return "http-server"
}

// ExpiringCache is a cache that can drop its expired entries in bulk
type ExpiringCache interface {
	CleanupExpired() int
	Len() int
}

// CacheJanitor periodically removes expired cache entries so memory is
// reclaimed even for keys that are never read again.
type CacheJanitor struct {
	cache    ExpiringCache
	interval time.Duration
	metrics  *Metrics
	logger   *log.Logger
}

// NewCacheJanitor creates a janitor sweeping every interval
func NewCacheJanitor(cache ExpiringCache, interval time.Duration, metrics *Metrics, logger *log.Logger) *CacheJanitor {
	if interval <= 0 {
		interval = time.Minute
	}
	return &CacheJanitor{cache: cache, interval: interval, metrics: metrics, logger: logger}
}

// Serve sweeps until ctx is cancelled
func (j *CacheJanitor) Serve(ctx context.Context) error {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			j.Sweep()
		}
	}
}

// Sweep runs one cleanup pass and returns the number of removed entries
func (j *CacheJanitor) Sweep() int {
	removed := j.cache.CleanupExpired()
	if j.metrics != nil {
		j.metrics.CacheExpired.Add(float64(removed))
		j.metrics.CacheEntries.Set(float64(j.cache.Len()))
	}
	if removed > 0 && j.logger != nil {
		j.logger.Debug("cache sweep", "removed", removed, "remaining", j.cache.Len())
	}
	return removed
}

func (j *CacheJanitor) String() string {
	return "cache-janitor"
}

// NewSupervisor builds the root supervisor for the proxy services.
// Supervisor events are logged through logger.
func NewSupervisor(logger *log.Logger, services ...suture.Service) *suture.Supervisor {
	handler := &sutureslog.Handler{Logger: slog.New(logger)}

	sup := suture.New("marsphotos-proxy", suture.Spec{
		EventHook:        handler.MustHook(),
		FailureThreshold: 5,
		FailureDecay:     30,
		FailureBackoff:   15 * time.Second,
		Timeout:          10 * time.Second,
	})
	for _, svc := range services {
		sup.Add(svc)
	}
	return sup
}

package api

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/thesavant42/marsphotos/internal/models"
)

// BreakerSettings tunes the circuit breaker in front of the upstream API
type BreakerSettings struct {
	Name string
	// MaxRequests allowed through while half-open
	MaxRequests uint32
	// Interval after which closed-state counts are cleared
	Interval time.Duration
	// Timeout spent open before probing again
	Timeout time.Duration
	// ConsecutiveFailures that trip the breaker
	ConsecutiveFailures uint32
	// OnStateChange is called after every transition
	OnStateChange func(name string, from, to gobreaker.State)
}

// DefaultBreakerSettings returns settings suited to the NASA API
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		Name:                "nasa-api",
		MaxRequests:         3,
		Interval:            time.Minute,
		Timeout:             30 * time.Second,
		ConsecutiveFailures: 5,
	}
}

// BreakerFetcher guards a PhotoFetcher with a circuit breaker.
// Upstream 4xx answers and caller cancellations do not count as failures.
type BreakerFetcher struct {
	next   PhotoFetcher
	cb     *gobreaker.CircuitBreaker[[]models.PhotoRecord]
	logger *log.Logger
}

// NewBreakerFetcher wraps next
func NewBreakerFetcher(next PhotoFetcher, s BreakerSettings, logger *log.Logger) *BreakerFetcher {
	if s.ConsecutiveFailures == 0 {
		s.ConsecutiveFailures = DefaultBreakerSettings().ConsecutiveFailures
	}

	cb := gobreaker.NewCircuitBreaker[[]models.PhotoRecord](gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= s.ConsecutiveFailures
		},
		IsSuccessful: func(err error) bool {
			return err == nil ||
				IsClientError(err) ||
				errors.Is(err, context.Canceled) ||
				errors.Is(err, models.ErrRoverRequired)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if logger != nil {
				logger.Warn("circuit breaker state change", "name", name, "from", from.String(), "to", to.String())
			}
			if s.OnStateChange != nil {
				s.OnStateChange(name, from, to)
			}
		},
	})

	return &BreakerFetcher{next: next, cb: cb, logger: logger}
}

// FetchPhotos runs the query through the breaker
func (b *BreakerFetcher) FetchPhotos(ctx context.Context, q PhotoQuery) ([]models.PhotoRecord, error) {
	photos, err := b.cb.Execute(func() ([]models.PhotoRecord, error) {
		return b.next.FetchPhotos(ctx, q)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		if b.logger != nil {
			b.logger.Warn("upstream request rejected", "rover", q.Rover, "state", b.cb.State().String())
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	return photos, err
}

// State returns the breaker state
func (b *BreakerFetcher) State() gobreaker.State {
	return b.cb.State()
}

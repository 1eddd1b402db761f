package api

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/thesavant42/marsphotos/internal/models"
)

type stubFetcher struct {
	err   error
	calls int
}

func (s *stubFetcher) FetchPhotos(context.Context, PhotoQuery) ([]models.PhotoRecord, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return []models.PhotoRecord{{ID: 1}}, nil
}

func TestBreakerFetcher_TripsOnServerErrors(t *testing.T) {
	stub := &stubFetcher{err: &UpstreamError{StatusCode: http.StatusBadGateway}}
	var transitions []gobreaker.State

	b := NewBreakerFetcher(stub, BreakerSettings{
		Name:                "test",
		Timeout:             time.Hour,
		ConsecutiveFailures: 3,
		OnStateChange: func(_ string, _, to gobreaker.State) {
			transitions = append(transitions, to)
		},
	}, nil)

	for i := 0; i < 3; i++ {
		if _, err := b.FetchPhotos(context.Background(), PhotoQuery{Rover: "Curiosity"}); err == nil {
			t.Fatal("expected upstream error")
		}
	}
	if b.State() != gobreaker.StateOpen {
		t.Fatalf("state = %v, want open", b.State())
	}

	_, err := b.FetchPhotos(context.Background(), PhotoQuery{Rover: "Curiosity"})
	if !errors.Is(err, ErrUpstreamUnavailable) {
		t.Errorf("err = %v, want ErrUpstreamUnavailable", err)
	}
	if stub.calls != 3 {
		t.Errorf("open breaker still called upstream: %d calls", stub.calls)
	}
	if len(transitions) != 1 || transitions[0] != gobreaker.StateOpen {
		t.Errorf("transitions = %v", transitions)
	}
}

func TestBreakerFetcher_IgnoresClientErrors(t *testing.T) {
	stub := &stubFetcher{err: &UpstreamError{StatusCode: http.StatusBadRequest, Message: "bad date"}}
	b := NewBreakerFetcher(stub, BreakerSettings{Name: "test", ConsecutiveFailures: 2}, nil)

	for i := 0; i < 5; i++ {
		_, err := b.FetchPhotos(context.Background(), PhotoQuery{Rover: "Curiosity"})
		var ue *UpstreamError
		if !errors.As(err, &ue) {
			t.Fatalf("err = %v, want UpstreamError passthrough", err)
		}
	}
	if b.State() != gobreaker.StateClosed {
		t.Errorf("state = %v, want closed", b.State())
	}
}

func TestBreakerFetcher_CountsTemporaryErrors(t *testing.T) {
	tests := []struct {
		status int
		want   gobreaker.State
	}{
		{http.StatusTooManyRequests, gobreaker.StateOpen},
		{http.StatusServiceUnavailable, gobreaker.StateOpen},
		{http.StatusNotFound, gobreaker.StateClosed},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			stub := &stubFetcher{err: &UpstreamError{StatusCode: tt.status}}
			b := NewBreakerFetcher(stub, BreakerSettings{Name: "test", Timeout: time.Hour, ConsecutiveFailures: 2}, nil)

			for i := 0; i < 2; i++ {
				_, _ = b.FetchPhotos(context.Background(), PhotoQuery{Rover: "Curiosity"})
			}
			if b.State() != tt.want {
				t.Errorf("state after two %d answers = %v, want %v", tt.status, b.State(), tt.want)
			}
		})
	}
}

func TestBreakerFetcher_PassesResults(t *testing.T) {
	b := NewBreakerFetcher(&stubFetcher{}, DefaultBreakerSettings(), nil)
	photos, err := b.FetchPhotos(context.Background(), PhotoQuery{Rover: "Spirit"})
	if err != nil || len(photos) != 1 {
		t.Errorf("FetchPhotos() = %v, %v", photos, err)
	}
}

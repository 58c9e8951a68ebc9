package store

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/rribeiro/folio/internal/api"
)

// statsCache caches one resource's aggregate-stats payload under the same
// staleness policy as the collection itself.
type statsCache[S any] struct {
	client *api.Client
	path   string
	now    func() time.Time

	mu        sync.Mutex
	snapshot  *S
	lastFetch time.Time

	flight singleflight.Group
}

func newStatsCache[S any](client *api.Client, path string) *statsCache[S] {
	return &statsCache[S]{client: client, path: path, now: time.Now}
}

func (s *statsCache[S]) Fetch(ctx context.Context) (S, error) {
	s.mu.Lock()
	if s.snapshot != nil && s.now().Sub(s.lastFetch) < StaleAfter {
		snap := *s.snapshot
		s.mu.Unlock()
		return snap, nil
	}
	s.mu.Unlock()

	v, err, _ := s.flight.Do("stats", func() (any, error) {
		snap, err := api.Get[S](ctx, s.client, s.path)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.snapshot = &snap
		s.lastFetch = s.now()
		s.mu.Unlock()
		return snap, nil
	})
	if err != nil {
		var zero S
		return zero, err
	}
	return v.(S), nil
}

func (s *statsCache[S]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = nil
	s.lastFetch = time.Time{}
}

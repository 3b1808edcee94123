package ranking

import (
	"context"
	"time"

	"github.com/mauv0809/court-leaderboard/internal/assets"
	"github.com/mauv0809/court-leaderboard/internal/club"
	"github.com/mauv0809/court-leaderboard/internal/metrics"
)

type Option func(*Service)

// WithPublisher enables match-recorded announcements on topic.
func WithPublisher(publisher Publisher, topic string) Option {
	return func(s *Service) {
		s.publisher = publisher
		s.topic = topic
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// New creates a new Service.
func New(store club.ClubStore, assetStore assets.Store, metrics metrics.Metrics, opts ...Option) *Service {
	s := &Service{
		store:   store,
		assets:  assetStore,
		metrics: metrics,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) ListCourts(ctx context.Context) ([]club.Court, error) {
	return s.store.ListCourts(ctx)
}

// Leaderboard returns every player in rank order together with all courts.
func (s *Service) Leaderboard(ctx context.Context) (*Leaderboard, error) {
	players, err := s.store.ListPlayers(ctx, club.PlayerQuery{})
	if err != nil {
		return nil, err
	}
	courts, err := s.store.ListCourts(ctx)
	if err != nil {
		return nil, err
	}
	return &Leaderboard{Players: players, Courts: courts}, nil
}

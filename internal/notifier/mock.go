package notifier

import (
	"context"
	"sync"

	"github.com/mauv0809/court-leaderboard/internal/club"
	"github.com/mauv0809/court-leaderboard/internal/pubsub"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Call records
	SendMatchResultCalls []struct {
		Event  pubsub.MatchRecordedEvent
		DryRun bool
	}
	FormatLeaderboardResponseCalls [][]club.Player
	FormatPlayerResponseCalls      []struct {
		Player club.Player
		Rank   int
	}
	FormatPlayerNotFoundResponseCalls []string

	// Spies
	SendMatchResultFunc              func(event pubsub.MatchRecordedEvent, dryRun bool) error
	FormatLeaderboardResponseFunc    func(players []club.Player) (any, error)
	FormatPlayerResponseFunc         func(player club.Player, rank int) (any, error)
	FormatPlayerNotFoundResponseFunc func(query string) (any, error)
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchResultCalls = nil
	m.FormatLeaderboardResponseCalls = nil
	m.FormatPlayerResponseCalls = nil
	m.FormatPlayerNotFoundResponseCalls = nil
}

func (m *Mock) SendMatchResult(_ context.Context, event pubsub.MatchRecordedEvent, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchResultCalls = append(m.SendMatchResultCalls, struct {
		Event  pubsub.MatchRecordedEvent
		DryRun bool
	}{event, dryRun})
	if m.SendMatchResultFunc != nil {
		return m.SendMatchResultFunc(event, dryRun)
	}
	return nil
}

func (m *Mock) FormatLeaderboardResponse(players []club.Player) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FormatLeaderboardResponseCalls = append(m.FormatLeaderboardResponseCalls, players)
	if m.FormatLeaderboardResponseFunc != nil {
		return m.FormatLeaderboardResponseFunc(players)
	}
	return map[string]any{"text": "leaderboard"}, nil
}

func (m *Mock) FormatPlayerResponse(player club.Player, rank int) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FormatPlayerResponseCalls = append(m.FormatPlayerResponseCalls, struct {
		Player club.Player
		Rank   int
	}{player, rank})
	if m.FormatPlayerResponseFunc != nil {
		return m.FormatPlayerResponseFunc(player, rank)
	}
	return map[string]any{"text": player.Name}, nil
}

func (m *Mock) FormatPlayerNotFoundResponse(query string) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FormatPlayerNotFoundResponseCalls = append(m.FormatPlayerNotFoundResponseCalls, query)
	if m.FormatPlayerNotFoundResponseFunc != nil {
		return m.FormatPlayerNotFoundResponseFunc(query)
	}
	return map[string]any{"text": "not found"}, nil
}

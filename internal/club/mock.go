package club

import (
	"context"
	"sync"
)

// MockStore is a mock implementation of the ClubStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	ListPlayersFunc  func(query PlayerQuery) ([]Player, error)
	GetPlayerFunc    func(id int64) (*Player, error)
	CreatePlayerFunc func(player NewPlayer) (*Player, error)
	UpdatePlayerFunc func(id int64, update PlayerUpdate) (*Player, error)
	ListCourtsFunc   func() ([]Court, error)
	GetCourtFunc     func(id int64) (*Court, error)
	UpsertCourtsFunc func(courts []Court) error
	ListMatchesFunc  func(page Page) ([]Match, error)
	RecordMatchFunc  func(match NewMatch, winPoints int) (*Match, error)
	ListEventsFunc   func() ([]Event, error)
	CreateEventFunc  func(event NewEvent) (*Event, error)

	// Call records
	ListPlayersCalls  []PlayerQuery
	CreatePlayerCalls []NewPlayer
	UpdatePlayerCalls []struct {
		ID     int64
		Update PlayerUpdate
	}
	UpsertCourtsCalls [][]Court
	RecordMatchCalls  []struct {
		Match     NewMatch
		WinPoints int
	}
	CreateEventCalls []NewEvent
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListPlayersCalls = nil
	m.CreatePlayerCalls = nil
	m.UpdatePlayerCalls = nil
	m.UpsertCourtsCalls = nil
	m.RecordMatchCalls = nil
	m.CreateEventCalls = nil
}

func (m *MockStore) ListPlayers(_ context.Context, query PlayerQuery) ([]Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListPlayersCalls = append(m.ListPlayersCalls, query)
	if m.ListPlayersFunc != nil {
		return m.ListPlayersFunc(query)
	}
	return []Player{}, nil
}

func (m *MockStore) GetPlayer(_ context.Context, id int64) (*Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetPlayerFunc != nil {
		return m.GetPlayerFunc(id)
	}
	return nil, ErrNotFound
}

func (m *MockStore) CreatePlayer(_ context.Context, player NewPlayer) (*Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreatePlayerCalls = append(m.CreatePlayerCalls, player)
	if m.CreatePlayerFunc != nil {
		return m.CreatePlayerFunc(player)
	}
	return &Player{
		ID:              int64(len(m.CreatePlayerCalls)),
		Name:            player.Name,
		AvatarURL:       player.AvatarURL,
		InstagramHandle: player.InstagramHandle,
	}, nil
}

func (m *MockStore) UpdatePlayer(_ context.Context, id int64, update PlayerUpdate) (*Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdatePlayerCalls = append(m.UpdatePlayerCalls, struct {
		ID     int64
		Update PlayerUpdate
	}{id, update})
	if m.UpdatePlayerFunc != nil {
		return m.UpdatePlayerFunc(id, update)
	}
	return nil, ErrNotFound
}

func (m *MockStore) ListCourts(_ context.Context) ([]Court, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListCourtsFunc != nil {
		return m.ListCourtsFunc()
	}
	return []Court{}, nil
}

func (m *MockStore) GetCourt(_ context.Context, id int64) (*Court, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetCourtFunc != nil {
		return m.GetCourtFunc(id)
	}
	return nil, ErrNotFound
}

func (m *MockStore) UpsertCourts(_ context.Context, courts []Court) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertCourtsCalls = append(m.UpsertCourtsCalls, courts)
	if m.UpsertCourtsFunc != nil {
		return m.UpsertCourtsFunc(courts)
	}
	return nil
}

func (m *MockStore) ListMatches(_ context.Context, page Page) ([]Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListMatchesFunc != nil {
		return m.ListMatchesFunc(page)
	}
	return []Match{}, nil
}

func (m *MockStore) RecordMatch(_ context.Context, match NewMatch, winPoints int) (*Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RecordMatchCalls = append(m.RecordMatchCalls, struct {
		Match     NewMatch
		WinPoints int
	}{match, winPoints})
	if m.RecordMatchFunc != nil {
		return m.RecordMatchFunc(match, winPoints)
	}
	return &Match{
		ID:        int64(len(m.RecordMatchCalls)),
		WinnerID:  match.WinnerID,
		LoserID:   match.LoserID,
		Sport:     match.Sport,
		CourtID:   match.CourtID,
		CreatedAt: match.PlayedAt,
	}, nil
}

func (m *MockStore) ListEvents(_ context.Context) ([]Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListEventsFunc != nil {
		return m.ListEventsFunc()
	}
	return []Event{}, nil
}

func (m *MockStore) CreateEvent(_ context.Context, event NewEvent) (*Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateEventCalls = append(m.CreateEventCalls, event)
	if m.CreateEventFunc != nil {
		return m.CreateEventFunc(event)
	}
	return &Event{
		ID:            int64(len(m.CreateEventCalls)),
		Name:          event.Name,
		StartDateTime: event.StartDateTime,
		EndDateTime:   event.EndDateTime,
		Organizer:     event.Organizer,
		CreatedAt:     event.CreatedAt,
	}, nil
}

package club

import "context"

// ClubStore defines the interface for interacting with the club's data.
type ClubStore interface {
	ListPlayers(ctx context.Context, query PlayerQuery) ([]Player, error)
	GetPlayer(ctx context.Context, id int64) (*Player, error)
	CreatePlayer(ctx context.Context, player NewPlayer) (*Player, error)
	UpdatePlayer(ctx context.Context, id int64, update PlayerUpdate) (*Player, error)

	ListCourts(ctx context.Context) ([]Court, error)
	GetCourt(ctx context.Context, id int64) (*Court, error)
	UpsertCourts(ctx context.Context, courts []Court) error

	ListMatches(ctx context.Context, page Page) ([]Match, error)
	// RecordMatch inserts the match and applies its effects on both players
	// in a single transaction.
	RecordMatch(ctx context.Context, match NewMatch, winPoints int) (*Match, error)

	ListEvents(ctx context.Context) ([]Event, error)
	CreateEvent(ctx context.Context, event NewEvent) (*Event, error)
}

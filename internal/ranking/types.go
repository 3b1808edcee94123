package ranking

import (
	"time"

	"github.com/mauv0809/court-leaderboard/internal/assets"
	"github.com/mauv0809/court-leaderboard/internal/club"
	"github.com/mauv0809/court-leaderboard/internal/metrics"
)

// WinPoints is awarded to the winner of every recorded match.
const WinPoints = 10

// Service applies the leaderboard rules on top of the club store.
type Service struct {
	store     club.ClubStore
	assets    assets.Store
	metrics   metrics.Metrics
	publisher Publisher
	topic     string
	now       func() time.Time
}

// ValidationError reports a request the caller must fix. Message is safe to
// return to the client verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(message string) error {
	return &ValidationError{Message: message}
}

type RecordMatchInput struct {
	WinnerID int64
	LoserID  int64
	Sport    string
	CourtID  int64
}

type CreatePlayerInput struct {
	Name            string
	AvatarURL       *string
	InstagramHandle *string
}

// Nullable is a change to a clearable field. Set marks the field as present
// in the request; a nil or empty Value clears it.
type Nullable struct {
	Set   bool
	Value *string
}

func (n Nullable) clears() bool {
	return n.Set && (n.Value == nil || *n.Value == "")
}

type UpdatePlayerInput struct {
	Name            *string
	Points          *int
	AvatarURL       Nullable
	InstagramHandle Nullable
}

// CreateEventInput carries RFC 3339 timestamps as received from the client.
type CreateEventInput struct {
	Name          string
	StartDateTime string
	EndDateTime   string
	Organizer     string
}

// Leaderboard is the combined view served to the front page.
type Leaderboard struct {
	Players []club.Player `json:"players"`
	Courts  []club.Court  `json:"courts"`
}

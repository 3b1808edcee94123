package notifier

import (
	"context"

	"github.com/mauv0809/court-leaderboard/internal/club"
	"github.com/mauv0809/court-leaderboard/internal/pubsub"
)

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For recorded matches
	SendMatchResult(ctx context.Context, event pubsub.MatchRecordedEvent, dryRun bool) error

	// For formatting responses for slash commands
	FormatLeaderboardResponse(players []club.Player) (any, error)
	FormatPlayerResponse(player club.Player, rank int) (any, error)
	FormatPlayerNotFoundResponse(query string) (any, error)
}

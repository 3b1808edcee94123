package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/court-leaderboard/internal/club"
	"github.com/mauv0809/court-leaderboard/internal/metrics"
	"github.com/mauv0809/court-leaderboard/internal/notifier"
	"github.com/mauv0809/court-leaderboard/internal/pubsub"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// LeaderboardSize is the number of players shown by the leaderboard command.
const LeaderboardSize = 10

const timeLayout = "Mon 02 Jan, 15:04 MST"

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       slack.New(token),
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(ctx context.Context, message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)
	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

func (s *Notifier) SendMatchResult(ctx context.Context, event pubsub.MatchRecordedEvent, dryRun bool) error {
	_, _, err := s.sendMessage(ctx, s.formatMatchResult(event), dryRun)
	return err
}

// FormatLeaderboardResponse formats a leaderboard message for a slash command response.
func (s *Notifier) FormatLeaderboardResponse(players []club.Player) (any, error) {
	return s.formatLeaderboard(players), nil
}

// FormatPlayerResponse formats a single player card for a slash command response.
func (s *Notifier) FormatPlayerResponse(player club.Player, rank int) (any, error) {
	return s.formatPlayer(player, rank), nil
}

// FormatPlayerNotFoundResponse formats a player not found message for a slash command response.
func (s *Notifier) FormatPlayerNotFoundResponse(query string) (any, error) {
	return s.formatPlayerNotFound(query), nil
}

func plainText(text string) *slack.TextBlockObject {
	return slack.NewTextBlockObject("plain_text", text, true, false)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func sportEmoji(sport string) string {
	if club.Sport(sport) == club.SportBadminton {
		return "🏸"
	}
	return "🎾"
}

// formatMatchResult creates the Slack message for a recorded match using Block Kit.
func (s *Notifier) formatMatchResult(event pubsub.MatchRecordedEvent) slack.Message {
	emoji := sportEmoji(event.Sport)
	blocks := []slack.Block{
		slack.NewHeaderBlock(plainText(fmt.Sprintf("%s Match recorded! %s", emoji, emoji))),
	}

	court := event.CourtName
	if court == "" {
		court = fmt.Sprintf("Court %d", event.CourtID)
	}
	details := fmt.Sprintf("Sport: %s\nCourt: %s\nTime: %s", event.Sport, court, formatTime(event.PlayedAt))
	blocks = append(blocks, slack.NewSectionBlock(plainText(details), nil, nil))

	result := fmt.Sprintf("🏆 %s beat %s\n%s: %d pts (+%d)\n%s: %d pts",
		event.WinnerName, event.LoserName,
		event.WinnerName, event.WinnerPoints, event.PointsAwarded,
		event.LoserName, event.LoserPoints)
	blocks = append(blocks, slack.NewSectionBlock(plainText(result), nil, nil))

	return slack.NewBlockMessage(blocks...)
}

// formatLeaderboard creates the leaderboard message. Players must already be
// ranked by points.
func (s *Notifier) formatLeaderboard(players []club.Player) slack.Message {
	blocks := []slack.Block{
		slack.NewHeaderBlock(plainText("🏆 Leaderboard 🏆")),
	}

	if len(players) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(plainText("No players yet. Record a match to get started!"), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	if len(players) > LeaderboardSize {
		players = players[:LeaderboardSize]
	}
	var lines []string
	for i, p := range players {
		lines = append(lines, fmt.Sprintf("%s %s: %d pts", rankLabel(i+1), p.Name, p.Points))
	}
	blocks = append(blocks, slack.NewSectionBlock(plainText(strings.Join(lines, "\n")), nil, nil))

	if last := latestMatch(players); last != nil {
		blocks = append(blocks, slack.NewContextBlock("", plainText("Last match: "+formatTime(*last))))
	}
	return slack.NewBlockMessage(blocks...)
}

func rankLabel(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	default:
		return fmt.Sprintf("%d.", rank)
	}
}

func latestMatch(players []club.Player) *time.Time {
	var latest *time.Time
	for _, p := range players {
		if p.LastMatchAt != nil && (latest == nil || p.LastMatchAt.After(*latest)) {
			latest = p.LastMatchAt
		}
	}
	return latest
}

func (s *Notifier) formatPlayer(player club.Player, rank int) slack.Message {
	blocks := []slack.Block{
		slack.NewHeaderBlock(plainText(fmt.Sprintf("👤 %s", player.Name))),
	}

	lines := []string{fmt.Sprintf("Points: %d", player.Points)}
	if rank > 0 {
		lines = append(lines, fmt.Sprintf("Rank: %s", strings.TrimSuffix(rankLabel(rank), ".")))
	}
	if player.LastMatchAt != nil {
		lines = append(lines, "Last match: "+formatTime(*player.LastMatchAt))
	} else {
		lines = append(lines, "Last match: never")
	}
	blocks = append(blocks, slack.NewSectionBlock(plainText(strings.Join(lines, "\n")), nil, nil))

	if player.InstagramHandle != nil && *player.InstagramHandle != "" {
		handle := strings.TrimPrefix(*player.InstagramHandle, "@")
		blocks = append(blocks, slack.NewContextBlock("", plainText("📸 @"+handle)))
	}
	return slack.NewBlockMessage(blocks...)
}

func (s *Notifier) formatPlayerNotFound(query string) slack.Message {
	text := fmt.Sprintf("🤷 No player found matching %q.", query)
	if query == "" {
		text = "Usage: /player <name>"
	}
	return slack.NewBlockMessage(slack.NewSectionBlock(plainText(text), nil, nil))
}

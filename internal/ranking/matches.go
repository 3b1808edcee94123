package ranking

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/court-leaderboard/internal/club"
	"github.com/mauv0809/court-leaderboard/internal/pubsub"
)

const publishTimeout = 5 * time.Second

// RecordMatch stores a match and awards WinPoints to the winner. Both players
// get their last match time and court updated. The write is atomic.
func (s *Service) RecordMatch(ctx context.Context, in RecordMatchInput) (*club.Match, error) {
	if in.WinnerID == 0 || in.LoserID == 0 || in.Sport == "" || in.CourtID == 0 {
		return nil, invalid("Missing required fields")
	}
	sport := club.Sport(in.Sport)
	if !sport.Valid() {
		return nil, invalid("Invalid sport")
	}

	match, err := s.store.RecordMatch(ctx, club.NewMatch{
		WinnerID: in.WinnerID,
		LoserID:  in.LoserID,
		Sport:    sport,
		CourtID:  in.CourtID,
		PlayedAt: s.now(),
	}, WinPoints)
	if err != nil {
		return nil, err
	}

	s.metrics.IncMatchesRecorded()
	s.metrics.AddPointsAwarded(WinPoints)
	log.Info("Match recorded", "matchID", match.ID, "winner", match.WinnerID, "loser", match.LoserID, "sport", match.Sport)

	s.announce(ctx, match)
	return match, nil
}

func (s *Service) ListMatches(ctx context.Context, page club.Page) ([]club.Match, error) {
	return s.store.ListMatches(ctx, page)
}

// announce publishes the match-recorded event. Failures are logged only; the
// match is already committed.
func (s *Service) announce(ctx context.Context, match *club.Match) {
	if s.publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	event, err := s.matchEvent(ctx, match)
	if err != nil {
		log.Error("Failed to build match event", "error", err, "matchID", match.ID)
		return
	}
	if err := s.publisher.SendMessage(ctx, s.topic, event); err != nil {
		log.Error("Failed to publish match event", "error", err, "matchID", match.ID, "topic", s.topic)
		return
	}
	log.FromContext(ctx).Debug("Published match event", "matchID", match.ID, "topic", s.topic)
}

func (s *Service) matchEvent(ctx context.Context, match *club.Match) (pubsub.MatchRecordedEvent, error) {
	winner, err := s.store.GetPlayer(ctx, match.WinnerID)
	if err != nil {
		return pubsub.MatchRecordedEvent{}, err
	}
	loser, err := s.store.GetPlayer(ctx, match.LoserID)
	if err != nil {
		return pubsub.MatchRecordedEvent{}, err
	}
	event := pubsub.MatchRecordedEvent{
		MatchID:       match.ID,
		Sport:         string(match.Sport),
		CourtID:       match.CourtID,
		WinnerID:      winner.ID,
		WinnerName:    winner.Name,
		WinnerPoints:  winner.Points,
		LoserID:       loser.ID,
		LoserName:     loser.Name,
		LoserPoints:   loser.Points,
		PointsAwarded: WinPoints,
		PlayedAt:      match.CreatedAt,
	}
	// A missing court name is cosmetic.
	if court, err := s.store.GetCourt(ctx, match.CourtID); err == nil {
		event.CourtName = court.Name
	}
	return event, nil
}

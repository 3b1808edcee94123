package pubsub

import (
	"time"

	"cloud.google.com/go/pubsub"
)

type client struct {
	client *pubsub.Client
}

// PushEnvelope is the JSON body Pub/Sub posts to push subscriptions.
type PushEnvelope struct {
	Subscription string `json:"subscription"`
	Message      struct {
		ID   string `json:"messageId"`
		Data string `json:"data"` // base64-encoded message payload
	} `json:"message"`
}

// MatchRecordedEvent is published after a match has been committed.
type MatchRecordedEvent struct {
	MatchID       int64     `msgpack:"match_id"`
	Sport         string    `msgpack:"sport"`
	CourtID       int64     `msgpack:"court_id"`
	CourtName     string    `msgpack:"court_name"`
	WinnerID      int64     `msgpack:"winner_id"`
	WinnerName    string    `msgpack:"winner_name"`
	WinnerPoints  int       `msgpack:"winner_points"`
	LoserID       int64     `msgpack:"loser_id"`
	LoserName     string    `msgpack:"loser_name"`
	LoserPoints   int       `msgpack:"loser_points"`
	PointsAwarded int       `msgpack:"points_awarded"`
	PlayedAt      time.Time `msgpack:"played_at"`
}

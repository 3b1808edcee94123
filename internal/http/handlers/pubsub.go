package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/court-leaderboard/internal/notifier"
	"github.com/mauv0809/court-leaderboard/internal/pubsub"
)

// MatchRecordedHandler receives Pub/Sub pushes for recorded matches and
// announces them through the notifier.
func MatchRecordedHandler(notifier notifier.Notifier, pubsubClient pubsub.PubSubClient) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.FromContext(r.Context()).Debug("Received match recorded message", "body", string(bodyBytes))

		var envelope pubsub.PushEnvelope
		if err := json.Unmarshal(bodyBytes, &envelope); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		rawData, err := envelope.Payload()
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}

		var event pubsub.MatchRecordedEvent
		if err := pubsubClient.ProcessMessage(rawData, &event); err != nil {
			http.Error(w, "Invalid message payload", http.StatusBadRequest)
			return
		}

		if err := notifier.SendMatchResult(r.Context(), event, IsDryRunFromContext(r)); err != nil {
			log.Error("Failed to notify match result", "error", err, "matchID", event.MatchID)
			http.Error(w, "Failed to notify match result", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}

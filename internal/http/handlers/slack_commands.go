package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/court-leaderboard/internal/club"
	"github.com/mauv0809/court-leaderboard/internal/notifier"
	"github.com/mauv0809/court-leaderboard/internal/ranking"
	"github.com/slack-go/slack"
)

// LeaderboardSize is the number of players returned by the leaderboard command.
const LeaderboardSize = 10

// respondWithSlackMsg is a helper to write a formatted Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg any) {
	slackMsg, ok := msg.(slack.Message)
	if !ok {
		http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
		log.Error("Failed to cast message to slack.Message")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(slackMsg); err != nil {
		log.Error("Failed to encode slack message to JSON", "error", err)
	}
}

// VerifySlackSignature rejects requests that were not signed with the app's
// signing secret. An empty secret disables the check.
func VerifySlackSignature(signingSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if signingSecret == "" {
				next.ServeHTTP(w, r)
				return
			}
			body, err := io.ReadAll(r.Body)
			if err != nil {
				http.Error(w, "Failed to read request body", http.StatusBadRequest)
				return
			}
			verifier, err := slack.NewSecretsVerifier(r.Header, signingSecret)
			if err != nil {
				log.Warn("Invalid Slack signature headers", "error", err)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			if _, err := verifier.Write(body); err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			if err := verifier.Ensure(); err != nil {
				log.Warn("Slack signature mismatch", "error", err)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))
			next.ServeHTTP(w, r)
		})
	}
}

func LeaderboardCommandHandler(svc *ranking.Service, notifier notifier.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := svc.TopPlayers(r.Context(), LeaderboardSize)
		if err != nil {
			http.Error(w, "Failed to get players", http.StatusInternalServerError)
			log.Error("Failed to get players from store", "error", err)
			return
		}

		msg, err := notifier.FormatLeaderboardResponse(players)
		if err != nil {
			http.Error(w, "Failed to format leaderboard", http.StatusInternalServerError)
			log.Error("Failed to format leaderboard", "error", err)
			return
		}
		respondWithSlackMsg(w, msg)
	}
}

func PlayerCommandHandler(svc *ranking.Service, notifier notifier.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}

		query := strings.TrimSpace(r.FormValue("text"))
		if query == "" {
			http.Error(w, "Player name is required.", http.StatusBadRequest)
			return
		}

		log.Info("Received player command", "query", query)
		player, rank, err := svc.FindPlayer(r.Context(), query)
		var msg any
		switch {
		case errors.Is(err, club.ErrNotFound):
			log.Warn("Could not find player", "query", query)
			msg, err = notifier.FormatPlayerNotFoundResponse(query)
		case err != nil:
			http.Error(w, "Failed to find player", http.StatusInternalServerError)
			log.Error("Failed to find player", "error", err)
			return
		default:
			msg, err = notifier.FormatPlayerResponse(*player, rank)
		}
		if err != nil {
			http.Error(w, "Failed to format player", http.StatusInternalServerError)
			log.Error("Failed to format player", "error", err)
			return
		}
		respondWithSlackMsg(w, msg)
	}
}

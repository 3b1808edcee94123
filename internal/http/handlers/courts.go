package handlers

import (
	"net/http"

	"github.com/mauv0809/court-leaderboard/internal/ranking"
)

func ListCourtsHandler(svc *ranking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		courts, err := svc.ListCourts(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, courts)
	}
}

func LeaderboardHandler(svc *ranking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lb, err := svc.Leaderboard(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, lb)
	}
}

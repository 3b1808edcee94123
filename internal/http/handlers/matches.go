package handlers

import (
	"net/http"

	"github.com/mauv0809/court-leaderboard/internal/ranking"
)

func ListMatchesHandler(svc *ranking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := parsePage(r)
		if err != nil {
			writeError(w, err)
			return
		}
		matches, err := svc.ListMatches(r.Context(), page)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, matches)
	}
}

func RecordMatchHandler(svc *ranking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req recordMatchRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, err)
			return
		}
		match, err := svc.RecordMatch(r.Context(), ranking.RecordMatchInput{
			WinnerID: req.WinnerID,
			LoserID:  req.LoserID,
			Sport:    req.Sport,
			CourtID:  req.CourtID,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, matchRecordedResponse{Message: "Match recorded", Match: match})
	}
}

package handlers

import (
	"net/http"

	"github.com/mauv0809/court-leaderboard/internal/ranking"
)

// ListEventsHandler returns running events followed by upcoming ones.
func ListEventsHandler(svc *ranking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		events, err := svc.ListEvents(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, events)
	}
}

func CreateEventHandler(svc *ranking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createEventRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, err)
			return
		}
		event, err := svc.CreateEvent(r.Context(), ranking.CreateEventInput{
			Name:          req.Name,
			StartDateTime: req.StartDateTime,
			EndDateTime:   req.EndDateTime,
			Organizer:     req.Organizer,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, event)
	}
}

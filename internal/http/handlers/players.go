package handlers

import (
	"net/http"

	"github.com/mauv0809/court-leaderboard/internal/club"
	"github.com/mauv0809/court-leaderboard/internal/ranking"
)

func ListPlayersHandler(svc *ranking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := parsePage(r)
		if err != nil {
			writeError(w, err)
			return
		}
		players, err := svc.ListPlayers(r.Context(), club.PlayerQuery{
			Page:   page,
			Search: r.URL.Query().Get("search"),
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, players)
	}
}

func GetPlayerHandler(svc *ranking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			writeError(w, err)
			return
		}
		player, err := svc.GetPlayer(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, player)
	}
}

// CreatePlayerHandler responds with a one-element array holding the new player.
func CreatePlayerHandler(svc *ranking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPlayerRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, err)
			return
		}
		player, err := svc.CreatePlayer(r.Context(), ranking.CreatePlayerInput{
			Name:            req.Name,
			AvatarURL:       req.AvatarURL,
			InstagramHandle: req.InstagramHandle,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, []club.Player{*player})
	}
}

// UpdatePlayerHandler responds with a one-element array holding the updated player.
func UpdatePlayerHandler(svc *ranking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			writeError(w, err)
			return
		}
		var req updatePlayerRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, err)
			return
		}

		in := ranking.UpdatePlayerInput{
			AvatarURL:       ranking.Nullable{Set: req.AvatarURL.Set, Value: req.AvatarURL.Value},
			InstagramHandle: ranking.Nullable{Set: req.InstagramHandle.Set, Value: req.InstagramHandle.Value},
		}
		if req.Name.Set {
			name := ""
			if req.Name.Value != nil {
				name = *req.Name.Value
			}
			in.Name = &name
		}
		if req.Points.Set {
			if req.Points.Value == nil {
				BadRequest(w, "Invalid points", nil)
				return
			}
			in.Points = req.Points.Value
		}

		player, err := svc.UpdatePlayer(r.Context(), id, in)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, []club.Player{*player})
	}
}

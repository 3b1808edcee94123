package handlers

import "github.com/mauv0809/court-leaderboard/internal/club"

type createPlayerRequest struct {
	Name            string  `json:"name"`
	AvatarURL       *string `json:"avatarUrl"`
	InstagramHandle *string `json:"instagramHandle"`
}

type updatePlayerRequest struct {
	Name            Optional[string] `json:"name"`
	Points          Optional[int]    `json:"points"`
	AvatarURL       Optional[string] `json:"avatarUrl"`
	InstagramHandle Optional[string] `json:"instagramHandle"`
}

type recordMatchRequest struct {
	WinnerID int64  `json:"winnerId"`
	LoserID  int64  `json:"loserId"`
	Sport    string `json:"sport"`
	CourtID  int64  `json:"courtId"`
}

type createEventRequest struct {
	Name          string `json:"name"`
	StartDateTime string `json:"startDateTime"`
	EndDateTime   string `json:"endDateTime"`
	Organizer     string `json:"organizer"`
}

type matchRecordedResponse struct {
	Message string      `json:"message"`
	Match   *club.Match `json:"match"`
}

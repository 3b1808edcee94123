package club

import (
	"database/sql"
	"time"
)

const (
	playerColumns = "id, name, avatar_url, instagram_handle, points, last_match_at, last_court_id"
	courtColumns  = "id, name, type"
	matchColumns  = "id, winner_id, loser_id, sport, court_id, created_at"
	eventColumns  = "id, name, start_date_time, end_date_time, organizer, created_at"
)

type playerRow struct {
	ID              int64          `db:"id"`
	Name            string         `db:"name"`
	AvatarURL       sql.NullString `db:"avatar_url"`
	InstagramHandle sql.NullString `db:"instagram_handle"`
	Points          int            `db:"points"`
	LastMatchAt     sql.NullInt64  `db:"last_match_at"`
	LastCourtID     sql.NullInt64  `db:"last_court_id"`
}

type courtRow struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
	Type string `db:"type"`
}

type matchRow struct {
	ID        int64  `db:"id"`
	WinnerID  int64  `db:"winner_id"`
	LoserID   int64  `db:"loser_id"`
	Sport     string `db:"sport"`
	CourtID   int64  `db:"court_id"`
	CreatedAt int64  `db:"created_at"`
}

type eventRow struct {
	ID            int64  `db:"id"`
	Name          string `db:"name"`
	StartDateTime int64  `db:"start_date_time"`
	EndDateTime   int64  `db:"end_date_time"`
	Organizer     string `db:"organizer"`
	CreatedAt     int64  `db:"created_at"`
}

// fromUnix converts stored unix seconds to a UTC time.
func fromUnix(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}

func (r playerRow) toPlayer() Player {
	p := Player{
		ID:     r.ID,
		Name:   r.Name,
		Points: r.Points,
	}
	if r.AvatarURL.Valid {
		p.AvatarURL = &r.AvatarURL.String
	}
	if r.InstagramHandle.Valid {
		p.InstagramHandle = &r.InstagramHandle.String
	}
	if r.LastMatchAt.Valid {
		t := fromUnix(r.LastMatchAt.Int64)
		p.LastMatchAt = &t
	}
	if r.LastCourtID.Valid {
		p.LastCourtID = &r.LastCourtID.Int64
	}
	return p
}

func (r courtRow) toCourt() Court {
	return Court{ID: r.ID, Name: r.Name, Type: Sport(r.Type)}
}

func (r matchRow) toMatch() Match {
	return Match{
		ID:        r.ID,
		WinnerID:  r.WinnerID,
		LoserID:   r.LoserID,
		Sport:     Sport(r.Sport),
		CourtID:   r.CourtID,
		CreatedAt: fromUnix(r.CreatedAt),
	}
}

func (r eventRow) toEvent() Event {
	return Event{
		ID:            r.ID,
		Name:          r.Name,
		StartDateTime: fromUnix(r.StartDateTime),
		EndDateTime:   fromUnix(r.EndDateTime),
		Organizer:     r.Organizer,
		CreatedAt:     fromUnix(r.CreatedAt),
	}
}

// The list mappers never return nil so that empty results encode as [].

func mapPlayers(rows []playerRow) []Player {
	players := make([]Player, 0, len(rows))
	for _, r := range rows {
		players = append(players, r.toPlayer())
	}
	return players
}

func mapCourts(rows []courtRow) []Court {
	courts := make([]Court, 0, len(rows))
	for _, r := range rows {
		courts = append(courts, r.toCourt())
	}
	return courts
}

func mapMatches(rows []matchRow) []Match {
	matches := make([]Match, 0, len(rows))
	for _, r := range rows {
		matches = append(matches, r.toMatch())
	}
	return matches
}

func mapEvents(rows []eventRow) []Event {
	events := make([]Event, 0, len(rows))
	for _, r := range rows {
		events = append(events, r.toEvent())
	}
	return events
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

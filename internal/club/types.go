package club

import (
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// store handles all database operations for the club.
type store struct {
	db *sqlx.DB
}

// Sport is the kind of game played on a court.
type Sport string

const (
	SportPadel     Sport = "padel"
	SportTennis    Sport = "tennis"
	SportBadminton Sport = "badminton"
)

// Sports lists every supported sport in display order.
var Sports = []Sport{SportPadel, SportTennis, SportBadminton}

// Valid reports whether s is one of the supported sports.
func (s Sport) Valid() bool {
	for _, sport := range Sports {
		if s == sport {
			return true
		}
	}
	return false
}

// Player is a ranked club member. Points only grow through recorded wins,
// unless an admin edits them directly.
type Player struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	AvatarURL       *string    `json:"avatarUrl"`
	InstagramHandle *string    `json:"instagramHandle"`
	Points          int        `json:"points"`
	LastMatchAt     *time.Time `json:"lastMatchAt"`
	LastCourtID     *int64     `json:"lastCourtId"`
}

type Court struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Type Sport  `json:"type"`
}

// Match is an append-only record of a played game.
type Match struct {
	ID        int64     `json:"id"`
	WinnerID  int64     `json:"winnerId"`
	LoserID   int64     `json:"loserId"`
	Sport     Sport     `json:"sport"`
	CourtID   int64     `json:"courtId"`
	CreatedAt time.Time `json:"createdAt"`
}

type Event struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	StartDateTime time.Time `json:"startDateTime"`
	EndDateTime   time.Time `json:"endDateTime"`
	Organizer     string    `json:"organizer"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Page selects a window of an ordered list. Number is 1-based; a Size of
// zero means no limit.
type Page struct {
	Number int
	Size   int
}

// limitOffset converts the page into SQLite LIMIT/OFFSET values. A negative
// LIMIT means "no limit" in SQLite. Without a size the first page holds every
// row, so later pages are empty.
func (p Page) limitOffset() (int, int) {
	if p.Size <= 0 {
		if p.Number > 1 {
			return 0, 0
		}
		return -1, 0
	}
	number := p.Number
	if number < 1 {
		number = 1
	}
	return p.Size, (number - 1) * p.Size
}

// PlayerQuery filters and paginates the ranked player list.
type PlayerQuery struct {
	Page   Page
	Search string
}

type NewPlayer struct {
	Name            string
	AvatarURL       *string
	InstagramHandle *string
}

// PlayerUpdate carries the fields to change on a player. Nil pointers are
// left untouched; the Clear flags null out the column.
type PlayerUpdate struct {
	Name            *string
	Points          *int
	AvatarURL       *string
	ClearAvatar     bool
	InstagramHandle *string
	ClearInstagram  bool
}

// Empty reports whether the update would not change anything.
func (u PlayerUpdate) Empty() bool {
	return u.Name == nil && u.Points == nil && u.AvatarURL == nil && !u.ClearAvatar &&
		u.InstagramHandle == nil && !u.ClearInstagram
}

type NewMatch struct {
	WinnerID int64
	LoserID  int64
	Sport    Sport
	CourtID  int64
	PlayedAt time.Time
}

type NewEvent struct {
	Name          string
	StartDateTime time.Time
	EndDateTime   time.Time
	Organizer     string
	CreatedAt     time.Time
}

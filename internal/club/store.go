package club

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/jmoiron/sqlx"
)

// New creates a new ClubStore backed by db.
func New(db *sqlx.DB) ClubStore {
	return &store{db: db}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// foldName is the search key stored in name_search. SQLite's LOWER only
// folds ASCII, so names are folded here and compared byte for byte.
func foldName(name string) string {
	return strings.ToLower(name)
}

func (s *store) ListPlayers(ctx context.Context, q PlayerQuery) ([]Player, error) {
	query := "SELECT " + playerColumns + " FROM players"
	var args []any
	if search := strings.TrimSpace(q.Search); search != "" {
		query += ` WHERE COALESCE(name_search, LOWER(name)) LIKE ? ESCAPE '\'`
		args = append(args, "%"+likeEscaper.Replace(foldName(search))+"%")
	}
	limit, offset := q.Page.limitOffset()
	query += " ORDER BY points DESC, id ASC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	var rows []playerRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return mapPlayers(rows), nil
}

func (s *store) GetPlayer(ctx context.Context, id int64) (*Player, error) {
	var row playerRow
	err := s.db.GetContext(ctx, &row, "SELECT "+playerColumns+" FROM players WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("player %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player %d: %w", id, err)
	}
	p := row.toPlayer()
	return &p, nil
}

func (s *store) CreatePlayer(ctx context.Context, np NewPlayer) (*Player, error) {
	var row playerRow
	err := s.db.GetContext(ctx, &row,
		"INSERT INTO players (name, name_search, avatar_url, instagram_handle) VALUES (?, ?, ?, ?) RETURNING "+playerColumns,
		np.Name, foldName(np.Name), nullString(np.AvatarURL), nullString(np.InstagramHandle))
	if err != nil {
		return nil, fmt.Errorf("failed to insert player %q: %w", np.Name, err)
	}
	log.FromContext(ctx).Debug("Inserted player", "id", row.ID, "name", row.Name)
	p := row.toPlayer()
	return &p, nil
}

func (s *store) UpdatePlayer(ctx context.Context, id int64, u PlayerUpdate) (*Player, error) {
	if u.Empty() {
		return s.GetPlayer(ctx, id)
	}
	var sets []string
	var args []any
	if u.Name != nil {
		sets = append(sets, "name = ?", "name_search = ?")
		args = append(args, *u.Name, foldName(*u.Name))
	}
	if u.Points != nil {
		sets = append(sets, "points = ?")
		args = append(args, *u.Points)
	}
	switch {
	case u.ClearAvatar:
		sets = append(sets, "avatar_url = NULL")
	case u.AvatarURL != nil:
		sets = append(sets, "avatar_url = ?")
		args = append(args, *u.AvatarURL)
	}
	switch {
	case u.ClearInstagram:
		sets = append(sets, "instagram_handle = NULL")
	case u.InstagramHandle != nil:
		sets = append(sets, "instagram_handle = ?")
		args = append(args, *u.InstagramHandle)
	}
	args = append(args, id)

	var row playerRow
	query := "UPDATE players SET " + strings.Join(sets, ", ") + " WHERE id = ? RETURNING " + playerColumns
	err := s.db.GetContext(ctx, &row, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("player %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update player %d: %w", id, err)
	}
	p := row.toPlayer()
	return &p, nil
}

func (s *store) ListCourts(ctx context.Context) ([]Court, error) {
	var rows []courtRow
	if err := s.db.SelectContext(ctx, &rows, "SELECT "+courtColumns+" FROM courts ORDER BY id ASC"); err != nil {
		return nil, fmt.Errorf("failed to list courts: %w", err)
	}
	return mapCourts(rows), nil
}

func (s *store) GetCourt(ctx context.Context, id int64) (*Court, error) {
	var row courtRow
	err := s.db.GetContext(ctx, &row, "SELECT "+courtColumns+" FROM courts WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("court %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get court %d: %w", id, err)
	}
	c := row.toCourt()
	return &c, nil
}

// UpsertCourts inserts courts that are not yet present. Courts with an ID are
// matched on it and overwritten; courts without one are matched by name.
func (s *store) UpsertCourts(ctx context.Context, courts []Court) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, c := range courts {
		if c.ID != 0 {
			_, err = tx.ExecContext(ctx, `
				INSERT INTO courts (id, name, type) VALUES (?, ?, ?)
				ON CONFLICT(id) DO UPDATE SET name = excluded.name, type = excluded.type`,
				c.ID, c.Name, string(c.Type))
		} else {
			_, err = tx.ExecContext(ctx, `
				INSERT INTO courts (name, type)
				SELECT ?, ? WHERE NOT EXISTS (SELECT 1 FROM courts WHERE name = ?)`,
				c.Name, string(c.Type), c.Name)
		}
		if err != nil {
			return fmt.Errorf("failed to upsert court %q: %w", c.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit courts: %w", err)
	}
	log.FromContext(ctx).Debug("Upserted courts", "count", len(courts))
	return nil
}

func (s *store) ListMatches(ctx context.Context, page Page) ([]Match, error) {
	limit, offset := page.limitOffset()
	var rows []matchRow
	err := s.db.SelectContext(ctx, &rows,
		"SELECT "+matchColumns+" FROM matches ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?",
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return mapMatches(rows), nil
}

func (s *store) RecordMatch(ctx context.Context, m NewMatch, winPoints int) (*Match, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	playedAt := m.PlayedAt.Unix()
	if err := touchPlayer(ctx, tx, m.WinnerID, winPoints, m.CourtID, playedAt); err != nil {
		return nil, err
	}
	if err := touchPlayer(ctx, tx, m.LoserID, 0, m.CourtID, playedAt); err != nil {
		return nil, err
	}

	var row matchRow
	err = tx.GetContext(ctx, &row,
		"INSERT INTO matches (winner_id, loser_id, sport, court_id, created_at) VALUES (?, ?, ?, ?, ?) RETURNING "+matchColumns,
		m.WinnerID, m.LoserID, string(m.Sport), m.CourtID, playedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert match: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit match: %w", err)
	}
	log.FromContext(ctx).Debug("Recorded match", "id", row.ID, "winner", m.WinnerID, "loser", m.LoserID)
	match := row.toMatch()
	return &match, nil
}

// touchPlayer adds points to a player and stamps their last match.
func touchPlayer(ctx context.Context, tx *sqlx.Tx, playerID int64, points int, courtID, playedAt int64) error {
	res, err := tx.ExecContext(ctx,
		"UPDATE players SET points = points + ?, last_match_at = ?, last_court_id = ? WHERE id = ?",
		points, playedAt, courtID, playerID)
	if err != nil {
		return fmt.Errorf("failed to update player %d: %w", playerID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update player %d: %w", playerID, err)
	}
	if n == 0 {
		return fmt.Errorf("player %d: %w", playerID, ErrNotFound)
	}
	return nil
}

func (s *store) ListEvents(ctx context.Context) ([]Event, error) {
	var rows []eventRow
	err := s.db.SelectContext(ctx, &rows,
		"SELECT "+eventColumns+" FROM events ORDER BY start_date_time ASC, id ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return mapEvents(rows), nil
}

func (s *store) CreateEvent(ctx context.Context, e NewEvent) (*Event, error) {
	var row eventRow
	err := s.db.GetContext(ctx, &row,
		"INSERT INTO events (name, start_date_time, end_date_time, organizer, created_at) VALUES (?, ?, ?, ?, ?) RETURNING "+eventColumns,
		e.Name, e.StartDateTime.Unix(), e.EndDateTime.Unix(), e.Organizer, e.CreatedAt.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to insert event %q: %w", e.Name, err)
	}
	event := row.toEvent()
	return &event, nil
}

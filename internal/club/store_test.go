package club_test

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/mauv0809/court-leaderboard/internal/club"
	"github.com/mauv0809/court-leaderboard/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (club.ClubStore, *sqlx.DB, func()) {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)

	return club.New(db), db, teardown
}

func seedCourt(t *testing.T, store club.ClubStore, name string, sport club.Sport) int64 {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, store.UpsertCourts(ctx, []club.Court{{Name: name, Type: sport}}))
	courts, err := store.ListCourts(ctx)
	require.NoError(t, err)
	for _, c := range courts {
		if c.Name == name {
			return c.ID
		}
	}
	t.Fatalf("court %q not found after upsert", name)
	return 0
}

func seedPlayer(t *testing.T, db *sqlx.DB, name string, points int) int64 {
	t.Helper()
	res, err := db.Exec("INSERT INTO players (name, points) VALUES (?, ?)", name, points)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

func strPtr(s string) *string { return &s }

func TestCreateAndGetPlayer(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	created, err := store.CreatePlayer(ctx, club.NewPlayer{Name: "Ana", InstagramHandle: strPtr("ana.padel")})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Ana", created.Name)
	assert.Equal(t, 0, created.Points)
	assert.Nil(t, created.AvatarURL)
	assert.Nil(t, created.LastMatchAt)
	require.NotNil(t, created.InstagramHandle)
	assert.Equal(t, "ana.padel", *created.InstagramHandle)

	got, err := store.GetPlayer(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = store.GetPlayer(ctx, 999)
	assert.ErrorIs(t, err, club.ErrNotFound)
}

func TestListPlayers_OrderingAndPagination(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	a := seedPlayer(t, db, "A", 10)
	b := seedPlayer(t, db, "B", 30)
	c := seedPlayer(t, db, "C", 10)
	d := seedPlayer(t, db, "D", 0)

	all, err := store.ListPlayers(ctx, club.PlayerQuery{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	var ids []int64
	for _, p := range all {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []int64{b, a, c, d}, ids, "points descending, ties broken by id")

	page2, err := store.ListPlayers(ctx, club.PlayerQuery{Page: club.Page{Number: 2, Size: 2}})
	require.NoError(t, err)
	require.Len(t, page2, 2)
	assert.Equal(t, c, page2[0].ID)
	assert.Equal(t, d, page2[1].ID)

	beyond, err := store.ListPlayers(ctx, club.PlayerQuery{Page: club.Page{Number: 5, Size: 2}})
	require.NoError(t, err)
	assert.NotNil(t, beyond)
	assert.Empty(t, beyond)

	unsized, err := store.ListPlayers(ctx, club.PlayerQuery{Page: club.Page{Number: 1}})
	require.NoError(t, err)
	assert.Len(t, unsized, 4, "without a limit the first page holds everyone")

	unsized, err = store.ListPlayers(ctx, club.PlayerQuery{Page: club.Page{Number: 3}})
	require.NoError(t, err)
	assert.NotNil(t, unsized)
	assert.Empty(t, unsized, "later pages without a limit are past the end")
}

func TestListPlayers_Search(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	seedPlayer(t, db, "Maria Lopez", 5)
	seedPlayer(t, db, "MARIO", 3)
	seedPlayer(t, db, "Jon", 1)
	seedPlayer(t, db, "100% Jon", 0)

	got, err := store.ListPlayers(ctx, club.PlayerQuery{Search: "mari"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Maria Lopez", got[0].Name)
	assert.Equal(t, "MARIO", got[1].Name)

	got, err = store.ListPlayers(ctx, club.PlayerQuery{Search: "%"})
	require.NoError(t, err)
	require.Len(t, got, 1, "wildcards in the search term are matched literally")
	assert.Equal(t, "100% Jon", got[0].Name)

	got, err = store.ListPlayers(ctx, club.PlayerQuery{Search: "nobody"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListPlayers_SearchNonASCII(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	emile, err := store.CreatePlayer(ctx, club.NewPlayer{Name: "Émile"})
	require.NoError(t, err)
	_, err = store.CreatePlayer(ctx, club.NewPlayer{Name: "Alice"})
	require.NoError(t, err)

	for _, q := range []string{"Émile", "émile", "ÉMILE", "mil"} {
		got, err := store.ListPlayers(ctx, club.PlayerQuery{Search: q})
		require.NoError(t, err)
		require.Len(t, got, 1, q)
		assert.Equal(t, emile.ID, got[0].ID, q)
	}

	renamed := "Søren ÅBERG"
	_, err = store.UpdatePlayer(ctx, emile.ID, club.PlayerUpdate{Name: &renamed})
	require.NoError(t, err)

	got, err := store.ListPlayers(ctx, club.PlayerQuery{Search: "åberg"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Søren ÅBERG", got[0].Name)

	got, err = store.ListPlayers(ctx, club.PlayerQuery{Search: "émile"})
	require.NoError(t, err)
	assert.Empty(t, got, "the old name no longer matches after a rename")
}

func TestUpdatePlayer(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	p, err := store.CreatePlayer(ctx, club.NewPlayer{
		Name:            "Bo",
		AvatarURL:       strPtr("/assets/avatars/bo.png"),
		InstagramHandle: strPtr("bo"),
	})
	require.NoError(t, err)

	points := 42
	updated, err := store.UpdatePlayer(ctx, p.ID, club.PlayerUpdate{
		Name:        strPtr("Bo Renamed"),
		Points:      &points,
		ClearAvatar: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Bo Renamed", updated.Name)
	assert.Equal(t, 42, updated.Points)
	assert.Nil(t, updated.AvatarURL)
	require.NotNil(t, updated.InstagramHandle, "untouched fields keep their value")
	assert.Equal(t, "bo", *updated.InstagramHandle)

	updated, err = store.UpdatePlayer(ctx, p.ID, club.PlayerUpdate{ClearInstagram: true})
	require.NoError(t, err)
	assert.Nil(t, updated.InstagramHandle)

	_, err = store.UpdatePlayer(ctx, 999, club.PlayerUpdate{Name: strPtr("ghost")})
	assert.ErrorIs(t, err, club.ErrNotFound)
}

func TestRecordMatch_AwardsWinnerAndStampsBothPlayers(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	court := seedCourt(t, store, "Court 1", club.SportPadel)
	winner := seedPlayer(t, db, "Winner", 20)
	loser := seedPlayer(t, db, "Loser", 5)
	playedAt := time.Date(2024, 5, 1, 18, 30, 0, 0, time.UTC)

	match, err := store.RecordMatch(ctx, club.NewMatch{
		WinnerID: winner,
		LoserID:  loser,
		Sport:    club.SportPadel,
		CourtID:  court,
		PlayedAt: playedAt,
	}, 10)
	require.NoError(t, err)
	assert.NotZero(t, match.ID)
	assert.Equal(t, winner, match.WinnerID)
	assert.Equal(t, loser, match.LoserID)
	assert.Equal(t, club.SportPadel, match.Sport)
	assert.Equal(t, court, match.CourtID)
	assert.True(t, playedAt.Equal(match.CreatedAt))

	w, err := store.GetPlayer(ctx, winner)
	require.NoError(t, err)
	l, err := store.GetPlayer(ctx, loser)
	require.NoError(t, err)

	assert.Equal(t, 30, w.Points)
	assert.Equal(t, 5, l.Points)
	for _, p := range []*club.Player{w, l} {
		require.NotNil(t, p.LastMatchAt)
		assert.True(t, playedAt.Equal(*p.LastMatchAt))
		require.NotNil(t, p.LastCourtID)
		assert.Equal(t, court, *p.LastCourtID)
	}
}

func TestRecordMatch_RollsBackWhenPlayerMissing(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	court := seedCourt(t, store, "Court 1", club.SportTennis)
	winner := seedPlayer(t, db, "Winner", 20)

	_, err := store.RecordMatch(ctx, club.NewMatch{
		WinnerID: winner,
		LoserID:  999,
		Sport:    club.SportTennis,
		CourtID:  court,
		PlayedAt: time.Now(),
	}, 10)
	require.ErrorIs(t, err, club.ErrNotFound)

	w, err := store.GetPlayer(ctx, winner)
	require.NoError(t, err)
	assert.Equal(t, 20, w.Points, "winner points must be untouched after rollback")
	assert.Nil(t, w.LastMatchAt)

	matches, err := store.ListMatches(ctx, club.Page{})
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestListMatches_NewestFirst(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	court := seedCourt(t, store, "Court 1", club.SportBadminton)
	p1 := seedPlayer(t, db, "P1", 0)
	p2 := seedPlayer(t, db, "P2", 0)
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	var recorded []int64
	for i := 0; i < 3; i++ {
		m, err := store.RecordMatch(ctx, club.NewMatch{
			WinnerID: p1, LoserID: p2, Sport: club.SportBadminton, CourtID: court,
			PlayedAt: base.Add(time.Duration(i) * time.Hour),
		}, 10)
		require.NoError(t, err)
		recorded = append(recorded, m.ID)
	}

	matches, err := store.ListMatches(ctx, club.Page{})
	require.NoError(t, err)
	require.Len(t, matches, 3)
	assert.Equal(t, recorded[2], matches[0].ID)
	assert.Equal(t, recorded[0], matches[2].ID)

	page, err := store.ListMatches(ctx, club.Page{Number: 2, Size: 2})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, recorded[0], page[0].ID)

	winner, err := store.GetPlayer(ctx, p1)
	require.NoError(t, err)
	assert.Equal(t, 30, winner.Points)
}

func TestUpsertCourts(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	courts := []club.Court{
		{Name: "Center", Type: club.SportPadel},
		{Name: "Side", Type: club.SportTennis},
	}
	require.NoError(t, store.UpsertCourts(ctx, courts))
	require.NoError(t, store.UpsertCourts(ctx, courts), "re-running the upsert must not duplicate courts")

	got, err := store.ListCourts(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Center", got[0].Name)
	assert.Equal(t, club.SportPadel, got[0].Type)

	require.NoError(t, store.UpsertCourts(ctx, []club.Court{{ID: got[1].ID, Name: "Side", Type: club.SportBadminton}}))
	side, err := store.GetCourt(ctx, got[1].ID)
	require.NoError(t, err)
	assert.Equal(t, club.SportBadminton, side.Type)

	_, err = store.GetCourt(ctx, 999)
	assert.ErrorIs(t, err, club.ErrNotFound)
}

func TestCreateAndListEvents(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	later := time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC)
	sooner := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	_, err := store.CreateEvent(ctx, club.NewEvent{
		Name: "Summer Cup", StartDateTime: later, EndDateTime: later.Add(4 * time.Hour),
		Organizer: "Club", CreatedAt: sooner,
	})
	require.NoError(t, err)
	created, err := store.CreateEvent(ctx, club.NewEvent{
		Name: "Spring Social", StartDateTime: sooner, EndDateTime: sooner.Add(2 * time.Hour),
		Organizer: "Ana", CreatedAt: sooner,
	})
	require.NoError(t, err)
	assert.Equal(t, "Spring Social", created.Name)
	assert.True(t, sooner.Equal(created.StartDateTime))

	events, err := store.ListEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "Spring Social", events[0].Name)
	assert.Equal(t, "Summer Cup", events[1].Name)
}

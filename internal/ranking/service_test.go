package ranking_test

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/mauv0809/court-leaderboard/internal/assets"
	"github.com/mauv0809/court-leaderboard/internal/club"
	"github.com/mauv0809/court-leaderboard/internal/database"
	"github.com/mauv0809/court-leaderboard/internal/metrics"
	"github.com/mauv0809/court-leaderboard/internal/pubsub"
	"github.com/mauv0809/court-leaderboard/internal/ranking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	svc     *ranking.Service
	db      *sqlx.DB
	store   club.ClubStore
	assets  *assets.MockStore
	metrics *metrics.Mock
	pubsub  *pubsub.MockPubSubClient
}

// setupService wires a Service over an in-memory database.
func setupService(t *testing.T) (*testEnv, func()) {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)

	env := &testEnv{
		db:      db,
		store:   club.New(db),
		assets:  assets.NewMock(),
		metrics: metrics.NewMock(),
		pubsub:  pubsub.NewMock(),
	}
	env.svc = ranking.New(env.store, env.assets, env.metrics,
		ranking.WithPublisher(env.pubsub, "match-recorded"),
		ranking.WithClock(func() time.Time { return fixedNow }),
	)
	return env, teardown
}

func (e *testEnv) seedCourt(t *testing.T, id int64, name string, sport club.Sport) {
	t.Helper()
	require.NoError(t, e.store.UpsertCourts(context.Background(), []club.Court{{ID: id, Name: name, Type: sport}}))
}

func (e *testEnv) seedPlayer(t *testing.T, id int64, name string, points int) {
	t.Helper()
	_, err := e.db.Exec("INSERT INTO players (id, name, points) VALUES (?, ?, ?)", id, name, points)
	require.NoError(t, err)
}

func strPtr(s string) *string { return &s }

func assertValidation(t *testing.T, err error, message string) {
	t.Helper()
	var verr *ranking.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, message, verr.Message)
}

func TestRecordMatch_Scenario(t *testing.T) {
	env, teardown := setupService(t)
	defer teardown()
	ctx := context.Background()

	env.seedCourt(t, 3, "Center", club.SportPadel)
	env.seedPlayer(t, 1, "Ana", 20)
	env.seedPlayer(t, 2, "Bo", 5)

	match, err := env.svc.RecordMatch(ctx, ranking.RecordMatchInput{WinnerID: 1, LoserID: 2, Sport: "padel", CourtID: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(3), match.CourtID)
	assert.True(t, fixedNow.Equal(match.CreatedAt))

	winner, err := env.store.GetPlayer(ctx, 1)
	require.NoError(t, err)
	loser, err := env.store.GetPlayer(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 30, winner.Points)
	assert.Equal(t, 5, loser.Points)
	require.NotNil(t, loser.LastMatchAt)
	assert.True(t, fixedNow.Equal(*loser.LastMatchAt))

	assert.Equal(t, 1, env.metrics.MatchesRecorded())
	assert.Equal(t, ranking.WinPoints, env.metrics.PointsAwarded())

	require.Len(t, env.pubsub.SendMessageCalls, 1)
	call := env.pubsub.SendMessageCalls[0]
	assert.Equal(t, "match-recorded", call.Topic)
	event, ok := call.Data.(pubsub.MatchRecordedEvent)
	require.True(t, ok, "published data should be a MatchRecordedEvent")
	assert.Equal(t, "Ana", event.WinnerName)
	assert.Equal(t, 30, event.WinnerPoints)
	assert.Equal(t, "Bo", event.LoserName)
	assert.Equal(t, "Center", event.CourtName)
	assert.Equal(t, ranking.WinPoints, event.PointsAwarded)
}

func TestRecordMatch_Validation(t *testing.T) {
	env, teardown := setupService(t)
	defer teardown()
	ctx := context.Background()

	cases := []struct {
		name    string
		input   ranking.RecordMatchInput
		message string
	}{
		{"missing winner", ranking.RecordMatchInput{LoserID: 2, Sport: "padel", CourtID: 3}, "Missing required fields"},
		{"missing sport", ranking.RecordMatchInput{WinnerID: 1, LoserID: 2, CourtID: 3}, "Missing required fields"},
		{"missing court", ranking.RecordMatchInput{WinnerID: 1, LoserID: 2, Sport: "padel"}, "Missing required fields"},
		{"unknown sport", ranking.RecordMatchInput{WinnerID: 1, LoserID: 2, Sport: "squash", CourtID: 3}, "Invalid sport"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.svc.RecordMatch(ctx, tc.input)
			assertValidation(t, err, tc.message)
		})
	}
	assert.Empty(t, env.pubsub.SendMessageCalls)
}

func TestRecordMatch_UnknownPlayerLeavesNoWrites(t *testing.T) {
	env, teardown := setupService(t)
	defer teardown()
	ctx := context.Background()

	env.seedCourt(t, 3, "Center", club.SportPadel)
	env.seedPlayer(t, 1, "Ana", 20)

	_, err := env.svc.RecordMatch(ctx, ranking.RecordMatchInput{WinnerID: 1, LoserID: 99, Sport: "padel", CourtID: 3})
	require.ErrorIs(t, err, club.ErrNotFound)

	ana, err := env.store.GetPlayer(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 20, ana.Points)
	assert.Equal(t, 0, env.metrics.MatchesRecorded())
	assert.Empty(t, env.pubsub.SendMessageCalls)
}

func TestRecordMatch_PublishFailureDoesNotFail(t *testing.T) {
	env, teardown := setupService(t)
	defer teardown()

	env.seedCourt(t, 3, "Center", club.SportTennis)
	env.seedPlayer(t, 1, "Ana", 0)
	env.seedPlayer(t, 2, "Bo", 0)
	env.pubsub.SendMessageFunc = func(string, any) error { return errors.New("pubsub down") }

	_, err := env.svc.RecordMatch(context.Background(), ranking.RecordMatchInput{WinnerID: 1, LoserID: 2, Sport: "tennis", CourtID: 3})
	require.NoError(t, err)
	assert.Len(t, env.pubsub.SendMessageCalls, 1)
}

func TestRecordMatch_WithoutPublisher(t *testing.T) {
	store := club.NewMock()
	svc := ranking.New(store, assets.NewMock(), metrics.NewMock())

	match, err := svc.RecordMatch(context.Background(), ranking.RecordMatchInput{WinnerID: 1, LoserID: 2, Sport: "badminton", CourtID: 4})
	require.NoError(t, err)
	assert.Equal(t, club.SportBadminton, match.Sport)
	require.Len(t, store.RecordMatchCalls, 1)
	assert.Equal(t, ranking.WinPoints, store.RecordMatchCalls[0].WinPoints)
}

func TestCreatePlayer(t *testing.T) {
	env, teardown := setupService(t)
	defer teardown()
	ctx := context.Background()

	_, err := env.svc.CreatePlayer(ctx, ranking.CreatePlayerInput{Name: "   "})
	assertValidation(t, err, "Name is required")

	players, err := env.store.ListPlayers(ctx, club.PlayerQuery{})
	require.NoError(t, err)
	assert.Empty(t, players, "a rejected player must not be stored")

	p, err := env.svc.CreatePlayer(ctx, ranking.CreatePlayerInput{
		Name:            "Ana",
		AvatarURL:       strPtr("https://example.com/ana.png"),
		InstagramHandle: strPtr("ana.padel"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana", p.Name)
	assert.Equal(t, 0, p.Points)
	require.NotNil(t, p.AvatarURL)
	assert.Equal(t, "https://example.com/ana.png", *p.AvatarURL)
	assert.Empty(t, env.assets.PutCalls, "plain URLs are stored as-is")
	assert.Equal(t, 1, env.metrics.PlayersCreated())
}

func TestCreatePlayer_UploadsEmbeddedAvatar(t *testing.T) {
	env, teardown := setupService(t)
	defer teardown()

	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("png-bytes"))
	p, err := env.svc.CreatePlayer(context.Background(), ranking.CreatePlayerInput{Name: "Ana Maria", AvatarURL: &dataURL})
	require.NoError(t, err)

	require.NotNil(t, p.AvatarURL)
	assert.True(t, strings.HasPrefix(*p.AvatarURL, "/assets/avatars/ana-maria-"), *p.AvatarURL)
	assert.True(t, strings.HasSuffix(*p.AvatarURL, ".png"))
	require.Len(t, env.assets.PutCalls, 1)
	assert.Equal(t, "image/png", env.assets.PutCalls[0].ContentType)
	assert.Equal(t, assets.PathFor(env.assets.PutCalls[0].Key), *p.AvatarURL)
	assert.Equal(t, 1, env.metrics.AvatarUploads())

	bad := "data:image/png;base64,%%%"
	_, err = env.svc.CreatePlayer(context.Background(), ranking.CreatePlayerInput{Name: "Bo", AvatarURL: &bad})
	assertValidation(t, err, "Invalid avatar image")
}

func TestUpdatePlayer(t *testing.T) {
	env, teardown := setupService(t)
	defer teardown()
	ctx := context.Background()

	p, err := env.svc.CreatePlayer(ctx, ranking.CreatePlayerInput{
		Name:            "Ana",
		AvatarURL:       strPtr("https://example.com/a.png"),
		InstagramHandle: strPtr("ana"),
	})
	require.NoError(t, err)

	_, err = env.svc.UpdatePlayer(ctx, p.ID, ranking.UpdatePlayerInput{})
	assertValidation(t, err, "No fields to update")

	_, err = env.svc.UpdatePlayer(ctx, p.ID, ranking.UpdatePlayerInput{Name: strPtr("")})
	assertValidation(t, err, "Name cannot be empty")

	points := 77
	updated, err := env.svc.UpdatePlayer(ctx, p.ID, ranking.UpdatePlayerInput{
		Points:          &points,
		AvatarURL:       ranking.Nullable{Set: true},
		InstagramHandle: ranking.Nullable{Set: true, Value: strPtr("")},
	})
	require.NoError(t, err)
	assert.Equal(t, 77, updated.Points)
	assert.Equal(t, "Ana", updated.Name)
	assert.Nil(t, updated.AvatarURL)
	assert.Nil(t, updated.InstagramHandle)

	dataURL := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte("jpeg"))
	updated, err = env.svc.UpdatePlayer(ctx, p.ID, ranking.UpdatePlayerInput{AvatarURL: ranking.Nullable{Set: true, Value: &dataURL}})
	require.NoError(t, err)
	require.NotNil(t, updated.AvatarURL)
	assert.True(t, strings.HasPrefix(*updated.AvatarURL, "/assets/avatars/ana-"), *updated.AvatarURL)
	assert.True(t, strings.HasSuffix(*updated.AvatarURL, ".jpg"))

	_, err = env.svc.UpdatePlayer(ctx, 999, ranking.UpdatePlayerInput{Name: strPtr("Ghost")})
	assert.ErrorIs(t, err, club.ErrNotFound)

	_, err = env.svc.UpdatePlayer(ctx, 999, ranking.UpdatePlayerInput{AvatarURL: ranking.Nullable{Set: true, Value: &dataURL}})
	assert.ErrorIs(t, err, club.ErrNotFound)
}

func TestFindPlayer(t *testing.T) {
	env, teardown := setupService(t)
	defer teardown()
	ctx := context.Background()

	env.seedPlayer(t, 1, "Alice", 50)
	env.seedPlayer(t, 2, "Bob", 70)
	env.seedPlayer(t, 3, "Malice", 10)

	for _, q := range []string{"lic", "LIC", "alice"} {
		p, rank, err := env.svc.FindPlayer(ctx, q)
		require.NoError(t, err, q)
		assert.Equal(t, "Alice", p.Name, q)
		assert.Equal(t, 2, rank, q)
	}

	_, _, err := env.svc.FindPlayer(ctx, "zed")
	assert.ErrorIs(t, err, club.ErrNotFound)

	_, _, err = env.svc.FindPlayer(ctx, " ")
	assertValidation(t, err, "Name is required")
}

func TestLeaderboard(t *testing.T) {
	env, teardown := setupService(t)
	defer teardown()

	env.seedCourt(t, 1, "Center", club.SportPadel)
	env.seedCourt(t, 2, "Hall", club.SportBadminton)
	env.seedPlayer(t, 1, "Low", 1)
	env.seedPlayer(t, 2, "High", 9)

	lb, err := env.svc.Leaderboard(context.Background())
	require.NoError(t, err)
	require.Len(t, lb.Players, 2)
	assert.Equal(t, "High", lb.Players[0].Name)
	assert.Len(t, lb.Courts, 2)

	top, err := env.svc.TopPlayers(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "High", top[0].Name)
}

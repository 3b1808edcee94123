package database

import (
	"testing"

	"github.com/pressly/goose/v3"
	goosedb "github.com/pressly/goose/v3/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDB_CreatesTables(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "")
	require.NoError(t, err, "InitDB should not return an error")
	defer teardown()

	for _, table := range []string{"players", "courts", "matches", "events"} {
		var name string
		err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, "Querying for %s table should not produce an error", table)
		assert.Equal(t, table, name, "The '%s' table should be created", table)
	}
}

func TestInitDB_EnforcesForeignKeys(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "")
	require.NoError(t, err)
	defer teardown()

	var enabled int
	require.NoError(t, db.Get(&enabled, "PRAGMA foreign_keys"))
	assert.Equal(t, 1, enabled)

	_, err = db.Exec("INSERT INTO matches (winner_id, loser_id, sport, court_id, created_at) VALUES (1, 2, 'padel', 3, 0)")
	assert.Error(t, err, "a match referencing unknown players should be rejected")
}

func TestInitDB_RejectsUnknownSport(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "")
	require.NoError(t, err)
	defer teardown()

	_, err = db.Exec("INSERT INTO courts (name, type) VALUES ('Court 1', 'squash')")
	assert.Error(t, err)
}

func TestInitDB_IsIdempotent(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "")
	require.NoError(t, err)
	defer teardown()

	require.NoError(t, migrate(db, "sqlite3"))
}

func TestFoldPlayerNames(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "")
	require.NoError(t, err)
	defer teardown()

	_, err = db.Exec("INSERT INTO players (id, name) VALUES (1, 'ÉMILE Zoë'), (2, 'Alice')")
	require.NoError(t, err)
	_, err = db.Exec("INSERT INTO players (id, name, name_search) VALUES (3, 'Bob', 'bob')")
	require.NoError(t, err)

	require.NoError(t, foldPlayerNames(db))

	var folded []string
	require.NoError(t, db.Select(&folded, "SELECT name_search FROM players ORDER BY id"))
	assert.Equal(t, []string{"émile zoë", "alice", "bob"}, folded)
}

func TestTursoDialectIsKnown(t *testing.T) {
	require.NoError(t, goose.SetDialect(string(goosedb.DialectTurso)))
	require.NoError(t, goose.SetDialect(string(goose.DialectSQLite3)))
}

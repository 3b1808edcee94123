package database

import (
	"embed"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	goosedb "github.com/pressly/goose/v3/database"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

//go:embed migrations/*.sql
var migrations embed.FS

const migrationsDir = "migrations"

// InitDB opens the database and applies all pending migrations.
// An empty primaryURL opens a local SQLite file at dbPath (":memory:" is
// allowed); otherwise dbPath is ignored and the remote Turso database is used.
// The returned teardown closes the connection.
func InitDB(dbPath string, primaryURL string, authToken string) (*sqlx.DB, func(), error) {
	var (
		db      *sqlx.DB
		dialect goose.Dialect
		err     error
	)
	if primaryURL == "" {
		log.Info("Initializing local-only SQLite database", "path", dbPath)
		db, err = sqlx.Open("sqlite3", localDSN(dbPath))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open local database: %w", err)
		}
		// SQLite serializes writers anyway, and an in-memory database only
		// exists for the connection that created it.
		db.SetMaxOpenConns(1)
		dialect = goose.DialectSQLite3
	} else {
		log.Info("Initializing Turso database", "url", primaryURL)
		db, err = sqlx.Open("libsql", primaryURL+"?authToken="+authToken)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open db %s: %w", primaryURL, err)
		}
		dialect = goosedb.DialectTurso
	}

	teardown := func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", "error", err)
		}
	}

	if err := db.Ping(); err != nil {
		teardown()
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := migrate(db, dialect); err != nil {
		teardown()
		return nil, nil, err
	}
	if err := foldPlayerNames(db); err != nil {
		teardown()
		return nil, nil, err
	}
	log.Info("Database initialized successfully")
	return db, teardown, nil
}

func localDSN(dbPath string) string {
	return "file:" + dbPath + "?_foreign_keys=on&_busy_timeout=5000"
}

func migrate(db *sqlx.DB, dialect goose.Dialect) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(log.Default())
	if err := goose.SetDialect(string(dialect)); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}
	if err := goose.Up(db.DB, migrationsDir); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// foldPlayerNames fills name_search for rows that predate the column. SQL
// LOWER only folds ASCII, so the folding happens here.
func foldPlayerNames(db *sqlx.DB) error {
	var rows []struct {
		ID   int64  `db:"id"`
		Name string `db:"name"`
	}
	if err := db.Select(&rows, "SELECT id, name FROM players WHERE name_search IS NULL"); err != nil {
		return fmt.Errorf("failed to load unfolded player names: %w", err)
	}
	for _, row := range rows {
		if _, err := db.Exec("UPDATE players SET name_search = ? WHERE id = ?", strings.ToLower(row.Name), row.ID); err != nil {
			return fmt.Errorf("failed to fold name of player %d: %w", row.ID, err)
		}
	}
	if len(rows) > 0 {
		log.Info("Folded player names for search", "count", len(rows))
	}
	return nil
}

// Package sqlite implements the repository interfaces using SQLite as the
// storage backend.
//
// We use modernc.org/sqlite (a pure Go translation of SQLite) rather than
// the CGo driver, so the binary builds and cross-compiles without a C
// toolchain. Skill lists are stored as JSON text columns; SQLite has no
// native array type, and the lists are only ever read back whole.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	// Registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and implements every repository
// interface. One type for all collections keeps the wiring in server.go
// simple: a single *DB satisfies seven interfaces.
type DB struct {
	conn *sql.DB
}

// New opens (or creates) the SQLite database at dbPath and runs the
// schema migrations. Use ":memory:" for tests.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL allows concurrent reads while a write is in progress; this is
	// a web server, so reads and writes overlap constantly.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool. Always deferred wherever New is called.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the schema. CREATE TABLE IF NOT EXISTS keeps this safe
// to run on every startup.
//
// The UNIQUE index on applications(candidate_id, internship_id) is what
// actually enforces "at most one application per pair"; the service-level
// existence check is just an optimization that produces a friendlier
// message. Same pattern for saved_internships.
func (db *DB) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			role          TEXT NOT NULL,
			name          TEXT NOT NULL,
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			profile_image TEXT NOT NULL DEFAULT '',
			created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS candidate_profiles (
			id         TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL UNIQUE REFERENCES users(id),
			skills     TEXT NOT NULL DEFAULT '[]',
			education  TEXT NOT NULL DEFAULT '',
			experience TEXT NOT NULL DEFAULT '',
			resume_url TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS employer_profiles (
			id          TEXT PRIMARY KEY,
			user_id     TEXT NOT NULL UNIQUE REFERENCES users(id),
			company     TEXT NOT NULL DEFAULT '',
			industry    TEXT NOT NULL DEFAULT '',
			website     TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS internships (
			id              TEXT PRIMARY KEY,
			company_id      TEXT NOT NULL REFERENCES users(id),
			title           TEXT NOT NULL,
			description     TEXT NOT NULL DEFAULT '',
			required_skills TEXT NOT NULL DEFAULT '[]',
			location        TEXT NOT NULL DEFAULT '',
			stipend         TEXT NOT NULL DEFAULT '',
			duration        TEXT NOT NULL DEFAULT '',
			deadline        DATETIME,
			posted_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			created_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_internships_company_id ON internships(company_id)`,
		`CREATE TABLE IF NOT EXISTS applications (
			id              TEXT PRIMARY KEY,
			candidate_id    TEXT NOT NULL REFERENCES users(id),
			internship_id   TEXT NOT NULL REFERENCES internships(id),
			status          TEXT NOT NULL DEFAULT 'Pending',
			cover_letter    TEXT NOT NULL DEFAULT '',
			resume_url      TEXT NOT NULL DEFAULT '',
			additional_info TEXT NOT NULL DEFAULT '',
			created_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_applications_pair
			ON applications(candidate_id, internship_id)`,
		`CREATE TABLE IF NOT EXISTS saved_internships (
			id            TEXT PRIMARY KEY,
			user_id       TEXT NOT NULL REFERENCES users(id),
			internship_id TEXT NOT NULL REFERENCES internships(id),
			created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_saved_internships_pair
			ON saved_internships(user_id, internship_id)`,
		`CREATE TABLE IF NOT EXISTS messages (
			id             TEXT PRIMARY KEY,
			sender_id      TEXT NOT NULL REFERENCES users(id),
			receiver_id    TEXT NOT NULL REFERENCES users(id),
			application_id TEXT NOT NULL REFERENCES applications(id),
			body           TEXT NOT NULL,
			read           INTEGER NOT NULL DEFAULT 0,
			created_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_sender_id ON messages(sender_id)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_receiver_id ON messages(receiver_id)`,
	}

	for _, stmt := range stmts {
		if _, err := db.conn.Exec(stmt); err != nil {
			return fmt.Errorf("migrating schema: %w", err)
		}
	}
	return nil
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure.
// modernc.org/sqlite does not export a typed error for this, so we match
// on the SQLite error text.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// encodeSkills serializes a skill list to its JSON column representation.
// nil encodes as "[]" so the column never holds SQL NULL.
func encodeSkills(skills []string) (string, error) {
	if skills == nil {
		skills = []string{}
	}
	b, err := json.Marshal(skills)
	if err != nil {
		return "", fmt.Errorf("encoding skills: %w", err)
	}
	return string(b), nil
}

func decodeSkills(raw string) ([]string, error) {
	if raw == "" {
		return []string{}, nil
	}
	var skills []string
	if err := json.Unmarshal([]byte(raw), &skills); err != nil {
		return nil, fmt.Errorf("decoding skills: %w", err)
	}
	return skills, nil
}

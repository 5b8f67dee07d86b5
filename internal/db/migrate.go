package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies the schema. Statements are idempotent; ALTER TABLE
// additions that already ran surface as "duplicate column name" and are
// tolerated so the set can be re-run on every start.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS assignments (
		id         TEXT PRIMARY KEY,
		owner      TEXT NOT NULL,
		subject    TEXT NOT NULL,
		deadline   TEXT NOT NULL,
		difficulty INTEGER NOT NULL CHECK(difficulty BETWEEN 1 AND 5),
		risk       INTEGER NOT NULL CHECK(risk IN (1, 3, 5)),
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_assignments_owner ON assignments(owner)`,
	`CREATE INDEX IF NOT EXISTS idx_assignments_owner_deadline ON assignments(owner, deadline)`,
}

package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent; ALTER
// TABLE additions tolerate re-runs via the duplicate-column check.
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
	`CREATE TABLE IF NOT EXISTS cases (
		id           TEXT PRIMARY KEY,
		owner        TEXT NOT NULL,
		case_number  TEXT NOT NULL,
		client_name  TEXT NOT NULL DEFAULT '',
		status       TEXT NOT NULL DEFAULT 'open'
		             CHECK(status IN ('open','closed','archived')),
		next_hearing TEXT,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_cases_owner ON cases(owner)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_cases_owner_number ON cases(owner, case_number)`,

	`CREATE TABLE IF NOT EXISTS hearings (
		id                TEXT PRIMARY KEY,
		case_id           TEXT NOT NULL REFERENCES cases(id) ON DELETE CASCADE,
		owner             TEXT NOT NULL,
		hearing_date      TEXT NOT NULL,
		hearing_time      TEXT NOT NULL,
		timezone          TEXT NOT NULL DEFAULT 'UTC',
		duration_min      INTEGER NOT NULL DEFAULT 60 CHECK(duration_min > 0),
		start_at          TEXT NOT NULL,
		end_at            TEXT NOT NULL,
		status            TEXT NOT NULL DEFAULT 'scheduled'
		                  CHECK(status IN ('scheduled','completed','adjourned','cancelled')),
		resource_scope    TEXT NOT NULL DEFAULT '{}',
		next_hearing_date TEXT NOT NULL DEFAULT '',
		next_hearing_time TEXT NOT NULL DEFAULT '',
		override_allowed  INTEGER NOT NULL DEFAULT 0,
		override_reason   TEXT NOT NULL DEFAULT '',
		overridden_by     TEXT NOT NULL DEFAULT '',
		overridden_at     TEXT,
		override_conflicts TEXT NOT NULL DEFAULT '[]',
		created_at        TEXT NOT NULL,
		updated_at        TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_hearings_case ON hearings(case_id)`,
	`CREATE INDEX IF NOT EXISTS idx_hearings_owner_status ON hearings(owner, status)`,
	`CREATE INDEX IF NOT EXISTS idx_hearings_start ON hearings(start_at)`,

	`CREATE TABLE IF NOT EXISTS activity_log (
		id          TEXT PRIMARY KEY,
		actor       TEXT NOT NULL,
		action      TEXT NOT NULL,
		entity_type TEXT NOT NULL,
		entity_id   TEXT NOT NULL,
		detail      TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_activity_entity ON activity_log(entity_type, entity_id)`,
	`CREATE INDEX IF NOT EXISTS idx_activity_created ON activity_log(created_at)`,
}

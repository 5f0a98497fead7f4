package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Every statement is idempotent.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS sites (
		site_id    INTEGER PRIMARY KEY AUTOINCREMENT,
		code       TEXT NOT NULL UNIQUE,
		name       TEXT NOT NULL,
		domain     TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS page_groups (
		group_id    INTEGER PRIMARY KEY AUTOINCREMENT,
		site_id     INTEGER NOT NULL REFERENCES sites(site_id) ON DELETE CASCADE,
		name        TEXT NOT NULL,
		description TEXT,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_page_groups_site ON page_groups(site_id, name)`,

	`CREATE TABLE IF NOT EXISTS pages (
		page_id      INTEGER PRIMARY KEY AUTOINCREMENT,
		site_id      INTEGER NOT NULL REFERENCES sites(site_id) ON DELETE CASCADE,
		group_id     INTEGER REFERENCES page_groups(group_id) ON DELETE SET NULL,
		title        TEXT NOT NULL,
		slug         TEXT NOT NULL,
		parent_id    INTEGER REFERENCES pages(page_id) ON DELETE CASCADE,
		depth        INTEGER NOT NULL DEFAULT 0 CHECK(depth >= 0),
		menu_order   INTEGER NOT NULL DEFAULT 0,
		content      TEXT,
		is_published INTEGER NOT NULL DEFAULT 1,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_pages_menu ON pages(site_id, group_id, depth, menu_order)`,
	`CREATE INDEX IF NOT EXISTS idx_pages_parent ON pages(parent_id)`,
}

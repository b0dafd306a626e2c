package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillTicketSequences(db); err != nil {
		return fmt.Errorf("backfilling ticket sequence allocator state: %w", err)
	}
	if err := migrateRepairPositions(db); err != nil {
		return fmt.Errorf("repairing position sequences: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS boards (
		id          TEXT PRIMARY KEY,
		prefix      TEXT NOT NULL DEFAULT '',
		name        TEXT NOT NULL,
		position    INTEGER NOT NULL DEFAULT 0,
		archived_at TEXT,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_boards_prefix ON boards(prefix) WHERE prefix != ''`,

	`CREATE TABLE IF NOT EXISTS columns (
		id         TEXT PRIMARY KEY,
		board_id   TEXT NOT NULL REFERENCES boards(id) ON DELETE CASCADE,
		name       TEXT NOT NULL,
		position   INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_columns_board ON columns(board_id)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id          TEXT PRIMARY KEY,
		column_id   TEXT NOT NULL REFERENCES columns(id) ON DELETE CASCADE,
		ticket      TEXT NOT NULL DEFAULT '',
		title       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		priority    TEXT NOT NULL DEFAULT 'medium'
		            CHECK(priority IN ('low','medium','high','urgent')),
		position    INTEGER NOT NULL DEFAULT 0,
		due_date    TEXT,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_column ON tasks(column_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_ticket ON tasks(ticket)`,

	`CREATE TABLE IF NOT EXISTS ticket_sequences (
		prefix   TEXT PRIMARY KEY,
		next_seq INTEGER NOT NULL CHECK(next_seq > 0)
	)`,

	`CREATE TABLE IF NOT EXISTS comments (
		id         TEXT PRIMARY KEY,
		task_id    TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		author     TEXT NOT NULL DEFAULT '',
		body       TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_comments_task ON comments(task_id)`,

	`CREATE TABLE IF NOT EXISTS attachments (
		id         TEXT PRIMARY KEY,
		task_id    TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		file_name  TEXT NOT NULL,
		size_bytes INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_attachments_task ON attachments(task_id)`,

	`CREATE TABLE IF NOT EXISTS tags (
		id    TEXT PRIMARY KEY,
		name  TEXT NOT NULL,
		color TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_tags_name ON tags(name)`,

	`CREATE TABLE IF NOT EXISTS task_tags (
		task_id TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		tag_id  TEXT NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
		PRIMARY KEY (task_id, tag_id)
	)`,
}

// migrateBackfillTicketSequences populates (or raises) next_seq for every
// board prefix using the current max numeric suffix across its tasks, so the
// allocator never re-issues a ticket that already exists.
func migrateBackfillTicketSequences(db *sql.DB) error {
	ctx := context.Background()

	query := `INSERT INTO ticket_sequences (prefix, next_seq)
		SELECT b.prefix, COALESCE(MAX(CAST(substr(t.ticket, length(b.prefix) + 2) AS INTEGER)), 0) + 1
		FROM boards b
		LEFT JOIN columns c ON c.board_id = b.id
		LEFT JOIN tasks t ON t.column_id = c.id AND t.ticket LIKE b.prefix || '-%'
		WHERE b.prefix != ''
		GROUP BY b.prefix
		ON CONFLICT(prefix) DO UPDATE
		SET next_seq = MAX(ticket_sequences.next_seq, excluded.next_seq)`
	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("upserting ticket sequence rows: %w", err)
	}

	return nil
}

// migrateRepairPositions renumbers any parent scope whose child positions are
// not a dense 0..n-1 run. Databases written by earlier builds could leave
// gaps behind after deletes; the repair is idempotent and keeps relative
// order (position, then created_at as tie-break).
func migrateRepairPositions(db *sql.DB) error {
	ctx := context.Background()

	scopes := []struct {
		name    string
		listSQL string
		items   string
		update  string
	}{
		{
			name:    "boards",
			listSQL: `SELECT '' AS scope`, // single workspace scope
			items:   `SELECT id FROM boards ORDER BY position, created_at`,
			update:  `UPDATE boards SET position = ? WHERE id = ? AND position != ?`,
		},
		{
			name:    "columns",
			listSQL: `SELECT DISTINCT board_id FROM columns`,
			items:   `SELECT id FROM columns WHERE board_id = ? ORDER BY position, created_at`,
			update:  `UPDATE columns SET position = ? WHERE id = ? AND position != ?`,
		},
		{
			name:    "tasks",
			listSQL: `SELECT DISTINCT column_id FROM tasks`,
			items:   `SELECT id FROM tasks WHERE column_id = ? ORDER BY position, created_at`,
			update:  `UPDATE tasks SET position = ? WHERE id = ? AND position != ?`,
		},
	}

	for _, s := range scopes {
		scopeIDs, err := collectStrings(ctx, db, s.listSQL)
		if err != nil {
			return fmt.Errorf("listing %s scopes: %w", s.name, err)
		}
		for _, scope := range scopeIDs {
			var ids []string
			if scope == "" && s.name == "boards" {
				ids, err = collectStrings(ctx, db, s.items)
			} else {
				ids, err = collectStrings(ctx, db, s.items, scope)
			}
			if err != nil {
				return fmt.Errorf("listing %s in scope %q: %w", s.name, scope, err)
			}
			for i, id := range ids {
				if _, err := db.ExecContext(ctx, s.update, i, id, i); err != nil {
					return fmt.Errorf("renumbering %s %s: %w", s.name, id, err)
				}
			}
		}
	}
	return nil
}

func collectStrings(ctx context.Context, db *sql.DB, query string, args ...any) ([]string, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMigratedDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestMigrate_Idempotent(t *testing.T) {
	conn := newMigratedDB(t)

	// OpenDB already migrated once; a second full run must be a no-op.
	require.NoError(t, Migrate(conn))
	require.NoError(t, Migrate(conn))

	var count int
	err := conn.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'tasks'`).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMigrate_CreatesExpectedTables(t *testing.T) {
	conn := newMigratedDB(t)

	for _, table := range []string{"boards", "columns", "tasks", "ticket_sequences", "comments", "attachments", "tags", "task_tags"} {
		var name string
		err := conn.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoErrorf(t, err, "table %s missing", table)
	}
}

func TestMigrate_BackfillsTicketSequencesFromExistingTasks(t *testing.T) {
	conn := newMigratedDB(t)

	_, err := conn.Exec(`INSERT INTO boards (id, prefix, name, position, created_at, updated_at)
		VALUES ('b1', 'OLD', 'Legacy', 0, '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)
	_, err = conn.Exec(`INSERT INTO columns (id, board_id, name, position, created_at, updated_at)
		VALUES ('c1', 'b1', 'Todo', 0, '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)
	_, err = conn.Exec(`INSERT INTO tasks (id, column_id, ticket, title, position, created_at, updated_at)
		VALUES ('t1', 'c1', 'OLD-00017', 'Legacy task', 0, '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)

	// Simulate the allocator state being missing, as in a database written
	// before ticket_sequences existed.
	_, err = conn.Exec(`DELETE FROM ticket_sequences`)
	require.NoError(t, err)

	require.NoError(t, Migrate(conn))

	var nextSeq int
	err = conn.QueryRow(`SELECT next_seq FROM ticket_sequences WHERE prefix = 'OLD'`).Scan(&nextSeq)
	require.NoError(t, err)
	assert.Equal(t, 18, nextSeq)
}

func TestMigrate_BackfillNeverLowersAllocator(t *testing.T) {
	conn := newMigratedDB(t)

	_, err := conn.Exec(`INSERT INTO boards (id, prefix, name, position, created_at, updated_at)
		VALUES ('b1', 'KEEP', 'Keep', 0, '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)
	_, err = conn.Exec(`INSERT INTO ticket_sequences (prefix, next_seq) VALUES ('KEEP', 500)`)
	require.NoError(t, err)

	require.NoError(t, Migrate(conn))

	var nextSeq int
	err = conn.QueryRow(`SELECT next_seq FROM ticket_sequences WHERE prefix = 'KEEP'`).Scan(&nextSeq)
	require.NoError(t, err)
	assert.Equal(t, 500, nextSeq)
}

func TestMigrate_RepairsSparsePositions(t *testing.T) {
	conn := newMigratedDB(t)

	_, err := conn.Exec(`INSERT INTO boards (id, prefix, name, position, created_at, updated_at)
		VALUES ('b1', 'FIX', 'Fixup', 0, '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)
	_, err = conn.Exec(`INSERT INTO columns (id, board_id, name, position, created_at, updated_at)
		VALUES ('c1', 'b1', 'Todo', 0, '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)

	// Positions 3, 7, 9: the kind of holes a buggy delete path leaves behind.
	for _, row := range []struct {
		id  string
		pos int
	}{{"t1", 3}, {"t2", 7}, {"t3", 9}} {
		_, err = conn.Exec(`INSERT INTO tasks (id, column_id, title, position, created_at, updated_at)
			VALUES (?, 'c1', ?, ?, '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`, row.id, row.id, row.pos)
		require.NoError(t, err)
	}

	require.NoError(t, Migrate(conn))

	rows, err := conn.Query(`SELECT id, position FROM tasks WHERE column_id = 'c1' ORDER BY position`)
	require.NoError(t, err)
	defer rows.Close()

	var got []struct {
		id  string
		pos int
	}
	for rows.Next() {
		var id string
		var pos int
		require.NoError(t, rows.Scan(&id, &pos))
		got = append(got, struct {
			id  string
			pos int
		}{id, pos})
	}
	require.NoError(t, rows.Err())

	require.Len(t, got, 3)
	assert.Equal(t, "t1", got[0].id)
	assert.Equal(t, 0, got[0].pos)
	assert.Equal(t, "t2", got[1].id)
	assert.Equal(t, 1, got[1].pos)
	assert.Equal(t, "t3", got[2].id)
	assert.Equal(t, 2, got[2].pos)
}

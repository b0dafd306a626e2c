package repository

import (
	"context"
	"testing"
	"time"

	"github.com/easykanban/kanban/internal/domain"
	"github.com/easykanban/kanban/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedColumn creates a board and one column, returning the column ID.
func seedColumn(t *testing.T, ctx context.Context, boards *SQLiteBoardRepo, cols *SQLiteColumnRepo) string {
	t.Helper()
	b := testutil.NewTestBoard("Board")
	require.NoError(t, boards.Create(ctx, b))
	c := testutil.NewTestColumn(b.ID, "Todo")
	require.NoError(t, cols.Create(ctx, c))
	return c.ID
}

func TestTaskRepo_CreateAndGet(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	boards := NewSQLiteBoardRepo(database)
	cols := NewSQLiteColumnRepo(database)
	tasks := NewSQLiteTaskRepo(database)

	colID := seedColumn(t, ctx, boards, cols)
	due := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	task := testutil.NewTestTask(colID, "Write docs",
		testutil.WithTicket("BRD-00001"),
		testutil.WithPriority(domain.PriorityHigh),
		testutil.WithDescription("user guide"),
		testutil.WithDueDate(due),
	)
	require.NoError(t, tasks.Create(ctx, task))

	got, err := tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Write docs", got.Title)
	assert.Equal(t, "BRD-00001", got.Ticket)
	assert.Equal(t, domain.PriorityHigh, got.Priority)
	assert.Equal(t, "user guide", got.Description)
	require.NotNil(t, got.DueDate)
	assert.Equal(t, due, *got.DueDate)
}

func TestTaskRepo_GetByTicketIsCaseInsensitive(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	boards := NewSQLiteBoardRepo(database)
	cols := NewSQLiteColumnRepo(database)
	tasks := NewSQLiteTaskRepo(database)

	colID := seedColumn(t, ctx, boards, cols)
	task := testutil.NewTestTask(colID, "Task", testutil.WithTicket("BRD-00007"))
	require.NoError(t, tasks.Create(ctx, task))

	got, err := tasks.GetByTicket(ctx, "brd-00007")
	require.NoError(t, err)
	assert.Equal(t, task.ID, got.ID)

	_, err = tasks.GetByTicket(ctx, "BRD-99999")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTaskRepo_ListByColumnOrdersByPosition(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	boards := NewSQLiteBoardRepo(database)
	cols := NewSQLiteColumnRepo(database)
	tasks := NewSQLiteTaskRepo(database)

	colID := seedColumn(t, ctx, boards, cols)
	for i, title := range []string{"C", "A", "B"} {
		task := testutil.NewTestTask(colID, title, testutil.WithTaskPosition([]int{2, 0, 1}[i]))
		require.NoError(t, tasks.Create(ctx, task))
	}

	list, err := tasks.ListByColumn(ctx, colID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"A", "B", "C"},
		[]string{list[0].Title, list[1].Title, list[2].Title})
}

func TestTaskRepo_PatchUpdatesOnlyProvidedFields(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	boards := NewSQLiteBoardRepo(database)
	cols := NewSQLiteColumnRepo(database)
	tasks := NewSQLiteTaskRepo(database)

	colID := seedColumn(t, ctx, boards, cols)
	due := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	task := testutil.NewTestTask(colID, "Original",
		testutil.WithDescription("keep me"),
		testutil.WithDueDate(due),
	)
	require.NoError(t, tasks.Create(ctx, task))

	title := "Renamed"
	prio := domain.PriorityUrgent
	require.NoError(t, tasks.Patch(ctx, task.ID, domain.TaskPatch{
		Title:    &title,
		Priority: &prio,
	}))

	got, err := tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
	assert.Equal(t, domain.PriorityUrgent, got.Priority)
	assert.Equal(t, "keep me", got.Description)
	require.NotNil(t, got.DueDate)

	require.NoError(t, tasks.Patch(ctx, task.ID, domain.TaskPatch{ClearDueDate: true}))
	got, err = tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Nil(t, got.DueDate)
}

func TestTaskRepo_PatchMissingTaskReturnsNotFound(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	tasks := NewSQLiteTaskRepo(database)

	title := "x"
	err := tasks.Patch(ctx, "missing", domain.TaskPatch{Title: &title})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTaskRepo_SetColumnReparentsAndReplacesTicket(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	boards := NewSQLiteBoardRepo(database)
	cols := NewSQLiteColumnRepo(database)
	tasks := NewSQLiteTaskRepo(database)

	b := testutil.NewTestBoard("Board")
	require.NoError(t, boards.Create(ctx, b))
	src := testutil.NewTestColumn(b.ID, "Todo")
	dst := testutil.NewTestColumn(b.ID, "Doing", testutil.WithColumnPosition(1))
	require.NoError(t, cols.Create(ctx, src))
	require.NoError(t, cols.Create(ctx, dst))

	task := testutil.NewTestTask(src.ID, "Task", testutil.WithTicket("BRD-00001"))
	require.NoError(t, tasks.Create(ctx, task))

	require.NoError(t, tasks.SetColumn(ctx, task.ID, dst.ID, 0, "NEW-00001"))
	got, err := tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, dst.ID, got.ColumnID)
	assert.Equal(t, "NEW-00001", got.Ticket)

	// Empty ticket keeps the existing one.
	require.NoError(t, tasks.SetColumn(ctx, task.ID, src.ID, 0, ""))
	got, err = tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, src.ID, got.ColumnID)
	assert.Equal(t, "NEW-00001", got.Ticket)
}

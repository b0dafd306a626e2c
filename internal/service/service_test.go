package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/easykanban/kanban/internal/db"
	"github.com/easykanban/kanban/internal/ordering"
	"github.com/easykanban/kanban/internal/repository"
	"github.com/easykanban/kanban/internal/testutil"
	"github.com/stretchr/testify/require"
)

// testEnv wires the full service stack against an in-memory database.
type testEnv struct {
	conn     *sql.DB
	uow      db.UnitOfWork
	observer *recordingObserver

	boards  BoardService
	columns ColumnService
	tasks   TaskService
	tags    TagService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	conn := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(conn)
	observer := &recordingObserver{}

	boardRepo := repository.NewSQLiteBoardRepo(conn)
	colRepo := repository.NewSQLiteColumnRepo(conn)
	taskRepo := repository.NewSQLiteTaskRepo(conn)
	commentRepo := repository.NewSQLiteCommentRepo(conn)
	attachmentRepo := repository.NewSQLiteAttachmentRepo(conn)
	tagRepo := repository.NewSQLiteTagRepo(conn)

	return &testEnv{
		conn:     conn,
		uow:      uow,
		observer: observer,
		boards:   NewBoardService(boardRepo, uow, observer),
		columns:  NewColumnService(colRepo, boardRepo, uow, observer),
		tasks:    NewTaskService(taskRepo, colRepo, commentRepo, attachmentRepo, tagRepo, uow, observer),
		tags:     NewTagService(tagRepo, taskRepo),
	}
}

// recordingObserver captures move events for assertions.
type recordingObserver struct {
	mu     sync.Mutex
	events []MoveEvent
}

func (r *recordingObserver) ObserveMove(_ context.Context, ev MoveEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recordingObserver) Events() []MoveEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]MoveEvent, len(r.events))
	copy(out, r.events)
	return out
}

// seedBoardWithColumn creates a board and one column, returning both IDs.
func (e *testEnv) seedBoardWithColumn(t *testing.T, name, prefix, columnName string) (boardID, columnID string) {
	t.Helper()
	ctx := context.Background()
	b, err := e.boards.Create(ctx, name, prefix)
	require.NoError(t, err)
	c, err := e.columns.Create(ctx, b.ID, columnName, ordering.AtEnd)
	require.NoError(t, err)
	return b.ID, c.ID
}

// titlesInOrder returns column task titles sorted by stored position.
func (e *testEnv) titlesInOrder(t *testing.T, columnID string) []string {
	t.Helper()
	list, err := e.tasks.ListByColumn(context.Background(), columnID)
	require.NoError(t, err)
	titles := make([]string, len(list))
	for i, task := range list {
		require.Equal(t, i, task.Position, "positions must be dense and the list sorted by them")
		titles[i] = task.Title
	}
	return titles
}

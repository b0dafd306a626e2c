package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/easykanban/kanban/internal/ordering"
	"github.com/easykanban/kanban/internal/repository"
	"github.com/easykanban/kanban/internal/service"
	"github.com/easykanban/kanban/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	conn := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(conn)

	boardRepo := repository.NewSQLiteBoardRepo(conn)
	colRepo := repository.NewSQLiteColumnRepo(conn)
	taskRepo := repository.NewSQLiteTaskRepo(conn)
	commentRepo := repository.NewSQLiteCommentRepo(conn)
	attachmentRepo := repository.NewSQLiteAttachmentRepo(conn)
	tagRepo := repository.NewSQLiteTagRepo(conn)

	return &App{
		Boards:  service.NewBoardService(boardRepo, uow, nil),
		Columns: service.NewColumnService(colRepo, boardRepo, uow, nil),
		Tasks:   service.NewTaskService(taskRepo, colRepo, commentRepo, attachmentRepo, tagRepo, uow, nil),
		Tags:    service.NewTagService(tagRepo, taskRepo),
		// IsInteractive left nil — wizard paths are not exercised here.
	}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// seedBoard creates a board with a Todo column via the services.
func seedBoard(t *testing.T, app *App, name, prefix string) (boardID, columnID string) {
	t.Helper()
	ctx := context.Background()
	b, err := app.Boards.Create(ctx, name, prefix)
	require.NoError(t, err)
	c, err := app.Columns.Create(ctx, b.ID, "Todo", ordering.AtEnd)
	require.NoError(t, err)
	return b.ID, c.ID
}

func TestBoardAddCmd(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "board", "add", "Website", "--prefix", "web")
	require.NoError(t, err)

	b, err := app.Boards.GetByPrefix(context.Background(), "WEB")
	require.NoError(t, err)
	assert.Equal(t, "Website", b.Name)
}

func TestBoardAddCmd_RequiresPrefix(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "board", "add", "Website")
	assert.Error(t, err)
}

func TestBoardMoveCmd_ReordersWorkspace(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()
	seedBoard(t, app, "First", "AAA")
	seedBoard(t, app, "Second", "BBB")

	_, err := executeCmd(t, app, "board", "move", "BBB", "0")
	require.NoError(t, err)

	boards, err := app.Boards.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, boards, 2)
	assert.Equal(t, "BBB", boards[0].Prefix)
}

func TestBoardMoveCmd_RejectsBadPosition(t *testing.T) {
	app := testApp(t)
	seedBoard(t, app, "First", "AAA")

	_, err := executeCmd(t, app, "board", "move", "AAA", "x")
	assert.Error(t, err)
}

func TestBoardRemoveCmd_UnknownBoard(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "board", "remove", "NOPE")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "board not found")
}

func TestColumnAddCmd_AtPosition(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()
	boardID, _ := seedBoard(t, app, "Website", "WEB")

	_, err := executeCmd(t, app, "column", "add", "WEB", "Inbox", "--at", "0")
	require.NoError(t, err)

	columns, err := app.Columns.ListByBoard(ctx, boardID)
	require.NoError(t, err)
	require.Len(t, columns, 2)
	assert.Equal(t, "Inbox", columns[0].Name)
	assert.Equal(t, "Todo", columns[1].Name)
}

func TestTaskAddCmd_AndResolveByTicket(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()
	seedBoard(t, app, "Website", "WEB")

	_, err := executeCmd(t, app, "task", "add",
		"--board", "WEB", "--column", "Todo",
		"--title", "Ship it", "--priority", "high", "--due", "2026-12-01")
	require.NoError(t, err)

	task, err := app.Tasks.GetByTicket(ctx, "WEB-00001")
	require.NoError(t, err)
	assert.Equal(t, "Ship it", task.Title)

	// Tickets resolve case-insensitively from the command line.
	_, err = executeCmd(t, app, "task", "move", "web-00001", "0")
	require.NoError(t, err)
}

func TestTaskAddCmd_NonInteractiveNeedsTitle(t *testing.T) {
	app := testApp(t)
	seedBoard(t, app, "Website", "WEB")

	_, err := executeCmd(t, app, "task", "add", "--board", "WEB", "--column", "Todo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--title is required")
}

func TestTaskSendCmd_MovesAcrossBoards(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()
	seedBoard(t, app, "Website", "WEB")
	_, destCol := seedBoard(t, app, "Mobile", "MOB")

	_, err := executeCmd(t, app, "task", "add",
		"--board", "WEB", "--column", "Todo", "--title", "Traveler")
	require.NoError(t, err)

	_, err = executeCmd(t, app, "task", "send", "WEB-00001", "--board", "MOB", "--column", "Todo")
	require.NoError(t, err)

	tasks, err := app.Tasks.ListByColumn(ctx, destCol)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "MOB-00001", tasks[0].Ticket)
}

func TestTaskEditCmd_RequiresAField(t *testing.T) {
	app := testApp(t)
	seedBoard(t, app, "Website", "WEB")
	_, err := executeCmd(t, app, "task", "add",
		"--board", "WEB", "--column", "Todo", "--title", "Plain")
	require.NoError(t, err)

	_, err = executeCmd(t, app, "task", "edit", "WEB-00001")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to change")

	_, err = executeCmd(t, app, "task", "edit", "WEB-00001", "--title", "Fancy")
	require.NoError(t, err)

	task, err := app.Tasks.GetByTicket(context.Background(), "WEB-00001")
	require.NoError(t, err)
	assert.Equal(t, "Fancy", task.Title)
}

func TestTagAttachCmd(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()
	seedBoard(t, app, "Website", "WEB")
	_, err := executeCmd(t, app, "task", "add",
		"--board", "WEB", "--column", "Todo", "--title", "Tagged")
	require.NoError(t, err)

	_, err = executeCmd(t, app, "tag", "attach", "WEB-00001", "backend")
	require.NoError(t, err)

	task, err := app.Tasks.GetByTicket(ctx, "WEB-00001")
	require.NoError(t, err)
	tags, err := app.Tags.ListByTask(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "backend", tags[0].Name)
}

func TestResolveBoardID_AmbiguousUUIDPrefix(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()
	seedBoard(t, app, "First", "AAA")
	seedBoard(t, app, "Second", "BBB")

	// The empty string never matches; a nonsense prefix reports not found.
	_, err := resolveBoardID(ctx, app, "zzzz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestResolveTaskID_PropagatesStorageFailures(t *testing.T) {
	conn := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(conn)
	taskRepo := repository.NewSQLiteTaskRepo(conn)
	colRepo := repository.NewSQLiteColumnRepo(conn)
	app := &App{
		Boards: service.NewBoardService(repository.NewSQLiteBoardRepo(conn), uow, nil),
		Tasks: service.NewTaskService(taskRepo, colRepo,
			repository.NewSQLiteCommentRepo(conn), repository.NewSQLiteAttachmentRepo(conn),
			repository.NewSQLiteTagRepo(conn), uow, nil),
	}
	require.NoError(t, conn.Close())

	// A broken store must surface its error, not masquerade as not found.
	_, err := resolveTaskID(context.Background(), app, "WEB-00001")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "not found")

	_, err = resolveTaskID(context.Background(), app, "deadbeef")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "not found")
}

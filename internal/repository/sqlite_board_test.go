package repository

import (
	"context"
	"testing"
	"time"

	"github.com/easykanban/kanban/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardRepo_CreateAndGet(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteBoardRepo(database)

	b := testutil.NewTestBoard("Release Train", testutil.WithPrefix("REL"))
	require.NoError(t, repo.Create(ctx, b))

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Release Train", got.Name)
	assert.Equal(t, "REL", got.Prefix)
	assert.Equal(t, 0, got.Position)
	assert.Nil(t, got.ArchivedAt)
}

func TestBoardRepo_GetByPrefixIsCaseInsensitive(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteBoardRepo(database)

	b := testutil.NewTestBoard("Ops", testutil.WithPrefix("OPS"))
	require.NoError(t, repo.Create(ctx, b))

	got, err := repo.GetByPrefix(ctx, "ops")
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)
}

func TestBoardRepo_GetMissingReturnsNotFound(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteBoardRepo(database)

	_, err := repo.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBoardRepo_ListOrdersByPosition(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteBoardRepo(database)

	first := testutil.NewTestBoard("First", testutil.WithBoardPosition(1))
	second := testutil.NewTestBoard("Second", testutil.WithBoardPosition(0))
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	boards, err := repo.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, boards, 2)
	assert.Equal(t, "Second", boards[0].Name)
	assert.Equal(t, "First", boards[1].Name)
}

func TestBoardRepo_ListHidesArchived(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteBoardRepo(database)

	active := testutil.NewTestBoard("Active")
	archived := testutil.NewTestBoard("Old", testutil.WithBoardPosition(1),
		testutil.WithArchivedAt(time.Now().UTC()))
	require.NoError(t, repo.Create(ctx, active))
	require.NoError(t, repo.Create(ctx, archived))

	visible, err := repo.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "Active", visible[0].Name)

	all, err := repo.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestBoardRepo_ArchiveUnarchive(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteBoardRepo(database)

	b := testutil.NewTestBoard("Cycle")
	require.NoError(t, repo.Create(ctx, b))

	require.NoError(t, repo.Archive(ctx, b.ID))
	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, got.Archived())

	require.NoError(t, repo.Unarchive(ctx, b.ID))
	got, err = repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.False(t, got.Archived())
}

func TestBoardRepo_Delete(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteBoardRepo(database)

	b := testutil.NewTestBoard("Gone")
	require.NoError(t, repo.Create(ctx, b))
	require.NoError(t, repo.Delete(ctx, b.ID))

	_, err := repo.GetByID(ctx, b.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

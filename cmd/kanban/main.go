package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/easykanban/kanban/internal/cli"
	"github.com/easykanban/kanban/internal/db"
	"github.com/easykanban/kanban/internal/repository"
	"github.com/easykanban/kanban/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.kanban/kanban.db
	dbPath := os.Getenv("KANBAN_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".kanban", "kanban.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	boardRepo := repository.NewSQLiteBoardRepo(database)
	columnRepo := repository.NewSQLiteColumnRepo(database)
	taskRepo := repository.NewSQLiteTaskRepo(database)
	commentRepo := repository.NewSQLiteCommentRepo(database)
	attachmentRepo := repository.NewSQLiteAttachmentRepo(database)
	tagRepo := repository.NewSQLiteTagRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	// Optional move audit log, enabled via KANBAN_MOVE_LOG=1.
	var observer service.MoveObserver = service.NoopMoveObserver{}
	if os.Getenv("KANBAN_MOVE_LOG") != "" {
		observer = service.NewLogMoveObserver(os.Stderr)
	}

	app := &cli.App{
		Boards:  service.NewBoardService(boardRepo, uow, observer),
		Columns: service.NewColumnService(columnRepo, boardRepo, uow, observer),
		Tasks:   service.NewTaskService(taskRepo, columnRepo, commentRepo, attachmentRepo, tagRepo, uow, observer),
		Tags:    service.NewTagService(tagRepo, taskRepo),
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}

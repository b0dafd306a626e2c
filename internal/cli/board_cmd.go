package cli

import (
	"context"
	"fmt"

	"github.com/easykanban/kanban/internal/cli/formatter"
	"github.com/easykanban/kanban/internal/domain"
	"github.com/spf13/cobra"
)

func newBoardCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Manage boards",
	}

	cmd.AddCommand(
		newBoardAddCmd(app),
		newBoardListCmd(app),
		newBoardViewCmd(app),
		newBoardRenameCmd(app),
		newBoardMoveCmd(app),
		newBoardArchiveCmd(app),
		newBoardUnarchiveCmd(app),
		newBoardRemoveCmd(app),
	)

	return cmd
}

func newBoardAddCmd(app *App) *cobra.Command {
	var prefix string

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Create a new board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := app.Boards.Create(context.Background(), args[0], prefix)
			if err != nil {
				return err
			}
			fmt.Printf("Created board %s [%s]\n", b.Name, b.Prefix)
			return nil
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", "", "Ticket prefix (letters only, e.g. WEB)")
	_ = cmd.MarkFlagRequired("prefix")

	return cmd
}

func newBoardListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List boards",
		RunE: func(cmd *cobra.Command, args []string) error {
			boards, err := app.Boards.List(context.Background(), all)
			if err != nil {
				return err
			}
			if len(boards) == 0 {
				fmt.Println("No boards found.")
				return nil
			}
			fmt.Printf("%s\n", formatter.FormatBoardList(boards))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include archived boards")

	return cmd
}

func newBoardViewCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "view BOARD",
		Short: "Show a board with its columns and tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			boardID, err := resolveBoardID(ctx, app, args[0])
			if err != nil {
				return err
			}
			data, err := loadBoardView(ctx, app, boardID)
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", formatter.FormatBoardView(data))
			return nil
		},
	}
}

// loadBoardView fetches a board, its columns, and each column's tasks.
func loadBoardView(ctx context.Context, app *App, boardID string) (formatter.BoardViewData, error) {
	b, err := app.Boards.GetByID(ctx, boardID)
	if err != nil {
		return formatter.BoardViewData{}, err
	}
	columns, err := app.Columns.ListByBoard(ctx, boardID)
	if err != nil {
		return formatter.BoardViewData{}, err
	}
	tasks := make(map[string][]*domain.Task, len(columns))
	for _, c := range columns {
		list, err := app.Tasks.ListByColumn(ctx, c.ID)
		if err != nil {
			return formatter.BoardViewData{}, err
		}
		tasks[c.ID] = list
	}
	return formatter.BoardViewData{Board: b, Columns: columns, Tasks: tasks}, nil
}

func newBoardRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename BOARD NAME",
		Short: "Rename a board",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			boardID, err := resolveBoardID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Boards.Rename(ctx, boardID, args[1]); err != nil {
				return err
			}
			fmt.Printf("Renamed board to %s\n", args[1])
			return nil
		},
	}
}

func newBoardMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move BOARD POSITION",
		Short: "Move a board to a new position in the workspace",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			boardID, err := resolveBoardID(ctx, app, args[0])
			if err != nil {
				return err
			}
			target, err := parsePosition(args[1])
			if err != nil {
				return err
			}
			if err := app.Boards.Reorder(ctx, boardID, target); err != nil {
				return err
			}
			fmt.Printf("Moved board to position %d\n", target)
			return nil
		},
	}
}

func newBoardArchiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "archive BOARD",
		Short: "Archive a board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			boardID, err := resolveBoardID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Boards.Archive(ctx, boardID); err != nil {
				return err
			}
			fmt.Printf("Archived board %s\n", args[0])
			return nil
		},
	}
}

func newBoardUnarchiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "unarchive BOARD",
		Short: "Unarchive a board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			boardID, err := resolveBoardID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Boards.Unarchive(ctx, boardID); err != nil {
				return err
			}
			fmt.Printf("Unarchived board %s\n", args[0])
			return nil
		},
	}
}

func newBoardRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove BOARD",
		Short: "Remove a board and everything on it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			boardID, err := resolveBoardID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Boards.Delete(ctx, boardID); err != nil {
				return err
			}
			fmt.Printf("Removed board %s\n", args[0])
			return nil
		},
	}
}

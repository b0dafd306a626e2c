package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/easykanban/kanban/internal/cli/formatter"
	"github.com/easykanban/kanban/internal/ordering"
	"github.com/spf13/cobra"
)

// parsePosition parses a non-negative list position.
func parsePosition(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid position %q: expected a non-negative integer", s)
	}
	return n, nil
}

func newColumnCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "column",
		Short: "Manage board columns",
	}

	cmd.AddCommand(
		newColumnAddCmd(app),
		newColumnListCmd(app),
		newColumnRenameCmd(app),
		newColumnMoveCmd(app),
		newColumnRemoveCmd(app),
	)

	return cmd
}

func newColumnAddCmd(app *App) *cobra.Command {
	var at int

	cmd := &cobra.Command{
		Use:   "add BOARD NAME",
		Short: "Add a column to a board",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			boardID, err := resolveBoardID(ctx, app, args[0])
			if err != nil {
				return err
			}
			pos := ordering.AtEnd
			if cmd.Flags().Changed("at") {
				pos = at
			}
			c, err := app.Columns.Create(ctx, boardID, args[1], pos)
			if err != nil {
				return err
			}
			fmt.Printf("Added column %s at position %d\n", c.Name, c.Position)
			return nil
		},
	}

	cmd.Flags().IntVar(&at, "at", 0, "Insert at this position instead of appending")

	return cmd
}

func newColumnListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list BOARD",
		Short: "List a board's columns in order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			boardID, err := resolveBoardID(ctx, app, args[0])
			if err != nil {
				return err
			}
			columns, err := app.Columns.ListByBoard(ctx, boardID)
			if err != nil {
				return err
			}
			if len(columns) == 0 {
				fmt.Println("No columns found.")
				return nil
			}

			rows := make([][]string, 0, len(columns))
			for _, c := range columns {
				tasks, err := app.Tasks.ListByColumn(ctx, c.ID)
				if err != nil {
					return err
				}
				rows = append(rows, []string{
					fmt.Sprintf("%d", c.Position),
					c.Name,
					fmt.Sprintf("%d", len(tasks)),
					formatter.TruncID(c.ID),
				})
			}
			fmt.Printf("%s\n", formatter.RenderTable([]string{"#", "NAME", "TASKS", "ID"}, rows))
			return nil
		},
	}
}

func newColumnRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename BOARD COLUMN NAME",
		Short: "Rename a column",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			boardID, err := resolveBoardID(ctx, app, args[0])
			if err != nil {
				return err
			}
			columnID, err := resolveColumnID(ctx, app, boardID, args[1])
			if err != nil {
				return err
			}
			if err := app.Columns.Rename(ctx, columnID, args[2]); err != nil {
				return err
			}
			fmt.Printf("Renamed column to %s\n", args[2])
			return nil
		},
	}
}

func newColumnMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move BOARD COLUMN POSITION",
		Short: "Move a column to a new position on its board",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			boardID, err := resolveBoardID(ctx, app, args[0])
			if err != nil {
				return err
			}
			columnID, err := resolveColumnID(ctx, app, boardID, args[1])
			if err != nil {
				return err
			}
			target, err := parsePosition(args[2])
			if err != nil {
				return err
			}
			if err := app.Columns.Reorder(ctx, columnID, target); err != nil {
				return err
			}
			fmt.Printf("Moved column to position %d\n", target)
			return nil
		},
	}
}

func newColumnRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove BOARD COLUMN",
		Short: "Remove a column and its tasks",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			boardID, err := resolveBoardID(ctx, app, args[0])
			if err != nil {
				return err
			}
			columnID, err := resolveColumnID(ctx, app, boardID, args[1])
			if err != nil {
				return err
			}
			if err := app.Columns.Delete(ctx, columnID); err != nil {
				return err
			}
			fmt.Printf("Removed column %s\n", args[1])
			return nil
		},
	}
}

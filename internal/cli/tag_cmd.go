package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/easykanban/kanban/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newTagCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Manage tags",
	}

	cmd.AddCommand(
		newTagAddCmd(app),
		newTagListCmd(app),
		newTagAttachCmd(app),
		newTagDetachCmd(app),
	)

	return cmd
}

func newTagAddCmd(app *App) *cobra.Command {
	var color string

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Create a tag (no-op if it already exists)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := app.Tags.GetOrCreate(context.Background(), args[0], color)
			if err != nil {
				return err
			}
			fmt.Printf("Tag #%s\n", t.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&color, "color", "", "Hex color, e.g. #458588")

	return cmd
}

func newTagListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all tags",
		RunE: func(cmd *cobra.Command, args []string) error {
			tags, err := app.Tags.List(context.Background())
			if err != nil {
				return err
			}
			if len(tags) == 0 {
				fmt.Println("No tags found.")
				return nil
			}
			names := make([]string, len(tags))
			for i, t := range tags {
				names[i] = formatter.StyleBlue.Render("#" + t.Name)
			}
			fmt.Println(strings.Join(names, " "))
			return nil
		},
	}
}

func newTagAttachCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "attach TICKET NAME",
		Short: "Attach a tag to a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			taskID, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Tags.Attach(ctx, taskID, args[1]); err != nil {
				return err
			}
			fmt.Printf("Tagged %s with #%s\n", args[0], args[1])
			return nil
		},
	}
}

func newTagDetachCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "detach TICKET NAME",
		Short: "Detach a tag from a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			taskID, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Tags.Detach(ctx, taskID, args[1]); err != nil {
				return err
			}
			fmt.Printf("Untagged %s from #%s\n", args[0], args[1])
			return nil
		},
	}
}

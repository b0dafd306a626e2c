package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/easykanban/kanban/internal/cli/formatter"
	"github.com/easykanban/kanban/internal/domain"
	"github.com/easykanban/kanban/internal/ordering"
	"github.com/easykanban/kanban/internal/service"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
		newTaskInspectCmd(app),
		newTaskEditCmd(app),
		newTaskMoveCmd(app),
		newTaskSendCmd(app),
		newTaskRemoveCmd(app),
		newTaskCommentCmd(app),
		newTaskAttachCmd(app),
	)

	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var board, column, title, desc, priority, due string
	var top bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			// With no flags on an interactive terminal, fall back to the form.
			if title == "" {
				if app.IsInteractive == nil || !app.IsInteractive() {
					return fmt.Errorf("--title is required")
				}
				return runTaskAddWizard(ctx, app)
			}

			boardID, err := resolveBoardID(ctx, app, board)
			if err != nil {
				return err
			}
			columnID, err := resolveColumnID(ctx, app, boardID, column)
			if err != nil {
				return err
			}

			var in service.CreateTaskInput
			in.Description = desc
			in.Priority = domain.Priority(priority)
			in.AtTop = top
			if due != "" {
				d, err := time.Parse("2006-01-02", due)
				if err != nil {
					return fmt.Errorf("invalid due date %q: %w", due, err)
				}
				in.DueDate = &d
			}

			t, err := app.Tasks.Create(ctx, columnID, title, in)
			if err != nil {
				return err
			}
			fmt.Printf("Created task %s %s\n", t.Ticket, t.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&board, "board", "", "Board prefix or ID")
	cmd.Flags().StringVar(&column, "column", "", "Column name or ID")
	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&desc, "desc", "", "Task description")
	cmd.Flags().StringVar(&priority, "priority", "medium", "Priority (low|medium|high|urgent)")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&top, "top", false, "Insert at the top of the column")

	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	var column string

	cmd := &cobra.Command{
		Use:   "list BOARD",
		Short: "List tasks on a board, optionally limited to one column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			boardID, err := resolveBoardID(ctx, app, args[0])
			if err != nil {
				return err
			}

			var tasks []*domain.Task
			if column != "" {
				columnID, err := resolveColumnID(ctx, app, boardID, column)
				if err != nil {
					return err
				}
				tasks, err = app.Tasks.ListByColumn(ctx, columnID)
				if err != nil {
					return err
				}
			} else {
				tasks, err = app.Tasks.ListByBoard(ctx, boardID)
				if err != nil {
					return err
				}
			}

			if len(tasks) == 0 {
				fmt.Println("No tasks found.")
				return nil
			}
			fmt.Printf("%s\n", formatter.FormatTaskList(tasks))
			return nil
		},
	}

	cmd.Flags().StringVar(&column, "column", "", "Limit to one column")

	return cmd
}

func newTaskInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect TICKET",
		Short: "Show task details, comments, and attachments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			taskID, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			detail, err := app.Tasks.GetDetail(ctx, taskID)
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", formatter.FormatTaskDetail(detail))
			return nil
		},
	}
}

func newTaskEditCmd(app *App) *cobra.Command {
	var title, desc, priority, due string
	var clearDue bool

	cmd := &cobra.Command{
		Use:   "edit TICKET",
		Short: "Edit task fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			taskID, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}

			var patch domain.TaskPatch
			if cmd.Flags().Changed("title") {
				patch.Title = &title
			}
			if cmd.Flags().Changed("desc") {
				patch.Description = &desc
			}
			if cmd.Flags().Changed("priority") {
				p := domain.Priority(priority)
				patch.Priority = &p
			}
			if cmd.Flags().Changed("due") {
				d, err := time.Parse("2006-01-02", due)
				if err != nil {
					return fmt.Errorf("invalid due date %q: %w", due, err)
				}
				patch.DueDate = &d
			}
			patch.ClearDueDate = clearDue

			if patch.Empty() {
				return fmt.Errorf("nothing to change: pass at least one of --title, --desc, --priority, --due, --clear-due")
			}
			if err := app.Tasks.Patch(ctx, taskID, patch); err != nil {
				return err
			}
			fmt.Printf("Updated task %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&desc, "desc", "", "New description")
	cmd.Flags().StringVar(&priority, "priority", "", "New priority (low|medium|high|urgent)")
	cmd.Flags().StringVar(&due, "due", "", "New due date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&clearDue, "clear-due", false, "Remove the due date")

	return cmd
}

func newTaskMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move TICKET POSITION",
		Short: "Move a task to a new position within its column",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			taskID, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			target, err := parsePosition(args[1])
			if err != nil {
				return err
			}
			if err := app.Tasks.Reorder(ctx, taskID, target); err != nil {
				return err
			}
			fmt.Printf("Moved task %s to position %d\n", args[0], target)
			return nil
		},
	}
}

func newTaskSendCmd(app *App) *cobra.Command {
	var board, column string
	var at int

	cmd := &cobra.Command{
		Use:   "send TICKET",
		Short: "Send a task to another column, possibly on another board",
		Long: "Send a task to another column. When the destination column lives on a " +
			"different board, the task is assigned a fresh ticket from that board's " +
			"prefix; its comments, attachments, and tags travel with it.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			taskID, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			boardID, err := resolveBoardID(ctx, app, board)
			if err != nil {
				return err
			}
			columnID, err := resolveColumnID(ctx, app, boardID, column)
			if err != nil {
				return err
			}
			pos := ordering.AtEnd
			if cmd.Flags().Changed("at") {
				pos = at
			}
			if err := app.Tasks.MoveToColumn(ctx, taskID, columnID, pos); err != nil {
				return err
			}
			t, err := app.Tasks.GetByID(ctx, taskID)
			if err != nil {
				return err
			}
			fmt.Printf("Sent task %s to %s\n", t.Ticket, column)
			return nil
		},
	}

	cmd.Flags().StringVar(&board, "board", "", "Destination board prefix or ID")
	cmd.Flags().StringVar(&column, "column", "", "Destination column name or ID")
	cmd.Flags().IntVar(&at, "at", 0, "Insert at this position instead of appending")
	_ = cmd.MarkFlagRequired("board")
	_ = cmd.MarkFlagRequired("column")

	return cmd
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove TICKET",
		Short: "Remove a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			taskID, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Tasks.Delete(ctx, taskID); err != nil {
				return err
			}
			fmt.Printf("Removed task %s\n", args[0])
			return nil
		},
	}
}

func newTaskCommentCmd(app *App) *cobra.Command {
	var author string

	cmd := &cobra.Command{
		Use:   "comment TICKET [BODY]",
		Short: "Add a comment, or list comments when no body is given",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			taskID, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}

			if len(args) == 1 {
				comments, err := app.Tasks.Comments(ctx, taskID)
				if err != nil {
					return err
				}
				if len(comments) == 0 {
					fmt.Println("No comments.")
					return nil
				}
				for _, c := range comments {
					who := c.Author
					if who == "" {
						who = "anonymous"
					}
					fmt.Printf("%s %s\n  %s\n", formatter.Bold(who), formatter.Dim(formatter.HumanTimestamp(c.CreatedAt)), c.Body)
				}
				return nil
			}

			if _, err := app.Tasks.AddComment(ctx, taskID, author, args[1]); err != nil {
				return err
			}
			fmt.Printf("Commented on %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&author, "author", "", "Comment author")

	return cmd
}

func newTaskAttachCmd(app *App) *cobra.Command {
	var size int64

	cmd := &cobra.Command{
		Use:   "attach TICKET [FILENAME]",
		Short: "Record an attachment, or list attachments when no file is given",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			taskID, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}

			if len(args) == 1 {
				attachments, err := app.Tasks.Attachments(ctx, taskID)
				if err != nil {
					return err
				}
				if len(attachments) == 0 {
					fmt.Println("No attachments.")
					return nil
				}
				for _, a := range attachments {
					fmt.Printf("%s %s\n", a.FileName, formatter.Dim(formatter.FormatBytes(a.SizeBytes)))
				}
				return nil
			}

			if _, err := app.Tasks.AddAttachment(ctx, taskID, args[1], size); err != nil {
				return err
			}
			fmt.Printf("Attached %s to %s\n", args[1], args[0])
			return nil
		},
	}

	cmd.Flags().Int64Var(&size, "size", 0, "Attachment size in bytes")

	return cmd
}

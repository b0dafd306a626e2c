package cli

import (
	"github.com/easykanban/kanban/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Boards  service.BoardService
	Columns service.ColumnService
	Tasks   service.TaskService
	Tags    service.TagService

	// IsInteractive reports whether stdin is a terminal; interactive forms
	// and the TUI are only offered when it returns true.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "kanban" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "kanban",
		Short: "Ticket-based kanban boards in your terminal",
	}

	root.AddCommand(
		newBoardCmd(app),
		newColumnCmd(app),
		newTaskCmd(app),
		newTagCmd(app),
		newUICmd(app),
	)

	return root
}

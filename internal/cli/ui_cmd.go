package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/easykanban/kanban/internal/tui"
	"github.com/spf13/cobra"
)

func newUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive board view",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && !app.IsInteractive() {
				return fmt.Errorf("the board view needs an interactive terminal")
			}
			model := tui.NewModel(tui.Services{
				Boards:  app.Boards,
				Columns: app.Columns,
				Tasks:   app.Tasks,
			})
			p := tea.NewProgram(model, tea.WithAltScreen())
			_, err := p.Run()
			return err
		},
	}
}

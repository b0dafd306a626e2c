package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/easykanban/kanban/internal/cli/formatter"
	"github.com/easykanban/kanban/internal/domain"
	"github.com/easykanban/kanban/internal/service"
)

// kanbanHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func kanbanHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func validateRequired(s string) error {
	if s == "" {
		return fmt.Errorf("required")
	}
	return nil
}

func validateOptionalDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fmt.Errorf("expected YYYY-MM-DD")
	}
	return nil
}

// priorityOptions mirrors the domain's priority scale.
func priorityOptions() []huh.Option[string] {
	return []huh.Option[string]{
		huh.NewOption("Low", string(domain.PriorityLow)),
		huh.NewOption("Medium", string(domain.PriorityMedium)),
		huh.NewOption("High", string(domain.PriorityHigh)),
		huh.NewOption("Urgent", string(domain.PriorityUrgent)),
	}
}

// runTaskAddWizard walks through board, column, and task fields interactively.
func runTaskAddWizard(ctx context.Context, app *App) error {
	boards, err := app.Boards.List(ctx, false)
	if err != nil {
		return err
	}
	if len(boards) == 0 {
		return fmt.Errorf("no boards yet; create one with: kanban board add")
	}

	boardOpts := make([]huh.Option[string], 0, len(boards))
	for _, b := range boards {
		boardOpts = append(boardOpts, huh.NewOption(fmt.Sprintf("%s — %s", b.Prefix, b.Name), b.ID))
	}

	var boardID string
	boardForm := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Which Board?").
				Options(boardOpts...).
				Value(&boardID),
		),
	).WithTheme(kanbanHuhTheme()).WithShowHelp(false)
	if err := boardForm.Run(); err != nil {
		return err
	}

	columns, err := app.Columns.ListByBoard(ctx, boardID)
	if err != nil {
		return err
	}
	if len(columns) == 0 {
		return fmt.Errorf("board has no columns; add one with: kanban column add")
	}

	colOpts := make([]huh.Option[string], 0, len(columns))
	for _, c := range columns {
		colOpts = append(colOpts, huh.NewOption(c.Name, c.ID))
	}

	var columnID, title, desc, priority, due string
	priority = string(domain.PriorityMedium)
	taskForm := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Which Column?").
				Options(colOpts...).
				Value(&columnID),
			huh.NewInput().
				Title("Title").
				Value(&title).
				Validate(validateRequired),
			huh.NewText().
				Title("Description (optional)").
				Value(&desc),
			huh.NewSelect[string]().
				Title("Priority").
				Options(priorityOptions()...).
				Value(&priority),
			huh.NewInput().
				Title("Due Date (YYYY-MM-DD, blank for none)").
				Placeholder("2026-09-30").
				Value(&due).
				Validate(validateOptionalDate),
		),
	).WithTheme(kanbanHuhTheme()).WithShowHelp(false)
	if err := taskForm.Run(); err != nil {
		return err
	}

	in := service.CreateTaskInput{
		Description: desc,
		Priority:    domain.Priority(priority),
	}
	if due != "" {
		d, err := time.Parse("2006-01-02", due)
		if err != nil {
			return err
		}
		in.DueDate = &d
	}

	t, err := app.Tasks.Create(ctx, columnID, title, in)
	if err != nil {
		return err
	}
	fmt.Printf("Created task %s %s\n", t.Ticket, t.Title)
	return nil
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/easykanban/kanban/internal/repository"
)

// resolveBoardID resolves a prefix, full UUID, or UUID prefix to a board ID.
func resolveBoardID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("board is required")
	}

	boards, err := app.Boards.List(ctx, true)
	if err != nil {
		return "", err
	}

	// 1. Exact prefix match (case-insensitive)
	for _, b := range boards {
		if strings.EqualFold(b.Prefix, input) {
			return b.ID, nil
		}
	}

	// 2. Exact UUID match
	for _, b := range boards {
		if b.ID == input {
			return b.ID, nil
		}
	}

	// 3. UUID prefix match
	var matches []string
	for _, b := range boards {
		if strings.HasPrefix(b.ID, input) {
			matches = append(matches, b.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("board not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("board ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveColumnID resolves a column by name within a board, or by UUID prefix.
func resolveColumnID(ctx context.Context, app *App, boardID, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("column is required")
	}

	columns, err := app.Columns.ListByBoard(ctx, boardID)
	if err != nil {
		return "", err
	}

	for _, c := range columns {
		if strings.EqualFold(c.Name, input) {
			return c.ID, nil
		}
	}

	var matches []string
	for _, c := range columns {
		if strings.HasPrefix(c.ID, input) {
			matches = append(matches, c.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("column not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("column %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveTaskID resolves a ticket (WEB-00042) or a task UUID prefix to a task ID.
func resolveTaskID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("task is required")
	}

	// Tickets carry a dash between letters and digits; try that first so a
	// ticket never collides with a UUID prefix.
	if strings.Contains(input, "-") {
		t, err := app.Tasks.GetByTicket(ctx, strings.ToUpper(input))
		if err == nil {
			return t.ID, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return "", err
		}
	}

	t, err := app.Tasks.GetByID(ctx, input)
	if err == nil {
		return t.ID, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return "", err
	}

	// Walk all boards for a UUID prefix match.
	boards, err := app.Boards.List(ctx, true)
	if err != nil {
		return "", err
	}
	var matches []string
	for _, b := range boards {
		tasks, err := app.Tasks.ListByBoard(ctx, b.ID)
		if err != nil {
			return "", err
		}
		for _, t := range tasks {
			if strings.HasPrefix(t.ID, input) {
				matches = append(matches, t.ID)
			}
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("task not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("task %q is ambiguous (%d matches)", input, len(matches))
	}
}

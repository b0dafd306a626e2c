package formatter

import (
	"fmt"
	"strings"

	"github.com/easykanban/kanban/internal/domain"
)

// FormatBoardList renders boards as an aligned table in workspace order.
func FormatBoardList(boards []*domain.Board) string {
	headers := []string{"#", "PREFIX", "NAME", "STATUS", "ID"}
	rows := make([][]string, 0, len(boards))
	for _, b := range boards {
		status := StyleGreen.Render("● active")
		if b.Archived() {
			status = StyleDim.Render("✖ archived")
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", b.Position),
			StylePurple.Render(b.Prefix),
			b.Name,
			status,
			TruncID(b.ID),
		})
	}
	return RenderTable(headers, rows)
}

// BoardViewData bundles everything needed to render one board.
type BoardViewData struct {
	Board   *domain.Board
	Columns []*domain.Column
	// Tasks holds each column's tasks keyed by column ID, in position order.
	Tasks map[string][]*domain.Task
}

// FormatBoardView renders a board as a sequence of column sections, each
// listing its tasks in position order.
func FormatBoardView(data BoardViewData) string {
	var b strings.Builder

	b.WriteString(Header(fmt.Sprintf("%s [%s]", data.Board.Name, data.Board.Prefix)))
	b.WriteString("\n")

	if len(data.Columns) == 0 {
		b.WriteString(Dim("No columns. Add one with: kanban column add"))
		b.WriteString("\n")
		return b.String()
	}

	for _, col := range data.Columns {
		tasks := data.Tasks[col.ID]
		b.WriteString("\n")
		b.WriteString(Bold(col.Name))
		b.WriteString(Dim(fmt.Sprintf("  (%d)", len(tasks))))
		b.WriteString("\n")

		if len(tasks) == 0 {
			b.WriteString(Dim("  — empty —"))
			b.WriteString("\n")
			continue
		}
		for _, t := range tasks {
			line := fmt.Sprintf("  %s %s  %s",
				StylePurple.Render(t.Ticket),
				Truncate(t.Title, 60),
				PriorityPill(t.Priority),
			)
			if t.DueDate != nil {
				line += "  " + Dim("due ") + DueDateStyled(*t.DueDate)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	return b.String()
}

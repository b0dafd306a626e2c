package formatter

import (
	"fmt"
	"strings"

	"github.com/easykanban/kanban/internal/domain"
)

// FormatTaskList renders tasks as an aligned table in position order.
func FormatTaskList(tasks []*domain.Task) string {
	headers := []string{"#", "TICKET", "TITLE", "PRIORITY", "DUE"}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		due := Dim("--")
		if t.DueDate != nil {
			due = DueDateStyled(*t.DueDate)
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", t.Position),
			StylePurple.Render(t.Ticket),
			Truncate(t.Title, 50),
			PriorityPill(t.Priority),
			due,
		})
	}
	return RenderTable(headers, rows)
}

// FormatTaskDetail renders one task with its comments, attachments, and tags.
func FormatTaskDetail(d *domain.TaskDetail) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s  %s\n", StylePurple.Render(d.Task.Ticket), Bold(d.Task.Title)))
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Priority:"), PriorityPill(d.Task.Priority)))
	if d.Task.DueDate != nil {
		b.WriteString(fmt.Sprintf("%s %s\n", Dim("Due:"), DueDateStyled(*d.Task.DueDate)))
	}
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Created:"), HumanTimestamp(d.Task.CreatedAt)))
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("ID:"), TruncID(d.Task.ID)))

	if d.Task.Description != "" {
		b.WriteString("\n")
		b.WriteString(d.Task.Description)
		b.WriteString("\n")
	}

	if len(d.Tags) > 0 {
		names := make([]string, len(d.Tags))
		for i, tag := range d.Tags {
			names[i] = StyleBlue.Render("#" + tag.Name)
		}
		b.WriteString(fmt.Sprintf("\n%s %s\n", Dim("Tags:"), strings.Join(names, " ")))
	}

	if len(d.Comments) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("Comments"))
		b.WriteString("\n")
		for _, c := range d.Comments {
			author := c.Author
			if author == "" {
				author = "anonymous"
			}
			b.WriteString(fmt.Sprintf("%s %s\n", Bold(author), Dim(HumanTimestamp(c.CreatedAt))))
			b.WriteString(fmt.Sprintf("  %s\n", c.Body))
		}
	}

	if len(d.Attachments) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("Attachments"))
		b.WriteString("\n")
		for _, a := range d.Attachments {
			b.WriteString(fmt.Sprintf("  %s %s\n", a.FileName, Dim(FormatBytes(a.SizeBytes))))
		}
	}

	return b.String()
}

// FormatBytes converts a byte count into a short human-friendly string.
func FormatBytes(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/float64(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/float64(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

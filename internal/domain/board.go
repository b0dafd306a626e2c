package domain

import (
	"fmt"
	"time"
)

// Board is a top-level kanban board. Boards form a single workspace-scoped
// ordered list: Position is unique and dense across all boards.
type Board struct {
	ID       string
	Prefix   string // ticket prefix, e.g. "PROJ"
	Name     string
	Position int

	ArchivedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Archived reports whether the board has been archived.
func (b *Board) Archived() bool {
	return b.ArchivedAt != nil
}

// FormatTicket renders a board-scoped ticket such as "PROJ-00042".
func FormatTicket(prefix string, seq int) string {
	return fmt.Sprintf("%s-%05d", prefix, seq)
}

package domain

import "time"

// Column is a list of tasks within a board. Position is unique and dense
// among the columns of the same board.
type Column struct {
	ID       string
	BoardID  string
	Name     string
	Position int

	CreatedAt time.Time
	UpdatedAt time.Time
}

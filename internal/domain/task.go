package domain

import "time"

// Task is a card on a board. Position is unique and dense among the tasks
// of the same column. The ticket stays stable for the task's lifetime except
// when the task moves to a board with a different prefix, where a fresh
// ticket is allocated from the destination's sequence.
type Task struct {
	ID          string
	ColumnID    string
	Ticket      string
	Title       string
	Description string
	Priority    Priority
	Position    int
	DueDate     *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TaskPatch is a partial update for a task. Nil fields are left unchanged.
// Updates are built from this fixed field set only, never from
// caller-supplied column names.
type TaskPatch struct {
	Title       *string
	Description *string
	Priority    *Priority
	DueDate     *time.Time
	// ClearDueDate removes the due date. Takes precedence over DueDate.
	ClearDueDate bool
}

// Empty reports whether the patch contains no changes.
func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Priority == nil &&
		p.DueDate == nil && !p.ClearDueDate
}

// TaskDetail is a task together with its associated rows, as loaded for
// display surfaces.
type TaskDetail struct {
	Task        Task
	Comments    []*Comment
	Attachments []*Attachment
	Tags        []*Tag
}

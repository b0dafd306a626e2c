package domain

import "time"

// Comment is a note attached to a task. Comments follow their task through
// column and board moves via the task_id foreign key.
type Comment struct {
	ID        string
	TaskID    string
	Author    string
	Body      string
	CreatedAt time.Time
}

// Attachment records file metadata for a task. File contents live outside
// the database.
type Attachment struct {
	ID        string
	TaskID    string
	FileName  string
	SizeBytes int64
	CreatedAt time.Time
}

// Tag is a reusable label. Tags attach to tasks through the task_tags join
// table.
type Tag struct {
	ID    string
	Name  string
	Color string
}

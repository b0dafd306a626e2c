package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/easykanban/kanban/internal/domain"
	"github.com/google/uuid"
)

var testPrefixCounter atomic.Int64

// Board options
type BoardOption func(*domain.Board)

func WithPrefix(prefix string) BoardOption {
	return func(b *domain.Board) {
		b.Prefix = prefix
	}
}

func WithBoardPosition(pos int) BoardOption {
	return func(b *domain.Board) {
		b.Position = pos
	}
}

func WithArchivedAt(t time.Time) BoardOption {
	return func(b *domain.Board) {
		b.ArchivedAt = &t
	}
}

func defaultPrefix(name string) string {
	upper := strings.ToUpper(name)
	var letters []byte
	for i := 0; i < len(upper) && len(letters) < 3; i++ {
		if upper[i] >= 'A' && upper[i] <= 'Z' {
			letters = append(letters, upper[i])
		}
	}
	for len(letters) < 3 {
		letters = append(letters, 'X')
	}
	n := testPrefixCounter.Add(1)
	return fmt.Sprintf("%s%02d", string(letters), n)
}

func NewTestBoard(name string, opts ...BoardOption) *domain.Board {
	now := time.Now().UTC()
	b := &domain.Board{
		ID:        uuid.New().String(),
		Prefix:    defaultPrefix(name),
		Name:      name,
		Position:  0,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Column options
type ColumnOption func(*domain.Column)

func WithColumnPosition(pos int) ColumnOption {
	return func(c *domain.Column) {
		c.Position = pos
	}
}

func NewTestColumn(boardID, name string, opts ...ColumnOption) *domain.Column {
	now := time.Now().UTC()
	c := &domain.Column{
		ID:        uuid.New().String(),
		BoardID:   boardID,
		Name:      name,
		Position:  0,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Task options
type TaskOption func(*domain.Task)

func WithTaskPosition(pos int) TaskOption {
	return func(t *domain.Task) {
		t.Position = pos
	}
}

func WithTicket(ticket string) TaskOption {
	return func(t *domain.Task) {
		t.Ticket = ticket
	}
}

func WithPriority(p domain.Priority) TaskOption {
	return func(t *domain.Task) {
		t.Priority = p
	}
}

func WithDescription(d string) TaskOption {
	return func(t *domain.Task) {
		t.Description = d
	}
}

func WithDueDate(d time.Time) TaskOption {
	return func(t *domain.Task) {
		t.DueDate = &d
	}
}

func NewTestTask(columnID, title string, opts ...TaskOption) *domain.Task {
	now := time.Now().UTC()
	t := &domain.Task{
		ID:        uuid.New().String(),
		ColumnID:  columnID,
		Title:     title,
		Priority:  domain.PriorityMedium,
		Position:  0,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// NewTestComment builds a comment for the given task.
func NewTestComment(taskID, author, body string) *domain.Comment {
	return &domain.Comment{
		ID:        uuid.New().String(),
		TaskID:    taskID,
		Author:    author,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}
}

// NewTestAttachment builds attachment metadata for the given task.
func NewTestAttachment(taskID, fileName string, size int64) *domain.Attachment {
	return &domain.Attachment{
		ID:        uuid.New().String(),
		TaskID:    taskID,
		FileName:  fileName,
		SizeBytes: size,
		CreatedAt: time.Now().UTC(),
	}
}

// NewTestTag builds a tag.
func NewTestTag(name, color string) *domain.Tag {
	return &domain.Tag{
		ID:    uuid.New().String(),
		Name:  name,
		Color: color,
	}
}

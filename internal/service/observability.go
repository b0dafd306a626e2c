package service

import (
	"context"
	"io"
	"log/slog"
)

// MoveEvent describes one committed position mutation: "item X moved from
// position A to B in scope S". FromScope differs from ToScope on
// cross-parent moves.
type MoveEvent struct {
	Kind      string // "board", "column", or "task"
	ItemID    string
	FromScope string
	ToScope   string
	FromPos   int
	ToPos     int
}

// MoveObserver receives move events for audit-trail recording. Observers are
// notified after the transaction commits and must not fail the operation;
// delivery is best-effort and never blocks the mutation path on external I/O.
type MoveObserver interface {
	ObserveMove(ctx context.Context, event MoveEvent)
}

// NoopMoveObserver ignores all events.
type NoopMoveObserver struct{}

func (NoopMoveObserver) ObserveMove(context.Context, MoveEvent) {}

type logMoveObserver struct {
	logger *slog.Logger
}

// NewLogMoveObserver writes move events to the provided writer.
func NewLogMoveObserver(w io.Writer) MoveObserver {
	if w == nil {
		return NoopMoveObserver{}
	}
	return &logMoveObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (o *logMoveObserver) ObserveMove(ctx context.Context, event MoveEvent) {
	attrs := []any{
		"kind", event.Kind,
		"item", event.ItemID,
		"from_pos", event.FromPos,
		"to_pos", event.ToPos,
	}
	if event.FromScope != event.ToScope {
		attrs = append(attrs, "from_scope", event.FromScope, "to_scope", event.ToScope)
	} else if event.ToScope != "" {
		attrs = append(attrs, "scope", event.ToScope)
	}
	o.logger.InfoContext(ctx, "item_moved", attrs...)
}

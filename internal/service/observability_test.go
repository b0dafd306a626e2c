package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogMoveObserver_WritesStructuredEvent(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogMoveObserver(&buf)

	obs.ObserveMove(context.Background(), MoveEvent{
		Kind: "task", ItemID: "t1",
		FromScope: "c1", ToScope: "c2",
		FromPos: 2, ToPos: 0,
	})

	out := buf.String()
	assert.Contains(t, out, "item_moved")
	assert.Contains(t, out, "kind=task")
	assert.Contains(t, out, "from_scope=c1")
	assert.Contains(t, out, "to_scope=c2")
	assert.Contains(t, out, "from_pos=2")
	assert.Contains(t, out, "to_pos=0")
}

func TestLogMoveObserver_SameScopeUsesScopeAttr(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogMoveObserver(&buf)

	obs.ObserveMove(context.Background(), MoveEvent{
		Kind: "column", ItemID: "c1",
		FromScope: "b1", ToScope: "b1",
		FromPos: 0, ToPos: 1,
	})

	out := buf.String()
	assert.Contains(t, out, "scope=b1")
	assert.NotContains(t, out, "from_scope")
}

func TestNewLogMoveObserver_NilWriterIsNoop(t *testing.T) {
	obs := NewLogMoveObserver(nil)
	_, ok := obs.(NoopMoveObserver)
	assert.True(t, ok)
}

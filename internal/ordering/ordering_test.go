package ordering

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memCollection is an in-memory Collection for exercising the protocol
// without storage. Writes are applied immediately (the "transaction" is the
// test itself).
type memCollection struct {
	positions map[string]int
}

func newMemCollection(ids ...string) *memCollection {
	m := &memCollection{positions: make(map[string]int, len(ids))}
	for i, id := range ids {
		m.positions[id] = i
	}
	return m
}

func (m *memCollection) Len(ctx context.Context) (int, error) {
	return len(m.positions), nil
}

func (m *memCollection) PositionOf(ctx context.Context, id string) (int, error) {
	pos, ok := m.positions[id]
	if !ok {
		return 0, ErrNotFound
	}
	return pos, nil
}

func (m *memCollection) ShiftRange(ctx context.Context, lo, hi, delta int) error {
	for id, pos := range m.positions {
		if pos >= lo && pos <= hi {
			m.positions[id] = pos + delta
		}
	}
	return nil
}

func (m *memCollection) SetPosition(ctx context.Context, id string, pos int) error {
	if _, ok := m.positions[id]; !ok {
		return ErrNotFound
	}
	m.positions[id] = pos
	return nil
}

// order returns item IDs sorted by position, failing the test if positions
// are not a dense 0..n-1 run.
func (m *memCollection) order(t *testing.T) []string {
	t.Helper()
	out := make([]string, len(m.positions))
	seen := make(map[int]string, len(m.positions))
	for id, pos := range m.positions {
		require.GreaterOrEqual(t, pos, 0, "negative position on %s", id)
		require.Less(t, pos, len(m.positions), "position gap: %s at %d", id, pos)
		require.Empty(t, seen[pos], "duplicate position %d: %s and %s", pos, seen[pos], id)
		seen[pos] = id
		out[pos] = id
	}
	return out
}

func TestReorder_MoveUpToTop(t *testing.T) {
	// Scenario: [A,B,C,D], move C (pos 2) to pos 0 -> [C,A,B,D].
	ctx := context.Background()
	c := newMemCollection("A", "B", "C", "D")

	from, err := Reorder(ctx, c, "C", 0)
	require.NoError(t, err)
	assert.Equal(t, 2, from)
	assert.Equal(t, []string{"C", "A", "B", "D"}, c.order(t))
}

func TestReorder_MoveDown(t *testing.T) {
	ctx := context.Background()
	c := newMemCollection("A", "B", "C", "D")

	from, err := Reorder(ctx, c, "A", 2)
	require.NoError(t, err)
	assert.Equal(t, 0, from)
	assert.Equal(t, []string{"B", "C", "A", "D"}, c.order(t))
}

func TestReorder_NoOpLeavesAllPositionsUnchanged(t *testing.T) {
	ctx := context.Background()
	c := newMemCollection("A", "B", "C")
	before := map[string]int{"A": 0, "B": 1, "C": 2}

	from, err := Reorder(ctx, c, "B", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, from)
	assert.Equal(t, before, c.positions)
}

func TestReorder_RoundTripRestoresFullOrdering(t *testing.T) {
	ctx := context.Background()
	c := newMemCollection("A", "B", "C", "D", "E")

	_, err := Reorder(ctx, c, "B", 3)
	require.NoError(t, err)
	_, err = Reorder(ctx, c, "B", 1)
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, c.order(t))
}

func TestReorder_BoundaryRotation(t *testing.T) {
	ctx := context.Background()

	// First item to last position rotates everything else up one slot.
	c := newMemCollection("A", "B", "C", "D")
	_, err := Reorder(ctx, c, "A", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "C", "D", "A"}, c.order(t))

	// And back: last to first rotates everything down one slot.
	_, err = Reorder(ctx, c, "A", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C", "D"}, c.order(t))
}

func TestReorder_TargetOutOfRange(t *testing.T) {
	ctx := context.Background()
	c := newMemCollection("A", "B", "C")

	_, err := Reorder(ctx, c, "A", 3)
	assert.ErrorIs(t, err, ErrInvalidPosition)

	_, err = Reorder(ctx, c, "A", -1)
	assert.ErrorIs(t, err, ErrInvalidPosition)

	// Failed validation must not have moved anything.
	assert.Equal(t, []string{"A", "B", "C"}, c.order(t))
}

func TestReorder_UnknownItem(t *testing.T) {
	ctx := context.Background()
	c := newMemCollection("A", "B")

	_, err := Reorder(ctx, c, "Z", 0)
	assert.ErrorIs(t, err, ErrNotFound)

	// Unknown wins over out-of-range: the item check comes first.
	_, err = Reorder(ctx, c, "Z", 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReorder_EmptyCollectionIsNotFound(t *testing.T) {
	ctx := context.Background()
	c := newMemCollection()

	_, err := Reorder(ctx, c, "A", 0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInsertSlot_TopShiftsExistingItemsDown(t *testing.T) {
	// Scenario: insert at top of [A,B,C] -> new item at 0, rest at 1..3.
	ctx := context.Background()
	c := newMemCollection("A", "B", "C")

	pos, err := InsertSlot(ctx, c, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, pos)
	assert.Equal(t, map[string]int{"A": 1, "B": 2, "C": 3}, c.positions)
}

func TestInsertSlot_AtEndAppendsWithoutShifting(t *testing.T) {
	ctx := context.Background()
	c := newMemCollection("A", "B", "C")

	pos, err := InsertSlot(ctx, c, AtEnd)
	require.NoError(t, err)
	assert.Equal(t, 3, pos)
	assert.Equal(t, map[string]int{"A": 0, "B": 1, "C": 2}, c.positions)
}

func TestInsertSlot_MiddleShiftsTail(t *testing.T) {
	ctx := context.Background()
	c := newMemCollection("A", "B", "C")

	pos, err := InsertSlot(ctx, c, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, pos)
	assert.Equal(t, map[string]int{"A": 0, "B": 2, "C": 3}, c.positions)
}

func TestInsertSlot_EmptyCollection(t *testing.T) {
	ctx := context.Background()
	c := newMemCollection()

	pos, err := InsertSlot(ctx, c, AtEnd)
	require.NoError(t, err)
	assert.Equal(t, 0, pos)

	pos, err = InsertSlot(ctx, c, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, pos)
}

func TestInsertSlot_OutOfRange(t *testing.T) {
	ctx := context.Background()
	c := newMemCollection("A")

	_, err := InsertSlot(ctx, c, 2)
	assert.ErrorIs(t, err, ErrInvalidPosition)

	_, err = InsertSlot(ctx, c, -2)
	assert.ErrorIs(t, err, ErrInvalidPosition)
}

func TestCloseGap_AfterMiddleDelete(t *testing.T) {
	// Scenario: delete B (pos 1) from [A,B,C,D] -> [A,C,D] at 0..2.
	ctx := context.Background()
	c := newMemCollection("A", "B", "C", "D")
	oldLen := len(c.positions)
	delete(c.positions, "B")

	require.NoError(t, CloseGap(ctx, c, 1, oldLen))
	assert.Equal(t, []string{"A", "C", "D"}, c.order(t))
}

func TestCloseGap_AfterLastDeleteIsNoOp(t *testing.T) {
	ctx := context.Background()
	c := newMemCollection("A", "B", "C")
	delete(c.positions, "C")

	require.NoError(t, CloseGap(ctx, c, 2, 3))
	assert.Equal(t, []string{"A", "B"}, c.order(t))
}

func TestDensityInvariant_RandomishSequence(t *testing.T) {
	ctx := context.Background()
	c := newMemCollection("A", "B", "C", "D", "E", "F")

	moves := []struct {
		id     string
		target int
	}{
		{"F", 0}, {"A", 5}, {"C", 2}, {"B", 4}, {"E", 0}, {"D", 3},
	}
	for _, m := range moves {
		_, err := Reorder(ctx, c, m.id, m.target)
		require.NoError(t, err)
		c.order(t) // asserts density after every step
	}
}

// Package ordering maintains dense position sequences for parent-scoped
// lists: tasks within a column, columns within a board, boards within the
// workspace. For any scope the set of child positions is exactly
// {0, 1, ..., count-1} after every committed mutation.
//
// The package is storage-agnostic: operations work against a Collection,
// and correctness requires that the Collection's reads and writes execute
// inside a single transaction supplied by the caller. Running an operation
// across two separate round trips reintroduces the lost-update race the
// transaction exists to prevent.
package ordering

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the referenced item does not exist in
	// the collection.
	ErrNotFound = errors.New("not found")

	// ErrInvalidPosition is returned when a target position falls outside
	// the valid range for the collection.
	ErrInvalidPosition = errors.New("invalid position")
)

// AtEnd may be passed as a position to InsertSlot to append after the
// current last item.
const AtEnd = -1

// Collection is one parent scope's ordered children, backed by caller-owned
// transactional storage.
type Collection interface {
	// Len returns the number of items in the collection.
	Len(ctx context.Context) (int, error)

	// PositionOf returns the current position of the item, or ErrNotFound.
	PositionOf(ctx context.Context, id string) (int, error)

	// ShiftRange adds delta to the position of every item whose position
	// lies in [lo, hi] inclusive.
	ShiftRange(ctx context.Context, lo, hi, delta int) error

	// SetPosition assigns the item's position, or returns ErrNotFound.
	SetPosition(ctx context.Context, id string, pos int) error
}

// Reorder moves the item to target within its collection and returns the
// position it moved from. Positions strictly between the old and new slot
// shift by one toward the vacated side; every other item is untouched.
// A reorder to the item's current position is a no-op and performs no
// writes.
func Reorder(ctx context.Context, c Collection, id string, target int) (int, error) {
	n, err := c.Len(ctx)
	if err != nil {
		return 0, fmt.Errorf("reading collection size: %w", err)
	}

	// Existence before range: an unknown item is not found even when the
	// target is also out of range. The position must be read inside the
	// same transaction as the shifts; a stale position would shift the
	// wrong range.
	pos, err := c.PositionOf(ctx, id)
	if err != nil {
		return 0, err
	}
	if target < 0 || target > n-1 {
		return 0, fmt.Errorf("target %d outside [0, %d]: %w", target, n-1, ErrInvalidPosition)
	}
	if pos == target {
		return pos, nil
	}

	if target > pos {
		// Moving down: everything in (pos, target] slides up by one.
		if err := c.ShiftRange(ctx, pos+1, target, -1); err != nil {
			return 0, fmt.Errorf("shifting range down: %w", err)
		}
	} else {
		// Moving up: everything in [target, pos) slides down by one.
		if err := c.ShiftRange(ctx, target, pos-1, +1); err != nil {
			return 0, fmt.Errorf("shifting range up: %w", err)
		}
	}

	if err := c.SetPosition(ctx, id, target); err != nil {
		return 0, fmt.Errorf("placing item at %d: %w", target, err)
	}
	return pos, nil
}

// InsertSlot makes room for a new item at pos and returns the concrete
// position the caller must insert it at. pos may be AtEnd to append, 0 to
// insert at the top (shifting all existing items down by one), or any value
// in [0, count]. The insert itself is the caller's: it must happen in the
// same transaction.
func InsertSlot(ctx context.Context, c Collection, pos int) (int, error) {
	n, err := c.Len(ctx)
	if err != nil {
		return 0, fmt.Errorf("reading collection size: %w", err)
	}
	if pos == AtEnd {
		return n, nil
	}
	if pos < 0 || pos > n {
		return 0, fmt.Errorf("insert position %d outside [0, %d]: %w", pos, n, ErrInvalidPosition)
	}
	if pos < n {
		if err := c.ShiftRange(ctx, pos, n-1, +1); err != nil {
			return 0, fmt.Errorf("shifting items to make room: %w", err)
		}
	}
	return pos, nil
}

// CloseGap renumbers trailing siblings after the item at pos was removed
// from a collection that held oldLen items before the removal. Callers
// delete (or re-parent) the row first, then close the gap, all in one
// transaction.
func CloseGap(ctx context.Context, c Collection, pos, oldLen int) error {
	if pos < oldLen-1 {
		if err := c.ShiftRange(ctx, pos+1, oldLen-1, -1); err != nil {
			return fmt.Errorf("closing position gap: %w", err)
		}
	}
	return nil
}

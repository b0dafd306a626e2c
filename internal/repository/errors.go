package repository

import "github.com/easykanban/kanban/internal/ordering"

// ErrNotFound is returned when a referenced row does not exist. It aliases
// ordering.ErrNotFound so callers have a single errors.Is target across the
// repository and ordering layers.
var ErrNotFound = ordering.ErrNotFound

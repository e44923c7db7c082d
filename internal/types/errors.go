package types

import "errors"

// Error kinds shared by the grid and tile layers. All of them are
// recoverable: a rejected move leaves the board untouched and the caller
// decides what to tell the player.
var (
	// ErrOutOfRange means a value falls outside [0, maxValue].
	ErrOutOfRange = errors.New("value out of range")

	// ErrOutOfBounds means a coordinate falls outside the board.
	ErrOutOfBounds = errors.New("coordinate out of bounds")

	// ErrConstraintViolation means a value duplicates an existing value in
	// its row, column or box.
	ErrConstraintViolation = errors.New("constraint violation")

	// ErrImmutable means a write targeted a locked (given) tile.
	ErrImmutable = errors.New("tile is immutable")
)

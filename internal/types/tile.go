package types

import (
	"fmt"
	"strconv"
)

// Tile is a single board cell: its value, its display glyph and whether the
// cell is a locked given. Zero means empty.
type Tile struct {
	value    int
	locked   bool
	maxValue int
	glyph    string
}

// NewTile creates a tile holding value in [0, maxValue]. Tiles start
// unlocked; generation locks the givens afterwards.
func NewTile(locked bool, value, maxValue int) (*Tile, error) {
	if value < 0 || value > maxValue {
		return nil, fmt.Errorf("tile value %d (max %d): %w", value, maxValue, ErrOutOfRange)
	}
	t := &Tile{locked: locked, maxValue: maxValue}
	t.value = value
	t.glyph = glyphFor(value)
	return t, nil
}

// SetValue sets the tile value and recomputes the glyph. Locked tiles reject
// every write; out-of-range values are rejected regardless of the lock.
func (t *Tile) SetValue(value int) error {
	if t.locked {
		return fmt.Errorf("tile holds a given: %w", ErrImmutable)
	}
	if value < 0 || value > t.maxValue {
		return fmt.Errorf("tile value %d (max %d): %w", value, t.maxValue, ErrOutOfRange)
	}
	t.value = value
	t.glyph = glyphFor(value)
	return nil
}

// ToggleLocked flips the editability flag. Generation calls this once per
// given cell.
func (t *Tile) ToggleLocked() {
	t.locked = !t.locked
}

func (t *Tile) Value() int { return t.value }

func (t *Tile) Locked() bool { return t.locked }

// Glyph is the display form of the value: a space for empty, the decimal
// string otherwise. It is derived, never set directly.
func (t *Tile) Glyph() string { return t.glyph }

func (t *Tile) MaxValue() int { return t.maxValue }

func glyphFor(value int) string {
	if value == 0 {
		return " "
	}
	return strconv.Itoa(value)
}

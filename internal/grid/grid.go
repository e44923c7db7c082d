// Package grid owns the playing board and its solved reference board. Every
// state change goes through SetCell, which enforces the row, column and box
// uniqueness constraints before touching a tile; a board with no empty cells
// is therefore valid by construction.
package grid

import (
	"fmt"
	"math/rand"

	"sudoku_play_go/internal/generator"
	"sudoku_play_go/internal/types"
)

// Grid is a playable board plus its pre-computed solution. It is owned by a
// single caller; nothing here is safe for concurrent use.
type Grid struct {
	side     int
	base     int
	board    [][]*types.Tile
	solved   [][]*types.Tile
	complete bool
	gen      generator.SolutionGenerator
}

// New creates a grid for the requested size (coerced down to the nearest
// perfect square) and immediately populates it with a fresh puzzle.
func New(size int) *Grid {
	return NewSeeded(size, nil)
}

// NewSeeded is New with an injected random source, for deterministic
// generation under test. A nil rng falls back to a time-seeded one.
func NewSeeded(size int, rng *rand.Rand) *Grid {
	gen := generator.NewLatinGenerator(size, rng)
	g := &Grid{
		side: gen.Side(),
		base: gen.Base(),
		gen:  gen,
	}
	g.Generate()
	return g
}

// Generate discards the current puzzle and builds a new one: clear both
// boards, build one full solution, lock it into the solved board, then roll
// an independent coin per cell to decide which solved values become givens.
func (g *Grid) Generate() {
	g.Clear()

	solution := g.gen.Solution()
	reveal := g.gen.Reveal()

	for i := 0; i < g.side; i++ {
		for j := 0; j < g.side; j++ {
			s := g.solved[i][j]
			if err := s.SetValue(solution[i][j]); err != nil {
				panic(fmt.Sprintf("generated solution out of range at (%d,%d): %v", i, j, err))
			}
			s.ToggleLocked()

			if reveal[i][j] {
				t := g.board[i][j]
				if err := t.SetValue(solution[i][j]); err != nil {
					panic(fmt.Sprintf("generated given out of range at (%d,%d): %v", i, j, err))
				}
				t.ToggleLocked()
			}
		}
	}

	g.refreshComplete()
}

// Clear replaces both boards with empty, unlocked tiles.
func (g *Grid) Clear() {
	g.board = emptyBoard(g.side)
	g.solved = emptyBoard(g.side)
	g.complete = false
}

func emptyBoard(side int) [][]*types.Tile {
	board := make([][]*types.Tile, side)
	for i := range board {
		board[i] = make([]*types.Tile, side)
		for j := range board[i] {
			t, err := types.NewTile(false, 0, side)
			if err != nil {
				panic(fmt.Sprintf("empty tile rejected: %v", err))
			}
			board[i][j] = t
		}
	}
	return board
}

// SetCell is the sole mutation path for the playing board. Checks run in
// order: bounds, value range, row duplicate, column duplicate, box duplicate,
// locked target. Any failure leaves the board unchanged. Clearing a cell
// (value 0) skips the duplicate scans, since empty never conflicts with
// empty.
func (g *Grid) SetCell(pos types.Pos, value int) error {
	if !pos.In(g.side) {
		return fmt.Errorf("cell %s on a %dx%d board: %w", pos, g.side, g.side, types.ErrOutOfBounds)
	}
	if value < 0 || value > g.side {
		return fmt.Errorf("value %d at %s (max %d): %w", value, pos, g.side, types.ErrOutOfRange)
	}

	if value != 0 {
		for c := 0; c < g.side; c++ {
			if c != pos.Col && g.board[pos.Row][c].Value() == value {
				return fmt.Errorf("value %d already in row %d: %w", value, pos.Row, types.ErrConstraintViolation)
			}
		}
		for r := 0; r < g.side; r++ {
			if r != pos.Row && g.board[r][pos.Col].Value() == value {
				return fmt.Errorf("value %d already in column %d: %w", value, pos.Col, types.ErrConstraintViolation)
			}
		}
		// Box corners are computed independently for row and column.
		boxRow := (pos.Row / g.base) * g.base
		boxCol := (pos.Col / g.base) * g.base
		for r := boxRow; r < boxRow+g.base; r++ {
			for c := boxCol; c < boxCol+g.base; c++ {
				if (r != pos.Row || c != pos.Col) && g.board[r][c].Value() == value {
					return fmt.Errorf("value %d already in box at (%d,%d): %w", value, boxRow, boxCol, types.ErrConstraintViolation)
				}
			}
		}
	}

	if err := g.board[pos.Row][pos.Col].SetValue(value); err != nil {
		return err
	}
	g.refreshComplete()
	return nil
}

// Reset forces every non-given cell back to empty. Givens are untouched, so
// resetting twice is the same as resetting once.
func (g *Grid) Reset() {
	for i := 0; i < g.side; i++ {
		for j := 0; j < g.side; j++ {
			t := g.board[i][j]
			if t.Locked() {
				continue
			}
			if err := t.SetValue(0); err != nil {
				panic(fmt.Sprintf("reset rejected at (%d,%d): %v", i, j, err))
			}
		}
	}
	g.refreshComplete()
}

// IsComplete reports whether the board holds no empty cell. It does not
// re-validate constraints: the only path to a value is SetCell, so a filled
// board is correct by construction.
func (g *Grid) IsComplete() bool { return g.complete }

func (g *Grid) refreshComplete() {
	for i := 0; i < g.side; i++ {
		for j := 0; j < g.side; j++ {
			if g.board[i][j].Value() == 0 {
				g.complete = false
				return
			}
		}
	}
	g.complete = true
}

func (g *Grid) Side() int { return g.side }

func (g *Grid) Base() int { return g.base }

// Tile returns the playing-board tile at an in-bounds position. Callers
// iterate with Side; out-of-bounds access is a programming error here.
func (g *Grid) Tile(pos types.Pos) *types.Tile {
	return g.board[pos.Row][pos.Col]
}

// SolvedTile returns the reference-board tile at an in-bounds position.
func (g *Grid) SolvedTile(pos types.Pos) *types.Tile {
	return g.solved[pos.Row][pos.Col]
}

// Values returns a copy of the playing board's values.
func (g *Grid) Values() [][]int {
	return snapshot(g.board, g.side)
}

// SolvedValues returns a copy of the solved board's values.
func (g *Grid) SolvedValues() [][]int {
	return snapshot(g.solved, g.side)
}

// Givens returns a copy of the locked mask of the playing board.
func (g *Grid) Givens() [][]bool {
	mask := make([][]bool, g.side)
	for i := range mask {
		mask[i] = make([]bool, g.side)
		for j := range mask[i] {
			mask[i][j] = g.board[i][j].Locked()
		}
	}
	return mask
}

func snapshot(board [][]*types.Tile, side int) [][]int {
	values := make([][]int, side)
	for i := range values {
		values[i] = make([]int, side)
		for j := range values[i] {
			values[i][j] = board[i][j].Value()
		}
	}
	return values
}

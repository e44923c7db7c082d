// Package visualizer turns a grid into terminal text. It holds no mutable
// process state: every method reads the grid and returns a string.
package visualizer

import (
	"strings"

	"sudoku_play_go/internal/grid"
	"sudoku_play_go/internal/types"
)

const (
	red       = "\033[0;31m"
	green     = "\033[0;32m"
	blue      = "\033[0;34m"
	boldBlue  = "\033[1;34m"
	boldGreen = "\033[1;32m"
	reset     = "\033[0;0m"
)

var kitty = strings.Join([]string{
	"",
	"         ,-\"\"\"\"\"\"-.",
	"      /\\j__/\\  (  \\`--.",
	"      \\`@_@'/  _)  >--.`.",
	"     _{.:Y:_}_{{_,'    ) )",
	"    {_}`-^{_} ```     (_/",
	"",
	"    ( Credits to https://ascii.co.uk/art/cats)",
	"",
}, "\n")

// Visualizer renders one grid. Color is an option so output piped to a file
// stays clean; callers detect the terminal themselves.
type Visualizer struct {
	grid  *grid.Grid
	color bool
}

func New(g *grid.Grid, color bool) *Visualizer {
	return &Visualizer{grid: g, color: color}
}

// Board renders the playing board: givens red, player entries blue.
func (v *Visualizer) Board() string {
	return v.render(func(pos types.Pos) (string, string) {
		t := v.grid.Tile(pos)
		if t.Locked() {
			return t.Glyph(), red
		}
		return t.Glyph(), blue
	})
}

// Solved renders the reference board, keeping the given/player coloring of
// the matching playing-board cells.
func (v *Visualizer) Solved() string {
	return v.render(func(pos types.Pos) (string, string) {
		color := blue
		if v.grid.Tile(pos).Locked() {
			color = red
		}
		return v.grid.SolvedTile(pos).Glyph(), color
	})
}

// Finished renders the completed board in green.
func (v *Visualizer) Finished() string {
	return v.render(func(pos types.Pos) (string, string) {
		return v.grid.Tile(pos).Glyph(), green
	})
}

// SolutionBanner is printed above the solved board.
func (v *Visualizer) SolutionBanner() string {
	return v.paint(boldBlue, "Too hard? Poor you. Here's a pity kitty\n"+kitty)
}

// FinishedBanner is printed above the finished board.
func (v *Visualizer) FinishedBanner() string {
	return v.paint(boldGreen,
		"Congratulations on finishing the game!\n"+
			"Here's a congratulations kitty (it's the same as the pity kitty)\n"+kitty)
}

func (v *Visualizer) render(cell func(types.Pos) (string, string)) string {
	side := v.grid.Side()
	wide := side >= 10

	cellWidth := 4
	if wide {
		cellWidth = 5
	}
	separator := strings.Repeat("-", side*cellWidth+1)

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(separator)
	sb.WriteString("\n")
	for r := 0; r < side; r++ {
		for c := 0; c < side; c++ {
			glyph, color := cell(types.Pos{Row: r, Col: c})
			// Single-digit glyphs get a leading pad on wide boards so the
			// columns line up with two-digit values.
			if wide && len(glyph) < 2 {
				glyph = " " + glyph
			}
			sb.WriteString("| ")
			sb.WriteString(v.paint(color, glyph))
			sb.WriteString(" ")
		}
		sb.WriteString("|\n")
		sb.WriteString(separator)
		sb.WriteString("\n")
	}
	return sb.String()
}

func (v *Visualizer) paint(color, s string) string {
	if !v.color {
		return s
	}
	return color + s + reset
}

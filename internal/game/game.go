// Package game runs the interactive command loop. It translates one-based
// human coordinates and user errors at the boundary; all board rules live in
// the grid.
package game

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"sudoku_play_go/internal/grid"
	"sudoku_play_go/internal/types"
	"sudoku_play_go/internal/visualizer"
)

const helpText = `
Here's a list of commands:
    - help
    - setboardsize size (please use a perfect square for the size)
    - regenboard
    - setatposition x y value (could also be pos x y value)
    - printsolution
    - reset
    - save
    - quit
`

// Saver stores the current puzzle somewhere durable. The play loop works
// fine without one.
type Saver interface {
	Save(g *grid.Grid) (string, error)
}

// Game couples a grid with its renderer and an input stream.
type Game struct {
	grid  *grid.Grid
	vis   *visualizer.Visualizer
	in    *bufio.Scanner
	out   io.Writer
	log   *logrus.Logger
	saver Saver
	color bool
}

func New(g *grid.Grid, in io.Reader, out io.Writer, log *logrus.Logger, saver Saver, color bool) *Game {
	return &Game{
		grid:  g,
		vis:   visualizer.New(g, color),
		in:    bufio.NewScanner(in),
		out:   out,
		log:   log,
		saver: saver,
		color: color,
	}
}

// Run plays until the board is finished, the player quits, or input ends.
// Rejected moves and malformed commands print a short message and the loop
// continues; nothing in here terminates the process.
func (g *Game) Run() error {
	fmt.Fprintln(g.out, "\nWelcome to sudoku! Print help for help")

	for {
		fmt.Fprint(g.out, g.vis.Board())
		fmt.Fprint(g.out, ">>> ")

		if !g.in.Scan() {
			if err := g.in.Err(); err != nil {
				return fmt.Errorf("reading command: %w", err)
			}
			return nil
		}

		fields := strings.Fields(strings.ToLower(g.in.Text()))
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "help":
			fmt.Fprint(g.out, helpText)
		case "setboardsize":
			g.setBoardSize(fields[1:])
		case "regenboard":
			g.grid.Generate()
		case "setatposition", "pos":
			if done := g.setAtPosition(fields[1:]); done {
				return nil
			}
		case "printsolution":
			fmt.Fprintln(g.out, g.vis.SolutionBanner())
			fmt.Fprint(g.out, g.vis.Solved())
		case "reset":
			g.grid.Reset()
		case "save":
			g.save()
		case "quit":
			fmt.Fprintln(g.out, "Thanks for playing!")
			return nil
		default:
			fmt.Fprint(g.out, helpText)
		}
	}
}

func (g *Game) setBoardSize(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(g.out, "setboardsize needs exactly one number")
		return
	}
	size, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintln(g.out, "That doesn't look like a number. Print help for help")
		return
	}

	g.grid = grid.New(size)
	g.vis = visualizer.New(g.grid, g.color)
	if g.grid.Side() != size {
		fmt.Fprintf(g.out, "Not a perfect square, using %d instead\n", g.grid.Side())
	}
}

// setAtPosition applies a move; it reports true once the board is finished.
func (g *Game) setAtPosition(args []string) bool {
	if len(args) != 3 {
		fmt.Fprintln(g.out, "setatposition needs x, y and a value")
		return false
	}

	nums := make([]int, 3)
	for i, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil {
			fmt.Fprintln(g.out, "That doesn't look like a number. Print help for help")
			return false
		}
		nums[i] = n
	}

	pos := types.Pos{Row: nums[0] - 1, Col: nums[1] - 1}
	if err := g.grid.SetCell(pos, nums[2]); err != nil {
		g.log.WithError(err).WithField("pos", pos).Debug("move rejected")
		if errors.Is(err, types.ErrOutOfBounds) {
			fmt.Fprintln(g.out, "Oh no! There's no square at this coordinate!")
		} else {
			fmt.Fprintln(g.out, "Oops! This can't be done!")
		}
		return false
	}

	if g.grid.IsComplete() {
		fmt.Fprintln(g.out, g.vis.FinishedBanner())
		fmt.Fprint(g.out, g.vis.Finished())
		return true
	}
	return false
}

func (g *Game) save() {
	if g.saver == nil {
		fmt.Fprintln(g.out, "Saving is not configured (set POCKETBASE_URL)")
		return
	}
	id, err := g.saver.Save(g.grid)
	if err != nil {
		g.log.WithError(err).Warn("failed to save puzzle")
		fmt.Fprintln(g.out, "Couldn't save the puzzle, sorry")
		return
	}
	fmt.Fprintf(g.out, "Saved as %s\n", id)
}

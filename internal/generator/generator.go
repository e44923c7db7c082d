package generator

import (
	"math"
	"math/rand"
	"time"
)

// SolutionGenerator produces complete solutions for a square board together
// with the per-cell reveal mask that picks the givens.
type SolutionGenerator interface {
	Side() int
	Base() int
	Solution() [][]int
	Reveal() [][]bool
}

// LatinGenerator builds a full solution by relabeling and shuffling a
// band-shifted base pattern. The result is valid by construction, so no
// backtracking and no retries are ever needed: one pass is O(side²).
type LatinGenerator struct {
	side int
	base int
	rng  *rand.Rand
}

// CoerceSize forces a requested board size down to the nearest perfect
// square, with 1 as the floor so a degenerate request still yields a board.
func CoerceSize(requested int) (side, base int) {
	if requested < 1 {
		requested = 1
	}
	base = int(math.Sqrt(float64(requested)))
	if base < 1 {
		base = 1
	}
	return base * base, base
}

// NewLatinGenerator creates a generator for the coerced size. A nil rng gets
// a time-seeded source; tests pass a fixed seed for determinism.
func NewLatinGenerator(size int, rng *rand.Rand) *LatinGenerator {
	side, base := CoerceSize(size)
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &LatinGenerator{side: side, base: base, rng: rng}
}

func (g *LatinGenerator) Side() int { return g.side }

func (g *LatinGenerator) Base() int { return g.base }

// pattern is the band-shifted base layout: before any shuffling it already
// places each symbol once per row, column and box.
func (g *LatinGenerator) pattern(r, c int) int {
	return (g.base*(r%g.base) + r/g.base + c) % g.side
}

// shuffledLine permutes 0..side-1 without ever moving an index across its
// band: bands are shuffled, then the offsets inside each band are shuffled
// independently. Applied to rows and columns this preserves box integrity.
func (g *LatinGenerator) shuffledLine() []int {
	line := make([]int, 0, g.side)
	for _, band := range g.rng.Perm(g.base) {
		for _, offset := range g.rng.Perm(g.base) {
			line = append(line, band*g.base+offset)
		}
	}
	return line
}

// Solution returns a fresh side×side solved board with values 1..side.
func (g *LatinGenerator) Solution() [][]int {
	rows := g.shuffledLine()
	cols := g.shuffledLine()

	// Random relabeling of the symbols 1..side.
	nums := make([]int, g.side)
	for i, n := range g.rng.Perm(g.side) {
		nums[i] = n + 1
	}

	solution := make([][]int, g.side)
	for r := range solution {
		solution[r] = make([]int, g.side)
		for c := range solution[r] {
			solution[r][c] = nums[g.pattern(rows[r], cols[c])]
		}
	}
	return solution
}

// Reveal rolls an independent coin per cell: a uniform draw from [1, 2*side]
// reveals the cell as a given when it lands above side. Roughly half the
// board ends up revealed; the exact ratio is not guaranteed.
func (g *LatinGenerator) Reveal() [][]bool {
	mask := make([][]bool, g.side)
	for i := range mask {
		mask[i] = make([]bool, g.side)
		for j := range mask[i] {
			mask[i][j] = g.rng.Intn(2*g.side)+1 > g.side
		}
	}
	return mask
}

var _ SolutionGenerator = (*LatinGenerator)(nil)

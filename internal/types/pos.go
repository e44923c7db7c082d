package types

import "fmt"

// Pos is a zero-based board coordinate. One-based human coordinates are
// translated at the command-loop boundary, never inside the core.
type Pos struct {
	Row int
	Col int
}

// In reports whether the position lies on a side×side board.
func (p Pos) In(side int) bool {
	return p.Row >= 0 && p.Row < side && p.Col >= 0 && p.Col < side
}

func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

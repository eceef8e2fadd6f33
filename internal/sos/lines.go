package sos

import (
	"github.com/rocketscienceinc/sos-backend/internal/entity"
)

// Grid is a read-only view of a board.
type Grid interface {
	Size() int
	LetterAt(row, col int) (entity.Letter, bool)
}

// Line is the three cells of a completed S-O-S, sorted so that the same physical line
// always has the same value.
type Line [3]entity.Position

var directions = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// axes holds one direction per line orientation: a line through an O is the same line read
// in either direction.
var axes = [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}

// eachLine calls visit for every S-O-S line that placing letter at (row, col) would complete
// and stops early once visit returns false. Each physical line is visited at most once: an S
// starts exactly one line per direction and an O sits in the middle of at most one line per axis.
// The cell at (row, col) itself is never read, so it may already hold the letter.
func eachLine(grid Grid, row, col int, letter entity.Letter, visit func(Line) bool) {
	origin := entity.Position{Row: row, Col: col}

	switch letter {
	case entity.LetterS:
		for _, d := range directions {
			if holds(grid, row+d[0], col+d[1], entity.LetterO) && holds(grid, row+2*d[0], col+2*d[1], entity.LetterS) {
				line := newLine(origin,
					entity.Position{Row: row + d[0], Col: col + d[1]},
					entity.Position{Row: row + 2*d[0], Col: col + 2*d[1]})
				if !visit(line) {
					return
				}
			}
		}
	case entity.LetterO:
		for _, d := range axes {
			if holds(grid, row-d[0], col-d[1], entity.LetterS) && holds(grid, row+d[0], col+d[1], entity.LetterS) {
				line := newLine(
					entity.Position{Row: row - d[0], Col: col - d[1]},
					origin,
					entity.Position{Row: row + d[0], Col: col + d[1]})
				if !visit(line) {
					return
				}
			}
		}
	}
}

// Lines returns the distinct S-O-S lines that placing letter at (row, col) would complete,
// or nil when there are none.
func Lines(grid Grid, row, col int, letter entity.Letter) []Line {
	var lines []Line

	eachLine(grid, row, col, letter, func(line Line) bool {
		lines = append(lines, line)
		return true
	})

	return lines
}

func CountLines(grid Grid, row, col int, letter entity.Letter) int {
	count := 0

	eachLine(grid, row, col, letter, func(Line) bool {
		count++
		return true
	})

	return count
}

// WouldScore reports whether placing letter at (row, col) completes at least one line.
// It stops at the first line found.
func WouldScore(grid Grid, row, col int, letter entity.Letter) bool {
	found := false

	eachLine(grid, row, col, letter, func(Line) bool {
		found = true
		return false
	})

	return found
}

// HasPotential reports whether letter at (row, col) keeps some line open: for S the next two
// cells in a direction are empty or O then empty or S; for O both neighbours on an axis are
// empty or S.
func HasPotential(grid Grid, row, col int, letter entity.Letter) bool {
	switch letter {
	case entity.LetterS:
		for _, d := range directions {
			if open(grid, row+d[0], col+d[1], entity.LetterO) && open(grid, row+2*d[0], col+2*d[1], entity.LetterS) {
				return true
			}
		}
	case entity.LetterO:
		for _, d := range axes {
			if open(grid, row-d[0], col-d[1], entity.LetterS) && open(grid, row+d[0], col+d[1], entity.LetterS) {
				return true
			}
		}
	}

	return false
}

func inBounds(grid Grid, row, col int) bool {
	size := grid.Size()
	return row >= 0 && row < size && col >= 0 && col < size
}

func holds(grid Grid, row, col int, want entity.Letter) bool {
	letter, ok := grid.LetterAt(row, col)
	return ok && letter == want
}

// open is true for an in-bounds cell that is empty or already holds want.
func open(grid Grid, row, col int, want entity.Letter) bool {
	if !inBounds(grid, row, col) {
		return false
	}

	letter, ok := grid.LetterAt(row, col)
	return !ok || letter == want
}

// newLine orders the two end cells so the same physical line always has the same value.
// The O is always the middle cell.
func newLine(a, o, b entity.Position) Line {
	if b.Row < a.Row || (b.Row == a.Row && b.Col < a.Col) {
		a, b = b, a
	}

	return Line{a, o, b}
}

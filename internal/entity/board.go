package entity

import (
	"fmt"

	"github.com/rocketscienceinc/sos-backend/internal/apperror"
)

const (
	MinBoardSize = 3
	MaxBoardSize = 30
)

// Cell is either empty or occupied by a player with a letter.
type Cell struct {
	owner  Player
	letter Letter
}

func (that Cell) IsEmpty() bool {
	return that.owner == PlayerNone
}

func (that Cell) Owner() Player {
	return that.owner
}

// Letter reports the placed letter; ok is false for an empty cell.
func (that Cell) Letter() (Letter, bool) {
	if that.IsEmpty() {
		return 0, false
	}
	return that.letter, true
}

type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Board is a square grid stored row-major. Cells are written once and never cleared.
type Board struct {
	size   int
	cells  []Cell
	filled int
}

func NewBoard(size int) (*Board, error) {
	if size < MinBoardSize || size > MaxBoardSize {
		return nil, fmt.Errorf("%w: got %d", apperror.ErrInvalidBoardSize, size)
	}

	return &Board{
		size:  size,
		cells: make([]Cell, size*size),
	}, nil
}

func (that *Board) Size() int {
	return that.size
}

func (that *Board) InBounds(row, col int) bool {
	return row >= 0 && row < that.size && col >= 0 && col < that.size
}

func (that *Board) Get(row, col int) (Cell, error) {
	if !that.InBounds(row, col) {
		return Cell{}, fmt.Errorf("%w: (%d, %d)", apperror.ErrOutOfRange, row, col)
	}

	return that.cells[row*that.size+col], nil
}

// LetterAt returns the letter at (row, col). ok is false off the board or on an empty cell.
func (that *Board) LetterAt(row, col int) (Letter, bool) {
	if !that.InBounds(row, col) {
		return 0, false
	}
	return that.cells[row*that.size+col].Letter()
}

func (that *Board) Place(row, col int, player Player, letter Letter) error {
	if !that.InBounds(row, col) {
		return fmt.Errorf("%w: (%d, %d)", apperror.ErrOutOfRange, row, col)
	}

	if !player.IsValid() || !letter.IsValid() {
		return fmt.Errorf("%w: player %s, letter %q", apperror.ErrInvalidMove, player, letter)
	}

	idx := row*that.size + col
	if !that.cells[idx].IsEmpty() {
		return fmt.Errorf("%w: (%d, %d)", apperror.ErrCellOccupied, row, col)
	}

	that.cells[idx] = Cell{owner: player, letter: letter}
	that.filled++

	return nil
}

func (that *Board) IsFull() bool {
	return that.filled == len(that.cells)
}

// EmptyCells lists the unoccupied positions in row-major order.
func (that *Board) EmptyCells() []Position {
	positions := make([]Position, 0, len(that.cells)-that.filled)
	for idx, cell := range that.cells {
		if cell.IsEmpty() {
			positions = append(positions, Position{Row: idx / that.size, Col: idx % that.size})
		}
	}

	return positions
}

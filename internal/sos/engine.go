package sos

import (
	"fmt"

	"github.com/rocketscienceinc/sos-backend/internal/apperror"
	"github.com/rocketscienceinc/sos-backend/internal/entity"
)

// Turn describes an accepted move and the number of lines it completed.
type Turn struct {
	Move  entity.Move
	Lines int
}

// Engine holds the state of one game. It is not safe for concurrent use.
type Engine struct {
	board *entity.Board
	mode  entity.Mode

	currentPlayer entity.Player
	gameOver      bool
	winner        entity.Player
	redScore      int
	blueScore     int
}

func NewEngine(boardSize int, mode entity.Mode) (*Engine, error) {
	if !mode.IsValid() {
		return nil, fmt.Errorf("%w: %s", apperror.ErrInvalidMode, mode)
	}

	board, err := entity.NewBoard(boardSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	return &Engine{
		board:         board,
		mode:          mode,
		currentPlayer: entity.PlayerRed,
		winner:        entity.PlayerNone,
	}, nil
}

// MakeMove places letter for the current player. It returns false without touching the state
// when the game is over or the move is not playable.
func (that *Engine) MakeMove(row, col int, letter entity.Letter) (Turn, bool) {
	if !that.validateMove(row, col, letter) {
		return Turn{}, false
	}

	mover := that.currentPlayer
	if err := that.board.Place(row, col, mover, letter); err != nil {
		return Turn{}, false
	}

	lines := CountLines(that.board, row, col, letter)
	that.updateGameStatus(mover, lines)

	return Turn{
		Move:  entity.Move{Player: mover, Row: row, Col: col, Letter: letter},
		Lines: lines,
	}, true
}

// validateMove - checks if the move can be played.
func (that *Engine) validateMove(row, col int, letter entity.Letter) bool {
	if that.gameOver || !letter.IsValid() || !that.board.InBounds(row, col) {
		return false
	}

	_, occupied := that.board.LetterAt(row, col)

	return !occupied
}

// updateGameStatus - applies scoring, turn and termination rules of the mode after a move.
func (that *Engine) updateGameStatus(mover entity.Player, lines int) {
	switch that.mode {
	case entity.ModeGeneral:
		if lines > 0 {
			that.addScore(mover, lines)
		} else {
			that.currentPlayer = mover.Opponent()
		}

		if that.board.IsFull() {
			that.gameOver = true
			that.winner = that.leader()
		}
	case entity.ModeSimple:
		switch {
		case lines > 0:
			that.gameOver = true
			that.winner = mover
		case that.board.IsFull():
			that.gameOver = true
			that.winner = entity.PlayerNone
		default:
			that.currentPlayer = mover.Opponent()
		}
	}
}

func (that *Engine) addScore(player entity.Player, points int) {
	if player == entity.PlayerRed {
		that.redScore += points
	} else {
		that.blueScore += points
	}
}

func (that *Engine) leader() entity.Player {
	switch {
	case that.redScore > that.blueScore:
		return entity.PlayerRed
	case that.blueScore > that.redScore:
		return entity.PlayerBlue
	default:
		return entity.PlayerNone
	}
}

func (that *Engine) CurrentPlayer() entity.Player {
	return that.currentPlayer
}

func (that *Engine) IsOver() bool {
	return that.gameOver
}

// Winner is PlayerNone while the game runs and for a draw.
func (that *Engine) Winner() entity.Player {
	return that.winner
}

func (that *Engine) RedScore() int {
	return that.redScore
}

func (that *Engine) BlueScore() int {
	return that.blueScore
}

func (that *Engine) Score(player entity.Player) int {
	switch player {
	case entity.PlayerRed:
		return that.redScore
	case entity.PlayerBlue:
		return that.blueScore
	default:
		return 0
	}
}

func (that *Engine) BoardSize() int {
	return that.board.Size()
}

func (that *Engine) Mode() entity.Mode {
	return that.mode
}

func (that *Engine) CellOwner(row, col int) (entity.Player, error) {
	cell, err := that.board.Get(row, col)
	if err != nil {
		return entity.PlayerNone, err
	}

	return cell.Owner(), nil
}

// CellLetter returns the letter at (row, col); ok is false for an empty cell.
func (that *Engine) CellLetter(row, col int) (letter entity.Letter, ok bool, err error) {
	cell, err := that.board.Get(row, col)
	if err != nil {
		return 0, false, err
	}

	letter, ok = cell.Letter()

	return letter, ok, nil
}

// Grid exposes the board read-only.
func (that *Engine) Grid() Grid {
	return that.board
}

func (that *Engine) EmptyCells() []entity.Position {
	return that.board.EmptyCells()
}

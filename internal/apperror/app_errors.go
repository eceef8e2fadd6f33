package apperror

import "errors"

var (
	ErrInvalidBoardSize = errors.New("board size must be between 3 and 30")
	ErrInvalidMode      = errors.New("invalid game mode")
	ErrOutOfRange       = errors.New("cell is out of board range")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrInvalidMove      = errors.New("invalid move")
	ErrMoveRejected     = errors.New("move rejected")
	ErrGameFinished     = errors.New("game is already finished")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrNoAvailableMoves = errors.New("no available moves")
	ErrCorruptedLog     = errors.New("move log is corrupted")
	ErrGameNotFound     = errors.New("game not found")
)

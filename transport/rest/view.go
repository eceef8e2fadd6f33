package rest

import (
	"github.com/rocketscienceinc/sos-backend/internal/entity"
	"github.com/rocketscienceinc/sos-backend/internal/usecase"
)

type cellView struct {
	Owner  entity.Player `json:"owner"`
	Letter string        `json:"letter,omitempty"`
}

type gameView struct {
	ID             string        `json:"id"`
	Mode           entity.Mode   `json:"mode"`
	BoardSize      int           `json:"board_size"`
	CurrentPlayer  entity.Player `json:"current_player"`
	GameOver       bool          `json:"game_over"`
	Winner         entity.Player `json:"winner"`
	RedScore       int           `json:"red_score"`
	BlueScore      int           `json:"blue_score"`
	RedIsComputer  bool          `json:"red_is_computer"`
	BlueIsComputer bool          `json:"blue_is_computer"`
	Board          [][]cellView  `json:"board"`
	Moves          []entity.Move `json:"moves"`
}

func newGameView(game *usecase.Game) gameView {
	engine := game.Engine
	size := engine.BoardSize()

	board := make([][]cellView, size)
	for row := range board {
		board[row] = make([]cellView, size)
		for col := range board[row] {
			// row and col are always in range here
			owner, _ := engine.CellOwner(row, col)
			letter, ok, _ := engine.CellLetter(row, col)

			board[row][col] = cellView{Owner: owner}
			if ok {
				board[row][col].Letter = letter.String()
			}
		}
	}

	return gameView{
		ID:             game.ID,
		Mode:           engine.Mode(),
		BoardSize:      size,
		CurrentPlayer:  engine.CurrentPlayer(),
		GameOver:       engine.IsOver(),
		Winner:         engine.Winner(),
		RedScore:       engine.RedScore(),
		BlueScore:      engine.BlueScore(),
		RedIsComputer:  game.Log.Header.RedIsComputer,
		BlueIsComputer: game.Log.Header.BlueIsComputer,
		Board:          board,
		Moves:          game.Log.Moves(),
	}
}

package bot

import (
	"sync"
	"time"

	"golang.org/x/exp/rand"

	"github.com/rocketscienceinc/sos-backend/internal/apperror"
	"github.com/rocketscienceinc/sos-backend/internal/entity"
	"github.com/rocketscienceinc/sos-backend/internal/sos"
)

// Random is the source of tie-breaking for the heuristic.
type Random interface {
	Intn(n int) int
}

// Game is the read-only view of a game the heuristic needs. *sos.Engine satisfies it.
type Game interface {
	IsOver() bool
	CurrentPlayer() entity.Player
	Grid() sos.Grid
}

var letters = [2]entity.Letter{entity.LetterS, entity.LetterO}

// Heuristic picks moves greedily: complete a line now, else keep lines open, else play randomly.
// It does not look ahead.
type Heuristic struct {
	random Random
}

func NewHeuristic(random Random) *Heuristic {
	return &Heuristic{random: random}
}

// NewSeededHeuristic uses a locked golang.org/x/exp/rand source. A zero seed means time based.
func NewSeededHeuristic(seed uint64) *Heuristic {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	return NewHeuristic(&lockedRandom{rnd: rand.New(rand.NewSource(seed))})
}

// SelectMove proposes a move for the engine's current player without changing the engine.
func (that *Heuristic) SelectMove(game Game) (entity.Move, error) {
	if game.IsOver() {
		return entity.Move{}, apperror.ErrGameFinished
	}

	grid := game.Grid()
	empty := emptyCells(grid)
	if len(empty) == 0 {
		return entity.Move{}, apperror.ErrNoAvailableMoves
	}

	player := game.CurrentPlayer()

	for _, cell := range empty {
		for _, letter := range letters {
			if sos.WouldScore(grid, cell.Row, cell.Col, letter) {
				return newMove(player, cell, letter), nil
			}
		}
	}

	candidates := make([]entity.Move, 0, len(empty))
	for _, cell := range empty {
		for _, letter := range letters {
			if sos.HasPotential(grid, cell.Row, cell.Col, letter) {
				candidates = append(candidates, newMove(player, cell, letter))
			}
		}
	}

	if len(candidates) > 0 {
		return candidates[that.random.Intn(len(candidates))], nil
	}

	cell := empty[that.random.Intn(len(empty))]

	return newMove(player, cell, letters[that.random.Intn(len(letters))]), nil
}

func emptyCells(grid sos.Grid) []entity.Position {
	size := grid.Size()
	cells := make([]entity.Position, 0, size*size)

	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			if _, ok := grid.LetterAt(row, col); !ok {
				cells = append(cells, entity.Position{Row: row, Col: col})
			}
		}
	}

	return cells
}

func newMove(player entity.Player, cell entity.Position, letter entity.Letter) entity.Move {
	return entity.Move{Player: player, Row: cell.Row, Col: cell.Col, Letter: letter}
}

type lockedRandom struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func (that *lockedRandom) Intn(n int) int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.rnd.Intn(n)
}

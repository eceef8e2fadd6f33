package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/sos-backend/internal/analytics"
	"github.com/rocketscienceinc/sos-backend/internal/apperror"
	"github.com/rocketscienceinc/sos-backend/internal/bot"
	"github.com/rocketscienceinc/sos-backend/internal/entity"
	"github.com/rocketscienceinc/sos-backend/internal/movelog"
	"github.com/rocketscienceinc/sos-backend/internal/sos"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, id string, moveLog *movelog.Log) error
	GetByID(ctx context.Context, id string) (*movelog.Log, error)
	DeleteByID(ctx context.Context, id string) error
}

type moveSelector interface {
	SelectMove(game bot.Game) (entity.Move, error)
}

type eventPublisher interface {
	Publish(ctx context.Context, name, gameID string, payload map[string]any)
}

// Game is a stored game together with the engine rebuilt from its log.
type Game struct {
	ID     string
	Log    *movelog.Log
	Engine *sos.Engine
}

// Settings describes a new game. Zero BoardSize falls back to the configured default.
type Settings struct {
	Mode           entity.Mode
	BoardSize      int
	RedIsComputer  bool
	BlueIsComputer bool
}

// GameManager owns the games: it records every accepted move and plays the computer seats.
// All operations run under one lock, so an engine is never used by two requests at once.
type GameManager struct {
	logger *slog.Logger

	mu               sync.Mutex
	gameRepo         gameRepo
	selector         moveSelector
	publisher        eventPublisher
	defaultBoardSize int
}

func NewGameManager(
	logger *slog.Logger,
	gameRepo gameRepo,
	selector moveSelector,
	publisher eventPublisher,
	defaultBoardSize int,
) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		gameRepo:         gameRepo,
		selector:         selector,
		publisher:        publisher,
		defaultBoardSize: defaultBoardSize,
	}
}

// CreateGame starts a game and lets computer seats play until a human is to move or the game ends.
func (that *GameManager) CreateGame(ctx context.Context, settings Settings) (*Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if settings.BoardSize == 0 {
		settings.BoardSize = that.defaultBoardSize
	}

	engine, err := sos.NewEngine(settings.BoardSize, settings.Mode)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	game := &Game{
		ID: uuid.NewString(),
		Log: movelog.New(movelog.Header{
			Mode:           settings.Mode,
			BoardSize:      settings.BoardSize,
			RedIsComputer:  settings.RedIsComputer,
			BlueIsComputer: settings.BlueIsComputer,
		}),
		Engine: engine,
	}

	that.publisher.Publish(ctx, analytics.EventGameCreated, game.ID, map[string]any{
		"mode":       settings.Mode.String(),
		"board_size": settings.BoardSize,
	})

	if err = that.playComputerTurns(ctx, game); err != nil {
		return nil, err
	}

	if err = that.save(ctx, game); err != nil {
		return nil, err
	}

	that.logger.Info("game created", "game_id", game.ID, "mode", settings.Mode, "board_size", settings.BoardSize)

	return game, nil
}

func (that *GameManager) GetGame(ctx context.Context, id string) (*Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.load(ctx, id)
}

// MakeMove applies a human move for the current seat, then any computer replies.
func (that *GameManager) MakeMove(ctx context.Context, id string, row, col int, letter entity.Letter) (*Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, err := that.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if game.Engine.IsOver() {
		return game, apperror.ErrGameFinished
	}

	if game.Log.Header.IsComputer(game.Engine.CurrentPlayer()) {
		return game, apperror.ErrNotYourTurn
	}

	if err = that.apply(ctx, game, row, col, letter); err != nil {
		return game, err
	}

	if err = that.playComputerTurns(ctx, game); err != nil {
		return nil, err
	}

	if err = that.save(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

// PlayBotMove lets the heuristic play one move for whoever is to move, then any computer replies.
func (that *GameManager) PlayBotMove(ctx context.Context, id string) (*Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, err := that.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = that.playBotTurn(ctx, game); err != nil {
		return game, err
	}

	if err = that.playComputerTurns(ctx, game); err != nil {
		return nil, err
	}

	if err = that.save(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

// ExportLog returns the stored game in its move log text form.
func (that *GameManager) ExportLog(ctx context.Context, id string) ([]byte, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, err := that.load(ctx, id)
	if err != nil {
		return nil, err
	}

	text, err := game.Log.MarshalText()
	if err != nil {
		return nil, fmt.Errorf("failed to export game: %w", err)
	}

	return text, nil
}

// ImportLog replays a move log into a new game. A log that fails to parse or replay is rejected
// with apperror.ErrCorruptedLog and nothing is stored.
func (that *GameManager) ImportLog(ctx context.Context, r io.Reader) (*Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	moveLog, err := movelog.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to import game: %w", err)
	}

	engine, err := moveLog.Replay()
	if err != nil {
		return nil, fmt.Errorf("failed to import game: %w", err)
	}

	game := &Game{ID: uuid.NewString(), Log: moveLog, Engine: engine}

	that.publisher.Publish(ctx, analytics.EventGameCreated, game.ID, map[string]any{
		"mode":       moveLog.Header.Mode.String(),
		"board_size": moveLog.Header.BoardSize,
		"imported":   true,
		"moves":      moveLog.Len(),
	})

	if err = that.playComputerTurns(ctx, game); err != nil {
		return nil, err
	}

	if err = that.save(ctx, game); err != nil {
		return nil, err
	}

	that.logger.Info("game imported", "game_id", game.ID, "moves", moveLog.Len())

	return game, nil
}

func (that *GameManager) DeleteGame(ctx context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.gameRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.logger.Info("game deleted", "game_id", id)

	return nil
}

func (that *GameManager) playComputerTurns(ctx context.Context, game *Game) error {
	for !game.Engine.IsOver() && game.Log.Header.IsComputer(game.Engine.CurrentPlayer()) {
		if err := that.playBotTurn(ctx, game); err != nil {
			return err
		}
	}

	return nil
}

func (that *GameManager) playBotTurn(ctx context.Context, game *Game) error {
	move, err := that.selector.SelectMove(game.Engine)
	if err != nil {
		return fmt.Errorf("failed to select bot move: %w", err)
	}

	if err = that.apply(ctx, game, move.Row, move.Col, move.Letter); err != nil {
		return fmt.Errorf("bot move %s: %w", move, err)
	}

	return nil
}

// apply plays the move, records it and publishes the resulting events.
func (that *GameManager) apply(ctx context.Context, game *Game, row, col int, letter entity.Letter) error {
	turn, ok := game.Engine.MakeMove(row, col, letter)
	if !ok {
		return fmt.Errorf("%w: %s at (%d, %d)", apperror.ErrMoveRejected, letter, row, col)
	}

	game.Log.Record(turn.Move)

	that.publisher.Publish(ctx, analytics.EventMoveMade, game.ID, map[string]any{
		"player": turn.Move.Player.String(),
		"row":    turn.Move.Row,
		"col":    turn.Move.Col,
		"letter": turn.Move.Letter.String(),
		"lines":  turn.Lines,
	})

	if game.Engine.IsOver() {
		that.publisher.Publish(ctx, analytics.EventGameFinished, game.ID, map[string]any{
			"winner":     game.Engine.Winner().String(),
			"red_score":  game.Engine.RedScore(),
			"blue_score": game.Engine.BlueScore(),
			"moves":      game.Log.Len(),
		})

		that.logger.Info("game finished", "game_id", game.ID, "winner", game.Engine.Winner())
	}

	return nil
}

func (that *GameManager) load(ctx context.Context, id string) (*Game, error) {
	moveLog, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	engine, err := moveLog.Replay()
	if err != nil {
		that.logger.Error("stored game does not replay", "game_id", id, "error", err)

		return nil, fmt.Errorf("failed to replay game: %w", err)
	}

	return &Game{ID: id, Log: moveLog, Engine: engine}, nil
}

func (that *GameManager) save(ctx context.Context, game *Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game.ID, game.Log); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}

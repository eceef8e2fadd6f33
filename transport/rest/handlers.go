package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/sos-backend/internal/apperror"
	"github.com/rocketscienceinc/sos-backend/internal/entity"
	"github.com/rocketscienceinc/sos-backend/internal/usecase"
)

const maxLogBytes = 1 << 20

type GameHandlers interface {
	CreateGame(w http.ResponseWriter, r *http.Request)
	GetGame(w http.ResponseWriter, r *http.Request)
	MakeMove(w http.ResponseWriter, r *http.Request)
	PlayBotMove(w http.ResponseWriter, r *http.Request)
	ExportLog(w http.ResponseWriter, r *http.Request)
	ImportGame(w http.ResponseWriter, r *http.Request)
	DeleteGame(w http.ResponseWriter, r *http.Request)
}

type gameService interface {
	CreateGame(ctx context.Context, settings usecase.Settings) (*usecase.Game, error)
	GetGame(ctx context.Context, id string) (*usecase.Game, error)
	MakeMove(ctx context.Context, id string, row, col int, letter entity.Letter) (*usecase.Game, error)
	PlayBotMove(ctx context.Context, id string) (*usecase.Game, error)
	ExportLog(ctx context.Context, id string) ([]byte, error)
	ImportLog(ctx context.Context, r io.Reader) (*usecase.Game, error)
	DeleteGame(ctx context.Context, id string) error
}

type createGameRequest struct {
	Mode           *entity.Mode `json:"mode"`
	BoardSize      int          `json:"board_size"`
	RedIsComputer  bool         `json:"red_is_computer"`
	BlueIsComputer bool         `json:"blue_is_computer"`
}

type moveRequest struct {
	Row    int           `json:"row"`
	Col    int           `json:"col"`
	Letter entity.Letter `json:"letter"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type gameHandlers struct {
	logger      *slog.Logger
	games       gameService
	defaultMode entity.Mode
}

func NewGameHandlers(logger *slog.Logger, games gameService, defaultMode entity.Mode) GameHandlers {
	return &gameHandlers{
		logger:      logger.With("component", "rest"),
		games:       games,
		defaultMode: defaultMode,
	}
}

func (that *gameHandlers) CreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	mode := that.defaultMode
	if req.Mode != nil {
		mode = *req.Mode
	}

	game, err := that.games.CreateGame(r.Context(), usecase.Settings{
		Mode:           mode,
		BoardSize:      req.BoardSize,
		RedIsComputer:  req.RedIsComputer,
		BlueIsComputer: req.BlueIsComputer,
	})
	if err != nil {
		that.writeError(w, "CreateGame", err)
		return
	}

	writeJSON(w, http.StatusCreated, newGameView(game))
}

func (that *gameHandlers) GetGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.GetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, "GetGame", err)
		return
	}

	writeJSON(w, http.StatusOK, newGameView(game))
}

func (that *gameHandlers) MakeMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	if !req.Letter.IsValid() {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "letter must be S or O"})
		return
	}

	game, err := that.games.MakeMove(r.Context(), chi.URLParam(r, "id"), req.Row, req.Col, req.Letter)
	if err != nil {
		that.writeError(w, "MakeMove", err)
		return
	}

	writeJSON(w, http.StatusOK, newGameView(game))
}

func (that *gameHandlers) PlayBotMove(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.PlayBotMove(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, "PlayBotMove", err)
		return
	}

	writeJSON(w, http.StatusOK, newGameView(game))
}

func (that *gameHandlers) ExportLog(w http.ResponseWriter, r *http.Request) {
	text, err := that.games.ExportLog(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, "ExportLog", err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(text)
}

func (that *gameHandlers) ImportGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.ImportLog(r.Context(), http.MaxBytesReader(w, r.Body, maxLogBytes))
	if err != nil {
		that.writeError(w, "ImportGame", err)
		return
	}

	writeJSON(w, http.StatusCreated, newGameView(game))
}

func (that *gameHandlers) DeleteGame(w http.ResponseWriter, r *http.Request) {
	if err := that.games.DeleteGame(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeError(w, "DeleteGame", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *gameHandlers) writeError(w http.ResponseWriter, method string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "method", method, "error", err)
		writeJSON(w, status, errorResponse{Error: "internal server error"})

		return
	}

	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	var maxBytes *http.MaxBytesError

	switch {
	case errors.Is(err, apperror.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrCorruptedLog):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperror.ErrInvalidBoardSize),
		errors.Is(err, apperror.ErrInvalidMode):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrMoveRejected),
		errors.Is(err, apperror.ErrGameFinished),
		errors.Is(err, apperror.ErrNotYourTurn),
		errors.Is(err, apperror.ErrNoAvailableMoves):
		return http.StatusConflict
	case errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

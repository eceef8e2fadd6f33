package movelog

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/sos-backend/internal/apperror"
	"github.com/rocketscienceinc/sos-backend/internal/entity"
	"github.com/rocketscienceinc/sos-backend/internal/sos"
)

const (
	keyGameMode       = "GameMode"
	keyBoardSize      = "BoardSize"
	keyRedIsComputer  = "RedIsComputer"
	keyBlueIsComputer = "BlueIsComputer"
	movesMarker       = "Moves:"
)

// Header is the game configuration written before the moves.
type Header struct {
	Mode           entity.Mode
	BoardSize      int
	RedIsComputer  bool
	BlueIsComputer bool
}

// IsComputer reports whether the given side is played by the heuristic.
func (that Header) IsComputer(player entity.Player) bool {
	switch player {
	case entity.PlayerRed:
		return that.RedIsComputer
	case entity.PlayerBlue:
		return that.BlueIsComputer
	default:
		return false
	}
}

// Log is an append-only record of accepted moves.
type Log struct {
	Header Header
	moves  []entity.Move
}

func New(header Header) *Log {
	return &Log{Header: header}
}

func (that *Log) Record(move entity.Move) {
	that.moves = append(that.moves, move)
}

func (that *Log) Moves() []entity.Move {
	moves := make([]entity.Move, len(that.moves))
	copy(moves, that.moves)

	return moves
}

func (that *Log) Len() int {
	return len(that.moves)
}

// WriteTo writes the log in its line oriented text form.
func (that *Log) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "%s: %s\n", keyGameMode, that.Header.Mode)
	fmt.Fprintf(&buf, "%s: %d\n", keyBoardSize, that.Header.BoardSize)
	fmt.Fprintf(&buf, "%s: %t\n", keyRedIsComputer, that.Header.RedIsComputer)
	fmt.Fprintf(&buf, "%s: %t\n", keyBlueIsComputer, that.Header.BlueIsComputer)
	buf.WriteString(movesMarker + "\n")

	for _, move := range that.moves {
		buf.WriteString(move.String())
		buf.WriteByte('\n')
	}

	n, err := w.Write(buf.Bytes())
	if err != nil {
		return int64(n), fmt.Errorf("failed to write move log: %w", err)
	}

	return int64(n), nil
}

func (that *Log) MarshalText() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := that.WriteTo(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (that *Log) Save(path string) error {
	text, err := that.MarshalText()
	if err != nil {
		return err
	}

	if err = os.WriteFile(path, text, 0o600); err != nil {
		return fmt.Errorf("failed to save move log: %w", err)
	}

	return nil
}

func Load(path string) (*Log, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open move log: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

// Parse reads a log. Any deviation from the format is reported as apperror.ErrCorruptedLog.
func Parse(r io.Reader) (*Log, error) {
	scanner := bufio.NewScanner(r)
	lineNo := 0

	next := func() (string, bool) {
		if !scanner.Scan() {
			return "", false
		}
		lineNo++

		return strings.TrimRight(scanner.Text(), "\r"), true
	}

	header := Header{}

	value, err := headerValue(next, &lineNo, keyGameMode)
	if err != nil {
		return nil, err
	}
	if header.Mode, err = entity.ParseMode(value); err != nil {
		return nil, corrupted(lineNo, "%s: %v", keyGameMode, err)
	}

	if value, err = headerValue(next, &lineNo, keyBoardSize); err != nil {
		return nil, err
	}
	if header.BoardSize, err = strconv.Atoi(value); err != nil {
		return nil, corrupted(lineNo, "%s: %v", keyBoardSize, err)
	}
	if header.BoardSize < entity.MinBoardSize || header.BoardSize > entity.MaxBoardSize {
		return nil, corrupted(lineNo, "%s: %d outside [%d, %d]",
			keyBoardSize, header.BoardSize, entity.MinBoardSize, entity.MaxBoardSize)
	}

	if value, err = headerValue(next, &lineNo, keyRedIsComputer); err != nil {
		return nil, err
	}
	if header.RedIsComputer, err = strconv.ParseBool(value); err != nil {
		return nil, corrupted(lineNo, "%s: %v", keyRedIsComputer, err)
	}

	if value, err = headerValue(next, &lineNo, keyBlueIsComputer); err != nil {
		return nil, err
	}
	if header.BlueIsComputer, err = strconv.ParseBool(value); err != nil {
		return nil, corrupted(lineNo, "%s: %v", keyBlueIsComputer, err)
	}

	line, ok := next()
	if !ok || strings.TrimSpace(line) != movesMarker {
		return nil, corrupted(lineNo, "expected %q", movesMarker)
	}

	moveLog := New(header)
	blank := 0

	for {
		line, ok = next()
		if !ok {
			break
		}

		if strings.TrimSpace(line) == "" {
			blank++
			continue
		}

		if blank > 0 {
			return nil, corrupted(lineNo, "move after blank line")
		}

		move, err := entity.ParseMove(line)
		if err != nil {
			return nil, corrupted(lineNo, "%v", err)
		}

		moveLog.Record(move)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read move log: %w", err)
	}

	return moveLog, nil
}

// headerValue reads the next line and returns the value of the expected "Key: Value" pair.
func headerValue(next func() (string, bool), lineNo *int, key string) (string, error) {
	line, ok := next()
	if !ok {
		return "", corrupted(*lineNo+1, "missing %s header", key)
	}

	name, value, found := strings.Cut(line, ":")
	if !found || strings.TrimSpace(name) != key {
		return "", corrupted(*lineNo, "expected %s header, got %q", key, line)
	}

	return strings.TrimSpace(value), nil
}

// Replay rebuilds an engine from the header and plays every move in order. It fails when a
// move is out of turn or rejected by the engine.
func (that *Log) Replay() (*sos.Engine, error) {
	engine, err := sos.NewEngine(that.Header.BoardSize, that.Header.Mode)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrCorruptedLog, err)
	}

	for i, move := range that.moves {
		if move.Player != engine.CurrentPlayer() {
			return nil, fmt.Errorf("%w: move %d (%s): expected %s to move",
				apperror.ErrCorruptedLog, i+1, move, engine.CurrentPlayer())
		}

		if _, ok := engine.MakeMove(move.Row, move.Col, move.Letter); !ok {
			return nil, fmt.Errorf("%w: move %d (%s) rejected", apperror.ErrCorruptedLog, i+1, move)
		}
	}

	return engine, nil
}

func corrupted(line int, format string, args ...any) error {
	return fmt.Errorf("%w: line %d: %s", apperror.ErrCorruptedLog, line, fmt.Sprintf(format, args...))
}

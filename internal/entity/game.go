package entity

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Mode selects the rule variant of a game.
type Mode uint8

const (
	ModeSimple Mode = iota
	ModeGeneral
)

const moveRecordFieldLen = 4

var (
	ErrUnknownMode   = errors.New("unknown game mode")
	ErrMalformedMove = errors.New("malformed move record")
)

func (that Mode) String() string {
	switch that {
	case ModeSimple:
		return "Simple"
	case ModeGeneral:
		return "General"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(that))
	}
}

func (that Mode) IsValid() bool {
	return that == ModeSimple || that == ModeGeneral
}

func ParseMode(value string) (Mode, error) {
	switch value {
	case "Simple":
		return ModeSimple, nil
	case "General":
		return ModeGeneral, nil
	default:
		return ModeSimple, fmt.Errorf("%w: %q", ErrUnknownMode, value)
	}
}

func (that Mode) MarshalText() ([]byte, error) {
	if !that.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMode, that)
	}

	return []byte(that.String()), nil
}

func (that *Mode) UnmarshalText(text []byte) error {
	mode, err := ParseMode(string(text))
	if err != nil {
		return err
	}

	*that = mode

	return nil
}

// Move is an accepted placement. Once recorded it is never changed.
type Move struct {
	Player Player `json:"player"`
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Letter Letter `json:"letter"`
}

// String renders the move as "<Player>,<row>,<col>,<Letter>".
func (that Move) String() string {
	return fmt.Sprintf("%s,%d,%d,%s", that.Player, that.Row, that.Col, that.Letter)
}

func ParseMove(line string) (Move, error) {
	parts := strings.Split(strings.TrimSpace(line), ",")
	if len(parts) != moveRecordFieldLen {
		return Move{}, fmt.Errorf("%w: %q", ErrMalformedMove, line)
	}

	player, err := ParsePlayer(strings.TrimSpace(parts[0]))
	if err != nil {
		return Move{}, fmt.Errorf("%w: %w", ErrMalformedMove, err)
	}

	if !player.IsValid() {
		return Move{}, fmt.Errorf("%w: player %s cannot move", ErrMalformedMove, player)
	}

	row, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Move{}, fmt.Errorf("%w: row: %w", ErrMalformedMove, err)
	}

	col, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return Move{}, fmt.Errorf("%w: col: %w", ErrMalformedMove, err)
	}

	letter, err := ParseLetter(strings.TrimSpace(parts[3]))
	if err != nil {
		return Move{}, fmt.Errorf("%w: %w", ErrMalformedMove, err)
	}

	return Move{Player: player, Row: row, Col: col, Letter: letter}, nil
}

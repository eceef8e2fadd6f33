package entity

import (
	"errors"
	"fmt"
)

// Player identifies a side. PlayerNone marks empty cells, a missing winner or a draw.
type Player uint8

const (
	PlayerNone Player = iota
	PlayerRed
	PlayerBlue
)

var ErrUnknownPlayer = errors.New("unknown player")

func (that Player) String() string {
	switch that {
	case PlayerRed:
		return "Red"
	case PlayerBlue:
		return "Blue"
	default:
		return "None"
	}
}

// Opponent returns the other side. PlayerNone has no opponent.
func (that Player) Opponent() Player {
	switch that {
	case PlayerRed:
		return PlayerBlue
	case PlayerBlue:
		return PlayerRed
	default:
		return PlayerNone
	}
}

func (that Player) IsValid() bool {
	return that == PlayerRed || that == PlayerBlue
}

func ParsePlayer(value string) (Player, error) {
	switch value {
	case "Red":
		return PlayerRed, nil
	case "Blue":
		return PlayerBlue, nil
	case "None":
		return PlayerNone, nil
	default:
		return PlayerNone, fmt.Errorf("%w: %q", ErrUnknownPlayer, value)
	}
}

func (that Player) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *Player) UnmarshalText(text []byte) error {
	player, err := ParsePlayer(string(text))
	if err != nil {
		return err
	}

	*that = player

	return nil
}

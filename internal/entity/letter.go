package entity

import (
	"errors"
	"fmt"
)

// Letter is a mark a player can place. The zero value is not a playable letter.
type Letter uint8

const (
	LetterS Letter = iota + 1
	LetterO
)

var ErrUnknownLetter = errors.New("unknown letter")

func (that Letter) String() string {
	switch that {
	case LetterS:
		return "S"
	case LetterO:
		return "O"
	default:
		return ""
	}
}

func (that Letter) IsValid() bool {
	return that == LetterS || that == LetterO
}

func ParseLetter(value string) (Letter, error) {
	switch value {
	case "S", "s":
		return LetterS, nil
	case "O", "o":
		return LetterO, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownLetter, value)
	}
}

func (that Letter) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *Letter) UnmarshalText(text []byte) error {
	letter, err := ParseLetter(string(text))
	if err != nil {
		return err
	}

	*that = letter

	return nil
}

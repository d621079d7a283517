package tictactoe

import (
	"fmt"
	"strings"
)

// State is the observable phase of a game.
type State uint8

const (
	XWin State = iota + 1
	OWin
	Draw
	XTurn
	OTurn
)

var stateNames = [...]string{
	"UNKNOWN",
	"X_WIN",
	"O_WIN",
	"DRAW",
	"X_TURN",
	"O_TURN",
}

// ParseState parses a state tag such as "X_WIN" or "x turn".
func ParseState(s string) (State, error) {
	name := strings.ReplaceAll(strings.TrimSpace(s), " ", "_")
	for i := XWin; i <= OTurn; i++ {
		if strings.EqualFold(name, stateNames[i]) {
			return i, nil
		}
	}

	return 0, fmt.Errorf("unknown game state %q", s)
}

func (s State) String() string {
	if s < XWin || s > OTurn {
		return stateNames[0]
	}
	return stateNames[s]
}

// GameOver reports whether no further plays can follow.
func (s State) GameOver() bool {
	switch s {
	case XWin, OWin, Draw:
		return true
	default:
		return false
	}
}

// Winner returns the winning piece, or Empty if s is not a win.
func (s State) Winner() Piece {
	switch s {
	case XWin:
		return X
	case OWin:
		return O
	default:
		return Empty
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	state, err := ParseState(string(text))
	if err != nil {
		return err
	}

	*s = state

	return nil
}

package tictactoe

import (
	"fmt"
	"strings"
)

// Piece is a mark on a single cell.
type Piece uint8

const (
	Empty Piece = iota
	X
	O
)

// ParsePiece parses a single-character symbol, ignoring case.
// A blank symbol is an Empty cell.
func ParsePiece(symbol string) (Piece, error) {
	switch strings.ToUpper(strings.TrimSpace(symbol)) {
	case "":
		return Empty, nil
	case "X":
		return X, nil
	case "O":
		return O, nil
	default:
		return Empty, fmt.Errorf("%w: %q", ErrInvalidSymbol, symbol)
	}
}

func (p Piece) String() string {
	switch p {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return " "
	}
}

// Opponent returns the piece that moves after p.
func (p Piece) Opponent() Piece {
	switch p {
	case X:
		return O
	case O:
		return X
	default:
		return Empty
	}
}

func (p Piece) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Piece) UnmarshalText(text []byte) error {
	piece, err := ParsePiece(string(text))
	if err != nil {
		return err
	}

	*p = piece

	return nil
}

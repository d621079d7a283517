package tictactoe

import "errors"

// Construction errors abort the creation of a Board or Game.
var (
	ErrInvalidSymbol         = errors.New("invalid symbol")
	ErrInvalidDimensions     = errors.New("invalid board dimensions")
	ErrInconsistentRowLength = errors.New("inconsistent row length")
	ErrInvalidPieceCount     = errors.New("invalid number of pieces")
	ErrInvalidWinLength      = errors.New("invalid win length")
	ErrMultipleWinners       = errors.New("more than one winner")
	ErrInvalidCurrentPlayer  = errors.New("invalid current player")
	ErrInvalidTurn           = errors.New("invalid turn")
)

// Play errors leave the board untouched.
var (
	ErrIndexOutOfRange = errors.New("cell index out of range")
	ErrGameOver        = errors.New("game is over")
	ErrOccupiedCell    = errors.New("cell is already occupied")
)

// IsRejectedMove reports whether err belongs to the class of play errors
// a host may ignore, treating the move as a no-op.
func IsRejectedMove(err error) bool {
	return errors.Is(err, ErrIndexOutOfRange) ||
		errors.Is(err, ErrGameOver) ||
		errors.Is(err, ErrOccupiedCell)
}

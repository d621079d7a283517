// Package tictactoe implements a two-player grid game with a configurable
// board size and winning run length.
//
// A Game is not safe for concurrent use; hosts serialize access to it.
package tictactoe

import "fmt"

// Game is a Board plus the piece that moves next.
type Game struct {
	board         *Board
	currentPlayer Piece
}

// NewGame builds a game from a possibly partially played grid. currentPlayer
// must be X or O and must agree with the mover the piece counts demand.
func NewGame(grid [][]string, conf Config, currentPlayer string) (*Game, error) {
	board, err := NewBoard(grid, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to build board: %w", err)
	}

	player, err := ParsePiece(currentPlayer)
	if err != nil || player == Empty {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCurrentPlayer, currentPlayer)
	}

	if mustStart, ok := board.PlayerMustStart(); ok && mustStart != player {
		return nil, fmt.Errorf("%w: %s must move, got %s", ErrInvalidTurn, mustStart, player)
	}

	return &Game{
		board:         board,
		currentPlayer: player,
	}, nil
}

// NewDefaultGame returns an empty game of the configured geometry with X to
// move. A zero Config gives the classic 3x3 board.
func NewDefaultGame(conf Config) (*Game, error) {
	return NewGame(nil, conf, X.String())
}

func (that *Game) CurrentPlayer() Piece {
	return that.currentPlayer
}

// Play places the current player's piece at position and passes the turn.
// On error neither the board nor the current player changes.
func (that *Game) Play(position int) error {
	if err := that.board.Set(position, that.currentPlayer); err != nil {
		return err
	}

	that.currentPlayer = that.currentPlayer.Opponent()

	return nil
}

func (that *Game) State() State {
	if winner, ok := that.board.Winner(); ok {
		if winner == O {
			return OWin
		}
		return XWin
	}

	if that.board.IsFull() {
		return Draw
	}

	if that.currentPlayer == O {
		return OTurn
	}

	return XTurn
}

func (that *Game) IsOver() bool {
	return that.State().GameOver()
}

// Board returns a copy of the board for read-only use.
func (that *Game) Board() *Board {
	return that.board.Copy()
}

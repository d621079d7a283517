package usecase

import (
	"github.com/rocketscienceinc/gridtictactoe/internal/entity"
	"github.com/rocketscienceinc/gridtictactoe/internal/tictactoe"
)

func snapshot(id string, game *tictactoe.Game) *entity.Game {
	board := game.Board()
	state := game.State()

	result := &entity.Game{
		ID:            id,
		Board:         board.Grid(),
		Rows:          board.Rows(),
		Columns:       board.Columns(),
		WinLength:     board.WinLength(),
		CurrentPlayer: game.CurrentPlayer().String(),
		State:         state.String(),
	}

	if game.IsOver() {
		result.Winner = state.String()
	}

	return result
}

// restore rebuilds a game from its snapshot, validating it like any other
// partially played board.
func restore(stored *entity.Game) (*tictactoe.Game, error) {
	conf := tictactoe.Config{
		Rows:      stored.Rows,
		Columns:   stored.Columns,
		WinLength: stored.WinLength,
	}

	return tictactoe.NewGame(stored.Board, conf, stored.CurrentPlayer)
}

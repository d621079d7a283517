package entity

// Game is the stored and rendered snapshot of a session's game.
type Game struct {
	ID            string     `json:"id"`
	Board         [][]string `json:"board"`
	Rows          int        `json:"rows"`
	Columns       int        `json:"columns"`
	WinLength     int        `json:"win_length"`
	CurrentPlayer string     `json:"current_player"`
	State         string     `json:"state"`
	// Winner holds the terminal state tag once the game is over.
	Winner string `json:"winner,omitempty"`
}

func (that *Game) IsFinished() bool {
	return that.Winner != ""
}

// Clone returns a copy that shares no board rows with that.
func (that *Game) Clone() *Game {
	clone := *that

	clone.Board = make([][]string, len(that.Board))
	for i, row := range that.Board {
		clone.Board[i] = append([]string(nil), row...)
	}

	return &clone
}

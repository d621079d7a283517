package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_GameOver(t *testing.T) {
	assert.True(t, XWin.GameOver())
	assert.True(t, OWin.GameOver())
	assert.True(t, Draw.GameOver())
	assert.False(t, XTurn.GameOver())
	assert.False(t, OTurn.GameOver())
}

func TestState_Winner(t *testing.T) {
	assert.Equal(t, X, XWin.Winner())
	assert.Equal(t, O, OWin.Winner())
	assert.Equal(t, Empty, Draw.Winner())
	assert.Equal(t, Empty, XTurn.Winner())
}

func TestParseState(t *testing.T) {
	t.Run("Accepts tag names with spaces or underscores", func(t *testing.T) {
		for text, expected := range map[string]State{
			"X_WIN":  XWin,
			"o win":  OWin,
			"draw":   Draw,
			"X turn": XTurn,
			"O_TURN": OTurn,
		} {
			state, err := ParseState(text)

			require.NoError(t, err, text)
			assert.Equal(t, expected, state, text)
		}
	})

	t.Run("Round trips through String", func(t *testing.T) {
		for _, state := range []State{XWin, OWin, Draw, XTurn, OTurn} {
			parsed, err := ParseState(state.String())

			require.NoError(t, err)
			assert.Equal(t, state, parsed)
		}
	})

	t.Run("Rejects unknown tags", func(t *testing.T) {
		_, err := ParseState("stalemate")

		require.Error(t, err)
		assert.Equal(t, "UNKNOWN", State(0).String())
	})
}

package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePiece(t *testing.T) {
	t.Run("Parses symbols in any case", func(t *testing.T) {
		for symbol, expected := range map[string]Piece{
			"X": X,
			"x": X,
			"O": O,
			"o": O,
			" ": Empty,
			"":  Empty,
		} {
			// When: parsing a known symbol
			piece, err := ParsePiece(symbol)

			// Then: the matching piece is returned
			require.NoError(t, err, "symbol %q", symbol)
			assert.Equal(t, expected, piece, "symbol %q", symbol)
		}
	})

	t.Run("Rejects unknown symbols", func(t *testing.T) {
		for _, symbol := range []string{"Z", "0", "XX", "-"} {
			// When: parsing an unknown symbol
			_, err := ParsePiece(symbol)

			// Then: ErrInvalidSymbol names the value
			require.ErrorIs(t, err, ErrInvalidSymbol)
			assert.Contains(t, err.Error(), symbol)
		}
	})

	t.Run("Round trips through String", func(t *testing.T) {
		for _, piece := range []Piece{Empty, X, O} {
			parsed, err := ParsePiece(piece.String())

			require.NoError(t, err)
			assert.Equal(t, piece, parsed)
		}
	})
}

func TestPiece_Opponent(t *testing.T) {
	assert.Equal(t, O, X.Opponent())
	assert.Equal(t, X, O.Opponent())
	assert.Equal(t, Empty, Empty.Opponent())
}

func TestPiece_UnmarshalText(t *testing.T) {
	t.Run("Valid text", func(t *testing.T) {
		var piece Piece

		err := piece.UnmarshalText([]byte("o"))

		require.NoError(t, err)
		assert.Equal(t, O, piece)
	})

	t.Run("Invalid text keeps the value", func(t *testing.T) {
		piece := X

		err := piece.UnmarshalText([]byte("?"))

		require.ErrorIs(t, err, ErrInvalidSymbol)
		assert.Equal(t, X, piece)
	})
}
